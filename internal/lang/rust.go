package lang

func init() {
	Register(&LanguageSpec{
		Language:            Rust,
		FileExtensions:      []string{".rs"},
		LineCommentMarkers:  []string{"//!", "///", "//"},
		BlockCommentMarkers: []BlockMarker{{"/*!", "*/"}, {"/**", "*/"}, {"/*", "*/"}},
		CommentNodeTypes:    []string{"line_comment", "block_comment"},
		PreambleNodeTypes:   []string{"shebang"},
	})
}
