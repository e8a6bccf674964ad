package lang

func init() {
	Register(&LanguageSpec{
		Language:            Java,
		FileExtensions:      []string{".java"},
		LineCommentMarkers:  []string{"//"},
		BlockCommentMarkers: []BlockMarker{{"/**", "*/"}, {"/*", "*/"}},
		CommentNodeTypes:    []string{"line_comment", "block_comment"},
	})
}
