package lang

func init() {
	Register(&LanguageSpec{
		Language:            JavaScript,
		FileExtensions:      []string{".js", ".mjs", ".cjs"},
		LineCommentMarkers:  []string{"//"},
		BlockCommentMarkers: []BlockMarker{{"/**", "*/"}, {"/*", "*/"}},
		CommentNodeTypes:    []string{"comment"},
		PreambleNodeTypes:   []string{"hash_bang_line"},
	})
}
