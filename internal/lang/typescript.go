package lang

func init() {
	Register(&LanguageSpec{
		Language:            TypeScript,
		FileExtensions:      []string{".ts"},
		LineCommentMarkers:  []string{"//"},
		BlockCommentMarkers: []BlockMarker{{"/**", "*/"}, {"/*", "*/"}},
		CommentNodeTypes:    []string{"comment"},
		PreambleNodeTypes:   []string{"hash_bang_line"},
	})
}
