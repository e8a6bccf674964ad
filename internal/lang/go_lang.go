package lang

func init() {
	Register(&LanguageSpec{
		Language:            Go,
		FileExtensions:      []string{".go"},
		LineCommentMarkers:  []string{"//"},
		BlockCommentMarkers: []BlockMarker{{"/**", "*/"}, {"/*", "*/"}},
		CommentNodeTypes:    []string{"comment"},
	})
}
