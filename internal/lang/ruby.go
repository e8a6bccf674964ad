package lang

func init() {
	Register(&LanguageSpec{
		Language:           Ruby,
		FileExtensions:     []string{".rb", ".rake"},
		LineCommentMarkers: []string{"#"},
		CommentNodeTypes:   []string{"comment"},
	})
}
