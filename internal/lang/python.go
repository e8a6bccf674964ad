package lang

func init() {
	Register(&LanguageSpec{
		Language:           Python,
		FileExtensions:     []string{".py"},
		LineCommentMarkers: []string{"#"},
		CommentNodeTypes:   []string{"comment"},
	})
}
