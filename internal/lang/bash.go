package lang

func init() {
	Register(&LanguageSpec{
		Language:           Bash,
		FileExtensions:     []string{".sh", ".bash"},
		LineCommentMarkers: []string{"#"},
		CommentNodeTypes:   []string{"comment"},
	})
}
