package lang

func init() {
	Register(&LanguageSpec{
		Language:            Lua,
		FileExtensions:      []string{".lua"},
		LineCommentMarkers:  []string{"--"},
		BlockCommentMarkers: []BlockMarker{{"--[==[", "]==]"}, {"--[=[", "]=]"}, {"--[[", "]]"}},
		CommentNodeTypes:    []string{"comment"},
		PreambleNodeTypes:   []string{"hash_bang_line"},
	})
}
