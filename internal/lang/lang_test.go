package lang

import "testing"

func TestForExtension(t *testing.T) {
	tests := []struct {
		ext  string
		lang Language
	}{
		{".rb", Ruby},
		{".rake", Ruby},
		{".py", Python},
		{".sh", Bash},
		{".go", Go},
		{".js", JavaScript},
		{".mjs", JavaScript},
		{".ts", TypeScript},
		{".rs", Rust},
		{".java", Java},
		{".lua", Lua},
	}
	for _, tt := range tests {
		spec := ForExtension(tt.ext)
		if spec == nil {
			t.Errorf("ForExtension(%q) = nil, want %s", tt.ext, tt.lang)
			continue
		}
		if spec.Language != tt.lang {
			t.Errorf("ForExtension(%q).Language = %s, want %s", tt.ext, spec.Language, tt.lang)
		}
	}
}

func TestForLanguage(t *testing.T) {
	for _, lang := range AllLanguages() {
		spec := ForLanguage(lang)
		if spec == nil {
			t.Errorf("ForLanguage(%s) = nil", lang)
			continue
		}
		if len(spec.LineCommentMarkers) == 0 {
			t.Errorf("%s: no LineCommentMarkers", lang)
		}
		if len(spec.CommentNodeTypes) == 0 {
			t.Errorf("%s: no CommentNodeTypes", lang)
		}
	}
}

func TestUnknownExtension(t *testing.T) {
	if spec := ForExtension(".xyz"); spec != nil {
		t.Errorf("ForExtension(.xyz) should be nil, got %v", spec)
	}
	if _, ok := LanguageForExtension(".xyz"); ok {
		t.Error("LanguageForExtension(.xyz) should report false")
	}
}

func TestIsComment(t *testing.T) {
	rust := ForLanguage(Rust)
	if !rust.IsComment("line_comment") {
		t.Error("rust line_comment should be a comment")
	}
	if !rust.IsComment("block_comment") {
		t.Error("rust block_comment should be a comment")
	}
	if rust.IsComment("attribute_item") {
		t.Error("rust attribute_item is not a comment")
	}
	if !ForLanguage(Ruby).IsComment("comment") {
		t.Error("ruby comment should be a comment")
	}
}

func TestMarkersLongestFirst(t *testing.T) {
	for _, l := range AllLanguages() {
		spec := ForLanguage(l)
		for i := 1; i < len(spec.LineCommentMarkers); i++ {
			prev, cur := spec.LineCommentMarkers[i-1], spec.LineCommentMarkers[i]
			if len(prev) < len(cur) {
				t.Errorf("%s: line marker %q listed after shorter %q", l, cur, prev)
			}
		}
		for i := 1; i < len(spec.BlockCommentMarkers); i++ {
			prev, cur := spec.BlockCommentMarkers[i-1], spec.BlockCommentMarkers[i]
			if len(prev.Open) < len(cur.Open) {
				t.Errorf("%s: block opener %q listed after shorter %q", l, cur.Open, prev.Open)
			}
		}
	}
}

func TestIsPreamble(t *testing.T) {
	if !ForLanguage(JavaScript).IsPreamble("hash_bang_line") {
		t.Error("javascript hash_bang_line should be preamble")
	}
	if ForLanguage(Ruby).IsPreamble("comment") {
		t.Error("ruby has no preamble node types")
	}
}
