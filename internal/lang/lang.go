package lang

import "slices"

// Language represents a source language a component file can be written in.
type Language string

const (
	Ruby       Language = "ruby"
	Python     Language = "python"
	Bash       Language = "bash"
	Go         Language = "go"
	JavaScript Language = "javascript"
	TypeScript Language = "typescript"
	Rust       Language = "rust"
	Java       Language = "java"
	Lua        Language = "lua"
)

// AllLanguages returns all supported languages.
func AllLanguages() []Language {
	return []Language{Ruby, Python, Bash, Go, JavaScript, TypeScript, Rust, Java, Lua}
}

// BlockMarker is the opener/closer pair of a block comment.
type BlockMarker struct {
	Open, Close string
}

// LanguageSpec describes how a language spells its comments.
type LanguageSpec struct {
	Language       Language
	FileExtensions []string
	// LineCommentMarkers open a comment running to end of line. Longer
	// markers come first ("//!" before "//").
	LineCommentMarkers []string
	// BlockCommentMarkers, longest opener first.
	BlockCommentMarkers []BlockMarker
	// CommentNodeTypes lists tree-sitter node kinds that represent comments.
	CommentNodeTypes []string
	// PreambleNodeTypes may come before the header comments, e.g. "#!" lines.
	PreambleNodeTypes []string
}

// IsComment reports whether a tree-sitter node kind is a comment in this language.
func (s *LanguageSpec) IsComment(kind string) bool {
	return slices.Contains(s.CommentNodeTypes, kind)
}

// IsPreamble reports whether a tree-sitter node kind may precede the header.
func (s *LanguageSpec) IsPreamble(kind string) bool {
	return slices.Contains(s.PreambleNodeTypes, kind)
}

// registry maps file extensions to language specs.
var registry = map[string]*LanguageSpec{}

// Register adds a LanguageSpec to the global registry.
func Register(spec *LanguageSpec) {
	for _, ext := range spec.FileExtensions {
		registry[ext] = spec
	}
}

// ForExtension returns the LanguageSpec for a file extension (e.g. ".rb").
func ForExtension(ext string) *LanguageSpec {
	return registry[ext]
}

// ForLanguage returns the LanguageSpec for a language.
func ForLanguage(lang Language) *LanguageSpec {
	for _, spec := range registry {
		if spec.Language == lang {
			return spec
		}
	}
	return nil
}

// LanguageForExtension returns the Language for a file extension.
func LanguageForExtension(ext string) (Language, bool) {
	spec := registry[ext]
	if spec == nil {
		return "", false
	}
	return spec.Language, true
}
