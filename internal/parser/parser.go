// Package parser tokenizes component source files with tree-sitter. It is
// only used to find the comment header at the top of a file.
package parser

import (
	"fmt"
	"strings"
	"sync"
	"unsafe"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	tree_sitter_bash "github.com/tree-sitter/tree-sitter-bash/bindings/go"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	tree_sitter_ruby "github.com/tree-sitter/tree-sitter-ruby/bindings/go"
	tree_sitter_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	tree_sitter_lua "github.com/tree-sitter-grammars/tree-sitter-lua/bindings/go"

	"github.com/DeusData/component-dirs/internal/lang"
)

// grammars maps each supported language to its binding's language pointer.
var grammars = map[lang.Language]func() unsafe.Pointer{
	lang.Ruby:       tree_sitter_ruby.Language,
	lang.Python:     tree_sitter_python.Language,
	lang.Bash:       tree_sitter_bash.Language,
	lang.Go:         tree_sitter_go.Language,
	lang.JavaScript: tree_sitter_javascript.Language,
	lang.TypeScript: tree_sitter_typescript.LanguageTypescript,
	lang.Rust:       tree_sitter_rust.Language,
	lang.Java:       tree_sitter_java.Language,
	lang.Lua:        tree_sitter_lua.Language,
}

// grammar holds a loaded language and a pool of parsers bound to it.
type grammar struct {
	language *tree_sitter.Language
	parsers  sync.Pool
}

func (g *grammar) parse(source []byte) *tree_sitter.Tree {
	p, _ := g.parsers.Get().(*tree_sitter.Parser)
	defer g.parsers.Put(p)
	return p.Parse(source, nil)
}

var (
	loadOnce sync.Once
	loaded   map[lang.Language]*grammar
)

func load() map[lang.Language]*grammar {
	loadOnce.Do(func() {
		loaded = make(map[lang.Language]*grammar, len(grammars))
		for l, fn := range grammars {
			g := &grammar{language: tree_sitter.NewLanguage(fn())}
			g.parsers.New = func() any {
				p := tree_sitter.NewParser()
				if err := p.SetLanguage(g.language); err != nil {
					panic(fmt.Sprintf("set language %s: %v", l, err))
				}
				return p
			}
			loaded[l] = g
		}
	})
	return loaded
}

// Grammar returns the tree-sitter language for l.
func Grammar(l lang.Language) (*tree_sitter.Language, error) {
	g, ok := load()[l]
	if !ok {
		return nil, fmt.Errorf("unsupported language: %s", l)
	}
	return g.language, nil
}

// Parse parses source into a tree-sitter tree.
// The caller must call tree.Close() when done.
func Parse(l lang.Language, source []byte) (*tree_sitter.Tree, error) {
	g, ok := load()[l]
	if !ok {
		return nil, fmt.Errorf("unsupported language: %s", l)
	}
	tree := g.parse(source)
	if tree == nil {
		return nil, fmt.Errorf("parse failed for language %s", l)
	}
	return tree, nil
}

// Comment is one comment node of a file header.
type Comment struct {
	Kind string
	Text string
	// Line is 1-based.
	Line uint
}

// HeaderComments returns the top-level comments of source that come before
// its first named node that is neither a comment nor a preamble node (such
// as a "#!" line). Comments inside code are never returned.
func HeaderComments(spec *lang.LanguageSpec, source []byte) ([]Comment, error) {
	if len(source) == 0 {
		return nil, nil
	}
	tree, err := Parse(spec.Language, source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()
	var out []Comment
	for i := uint(0); i < root.NamedChildCount(); i++ {
		node := root.NamedChild(i)
		if node == nil {
			continue
		}
		kind := node.Kind()
		switch {
		case spec.IsComment(kind):
			out = append(out, Comment{
				Kind: kind,
				Text: strings.TrimRight(NodeText(node, source), "\r\n"),
				Line: node.StartPosition().Row + 1,
			})
		case spec.IsPreamble(kind):
		default:
			return out, nil
		}
	}
	return out, nil
}

// WalkFunc is called for each node during traversal.
// Return false to skip children.
type WalkFunc func(node *tree_sitter.Node) bool

// Walk visits node and its descendants depth-first.
func Walk(node *tree_sitter.Node, fn WalkFunc) {
	if node == nil || !fn(node) {
		return
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		Walk(node.Child(i), fn)
	}
}

// NodeText returns the source text covered by node.
func NodeText(node *tree_sitter.Node, source []byte) string {
	return string(source[node.StartByte():node.EndByte()])
}
