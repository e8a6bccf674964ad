// Package directives extracts per-file component settings from the leading
// comments of a source file:
//
//	# auto_register: false
//	# memoize: true
//
//	class Users
//
// Only the header is read: the comments before the first line of code.
package directives

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/DeusData/component-dirs/internal/lang"
	"github.com/DeusData/component-dirs/internal/parser"
)

// Well-known directive keys.
const (
	KeyAutoRegister = "auto_register"
	KeyMemoize      = "memoize"
	KeyLoader       = "loader"
)

// defaultCommentPrefix is used for extensions with no registered language.
const defaultCommentPrefix = "#"

// headerLimit caps how much of a file is handed to tree-sitter.
const headerLimit = 64 << 10

var fallbackSpec = &lang.LanguageSpec{LineCommentMarkers: []string{defaultCommentPrefix}}

// directiveRE matches the remainder of a comment after its prefix.
var directiveRE = regexp.MustCompile(`^\s+([A-Za-z][A-Za-z0-9_]+):\s+(.+?)\s*$`)

// Func parses the directives of one file.
type Func func(path string) (Overrides, error)

// Overrides holds the directives found in a file. Values are bool for
// "true"/"false" and string otherwise.
type Overrides map[string]any

// Bool returns a boolean directive.
func (o Overrides) Bool(key string) (value, ok bool) {
	value, ok = o[key].(bool)
	return value, ok
}

// String returns a string directive.
func (o Overrides) String(key string) (string, bool) {
	s, ok := o[key].(string)
	return s, ok
}

// AutoRegister returns the auto_register directive, if set.
func (o Overrides) AutoRegister() (bool, bool) { return o.Bool(KeyAutoRegister) }

// Memoize returns the memoize directive, if set.
func (o Overrides) Memoize() (bool, bool) { return o.Bool(KeyMemoize) }

// Loader returns the loader directive, if set.
func (o Overrides) Loader() (string, bool) { return o.String(KeyLoader) }

// Parse reads the header of the file at path and returns its directives.
// For registered languages tree-sitter decides where the header ends, so
// block comments, doc comments and indented comments count. Other files
// fall back to a scan of leading "#" lines.
func Parse(path string) (Overrides, error) {
	spec := lang.ForExtension(filepath.Ext(path))

	var (
		comments []string
		err      error
	)
	if spec != nil {
		comments, err = treeComments(spec, path)
	} else {
		spec = fallbackSpec
		comments, err = scanComments(path, defaultCommentPrefix)
	}
	if err != nil {
		return nil, err
	}

	out := Overrides{}
	for _, c := range comments {
		for _, line := range commentBody(spec, c) {
			m := directiveRE.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			out[m[1]] = coerce(m[2])
		}
	}

	if len(out) > 0 {
		slog.Debug("directives.parsed", "path", path, "count", len(out))
	}
	return out, nil
}

// treeComments parses the leading bytes of the file and returns the text of
// its header comment nodes.
func treeComments(spec *lang.LanguageSpec, path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	source, err := io.ReadAll(io.LimitReader(f, headerLimit))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	nodes, err := parser.HeaderComments(spec, source)
	if err != nil {
		return nil, fmt.Errorf("directives %s: %w", path, err)
	}
	texts := make([]string, len(nodes))
	for i, n := range nodes {
		texts[i] = n.Text
	}
	return texts, nil
}

// scanComments returns the leading lines of the file that start with
// prefix, skipping blank lines and stopping at anything else.
func scanComments(path, prefix string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, prefix) {
			break
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return lines, nil
}

// commentBody strips the comment markers from text and returns its lines.
// Continuation lines of a block comment lose a leading "*" and are
// re-indented so they match like the first line.
func commentBody(spec *lang.LanguageSpec, text string) []string {
	text = strings.TrimSpace(text)

	for _, b := range spec.BlockCommentMarkers {
		rest, ok := strings.CutPrefix(text, b.Open)
		if !ok {
			continue
		}
		rest = strings.TrimSuffix(strings.TrimRight(rest, " \t"), b.Close)
		lines := strings.Split(rest, "\n")
		for i := 1; i < len(lines); i++ {
			l := strings.TrimPrefix(strings.TrimSpace(lines[i]), "*")
			lines[i] = " " + strings.TrimSpace(l)
		}
		return lines
	}

	for _, m := range spec.LineCommentMarkers {
		if rest, ok := strings.CutPrefix(text, m); ok {
			return []string{rest}
		}
	}
	return nil
}

func coerce(v string) any {
	switch v {
	case "true":
		return true
	case "false":
		return false
	}
	return v
}
