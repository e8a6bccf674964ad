// Package inflector maps between on-disk file names and in-memory constant
// names, following Ruby conventions: "admin/user_repo" <-> "Admin::UserRepo".
package inflector

import (
	"regexp"
	"strings"
)

// Inflector translates naming conventions.
type Inflector interface {
	// Camelize turns a slash-separated snake_case path into a constant
	// name ("admin/user_repo" -> "Admin::UserRepo").
	Camelize(s string) string
	// Underscore is the inverse of Camelize.
	Underscore(s string) string
}

const (
	pathSeparator  = "/"
	constSeparator = "::"
)

var (
	wordRE          = regexp.MustCompile(`\w+`)
	acronymBoundary = regexp.MustCompile(`([A-Z\d]+)([A-Z][a-z])`)
	camelBoundary   = regexp.MustCompile(`([a-z\d])([A-Z])`)
)

// Words returns every maximal run of word characters in s. It is the
// splitter used to turn a relative file path into key segments: both path
// separators and punctuation such as "-" or "." end a word, underscores
// do not.
func Words(s string) []string {
	return wordRE.FindAllString(s, -1)
}

// Option configures the default inflector.
type Option func(*rules)

// WithAcronyms registers words that camelize to a fixed spelling, e.g.
// "API" makes "api_client" camelize to "APIClient".
func WithAcronyms(acronyms ...string) Option {
	return func(r *rules) {
		for _, a := range acronyms {
			if a == "" {
				continue
			}
			r.acronyms[strings.ToLower(a)] = a
		}
	}
}

type rules struct {
	acronyms map[string]string
}

// Default returns the conventional inflector.
func Default(opts ...Option) Inflector {
	r := &rules{acronyms: map[string]string{}}
	for _, o := range opts {
		o(r)
	}
	return r
}

func (r *rules) Camelize(s string) string {
	parts := strings.Split(s, pathSeparator)
	for i, part := range parts {
		parts[i] = r.camelizeWord(part)
	}
	return strings.Join(parts, constSeparator)
}

func (r *rules) camelizeWord(s string) string {
	var b strings.Builder
	for _, w := range strings.Split(s, "_") {
		if w == "" {
			continue
		}
		if a, ok := r.acronyms[strings.ToLower(w)]; ok {
			b.WriteString(a)
			continue
		}
		b.WriteString(strings.ToUpper(w[:1]))
		b.WriteString(w[1:])
	}
	return b.String()
}

func (r *rules) Underscore(s string) string {
	s = strings.ReplaceAll(s, constSeparator, pathSeparator)
	s = acronymBoundary.ReplaceAllString(s, "${1}_${2}")
	s = camelBoundary.ReplaceAllString(s, "${1}_${2}")
	s = strings.ReplaceAll(s, "-", "_")
	return strings.ToLower(s)
}
