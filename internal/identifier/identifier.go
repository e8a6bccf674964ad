// Package identifier implements the logical component key used by the
// container: a key string plus the separator that splits it into segments.
package identifier

import "strings"

// Identifier is an immutable component key, e.g. "admin.users" with
// separator ".".
type Identifier struct {
	key       string
	separator string
}

// New returns an Identifier for key split by separator.
func New(key, separator string) Identifier {
	return Identifier{key: key, separator: separator}
}

// Key returns the full key.
func (i Identifier) Key() string { return i.key }

// Separator returns the segment separator.
func (i Identifier) Separator() string { return i.separator }

func (i Identifier) String() string { return i.key }

// Segments returns the key split on the separator.
func (i Identifier) Segments() []string {
	if i.key == "" {
		return nil
	}
	return strings.Split(i.key, i.separator)
}

// RootKey returns the first segment of the key.
func (i Identifier) RootKey() string {
	root, _, _ := strings.Cut(i.key, i.separator)
	return root
}

// StartsWith reports whether prefix is a leading run of whole segments.
// An empty prefix matches every key.
func (i Identifier) StartsWith(prefix string) bool {
	return prefix == "" ||
		i.key == prefix ||
		strings.HasPrefix(i.key, prefix+i.separator)
}

// EndsWith reports whether suffix is a trailing run of whole segments.
// An empty suffix matches every key.
func (i Identifier) EndsWith(suffix string) bool {
	return suffix == "" ||
		i.key == suffix ||
		strings.HasSuffix(i.key, i.separator+suffix)
}

// Namespaced returns a copy with the leading from segments replaced by to.
//
//   - from == to returns i unchanged
//   - empty from prepends to
//   - empty to strips from
//
// A from that does not lead the key (followed by the separator) leaves the
// key as is.
func (i Identifier) Namespaced(from, to string) Identifier {
	if from == to {
		return i
	}

	var leading string
	if to != "" {
		leading = to + i.separator
	}

	var newKey string
	if from == "" {
		newKey = leading + i.key
	} else {
		rest, ok := strings.CutPrefix(i.key, from+i.separator)
		if !ok {
			return i
		}
		newKey = leading + rest
	}

	if newKey == i.key {
		return i
	}
	return New(newKey, i.separator)
}

// KeyWithSeparator returns the segments joined by sep instead of the
// identifier's own separator.
func (i Identifier) KeyWithSeparator(sep string) string {
	return strings.Join(i.Segments(), sep)
}
