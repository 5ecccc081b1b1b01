package endpoints

import (
	"strings"
)

// Operation is the part of an API operation needed to link to its page.
type Operation struct {
	Method  string
	Path    string
	Summary string
	Tags    []string
}

// Key returns the index key of an operation: upper-cased method, verbatim path.
func Key(method, path string) string {
	return strings.ToUpper(method) + " " + path
}

// Lookup finds the link registered under an exact Key.
type Lookup interface {
	Link(key string) (string, bool)
}

// Index maps operation keys of one API description to documentation links.
type Index struct {
	base  string
	links map[string]string
	order []string
}

// NewIndex builds the index for ops published under base (e.g. "api-reference").
// A later operation with the same key replaces an earlier one.
func NewIndex(base string, ops []Operation) *Index {
	idx := &Index{
		base:  strings.Trim(base, "/"),
		links: make(map[string]string, len(ops)),
	}
	for _, op := range ops {
		key := Key(op.Method, op.Path)
		if _, exists := idx.links[key]; !exists {
			idx.order = append(idx.order, key)
		}
		idx.links[key] = idx.linkFor(op)
	}
	return idx
}

func (idx *Index) linkFor(op Operation) string {
	group := ""
	if len(op.Tags) > 0 {
		group = Slugify(op.Tags[0])
	}
	parts := make([]string, 0, 3)
	for _, p := range []string{idx.base, group, OperationSlug(op)} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return "/" + strings.Join(parts, "/")
}

func (idx *Index) Link(key string) (string, bool) {
	link, ok := idx.links[key]
	return link, ok
}

// Keys returns the registered keys in declaration order.
func (idx *Index) Keys() []string { return append([]string(nil), idx.order...) }

func (idx *Index) Len() int { return len(idx.links) }

// Set searches several indexes in order; the first index holding a key wins.
type Set []*Index

func (s Set) Link(key string) (string, bool) {
	for _, idx := range s {
		if idx == nil {
			continue
		}
		if link, ok := idx.Link(key); ok {
			return link, true
		}
	}
	return "", false
}
