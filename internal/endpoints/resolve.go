package endpoints

import (
	"regexp"
	"strings"
)

// Tier names the fallback step at which a reference resolved.
type Tier string

const (
	TierExact           Tier = "exact"
	TierVersionStripped Tier = "version_stripped"
	TierPlaceholder     Tier = "placeholder"
	TierUnresolved      Tier = "unresolved"
)

// DefaultPlaceholderSuffixes are appended to paths that have no exact match.
var DefaultPlaceholderSuffixes = []string{"/{id}", "/{uuid}", "/{orderId}", "/{customerId}"}

var versionPrefixRe = regexp.MustCompile(`^/v\d+(/|$)`)

// Resolver resolves method+path references against a Lookup.
type Resolver struct {
	lookup   Lookup
	suffixes []string
	observe  func(Tier)
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithPlaceholderSuffixes replaces DefaultPlaceholderSuffixes.
func WithPlaceholderSuffixes(suffixes []string) Option {
	return func(r *Resolver) {
		if len(suffixes) > 0 {
			r.suffixes = append([]string(nil), suffixes...)
		}
	}
}

// WithObserver is called with the tier of every resolution attempt.
func WithObserver(fn func(Tier)) Option {
	return func(r *Resolver) { r.observe = fn }
}

func NewResolver(lookup Lookup, opts ...Option) *Resolver {
	r := &Resolver{lookup: lookup, suffixes: DefaultPlaceholderSuffixes}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve tries, in order: the exact path, the path without a leading /v<N>
// segment, then each placeholder suffix appended to the path and to the
// version-stripped path. The first hit wins.
func (r *Resolver) Resolve(method, path string) (string, Tier) {
	link, tier := r.resolve(method, path)
	if r.observe != nil {
		r.observe(tier)
	}
	return link, tier
}

func (r *Resolver) resolve(method, path string) (string, Tier) {
	if r.lookup == nil {
		return "", TierUnresolved
	}
	if link, ok := r.lookup.Link(Key(method, path)); ok {
		return link, TierExact
	}

	bases := []string{path}
	if stripped, ok := stripVersion(path); ok {
		if link, ok := r.lookup.Link(Key(method, stripped)); ok {
			return link, TierVersionStripped
		}
		bases = append(bases, stripped)
	}

	for _, base := range bases {
		base = strings.TrimRight(base, "/")
		for _, suffix := range r.suffixes {
			if link, ok := r.lookup.Link(Key(method, base+suffix)); ok {
				return link, TierPlaceholder
			}
		}
	}
	return "", TierUnresolved
}

func stripVersion(path string) (string, bool) {
	loc := versionPrefixRe.FindStringIndex(path)
	if loc == nil {
		return "", false
	}
	rest := path[loc[1]:]
	return "/" + rest, true
}
