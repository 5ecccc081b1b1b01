// Package navigation edits the Mintlify docs.json navigation tree and
// scaffolds placeholder pages for entries that have no file yet.
package navigation

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/relnotes/internal/docjson"
	"git.home.luguber.info/inful/relnotes/internal/storage"
)

var (
	ErrNavigationNotFound     = errors.New("navigation file not found")
	ErrUnsupportedNavigation  = errors.New("navigation has neither tabs, groups nor a list of groups")
	ErrMissingNavigationField = errors.New("navigation file has no navigation field")
)

// GroupOptions names the group holding release pages and where to create it.
type GroupOptions struct {
	Group        string
	Tab          string
	ArchiveGroup string
	Prefix       string
}

// Outcome reports what UpdateGroup did.
type Outcome string

const (
	OutcomeReplaced   Outcome = "replaced"
	OutcomeTabAdded   Outcome = "tab_added"
	OutcomeGroupAdded Outcome = "group_added"
)

// Result of an UpdateGroup call. Changed is false when the file already had
// the wanted structure and was not rewritten.
type Result struct {
	Outcome Outcome
	Changed bool
}

// GroupPages builds the page list for the release group: the index page and,
// when years is non-empty, an archive sub-group with one page per year.
func GroupPages(opts GroupOptions, years []int) *yaml.Node {
	pages := docjson.Array(opts.Prefix + "/index")
	if len(years) == 0 {
		return pages
	}
	archive := make([]string, 0, len(years))
	for _, y := range years {
		archive = append(archive, opts.Prefix+"/"+strconv.Itoa(y))
	}
	pages.Content = append(pages.Content, docjson.Object("group", opts.ArchiveGroup, "pages", archive))
	return pages
}

// UpdateGroup points every group named opts.Group at the release pages. When
// no such group exists, a tab (tab navigation) or a top-level group (group
// list navigation) is appended. A missing file yields ErrNavigationNotFound.
func UpdateGroup(fs afero.Fs, path string, opts GroupOptions, years []int) (Result, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Result{}, fmt.Errorf("%w: %s", ErrNavigationNotFound, path)
		}
		return Result{}, fmt.Errorf("read %s: %w", path, err)
	}

	root, err := docjson.Parse(data)
	if err != nil {
		return Result{}, fmt.Errorf("parse %s: %w", path, err)
	}
	nav := docjson.Lookup(root, "navigation")
	if nav == nil {
		return Result{}, fmt.Errorf("%w: %s", ErrMissingNavigationField, path)
	}

	outcome, err := applyGroup(nav, opts, years)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", path, err)
	}

	out, err := docjson.Marshal(root)
	if err != nil {
		return Result{}, fmt.Errorf("encode %s: %w", path, err)
	}
	if bytes.Equal(out, data) {
		return Result{Outcome: outcome}, nil
	}
	if err := storage.WriteFileAtomic(fs, path, out, 0o644); err != nil {
		return Result{}, fmt.Errorf("write %s: %w", path, err)
	}
	return Result{Outcome: outcome, Changed: true}, nil
}

func applyGroup(nav *yaml.Node, opts GroupOptions, years []int) (Outcome, error) {
	pages := func() *yaml.Node { return GroupPages(opts, years) }

	var items *yaml.Node
	switch {
	case nav.Kind == yaml.SequenceNode:
		items = nav
	case docjson.Lookup(nav, "tabs") != nil:
		items = docjson.Lookup(nav, "tabs")
	case docjson.Lookup(nav, "groups") != nil:
		items = docjson.Lookup(nav, "groups")
	default:
		return "", ErrUnsupportedNavigation
	}

	if replaceGroup(items, opts.Group, pages) {
		return OutcomeReplaced, nil
	}

	newGroup := docjson.Object("group", opts.Group, "pages", pages())
	if nav.Kind == yaml.MappingNode && docjson.Lookup(nav, "tabs") != nil {
		items.Content = append(items.Content, docjson.Object(
			"tab", opts.Tab,
			"groups", docjson.Array(newGroup),
		))
		return OutcomeTabAdded, nil
	}
	items.Content = append(items.Content, newGroup)
	return OutcomeGroupAdded, nil
}

// replaceGroup walks tabs, groups and nested page lists, replacing the pages
// of every group named name. It reports whether any group matched.
func replaceGroup(items *yaml.Node, name string, pages func() *yaml.Node) bool {
	if items == nil || items.Kind != yaml.SequenceNode {
		return false
	}
	found := false
	for _, item := range items.Content {
		if item.Kind != yaml.MappingNode {
			continue
		}
		if groups := docjson.Lookup(item, "groups"); groups != nil {
			if replaceGroup(groups, name, pages) {
				found = true
			}
			continue
		}
		if g := docjson.Lookup(item, "group"); g != nil && g.Value == name {
			docjson.Set(item, "pages", pages())
			found = true
			continue
		}
		if sub := docjson.Lookup(item, "pages"); sub != nil && hasObject(sub) {
			if replaceGroup(sub, name, pages) {
				found = true
			}
		}
	}
	return found
}

func hasObject(seq *yaml.Node) bool {
	for _, n := range seq.Content {
		if n.Kind == yaml.MappingNode {
			return true
		}
	}
	return false
}
