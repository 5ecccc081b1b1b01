package navigation

import (
	"errors"
	"fmt"
	"os"
	"path"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/relnotes/internal/docjson"
	"git.home.luguber.info/inful/relnotes/internal/frontmatter"
	"git.home.luguber.info/inful/relnotes/internal/storage"
	"git.home.luguber.info/inful/relnotes/internal/util/sets"
)

// containerKeys are the navigation fields that hold nested entries.
var containerKeys = []string{"tabs", "anchors", "dropdowns", "groups", "pages"}

// CollectPages returns every page path referenced by the navigation file,
// de-duplicated in first-seen order.
func CollectPages(fs afero.Fs, navPath string) ([]string, error) {
	data, err := afero.ReadFile(fs, navPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNavigationNotFound, navPath)
		}
		return nil, fmt.Errorf("read %s: %w", navPath, err)
	}
	root, err := docjson.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", navPath, err)
	}

	seen := sets.New[string]()
	pages := make([]string, 0)
	add := func(p string) {
		if p != "" && seen.Add(p) {
			pages = append(pages, p)
		}
	}
	collect(docjson.Lookup(root, "navigation"), add)
	return pages, nil
}

func collect(n *yaml.Node, add func(string)) {
	if n == nil {
		return
	}
	switch n.Kind {
	case yaml.ScalarNode:
		add(n.Value)
	case yaml.SequenceNode:
		for _, item := range n.Content {
			collect(item, add)
		}
	case yaml.MappingNode:
		if p := docjson.Lookup(n, "page"); p != nil && p.Kind == yaml.ScalarNode {
			add(p.Value)
		}
		for _, key := range containerKeys {
			collect(docjson.Lookup(n, key), add)
		}
	}
}

// PageFile maps a navigation entry to its file path under root.
func PageFile(root, page string) string {
	if !strings.HasSuffix(page, ".mdx") {
		page += ".mdx"
	}
	return path.Join(root, page)
}

// PrettyTitle derives a title from a page path: "api/get-user" → "Get User".
func PrettyTitle(page string) string {
	base := strings.TrimSuffix(path.Base(page), ".mdx")
	words := strings.FieldsFunc(base, func(r rune) bool { return r == '-' || r == '_' })
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// PlaceholderPage renders the "work in progress" page for title.
func PlaceholderPage(title string) ([]byte, error) {
	front, err := frontmatter.Serialize([]frontmatter.Field{
		{Key: "title", Value: title},
		{Key: "description", Value: "Documentation for " + title},
	})
	if err != nil {
		return nil, err
	}
	body := "\n<Warning>\n**Work in Progress**\n\n" +
		"This page is currently a placeholder. The content for **" + title + "** has not been written yet.\n" +
		"</Warning>\n\n## Overview\n\nComing soon.\n"
	return frontmatter.Join(front, []byte(body), "\n"), nil
}

// Scaffold creates a placeholder for every local page that has no file under
// root. External links are skipped. It returns the created file paths.
func Scaffold(fs afero.Fs, root string, pages []string) ([]string, error) {
	created := make([]string, 0)
	for _, page := range pages {
		if strings.HasPrefix(page, "http") {
			continue
		}
		file := PageFile(root, page)
		exists, err := afero.Exists(fs, file)
		if err != nil {
			return created, fmt.Errorf("stat %s: %w", file, err)
		}
		if exists {
			continue
		}
		content, err := PlaceholderPage(PrettyTitle(page))
		if err != nil {
			return created, err
		}
		if err := storage.WriteFileAtomic(fs, file, content, 0o644); err != nil {
			return created, fmt.Errorf("write %s: %w", file, err)
		}
		created = append(created, file)
	}
	return created, nil
}
