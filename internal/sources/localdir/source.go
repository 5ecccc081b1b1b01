// Package localdir reads change-log documents from Markdown files in a
// directory, for offline runs and tests.
package localdir

import (
	"context"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/afero"

	ferrors "git.home.luguber.info/inful/relnotes/internal/foundation/errors"
	"git.home.luguber.info/inful/relnotes/internal/frontmatterops"
	"git.home.luguber.info/inful/relnotes/internal/release"
	"git.home.luguber.info/inful/relnotes/internal/sources"
)

var markdownExts = []string{".md", ".markdown", ".mdx"}

// Source lists Markdown files below Dir in lexical path order.
type Source struct {
	FS  afero.Fs
	Dir string
}

func New(fsys afero.Fs, dir string) *Source { return &Source{FS: fsys, Dir: dir} }

// Documents reads every Markdown file. The title comes from the front matter
// "title" field, falling back to the file name without extension.
func (s *Source) Documents(ctx context.Context) (sources.Batch, error) {
	paths := make([]string, 0)
	err := afero.Walk(s.FS, s.Dir, func(p string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !slices.Contains(markdownExts, strings.ToLower(filepath.Ext(p))) {
			return nil
		}
		paths = append(paths, p)
		return nil
	})
	if err != nil {
		return sources.Batch{}, ferrors.FileSystemError("failed to list documents").
			WithCause(err).
			WithContext("dir", s.Dir).
			Build()
	}
	slices.Sort(paths)

	var batch sources.Batch
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return batch, err
		}
		rel, _ := filepath.Rel(s.Dir, p)
		doc, err := s.read(p, rel)
		if err != nil {
			batch.Failures = append(batch.Failures, sources.Failure{ID: rel, Title: rel, Err: err})
			continue
		}
		batch.Documents = append(batch.Documents, doc)
	}
	return batch, nil
}

func (s *Source) read(p, rel string) (release.Document, error) {
	data, err := afero.ReadFile(s.FS, p)
	if err != nil {
		return release.Document{}, ferrors.FileSystemError("failed to read document").WithCause(err).WithContext("path", p).Build()
	}
	fields, body, err := frontmatterops.Read(data)
	if err != nil {
		return release.Document{}, ferrors.ParseError("invalid front matter").WithCause(err).WithContext("path", p).Build()
	}
	title, ok := frontmatterops.StringField(fields, "title")
	if !ok {
		title = strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
	}
	return release.Document{ID: rel, Title: title, Body: string(body)}, nil
}

var _ sources.Source = (*Source)(nil)
