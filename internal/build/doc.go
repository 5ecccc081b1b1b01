// Package build runs the generation pipelines for relnotes.
//
// ReleaseNotesService turns a document source into release pages and
// updates the site navigation. APIDocsService mirrors every configured API
// description and renders its introduction and changelog. The CLI and the
// daemon both route through these services.
package build
