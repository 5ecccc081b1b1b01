// Package sources defines where change-log documents come from.
package sources

import (
	"context"

	"git.home.luguber.info/inful/relnotes/internal/release"
)

// Failure records one document that could not be fetched. It does not stop
// the batch.
type Failure struct {
	ID    string
	Title string
	Err   error
}

// Batch is the outcome of listing and fetching a source's documents.
// Documents keep source order.
type Batch struct {
	Documents []release.Document
	Failures  []Failure
}

// Source lists change-log documents. An error means nothing could be listed.
type Source interface {
	Documents(ctx context.Context) (Batch, error)
}
