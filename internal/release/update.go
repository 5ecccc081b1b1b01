package release

import "time"

// UnknownLabel replaces identifiers and labels that could not be read from a title.
const UnknownLabel = "Unknown"

// Document is one raw change-log document as fetched from a source.
type Document struct {
	ID    string
	Title string
	Body  string
}

// Update is one dated change entry.
type Update struct {
	Label       string
	Description string
	// Content is the body in the source dialect, not yet transformed.
	Content    string
	OccurredAt time.Time
	// Source is the position of the originating document in fetch order.
	Source int
}
