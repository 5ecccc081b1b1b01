package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyRunKind    = "run_kind"
	KeyDocument   = "document"
	KeyUpdate     = "update"
	KeyImageURL   = "image_url"
	KeyCacheKey   = "cache_key"
	KeyEndpoint   = "endpoint"
	KeyAPI        = "api"
	KeyPath       = "path"
	KeyURL        = "url"
	KeyYear       = "year"
	KeyCount      = "count"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func RunKind(k string) slog.Attr      { return slog.String(KeyRunKind, k) }
func Document(title string) slog.Attr { return slog.String(KeyDocument, title) }
func Update(desc string) slog.Attr    { return slog.String(KeyUpdate, desc) }
func ImageURL(u string) slog.Attr     { return slog.String(KeyImageURL, u) }
func CacheKey(k string) slog.Attr     { return slog.String(KeyCacheKey, k) }
func Endpoint(e string) slog.Attr     { return slog.String(KeyEndpoint, e) }
func API(name string) slog.Attr       { return slog.String(KeyAPI, name) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func URL(u string) slog.Attr          { return slog.String(KeyURL, u) }
func Year(y int) slog.Attr            { return slog.Int(KeyYear, y) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }

// Duration logs d in fractional milliseconds.
func Duration(d time.Duration) slog.Attr {
	return slog.Float64(KeyDurationMS, float64(d.Microseconds())/1000)
}

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
