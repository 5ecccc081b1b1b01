package pages

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/afero"

	"git.home.luguber.info/inful/relnotes/internal/frontmatterops"
	"git.home.luguber.info/inful/relnotes/internal/logfields"
	"git.home.luguber.info/inful/relnotes/internal/metrics"
	"git.home.luguber.info/inful/relnotes/internal/storage"
)

// Writer persists rendered pages on an afero filesystem.
type Writer struct {
	fs       afero.Fs
	recorder metrics.Recorder
	logger   *slog.Logger
}

func NewWriter(fs afero.Fs, recorder metrics.Recorder, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{fs: fs, recorder: metrics.OrNoop(recorder), logger: logger}
}

// Write renders p to path. It reports false when the file already holds the
// same fingerprint and was left untouched.
func (w *Writer) Write(path string, p Page) (bool, error) {
	content, fp, err := Render(p)
	if err != nil {
		return false, fmt.Errorf("render %s: %w", path, err)
	}
	return w.WriteContent(path, content, fp)
}

// WriteContent writes already rendered content carrying fingerprint fp.
func (w *Writer) WriteContent(path string, content []byte, fp string) (bool, error) {
	existing, err := afero.ReadFile(w.fs, path)
	switch {
	case err == nil:
		if frontmatterops.StoredFingerprint(existing) == fp {
			w.recorder.IncPages(metrics.PageUnchanged)
			w.logger.Debug("Page unchanged", logfields.Path(path))
			return false, nil
		}
	case !errors.Is(err, os.ErrNotExist):
		return false, fmt.Errorf("read %s: %w", path, err)
	}

	if err := storage.WriteFileAtomic(w.fs, path, content, 0o644); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	w.recorder.IncPages(metrics.PageWritten)
	w.logger.Info("Generated page", logfields.Path(path))
	return true, nil
}
