package errors

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
)

// CLIErrorAdapter turns errors into exit codes and terminal messages.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
}

func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{verbose: verbose, logger: logger}
}

// ExitCodeFor maps an error to a process exit code. Warnings exit 0.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	classified, ok := AsClassified(err)
	if !ok {
		return 1
	}
	if classified.IsWarning() {
		return 0
	}
	switch classified.Category() {
	case CategoryValidation:
		return 2
	case CategoryConfig:
		return 7
	case CategoryNetwork, CategoryUpstream:
		return 8
	case CategoryParse, CategoryImage, CategoryNavigation, CategoryFileSystem:
		return 11
	case CategoryDaemon, CategoryRuntime:
		return 12
	case CategoryInternal:
		return 10
	default:
		return 1
	}
}

// FormatError renders err for stderr. Config and validation problems are
// always shown in full since the user has to act on them.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	classified, ok := AsClassified(err)
	if !ok {
		return fmt.Sprintf("Error: %v", err)
	}
	switch {
	case a.verbose:
		return classified.Error() + formatContext(classified.Context())
	case classified.Category() == CategoryConfig, classified.Category() == CategoryValidation:
		return "Error: " + classified.Error()
	default:
		return fmt.Sprintf("Error: %s (use -v for details)", classified.Message())
	}
}

func formatContext(ctx ErrorContext) string {
	if len(ctx) == 0 {
		return ""
	}
	keys := make([]string, 0, len(ctx))
	for k := range ctx {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, ctx[k]))
	}
	return " (" + strings.Join(parts, ", ") + ")"
}

// HandleError logs err, prints it and exits with the mapped code.
func (a *CLIErrorAdapter) HandleError(err error) {
	if err == nil {
		return
	}
	a.logError(err)
	fmt.Fprintln(os.Stderr, a.FormatError(err))
	if code := a.ExitCodeFor(err); code != 0 {
		os.Exit(code)
	}
}

func (a *CLIErrorAdapter) logError(err error) {
	classified, ok := AsClassified(err)
	if !ok {
		a.logger.Error("Unclassified error", "error", err)
		return
	}
	level := slog.LevelError
	switch classified.Severity() {
	case SeverityWarning:
		level = slog.LevelWarn
	case SeverityInfo:
		level = slog.LevelInfo
	}
	a.logger.LogAttrs(context.Background(), level, classified.Message(),
		slog.String("category", string(classified.Category())))
}
