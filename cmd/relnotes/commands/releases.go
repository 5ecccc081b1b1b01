package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/afero"

	"git.home.luguber.info/inful/relnotes/internal/build"
)

// ReleasesCmd implements the 'releases' command.
type ReleasesCmd struct {
	Now time.Time `help:"Date the archive partition is computed from (YYYY-MM-DD)" format:"2006-01-02"`
}

func (r *ReleasesCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	res, err := build.NewReleaseNotesService(afero.NewOsFs()).
		WithLogger(logger(g)).
		Run(ctx, build.Request{Config: cfg, Now: r.Now})
	printSummary(res)
	return err
}

func printSummary(res *build.Result) {
	if res == nil {
		return
	}
	fmt.Printf("%s run %s: %s in %s\n", res.Kind, res.RunID, res.Status, res.Duration.Round(time.Millisecond))
	switch res.Kind {
	case build.KindReleases:
		fmt.Printf("  documents: %d (%d skipped), updates: %d (%d undated)\n",
			res.Documents, res.DocumentsFailed, res.Updates, res.Undated)
	case build.KindAPIDocs:
		for _, api := range res.APIs {
			fmt.Printf("  %s: %d operations -> %s\n", api.API, api.Operations, api.SpecPath)
		}
		if len(res.APIFailures) > 0 {
			fmt.Printf("  failed: %s\n", strings.Join(res.APIFailures, ", "))
		}
	}
	for _, p := range res.PagesWritten {
		fmt.Printf("  wrote %s\n", p)
	}
	if res.PagesUnchanged > 0 {
		fmt.Printf("  %d page(s) unchanged\n", res.PagesUnchanged)
	}
}
