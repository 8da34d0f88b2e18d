package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ariel-frischer/relnotes/internal/changelog"
	clierrors "github.com/ariel-frischer/relnotes/internal/errors"
)

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Lint change logs for structural problems",
	Long: `Check change logs for structure the parser absorbs silently:
duplicate release headings (where the later section replaces the earlier
one) and decorated level-2 headings that do not start a release.

With no arguments the configured change log is checked. Multiple files are
checked concurrently.

Examples:
  relnotes check                        # Check CHANGES.md
  relnotes check CHANGES.md docs/OLD.md # Check several files`,
	SilenceUsage: true,
	RunE:         runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	paths := args
	if len(paths) == 0 {
		path := cfg.Changelog
		if cmd.Flags().Changed("changelog") {
			path = changelogFlag
		}
		paths = []string{path}
	}

	results := make([][]changelog.Finding, len(paths))
	g, _ := errgroup.WithContext(cmd.Context())
	for i, path := range paths {
		g.Go(func() error {
			source, err := os.ReadFile(path)
			if err != nil {
				return clierrors.WrapWithMessage(err, clierrors.Input,
					"reading change log",
					"Check that "+path+" exists and is readable")
			}
			results[i] = changelog.Lint(path, source)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	plain := plainFlag || cfg.Plain
	location := fmt.Sprint
	if !plain {
		location = color.New(color.Bold).SprintFunc()
	}

	total := 0
	for _, findings := range results {
		for _, f := range findings {
			total++
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n",
				location(fmt.Sprintf("%s:%d:", f.Path, f.Line)), f.Message)
		}
	}

	if total > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "Found %d problem(s) in %d change log(s).\n", total, len(paths))
		return NewExitError(ExitCheckFailed)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "No problems found in %d change log(s).\n", len(paths))
	return nil
}
