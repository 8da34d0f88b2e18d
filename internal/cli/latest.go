package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/relnotes/internal/changelog"
)

var latestNotesFlag bool

var latestCmd = &cobra.Command{
	Use:   "latest",
	Short: "Show the most recent release in the change log",
	Long: `Show the most recent release: the first release heading in the
document. The change log's own ordering decides recency; version keys are
not compared as semver.

Examples:
  relnotes latest          # Print the newest version key
  relnotes latest --notes  # Print the newest release's full notes`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runLatest,
}

func init() {
	rootCmd.AddCommand(latestCmd)

	latestCmd.Flags().BoolVar(&latestNotesFlag, "notes", false,
		"Print the release's markdown instead of just the version key")
}

func runLatest(cmd *cobra.Command, _ []string) error {
	log, _, err := loadChangelog(cmd)
	if err != nil {
		return err
	}

	release, ok := log.Latest()
	if !ok {
		fmt.Fprintf(cmd.ErrOrStderr(), "No releases were found in %s.\n", log.Path)
		return NewExitError(ExitVersionNotFound)
	}

	if !latestNotesFlag {
		fmt.Fprintln(cmd.OutOrStdout(), release.Version)
		return nil
	}

	if err := changelog.Render(cmd.OutOrStdout(), log.Source, release.Elements); err != nil {
		return fmt.Errorf("rendering release %s: %w", release.Version, err)
	}
	return nil
}
