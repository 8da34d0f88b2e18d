// Package cli implements the relnotes command tree.
package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/relnotes/internal/changelog"
	clierrors "github.com/ariel-frischer/relnotes/internal/errors"
)

var (
	changelogFlag string
	refFlag       string
	urlFlag       string
	plainFlag     bool
)

var rootCmd = &cobra.Command{
	Use:   "relnotes <version>",
	Short: "Extract one release's notes from a markdown change log",
	Long: `Extract the change-log section for one release version and print it
as markdown on standard output.

The change log (CHANGES.md by default) is a markdown document where each
release starts with a plain level-2 heading naming the version. relnotes
prints that heading and everything below it up to the next release heading.
Version matching is exact and case-sensitive.

Examples:
  relnotes 0.6.0                      # Extract notes for release 0.6.0
  relnotes -c docs/CHANGELOG.md 1.2.0 # Read a different change log
  relnotes --ref v0.6.0 0.6.0         # Read CHANGES.md from a git tag
  relnotes --url https://example.com/CHANGES.md 0.6.0`,
	Args: func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(1)(cmd, args); err != nil {
			return argumentError(cmd, err)
		}
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExtract(cmd, args[0])
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&changelogFlag, "changelog", "c", "",
		"Path to the change log file (default CHANGES.md, or the configured path)")
	rootCmd.PersistentFlags().BoolVar(&plainFlag, "plain", false,
		"Plain output (no colors, no spinner)")
	rootCmd.Flags().StringVar(&refFlag, "ref", "",
		"Read the change log from a git revision (tag, branch, or commit)")
	rootCmd.Flags().StringVar(&urlFlag, "url", "",
		"Fetch the change log from a URL instead of the file system")
	rootCmd.MarkFlagsMutuallyExclusive("ref", "url")
	rootCmd.MarkFlagsMutuallyExclusive("changelog", "url")

	// Flag parse failures on any command surface as argument errors, so
	// they exit with the invalid-arguments code instead of a generic one.
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return argumentError(cmd, err)
	})
}

// argumentError wraps a cobra argument or flag error with the command's
// usage line and a pointer at --help.
func argumentError(cmd *cobra.Command, err error) *clierrors.CLIError {
	return clierrors.NewArgumentError(err.Error(), cmd.UseLine(),
		"Run '"+cmd.CommandPath()+" --help' for details")
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			// Message already written by the command.
			return exitErr.Code
		}

		printError(rootCmd.ErrOrStderr(), err)
		if cliErr := clierrors.AsCLIError(err); cliErr != nil {
			switch cliErr.Category {
			case clierrors.Argument:
				return ExitInvalidArguments
			case clierrors.Configuration:
				return ExitInvalidArguments
			case clierrors.Input:
				return ExitInputError
			}
		}
		return ExitRuntimeError
	}
	return ExitSuccess
}

// printError writes an error to stderr, with structured formatting and
// remediation steps for CLIErrors.
func printError(w io.Writer, err error) {
	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		if plainFlag {
			fmt.Fprint(w, clierrors.FormatErrorPlain(cliErr))
		} else {
			fmt.Fprint(w, clierrors.FormatError(cliErr))
		}
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}

func runExtract(cmd *cobra.Command, version string) error {
	log, _, err := loadChangelog(cmd)
	if err != nil {
		return err
	}

	if err := changelog.ExtractVersion(log, version, cmd.OutOrStdout()); err != nil {
		var notFound *changelog.VersionNotFoundError
		if errors.As(err, &notFound) {
			// Nothing has been written to stdout on a miss.
			fmt.Fprintln(cmd.ErrOrStderr(), notFound.Error())
			return NewExitError(ExitVersionNotFound)
		}
		return fmt.Errorf("rendering release %s: %w", version, err)
	}

	return nil
}
