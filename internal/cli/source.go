package cli

import (
	"context"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ariel-frischer/relnotes/internal/changelog"
	"github.com/ariel-frischer/relnotes/internal/config"
	clierrors "github.com/ariel-frischer/relnotes/internal/errors"
)

// loadConfig loads the tool configuration, wrapping failures for display.
func loadConfig() (*config.Configuration, error) {
	cfg, err := config.Load(config.LoadOptions{})
	if err != nil {
		return nil, clierrors.WrapWithMessage(err, clierrors.Configuration,
			"loading configuration",
			"Check .relnotes.yml and ~/.config/relnotes/config.yml for syntax errors")
	}
	return cfg, nil
}

// loadChangelog resolves the change-log source for the current invocation
// (working-tree file, git revision, or URL) and parses it. Flag values
// override the loaded configuration.
func loadChangelog(cmd *cobra.Command) (*changelog.Changelog, *config.Configuration, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	path := cfg.Changelog
	if cmd.Flags().Changed("changelog") {
		path = changelogFlag
	}
	plain := plainFlag || cfg.Plain

	switch {
	case urlFlag != "":
		ctx, cancel := context.WithTimeout(cmd.Context(),
			time.Duration(cfg.RemoteTimeout)*time.Second)
		defer cancel()

		stop := startSpinner(plain, "fetching "+urlFlag)
		log, err := changelog.FetchRemote(ctx, urlFlag)
		stop()
		if err != nil {
			return nil, nil, clierrors.WrapWithMessage(err, clierrors.Input,
				"fetching change log",
				"Check that the URL is reachable and serves the raw markdown file",
				"Raise remote_timeout in the config if the server is slow")
		}
		return log, cfg, nil

	case refFlag != "":
		log, err := changelog.LoadGitRef(".", refFlag, path)
		if err != nil {
			return nil, nil, clierrors.WrapWithMessage(err, clierrors.Input,
				"reading change log from git",
				"Run relnotes inside the git repository",
				"Check that the revision exists: git rev-parse "+refFlag)
		}
		return log, cfg, nil

	default:
		log, err := changelog.Load(path)
		if err != nil {
			return nil, nil, clierrors.WrapWithMessage(err, clierrors.Input,
				"reading change log",
				"Run relnotes from the directory containing "+path,
				"Pass --changelog to point at the change-log file")
		}
		return log, cfg, nil
	}
}

// startSpinner shows a progress spinner on stderr while a slow source loads.
// It is a no-op in plain mode or when stderr is not a terminal. The returned
// function stops the spinner and must be called before writing output.
func startSpinner(plain bool, message string) func() {
	if plain || !term.IsTerminal(int(os.Stderr.Fd())) {
		return func() {}
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond,
		spinner.WithWriter(os.Stderr))
	s.Suffix = " " + message
	s.Start()
	return s.Stop
}
