package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	listJSONFlag bool
	listYAMLFlag bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the release versions in the change log",
	Long: `List every release version in the change log, in document order.

Change logs conventionally list the newest release first, so the first line
is the most recent release.

Examples:
  relnotes list           # One version per line
  relnotes list --json    # JSON array, for scripting
  relnotes list --yaml    # YAML sequence`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolVar(&listJSONFlag, "json", false, "Emit versions as a JSON array")
	listCmd.Flags().BoolVar(&listYAMLFlag, "yaml", false, "Emit versions as a YAML sequence")
	listCmd.MarkFlagsMutuallyExclusive("json", "yaml")
}

func runList(cmd *cobra.Command, _ []string) error {
	log, _, err := loadChangelog(cmd)
	if err != nil {
		return err
	}

	versions := log.Versions()

	switch {
	case listJSONFlag:
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(versions)
	case listYAMLFlag:
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		defer enc.Close()
		return enc.Encode(versions)
	default:
		for _, v := range versions {
			fmt.Fprintln(cmd.OutOrStdout(), v)
		}
		return nil
	}
}
