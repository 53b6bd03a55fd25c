package cli

import (
	"encoding/json"
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/jsm-agent/internal/core/domain"
)

var instancesCmd = &cobra.Command{
	Use:   "instances",
	Short: "List reachable Jira instances",
	Long: `List the Jira instances reachable with the current credentials.

With a statically configured instance this prints that instance. In OAuth
mode the list is discovered from the provider and cached for the session.`,
	RunE: runInstances,
}

var instancesJSON bool

func init() {
	instancesCmd.Flags().BoolVar(&instancesJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(instancesCmd)
}

func runInstances(cmd *cobra.Command, _ []string) error {
	if tenantService == nil {
		return errors.New("tenant service not configured")
	}

	out := tenantService.List(cmd.Context(), sessionStore)
	if out.IsPending() {
		cmd.Println(out.Message())
		return nil
	}
	if out.IsError() {
		return errors.New(out.Message())
	}

	tenants, ok := out.Data().(domain.TenantMap)
	if !ok {
		return errors.New("unexpected response shape")
	}

	if instancesJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(tenants)
	}

	if len(tenants) == 0 {
		cmd.Println("No reachable instances.")
		return nil
	}

	for _, url := range tenants.URLs() {
		t := tenants[url]
		if t.Name != "" {
			cmd.Printf("%s (%s)\n", url, t.Name)
		} else {
			cmd.Println(url)
		}
	}
	return nil
}
