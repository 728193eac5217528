package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mehedi-hridoy/creator-pulse/internal/insights"
	"github.com/mehedi-hridoy/creator-pulse/pkg/contracts"
)

func newVersionCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version and engine info",
		Args:  cobra.NoArgs,
		// Version needs no configuration
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			info := contracts.GetVersionInfo()
			backend, err := insights.SelectBackend(insights.BackendAuto)
			if err != nil {
				return err
			}
			engine := backend.Capabilities().Engine()
			out := cmd.OutOrStdout()

			backends := insights.AvailableBackends()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(struct {
					contracts.VersionInfo
					Engine   string   `json:"engine"`
					Backends []string `json:"backends"`
				}{info, engine, backends})
			}

			fmt.Fprintln(out, contracts.GetFullVersionString())
			fmt.Fprintf(out, " - stage: %s\n", info.Stage)
			fmt.Fprintf(out, " - engine: %s\n", engine)
			fmt.Fprintf(out, " - backends: %s\n", strings.Join(backends, ", "))
			fmt.Fprintf(out, " - report format: %s\n", info.ReportFormat)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print version info as JSON")
	return cmd
}
