package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/lcmvec/internal/wire"
)

func historyCmd(state *rootState) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List generation runs recorded in the manifest",
		Long: `List generation runs recorded in the SQLite manifest, newest first.

The manifest is taken from --manifest, else from the manifest key of the
project configuration.

Examples:
  lcmvec history --manifest build/lcmvec.db
  lcmvec history --limit 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(state.configPath)
			if err != nil {
				return err
			}
			manifest := stringSetting(cmd, "manifest", state.manifest, cfg.Manifest)
			if manifest == "" {
				return fmt.Errorf("no manifest: pass --manifest or set manifest in the project configuration")
			}
			cmd.SilenceUsage = true

			svc, cleanup, err := wire.GenerateService(manifest, state.logger)
			if err != nil {
				return err
			}
			defer cleanup()

			runs, err := svc.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No generation runs recorded.")
				return nil
			}

			for i, run := range runs {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintf(out, "%s  %s  %s (%s: %s)\n",
					color.New(color.FgCyan).Sprint(run.CreatedAt),
					shortID(run.ID),
					run.Title,
					run.Target,
					strings.Join(run.Fields, ", "))
				for _, a := range run.Artifacts {
					fmt.Fprintf(out, "    %-8s %s  %s  %d bytes\n", a.Kind, a.Path, shortID(a.SHA256), a.Size)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "maximum number of runs to list (0 for all)")

	return cmd
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
