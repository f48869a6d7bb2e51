package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/example/lcmvec/internal/app"
	"github.com/example/lcmvec/internal/config"
	"github.com/example/lcmvec/internal/ports/primary"
	"github.com/example/lcmvec/internal/vectorgen"
	"github.com/example/lcmvec/internal/wire"
)

type generateFlags struct {
	headerDir  string
	lcmtypeDir string
	title      string
	target     string
	dryRun     bool
	check      bool
}

func generateCmd(state *rootState) *cobra.Command {
	var flags generateFlags

	cmd := &cobra.Command{
		Use:   "lcmvec --title \"words...\" [flags] FIELD [FIELD ...]",
		Short: "Generate an LCM-backed named vector",
		Long: `Generate the source artifacts of a named vector of double-precision fields:
  - a type definition with one index constant and one accessor pair per field,
    plus encode/decode to an LCM message (<header-dir>/<snake>.h or .go)
  - storage for the index constants (<header-dir>/<snake>.cc or _indices.go)
  - the LCM message schema (<lcmtype-dir>/lcmt_<snake>_t.lcm)

Fields keep the order given: the first field is row 0.
A field named like a subcommand must follow "--".

Examples:
  lcmvec --title "Driving Command" steering_angle throttle
  lcmvec --title "Simple Car State" --header-dir gen --target go x y heading velocity
  lcmvec --title "Driving Command" --check steering_angle throttle`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("%w: give at least one FIELD", vectorgen.ErrNoFields)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, state, &flags, args)
		},
	}

	cmd.Flags().StringVar(&flags.headerDir, "header-dir", ".", "directory for the type definition and constant storage")
	cmd.Flags().StringVar(&flags.lcmtypeDir, "lcmtype-dir", ".", "directory for the LCM schema")
	cmd.Flags().StringVar(&flags.title, "title", "", "title of the vector, as words (required)")
	cmd.Flags().StringVar(&flags.target, "target", string(vectorgen.TargetCpp), "emitted language: cpp or go")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "print the artifacts without writing them")
	cmd.Flags().BoolVar(&flags.check, "check", false, "fail if the artifacts on disk differ from what would be generated")
	cmd.MarkFlagsMutuallyExclusive("dry-run", "check")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func runGenerate(cmd *cobra.Command, state *rootState, flags *generateFlags, fields []string) error {
	cfg, err := loadConfig(state.configPath)
	if err != nil {
		return err
	}

	req := &vectorgen.Request{
		Title:      flags.title,
		Fields:     fields,
		HeaderDir:  stringSetting(cmd, "header-dir", flags.headerDir, cfg.HeaderDir),
		LcmtypeDir: stringSetting(cmd, "lcmtype-dir", flags.lcmtypeDir, cfg.LcmtypeDir),
		Target:     vectorgen.Target(stringSetting(cmd, "target", flags.target, cfg.Target)),
		Generator:  cfg.Generator,
		Project:    cfg.ProjectOptions(),
	}

	// Argument errors are reported with usage, before any file I/O.
	if !req.Target.Valid() {
		return fmt.Errorf("%w %q (valid: cpp, go)", vectorgen.ErrUnknownTarget, req.Target)
	}
	if _, err := vectorgen.NewNamingContext(req.Title, req.Fields, req.Target); err != nil {
		return err
	}
	cmd.SilenceUsage = true

	manifest := stringSetting(cmd, "manifest", state.manifest, cfg.Manifest)
	svc, cleanup, err := wire.GenerateService(manifest, state.logger)
	if err != nil {
		return err
	}
	defer cleanup()

	opts := primary.GenerateOptions{Mode: primary.ModeWrite}
	switch {
	case flags.dryRun:
		opts.Mode = primary.ModeDryRun
	case flags.check:
		opts.Mode = primary.ModeCheck
	}

	state.logger.Debug("generating",
		zap.String("title", req.Title),
		zap.Strings("fields", req.Fields),
		zap.String("target", string(req.Target)))

	result, err := svc.Generate(cmd.Context(), req, opts)
	out := cmd.OutOrStdout()
	switch {
	case errors.Is(err, app.ErrDrift):
		printDrift(out, result)
		return err
	case err != nil:
		return err
	}

	switch opts.Mode {
	case primary.ModeDryRun:
		printDryRun(out, result, req.Target)
	case primary.ModeCheck:
		for _, f := range result.Files {
			fmt.Fprintf(out, "%s %s is up to date\n", color.New(color.FgGreen).Sprint("✓"), f.Path)
		}
	default:
		for _, f := range result.Files {
			fmt.Fprintf(out, "%s Wrote %s\n", color.New(color.FgGreen).Sprint("✓"), f.Path)
		}
		if result.RunID != "" {
			fmt.Fprintf(out, "Recorded run %s in %s\n", result.RunID, manifest)
		}
	}

	return nil
}

func printDryRun(out io.Writer, result *primary.GenerateResult, target vectorgen.Target) {
	fmt.Fprintf(out, "Generating %s (%d fields, target %s)\n\n",
		result.Naming.Camel, result.Naming.NumCoordinates(), target)

	fmt.Fprintln(out, "Files to write:")
	for _, f := range result.Files {
		fmt.Fprintf(out, "  %s\n", f.Path)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "(dry-run mode - no files written)")
	fmt.Fprintln(out)

	for _, f := range result.Files {
		fmt.Fprintf(out, "--- %s ---\n", f.Path)
		fmt.Fprint(out, f.Content)
		if !strings.HasSuffix(f.Content, "\n") {
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out)
	}
}

func printDrift(out io.Writer, result *primary.GenerateResult) {
	for _, d := range result.Drift {
		label := color.New(color.FgYellow).Sprint("STALE  ")
		if d.Reason == "missing" {
			label = color.New(color.FgRed).Sprint("MISSING")
		}
		fmt.Fprintf(out, "  %s %s%s\n", label, d.Path, lastWriter(d))
	}
}

// lastWriter describes the manifest run that last wrote a stale artifact.
func lastWriter(d primary.DriftEntry) string {
	switch {
	case d.LastRunID == "":
		return ""
	case d.EditedSinceRun:
		return fmt.Sprintf(" (written by run %s, edited since)", shortID(d.LastRunID))
	default:
		return fmt.Sprintf(" (written by run %s with different inputs)", shortID(d.LastRunID))
	}
}

// loadConfig reads the file named by --config, else .lcmvec.yaml in the
// working directory when present.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.LoadConfig(".")
}

// stringSetting returns the flag value when it was given explicitly, else
// the configured value, else the flag default.
func stringSetting(cmd *cobra.Command, name, flagValue, configured string) string {
	if cmd.Flags().Changed(name) || configured == "" {
		return flagValue
	}
	return configured
}
