package cli

import (
	"context"
	"fmt"
	"os"

	gp "github.com/VantageDataChat/GoDeck"
	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version string // release version, set at build time
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version. main calls
// it with values injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the godeck CLI with the process arguments.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	var verbose bool

	v := version
	if v == "" {
		v = gp.Version
	}
	root := &cobra.Command{
		Use:           "godeck",
		Short:         "GoDeck builds PowerPoint and OpenDocument presentations from deck files",
		Long:          `GoDeck reads a slide deck described in TOML or YAML and writes it as a .pptx or .odp package.`,
		Version:       v,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(cmd.ErrOrStderr(), level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("godeck %s\nlibrary: %s\ncommit: %s\nbuilt: %s\n", v, gp.Version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newBuildCmd())
	root.AddCommand(newInspectCmd())
	root.AddCommand(newInitCmd())

	return root
}

// exists reports whether path names an existing file.
func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
