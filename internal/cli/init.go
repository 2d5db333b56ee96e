package cli

import (
	"fmt"
	"os"

	"github.com/VantageDataChat/GoDeck/internal/deck"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init <deck>",
		Short: "Write a starter deck file",
		Long:  `Init writes a small example deck in TOML or YAML, chosen by the file extension.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if exists(path) && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			f, err := os.Create(path)
			if err != nil {
				return err
			}
			if err := deck.Sample().Encode(f, deck.FormatOf(path)); err != nil {
				f.Close()
				os.Remove(path)
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Info("wrote deck", "path", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}
