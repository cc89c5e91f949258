package cli

import (
	"github.com/spf13/cobra"
)

// RootOptions are the flags shared by every command
type RootOptions struct {
	ConfigPath string
	LogFile    string
	NoWatch    bool
}

// New builds the snapdeck command tree
func New() *cobra.Command {
	o := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "snapdeck [deck.toml]",
		Short: "Present a deck of sections that snap one screen at a time.",
		Example: `
snapdeck
snapdeck talk.toml
snapdeck --config ./snapdeck.toml --no-watch talk.toml
`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			deckPath := ""
			if len(args) > 0 {
				deckPath = args[0]
			}
			return Run(cmd.Context(), o, deckPath)
		},
	}

	cmd.PersistentFlags().StringVarP(&o.ConfigPath, "config", "c", "",
		"Config file (default $XDG_CONFIG_HOME/snapdeck/config.toml).")
	cmd.PersistentFlags().StringVar(&o.LogFile, "log-file", "snapdeck.log",
		"Where to write the log.")
	cmd.Flags().BoolVar(&o.NoWatch, "no-watch", false,
		"Do not reload the deck when its file changes.")

	addInitConfig(cmd, o)
	return cmd
}
