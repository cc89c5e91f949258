package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"snapdeck/internal/config"
)

func addInitConfig(topLevel *cobra.Command, o *RootOptions) {
	var force bool

	cmd := &cobra.Command{
		Use:   "init-config",
		Short: "write the default configuration file",
		Example: `
snapdeck init-config
snapdeck init-config --config ./snapdeck.toml --force
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := InitConfig(o.ConfigPath, force)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file.")

	topLevel.AddCommand(cmd)
}

// ErrConfigExists is returned by InitConfig when it would overwrite a file
var ErrConfigExists = errors.New("config file already exists")

// InitConfig writes the default configuration to path, or to the default
// location when path is empty, and returns where it was written
func InitConfig(path string, force bool) (string, error) {
	svc := config.NewConfigServiceAt(path)
	if _, err := os.Stat(svc.Path()); err == nil && !force {
		return "", fmt.Errorf("%w: %s", ErrConfigExists, svc.Path())
	}
	if err := svc.Save(config.DefaultConfig()); err != nil {
		return "", err
	}
	return svc.Path(), nil
}
