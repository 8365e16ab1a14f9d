package cli

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/AlexanderOtavka/polyfill-io-scanner/internal/config"
	"github.com/AlexanderOtavka/polyfill-io-scanner/internal/errors"
)

// AddConfigCommand adds the config command and its subcommands to the root command.
func AddConfigCommand(rootCmd *cobra.Command, flags *GlobalFlags) {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect polyscan configuration",
	}

	configCmd.AddCommand(newConfigShowCmd(flags))

	rootCmd.AddCommand(configCmd)
}

// newConfigShowCmd creates the config show subcommand.
func newConfigShowCmd(flags *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Long: `Show prints the configuration after merging defaults, the global
config (~/.polyscan/config.yaml), the project config
(.polyscan/config.yaml), and POLYSCAN_* environment variables.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigShow(cmd, flags)
		},
	}
}

// runConfigShow executes the config show subcommand.
func runConfigShow(cmd *cobra.Command, flags *GlobalFlags) error {
	out := flags.newOutput(cmd)

	cfg, err := config.Load(cmd.Context())
	if err != nil {
		return errors.NewExitCode2Error(err)
	}

	if flags.Output == OutputJSON {
		return out.JSON(cfg)
	}

	rendered, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "failed to render configuration")
	}
	_, err = cmd.OutOrStdout().Write(rendered)
	return err
}
