package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AlexanderOtavka/polyfill-io-scanner/internal/config"
	"github.com/AlexanderOtavka/polyfill-io-scanner/internal/errors"
	"github.com/AlexanderOtavka/polyfill-io-scanner/internal/sites"
)

// AddCacheCommand adds the cache command and its subcommands to the root command.
func AddCacheCommand(rootCmd *cobra.Command, flags *GlobalFlags) {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local dataset cache",
	}

	cacheCmd.AddCommand(newCacheInfoCmd(flags))
	cacheCmd.AddCommand(newCacheClearCmd(flags))

	rootCmd.AddCommand(cacheCmd)
}

// newCacheInfoCmd creates the cache info subcommand.
func newCacheInfoCmd(flags *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the dataset cache location, size, and age",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCacheInfo(cmd, flags)
		},
	}
}

// newCacheClearCmd creates the cache clear subcommand.
func newCacheClearCmd(flags *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove the cached dataset",
		Long: `Clear removes the cached top-sites dataset. The next scan or sites
command will re-download it. Clearing a missing cache is not an error.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCacheClear(cmd, flags)
		},
	}
}

// runCacheInfo executes the cache info subcommand.
func runCacheInfo(cmd *cobra.Command, flags *GlobalFlags) error {
	out := flags.newOutput(cmd)

	cache, err := openCache(cmd)
	if err != nil {
		return err
	}

	info, err := cache.Stat()
	if err != nil {
		return err
	}

	if flags.Output == OutputJSON {
		return out.JSON(info)
	}

	if !info.Exists {
		out.Info(fmt.Sprintf("no cached dataset at %s", info.Path))
		return nil
	}

	out.Info(fmt.Sprintf("path:     %s", info.Path))
	out.Info(fmt.Sprintf("size:     %d bytes", info.SizeBytes))
	out.Info(fmt.Sprintf("written:  %s", info.ModTime.Format("2006-01-02 15:04:05 MST")))
	return nil
}

// runCacheClear executes the cache clear subcommand.
func runCacheClear(cmd *cobra.Command, flags *GlobalFlags) error {
	out := flags.newOutput(cmd)

	cache, err := openCache(cmd)
	if err != nil {
		return err
	}

	if err := cache.Clear(); err != nil {
		return err
	}

	if flags.Output == OutputJSON {
		return out.JSON(map[string]string{"status": "cleared", "path": cache.Path()})
	}
	out.Success("dataset cache cleared")
	return nil
}

// openCache resolves the configured cache directory and opens the cache.
func openCache(cmd *cobra.Command) (*sites.Cache, error) {
	cfg, err := config.Load(cmd.Context())
	if err != nil {
		return nil, errors.NewExitCode2Error(err)
	}

	cacheDir, err := config.CacheDir(cfg)
	if err != nil {
		return nil, err
	}
	return sites.NewCache(cacheDir), nil
}
