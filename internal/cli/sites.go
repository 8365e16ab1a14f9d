package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AlexanderOtavka/polyfill-io-scanner/internal/config"
	"github.com/AlexanderOtavka/polyfill-io-scanner/internal/domain"
	"github.com/AlexanderOtavka/polyfill-io-scanner/internal/errors"
	"github.com/AlexanderOtavka/polyfill-io-scanner/internal/tui"
)

// sitesFlags holds the flag values for the sites subcommands.
type sitesFlags struct {
	maxRank int
	limit   int
	url     string
}

// AddSitesCommand adds the sites command and its subcommands to the root command.
func AddSitesCommand(rootCmd *cobra.Command, flags *GlobalFlags) {
	sitesCmd := &cobra.Command{
		Use:   "sites",
		Short: "Inspect the top-sites dataset",
	}

	sitesCmd.AddCommand(newSitesListCmd(flags))
	sitesCmd.AddCommand(newSitesRefreshCmd(flags))

	rootCmd.AddCommand(sitesCmd)
}

// newSitesListCmd creates the sites list subcommand.
func newSitesListCmd(flags *GlobalFlags) *cobra.Command {
	var sf sitesFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the sites a scan would target",
		Long: `List shows the top-sites dataset after the configured rank cutoff and
head limit, in dataset (rank) order. This is exactly the set of sites a
scan with the same settings would fetch.`,
		Example: `  polyscan sites list
  polyscan sites list --max-rank 5000 --limit 100
  polyscan sites list --limit 0 -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSitesList(cmd, flags, &sf)
		},
	}

	cmd.Flags().IntVar(&sf.maxRank, "max-rank", 0, "only list sites with rank <= this value")
	cmd.Flags().IntVarP(&sf.limit, "limit", "l", -1, "maximum number of sites to list (0 = no limit)")
	cmd.Flags().StringVar(&sf.url, "url", "", "top-sites dataset URL")

	return cmd
}

// newSitesRefreshCmd creates the sites refresh subcommand.
func newSitesRefreshCmd(flags *GlobalFlags) *cobra.Command {
	var url string

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Force a fresh dataset download",
		Long: `Refresh re-downloads the top-sites dataset and rewrites the local
cache, regardless of the cache's age.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSitesRefresh(cmd, flags, url)
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "top-sites dataset URL")

	return cmd
}

// runSitesList executes the sites list subcommand.
func runSitesList(cmd *cobra.Command, flags *GlobalFlags, sf *sitesFlags) error {
	logger := GetLogger()
	ctx := logger.WithContext(cmd.Context())
	out := flags.newOutput(cmd)

	cfg, err := sitesConfig(cmd, sf)
	if err != nil {
		return err
	}

	siteList, err := loadSites(ctx, cfg, false)
	if err != nil {
		return err
	}

	filtered := domain.FilterSites(siteList, cfg.Scan.MaxRank, cfg.Scan.MaxSites)

	if flags.Output == OutputJSON {
		return out.JSON(filtered)
	}
	tui.RenderSites(cmd.OutOrStdout(), filtered)
	return nil
}

// runSitesRefresh executes the sites refresh subcommand.
func runSitesRefresh(cmd *cobra.Command, flags *GlobalFlags, url string) error {
	logger := GetLogger()
	ctx := logger.WithContext(cmd.Context())
	out := flags.newOutput(cmd)

	overrides := &config.Config{}
	overrides.Sites.URL = url
	cfg, err := config.LoadWithOverrides(cmd.Context(), overrides)
	if err != nil {
		return errors.NewExitCode2Error(err)
	}

	siteList, err := loadSites(ctx, cfg, true)
	if err != nil {
		return err
	}

	if flags.Output == OutputJSON {
		return out.JSON(map[string]any{"sites": len(siteList), "url": cfg.Sites.URL})
	}
	out.Success(fmt.Sprintf("dataset refreshed: %d sites", len(siteList)))
	return nil
}

// sitesConfig builds the effective config for sites list from config
// files, environment, and flag overrides.
func sitesConfig(cmd *cobra.Command, sf *sitesFlags) (*config.Config, error) {
	overrides := &config.Config{}
	overrides.Sites.URL = sf.url
	overrides.Scan.MaxRank = sf.maxRank
	if sf.limit > 0 {
		overrides.Scan.MaxSites = sf.limit
	}

	cfg, err := config.LoadWithOverrides(cmd.Context(), overrides)
	if err != nil {
		return nil, errors.NewExitCode2Error(err)
	}

	if sf.limit == 0 {
		cfg.Scan.MaxSites = 0
	}
	return cfg, nil
}
