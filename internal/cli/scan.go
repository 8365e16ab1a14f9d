package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/AlexanderOtavka/polyfill-io-scanner/internal/config"
	"github.com/AlexanderOtavka/polyfill-io-scanner/internal/domain"
	"github.com/AlexanderOtavka/polyfill-io-scanner/internal/errors"
	"github.com/AlexanderOtavka/polyfill-io-scanner/internal/scanner"
	"github.com/AlexanderOtavka/polyfill-io-scanner/internal/sites"
	"github.com/AlexanderOtavka/polyfill-io-scanner/internal/tui"
)

// scanFlags holds the flag values for the scan command.
type scanFlags struct {
	keyword string
	maxRank int
	limit   int
	workers int
	timeout time.Duration
	refresh bool
	url     string
}

// progressBarWidth is the width of the scan progress bar in cells.
const progressBarWidth = 24

// AddScanCommand adds the scan command to the root command.
func AddScanCommand(rootCmd *cobra.Command, flags *GlobalFlags) {
	var sf scanFlags

	scanCmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan top-site homepages for a keyword",
		Long: `Scan downloads the top-sites dataset (or serves it from the local
cache), fetches the homepages of the highest-ranked sites concurrently,
and reports which of them contain the keyword.

Per-site fetch failures never abort a scan; failed and empty pages are
counted in the summary and excluded from matching.`,
		Example: `  polyscan scan
  polyscan scan --keyword cdn.polyfill.io
  polyscan scan --max-rank 5000 --limit 200 --workers 40
  polyscan scan --refresh -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runScan(cmd, flags, &sf)
		},
	}

	scanCmd.Flags().StringVarP(&sf.keyword, "keyword", "k", "", "substring to search for (case-insensitive)")
	scanCmd.Flags().IntVar(&sf.maxRank, "max-rank", 0, "only scan sites with rank <= this value")
	scanCmd.Flags().IntVarP(&sf.limit, "limit", "l", -1, "maximum number of sites to scan (0 = no limit)")
	scanCmd.Flags().IntVarP(&sf.workers, "workers", "w", 0, "number of concurrent fetch workers")
	scanCmd.Flags().DurationVar(&sf.timeout, "timeout", 0, "per-site fetch timeout")
	scanCmd.Flags().BoolVar(&sf.refresh, "refresh", false, "force a fresh dataset download, ignoring the cache")
	scanCmd.Flags().StringVar(&sf.url, "url", "", "top-sites dataset URL")

	rootCmd.AddCommand(scanCmd)
}

// runScan executes the scan command.
func runScan(cmd *cobra.Command, flags *GlobalFlags, sf *scanFlags) error {
	logger := GetLogger()
	ctx := logger.WithContext(cmd.Context())
	out := flags.newOutput(cmd)

	cfg, err := scanConfig(cmd, sf)
	if err != nil {
		return err
	}

	siteList, err := loadSites(ctx, cfg, sf.refresh)
	if err != nil {
		return err
	}

	filtered := domain.FilterSites(siteList, cfg.Scan.MaxRank, cfg.Scan.MaxSites)
	if len(filtered) == 0 {
		return errors.Wrapf(errors.ErrNoSites, "no sites with rank <= %d", cfg.Scan.MaxRank)
	}

	scn := scanner.New(cfg)
	// Progress lines only make sense on a text terminal; JSON consumers
	// and --quiet runs get the report alone.
	if flags.Output == OutputText && !flags.Quiet {
		progress := tui.NewScanProgress(cmd.OutOrStdout(), progressBarWidth)
		scn.SetProgress(progress.Update)
	}

	report, err := scn.Scan(ctx, filtered)
	if err != nil {
		return err
	}

	if flags.Output == OutputJSON {
		return out.JSON(report)
	}
	tui.RenderReport(cmd.OutOrStdout(), report)
	return nil
}

// scanConfig builds the effective config for a scan from config files,
// environment, and the command's flag overrides.
func scanConfig(cmd *cobra.Command, sf *scanFlags) (*config.Config, error) {
	overrides := &config.Config{}
	overrides.Sites.URL = sf.url
	overrides.Scan.Keyword = sf.keyword
	overrides.Scan.MaxRank = sf.maxRank
	overrides.Scan.Workers = sf.workers
	overrides.Scan.Timeout = sf.timeout
	if sf.limit > 0 {
		overrides.Scan.MaxSites = sf.limit
	}

	cfg, err := config.LoadWithOverrides(cmd.Context(), overrides)
	if err != nil {
		return nil, errors.NewExitCode2Error(err)
	}

	// --limit 0 means "no limit", which a zero-valued override cannot
	// express, so it is applied after loading.
	if sf.limit == 0 {
		cfg.Scan.MaxSites = 0
	}
	return cfg, nil
}

// loadSites fetches the top-sites dataset using the configured cache.
func loadSites(ctx context.Context, cfg *config.Config, refresh bool) ([]domain.Site, error) {
	cacheDir, err := config.CacheDir(cfg)
	if err != nil {
		return nil, err
	}

	client := sites.NewClient(cfg, sites.NewCache(cacheDir))
	return client.Fetch(ctx, refresh)
}
