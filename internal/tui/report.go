package tui

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/AlexanderOtavka/polyfill-io-scanner/internal/domain"
)

// countPrinter formats integers with thousands separators for summaries
// ("1,000 sites" rather than "1000 sites").
//
//nolint:gochecknoglobals // Package-level printer, construction is not cheap
var countPrinter = message.NewPrinter(language.English)

// RenderReport writes a human-readable scan report: a table of matching
// sites followed by a summary line.
func RenderReport(w io.Writer, report *domain.Report) {
	styles := NewOutputStyles()

	if len(report.Matches) > 0 {
		table := NewTable(w, []TableColumn{
			{Name: "RANK", Width: 6, Align: AlignRight},
			{Name: "ORIGIN", Width: 48},
			{Name: "HITS", Width: 5, Align: AlignRight},
		})
		table.WriteHeader()
		for _, m := range report.Matches {
			table.WriteRow(
				strconv.Itoa(m.Rank),
				m.Origin,
				strconv.Itoa(m.Occurrences),
			)
		}
		_, _ = fmt.Fprintln(w)
	}

	summary := countPrinter.Sprintf("%d of %d sites reference %q (%d fetched, %d failed, %s)",
		len(report.Matches), report.Scanned, report.Keyword,
		report.Fetched, report.Failed, formatDuration(report.Duration))

	if len(report.Matches) > 0 {
		_, _ = fmt.Fprintln(w, styles.Success.Render(summary))
	} else {
		_, _ = fmt.Fprintln(w, styles.Dim.Render(summary))
	}
}

// RenderSites writes the top-sites listing as a table.
func RenderSites(w io.Writer, siteList []domain.Site) {
	table := NewTable(w, []TableColumn{
		{Name: "RANK", Width: 6, Align: AlignRight},
		{Name: "ORIGIN", Width: 64},
	})
	table.WriteHeader()
	for _, s := range siteList {
		table.WriteRow(strconv.Itoa(s.Rank), s.Origin)
	}

	styles := NewOutputStyles()
	_, _ = fmt.Fprintln(w, styles.Dim.Render(countPrinter.Sprintf("%d sites", len(siteList))))
}

// formatDuration renders a duration with sub-second noise trimmed.
func formatDuration(d time.Duration) string {
	if d >= time.Second {
		return d.Round(100 * time.Millisecond).String()
	}
	return d.Round(time.Millisecond).String()
}
