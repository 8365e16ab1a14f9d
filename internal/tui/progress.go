package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/mattn/go-runewidth"

	"github.com/AlexanderOtavka/polyfill-io-scanner/internal/domain"
)

// ProgressBar wraps the charmbracelet/bubbles progress bar with polyscan
// styling. Supports NO_COLOR compatibility.
type ProgressBar struct {
	bar   progress.Model
	width int
}

// NewProgressBar creates a new progress bar.
// Uses the ColorPrimary gradient for styled rendering, solid fill for
// NO_COLOR mode.
func NewProgressBar(width int) *ProgressBar {
	var bar progress.Model

	if HasColorSupport() {
		bar = progress.New(
			progress.WithWidth(width),
			progress.WithScaledGradient("#0087AF", "#00D7FF"), // Match ColorPrimary
		)
	} else {
		// NO_COLOR mode: use solid fill
		bar = progress.New(
			progress.WithWidth(width),
			progress.WithSolidFill("#808080"),
		)
	}

	return &ProgressBar{
		bar:   bar,
		width: width,
	}
}

// Render returns the progress bar as a string for the given percentage (0.0-1.0).
// Uses ViewAs for static rendering (no animation).
func (pb *ProgressBar) Render(percent float64) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 1 {
		percent = 1
	}
	return pb.bar.ViewAs(percent)
}

// Width returns the current width of the progress bar.
func (pb *ProgressBar) Width() int {
	return pb.width
}

// statusGlyph maps a fetch status to its display icon and style.
func statusGlyph(styles *OutputStyles, result domain.PageResult) string {
	switch {
	case result.Matched:
		return styles.Success.Render("✓")
	case result.Status == domain.FetchStatusOK:
		return styles.Dim.Render("·")
	case result.Status == domain.FetchStatusEmpty:
		return styles.Warning.Render("∅")
	default:
		return styles.Error.Render("✗")
	}
}

// ScanProgress renders scan progress lines to a writer as sites complete.
// Each completed site prints one line:
//
//	[████████░░░░] 42% 21/50 ✓ https://example.com
//
// It is driven from the scanner's progress callback, which already
// serializes calls, so ScanProgress itself needs no locking.
type ScanProgress struct {
	w           io.Writer
	bar         *ProgressBar
	styles      *OutputStyles
	originWidth int
}

// NewScanProgress creates a ScanProgress writing to w.
func NewScanProgress(w io.Writer, barWidth int) *ScanProgress {
	return &ScanProgress{
		w:           w,
		bar:         NewProgressBar(barWidth),
		styles:      NewOutputStyles(),
		originWidth: 48,
	}
}

// Update renders one progress line for a completed site.
func (sp *ScanProgress) Update(completed, total int, result domain.PageResult) {
	percent := 0.0
	if total > 0 {
		percent = float64(completed) / float64(total)
	}

	origin := truncate(result.Site.Origin, sp.originWidth)
	line := fmt.Sprintf("%s %3d%% %s %s %s",
		sp.bar.Render(percent),
		int(percent*100),
		FormatCounter(completed, total),
		statusGlyph(sp.styles, result),
		origin,
	)
	_, _ = fmt.Fprintln(sp.w, line)
}

// FormatCounter formats completion progress as "current/total" (e.g., "21/50").
func FormatCounter(current, total int) string {
	return fmt.Sprintf("%d/%d", current, total)
}

// truncate shortens s to at most maxWidth display cells, appending an
// ellipsis when truncation happened. Uses display width so wide runes in
// internationalized origins do not break column alignment.
func truncate(s string, maxWidth int) string {
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	return runewidth.Truncate(s, maxWidth-1, "") + "…"
}

// pad right-pads s with spaces to the given display width.
func pad(s string, width int) string {
	gap := width - runewidth.StringWidth(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}
