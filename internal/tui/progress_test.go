package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AlexanderOtavka/polyfill-io-scanner/internal/domain"
)

func TestFormatCounter(t *testing.T) {
	assert.Equal(t, "21/50", FormatCounter(21, 50))
	assert.Equal(t, "0/0", FormatCounter(0, 0))
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		s        string
		maxWidth int
		want     string
	}{
		{
			name:     "short string unchanged",
			s:        "https://a.example",
			maxWidth: 48,
			want:     "https://a.example",
		},
		{
			name:     "exact width unchanged",
			s:        "abcde",
			maxWidth: 5,
			want:     "abcde",
		},
		{
			name:     "long string gets ellipsis",
			s:        "abcdefghij",
			maxWidth: 6,
			want:     "abcde…",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, truncate(tt.s, tt.maxWidth))
		})
	}
}

func TestPad(t *testing.T) {
	assert.Equal(t, "ab   ", pad("ab", 5))
	assert.Equal(t, "abcde", pad("abcde", 5))
	assert.Equal(t, "abcdef", pad("abcdef", 5), "pad never truncates")
}

func TestProgressBar_Render(t *testing.T) {
	bar := NewProgressBar(20)

	empty := bar.Render(0)
	half := bar.Render(0.5)
	full := bar.Render(1)

	assert.NotEmpty(t, empty)
	assert.NotEmpty(t, half)
	assert.NotEmpty(t, full)
	assert.NotEqual(t, empty, full)
}

func TestProgressBar_RenderClampsPercent(t *testing.T) {
	bar := NewProgressBar(20)

	assert.Equal(t, bar.Render(0), bar.Render(-0.5))
	assert.Equal(t, bar.Render(1), bar.Render(1.5))
}

func TestScanProgress_Update(t *testing.T) {
	var buf bytes.Buffer
	sp := NewScanProgress(&buf, 10)

	sp.Update(1, 2, domain.PageResult{
		Site:    domain.Site{Origin: "https://match.example", Rank: 1000},
		Status:  domain.FetchStatusOK,
		Matched: true,
	})
	sp.Update(2, 2, domain.PageResult{
		Site:   domain.Site{Origin: "https://down.example", Rank: 1000},
		Status: domain.FetchStatusFailed,
	})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], "1/2")
	assert.Contains(t, lines[0], "https://match.example")
	assert.Contains(t, lines[1], "2/2")
	assert.Contains(t, lines[1], "https://down.example")
	assert.Contains(t, lines[1], "100%")
}

func TestScanProgress_TruncatesLongOrigins(t *testing.T) {
	var buf bytes.Buffer
	sp := NewScanProgress(&buf, 10)

	longOrigin := "https://" + strings.Repeat("a", 100) + ".example"
	sp.Update(1, 1, domain.PageResult{
		Site:   domain.Site{Origin: longOrigin, Rank: 1000},
		Status: domain.FetchStatusOK,
	})

	assert.NotContains(t, buf.String(), longOrigin)
	assert.Contains(t, buf.String(), "…")
}
