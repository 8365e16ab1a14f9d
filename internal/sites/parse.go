package sites

import (
	"bytes"
	"compress/gzip"
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/AlexanderOtavka/polyfill-io-scanner/internal/domain"
	"github.com/AlexanderOtavka/polyfill-io-scanner/internal/errors"
)

// Parse decompresses and parses the gzipped CSV dataset.
// The expected header is "origin,rank". Rows that fail to parse are
// skipped with a warning rather than failing the whole dataset; a dataset
// with zero usable rows is an error.
func Parse(logger zerolog.Logger, raw []byte) ([]domain.Site, error) {
	gzr, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrDatasetDecode, err)
	}
	defer gzr.Close() //nolint:errcheck // gzip reader close

	r := csv.NewReader(gzr)
	r.FieldsPerRecord = -1 // row validity is checked per-row below
	r.LazyQuotes = true    // stray quotes in origins must not sink the dataset

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read header: %w", errors.ErrDatasetDecode, err)
	}
	originIdx, rankIdx, err := headerIndices(header)
	if err != nil {
		return nil, err
	}

	var sites []domain.Site
	for line := 2; ; line++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		var parseErr *csv.ParseError
		if stderrors.As(err, &parseErr) {
			// Same treatment as a malformed row: skip it, keep the dataset
			logger.Warn().Int("line", line).Err(err).Msg("skipping unparsable dataset row")
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", errors.ErrDatasetDecode, line, err)
		}

		site, ok := parseRow(record, originIdx, rankIdx)
		if !ok {
			logger.Warn().Int("line", line).Strs("record", record).Msg("skipping malformed dataset row")
			continue
		}
		sites = append(sites, site)
	}

	if len(sites) == 0 {
		return nil, errors.ErrDatasetEmpty
	}
	return sites, nil
}

// headerIndices locates the origin and rank columns.
func headerIndices(header []string) (originIdx, rankIdx int, err error) {
	originIdx, rankIdx = -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "origin":
			originIdx = i
		case "rank":
			rankIdx = i
		}
	}
	if originIdx < 0 || rankIdx < 0 {
		return 0, 0, fmt.Errorf("%w: header must contain origin and rank columns, got %v",
			errors.ErrDatasetDecode, header)
	}
	return originIdx, rankIdx, nil
}

// parseRow converts one CSV record into a Site.
func parseRow(record []string, originIdx, rankIdx int) (domain.Site, bool) {
	if originIdx >= len(record) || rankIdx >= len(record) {
		return domain.Site{}, false
	}

	origin := strings.TrimSpace(record[originIdx])
	if origin == "" {
		return domain.Site{}, false
	}

	rank, err := strconv.Atoi(strings.TrimSpace(record[rankIdx]))
	if err != nil || rank < 1 {
		return domain.Site{}, false
	}

	return domain.Site{Origin: origin, Rank: rank}, true
}
