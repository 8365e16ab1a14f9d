package sites

import (
	"bytes"
	"compress/gzip"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexanderOtavka/polyfill-io-scanner/internal/domain"
	"github.com/AlexanderOtavka/polyfill-io-scanner/internal/errors"
)

// gzipBytes compresses csv content the way the dataset is served.
func gzipBytes(t *testing.T, content string) []byte {
	t.Helper()

	var buf bytes.Buffer
	gzw := gzip.NewWriter(&buf)
	_, err := gzw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, gzw.Close())
	return buf.Bytes()
}

func TestParse_ValidDataset(t *testing.T) {
	raw := gzipBytes(t, "origin,rank\nhttps://a.example,1000\nhttps://b.example,5000\n")

	got, err := Parse(zerolog.Nop(), raw)

	require.NoError(t, err)
	assert.Equal(t, []domain.Site{
		{Origin: "https://a.example", Rank: 1000},
		{Origin: "https://b.example", Rank: 5000},
	}, got)
}

func TestParse_PreservesDatasetOrder(t *testing.T) {
	raw := gzipBytes(t, "origin,rank\nhttps://z.example,1000\nhttps://a.example,1000\n")

	got, err := Parse(zerolog.Nop(), raw)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "https://z.example", got[0].Origin)
	assert.Equal(t, "https://a.example", got[1].Origin)
}

func TestParse_ColumnsInAnyOrder(t *testing.T) {
	raw := gzipBytes(t, "rank,origin\n1000,https://a.example\n")

	got, err := Parse(zerolog.Nop(), raw)

	require.NoError(t, err)
	assert.Equal(t, []domain.Site{{Origin: "https://a.example", Rank: 1000}}, got)
}

func TestParse_SkipsMalformedRows(t *testing.T) {
	raw := gzipBytes(t, "origin,rank\n"+
		"https://good.example,1000\n"+
		",1000\n"+ // empty origin
		"https://bad-rank.example,notanumber\n"+
		"https://zero-rank.example,0\n"+
		"https://also-good.example,5000\n")

	got, err := Parse(zerolog.Nop(), raw)

	require.NoError(t, err)
	assert.Equal(t, []domain.Site{
		{Origin: "https://good.example", Rank: 1000},
		{Origin: "https://also-good.example", Rank: 5000},
	}, got)
}

func TestParse_ToleratesStrayQuotes(t *testing.T) {
	raw := gzipBytes(t, "origin,rank\n"+
		"https://good.example,1000\n"+
		`https://odd"quote.example,5000`+"\n"+
		"https://also-good.example,10000\n")

	got, err := Parse(zerolog.Nop(), raw)

	require.NoError(t, err, "a stray quote mid-file must not sink the whole dataset")
	require.Len(t, got, 3)
	assert.Equal(t, "https://good.example", got[0].Origin)
	assert.Equal(t, `https://odd"quote.example`, got[1].Origin)
	assert.Equal(t, "https://also-good.example", got[2].Origin)
}

func TestParse_EmptyDataset(t *testing.T) {
	raw := gzipBytes(t, "origin,rank\n")

	_, err := Parse(zerolog.Nop(), raw)

	assert.ErrorIs(t, err, errors.ErrDatasetEmpty)
}

func TestParse_MissingColumns(t *testing.T) {
	raw := gzipBytes(t, "host,popularity\nexample.com,1000\n")

	_, err := Parse(zerolog.Nop(), raw)

	assert.ErrorIs(t, err, errors.ErrDatasetDecode)
}

func TestParse_NotGzip(t *testing.T) {
	_, err := Parse(zerolog.Nop(), []byte("origin,rank\nhttps://a.example,1000\n"))

	assert.ErrorIs(t, err, errors.ErrDatasetDecode)
}
