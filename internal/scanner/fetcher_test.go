package scanner

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexanderOtavka/polyfill-io-scanner/internal/config"
	"github.com/AlexanderOtavka/polyfill-io-scanner/internal/errors"
)

// mockHTTPClient implements HTTPClient with a scripted sequence of responses.
type mockHTTPClient struct {
	responses []mockResponse
	calls     int
	lastReq   *http.Request
}

type mockResponse struct {
	status int
	body   string
	err    error
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	m.lastReq = req
	idx := m.calls
	m.calls++
	if idx >= len(m.responses) {
		idx = len(m.responses) - 1
	}
	r := m.responses[idx]
	if r.err != nil {
		return nil, r.err
	}
	return &http.Response{
		StatusCode: r.status,
		Body:       io.NopCloser(strings.NewReader(r.body)),
	}, nil
}

// stubSleep replaces timeSleep with an immediate channel so retry tests
// do not actually wait. Restores the original on cleanup.
func stubSleep(t *testing.T) *[]time.Duration {
	t.Helper()

	var delays []time.Duration
	original := timeSleep
	timeSleep = func(d interface{ Nanoseconds() int64 }) <-chan time.Time {
		delays = append(delays, time.Duration(d.Nanoseconds()))
		ch := make(chan time.Time, 1)
		ch <- time.Now()
		return ch
	}
	t.Cleanup(func() { timeSleep = original })
	return &delays
}

func fetcherConfig() *config.Config {
	cfg := &config.Config{}
	cfg.HTTP.UserAgent = "polyscan-test"
	cfg.Scan.Timeout = 10 * time.Second
	cfg.Scan.Retries = 2
	cfg.Scan.RetryBackoff = 500 * time.Millisecond
	return cfg
}

func TestFetchHomepage_Success(t *testing.T) {
	client := &mockHTTPClient{responses: []mockResponse{
		{status: http.StatusOK, body: "<html>hello</html>"},
	}}
	f := NewFetcherWithClient(fetcherConfig(), client)

	content, attempts, err := f.FetchHomepage(context.Background(), "https://example.com")

	require.NoError(t, err)
	assert.Equal(t, "<html>hello</html>", content)
	assert.Equal(t, 1, attempts)
	assert.Equal(t, "polyscan-test", client.lastReq.Header.Get("User-Agent"))
}

func TestFetchHomepage_Non200StillReturnsContent(t *testing.T) {
	client := &mockHTTPClient{responses: []mockResponse{
		{status: http.StatusServiceUnavailable, body: "<html>maintenance</html>"},
	}}
	f := NewFetcherWithClient(fetcherConfig(), client)

	content, attempts, err := f.FetchHomepage(context.Background(), "https://example.com")

	require.NoError(t, err)
	assert.Equal(t, "<html>maintenance</html>", content)
	assert.Equal(t, 1, attempts)
}

func TestFetchHomepage_RetriesTransientErrors(t *testing.T) {
	delays := stubSleep(t)
	client := &mockHTTPClient{responses: []mockResponse{
		{err: stderrors.New("read tcp: connection reset by peer")},
		{err: stderrors.New("read tcp: connection reset by peer")},
		{status: http.StatusOK, body: "recovered"},
	}}
	f := NewFetcherWithClient(fetcherConfig(), client)

	content, attempts, err := f.FetchHomepage(context.Background(), "https://example.com")

	require.NoError(t, err)
	assert.Equal(t, "recovered", content)
	assert.Equal(t, 3, attempts)

	// Backoff doubles per attempt
	require.Len(t, *delays, 2)
	assert.Equal(t, 500*time.Millisecond, (*delays)[0])
	assert.Equal(t, 1*time.Second, (*delays)[1])
}

func TestFetchHomepage_ExhaustsRetries(t *testing.T) {
	stubSleep(t)
	client := &mockHTTPClient{responses: []mockResponse{
		{err: stderrors.New("dial tcp: connection refused")},
	}}
	f := NewFetcherWithClient(fetcherConfig(), client)

	_, attempts, err := f.FetchHomepage(context.Background(), "https://example.com")

	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrFetchFailed)
	assert.Equal(t, 3, attempts, "initial attempt plus two retries")
	assert.Equal(t, 3, client.calls)
}

func TestFetchHomepage_NonRetryableStopsImmediately(t *testing.T) {
	stubSleep(t)
	client := &mockHTTPClient{responses: []mockResponse{
		{err: stderrors.New("x509: certificate signed by unknown authority")},
	}}
	f := NewFetcherWithClient(fetcherConfig(), client)

	_, attempts, err := f.FetchHomepage(context.Background(), "https://example.com")

	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrFetchFailed)
	assert.Equal(t, 1, attempts)
	assert.Equal(t, 1, client.calls)
}

func TestFetchHomepage_ZeroRetries(t *testing.T) {
	stubSleep(t)
	cfg := fetcherConfig()
	cfg.Scan.Retries = 0
	client := &mockHTTPClient{responses: []mockResponse{
		{err: stderrors.New("connection reset")},
	}}
	f := NewFetcherWithClient(cfg, client)

	_, attempts, err := f.FetchHomepage(context.Background(), "https://example.com")

	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestFetchHomepage_RetriesSlowSite(t *testing.T) {
	stubSleep(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte("<html>too late</html>"))
	}))
	defer srv.Close()

	cfg := fetcherConfig()
	cfg.Scan.Timeout = 50 * time.Millisecond
	f := NewFetcher(cfg)

	_, attempts, err := f.FetchHomepage(context.Background(), srv.URL)

	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrFetchFailed)
	assert.Equal(t, 3, attempts, "a per-site timeout is transient and must be retried")
}

func TestFetchHomepage_ParentDeadlineNotRetried(t *testing.T) {
	stubSleep(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte("<html>too late</html>"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	cfg := fetcherConfig()
	f := NewFetcher(cfg)

	_, attempts, err := f.FetchHomepage(ctx, srv.URL)

	require.Error(t, err)
	assert.Equal(t, 1, attempts, "an expired scan context must stop the retry loop")
}

func TestFetchHomepage_InvalidURL(t *testing.T) {
	stubSleep(t)
	f := NewFetcherWithClient(fetcherConfig(), &mockHTTPClient{responses: []mockResponse{
		{status: http.StatusOK, body: "unused"},
	}})

	_, _, err := f.FetchHomepage(context.Background(), "://not-a-url")

	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrFetchFailed)
}

func TestFetchHomepage_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := &mockHTTPClient{responses: []mockResponse{
		{err: ctx.Err()},
	}}
	f := NewFetcherWithClient(fetcherConfig(), client)

	_, _, err := f.FetchHomepage(ctx, "https://example.com")

	require.Error(t, err)
	assert.Equal(t, 1, client.calls, "context errors are not retried")
}
