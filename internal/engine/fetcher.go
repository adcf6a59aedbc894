package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/tartampluch/go-calendar/internal/config"
)

// SourceFetcher retrieves a remote events source (JSON document or vCard
// address book). It is an interface so tests can replace the network.
type SourceFetcher interface {
	Fetch(ctx context.Context, url, user, pass string) (io.ReadCloser, error)
}

// HTTPFetcher implements SourceFetcher using net/http.
type HTTPFetcher struct {
	Client *http.Client
}

// NewHTTPFetcher creates an HTTPFetcher with the configured timeout.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{
		Client: &http.Client{
			Timeout: config.HTTPTimeout,
		},
	}
}

// Fetch downloads targetURL with optional basic authentication. Query
// parameters are stripped from logs since they may carry tokens, and the
// body is capped at config.MaxHTTPResponseSize.
func (f *HTTPFetcher) Fetch(ctx context.Context, targetURL, user, pass string) (io.ReadCloser, error) {
	u, err := url.Parse(targetURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrInvalidURL, err)
	}
	if u.Scheme != config.SchemeHTTP && u.Scheme != config.SchemeHTTPS {
		return nil, fmt.Errorf("%s: %s", config.ErrProtocol, u.Scheme)
	}

	log := slog.With(
		slog.String(config.LogKeyComponent, config.CompFetcher),
		slog.String(config.LogKeyURL, SafeURL(u)),
	)
	log.Debug(config.MsgFetchStart)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrRequestBuild, err)
	}
	req.Header.Set(config.HeaderUserAgent, config.UserAgent)
	if user != "" || pass != "" {
		req.SetBasicAuth(user, pass)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrNetwork, err)
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		log.Warn(config.MsgFetchBadStatus, slog.Int(config.LogKeyStatus, resp.StatusCode))
		return nil, fmt.Errorf("%s: %d %s", config.ErrUnexpectedStatus, resp.StatusCode, resp.Status)
	}

	log.Info(config.MsgFetchDownloading, slog.Int64(config.LogKeyContentLength, resp.ContentLength))

	return &limitedReadCloser{
		Reader: io.LimitReader(resp.Body, config.MaxHTTPResponseSize),
		Closer: resp.Body,
	}, nil
}

// SafeURL drops credentials, query and fragment from u for logging.
func SafeURL(u *url.URL) string {
	return u.Scheme + "://" + u.Host + u.Path
}

// limitedReadCloser caps reads while still closing the network body.
type limitedReadCloser struct {
	io.Reader
	io.Closer
}
