package changelog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultRemoteTimeout bounds remote change-log fetches.
const DefaultRemoteTimeout = 10 * time.Second

// maxRemoteSize caps how much of a remote document is read. Real change
// logs are far smaller; the cap guards against a misconfigured URL.
const maxRemoteSize = 8 << 20

// FetchRemote downloads a change log over HTTP(S) and parses it. The URL is
// recorded as the changelog's path, so not-found messages name the source
// the user gave. The context controls timeout and cancellation.
func FetchRemote(ctx context.Context, url string) (*Changelog, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching change log: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching change log %s: unexpected status %d", url, resp.StatusCode)
	}

	source, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoteSize))
	if err != nil {
		return nil, fmt.Errorf("reading response from %s: %w", url, err)
	}

	return Parse(url, source), nil
}
