package resource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrFetch marks a failed load of remote image data: transport errors,
// non-200 responses, oversized or non-image payloads.
var ErrFetch = errors.New("fetch failed")

// maxFetchBytes caps remote downloads at 64 MB so a misbehaving server
// cannot exhaust memory. Variable so tests can lower the cap.
var maxFetchBytes int64 = 64 << 20

var fetchClient = &http.Client{Timeout: 30 * time.Second}

// Fetch downloads an image over HTTP(S) and sniffs its type. The
// context bounds the whole download; a canceled context surfaces as
// the request error.
func Fetch(ctx context.Context, url string) (Resource, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Resource{}, fmt.Errorf("%w: %s: %w", ErrFetch, url, err)
	}
	resp, err := fetchClient.Do(req)
	if err != nil {
		return Resource{}, fmt.Errorf("%w: %s: %w", ErrFetch, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Resource{}, fmt.Errorf("%w: %s: unexpected status %s", ErrFetch, url, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes+1))
	if err != nil {
		return Resource{}, fmt.Errorf("%w: %s: %w", ErrFetch, url, err)
	}
	if int64(len(data)) > maxFetchBytes {
		return Resource{}, fmt.Errorf("%w: %s: response exceeds %d bytes", ErrFetch, url, maxFetchBytes)
	}

	r, err := FromBytes(data)
	if err != nil {
		return Resource{}, fmt.Errorf("%w: %s: %w", ErrFetch, url, err)
	}
	return r, nil
}
