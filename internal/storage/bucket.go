// Package storage downloads original uploaded bytes from the object store
// holding document sources. The store is addressed over HTTP: a bucket base
// URL plus the object path supplied at ingest time.
package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"docvoice/internal/customHttpClient"
)

// Downloader fetches the raw bytes an object path points at.
type Downloader interface {
	Download(ctx context.Context, objectPath string) ([]byte, error)
}

type BucketClient struct {
	baseURL string
	client  *http.Client
}

func NewBucketClient(baseURL string, timeout time.Duration) *BucketClient {
	return &BucketClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  customHttpClient.New(timeout),
	}
}

func (b *BucketClient) Download(ctx context.Context, objectPath string) ([]byte, error) {
	url := b.baseURL + "/" + strings.TrimLeft(objectPath, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build download request: %w", err)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", objectPath, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download %s: status %d", objectPath, resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", objectPath, err)
	}
	return data, nil
}
