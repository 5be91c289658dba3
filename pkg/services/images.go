package services

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/kerbaras/pokedex/pkg/integrations"
	"golang.org/x/time/rate"
)

// ImageFetcher downloads sprite images, throttled by a shared limiter.
type ImageFetcher struct {
	client  *http.Client
	limiter *rate.Limiter
}

// NewImageFetcher builds a fetcher. A nil limiter disables throttling.
func NewImageFetcher(client *http.Client, limiter *rate.Limiter) *ImageFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &ImageFetcher{client: client, limiter: limiter}
}

func (f *ImageFetcher) Fetch(ctx context.Context, url string) (integrations.ImageData, error) {
	if url == "" {
		return integrations.ImageData{}, fmt.Errorf("image url is empty")
	}
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return integrations.ImageData{}, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return integrations.ImageData{}, fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return integrations.ImageData{}, fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return integrations.ImageData{}, fmt.Errorf("bad status: %s", resp.Status)
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return integrations.ImageData{}, fmt.Errorf("failed to read image content: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(content)
	}

	return integrations.ImageData{
		Content:     content,
		ContentType: contentType,
	}, nil
}
