package render

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"strings"
	"time"
)

// Per-attempt limit for profile image downloads. Each step of the fallback
// chain gets its own budget.
const fetchTimeout = 10 * time.Second

// TokenProvider supplies the bearer token for the authenticated retry of a
// profile image fetch. A nil provider (or empty token) skips that step.
type TokenProvider interface {
	Token() string
}

// StaticToken is a TokenProvider for a fixed token (tests, service accounts).
type StaticToken string

func (t StaticToken) Token() string { return string(t) }

// ImageFetcher downloads and decodes remote profile images with graceful
// degradation: an anonymous attempt first, then an authenticated one. Callers
// treat a returned error as the signal to draw the default initials avatar.
type ImageFetcher struct {
	client       *http.Client
	imageBaseURL string
	tokens       TokenProvider
}

func NewImageFetcher(imageBaseURL string, tokens TokenProvider) *ImageFetcher {
	return &ImageFetcher{
		client:       &http.Client{Timeout: fetchTimeout},
		imageBaseURL: strings.TrimRight(imageBaseURL, "/"),
		tokens:       tokens,
	}
}

// NormalizeURL resolves the URL variants stored on volunteer records:
// absolute http(s) URLs pass through, upload paths get the configured image
// base prefixed, anything else passes through best-effort.
func (f *ImageFetcher) NormalizeURL(raw string) string {
	switch {
	case strings.HasPrefix(raw, "http://"), strings.HasPrefix(raw, "https://"):
		return raw
	case strings.HasPrefix(raw, "/uploads"):
		return f.imageBaseURL + raw
	case strings.HasPrefix(raw, "uploads"):
		return f.imageBaseURL + "/" + raw
	default:
		return raw
	}
}

// Fetch runs the fallback chain for one image URL. Both attempts share the
// normalized URL; the second adds the bearer token if one is available.
func (f *ImageFetcher) Fetch(ctx context.Context, rawURL string) (image.Image, error) {
	if rawURL == "" {
		return nil, fmt.Errorf("no image url")
	}
	url := f.NormalizeURL(rawURL)

	img, directErr := f.get(ctx, url, "")
	if directErr == nil {
		return img, nil
	}

	token := ""
	if f.tokens != nil {
		token = f.tokens.Token()
	}
	if token == "" {
		return nil, fmt.Errorf("image fetch failed: %w", directErr)
	}

	img, authErr := f.get(ctx, url, token)
	if authErr == nil {
		return img, nil
	}
	return nil, fmt.Errorf("image fetch failed (direct: %v): %w", directErr, authErr)
}

func (f *ImageFetcher) get(ctx context.Context, url, token string) (image.Image, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}
