package macground

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/k1LoW/errors"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	// DefaultUnsplashURL returns one random photo as JSON.
	DefaultUnsplashURL = "https://api.unsplash.com/photos/random"
	// EnvUnsplashAPIKey holds the Unsplash access key. It may be set in .env.
	EnvUnsplashAPIKey = "UNSPLASH_API_KEY"
)

// ImageSource fetches background images over HTTP.
type ImageSource struct {
	unsplashURL string
	client      *retryablehttp.Client
}

type unsplashPhoto struct {
	URLs map[string]string `json:"urls"`
}

// NewImageSource creates an ImageSource. If unsplashURL is empty DefaultUnsplashURL is used.
func NewImageSource(unsplashURL string, logger *slog.Logger) *ImageSource {
	if unsplashURL == "" {
		unsplashURL = DefaultUnsplashURL
	}
	return &ImageSource{
		unsplashURL: unsplashURL,
		client:      newHTTPClient(logger),
	}
}

// Fetch downloads and decodes the image at u.
func (s *ImageSource) Fetch(ctx context.Context, u string) (_ image.Image, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create image request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	res, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image from %s: %w", u, err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch image from %s: status code %d", u, res.StatusCode)
	}
	img, _, err := image.Decode(res.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image from %s: %w", u, err)
	}
	return img, nil
}

// RandomURL asks Unsplash for a random photo and returns the URL of its full size rendition.
func (s *ImageSource) RandomURL(ctx context.Context, apiKey string) (_ string, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	if apiKey == "" {
		return "", fmt.Errorf("%s is not set", EnvUnsplashAPIKey)
	}
	u, err := url.Parse(s.unsplashURL)
	if err != nil {
		return "", fmt.Errorf("invalid unsplash url %s: %w", s.unsplashURL, err)
	}
	q := u.Query()
	q.Set("client_id", apiKey)
	u.RawQuery = q.Encode()
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create unsplash request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Version", "v1")
	res, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch random photo: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch random photo: status code %d", res.StatusCode)
	}
	var photo unsplashPhoto
	if err := json.NewDecoder(res.Body).Decode(&photo); err != nil {
		return "", fmt.Errorf("failed to decode random photo: %w", err)
	}
	full := photo.URLs["full"]
	if full == "" {
		return "", fmt.Errorf("random photo has no full size url")
	}
	return full, nil
}

// Random fetches a random photo from Unsplash.
func (s *ImageSource) Random(ctx context.Context, apiKey string) (image.Image, string, error) {
	u, err := s.RandomURL(ctx, apiKey)
	if err != nil {
		return nil, "", err
	}
	img, err := s.Fetch(ctx, u)
	if err != nil {
		return nil, "", err
	}
	return img, u, nil
}

// FillImage scales src to cover a w x h canvas and crops the overflow evenly from both sides.
func FillImage(src image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	sb := src.Bounds()
	sw, sh := sb.Dx(), sb.Dy()
	if sw == 0 || sh == 0 {
		return dst
	}
	var crop image.Rectangle
	if sw*h > sh*w {
		cw := sh * w / h
		crop = image.Rect((sw-cw)/2, 0, (sw-cw)/2+cw, sh)
	} else {
		ch := sw * h / w
		crop = image.Rect(0, (sh-ch)/2, sw, (sh-ch)/2+ch)
	}
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, crop.Add(sb.Min), draw.Src, nil)
	return dst
}
