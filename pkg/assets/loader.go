// Package assets fetches and decodes the remote images a render needs: the
// content's hero image and an optional user-supplied logo.
//
// Every failure in this package is degradable: the compositor catches the
// error at the element boundary, logs it, and renders without the affected
// element. A broken CDN must never block a graphic.
package assets

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"net/http"
	"strings"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/charmbracelet/log"

	"github.com/soundpress/gigcard/pkg/cache"
	"github.com/soundpress/gigcard/pkg/errors"
	"github.com/soundpress/gigcard/pkg/httputil"
	"github.com/soundpress/gigcard/pkg/observability"
)

// Loader fetches and decodes render assets, with byte-level caching of
// fetched URLs.
type Loader struct {
	client *http.Client
	cache  cache.Cache
	logger *log.Logger
}

// NewLoader creates a loader. A nil client uses the package default; a nil
// cache disables caching; a nil logger uses the default logger.
func NewLoader(client *http.Client, c cache.Cache, logger *log.Logger) *Loader {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Loader{client: client, cache: c, logger: logger}
}

// HeroImage fetches and decodes the content's hero image.
func (l *Loader) HeroImage(ctx context.Context, url string) (image.Image, error) {
	if url == "" {
		return nil, errors.New(errors.ErrCodeAssetLoad, "empty hero image URL")
	}
	return l.resolve(ctx, "hero", url)
}

// Logo fetches and decodes a logo referenced by an http(s) URL or an
// embedded data: URL.
func (l *Loader) Logo(ctx context.Context, ref string) (image.Image, error) {
	if ref == "" {
		return nil, errors.New(errors.ErrCodeAssetLoad, "empty logo reference")
	}
	return l.resolve(ctx, "logo", ref)
}

// resolve decodes one asset reference, reporting the attempt and its
// outcome to the registered asset hooks.
func (l *Loader) resolve(ctx context.Context, kind, ref string) (image.Image, error) {
	observability.Assets().OnAssetFetch(ctx, kind, ref)
	start := time.Now()

	var img image.Image
	var err error
	if strings.HasPrefix(ref, "data:") {
		img, err = decodeDataURL(ref)
	} else {
		img, err = l.load(ctx, ref)
	}

	observability.Assets().OnAssetResult(ctx, kind, ref, time.Since(start), err)
	return img, err
}

// load fetches raw bytes (through the cache) and decodes them.
func (l *Loader) load(ctx context.Context, url string) (image.Image, error) {
	key := cache.AssetKey(url)

	data, hit, err := l.cache.Get(ctx, key)
	if err != nil {
		// Cache trouble is not an asset failure; fall through to the fetch.
		l.logger.Debug("asset cache read failed", "url", url, "err", err)
		hit = false
	}

	if !hit {
		data, err = httputil.Fetch(ctx, l.client, url)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeAssetLoad, err, "fetch %s", url)
		}
		if err := l.cache.Set(ctx, key, data, 0); err != nil {
			l.logger.Debug("asset cache write failed", "url", url, "err", err)
		}
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		// A cached entry that no longer decodes is poison; drop it.
		if hit {
			_ = l.cache.Delete(ctx, key)
		}
		return nil, errors.Wrap(errors.ErrCodeAssetLoad, err, "decode %s", url)
	}
	return img, nil
}

// decodeDataURL decodes a base64 data: URL into an image.
func decodeDataURL(ref string) (image.Image, error) {
	idx := strings.Index(ref, ",")
	if idx < 0 {
		return nil, errors.New(errors.ErrCodeAssetLoad, "malformed data URL")
	}
	meta, payload := ref[:idx], ref[idx+1:]
	if !strings.Contains(meta, "base64") {
		return nil, errors.New(errors.ErrCodeAssetLoad, "unsupported data URL encoding")
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAssetLoad, err, "decode data URL payload")
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAssetLoad, err, "decode data URL image")
	}
	return img, nil
}
