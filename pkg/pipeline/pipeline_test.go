package pipeline

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/soundpress/gigcard/pkg/cache"
	"github.com/soundpress/gigcard/pkg/compose"
	"github.com/soundpress/gigcard/pkg/errors"
	"github.com/soundpress/gigcard/pkg/fonts"
	"github.com/soundpress/gigcard/pkg/style"
)

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr errors.Code
		wantFmt string
		wantSty string
	}{
		{
			name:    "defaults fill in",
			opts:    Options{},
			wantFmt: "feed",
			wantSty: style.StyleIndustrial,
		},
		{
			name:    "explicit keys kept",
			opts:    Options{Format: "story", Style: style.StyleNeon},
			wantFmt: "story",
			wantSty: style.StyleNeon,
		},
		{
			name:    "unknown style",
			opts:    Options{Style: "vaporwave"},
			wantErr: errors.ErrCodeInvalidStyle,
		},
		{
			name:    "unknown format",
			opts:    Options{Format: "square"},
			wantErr: errors.ErrCodeInvalidFormat,
		},
		{
			name:    "text scale out of range",
			opts:    Options{Advanced: compose.Advanced{TextScale: 1000}},
			wantErr: errors.ErrCodeInvalidInput,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if tt.wantErr != "" {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want code %s", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if tt.opts.Format != tt.wantFmt || tt.opts.Style != tt.wantSty {
				t.Errorf("defaults = %s/%s, want %s/%s", tt.opts.Style, tt.opts.Format, tt.wantSty, tt.wantFmt)
			}
			if tt.opts.Advanced.TextScale != 100 {
				t.Errorf("TextScale = %v, want default 100", tt.opts.Advanced.TextScale)
			}
		})
	}
}

func TestExecutePlaceholderRender(t *testing.T) {
	runner := NewRunner(nil, nil, nil)

	result, err := runner.Execute(context.Background(), Options{})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if result.Stats.CacheHit {
		t.Error("fresh render reported a cache hit")
	}
	img, err := png.Decode(bytes.NewReader(result.PNG))
	if err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 1080 || b.Dy() != 1440 {
		t.Errorf("result = %dx%d, want 1080x1440 feed", b.Dx(), b.Dy())
	}
}

func TestExecuteRenderCache(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(c, nil, nil)
	opts := Options{Style: style.StyleMinimal, Format: "story"}

	first, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.Stats.CacheHit {
		t.Error("first run hit the cache")
	}

	second, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.Stats.CacheHit {
		t.Error("second run missed the cache")
	}
	if !bytes.Equal(first.PNG, second.PNG) {
		t.Error("cached bytes differ from rendered bytes")
	}

	opts.Refresh = true
	third, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.Stats.CacheHit {
		t.Error("refresh run hit the cache")
	}
}

// ttlCache records the TTL of every Set without storing anything.
type ttlCache struct {
	ttls []time.Duration
}

func (c *ttlCache) Get(ctx context.Context, key string) ([]byte, bool, error) { return nil, false, nil }
func (c *ttlCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	c.ttls = append(c.ttls, ttl)
	return nil
}
func (c *ttlCache) Delete(ctx context.Context, key string) error { return nil }
func (c *ttlCache) Close() error                                 { return nil }

func TestExecuteRenderTTL(t *testing.T) {
	c := &ttlCache{}
	runner := NewRunner(c, nil, nil)

	if _, err := runner.Execute(context.Background(), Options{}); err != nil {
		t.Fatal(err)
	}
	runner.TTL = time.Hour
	if _, err := runner.Execute(context.Background(), Options{}); err != nil {
		t.Fatal(err)
	}

	if len(c.ttls) != 2 || c.ttls[0] != DefaultRenderTTL || c.ttls[1] != time.Hour {
		t.Errorf("cache TTLs = %v, want [%v %v]", c.ttls, DefaultRenderTTL, time.Hour)
	}
}

func TestExecuteConcurrentRenders(t *testing.T) {
	// One shared runner serving parallel renders, as the HTTP service
	// does; every request must yield a complete, identical PNG.
	_ = fonts.Register("")
	runner := NewRunner(nil, nil, nil)
	opts := Options{Style: style.StyleBold, Format: "story"}

	want, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}

	const goroutines, rounds = 6, 5
	var wg sync.WaitGroup
	results := make(chan []byte, goroutines*rounds)
	errs := make(chan error, goroutines*rounds)
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				res, err := runner.Execute(context.Background(), opts)
				if err != nil {
					errs <- err
					return
				}
				results <- res.PNG
			}
		}()
	}
	wg.Wait()
	close(errs)
	close(results)

	for err := range errs {
		t.Errorf("concurrent Execute: %v", err)
	}
	for data := range results {
		if !bytes.Equal(data, want.PNG) {
			t.Error("concurrent render bytes differ from serial render")
			break
		}
	}
}

func TestExecuteContentPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "item.json")
	record := `{"id":"rec-9","type":"concertReport","title":"Abriss in der Markthalle","locale":"de"}`
	if err := os.WriteFile(path, []byte(record), 0o644); err != nil {
		t.Fatal(err)
	}

	runner := NewRunner(nil, nil, nil)
	result, err := runner.Execute(context.Background(), Options{ContentPath: path, Format: "story"})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	img, err := png.Decode(bytes.NewReader(result.PNG))
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 1080 || b.Dy() != 1920 {
		t.Errorf("result = %dx%d, want 1080x1920 story", b.Dx(), b.Dy())
	}
}

func TestExecuteMissingContentFile(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	_, err := runner.Execute(context.Background(), Options{ContentPath: "/does/not/exist.json"})
	if err == nil {
		t.Fatal("expected error for missing content file")
	}
}
