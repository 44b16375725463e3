package render

import (
	"bytes"
	"testing"
	"time"

	"growth-plot/internal/model"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func deviceSeries() model.NormalizedSeries {
	return model.NormalizedSeries{
		Name: "device", Kind: model.KindDevice,
		Points: []model.NormalizedPoint{
			{Hours: 0, Value: 1.74e7},
			{Hours: 17, Value: 1.04e8},
			{Hours: 42, Value: 8.99e8},
		},
	}
}

func TestRenderProducesPNG(t *testing.T) {
	ctx := Context{Width: 800, Height: 500, Title: "Cell Concentration vs Time"}
	controls := []model.NormalizedSeries{
		{
			Name: "diluted control", Kind: model.KindControl,
			Points: []model.NormalizedPoint{{Hours: 0, Value: 3.09e6}, {Hours: 15.45, Value: 1.81e8}},
		},
	}
	img, err := ctx.Render(deviceSeries(), controls)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(img, pngMagic) {
		t.Fatalf("output is not a PNG (first bytes % x)", img[:8])
	}
}

func TestRenderEmptyDatasetYieldsBlankImage(t *testing.T) {
	ctx := Context{Width: 320, Height: 200}
	img, err := ctx.Render(model.NormalizedSeries{Name: "device"}, nil)
	if err != nil {
		t.Fatalf("render empty: %v", err)
	}
	if !bytes.HasPrefix(img, pngMagic) {
		t.Fatal("blank fallback is not a PNG")
	}
}

func TestRenderSinglePointSeries(t *testing.T) {
	ctx := Context{Width: 640, Height: 400}
	single := model.NormalizedSeries{
		Name: "device", Kind: model.KindDevice,
		Points: []model.NormalizedPoint{{Hours: 0, Value: 5e6}},
	}
	img, err := ctx.Render(single, nil)
	if err != nil {
		t.Fatalf("render single point: %v", err)
	}
	if !bytes.HasPrefix(img, pngMagic) {
		t.Fatal("single-point render is not a PNG")
	}
}

func TestCacheRoundTrip(t *testing.T) {
	c := &Cache{store: make(map[string]*CacheEntry), ttl: time.Minute}

	key := CacheKey("counts.csv", 50)
	if _, ok := c.Get(key); ok {
		t.Fatal("unexpected hit on empty cache")
	}
	c.Set(key, []byte("png-bytes"))
	got, ok := c.Get(key)
	if !ok || string(got) != "png-bytes" {
		t.Fatalf("cache miss after set: ok=%v got=%q", ok, got)
	}

	c.Clear()
	if _, ok := c.Get(key); ok {
		t.Fatal("hit after clear")
	}

	// A nil cache is a no-op, not a panic.
	var nilCache *Cache
	nilCache.Set(key, nil)
	if _, ok := nilCache.Get(key); ok {
		t.Fatal("nil cache returned a hit")
	}
}

func TestCacheExpiry(t *testing.T) {
	c := &Cache{store: make(map[string]*CacheEntry), ttl: -time.Second}
	c.Set("k", []byte("x"))
	if _, ok := c.Get("k"); ok {
		t.Fatal("expired entry returned")
	}
}

func TestCacheKeyDistinguishesCutoffs(t *testing.T) {
	if CacheKey("a.csv", 10) == CacheKey("a.csv", 50) {
		t.Fatal("cutoff not part of cache key")
	}
	if CacheKey("a.csv", 10) == CacheKey("b.csv", 10) {
		t.Fatal("path not part of cache key")
	}
}
