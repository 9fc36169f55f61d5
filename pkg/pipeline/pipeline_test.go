package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/treekit/tidytree/pkg/cache"
	"github.com/treekit/tidytree/pkg/layout"
)

func quietLogger() *log.Logger {
	logger := log.Default()
	logger.SetLevel(log.FatalLevel)
	return logger
}

func TestExecute_WithoutCache(t *testing.T) {
	r := NewRunner(nil, quietLogger())
	defer r.Close()

	res, err := r.Execute(context.Background(), Options{
		Words:   []string{"ab", "ac", "abcd", "abce"},
		Formats: []string{"json", "svg", "dot"},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if res.Stats.NodeCount != 6 {
		t.Errorf("node count = %d, want 6", res.Stats.NodeCount)
	}
	if res.Stats.EdgeCount != 5 {
		t.Errorf("edge count = %d, want 5", res.Stats.EdgeCount)
	}
	for _, f := range []string{"json", "svg", "dot"} {
		if len(res.Artifacts[f]) == 0 {
			t.Errorf("artifact %q is empty", f)
		}
	}
	if res.CacheInfo.LayoutHit || res.CacheInfo.RenderHit {
		t.Error("null cache reported a hit")
	}
	if res.DocHash == "" {
		t.Error("doc hash is empty")
	}
}

func TestExecute_FileCacheHitOnSecondRun(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	r := NewRunner(c, quietLogger())
	defer r.Close()

	opts := Options{Words: []string{"ab", "ac"}, Formats: []string{"json", "dot"}}
	ctx := context.Background()

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Error("first run reported a cache hit")
	}

	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !second.CacheInfo.LayoutHit {
		t.Error("second run missed the layout cache")
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run missed the artifact cache")
	}
	if second.DocHash != first.DocHash {
		t.Errorf("doc hash changed: %q vs %q", second.DocHash, first.DocHash)
	}
}

func TestExecute_RefreshBypassesCache(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	r := NewRunner(c, quietLogger())
	defer r.Close()

	opts := Options{Words: []string{"ab"}}
	ctx := context.Background()

	if _, err := r.Execute(ctx, opts); err != nil {
		t.Fatalf("warm-up Execute: %v", err)
	}

	opts.Refresh = true
	res, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("refresh Execute: %v", err)
	}
	if res.CacheInfo.LayoutHit || res.CacheInfo.RenderHit {
		t.Error("refresh run used the cache")
	}
}

func TestExecute_DirectionAffectsKey(t *testing.T) {
	a := layoutCacheKey(mustValidated(t, Options{Words: []string{"ab"}, Direction: "TB"}))
	b := layoutCacheKey(mustValidated(t, Options{Words: []string{"ab"}, Direction: "LR"}))
	if a == b {
		t.Error("cache key ignores direction")
	}
}

func mustValidated(t *testing.T, opts Options) Options {
	t.Helper()
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	return opts
}

func TestOptions_Validation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want error
	}{
		{"no words", Options{}, ErrNoWords},
		{"blank words", Options{Words: []string{"  ", ""}}, ErrNoWords},
		{"bad format", Options{Words: []string{"a"}, Formats: []string{"gif"}}, ErrUnknownFormat},
		{"bad direction", Options{Words: []string{"a"}, Direction: "XY"}, layout.ErrUnknownDirection},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestOptions_Defaults(t *testing.T) {
	opts := mustValidated(t, Options{Words: []string{"b", "a", "a"}})

	if got := strings.Join(opts.words, ","); got != "A,B" {
		t.Errorf("normalized words = %q, want A,B", got)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != "json" {
		t.Errorf("default formats = %v, want [json]", opts.Formats)
	}
	if opts.direction != layout.DirTopBottom {
		t.Errorf("default direction = %q, want TB", opts.direction)
	}
}

func TestLayout_ReturnsDocument(t *testing.T) {
	r := NewRunner(nil, quietLogger())
	defer r.Close()

	doc, err := r.Layout(context.Background(), Options{Words: []string{"ab", "ac"}})
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	if doc.NodeCount() != 3 {
		t.Errorf("node count = %d, want 3", doc.NodeCount())
	}
	if doc.Direction != "TB" {
		t.Errorf("direction = %q, want TB", doc.Direction)
	}
}
