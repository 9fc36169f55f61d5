package pipeline

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/treekit/tidytree/pkg/cache"
	"github.com/treekit/tidytree/pkg/graph"
	"github.com/treekit/tidytree/pkg/layout"
	"github.com/treekit/tidytree/pkg/render"
	"github.com/treekit/tidytree/pkg/tree"
)

// Runner executes pipeline runs against a shared cache. It is
// stateless apart from the cache and logger, so one Runner can serve
// concurrent runs with different options.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching via
// [cache.NullCache]; a nil logger falls back to log.Default.
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Execute runs the build → layout → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := r.logger(opts)

	result := &Result{}

	layoutStart := time.Now()
	doc, layoutHit, err := r.layoutWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Doc = doc
	result.DocHash = docHash(doc)
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.NodeCount = doc.NodeCount()
	result.Stats.EdgeCount = doc.EdgeCount()
	result.CacheInfo.LayoutHit = layoutHit

	logger.Info("computed layout",
		"words", len(opts.words),
		"nodes", doc.NodeCount(),
		"edges", doc.EdgeCount(),
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	renderStart := time.Now()
	artifacts, renderHit, err := r.renderWithCacheInfo(ctx, doc, result.DocHash, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Layout runs only the build and layout stages.
func (r *Runner) Layout(ctx context.Context, opts Options) (graph.Document, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return graph.Document{}, fmt.Errorf("invalid options: %w", err)
	}
	doc, _, err := r.layoutWithCacheInfo(ctx, opts)
	return doc, err
}

func (r *Runner) layoutWithCacheInfo(ctx context.Context, opts Options) (graph.Document, bool, error) {
	key := layoutCacheKey(opts)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if doc, err := graph.Unmarshal(data); err == nil {
				return doc, true, nil
			}
		}
	}

	trie := tree.Build(opts.words)
	g, err := layout.Render[string](trie, opts.layoutOptions())
	if err != nil {
		return graph.Document{}, false, err
	}
	doc := graph.FromLayout(g, opts.direction)

	if data, err := graph.Marshal(doc); err == nil {
		_ = r.Cache.Set(ctx, key, data, TTLLayout)
	}
	return doc, false, nil
}

func (r *Runner) renderWithCacheInfo(ctx context.Context, doc graph.Document, hash string, opts Options) (map[string][]byte, bool, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))

	allCached := !opts.Refresh
	if allCached {
		for _, format := range opts.Formats {
			data, hit, err := r.Cache.Get(ctx, cache.Key("artifact", hash, format))
			if err != nil || !hit {
				allCached = false
				break
			}
			artifacts[format] = data
		}
	}
	if allCached {
		return artifacts, true, nil
	}

	clear(artifacts)
	for _, format := range opts.Formats {
		data, err := renderFormat(ctx, doc, format)
		if err != nil {
			return nil, false, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
		_ = r.Cache.Set(ctx, cache.Key("artifact", hash, format), data, TTLArtifact)
	}
	return artifacts, false, nil
}

// RenderDocument renders an already computed layout document into the
// given formats, without caching. Used when the layout comes from a
// file instead of a pipeline run.
func RenderDocument(ctx context.Context, doc graph.Document, formats []string) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(formats))
	for _, format := range formats {
		data, err := renderFormat(ctx, doc, format)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderFormat(ctx context.Context, doc graph.Document, format string) ([]byte, error) {
	switch format {
	case "json":
		return graph.Marshal(doc)
	case "svg":
		return render.SVG(doc, render.WithLabels()), nil
	case "dot":
		return []byte(render.ToDOT(doc)), nil
	case "png":
		return render.DOTToPNG(ctx, render.ToDOT(doc))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Close releases the runner's cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}

func layoutCacheKey(opts Options) string {
	return cache.Key("layout",
		strings.Join(opts.words, "\n"),
		strconv.Itoa(opts.DepthLimit),
		strconv.FormatBool(opts.KeepRoot),
		string(opts.direction),
		strconv.FormatFloat(opts.SiblingSpacing, 'g', -1, 64),
		strconv.FormatFloat(opts.LevelSpacing, 'g', -1, 64),
	)
}

func docHash(doc graph.Document) string {
	data, err := graph.Marshal(doc)
	if err != nil {
		return ""
	}
	return cache.Hash(string(data))
}
