// Package pipeline orchestrates the build → layout → render flow with
// caching. Both the CLI and the HTTP API run their work through a
// [Runner] so caching and logging behave the same in both.
package pipeline

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/treekit/tidytree/pkg/graph"
	"github.com/treekit/tidytree/pkg/layout"
	"github.com/treekit/tidytree/pkg/tree"
)

// Cache entry lifetimes per stage.
const (
	TTLLayout   = 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)

// Formats supports every value accepted in Options.Formats.
var Formats = []string{"json", "svg", "dot", "png"}

var (
	// ErrNoWords indicates that the input word list was empty after
	// normalization.
	ErrNoWords = errors.New("pipeline: no input words")

	// ErrUnknownFormat indicates an output format outside [Formats].
	ErrUnknownFormat = errors.New("pipeline: unknown output format")
)

// Options configures a pipeline run.
type Options struct {
	// Words is the input word list. It is normalized (trimmed,
	// uppercased, deduplicated, sorted) before the trie is built.
	Words []string

	// DepthLimit bounds the laid-out tree depth. Zero selects the
	// default.
	DepthLimit int

	// KeepRoot places the trie root at level zero instead of using it
	// as an off-canvas anchor.
	KeepRoot bool

	// Direction selects the axis transform. Empty selects top-bottom.
	Direction string

	// SiblingSpacing and LevelSpacing override the unit distances
	// between siblings and levels. Zero selects the defaults.
	SiblingSpacing float64
	LevelSpacing   float64

	// Formats lists the artifacts to produce. Empty means ["json"].
	Formats []string

	// Refresh bypasses cache reads, forcing recomputation.
	Refresh bool

	// Logger receives stage progress. Nil uses the runner's logger.
	Logger *log.Logger

	direction layout.Direction
	words     []string
}

// ValidateAndSetDefaults checks options and fills in defaults. It is
// called by the runner; direct callers only need it when inspecting
// the normalized values before execution.
func (o *Options) ValidateAndSetDefaults() error {
	o.words = tree.Normalize(o.Words)
	if len(o.words) == 0 {
		return ErrNoWords
	}

	if o.Direction == "" {
		o.Direction = string(layout.DefaultDirection)
	}
	dir, err := layout.ParseDirection(o.Direction)
	if err != nil {
		return err
	}
	o.direction = dir

	if len(o.Formats) == 0 {
		o.Formats = []string{"json"}
	}
	for _, f := range o.Formats {
		if !slices.Contains(Formats, f) {
			return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
		}
	}
	return nil
}

func (o *Options) layoutOptions() layout.Options[string] {
	return layout.Options[string]{
		DepthLimit:     o.DepthLimit,
		KeepRoot:       o.KeepRoot,
		Direction:      o.direction,
		SiblingSpacing: o.SiblingSpacing,
		LevelSpacing:   o.LevelSpacing,
	}
}

// Stats holds per-stage timing and size information for one run.
type Stats struct {
	LayoutTime time.Duration `json:"layout_time"`
	RenderTime time.Duration `json:"render_time"`
	NodeCount  int           `json:"node_count"`
	EdgeCount  int           `json:"edge_count"`
}

// CacheInfo reports which stages were served from cache.
type CacheInfo struct {
	LayoutHit bool `json:"layout_hit"`
	RenderHit bool `json:"render_hit"`
}

// Result is the outcome of a pipeline run.
type Result struct {
	// Doc is the laid-out tree in its serialization format.
	Doc graph.Document

	// DocHash is a short content hash of Doc, usable as an ETag.
	DocHash string

	// Artifacts maps each requested format to its rendered bytes.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}
