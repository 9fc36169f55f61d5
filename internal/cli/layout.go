package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/treekit/tidytree/pkg/pipeline"
)

// layoutCommand creates the layout command for computing tidy tree layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		file    string
		output  string
		noCache bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout [words...]",
		Short: "Compute a tidy tree layout from a word list",
		Long: `Compute a tidy tree layout from a word list.

Words come from positional arguments, a word list file (-f), or both.
The words are normalized, inserted into a prefix trie, and laid out
with the tidy tree algorithm. The output is a layout.json file that can
be rendered to SVG/DOT/PNG using the 'render' command.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			words, err := collectWords(args, file)
			if err != nil {
				return err
			}
			opts.Words = words
			if err := applyConfig(cmd, &opts); err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "word list file, one word per line")
	cmd.Flags().StringVarP(&output, "output", "o", "layout.json", "output file")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even if cached")
	addLayoutFlags(cmd, &opts)

	return cmd
}

// addLayoutFlags registers the flags shared by layout, render, and serve.
func addLayoutFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().IntVar(&opts.DepthLimit, "depth", 0, "maximum tree depth (default 15)")
	cmd.Flags().StringVarP(&opts.Direction, "direction", "d", "", "layout direction: TB (default), BT, LR, RL, RADIAL")
	cmd.Flags().BoolVar(&opts.KeepRoot, "keep-root", false, "place the trie root on the canvas")
	cmd.Flags().Float64Var(&opts.SiblingSpacing, "sibling-spacing", 0, "distance between adjacent siblings")
	cmd.Flags().Float64Var(&opts.LevelSpacing, "level-spacing", 0, "distance between adjacent levels")
}

// applyConfig loads the user config and merges it into options.
func applyConfig(cmd *cobra.Command, opts *pipeline.Options) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	mergeConfig(cmd, cfg, opts)
	return nil
}

// mergeConfig applies config values for every flag the user did not set
// explicitly. Explicit flags always win over the config file.
func mergeConfig(cmd *cobra.Command, cfg Config, opts *pipeline.Options) {
	f := cmd.Flags()
	if f.Changed("depth") {
		cfg.DepthLimit = 0
	}
	if f.Changed("direction") {
		cfg.Direction = ""
	}
	if f.Changed("keep-root") {
		cfg.KeepRoot = false
	}
	if f.Changed("sibling-spacing") {
		cfg.SiblingSpacing = 0
	}
	if f.Changed("level-spacing") {
		cfg.LevelSpacing = 0
	}
	if fl := f.Lookup("formats"); fl != nil && fl.Changed {
		cfg.Formats = nil
	}
	cfg.apply(opts)
}

// runLayout executes the layout pipeline and writes the JSON document.
func (c *CLI) runLayout(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	opts.Formats = []string{"json"}

	spinner := newSpinner("Computing layout...")
	spinner.Start()

	res, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if err := os.WriteFile(output, res.Artifacts["json"], 0644); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess("Layout complete")
	printFile(output)
	printStats(res.Stats.NodeCount, res.Stats.EdgeCount, res.CacheInfo.LayoutHit)
	printNewline()
	printNextStep("Render", "tidytree render --layout "+output)

	return nil
}
