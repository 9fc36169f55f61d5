package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/treekit/tidytree/pkg/graph"
	"github.com/treekit/tidytree/pkg/pipeline"
)

// renderCommand creates the render command for producing image output.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		file       string
		layoutFile string
		output     string
		formats    string
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [words...]",
		Short: "Render a tidy tree layout as SVG, DOT, or PNG",
		Long: `Render a tidy tree layout as SVG, DOT, or PNG.

Input is either a word list (positional arguments or -f) that is laid
out first, or an existing layout.json produced by 'layout' (--layout).
Multiple formats can be produced in one run with a comma-separated
--formats value.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formats)
			if layoutFile != "" {
				return c.runRenderFromFile(cmd.Context(), layoutFile, opts.Formats, output)
			}

			words, err := collectWords(args, file)
			if err != nil {
				return err
			}
			opts.Words = words
			if err := applyConfig(cmd, &opts); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "word list file, one word per line")
	cmd.Flags().StringVar(&layoutFile, "layout", "", "render an existing layout.json instead of computing one")
	cmd.Flags().StringVarP(&output, "output", "o", "tree", "output basename (format extension is appended)")
	cmd.Flags().StringVar(&formats, "formats", "svg", "comma-separated output formats: svg, dot, png, json")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even if cached")
	addLayoutFlags(cmd, &opts)

	return cmd
}

// runRender executes the full pipeline and writes one file per format.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinner("Rendering...")
	spinner.Start()

	res, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	printSuccess("Render complete")
	if err := writeArtifacts(res.Artifacts, opts.Formats, output); err != nil {
		return err
	}
	printStats(res.Stats.NodeCount, res.Stats.EdgeCount, res.CacheInfo.RenderHit)

	return nil
}

// runRenderFromFile renders an existing layout document without
// recomputing the layout.
func (c *CLI) runRenderFromFile(ctx context.Context, layoutFile string, formats []string, output string) error {
	doc, err := graph.ReadFile(layoutFile)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", layoutFile, err)
	}

	artifacts, err := pipeline.RenderDocument(ctx, doc, formats)
	if err != nil {
		return err
	}

	printSuccess("Render complete")
	if err := writeArtifacts(artifacts, formats, output); err != nil {
		return err
	}
	printStats(doc.NodeCount(), doc.EdgeCount(), false)

	return nil
}

// writeArtifacts writes each rendered format to <output>.<format>,
// preserving the requested format order.
func writeArtifacts(artifacts map[string][]byte, formats []string, output string) error {
	for _, format := range formats {
		path := output + "." + format
		if err := os.WriteFile(path, artifacts[format], 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}
