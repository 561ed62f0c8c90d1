package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

var version = "dev"

const previewColumns = 80

// options holds the command line flags
type options struct {
	sceneName  string
	width      int
	spp        int
	depth      int
	output     string
	workers    int
	tileSize   int
	seed       int64
	meshPath   string
	texture    string
	preview    bool
	listScenes bool
}

var (
	prefixStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#04B575"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
)

// styledLogger implements core.Logger with a colored prefix
type styledLogger struct {
	w io.Writer
}

func (l *styledLogger) Printf(format string, args ...interface{}) {
	lipgloss.Fprint(l.w, prefixStyle.Render("pathtracer")+" "+fmt.Sprintf(format, args...))
}

func main() {
	if err := fang.Execute(context.Background(), newRootCommand(), fang.WithVersion(version), fang.WithNotifySignal(os.Interrupt)); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "pathtracer",
		Short: "Render a built-in scene with a Monte Carlo path tracer",
		Long: "Renders one of the built-in scenes with importance-sampled path tracing and writes\n" +
			"the result as PNG or PPM. Flags override the scene's own camera and film settings.",
		Example: "  pathtracer --scene cornell --spp 200 --output cornell.png\n" +
			"  pathtracer --scene mesh --mesh bunny.ply --preview",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.listScenes {
				printSceneList(cmd.OutOrStdout())
				return nil
			}
			return run(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.sceneName, "scene", "s", "random", "Scene to render (see --list)")
	flags.IntVarP(&opts.width, "width", "w", 0, "Image width in pixels; height follows the camera aspect (0 = scene default)")
	flags.IntVar(&opts.spp, "spp", 0, "Samples per pixel (0 = scene default)")
	flags.IntVar(&opts.depth, "depth", 0, "Maximum ray bounces (0 = scene default)")
	flags.StringVarP(&opts.output, "output", "o", "image.png", "Output file (.png or .ppm)")
	flags.IntVar(&opts.workers, "workers", runtime.NumCPU(), "Number of parallel workers")
	flags.IntVar(&opts.tileSize, "tile-size", renderer.DefaultConfig().TileSize, "Edge length of a render tile")
	flags.Int64Var(&opts.seed, "seed", renderer.DefaultConfig().Seed, "Random seed for scene generation and sampling")
	flags.StringVar(&opts.meshPath, "mesh", "", "PLY or glTF file for the mesh scene")
	flags.StringVar(&opts.texture, "texture", "", "Image file for the textured scene")
	flags.BoolVar(&opts.preview, "preview", false, "Print a terminal preview of the result")
	flags.BoolVar(&opts.listScenes, "list", false, "List available scenes and exit")

	return cmd
}

// run builds the scene, renders it and saves the image. Nothing is written on failure.
func run(cmd *cobra.Command, opts *options) error {
	out := cmd.OutOrStdout()
	logger := &styledLogger{w: out}

	s, err := scene.New(opts.sceneName, scene.Options{
		TexturePath: opts.texture,
		MeshPath:    opts.meshPath,
		Seed:        opts.seed,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	if err := applyOverrides(s, opts); err != nil {
		return err
	}
	if err := s.BuildBVH(opts.seed); err != nil {
		return err
	}

	config := renderer.Config{
		Width:           s.SamplingConfig.Width,
		Height:          s.SamplingConfig.Height,
		SamplesPerPixel: s.SamplingConfig.SamplesPerPixel,
		TileSize:        opts.tileSize,
		NumWorkers:      opts.workers,
		Seed:            opts.seed,
	}
	logger.Printf("Scene %s: %d objects, %d lights\n", opts.sceneName, s.GetPrimitiveCount(), s.Lights.Len())

	r := renderer.NewRenderer(s, integrator.NewPathTracingIntegrator(), config, logger)
	img, stats, err := r.Render(cmd.Context())
	if err != nil {
		return err
	}

	if err := renderer.SaveImage(img, opts.output); err != nil {
		return err
	}

	if opts.preview {
		lipgloss.Fprintln(out, renderer.Preview(img, previewColumns))
	}
	lipgloss.Fprintln(out, headingStyle.Render("Saved "+opts.output)+" "+
		faintStyle.Render(fmt.Sprintf("(%dx%d, %d spp, %v, avg luminance %.3f)",
			config.Width, config.Height, config.SamplesPerPixel, stats.Elapsed.Round(time.Millisecond), renderer.CalculateAverageLuminance(img))))
	return nil
}

// applyOverrides replaces the scene's film and camera defaults with explicit flags
func applyOverrides(s *scene.Scene, opts *options) error {
	if opts.width < 0 || opts.spp < 0 || opts.depth < 0 {
		return fmt.Errorf("negative film override (width %d, spp %d, depth %d)", opts.width, opts.spp, opts.depth)
	}
	if opts.width > 0 {
		s.SetWidth(opts.width)
	}
	if opts.spp > 0 {
		s.SamplingConfig.SamplesPerPixel = opts.spp
	}
	if opts.depth > 0 {
		s.SetMaxDepth(opts.depth)
	}
	return nil
}

func printSceneList(w io.Writer) {
	for _, group := range scene.ListGroups() {
		lipgloss.Fprintln(w, headingStyle.Render(group.Name))
		for _, info := range group.Scenes {
			lipgloss.Fprintln(w, fmt.Sprintf("  %-14s %s", info.ID, faintStyle.Render(info.Description)))
		}
	}
}
