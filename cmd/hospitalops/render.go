package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hospitalops/internal/codec"
	"hospitalops/internal/config"
	"hospitalops/internal/domain"
	"hospitalops/internal/layout"
	"hospitalops/internal/render"
)

var (
	renderWidth    float64
	renderViewport float64
	renderOut      string
	renderFormat   string
)

var renderCmd = &cobra.Command{
	Use:   "render <directory-file>",
	Short: "Render the nearby-hospitals layout of a directory file as SVG",
	Long: `Lays out every hospital in a YAML or JSON directory file around the
anchor circle and writes the frame as a standalone SVG document.

Example:
  hospitalops render directory.yaml --width 1400 -o nearby.svg`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().Float64Var(&renderWidth, "width", 1400, "Container width in pixels")
	renderCmd.Flags().Float64Var(&renderViewport, "viewport-height", 900, "Viewport height in pixels")
	renderCmd.Flags().StringVarP(&renderOut, "output", "o", "-", "Output file, - for stdout")
	renderCmd.Flags().StringVar(&renderFormat, "format", "", "Input format: yaml or json (default: from extension)")
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	dir, err := readDirectory(args[0], renderFormat)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if renderOut != "-" {
		f, err := os.Create(renderOut)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}

	if err := renderDirectory(out, dir, cfg, renderWidth, renderViewport); err != nil {
		return err
	}
	logger.Debug("rendered directory",
		zap.String("file", args[0]), zap.Int("hospitals", len(dir.Hospitals)), zap.String("output", renderOut))
	return nil
}

// readDirectory parses a directory file, picking the codec from format or
// the file extension
func readDirectory(path, format string) (*domain.Directory, error) {
	if format == "" {
		format = strings.TrimPrefix(filepath.Ext(path), ".")
	}
	c, err := codec.ForFormat(format)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open directory: %w", err)
	}
	defer f.Close()

	dir, err := c.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return dir, nil
}

func renderDirectory(w io.Writer, dir *domain.Directory, cfg *config.Config, width, viewportHeight float64) error {
	if width <= 0 || viewportHeight <= 0 {
		return fmt.Errorf("width and viewport height must be positive")
	}

	view := layout.NewView("render", cfg.Layout.Params, width, viewportHeight)
	view.SetEntities(domain.Entities(dir.Hospitals))
	scene := view.Render(cfg.Layout.AnchorRadius)

	labels := make(map[string]string, len(dir.Hospitals))
	for _, e := range dir.Hospitals {
		labels[e.ID] = e.Name
	}
	return render.SceneSVG(w, scene, cfg.Layout.Params, labels)
}
