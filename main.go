package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/printfab/zplrender/label"
	"github.com/printfab/zplrender/renderer"
	rasterrenderer "github.com/printfab/zplrender/renderer/raster"
	"github.com/printfab/zplrender/zpl"
)

func main() {
	input := flag.String("in", "", "ZPL input path")
	output := flag.String("out", "output/label.png", "PNG output path")
	elements := flag.String("elements", "", "optional JSON dump of the analyzed elements")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger setup failed: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(*input, *output, *elements, logger); err != nil {
		logger.Fatal("render failed", zap.Error(err))
	}
	fmt.Printf("wrote %s\n", *output)
}

// run wires analysis to rasterization: only the first label of a
// multi-label document is rendered.
func run(inputPath, outputPath, elementsPath string, logger *zap.Logger) error {
	if inputPath == "" {
		return fmt.Errorf("missing -in path")
	}
	src, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", inputPath, err)
	}

	labels := zpl.Analyze(string(src))
	if len(labels) == 0 {
		return fmt.Errorf("document produced no labels")
	}
	if len(labels) > 1 {
		logger.Info("multi-label document, rendering first label only",
			zap.Int("labels", len(labels)))
	}

	if elementsPath != "" {
		if err := writeElements(labels, elementsPath); err != nil {
			return err
		}
	}

	var r renderer.Renderer = rasterrenderer.NewRendererWithOptions(rasterrenderer.Options{
		Logger: logger,
	})
	data, err := r.Render(labels[0])
	if err != nil {
		return fmt.Errorf("render label: %w", err)
	}

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outputPath, err)
	}
	return nil
}

func writeElements(labels []label.Label, path string) error {
	data, err := json.MarshalIndent(labels, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal elements: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create elements dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write elements json: %w", err)
	}
	return nil
}
