package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/flexline/pkg/pipeline"
)

// artifactWriteParams describes rendered artifacts and where they go.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
	cacheHit  bool
	itemCount int
	lineCount int
}

// writeArtifacts writes each artifact to disk. A single format goes to
// output as given; several formats share a base path and get their
// extension appended.
func writeArtifacts(p artifactWriteParams) error {
	paths := make([]string, 0, len(p.formats))
	for _, format := range p.formats {
		data, ok := p.artifacts[format]
		if !ok {
			return fmt.Errorf("no %s output produced", format)
		}
		path := outputPath(p.output, p.input, format, len(p.formats))
		if filepath.Clean(path) == filepath.Clean(p.input) {
			return fmt.Errorf("%s output would overwrite %s; pass --output", format, p.input)
		}
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}

	printSuccess("Rendered %s", strings.Join(p.formats, ", "))
	for _, path := range paths {
		printFile(path)
	}
	printStats(p.itemCount, p.lineCount, p.cacheHit)
	return nil
}

// outputPath picks the file for one format. JSON output is a layout, so it
// gets the layout suffix.
func outputPath(output, input, format string, count int) string {
	if output != "" && count == 1 {
		return output
	}
	if format == pipeline.FormatJSON {
		return basePath(output, input) + layoutSuffix
	}
	return basePath(output, input) + "." + format
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input (and a .layout
// suffix left by the layout command).
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		return strings.TrimSuffix(base, ".layout")
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
