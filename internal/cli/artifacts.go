package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/timeblock/pkg/errors"
	"github.com/matzehuels/timeblock/pkg/pipeline"
)

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input; stdin input
// falls back to the app name since there is no path to derive from.
// If output has a format extension (.svg, .png, .pdf), it strips that
// extension. This is used when generating multiple files
// (e.g., blocks.svg, blocks.png).
func basePath(output, input string) string {
	if output == "" {
		if input == pipeline.StdinPath {
			return appName
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// writeArtifacts writes each rendered format to disk and prints the paths.
// With a single format and an explicit output path, the artifact goes to
// exactly that path; otherwise paths derive from the base plus format
// extension.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) error {
	base := basePath(output, input)
	single := len(formats) == 1

	for _, format := range formats {
		path := base + "." + format
		if single && output != "" {
			path = output
		}
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return errors.Wrap(errors.ErrCodeRender, err, "write %s", path)
		}
		printFile(path)
	}
	return nil
}
