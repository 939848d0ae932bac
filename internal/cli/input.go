package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hugr-lab/jql-go/filter"
)

// Input formats accepted by --input.
const (
	FormatAuto = "auto"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ValidFormats defines the allowed input formats.
var ValidFormats = []string{FormatAuto, FormatJSON, FormatYAML}

// readInput reads the named file, or stdin when the name is empty or "-".
func readInput(cmd *cobra.Command, args []string) (string, []byte, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return "-", data, nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", nil, fmt.Errorf("failed to read document: %w", err)
	}
	return args[0], data, nil
}

// detectFormat picks the document format from the file extension,
// falling back to JSON when the content starts with '{'.
func detectFormat(name string, data []byte) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	}
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("{")) {
		return FormatJSON
	}
	return FormatYAML
}

// compileInput reads and compiles a document.
func compileInput(cmd *cobra.Command, args []string, format string, opts *filter.Options) (*filter.Query, error) {
	name, data, err := readInput(cmd, args)
	if err != nil {
		return nil, err
	}

	if format == FormatAuto {
		format = detectFormat(name, data)
	}
	switch format {
	case FormatJSON:
		return filter.Parse(data, opts)
	case FormatYAML:
		return filter.ParseYAML(data, opts)
	}
	return nil, fmt.Errorf("invalid input format %q: must be one of %v", format, ValidFormats)
}
