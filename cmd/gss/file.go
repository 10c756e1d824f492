package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/gssio/gss"
)

// extensions maps file extensions that differ from a format name.
var extensions = map[string]string{
	"yml":    "yaml",
	"tfvars": "hcl",
	"tf":     "hcl2",
	"props":  "properties",
	"prop":   "properties",
	"ndjson": "jsonl",
}

// FileNotFoundError denotes failing to find an input file.
type FileNotFoundError string

// Error returns the formatted error.
func (fnfe FileNotFoundError) Error() string {
	return fmt.Sprintf("file %q not found", string(fnfe))
}

// formatFromPath infers a format from the file extension.
func formatFromPath(path string) (string, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if alias, ok := extensions[ext]; ok {
		ext = alias
	}

	if _, err := gss.FormatCapabilities(ext); err != nil {
		return "", fmt.Errorf("cannot infer format of %q: %w", path, err)
	}
	return ext, nil
}

// readInput reads path from fs, or stdin when path is empty or "-".
func readInput(fs afero.Fs, path string, stdin io.Reader) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(stdin)
	}

	ok, err := exists(fs, path)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, FileNotFoundError(path)
	}

	return afero.ReadFile(fs, path)
}

// writeOutput writes b to path, or to stdout when path is empty or "-".
// Text written to stdout ends with a newline.
func writeOutput(fs afero.Fs, path string, b []byte, binary bool, stdout io.Writer) error {
	if path != "" && path != "-" {
		if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		return afero.WriteFile(fs, path, b, 0o644)
	}

	if !binary && len(b) > 0 && !bytes.HasSuffix(b, []byte("\n")) {
		b = append(b, '\n')
	}

	_, err := stdout.Write(b)
	return err
}

// exists checks if file exists.
func exists(fs afero.Fs, path string) (bool, error) {
	stat, err := fs.Stat(path)
	if err == nil {
		return !stat.IsDir(), nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}
