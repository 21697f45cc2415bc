package files

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/scan-io-git/diagval/pkg/shared/errors"
)

// StdinPath is the conventional input path meaning "read standard input".
const StdinPath = "-"

// ExpandPath resolves paths that include a tilde (~) to the user's home directory.
func ExpandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(homeDir, path[2:]), nil
	}
	return path, nil
}

// ValidatePath checks if the given path is a valid file path for reading.
func ValidatePath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("path stat error: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("path %q is a directory, not a file", path)
	}

	if info.Mode()&os.ModeType != 0 {
		return fmt.Errorf("path %q is not a regular file", path)
	}
	return nil
}

// IsURL reports whether the input designator is a remote document URL.
func IsURL(input string) bool {
	return strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://")
}

// ReadInput reads raw document bytes from a file path, from stdin when input
// is "-", or from a URL when input looks like one. The client is only needed
// for URL inputs.
func ReadInput(input string, client *resty.Client) ([]byte, error) {
	switch {
	case input == StdinPath:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	case IsURL(input):
		if client == nil {
			return nil, fmt.Errorf("no HTTP client available for URL input %q", input)
		}
		resp, err := client.R().Get(input)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch %q: %w", input, err)
		}
		if resp.IsError() {
			return nil, fmt.Errorf("failed to fetch %q: status %s", input, resp.Status())
		}
		return resp.Body(), nil
	default:
		expanded, err := ExpandPath(input)
		if err != nil {
			return nil, fmt.Errorf("failed to expand path %q: %w", input, err)
		}
		if err := ValidatePath(expanded); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(expanded)
		if err != nil {
			return nil, fmt.Errorf("failed to read %q: %w", expanded, err)
		}
		return data, nil
	}
}

// DecodeJSON decodes raw bytes into a generic JSON tree. Syntax errors are
// surfaced as a ParseError carrying the line and column of the failure.
func DecodeJSON(raw []byte) (interface{}, error) {
	var data interface{}
	if err := json.Unmarshal(raw, &data); err != nil {
		if syntaxErr, ok := err.(*json.SyntaxError); ok {
			line, column := offsetPosition(raw, syntaxErr.Offset)
			return nil, errors.NewParseError(err, line, column)
		}
		return nil, errors.NewParseError(err, 0, 0)
	}
	return data, nil
}

// offsetPosition converts a byte offset into a 1-based line/column pair.
func offsetPosition(raw []byte, offset int64) (int, int) {
	if offset < 0 || offset > int64(len(raw)) {
		return 0, 0
	}
	head := raw[:offset]
	line := bytes.Count(head, []byte("\n")) + 1
	column := int(offset) - bytes.LastIndexByte(head, '\n')
	return line, column
}

// WriteJsonFile writes JSON data to the specified file.
func WriteJsonFile(outputFile string, data []byte) error {
	file, err := os.OpenFile(outputFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed creating file: %w", err)
	}
	defer file.Close()

	datawriter := bufio.NewWriter(file)
	defer datawriter.Flush()

	if _, err := datawriter.Write(data); err != nil {
		return fmt.Errorf("error writing data to file: %w", err)
	}

	return nil
}
