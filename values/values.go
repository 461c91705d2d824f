package values

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
)

// LoadFiles reads every file in paths and merges them into a
// single map. Keys from later files override earlier ones.
// The result is never nil.
func LoadFiles(paths []string) (map[string]any, error) {
	const errCtx = "merging values"

	merged := make(map[string]any)

	for _, pa := range paths {
		vals, err := LoadFile(pa)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", errCtx, err)
		}

		for key, val := range vals {
			merged[key] = val
		}
	}

	return merged, nil
}

// LoadFile reads a single values file, choosing the format
// from its extension.
func LoadFile(path string) (map[string]any, error) {
	const errCtx = "loading values"

	content, err := os.ReadFile(path) //nolint:gosec // paths from CLI flags
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	var vals map[string]any

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		vals, err = decodeYAML(content)
	case ".json":
		vals, err = decodeJSON(content)
	default:
		vals = parseProperties(content)
	}

	if err != nil {
		return nil, fmt.Errorf(
			"%s: %s: %w", errCtx, path, err,
		)
	}

	return vals, nil
}

func decodeYAML(content []byte) (map[string]any, error) {
	vals := make(map[string]any)

	if len(bytes.TrimSpace(content)) == 0 {
		return vals, nil
	}

	if err := yaml.Unmarshal(content, &vals); err != nil {
		return nil, fmt.Errorf("decoding yaml: %w", err)
	}

	if vals == nil {
		vals = make(map[string]any)
	}

	return vals, nil
}

func decodeJSON(content []byte) (map[string]any, error) {
	vals := make(map[string]any)

	if len(bytes.TrimSpace(content)) == 0 {
		return vals, nil
	}

	if err := json.Unmarshal(content, &vals); err != nil {
		return nil, fmt.Errorf("decoding json: %w", err)
	}

	if vals == nil {
		vals = make(map[string]any)
	}

	return vals, nil
}

// parseProperties reads "key=value" lines, splitting on the
// first "=". Blank lines, comments starting with '#' or '!',
// and lines without "=" are skipped.
func parseProperties(content []byte) map[string]any {
	vals := make(map[string]any)

	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" ||
			strings.HasPrefix(line, "#") ||
			strings.HasPrefix(line, "!") {
			continue
		}

		key, val, ok := strings.Cut(line, "=")
		if ok {
			vals[strings.TrimSpace(key)] = strings.TrimSpace(val)
		}
	}

	return vals
}
