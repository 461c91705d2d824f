package values_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/datetemplate/values"
)

// writeTemp creates a temporary file with content and
// returns its path.
func writeTemp(
	tb testing.TB,
	dir string,
	name string,
	content string,
) string {
	tb.Helper()

	pa := filepath.Join(dir, name)
	require.NoError(
		tb,
		os.WriteFile(pa, []byte(content), 0o600),
	)

	return pa
}

func TestLoadFile_properties(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	pa := writeTemp(
		t, dir, "job.properties",
		"# comment\n! also comment\n\n"+
			"table = events\nexpr=a=b\nNOEQUALS\n",
	)

	got, err := values.LoadFile(pa)
	require.NoError(t, err)
	assert.Equal(
		t,
		map[string]any{"table": "events", "expr": "a=b"},
		got,
	)
}

func TestLoadFile_yaml_nested(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	pa := writeTemp(
		t, dir, "values.yaml",
		"table: events\ncontroller:\n  host: pinot\n",
	)

	got, err := values.LoadFile(pa)
	require.NoError(t, err)
	assert.Equal(t, "events", got["table"])

	nested, ok := got["controller"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "pinot", nested["host"])
}

func TestLoadFile_json(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	pa := writeTemp(
		t, dir, "values.JSON",
		`{"table": "events", "replicas": 3}`,
	)

	got, err := values.LoadFile(pa)
	require.NoError(t, err)
	assert.Equal(t, "events", got["table"])
	assert.InDelta(t, 3.0, got["replicas"], 0)
}

func TestLoadFile_empty_structured_files(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	for _, name := range []string{"e.yaml", "e.yml", "e.json"} {
		pa := writeTemp(t, dir, name, "\n")

		got, err := values.LoadFile(pa)
		require.NoError(t, err, name)
		assert.NotNil(t, got, name)
		assert.Empty(t, got, name)
	}
}

func TestLoadFile_json_null(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	pa := writeTemp(t, dir, "null.json", "null")

	got, err := values.LoadFile(pa)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestLoadFile_yaml_not_a_mapping(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	pa := writeTemp(t, dir, "list.yaml", "- a\n- b\n")

	_, err := values.LoadFile(pa)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading values")
	assert.Contains(t, err.Error(), "list.yaml")
}

func TestLoadFile_json_invalid(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	pa := writeTemp(t, dir, "bad.json", `{"a":`)

	_, err := values.LoadFile(pa)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding json")
}

func TestLoadFile_missing(t *testing.T) {
	t.Parallel()

	_, err := values.LoadFile("/nonexistent/values.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading values")
}

func TestLoadFiles_later_file_overrides_earlier(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	f1 := writeTemp(t, dir, "a.yaml", "ver: \"1.0\"\nonly1: x\n")
	f2 := writeTemp(t, dir, "b.properties", "ver=2.0\n")

	got, err := values.LoadFiles([]string{f1, f2})
	require.NoError(t, err)
	assert.Equal(
		t,
		map[string]any{"ver": "2.0", "only1": "x"},
		got,
	)
}

func TestLoadFiles_nil(t *testing.T) {
	t.Parallel()

	got, err := values.LoadFiles(nil)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestLoadFiles_missing_file(t *testing.T) {
	t.Parallel()

	_, err := values.LoadFiles(
		[]string{"/nonexistent/file.txt"},
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "merging values")
}

func FuzzLoadFile(f *testing.F) {
	f.Add("k=v\n", ".properties")
	f.Add("a: b\n", ".yaml")
	f.Add(`{"a":1}`, ".json")
	f.Add("=", ".txt")
	f.Add("", ".yml")

	f.Fuzz(func(t *testing.T, content string, ext string) {
		dir := t.TempDir()
		pa := filepath.Join(dir, "values"+filepath.Base(ext))

		if err := os.WriteFile(
			pa, []byte(content), 0o600,
		); err != nil {
			return
		}

		// We only verify it does not panic.
		_, _ = values.LoadFile(pa) //nolint:errcheck // fuzz: error irrelevant
	})
}
