package ops

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestExportRestoreRoundTrip(t *testing.T) {
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "tasks.json"), `{"tasks":[]}`)
	writeFile(t, filepath.Join(src, "categories.json"), `{"categories":[]}`)
	writeFile(t, filepath.Join(src, "holidays.json"), `{"2024":{"01-01":"신정"}}`)

	var buf bytes.Buffer
	require.NoError(t, Export(src, &buf))
	assert.NotZero(t, buf.Len())

	dst := t.TempDir()
	require.NoError(t, Restore(&buf, dst))

	for _, name := range []string{"tasks.json", "categories.json", "holidays.json"} {
		want, err := os.ReadFile(filepath.Join(src, name))
		require.NoError(t, err)
		got, err := os.ReadFile(filepath.Join(dst, name))
		require.NoError(t, err)
		assert.Equal(t, want, got, name)
	}
}

func TestRestoreOverwritesExistingFiles(t *testing.T) {
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "tasks.json"), `{"tasks":[{"id":"1"}]}`)

	var buf bytes.Buffer
	require.NoError(t, Export(src, &buf))

	dst := t.TempDir()
	writeFile(t, filepath.Join(dst, "tasks.json"), `{"tasks":[]}`)
	require.NoError(t, Restore(&buf, dst))

	got, err := os.ReadFile(filepath.Join(dst, "tasks.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"tasks":[{"id":"1"}]}`, string(got))
}

func TestExportMissingSource(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Export(filepath.Join(t.TempDir(), "nope"), &buf))
	assert.Error(t, Export("   ", &buf))
}

func TestRestoreRejectsGarbage(t *testing.T) {
	err := Restore(bytes.NewBufferString("not a gzip stream"), t.TempDir())
	assert.Error(t, err)
}

func TestSafeRelPath(t *testing.T) {
	for _, bad := range []string{"", ".", "..", "../escape", "/etc/passwd"} {
		_, err := safeRelPath(bad)
		assert.Error(t, err, bad)
	}
	got, err := safeRelPath("sub/tasks.json")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("sub", "tasks.json"), got)
}
