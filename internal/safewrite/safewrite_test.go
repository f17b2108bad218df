package safewrite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWriter(t *testing.T, answer bool) (*Writer, *int) {
	t.Helper()
	prompts := 0
	w := &Writer{
		TempDir: t.TempDir(),
		Prompt: func(string) (bool, error) {
			prompts++
			return answer, nil
		},
	}
	return w, &prompts
}

func TestWriteCreatesNewFile(t *testing.T) {
	w, prompts := newTestWriter(t, true)
	dest := filepath.Join(t.TempDir(), "README.rst")

	res, err := w.Write([]string{"hello", "-- file generated by " + Marker + "."}, dest)
	require.NoError(t, err)
	assert.Equal(t, Written, res)
	assert.Equal(t, 0, *prompts, "creating a new file must not prompt")

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "hello\n-- file generated by "+Marker+".\n", string(data))
}

func TestWriteProtectsHandEditedFile(t *testing.T) {
	w, prompts := newTestWriter(t, true)
	dest := filepath.Join(t.TempDir(), "README.rst")
	original := "my precious hand-written notes\n"
	require.NoError(t, os.WriteFile(dest, []byte(original), 0644))

	res, err := w.Write([]string{"generated content", Marker}, dest)
	require.NoError(t, err)
	assert.Equal(t, Protected, res)
	assert.Equal(t, 0, *prompts)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, original, string(data), "protected file must be byte-for-byte unmodified")
}

func TestWriteIdenticalContentIsNoOp(t *testing.T) {
	w, prompts := newTestWriter(t, false)
	dest := filepath.Join(t.TempDir(), "README.rst")
	lines := []string{"body", "-- file generated by " + Marker + "."}

	res, err := w.Write(lines, dest)
	require.NoError(t, err)
	require.Equal(t, Written, res)

	before, err := os.ReadFile(dest)
	require.NoError(t, err)

	// Second run with unchanged content: no prompt, no rewrite.
	res, err = w.Write(lines, dest)
	require.NoError(t, err)
	assert.Equal(t, Unchanged, res)
	assert.Equal(t, 0, *prompts)

	after, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestWriteDeclinedLeavesFileAlone(t *testing.T) {
	w, prompts := newTestWriter(t, false)
	dest := filepath.Join(t.TempDir(), "README.rst")
	original := "old " + Marker + "\n"
	require.NoError(t, os.WriteFile(dest, []byte(original), 0644))

	res, err := w.Write([]string{"new " + Marker}, dest)
	require.NoError(t, err)
	assert.Equal(t, Declined, res)
	assert.Equal(t, 1, *prompts)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, original, string(data))
}

func TestWriteAcceptedReplacesAndBacksUp(t *testing.T) {
	w, prompts := newTestWriter(t, true)
	dest := filepath.Join(t.TempDir(), "README.rst")
	require.NoError(t, os.WriteFile(dest, []byte("old "+Marker+"\n"), 0644))

	res, err := w.Write([]string{"new " + Marker}, dest)
	require.NoError(t, err)
	assert.Equal(t, Written, res)
	assert.Equal(t, 1, *prompts)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "new "+Marker+"\n", string(data))

	backup, err := os.ReadFile(filepath.Join(w.TempDir, "distkit", "README.rst"))
	require.NoError(t, err)
	assert.Equal(t, "old "+Marker+"\n", string(backup))
}

func TestWriteLastBackupWins(t *testing.T) {
	w, _ := newTestWriter(t, true)
	dest := filepath.Join(t.TempDir(), "README.rst")

	require.NoError(t, os.WriteFile(dest, []byte("v1 "+Marker+"\n"), 0644))
	_, err := w.Write([]string{"v2 " + Marker}, dest)
	require.NoError(t, err)
	_, err = w.Write([]string{"v3 " + Marker}, dest)
	require.NoError(t, err)

	backup, err := os.ReadFile(filepath.Join(w.TempDir, "distkit", "README.rst"))
	require.NoError(t, err)
	assert.Equal(t, "v2 "+Marker+"\n", string(backup))
}
