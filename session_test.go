package debuglog

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSessionInfo(t *testing.T) {
	service, _ := createTestService(t, nil)

	info := service.buildSessionInfo()
	assert.Contains(t, info, "Session ID: ")
	assert.Contains(t, info, "Session start: ")
	assert.Contains(t, info, "Continuation of a previous log directory: false")
	assert.Contains(t, info, runtime.GOOS)
}

func TestBuildContentInfo(t *testing.T) {
	tmpDir := t.TempDir()
	contentDir := filepath.Join(tmpDir, "Mods")
	require.NoError(t, os.MkdirAll(filepath.Join(contentDir, "SomeMod"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(contentDir, "SomeMod", "mod.package"), []byte("12345"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(contentDir, "readme.txt"), []byte("hi"), 0644))

	service, _ := createTestService(t, map[string]any{"content_directory": contentDir})

	info := service.buildContentInfo()
	assert.Contains(t, info, "Mods {")
	assert.Contains(t, info, "SomeMod {")
	assert.Contains(t, info, "mod.package (5 B)")
	assert.Contains(t, info, "readme.txt (2 B)")
}

func TestBuildContentInfoMissingDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	service, _ := createTestService(t, map[string]any{
		"content_directory": filepath.Join(tmpDir, "does-not-exist"),
	})

	info := service.buildContentInfo()
	assert.Contains(t, info, "Failed to get the content directory's information.")
}
