package debuglog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirstConfigLogsNoChangeRecords(t *testing.T) {
	service, _ := createTestService(t, nil)

	service.Flush()

	assert.NoFileExists(t, logFilePath(service))
}

func TestSettingChangeRecords(t *testing.T) {
	service, _ := createTestService(t, nil)

	changed := service.GetConfig()
	changed.WriteGroups = true
	changed.LogLevel = "Info"
	require.NoError(t, service.ApplyConfig(changed))

	service.Flush()

	data, err := os.ReadFile(logFilePath(service))
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "Updating setting 'Write_Groups' to 'true'.")
	assert.Contains(t, text, "Updating setting 'Log_Level' to 'Info'.")
	// Unchanged keys log nothing
	assert.NotContains(t, text, "Logging_Enabled")
}

func TestReenableRotatesDirectory(t *testing.T) {
	service, _ := createTestService(t, nil)
	firstDirectory := service.DirectoryName()

	disabled := service.GetConfig()
	disabled.Enabled = false
	require.NoError(t, service.ApplyConfig(disabled))

	enabled := service.GetConfig()
	enabled.Enabled = true
	require.NoError(t, service.ApplyConfig(enabled))

	assert.NotEqual(t, firstDirectory, service.DirectoryName())
	assert.True(t, service.IsContinuation())
}

func TestIntervalToImmediateDrainsBuffer(t *testing.T) {
	service, _ := createTestService(t, map[string]any{"flush_interval_s": 60})

	service.Log("buffered", LevelInfo, "Test", "", false, nil)
	assert.NoFileExists(t, logFilePath(service))

	immediate := service.GetConfig()
	immediate.FlushIntervalS = 0
	require.NoError(t, service.ApplyConfig(immediate))

	// The transition itself flushed everything owed
	data, err := os.ReadFile(logFilePath(service))
	require.NoError(t, err)
	assert.Contains(t, string(data), "buffered")
	assert.Contains(t, string(data), "Updating setting 'Log_Interval' to '0'.")
}

func TestStreamToggleOffDrainsBuffer(t *testing.T) {
	service, _ := createTestService(t, map[string]any{"flush_interval_s": 60})

	service.Log("owed to disk", LevelInfo, "Test", "", false, nil)

	noChronological := service.GetConfig()
	noChronological.WriteChronological = false
	noChronological.WriteGroups = true
	require.NoError(t, service.ApplyConfig(noChronological))

	// The transition flushed under the new settings, so the records landed
	// in the group files
	groupPath := filepath.Join(service.RootPath(), service.DirectoryName(),
		groupsDirectoryName, "Test"+logFileExtension)
	data, err := os.ReadFile(groupPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "owed to disk")
	assert.NoFileExists(t, logFilePath(service))
}

func TestFlushTickerDrivesWrites(t *testing.T) {
	service, _ := createTestService(t, map[string]any{"flush_interval_s": 0.05})

	service.Log("on a timer", LevelInfo, "Test", "", false, nil)

	assert.Eventually(t, func() bool {
		data, err := os.ReadFile(logFilePath(service))
		return err == nil && strings.Contains(string(data), "on a timer")
	}, 2*time.Second, 20*time.Millisecond)
}

func TestShutdownFlushesBuffer(t *testing.T) {
	service, _ := createTestService(t, map[string]any{"flush_interval_s": 60})

	service.Log("final words", LevelInfo, "Test", "", false, nil)
	service.Shutdown()

	data, err := os.ReadFile(logFilePath(service))
	require.NoError(t, err)
	assert.Contains(t, string(data), "final words")
}
