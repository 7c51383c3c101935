package debuglog

import (
	"bytes"
	"io"
	"os"
)

// VerifyLogFile checks that an existing log file still carries the expected
// start and end markers. It runs before every append so a partial or corrupt
// file is never spliced into; a failure is treated by callers exactly like a
// write failure and triggers rotation.
func VerifyLogFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmtErrorf("failed to open log file '%s' for verification: %w", path, err)
	}
	defer file.Close()

	header := make([]byte, len(logStartBytes))
	if _, err := io.ReadFull(file, header); err != nil {
		return fmtErrorf("failed to read start of log file '%s': %w", path, err)
	}
	if !bytes.Equal(header, logStartBytes) {
		return fmtErrorf("the start of log file '%s' doesn't match what was expected", path)
	}

	if _, err := file.Seek(-int64(len(logEndBytes)), io.SeekEnd); err != nil {
		return fmtErrorf("failed to seek to end of log file '%s': %w", path, err)
	}

	trailer := make([]byte, len(logEndBytes))
	if _, err := io.ReadFull(file, trailer); err != nil {
		return fmtErrorf("failed to read end of log file '%s': %w", path, err)
	}
	if !bytes.Equal(trailer, logEndBytes) {
		return fmtErrorf("the end of log file '%s' doesn't match what was expected", path)
	}

	return nil
}
