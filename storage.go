package debuglog

import (
	"io"
	"os"
	"path/filepath"
)

// WriteStatus classifies the outcome of one batch write
type WriteStatus int

const (
	StatusWritten WriteStatus = iota
	StatusTruncated
	StatusFailed
)

// WriteResult is the outcome of one batch write. Write faults never raise
// out of the storage layer; the failure-budget logic operates on this.
type WriteResult struct {
	Status WriteStatus
	Err    error
}

func written() WriteResult         { return WriteResult{Status: StatusWritten} }
func truncated() WriteResult       { return WriteResult{Status: StatusTruncated} }
func failed(err error) WriteResult { return WriteResult{Status: StatusFailed, Err: err} }

// writeAllLocked performs the disk write procedure for one rendered batch:
// directory and snapshot setup, the chronological file plus its Latest
// mirror, then one file per group. Any error anywhere fails the whole batch
// as a single unit.
func (s *Service) writeAllLocked(chronologicalText []byte, groupsText map[string][]byte) WriteResult {
	logDirectory := filepath.Join(s.rootPath, s.directoryName)
	groupsDirectory := filepath.Join(logDirectory, groupsDirectoryName)

	sizeLimit := s.cfg.sizeLimitBytes()
	anyTruncated := false

	if err := os.MkdirAll(logDirectory, 0755); err != nil {
		return failed(fmtErrorf("failed to create log directory '%s': %w", logDirectory, err))
	}

	if s.cfg.WriteGroups && len(groupsText) != 0 {
		if err := os.MkdirAll(groupsDirectory, 0755); err != nil {
			return failed(fmtErrorf("failed to create groups directory '%s': %w", groupsDirectory, err))
		}
	}

	if err := s.writeSnapshotsLocked(logDirectory); err != nil {
		return failed(err)
	}

	if s.cfg.WriteChronological && len(chronologicalText) != 0 {
		chronologicalPath := filepath.Join(logDirectory, chronologicalFileName)
		latestPath := filepath.Join(s.rootPath, latestFileName)

		outcome, err := s.writeLogFile(chronologicalPath, chronologicalText, sizeLimit)
		if err != nil {
			return failed(err)
		}
		anyTruncated = anyTruncated || outcome.truncated

		if err := s.mirrorLatest(chronologicalPath, latestPath, chronologicalText, outcome); err != nil {
			return failed(err)
		}
	}

	if s.cfg.WriteGroups {
		for groupName, groupText := range groupsText {
			groupPath := filepath.Join(groupsDirectory, groupName+logFileExtension)

			outcome, err := s.writeLogFile(groupPath, groupText, sizeLimit)
			if err != nil {
				return failed(err)
			}
			anyTruncated = anyTruncated || outcome.truncated
		}
	}

	if anyTruncated {
		return truncated()
	}
	return written()
}

// writeSnapshotsLocked writes the session and content-listing files once
// per log directory; existing files are left alone.
func (s *Service) writeSnapshotsLocked(logDirectory string) error {
	sessionPath := filepath.Join(logDirectory, sessionFileName)
	contentPath := filepath.Join(logDirectory, contentListingFileName)

	if _, err := os.Stat(sessionPath); os.IsNotExist(err) {
		if err := os.WriteFile(sessionPath, []byte(s.sessionInfo), 0644); err != nil {
			return fmtErrorf("failed to write session file '%s': %w", sessionPath, err)
		}
	}

	if _, err := os.Stat(contentPath); os.IsNotExist(err) {
		if err := os.WriteFile(contentPath, []byte(s.contentInfo), 0644); err != nil {
			return fmtErrorf("failed to write content listing '%s': %w", contentPath, err)
		}
	}

	return nil
}

// writeOutcome describes how writeLogFile handled one file
type writeOutcome struct {
	created   bool   // file did not exist, written whole
	skipped   bool   // size cap already hit, nothing written
	truncated bool   // cap reached during this write, notice appended
	payload   []byte // payload actually written, notice included if appended
}

// writeLogFile creates or splice-appends one log file. A first write lays
// down startMarker + payload + endMarker; an append verifies integrity,
// seeks to just before the end marker, and overwrites from there with
// separator + payload + endMarker. Once a file meets the size cap the
// truncation notice is appended and the file is never written again for
// the rest of the process.
func (s *Service) writeLogFile(path string, payload []byte, sizeLimit int64) (writeOutcome, error) {
	if s.cappedFiles[path] {
		return writeOutcome{skipped: true}, nil
	}

	info, statErr := os.Stat(path)
	if statErr != nil && !os.IsNotExist(statErr) {
		return writeOutcome{}, fmtErrorf("failed to stat log file '%s': %w", path, statErr)
	}

	if os.IsNotExist(statErr) {
		total := int64(len(logStartBytes) + len(payload) + len(logEndBytes))
		wasTruncated := false
		if sizeLimit >= 0 && total >= sizeLimit {
			payload = append(payload, sizeLimitNoticeBytes...)
			s.cappedFiles[path] = true
			wasTruncated = true
		}

		if err := writeWholeLogFile(path, payload); err != nil {
			return writeOutcome{}, err
		}
		return writeOutcome{created: true, truncated: wasTruncated, payload: payload}, nil
	}

	if err := VerifyLogFile(path); err != nil {
		return writeOutcome{}, err
	}

	fileSize := info.Size()
	if sizeLimit >= 0 && fileSize >= sizeLimit {
		s.cappedFiles[path] = true
		return writeOutcome{skipped: true}, nil
	}

	if sizeLimit >= 0 && fileSize+int64(len(recordSeparatorBytes)+len(payload)+len(logEndBytes)) >= sizeLimit {
		payload = append(payload, sizeLimitNoticeBytes...)
		s.cappedFiles[path] = true
	}

	if err := spliceLogFile(path, fileSize, payload); err != nil {
		return writeOutcome{}, err
	}
	return writeOutcome{truncated: s.cappedFiles[path], payload: payload}, nil
}

// mirrorLatest keeps the Latest file in step with the chronological file.
// On a first write it is replaced outright; on an append it is spliced the
// same way, and if its own integrity check fails it is rebuilt as a full
// copy of the chronological file instead.
func (s *Service) mirrorLatest(chronologicalPath, latestPath string, payload []byte, outcome writeOutcome) error {
	if outcome.skipped {
		return nil
	}

	if outcome.created {
		if _, err := os.Stat(latestPath); err == nil {
			if err := os.Remove(latestPath); err != nil {
				return fmtErrorf("failed to remove stale latest file '%s': %w", latestPath, err)
			}
		}
		return writeWholeLogFile(latestPath, outcome.payload)
	}

	spliceErr := VerifyLogFile(latestPath)
	if spliceErr == nil {
		info, err := os.Stat(latestPath)
		if err != nil {
			spliceErr = err
		} else {
			spliceErr = spliceLogFile(latestPath, info.Size(), outcome.payload)
		}
	}

	if spliceErr != nil {
		// The mirror is damaged or missing; rebuild it from the main file
		if err := copyFile(chronologicalPath, latestPath); err != nil {
			return fmtErrorf("failed to rebuild latest file '%s': %w", latestPath, err)
		}
	}

	return nil
}

// writeWholeLogFile writes startMarker + payload + endMarker as a new file
func writeWholeLogFile(path string, payload []byte) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmtErrorf("failed to create log file '%s': %w", path, err)
	}

	_, err = file.Write(logStartBytes)
	if err == nil {
		_, err = file.Write(payload)
	}
	if err == nil {
		_, err = file.Write(logEndBytes)
	}

	if err = combineErrors(err, file.Close()); err != nil {
		return fmtErrorf("failed to write log file '%s': %w", path, err)
	}
	return nil
}

// spliceLogFile inserts separator + payload just before the end marker of
// an existing file, preserving everything in front of it.
func spliceLogFile(path string, fileSize int64, payload []byte) error {
	file, err := os.OpenFile(path, os.O_RDWR, 0644)
	if err != nil {
		return fmtErrorf("failed to open log file '%s' for append: %w", path, err)
	}

	_, err = file.Seek(fileSize-int64(len(logEndBytes)), io.SeekStart)
	if err == nil {
		_, err = file.Write(recordSeparatorBytes)
	}
	if err == nil {
		_, err = file.Write(payload)
	}
	if err == nil {
		_, err = file.Write(logEndBytes)
	}

	if err = combineErrors(err, file.Close()); err != nil {
		return fmtErrorf("failed to append to log file '%s': %w", path, err)
	}
	return nil
}

// copyFile replaces dst with a byte-for-byte copy of src
func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0644)
}
