package debuglog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// ReportFiles lists the files a support report should bundle: the Latest
// mirror if present, then the contents of the newest log directories, up to
// the report limit. Directories whose names do not parse as rotation
// timestamps are skipped with a warning record.
func (s *Service) ReportFiles() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var files []string

	latestPath := filepath.Join(s.rootPath, latestFileName)
	if _, err := os.Stat(latestPath); err == nil {
		files = append(files, latestPath)
	}

	entries, err := os.ReadDir(s.rootPath)
	if err != nil {
		return files
	}

	type logDirectory struct {
		name  string
		stamp time.Time
	}

	var directories []logDirectory
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		stamp, parseErr := time.Parse(directoryNameLayout, entry.Name())
		if parseErr != nil {
			s.appendRecordLocked(
				fmt.Sprintf("Found a directory in the logging root with an unreadable name: '%s'.", entry.Name()),
				LevelWarning, serviceGroup, serviceOwner, false, nil, true)
			continue
		}

		directories = append(directories, logDirectory{name: entry.Name(), stamp: stamp})
	}

	sort.Slice(directories, func(i, j int) bool {
		return directories[i].stamp.After(directories[j].stamp)
	})

	if len(directories) > reportDirectoryLimit {
		directories = directories[:reportDirectoryLimit]
	}

	for _, directory := range directories {
		directoryPath := filepath.Join(s.rootPath, directory.name)
		for _, name := range []string{chronologicalFileName, sessionFileName, contentListingFileName} {
			candidate := filepath.Join(directoryPath, name)
			if _, err := os.Stat(candidate); err == nil {
				files = append(files, candidate)
			}
		}
	}

	return files
}
