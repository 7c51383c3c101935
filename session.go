package debuglog

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
)

// buildSessionInfo renders the session snapshot written once per log
// directory. It is rebuilt on rotation so the continuation flag stays
// accurate.
func (s *Service) buildSessionInfo() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Session ID: %s%s", s.sessionID, lineEnding)
	fmt.Fprintf(&b, "Session start: %s%s", s.sessionStart.Format(logTimeLayout), lineEnding)
	fmt.Fprintf(&b, "Continuation of a previous log directory: %t%s", s.isContinuation, lineEnding)
	fmt.Fprintf(&b, "Operating system: %s %s%s", runtime.GOOS, runtime.GOARCH, lineEnding)
	fmt.Fprintf(&b, "Runtime: %s%s", runtime.Version(), lineEnding)

	return b.String()
}

// buildContentInfo renders the installed-content listing as a nested
// bracketed outline of the content directory. Directories render as
// 'name {...}', files as 'name (size B)'. Failure to read the directory
// produces a placeholder instead of an error.
func (s *Service) buildContentInfo() string {
	contentDirectory := s.cfg.ContentDirectory
	if contentDirectory == "" {
		return "No content directory is configured." + lineEnding
	}

	var b strings.Builder
	if err := writeContentOutline(&b, contentDirectory, filepath.Base(contentDirectory), 0); err != nil {
		return "Failed to get the content directory's information." + lineEnding
	}
	return b.String()
}

// writeContentOutline recursively writes one directory level of the outline
func writeContentOutline(b *strings.Builder, path, name string, depth int) error {
	entries, err := os.ReadDir(path)
	if err != nil {
		return err
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	indent := strings.Repeat("\t", depth)
	fmt.Fprintf(b, "%s%s {%s", indent, name, lineEnding)

	for _, entry := range entries {
		if entry.IsDir() {
			if err := writeContentOutline(b, filepath.Join(path, entry.Name()), entry.Name(), depth+1); err != nil {
				return err
			}
			continue
		}

		info, err := entry.Info()
		if err != nil {
			return err
		}
		fmt.Fprintf(b, "%s\t%s (%d B)%s", indent, entry.Name(), info.Size(), lineEnding)
	}

	fmt.Fprintf(b, "%s}%s", indent, lineEnding)
	return nil
}
