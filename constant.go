package debuglog

import (
	"fmt"
	"runtime"
)

// Level is the severity of a log record. Lower values are more severe.
type Level int64

// Log level constants, ordered most to least severe
const (
	LevelException Level = iota
	LevelError
	LevelWarning
	LevelInfo
	LevelDebug
)

// String returns the level name used in rendered log files and settings
func (l Level) String() string {
	switch l {
	case LevelException:
		return "Exception"
	case LevelError:
		return "Error"
	case LevelWarning:
		return "Warning"
	case LevelInfo:
		return "Info"
	case LevelDebug:
		return "Debug"
	default:
		return fmt.Sprintf("Level(%d)", int64(l))
	}
}

// On-disk layout
const (
	chronologicalFileName  = "Log.xml"
	latestFileName         = "Latest.xml"
	sessionFileName        = "Session.txt"
	contentListingFileName = "Mods Directory.txt"
	groupsDirectoryName    = "Groups"
	logFileExtension       = ".xml"

	// Log directory names are the session or rotation timestamp
	directoryNameLayout = "2006-01-02 15.04.05.000000"
)

// Failure and reporting budgets
const (
	// After this many write failures the service stops attempting writes
	// for the rest of the process
	writeFailureLimit = 2

	// Newest directories included by ReportFiles
	reportDirectoryLimit = 10

	// The size-limit setting is in decimal megabytes
	sizeLimitMultiplier = 1000 * 1000
)

// Group and owner used for records the service logs about itself
const (
	serviceGroup = "ModForge.Debug"
	serviceOwner = "debuglog"
)

// lineEnding is the host OS native line ending, baked into the file format
// the same way the legacy files were written
var lineEnding = func() string {
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}()

// Fixed byte sequences shared by every log file of this kind
var (
	logStartBytes        = []byte("<?xml version=\"1.0\" encoding=\"utf-8\"?>" + lineEnding + "<LogFile>" + lineEnding)
	logEndBytes          = []byte(lineEnding + "</LogFile>")
	recordSeparatorBytes = []byte(lineEnding + lineEnding)
	sizeLimitNoticeBytes = []byte("<!--Log file size limit reached-->")
)
