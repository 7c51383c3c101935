package debuglog

import (
	"fmt"
	"time"
)

// prevSettings is the tri-state view of previously observed settings. A nil
// field means no prior value was ever observed, which is distinct from an
// observed false/zero: only observed values produce settings-change records
// or rotation on re-enable.
type prevSettings struct {
	enabled            *bool
	writeChronological *bool
	writeGroups        *bool
	logLevel           *string
	flushInterval      *float64
	sizeLimit          *float64
}

// applyConfigLocked installs a new settings view and recomputes derived
// state: change records per key, the flush ticker lifecycle, rotation when
// logging transitions from disabled to enabled, and a drain flush when a
// stream toggle turns off under interval mode.
func (s *Service) applyConfigLocked(cfg *Config) {
	old := s.prev

	s.cfg = cfg
	s.rootPath = cfg.RootDirectory

	s.noteSettingChangeLocked("Logging_Enabled",
		old.enabled != nil && *old.enabled != cfg.Enabled, fmt.Sprint(cfg.Enabled))
	s.noteSettingChangeLocked("Write_Chronological",
		old.writeChronological != nil && *old.writeChronological != cfg.WriteChronological, fmt.Sprint(cfg.WriteChronological))
	s.noteSettingChangeLocked("Write_Groups",
		old.writeGroups != nil && *old.writeGroups != cfg.WriteGroups, fmt.Sprint(cfg.WriteGroups))
	s.noteSettingChangeLocked("Log_Level",
		old.logLevel != nil && *old.logLevel != cfg.LogLevel, cfg.LogLevel)
	s.noteSettingChangeLocked("Log_Interval",
		old.flushInterval != nil && *old.flushInterval != cfg.FlushIntervalS, fmt.Sprint(cfg.FlushIntervalS))
	s.noteSettingChangeLocked("Log_Size_Limit",
		old.sizeLimit != nil && *old.sizeLimit != cfg.SizeLimitMB, fmt.Sprint(cfg.SizeLimitMB))

	enabledWas := old.enabled != nil && *old.enabled
	intervalWas := float64(0)
	if old.flushInterval != nil {
		intervalWas = *old.flushInterval
	}
	chronologicalWas := old.writeChronological != nil && *old.writeChronological
	groupsWas := old.writeGroups != nil && *old.writeGroups

	// Timer transitions. A ticker exists only while logging is enabled and
	// the interval is nonzero; any change to those conditions stops the
	// existing ticker before conditionally starting a new one.
	switch {
	case !enabledWas && cfg.Enabled:
		if old.enabled != nil {
			// Re-enable after an observed disable starts a fresh directory
			s.changeLogFileLocked()
		}
		s.stopTickerLocked()
		if cfg.FlushIntervalS != 0 {
			s.startTickerLocked(cfg.FlushIntervalS)
		}

	case enabledWas && !cfg.Enabled:
		s.stopTickerLocked()
		s.flushLocked()

	case intervalWas == 0 && cfg.FlushIntervalS != 0:
		s.stopTickerLocked()
		if cfg.Enabled {
			s.startTickerLocked(cfg.FlushIntervalS)
		}

	case intervalWas != 0 && cfg.FlushIntervalS == 0:
		s.stopTickerLocked()
		s.flushLocked()

	case intervalWas != cfg.FlushIntervalS:
		if cfg.Enabled && cfg.FlushIntervalS != 0 {
			s.startTickerLocked(cfg.FlushIntervalS)
		}
	}

	// First-ever initialization with logging off discards anything queued
	// before the settings were known
	if old.enabled == nil && !cfg.Enabled {
		s.pending = nil
	}

	// Turning a stream off under interval mode drains what that stream
	// still owes to disk
	if intervalWas != 0 &&
		((chronologicalWas && !cfg.WriteChronological) || (groupsWas && !cfg.WriteGroups)) {
		s.flushLocked()
	}

	s.prev = prevSettings{
		enabled:            &cfg.Enabled,
		writeChronological: &cfg.WriteChronological,
		writeGroups:        &cfg.WriteGroups,
		logLevel:           &cfg.LogLevel,
		flushInterval:      &cfg.FlushIntervalS,
		sizeLimit:          &cfg.SizeLimitMB,
	}
}

// noteSettingChangeLocked queues an informational record for one changed key
func (s *Service) noteSettingChangeLocked(key string, changed bool, value string) {
	if !changed {
		return
	}
	s.appendRecordLocked(fmt.Sprintf("Updating setting '%s' to '%s'.", key, value),
		LevelInfo, serviceGroup, serviceOwner, false, nil, true)
}

// startTickerLocked starts the repeating flush ticker, replacing any
// existing one. Two tickers never run concurrently.
func (s *Service) startTickerLocked(intervalS float64) {
	s.stopTickerLocked()

	ticker := time.NewTicker(time.Duration(intervalS * float64(time.Second)))
	stop := make(chan struct{})
	s.flushTicker = ticker
	s.tickerStop = stop

	go func() {
		for {
			select {
			case <-ticker.C:
				s.Flush()
			case <-stop:
				return
			}
		}
	}()
}

// stopTickerLocked stops and clears the flush ticker if one is running
func (s *Service) stopTickerLocked() {
	if s.flushTicker == nil {
		return
	}
	s.flushTicker.Stop()
	close(s.tickerStop)
	s.flushTicker = nil
	s.tickerStop = nil
}
