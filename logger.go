package debuglog

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// logTimeLayout matches the ISO-8601 timestamps the legacy files carry
const logTimeLayout = "2006-01-02T15:04:05.000000"

// Service is the debug-logging engine: it buffers records, flushes them to
// the structured log files on a timer or immediately for severe events, and
// survives write faults by rotating to a new log directory. One instance
// owns all mutable state; there are no package-level singletons.
type Service struct {
	mu sync.Mutex

	cfg      *Config
	notifier Notifier

	rootPath       string
	directoryName  string
	isContinuation bool

	sessionID    string
	sessionStart time.Time
	sessionInfo  string
	contentInfo  string

	pending  []*Record
	sequence uint64

	writeFailureCount    int
	notifiedWriteFailure bool

	serializer  *serializer
	cappedFiles map[string]bool // files whose size cap was hit; no further appends

	prev prevSettings

	flushTicker *time.Ticker
	tickerStop  chan struct{}
}

// Option configures a Service at construction
type Option func(*Service)

// WithNotifier wires the host's write-failure dialog request
func WithNotifier(n Notifier) Option {
	return func(s *Service) {
		if n != nil {
			s.notifier = n
		}
	}
}

// NewService creates the engine with a validated configuration. The first
// configuration is applied without logging settings-change records.
func NewService(cfg *Config, opts ...Option) (*Service, error) {
	if cfg == nil {
		return nil, fmtErrorf("configuration cannot be nil")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	s := &Service{
		cfg:           DefaultConfig(),
		notifier:      nopNotifier,
		rootPath:      cfg.RootDirectory,
		directoryName: now.Format(directoryNameLayout),
		sessionID:     uuid.NewString(),
		sessionStart:  now,
		serializer:    newSerializer(),
		cappedFiles:   make(map[string]bool),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.sessionInfo = s.buildSessionInfo()
	s.contentInfo = s.buildContentInfo()

	s.mu.Lock()
	s.applyConfigLocked(cfg.Clone())
	s.mu.Unlock()

	return s, nil
}

// Log queues one record. Severe records (level <= Error) and immediate mode
// (flush interval 0) flush synchronously before returning. The sequence
// counter advances even for records the severity filter drops, so numbers
// may have gaps; they never repeat.
func (s *Service) Log(message string, level Level, group, owner string, logStack bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.writeFailureCount >= writeFailureLimit {
		return
	}

	if !s.cfg.Enabled {
		return
	}

	s.appendRecordLocked(message, level, group, owner, logStack, err, true)

	if s.cfg.FlushIntervalS == 0 || level <= LevelError {
		s.flushLocked()
	}
}

// appendRecordLocked assigns the next sequence number, applies the early
// severity filter, captures the call stack, and queues the record.
func (s *Service) appendRecordLocked(message string, level Level, group, owner string, logStack bool, err error, retryOnError bool) {
	s.sequence++
	number := s.sequence

	if level > s.cfg.minLevel() {
		return
	}

	if group == "" {
		group = "None"
	}

	record := &Record{
		Number:       number,
		LogTime:      time.Now().Format(logTimeLayout),
		Message:      message,
		Level:        level,
		Group:        group,
		Owner:        owner,
		Err:          err,
		LogStack:     logStack,
		Stacktrace:   captureStack(2),
		RetryOnError: retryOnError,
	}

	s.pending = append(s.pending, record)
}

// Flush drains the pending buffer to disk. When logging is disabled the
// buffer is discarded without writing. The buffer is cleared whether or not
// the write succeeds.
func (s *Service) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flushLocked()
}

func (s *Service) flushLocked() {
	if s.writeFailureCount >= writeFailureLimit {
		s.pending = nil
		return
	}

	if !s.cfg.Enabled {
		s.pending = nil
		return
	}

	reports := s.pending
	s.pending = nil

	// Late filter: the minimum severity may have changed since queueing
	minLevel := s.cfg.minLevel()
	filtered := reports[:0]
	for _, report := range reports {
		if report.Level <= minLevel {
			filtered = append(filtered, report)
		}
	}

	if len(filtered) == 0 {
		return
	}

	if !s.cfg.WriteChronological && !s.cfg.WriteGroups {
		return
	}

	s.writeBatchLocked(filtered)
}

// writeBatchLocked renders and writes one batch, handling the failure
// budget, the one-time notification, rotation, and the single bounded retry.
func (s *Service) writeBatchLocked(reports []*Record) {
	writeTime := time.Now().Format(logTimeLayout)
	chronologicalText, groupsText := s.serializer.renderBatch(
		reports, writeTime, s.cfg.WriteChronological, s.cfg.WriteGroups)

	result := s.writeAllLocked(chronologicalText, groupsText)
	if result.Status != StatusFailed {
		return
	}

	s.writeFailureCount++

	if !s.notifiedWriteFailure {
		s.notifiedWriteFailure = true
		s.notifier.NotifyWriteFailure(result.Err)
	}

	if s.writeFailureCount >= writeFailureLimit {
		return
	}

	s.changeLogFileLocked()

	retrying := make([]*Record, 0, len(reports))
	for _, report := range reports {
		if report.RetryOnError {
			retrying = append(retrying, report)
		}
	}

	s.appendRecordLocked(
		fmt.Sprintf("Forced to start a new log file after encountering a write error. %d reports were lost because of this.",
			len(reports)-len(retrying)),
		LevelException, serviceGroup, serviceOwner, true, result.Err, false)

	// The rotation notice rides along with the retried records instead of
	// waiting in the buffer for the next flush
	notice := s.pending[len(s.pending)-1]
	s.pending = s.pending[:len(s.pending)-1]

	for _, report := range retrying {
		report.RetryOnError = false
	}
	retrying = append(retrying, notice)

	s.writeBatchLocked(retrying)
}

// ChangeLogFile rotates to a fresh timestamp-named log directory without
// replacing the service instance. The pending buffer and failure counter
// are untouched; the new directory gets its own snapshot files.
func (s *Service) ChangeLogFile() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.changeLogFileLocked()
}

func (s *Service) changeLogFileLocked() {
	s.directoryName = time.Now().Format(directoryNameLayout)
	s.isContinuation = true

	s.sessionInfo = s.buildSessionInfo()
	s.contentInfo = s.buildContentInfo()
}

// ApplyConfig replaces the settings view and reactively recomputes derived
// state: the flush ticker, rotation on re-enable, and an informational
// record for each changed key (skipped on first-ever initialization).
func (s *Service) ApplyConfig(cfg *Config) error {
	if cfg == nil {
		return fmtErrorf("configuration cannot be nil")
	}
	if err := cfg.validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.applyConfigLocked(cfg.Clone())
	return nil
}

// Shutdown stops the flush ticker and performs a final flush. The service
// can keep accepting records afterwards, but nothing drives it anymore.
func (s *Service) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopTickerLocked()
	s.flushLocked()
}

// Poisoned reports whether the failure budget is exhausted; a poisoned
// service silently ignores all further Log and Flush calls for the rest of
// the process.
func (s *Service) Poisoned() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeFailureCount >= writeFailureLimit
}

// RootPath returns the root output directory
func (s *Service) RootPath() string {
	return s.rootPath
}

// DirectoryName returns the current timestamp-derived log directory name
func (s *Service) DirectoryName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.directoryName
}

// IsContinuation reports whether the current directory continues an earlier
// one (true after the first rotation)
func (s *Service) IsContinuation() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isContinuation
}

// GetConfig returns a copy of the current configuration
func (s *Service) GetConfig() *Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.Clone()
}
