package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// filePrefix is the name prefix of generated log files and of files eligible for cleanup.
const filePrefix = "pcdmanager-"

// LogConfig holds configuration for structured log output.
type LogConfig struct {
	Format        string // "human" (default), "text" or "json"
	Level         string // "DEBUG", "INFO" (default), "WARN", "ERROR"
	Output        string // Path, "-" for stderr, "none" to disable, "" to auto-generate in Dir
	Dir           string // Log directory for generated and relative paths
	RetentionDays int    // Days to retain generated log files, 0 keeps everything
}

// LogFile manages a log file lifecycle.
type LogFile struct {
	Path   string   // Full path to the log file (empty if output is stderr or disabled)
	file   *os.File // Opened file handle (nil if stderr or disabled)
	writer io.Writer
}

// NewLogFile opens the log destination described by cfg.
//
// Output behavior:
//   - "-": os.Stderr
//   - "none": io.Discard
//   - empty: generated file in Dir
//   - path: that path, relative paths resolved against Dir
func NewLogFile(cfg *LogConfig) (*LogFile, error) {
	lf := &LogFile{}

	switch strings.ToLower(cfg.Output) {
	case "none":
		lf.writer = io.Discard
		return lf, nil
	case "-":
		lf.writer = os.Stderr
		return lf, nil
	case "":
		lf.Path = filepath.Join(cfg.Dir, GenerateLogFilename(time.Now().UTC()))
	default:
		if filepath.IsAbs(cfg.Output) {
			lf.Path = cfg.Output
		} else {
			lf.Path = filepath.Join(cfg.Dir, cfg.Output)
		}
	}

	dir := filepath.Dir(lf.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory %q: %w", dir, err)
	}
	f, err := os.OpenFile(lf.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file %q: %w", lf.Path, err)
	}
	lf.file = f
	lf.writer = f
	return lf, nil
}

// Writer returns the io.Writer for log output.
func (lf *LogFile) Writer() io.Writer {
	return lf.writer
}

// Close closes the log file if it was opened.
func (lf *LogFile) Close() error {
	if lf.file != nil {
		return lf.file.Close()
	}
	return nil
}

// Open builds a Logger from cfg and returns it with the underlying LogFile,
// which the caller must Close.
func Open(cfg *LogConfig) (Logger, *LogFile, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}
	lf, err := NewLogFile(cfg)
	if err != nil {
		return nil, nil, err
	}
	l, err := NewWithWriter(cfg.Format, level, lf.Writer())
	if err != nil {
		lf.Close()
		return nil, nil, err
	}
	if lf.Path != "" && cfg.RetentionDays > 0 {
		_ = CleanupOldLogFiles(filepath.Dir(lf.Path), cfg.RetentionDays)
	}
	return l, lf, nil
}

// GenerateLogFilename returns pcdmanager-YYYYMMDD-HHMMSS-mmm.log for t in UTC.
func GenerateLogFilename(t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("%s%s-%03d.log", filePrefix, t.Format("20060102-150405"), t.Nanosecond()/1_000_000)
}

// CleanupOldLogFiles removes pcdmanager-*.log files older than retentionDays from dir.
func CleanupOldLogFiles(dir string, retentionDays int) error {
	if retentionDays <= 0 {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading log directory %q: %w", dir, err)
	}

	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, ".log") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			// best effort
			_ = os.Remove(filepath.Join(dir, name))
		}
	}
	return nil
}
