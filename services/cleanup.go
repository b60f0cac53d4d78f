package services

import (
	"log"
	"os"
	"path/filepath"
	"time"
)

// Cleaner removes produced files, either one at a time after a fixed delay
// or in bulk by age.
type Cleaner interface {
	// ScheduleRemoval deletes the named file after the configured delay.
	// The returned timer can stop a pending removal; current callers never
	// cancel, they fire and forget.
	ScheduleRemoval(filename string) *time.Timer

	// Sweep deletes every regular file in the output directory whose
	// modification time is older than the cutoff and reports how many
	// were removed.
	Sweep(olderThan time.Duration) (int, error)
}

type cleaner struct {
	dir    string
	delay  time.Duration
	logger *log.Logger
}

// NewCleaner creates a cleaner for the given output directory.
func NewCleaner(dir string, delay time.Duration, logger *log.Logger) Cleaner {
	return &cleaner{dir: dir, delay: delay, logger: logger}
}

func (c *cleaner) ScheduleRemoval(filename string) *time.Timer {
	path := filepath.Join(c.dir, filename)
	return time.AfterFunc(c.delay, func() {
		if err := os.Remove(path); err != nil {
			// Failures are logged and swallowed; the sweep catches leftovers.
			if !os.IsNotExist(err) {
				c.logger.Printf("error cleaning up file %s: %v", filename, err)
			}
			return
		}
		c.logger.Printf("cleaned up file: %s", filename)
	})
}

func (c *cleaner) Sweep(olderThan time.Duration) (int, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().Add(-olderThan)
	cleaned := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(c.dir, entry.Name())); err != nil {
				c.logger.Printf("sweep: removing %s: %v", entry.Name(), err)
				continue
			}
			cleaned++
		}
	}

	return cleaned, nil
}
