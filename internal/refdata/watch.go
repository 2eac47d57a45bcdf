package refdata

import (
	"context"
	"os"
	"time"
)

// Watch polls the override file every interval and reloads the store when its
// modification time moves forward, until ctx is done. The current time is
// recorded before Watch returns, so only later edits count. A file that does
// not exist yet is picked up once it appears.
func (s *Store) Watch(ctx context.Context, interval time.Duration) {
	path := s.loader.Path()
	if path == "" || interval <= 0 {
		return
	}

	last := modTime(path)
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				last = s.reloadIfNewer(path, last)
			}
		}
	}()
}

// reloadIfNewer returns the modification time the next poll compares against.
// A rejected file is not retried until it changes again.
func (s *Store) reloadIfNewer(path string, last time.Time) time.Time {
	mt := modTime(path)
	if !mt.After(last) {
		return last
	}
	_ = s.Reload()
	return mt
}

// modTime is zero for a missing or unreadable file.
func modTime(path string) time.Time {
	fi, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return fi.ModTime()
}
