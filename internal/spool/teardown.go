package spool

import (
	"errors"
	"io/fs"
	"os"
	"sync"
)

// Process-wide registry of files whose deletion failed. Eviction and commit
// treat delete failures as best-effort: the path is parked here and retried
// once when the process shuts down.
var (
	teardownMu      sync.Mutex
	teardownPending map[string]struct{}
)

func deferDelete(path string) {
	teardownMu.Lock()
	defer teardownMu.Unlock()
	if teardownPending == nil {
		teardownPending = make(map[string]struct{})
	}
	teardownPending[path] = struct{}{}
}

// Cleanup retries every pending deletion and empties the registry. It is
// the single process-lifetime hook for the best-effort delete fallback;
// the daemon calls it once during shutdown. Returns the number of files
// actually removed.
func Cleanup() int {
	teardownMu.Lock()
	pending := teardownPending
	teardownPending = nil
	teardownMu.Unlock()

	removed := 0
	for path := range pending {
		err := os.Remove(path)
		if err == nil || errors.Is(err, fs.ErrNotExist) {
			removed++
		}
	}
	return removed
}
