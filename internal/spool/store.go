package spool

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"outbox/internal/logging"
)

// Options bundles the construction parameters for a Store.
type Options struct {
	// Root is the host-provided cache directory the store lives under.
	Root string
	// Folder is the logical stream name; the store directory is Root/Folder.
	Folder string
	// Capacity is the maximum number of files permitted to coexist in the
	// store directory. Values below one are clamped to one.
	Capacity int
	// Naming produces filenames; defaults to TimestampNaming(".json").
	Naming NamingScheme
	// Compare ranks filenames for eviction; defaults to CompareTimestamp.
	Compare Comparator
	// Logger receives operational events; defaults to a no-op logger.
	Logger *slog.Logger
	// Delegate receives serialization failures; may be nil.
	Delegate Delegate
}

// Store is a bounded spool of payload files awaiting delivery.
//
// One mutex serializes Write, EnqueueRaw, Claim, Release, and Commit so
// that directory mutation and claim-set membership are always observed
// together. Eviction deliberately runs outside that mutex and relies only
// on the claim set's lock-free reads; see reclaimIfAtCapacity.
type Store struct {
	dir      string // empty when the store is disabled
	capacity int
	naming   NamingScheme
	compare  Comparator
	logger   *slog.Logger
	delegate Delegate

	mu     sync.Mutex
	claims claimSet
}

// New constructs a Store and prepares its directory. Construction never
// fails: when the directory cannot be created (or exists but is not a
// directory) the returned store is permanently disabled and every mutating
// operation becomes a no-op reporting ErrDisabled. Directory creation is
// not retried during the store's lifetime.
func New(opts Options) *Store {
	s := &Store{
		capacity: opts.Capacity,
		naming:   opts.Naming,
		compare:  opts.Compare,
		logger:   opts.Logger,
		delegate: opts.Delegate,
	}
	if s.capacity < 1 {
		s.capacity = 1
	}
	if s.naming == nil {
		s.naming = TimestampNaming(".json")
	}
	if s.compare == nil {
		s.compare = CompareTimestamp
	}
	if s.logger == nil {
		s.logger = logging.NewNop()
	}
	if opts.Folder != "" {
		s.logger = s.logger.With(logging.String(logging.FieldStore, opts.Folder))
	}

	dir := filepath.Join(opts.Root, opts.Folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		s.logger.Warn("could not prepare spool directory; store disabled",
			logging.String(logging.FieldDir, dir), logging.Error(err))
		return s
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		s.logger.Warn("spool path is not a usable directory; store disabled",
			logging.String(logging.FieldDir, dir))
		return s
	}
	s.dir = dir
	return s
}

// Disabled reports whether the store directory was unavailable at
// construction. A disabled store stays disabled for its entire lifetime.
func (s *Store) Disabled() bool {
	return s.dir == ""
}

// Dir returns the store directory, or the empty string when disabled.
func (s *Store) Dir() string {
	return s.dir
}

// Capacity returns the maximum number of coexisting files.
func (s *Store) Capacity() int {
	return s.capacity
}

// Count returns the current number of entries on disk. Disabled stores
// report zero.
func (s *Store) Count() int {
	if s.dir == "" {
		return 0
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0
	}
	return len(entries)
}

// Write evicts if at capacity, then serializes payload into a freshly named
// file and returns its path.
//
// Failure handling follows the fail-soft policy: a file that cannot be
// created is logged and swallowed (expected environmental instability,
// not reported to the delegate), while any failure during serialization is
// reported to the delegate with ContextPayloadSerialization and the partial
// file is deleted. The returned error is informational; it never indicates
// a condition the caller must handle beyond having lost this one payload.
func (s *Store) Write(payload Payload) (string, error) {
	if s.dir == "" {
		return "", ErrDisabled
	}
	s.reclaimIfAtCapacity()

	path := filepath.Join(s.dir, s.naming())

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		// Directory vanished or permission revoked mid-flight; not a
		// protocol error, so the delegate stays quiet.
		s.logger.Warn("unable to create payload file",
			logging.String(logging.FieldFile, filepath.Base(path)), logging.Error(err))
		return "", fmt.Errorf("create payload file: %w", err)
	}

	writer := bufio.NewWriter(file)
	encodeErr := payload.EncodeTo(writer)
	if encodeErr == nil {
		encodeErr = writer.Flush()
	}
	if closeErr := file.Close(); encodeErr == nil {
		encodeErr = closeErr
	}
	if encodeErr != nil {
		if s.delegate != nil {
			s.delegate.OnFailure(encodeErr, path, ContextPayloadSerialization)
		}
		s.removeOrDefer(path)
		return "", fmt.Errorf("serialize payload: %w", encodeErr)
	}

	s.logger.Info("saved unsent payload",
		logging.String(logging.FieldFile, filepath.Base(path)))
	return path, nil
}

// EnqueueRaw stores an already serialized text blob produced out-of-band,
// with the same eviction and locking discipline as Write. Unlike Write,
// every failure on this path is reported to the delegate, labelled
// ContextExternalReportCopy so failure sources stay distinguishable.
func (s *Store) EnqueueRaw(content string) (string, error) {
	if s.dir == "" {
		return "", ErrDisabled
	}
	s.reclaimIfAtCapacity()

	path := filepath.Join(s.dir, s.naming())

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		if s.delegate != nil {
			s.delegate.OnFailure(err, path, ContextExternalReportCopy)
		}
		s.logger.Warn("unable to create external report file",
			logging.String(logging.FieldFile, filepath.Base(path)), logging.Error(err))
		return "", fmt.Errorf("create external report file: %w", err)
	}

	_, writeErr := io.WriteString(file, content)
	if closeErr := file.Close(); writeErr == nil {
		writeErr = closeErr
	}
	if writeErr != nil {
		if s.delegate != nil {
			s.delegate.OnFailure(writeErr, path, ContextExternalReportCopy)
		}
		s.removeOrDefer(path)
		return "", fmt.Errorf("copy external report: %w", writeErr)
	}

	s.logger.Info("spooled external report",
		logging.String(logging.FieldFile, filepath.Base(path)))
	return path, nil
}

// Claim lists the store directory and checks out every file not already
// claimed, returning their paths in no guaranteed order. Zero-length
// tombstones are deleted on discovery and never returned. A path is never
// returned twice without an intervening Release or Commit for it.
func (s *Store) Claim() []string {
	if s.dir == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		s.logger.Warn("unable to scan spool directory", logging.Error(err))
		return nil
	}

	var claimed []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(s.dir, entry.Name())
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.Size() == 0 {
			// Tombstone: no usable content.
			s.removeOrDefer(path)
			continue
		}
		if s.claims.contains(path) {
			continue
		}
		claimed = append(claimed, path)
	}
	s.claims.add(claimed...)
	return claimed
}

// Release returns claimed files to the unclaimed pool without touching
// disk, making them eligible for a later Claim or for eviction. Paths that
// are not currently claimed are ignored.
func (s *Store) Release(paths []string) {
	if s.dir == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.claims.remove(paths...)
}

// Commit finalizes delivered files: they are removed from the claim set and
// deleted from disk. Deletion is best-effort; a failed delete is parked on
// the teardown registry and never surfaces to the caller.
func (s *Store) Commit(paths []string) {
	if s.dir == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.claims.remove(paths...)
	for _, path := range paths {
		s.removeOrDefer(path)
	}
}

// reclaimIfAtCapacity deletes the oldest unclaimed files until the
// directory is below capacity again. It runs without the store mutex so a
// potentially slow scan never stalls Claim, Release, or Commit; the only
// shared state it consults is the claim set's lock-free membership. Two
// producers may race to delete the same file, in which case the loser's
// failed delete counts as success.
func (s *Store) reclaimIfAtCapacity() {
	entries, err := os.ReadDir(s.dir)
	if err != nil || len(entries) < s.capacity {
		return
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	sort.Slice(names, func(i, j int) bool {
		return s.compare(names[i], names[j]) < 0
	})

	remaining := len(names)
	for _, name := range names {
		if remaining < s.capacity {
			break
		}
		path := filepath.Join(s.dir, name)
		if s.claims.contains(path) {
			continue
		}
		s.logger.Warn("discarding oldest payload; spool at capacity",
			logging.String(logging.FieldFile, name))
		s.removeOrDefer(path)
		remaining--
	}
}

// removeOrDefer deletes path, falling back to the process-teardown registry
// when the delete fails for any reason other than the file already being
// gone.
func (s *Store) removeOrDefer(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		deferDelete(path)
	}
}
