package notifications

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/natefinch/atomic"

	"rinna/internal/config"
	"rinna/internal/item"
)

// Store keeps one append-ordered JSON log per user under the configured
// notifications directory. Writes are serialized per user with an in-process
// mutex plus a file lock so concurrent CLI invocations never interleave.
type Store struct {
	dir string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewStore opens the notification log directory, creating it if needed.
func NewStore(cfg *config.Config) (*Store, error) {
	dir := strings.TrimSpace(cfg.Paths.NotificationsDir)
	if dir == "" {
		return nil, &item.ValidationError{Field: "notifications_dir", Reason: "must not be empty"}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create notifications directory: %w", err)
	}
	return &Store{
		dir:   dir,
		locks: make(map[string]*sync.Mutex),
	}, nil
}

// Dir returns the directory holding the per-user logs.
func (s *Store) Dir() string {
	return s.dir
}

// Append durably records a notification in the target user's log. Missing ID
// and timestamp fields are filled in. The returned copy reflects what was
// written.
func (s *Store) Append(n Notification) (Notification, error) {
	user, err := normalizeUser(n.TargetUser)
	if err != nil {
		return Notification{}, err
	}
	n.TargetUser = user
	if strings.TrimSpace(n.Message) == "" {
		return Notification{}, &item.ValidationError{Field: "message", Reason: "must not be empty"}
	}
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.Priority == "" {
		n.Priority = PriorityMedium
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	} else {
		n.CreatedAt = n.CreatedAt.UTC()
	}

	err = s.withUserLog(user, func(entries []Notification) ([]Notification, bool, error) {
		return append(entries, n), true, nil
	})
	if err != nil {
		return Notification{}, err
	}
	return n, nil
}

// List returns the user's notifications newest first. When unreadOnly is set
// only unread entries are returned. A user with no log yields an empty slice.
func (s *Store) List(user string, unreadOnly bool) ([]Notification, error) {
	user, err := normalizeUser(user)
	if err != nil {
		return nil, err
	}

	var out []Notification
	err = s.withUserLog(user, func(entries []Notification) ([]Notification, bool, error) {
		for _, entry := range entries {
			if unreadOnly && entry.Read {
				continue
			}
			out = append(out, entry)
		}
		return entries, false, nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// UnreadCount returns the number of unread notifications for the user.
func (s *Store) UnreadCount(user string) (int, error) {
	unread, err := s.List(user, true)
	if err != nil {
		return 0, err
	}
	return len(unread), nil
}

// MarkRead marks one notification read. It reports whether the notification
// exists; marking an already-read entry succeeds without rewriting the log.
func (s *Store) MarkRead(user, id string) (bool, error) {
	user, err := normalizeUser(user)
	if err != nil {
		return false, err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return false, &item.ValidationError{Field: "notification_id", Reason: "must not be empty"}
	}

	found := false
	err = s.withUserLog(user, func(entries []Notification) ([]Notification, bool, error) {
		for i := range entries {
			if entries[i].ID != id {
				continue
			}
			found = true
			if entries[i].Read {
				return entries, false, nil
			}
			entries[i].Read = true
			return entries, true, nil
		}
		return entries, false, nil
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

// MarkAllRead marks every unread notification read and returns how many
// changed state. Calling it on an already-read log is a no-op.
func (s *Store) MarkAllRead(user string) (int, error) {
	user, err := normalizeUser(user)
	if err != nil {
		return 0, err
	}

	changed := 0
	err = s.withUserLog(user, func(entries []Notification) ([]Notification, bool, error) {
		for i := range entries {
			if !entries[i].Read {
				entries[i].Read = true
				changed++
			}
		}
		return entries, changed > 0, nil
	})
	if err != nil {
		return 0, err
	}
	return changed, nil
}

// Prune removes notifications created before the cutoff and returns how many
// were dropped. When onlyRead is set, unread entries are kept regardless of
// age.
func (s *Store) Prune(user string, cutoff time.Time, onlyRead bool) (int, error) {
	user, err := normalizeUser(user)
	if err != nil {
		return 0, err
	}

	removed := 0
	err = s.withUserLog(user, func(entries []Notification) ([]Notification, bool, error) {
		kept := entries[:0]
		for _, entry := range entries {
			stale := entry.CreatedAt.Before(cutoff) && (!onlyRead || entry.Read)
			if stale {
				removed++
				continue
			}
			kept = append(kept, entry)
		}
		return kept, removed > 0, nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

// Users lists every user with a notification log, sorted.
func (s *Store) Users() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read notifications directory: %w", err)
	}
	var users []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".json") {
			continue
		}
		users = append(users, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(users)
	return users, nil
}

func (s *Store) userLock(user string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[user]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[user] = lock
	}
	return lock
}

func (s *Store) logPath(user string) string {
	return filepath.Join(s.dir, user+".json")
}

// withUserLog loads the user's log, applies fn, and persists the result when
// fn reports a change. The per-user mutex and a sibling .lock file serialize
// access across goroutines and processes.
func (s *Store) withUserLog(user string, fn func(entries []Notification) ([]Notification, bool, error)) error {
	lock := s.userLock(user)
	lock.Lock()
	defer lock.Unlock()

	path := s.logPath(user)
	fileLock := flock.New(path + ".lock")
	if err := fileLock.Lock(); err != nil {
		return fmt.Errorf("lock notification log for %q: %w", user, err)
	}
	defer func() {
		_ = fileLock.Unlock()
	}()

	entries, err := loadLog(path)
	if err != nil {
		return err
	}

	updated, changed, err := fn(entries)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	return writeLog(path, updated)
}

func loadLog(path string) ([]Notification, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read notification log: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var entries []Notification
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse notification log %q: %w", path, err)
	}
	return entries, nil
}

func writeLog(path string, entries []Notification) error {
	if entries == nil {
		entries = []Notification{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode notification log: %w", err)
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write notification log: %w", err)
	}
	return nil
}

func normalizeUser(user string) (string, error) {
	user = strings.TrimSpace(user)
	if user == "" {
		return "", &item.ValidationError{Field: "user", Reason: "must not be empty"}
	}
	if strings.ContainsAny(user, "/\\") || user == "." || user == ".." {
		return "", &item.ValidationError{Field: "user", Reason: fmt.Sprintf("invalid user name %q", user)}
	}
	return user, nil
}
