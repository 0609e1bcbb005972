package storage

import (
	"os"
	"path/filepath"
	"sort"
	"sync"
)

const backupExt = ".backup"

// BackupStore keeps rotating file backups inside a single directory. Each id
// owns one file; the store retains the `keep` most recently written files
// across all ids and evicts the oldest beyond that.
type BackupStore struct {
	mu   sync.Mutex
	dir  string
	keep int
}

func NewBackupStore(dir string, keep int) (*BackupStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &BackupStore{dir: dir, keep: keep}, nil
}

// Write stores data for id, replacing any previous backup, then rotates.
func (s *BackupStore) Write(id string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, id+backupExt)

	// Write to temp file first, then rename (atomic operation)
	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return err
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return err
	}

	return s.cleanupLocked()
}

// Read returns the backup for id, or nil if none exists.
func (s *BackupStore) Read(id string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(filepath.Join(s.dir, id+backupExt))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

// ListByCreationDesc returns backup file paths, newest first.
func (s *BackupStore) ListByCreationDesc() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listLocked()
}

// Delete removes a backup file by path.
func (s *BackupStore) Delete(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return os.Remove(path)
}

func (s *BackupStore) listLocked() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	type backupFile struct {
		path    string
		modTime int64
	}
	var files []backupFile
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != backupExt {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, backupFile{
			path:    filepath.Join(s.dir, entry.Name()),
			modTime: info.ModTime().UnixNano(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].modTime > files[j].modTime
	})

	paths := make([]string, 0, len(files))
	for _, f := range files {
		paths = append(paths, f.path)
	}
	return paths, nil
}

// cleanupLocked removes all but the `keep` newest backups.
func (s *BackupStore) cleanupLocked() error {
	paths, err := s.listLocked()
	if err != nil {
		return err
	}
	if len(paths) <= s.keep {
		return nil
	}
	for _, path := range paths[s.keep:] {
		if err := os.Remove(path); err != nil {
			return err
		}
	}
	return nil
}
