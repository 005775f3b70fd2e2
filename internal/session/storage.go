package session

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/reftrack/refadmin/internal/errors"
)

// Storage persists the two durable session keys: the bearer credential and
// the profile record. They represent a single logical "logged in" fact and
// are always saved and cleared together.
//
// Only the session Store mutates a Storage; every other component reads the
// mirrored state through the Store's API.
type Storage interface {
	// Load reads the persisted credential and profile.
	// An absent or partial session loads as ("", nil, nil).
	Load(ctx context.Context) (string, *Profile, error)

	// Save persists both keys together.
	Save(ctx context.Context, credential string, profile *Profile) error

	// Clear removes both keys. Clearing an empty storage is a no-op.
	Clear(ctx context.Context) error
}

// sessionFile is the on-disk layout. Keeping both keys in one file makes the
// both-or-neither invariant atomic with a single rename.
type sessionFile struct {
	Token string   `json:"token"`
	User  *Profile `json:"user"`
}

// FileStorage stores the session as a JSON file under the user config dir.
type FileStorage struct {
	path string
}

// NewFileStorage creates a file-backed storage rooted at dir.
func NewFileStorage(dir string) *FileStorage {
	return &FileStorage{path: filepath.Join(dir, "session.json")}
}

// Path returns the session file location.
func (f *FileStorage) Path() string {
	return f.path
}

// Load reads the session file.
func (f *FileStorage) Load(ctx context.Context) (string, *Profile, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, nil
		}
		return "", nil, errors.Wrap(errors.ErrCodeStoreRead, "failed to read session file", err)
	}

	var file sessionFile
	if err := json.Unmarshal(data, &file); err != nil {
		return "", nil, errors.Wrap(errors.ErrCodeStoreDecode, "session file is corrupt", err).
			WithSuggestion("run 'refadmin logout' to reset local state")
	}

	// A session missing either key is not a session.
	if file.Token == "" || file.User == nil {
		return "", nil, nil
	}

	return file.Token, file.User, nil
}

// Save writes both keys atomically (temp file + rename).
func (f *FileStorage) Save(ctx context.Context, credential string, profile *Profile) error {
	data, err := json.MarshalIndent(sessionFile{Token: credential, User: profile}, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeStoreWrite, "failed to encode session", err)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return errors.Wrap(errors.ErrCodeStoreWrite, "failed to create state dir", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return errors.Wrap(errors.ErrCodeStoreWrite, "failed to write session file", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return errors.Wrap(errors.ErrCodeStoreWrite, "failed to replace session file", err)
	}

	return nil
}

// Clear removes the session file.
func (f *FileStorage) Clear(ctx context.Context) error {
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeStoreClear, "failed to remove session file", err)
	}
	return nil
}
