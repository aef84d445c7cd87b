package sessionstore

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// fileState is the on-disk shape. The key names mirror the logical
// session keys so the file stays self-describing.
type fileState struct {
	AuthToken string          `json:"auth_token,omitempty"`
	UserData  json.RawMessage `json:"user_data,omitempty"`
}

// File is a durable session store backed by a single JSON file, the
// desktop analogue of browser local storage. Writes go through a temp
// file and rename so a crash never leaves a truncated session behind.
type File[U any] struct {
	mu   sync.Mutex
	path string
}

// NewFile creates a file-backed session store at path. The parent
// directory is created on first write; a missing file reads as an empty
// session.
func NewFile[U any](path string) *File[U] {
	return &File[U]{path: path}
}

// Path returns the backing file location.
func (f *File[U]) Path() string {
	return f.path
}

// Token returns the persisted auth token.
func (f *File[U]) Token(_ context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	st, err := f.load()
	if err != nil {
		return "", err
	}
	if st.AuthToken == "" {
		return "", ErrNotFound
	}
	return st.AuthToken, nil
}

// SetToken persists the auth token.
func (f *File[U]) SetToken(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	st, err := f.load()
	if err != nil {
		return err
	}
	st.AuthToken = token
	return f.save(st)
}

// ClearToken removes the persisted token.
func (f *File[U]) ClearToken(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	st, err := f.load()
	if err != nil {
		return err
	}
	st.AuthToken = ""
	return f.save(st)
}

// User returns the cached user object.
func (f *File[U]) User(_ context.Context) (U, error) {
	var zero U

	f.mu.Lock()
	defer f.mu.Unlock()

	st, err := f.load()
	if err != nil {
		return zero, err
	}
	if len(st.UserData) == 0 {
		return zero, ErrNotFound
	}

	var user U
	if err := json.Unmarshal(st.UserData, &user); err != nil {
		return zero, errors.Join(ErrUnmarshal, err)
	}
	return user, nil
}

// SetUser caches the user object.
func (f *File[U]) SetUser(_ context.Context, user U) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := json.Marshal(user)
	if err != nil {
		return errors.Join(ErrMarshal, err)
	}

	st, err := f.load()
	if err != nil {
		return err
	}
	st.UserData = data
	return f.save(st)
}

// ClearUser removes the cached user.
func (f *File[U]) ClearUser(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	st, err := f.load()
	if err != nil {
		return err
	}
	st.UserData = nil
	return f.save(st)
}

// IsAuthenticated reports whether a token is present.
func (f *File[U]) IsAuthenticated(_ context.Context) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	st, err := f.load()
	if err != nil {
		return false, err
	}
	return st.AuthToken != "", nil
}

// Clear removes both keys. The file itself is deleted rather than left
// empty so stale session files do not accumulate.
func (f *File[U]) Clear(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return errors.Join(ErrWriteFailed, err)
	}
	return nil
}

// load reads the current state. Caller must hold the mutex.
func (f *File[U]) load() (*fileState, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &fileState{}, nil
		}
		return nil, errors.Join(ErrReadFailed, err)
	}

	var st fileState
	if err := json.Unmarshal(data, &st); err != nil {
		// A corrupt session file is unrecoverable; treat it as empty.
		return &fileState{}, nil
	}
	return &st, nil
}

// save writes state atomically. Caller must hold the mutex.
func (f *File[U]) save(st *fileState) error {
	data, err := json.Marshal(st)
	if err != nil {
		return errors.Join(ErrMarshal, err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return errors.Join(ErrWriteFailed, err)
	}

	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return errors.Join(ErrWriteFailed, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return errors.Join(ErrWriteFailed, err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return errors.Join(ErrWriteFailed, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return errors.Join(ErrWriteFailed, err)
	}

	if err := os.Rename(tmpName, f.path); err != nil {
		_ = os.Remove(tmpName)
		return errors.Join(ErrWriteFailed, err)
	}
	return nil
}

var _ Store[any] = (*File[any])(nil)
