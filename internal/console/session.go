package console

import (
	"os"
	"path/filepath"
	"strings"
)

// TokenStore persists the opaque session token across process restarts.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// Session is the explicit authentication state object injected into the
// API client and the route guard. It replaces ambient storage reads: a
// single token, present or absent, is the sole authentication gate.
type Session struct {
	store TokenStore
	token string
}

func NewSession(store TokenStore) *Session {
	s := &Session{store: store}
	if token, err := store.Load(); err == nil {
		s.token = strings.TrimSpace(token)
	}
	return s
}

func (s *Session) SetToken(token string) error {
	s.token = strings.TrimSpace(token)
	return s.store.Save(s.token)
}

func (s *Session) Token() (string, bool) {
	if s.token == "" {
		return "", false
	}
	return s.token, true
}

func (s *Session) Clear() error {
	s.token = ""
	return s.store.Clear()
}

func (s *Session) IsAuthenticated() bool {
	return s.token != ""
}

// FileTokenStore keeps the token in a single file, the desktop analog
// of the browser's persistent local storage.
type FileTokenStore struct {
	path string
}

func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

// DefaultTokenPath resolves the token file under the user config dir.
func DefaultTokenPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "projectdesk", "token"), nil
}

func (f *FileTokenStore) Load() (string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (f *FileTokenStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(f.path, []byte(token), 0o600)
}

func (f *FileTokenStore) Clear() error {
	err := os.Remove(f.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// MemoryTokenStore is a non-persistent store for tests and one-shot
// sessions.
type MemoryTokenStore struct {
	token string
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

func (m *MemoryTokenStore) Load() (string, error) { return m.token, nil }

func (m *MemoryTokenStore) Save(token string) error {
	m.token = token
	return nil
}

func (m *MemoryTokenStore) Clear() error {
	m.token = ""
	return nil
}
