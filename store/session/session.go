package session

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"vanguard/core"

	"github.com/mitchellh/go-homedir"
)

// DefaultFile session file used when none is configured
const DefaultFile = "~/.vanguard/session.json"

type fileStore struct {
	path string
	mux  sync.Mutex
}

// New file backed session store, ~ is expanded to the home dir
func New(file string) (core.SessionStore, error) {
	if file == "" {
		file = DefaultFile
	}

	path, err := homedir.Expand(file)
	if err != nil {
		return nil, err
	}

	return &fileStore{path: path}, nil
}

func (s *fileStore) Get(_ context.Context) (*core.Session, error) {
	s.mux.Lock()
	defer s.mux.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, core.ErrSessionNotFound
	} else if err != nil {
		return nil, err
	}

	var session core.Session
	if err := json.Unmarshal(data, &session); err != nil || session.Token == "" {
		return nil, core.ErrSessionNotFound
	}

	return &session, nil
}

func (s *fileStore) Set(_ context.Context, session *core.Session) error {
	s.mux.Lock()
	defer s.mux.Unlock()

	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0o600)
}

func (s *fileStore) Clear(_ context.Context) error {
	s.mux.Lock()
	defer s.mux.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	return nil
}

type memoryStore struct {
	session *core.Session
	mux     sync.RWMutex
}

// Memory in process session store
func Memory() core.SessionStore {
	return &memoryStore{}
}

func (s *memoryStore) Get(_ context.Context) (*core.Session, error) {
	s.mux.RLock()
	defer s.mux.RUnlock()

	if s.session == nil {
		return nil, core.ErrSessionNotFound
	}

	session := *s.session
	return &session, nil
}

func (s *memoryStore) Set(_ context.Context, session *core.Session) error {
	s.mux.Lock()
	defer s.mux.Unlock()

	cp := *session
	s.session = &cp
	return nil
}

func (s *memoryStore) Clear(_ context.Context) error {
	s.mux.Lock()
	defer s.mux.Unlock()

	s.session = nil
	return nil
}
