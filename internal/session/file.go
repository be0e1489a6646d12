package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	configDirName   = "musegate"
	sessionFileName = "session.json"
)

// fileState is the on-disk layout. Keys match the durable layout the web
// client used: token, tokenName, loginType. No schema versioning; a missing
// key is "unset".
type fileState struct {
	Token     string `json:"token,omitempty"`
	TokenName string `json:"tokenName,omitempty"`
	LoginType string `json:"loginType,omitempty"`
}

// FileStore keeps the session in a JSON file, by default under
// ~/.config/musegate/session.json.
type FileStore struct {
	path string
}

// DefaultSessionPath returns the path of the default session file
func DefaultSessionPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", configDirName, sessionFileName), nil
}

// NewFileStore creates a file-backed store at path. An empty path selects the
// default location.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		var err error
		path, err = DefaultSessionPath()
		if err != nil {
			return nil, err
		}
	}
	return &FileStore{path: path}, nil
}

// load reads the current state. A missing or unreadable file reads as a
// logged-out session rather than an error.
func (s *FileStore) load() fileState {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return fileState{}
	}

	var st fileState
	if err := json.Unmarshal(data, &st); err != nil {
		return fileState{}
	}
	return st
}

func (s *FileStore) save(st fileState) error {
	if st == (fileState{}) {
		// Nothing left to persist
		if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove session file: %w", err)
		}
		return nil
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session state: %w", err)
	}

	// The file carries a credential, keep it owner-only
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	return nil
}

func (s *FileStore) Token() string { return s.load().Token }

func (s *FileStore) SetToken(token string) error {
	st := s.load()
	st.Token = token
	return s.save(st)
}

func (s *FileStore) RemoveToken() error {
	st := s.load()
	st.Token = ""
	return s.save(st)
}

func (s *FileStore) TokenName() string { return s.load().TokenName }

func (s *FileStore) SetTokenName(name string) error {
	st := s.load()
	st.TokenName = name
	return s.save(st)
}

func (s *FileStore) RemoveTokenName() error {
	st := s.load()
	st.TokenName = ""
	return s.save(st)
}

func (s *FileStore) LoginType() string { return s.load().LoginType }

func (s *FileStore) SetLoginType(loginType string) error {
	st := s.load()
	st.LoginType = loginType
	return s.save(st)
}

func (s *FileStore) RemoveLoginType() error {
	st := s.load()
	st.LoginType = ""
	return s.save(st)
}

func (s *FileStore) ClearAll() error {
	if err := s.RemoveToken(); err != nil {
		return err
	}
	if err := s.RemoveTokenName(); err != nil {
		return err
	}
	return s.RemoveLoginType()
}
