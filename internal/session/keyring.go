package session

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const keyringService = "musegate"

const (
	keyToken     = "token"
	keyTokenName = "tokenName"
	keyLoginType = "loginType"
)

// KeyringStore keeps the session in the OS keychain/credential manager, for
// hosts where a plaintext token file on disk is not acceptable.
type KeyringStore struct{}

func NewKeyringStore() *KeyringStore {
	return &KeyringStore{}
}

func (s *KeyringStore) get(key string) string {
	value, err := keyring.Get(keyringService, key)
	if err != nil {
		// ErrNotFound and unreadable keyrings both read as "unset"
		return ""
	}
	return value
}

func (s *KeyringStore) set(key, value string) error {
	if err := keyring.Set(keyringService, key, value); err != nil {
		return fmt.Errorf("failed to save %s to keyring: %w", key, err)
	}
	return nil
}

func (s *KeyringStore) remove(key string) error {
	if err := keyring.Delete(keyringService, key); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil // Already deleted
		}
		return fmt.Errorf("failed to delete %s from keyring: %w", key, err)
	}
	return nil
}

func (s *KeyringStore) Token() string { return s.get(keyToken) }

func (s *KeyringStore) SetToken(token string) error { return s.set(keyToken, token) }

func (s *KeyringStore) RemoveToken() error { return s.remove(keyToken) }

func (s *KeyringStore) TokenName() string { return s.get(keyTokenName) }

func (s *KeyringStore) SetTokenName(name string) error { return s.set(keyTokenName, name) }

func (s *KeyringStore) RemoveTokenName() error { return s.remove(keyTokenName) }

func (s *KeyringStore) LoginType() string { return s.get(keyLoginType) }

func (s *KeyringStore) SetLoginType(lt string) error { return s.set(keyLoginType, lt) }

func (s *KeyringStore) RemoveLoginType() error { return s.remove(keyLoginType) }

func (s *KeyringStore) ClearAll() error {
	if err := s.remove(keyToken); err != nil {
		return err
	}
	if err := s.remove(keyTokenName); err != nil {
		return err
	}
	return s.remove(keyLoginType)
}
