// Package session persists the client-side session: the bearer token and
// identity record, stored under two named keys. It is the filesystem analog
// of the web client's local storage and is cleared on logout or when
// startup verification fails.
package session

import (
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"

	"github.com/sysregister/sysregister/core/classeviva"
)

type record struct {
	Token string               `json:"classeviva_token"`
	User  *classeviva.Identity `json:"classeviva_user"`
}

type Store struct {
	path string
}

func NewFileStore(path string) *Store {
	return &Store{path: path}
}

// Save persists the token and identity, replacing any previous session.
func (s *Store) Save(token string, ident classeviva.Identity) error {
	data, err := json.MarshalIndent(record{Token: token, User: &ident}, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshaling session")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return errors.Wrap(err, "creating session dir")
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return errors.Wrap(err, "writing session file")
	}
	return nil
}

// Load returns the persisted session; ok is false when none is stored.
func (s *Store) Load() (token string, ident classeviva.Identity, ok bool, err error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", classeviva.Identity{}, false, nil
		}
		return "", classeviva.Identity{}, false, errors.Wrap(err, "reading session file")
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		// a corrupt session file is treated as absent
		return "", classeviva.Identity{}, false, nil
	}
	if rec.Token == "" || rec.User == nil {
		return "", classeviva.Identity{}, false, nil
	}
	return rec.Token, *rec.User, true, nil
}

// Clear removes the persisted session; clearing an absent session is a no-op.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "removing session file")
	}
	return nil
}
