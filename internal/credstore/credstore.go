// Package credstore persists the "remember me" credentials behind a
// small key/value interface, so the pipeline's caller receives an
// injected capability rather than reaching into ambient global state.
package credstore

import (
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("credstore: key not found")

// Storage keys. Kept flat; the store holds a handful of values at most.
const (
	keyRemember = "remember_me"
	keyEmail    = "user/email"
	keyPassword = "user/password"
)

// Credentials are the persisted sign-in inputs for auto sign-in.
type Credentials struct {
	Email    string
	Password string
}

// Store is the key/value persistence capability handed to the
// composition root.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
	Close() error
}

// Badger is a Store backed by an embedded badger database.
type Badger struct {
	db *badger.DB
}

// Open opens (creating if needed) the credential store at dir.
func Open(dir string) (*Badger, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open credential store: %w", err)
	}
	return &Badger{db: db}, nil
}

// Get retrieves the value for key, or ErrNotFound.
func (b *Badger) Get(key string) (string, error) {
	var value string
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			value = string(val)
			return nil
		})
	})
	if err != nil {
		return "", err
	}
	return value, nil
}

// Set stores value under key, overwriting any previous value.
func (b *Badger) Set(key, value string) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), []byte(value))
	})
}

// Delete removes key. Deleting a missing key is not an error.
func (b *Badger) Delete(key string) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
}

// Close releases the underlying database.
func (b *Badger) Close() error {
	return b.db.Close()
}

// Remember saves the credentials and sets the remember-me flag.
func Remember(s Store, creds Credentials) error {
	if err := s.Set(keyEmail, creds.Email); err != nil {
		return err
	}
	if err := s.Set(keyPassword, creds.Password); err != nil {
		return err
	}
	return s.Set(keyRemember, "true")
}

// Load returns the remembered credentials. The second return is false
// when remember-me is unset or the stored values are incomplete.
func Load(s Store) (Credentials, bool, error) {
	flag, err := s.Get(keyRemember)
	switch {
	case errors.Is(err, ErrNotFound):
		return Credentials{}, false, nil
	case err != nil:
		return Credentials{}, false, err
	case flag != "true":
		return Credentials{}, false, nil
	}

	email, err := s.Get(keyEmail)
	if errors.Is(err, ErrNotFound) {
		return Credentials{}, false, nil
	}
	if err != nil {
		return Credentials{}, false, err
	}

	password, err := s.Get(keyPassword)
	if errors.Is(err, ErrNotFound) {
		return Credentials{}, false, nil
	}
	if err != nil {
		return Credentials{}, false, err
	}

	return Credentials{Email: email, Password: password}, true, nil
}

// Forget clears the remember-me flag and the stored credentials. Sign-out
// calls this so the next start lands on the login form.
func Forget(s Store) error {
	if err := s.Delete(keyRemember); err != nil {
		return err
	}
	if err := s.Delete(keyEmail); err != nil {
		return err
	}
	return s.Delete(keyPassword)
}
