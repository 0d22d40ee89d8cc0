package user

import (
	"fmt"
	"io"
	"os"

	json "github.com/json-iterator/go"
)

const (
	DefaultAccount  = "gugu"
	DefaultPassword = "password"
	DefaultEmail    = "gugu@example.com"
)

type seedEntry struct {
	Account  string `json:"account"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

// Default returns the built-in user.
func Default(cost int) (*User, error) {
	return New(DefaultAccount, DefaultPassword, DefaultEmail, cost)
}

// LoadSeed reads a JSON array of {"account", "password", "email"} objects and hashes
// every password. Entries without an account or a password are rejected.
func LoadSeed(r io.Reader, cost int) ([]*User, error) {
	var entries []seedEntry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}

	users := make([]*User, 0, len(entries))
	for i, entry := range entries {
		if len(entry.Account) == 0 || len(entry.Password) == 0 {
			return nil, fmt.Errorf("seed: entry %d: account and password are required", i)
		}

		u, err := New(entry.Account, entry.Password, entry.Email, cost)
		if err != nil {
			return nil, fmt.Errorf("seed: %w", err)
		}

		users = append(users, u)
	}

	return users, nil
}

// LoadSeedFile is LoadSeed reading from the file. An empty path results in the
// default user only.
func LoadSeedFile(path string, cost int) ([]*User, error) {
	if len(path) == 0 {
		u, err := Default(cost)
		if err != nil {
			return nil, err
		}

		return []*User{u}, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}

	defer file.Close()

	return LoadSeed(file, cost)
}
