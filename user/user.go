package user

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordTooLong is returned by New for passwords longer than bcrypt accepts (72 bytes).
var ErrPasswordTooLong = bcrypt.ErrPasswordTooLong

type User struct {
	Account string
	Email   string
	hash    []byte
}

// New hashes the password with the given bcrypt cost. Costs out of the bcrypt range
// fall back to bcrypt.DefaultCost.
func New(account, password, email string, cost int) (*User, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", account, err)
	}

	return &User{
		Account: account,
		Email:   email,
		hash:    hash,
	}, nil
}

func (u *User) CheckPassword(candidate string) bool {
	return bcrypt.CompareHashAndPassword(u.hash, []byte(candidate)) == nil
}
