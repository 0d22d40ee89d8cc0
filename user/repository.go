package user

import (
	"errors"
	"sync"
)

var ErrAccountExists = errors.New("account already exists")

type Repository interface {
	FindByAccount(account string) (*User, bool)
	// Save persists a new user. If the account is taken, ErrAccountExists is returned.
	Save(user *User) error
}

// InMemory is a Repository, which lives as long as the process does.
type InMemory struct {
	mu    sync.RWMutex
	users map[string]*User
}

func NewInMemory(users ...*User) *InMemory {
	repo := &InMemory{
		users: make(map[string]*User, len(users)),
	}

	for _, u := range users {
		repo.users[u.Account] = u
	}

	return repo
}

func (i *InMemory) FindByAccount(account string) (*User, bool) {
	i.mu.RLock()
	u, found := i.users[account]
	i.mu.RUnlock()

	return u, found
}

func (i *InMemory) Save(user *User) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if _, found := i.users[user.Account]; found {
		return ErrAccountExists
	}

	i.users[user.Account] = user
	return nil
}

func (i *InMemory) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()

	return len(i.users)
}
