package accounts

import (
	"context"
	"fmt"
	"strings"
)

// Static serves accounts from memory, typically loaded from the config file.
type Static struct {
	byID map[string]Account
}

// NewStatic indexes list by ID. Later entries win on duplicate IDs.
func NewStatic(list []Account) (*Static, error) {
	s := &Static{byID: make(map[string]Account, len(list))}
	for i, a := range list {
		a.ID = strings.TrimSpace(a.ID)
		if a.ID == "" {
			return nil, fmt.Errorf("accounts[%d]: id is required", i)
		}
		if strings.TrimSpace(a.Token) == "" {
			return nil, fmt.Errorf("accounts[%d] %s: token is required", i, a.ID)
		}
		s.byID[a.ID] = a
	}
	return s, nil
}

// Get returns the account with id, or an error wrapping ErrNotFound.
func (s *Static) Get(_ context.Context, id string) (Account, error) {
	a, ok := s.byID[id]
	if !ok {
		return Account{}, fmt.Errorf("account %q: %w", id, ErrNotFound)
	}
	return a, nil
}
