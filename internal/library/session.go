package library

import (
	"encoding/json"
	"errors"
	"fmt"

	"digilib-go/internal/model"
)

// CurrentUser reads the session document. The library core only ever reads
// it; login and logout live with the surrounding identity provider. Returns
// (nil, nil) when no session exists; a document that fails to parse counts
// as no session, since the store offers no integrity guarantee anyway.
func (s *LibraryService) CurrentUser() (*model.User, error) {
	raw, err := s.store.Get(KeyCurrentUser)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading current user document: %w", err)
	}

	var u model.User
	if err := json.Unmarshal(raw, &u); err != nil {
		s.logger.Warn("current user document corrupt, treating as no session", "error", err)
		return nil, nil
	}
	if u.Username == "" {
		return nil, nil
	}
	return &u, nil
}

// RequireUser returns the current user, or ErrNotAuthorized when there is
// no session. Callers treat the error as a redirect-to-login decision.
func (s *LibraryService) RequireUser() (*model.User, error) {
	u, err := s.CurrentUser()
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotAuthorized
	}
	return u, nil
}

// RequireAdmin returns the current user if they hold the admin role,
// ErrNotAuthorized otherwise.
func (s *LibraryService) RequireAdmin() (*model.User, error) {
	u, err := s.RequireUser()
	if err != nil {
		return nil, err
	}
	if !u.IsAdmin() {
		return nil, ErrNotAuthorized
	}
	return u, nil
}
