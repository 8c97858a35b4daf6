package library

import (
	"errors"
	"testing"

	"digilib-go/internal/model"
)

func TestCurrentUser(t *testing.T) {
	t.Run("no session document", func(t *testing.T) {
		svc, _ := newTestService(t)
		u, err := svc.CurrentUser()
		if err != nil {
			t.Fatalf("CurrentUser() error = %v", err)
		}
		if u != nil {
			t.Errorf("CurrentUser() = %+v, want nil", u)
		}
	})

	t.Run("valid session", func(t *testing.T) {
		svc, st := newTestService(t)
		st.put(t, KeyCurrentUser, model.User{Username: "ana", Role: "admin"})

		u, err := svc.CurrentUser()
		if err != nil {
			t.Fatalf("CurrentUser() error = %v", err)
		}
		if u == nil || u.Username != "ana" || !u.IsAdmin() {
			t.Errorf("CurrentUser() = %+v", u)
		}
	})

	t.Run("corrupt document is no session", func(t *testing.T) {
		svc, st := newTestService(t)
		st.docs[KeyCurrentUser] = []byte("{{")

		u, err := svc.CurrentUser()
		if err != nil {
			t.Fatalf("CurrentUser() error = %v", err)
		}
		if u != nil {
			t.Errorf("CurrentUser() = %+v, want nil", u)
		}
	})

	t.Run("empty username is no session", func(t *testing.T) {
		svc, st := newTestService(t)
		st.put(t, KeyCurrentUser, model.User{Role: "admin"})

		u, err := svc.CurrentUser()
		if err != nil {
			t.Fatalf("CurrentUser() error = %v", err)
		}
		if u != nil {
			t.Errorf("CurrentUser() = %+v, want nil", u)
		}
	})
}

func TestRequireUser(t *testing.T) {
	svc, st := newTestService(t)

	if _, err := svc.RequireUser(); !errors.Is(err, ErrNotAuthorized) {
		t.Errorf("RequireUser() error = %v, want ErrNotAuthorized", err)
	}

	st.put(t, KeyCurrentUser, model.User{Username: "ben", Role: "student"})
	u, err := svc.RequireUser()
	if err != nil {
		t.Fatalf("RequireUser() error = %v", err)
	}
	if u.Username != "ben" {
		t.Errorf("Username = %q", u.Username)
	}
}

func TestRequireAdmin(t *testing.T) {
	svc, st := newTestService(t)

	if _, err := svc.RequireAdmin(); !errors.Is(err, ErrNotAuthorized) {
		t.Errorf("RequireAdmin() with no session error = %v, want ErrNotAuthorized", err)
	}

	st.put(t, KeyCurrentUser, model.User{Username: "ben", Role: "student"})
	if _, err := svc.RequireAdmin(); !errors.Is(err, ErrNotAuthorized) {
		t.Errorf("RequireAdmin() as student error = %v, want ErrNotAuthorized", err)
	}

	st.put(t, KeyCurrentUser, model.User{Username: "ana", Role: "admin"})
	u, err := svc.RequireAdmin()
	if err != nil {
		t.Fatalf("RequireAdmin() error = %v", err)
	}
	if u.Username != "ana" {
		t.Errorf("Username = %q", u.Username)
	}
}
