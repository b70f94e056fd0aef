package usecase

import (
	"errors"
	"testing"

	"applytrack/internal/domain/user"

	"github.com/google/uuid"
)

func TestAuthorize(t *testing.T) {
	if err := Authorize(nil); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for nil identity, got %v", err)
	}
	if err := Authorize(&user.Identity{}); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for empty identity, got %v", err)
	}
	if err := Authorize(&user.Identity{UserID: uuid.New()}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestAuthorizeOwner(t *testing.T) {
	caller := &user.Identity{UserID: uuid.New()}

	got, err := AuthorizeOwner(caller, uuid.Nil)
	if err != nil || got != caller.UserID {
		t.Fatalf("expected caller id, got %v %v", got, err)
	}

	got, err = AuthorizeOwner(caller, caller.UserID)
	if err != nil || got != caller.UserID {
		t.Fatalf("expected caller id, got %v %v", got, err)
	}

	if _, err := AuthorizeOwner(caller, uuid.New()); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	if _, err := AuthorizeOwner(nil, caller.UserID); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}
