package service

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newAuthFixture() (AuthService, *fakeUserRepo) {
	users := newFakeUserRepo()
	return NewAuthService(users, "test-secret", 30*time.Minute), users
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newAuthFixture()

	user, err := svc.Register(context.Background(), "alice", "alice@example.com", "hunter2hunter2")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.ID == 0 {
		t.Errorf("user ID not assigned")
	}
	if user.PasswordHash == "hunter2hunter2" {
		t.Errorf("password stored in plaintext")
	}

	token, logged, err := svc.Login(context.Background(), "alice", "hunter2hunter2")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" {
		t.Errorf("empty token")
	}
	if logged.ID != user.ID {
		t.Errorf("logged in as %d, want %d", logged.ID, user.ID)
	}

	id, err := svc.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if id != user.ID {
		t.Errorf("token subject = %d, want %d", id, user.ID)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newAuthFixture()

	tests := []struct {
		name     string
		username string
		email    string
		password string
	}{
		{"empty username", "", "a@b.com", "longenough"},
		{"bad email", "bob", "not-an-email", "longenough"},
		{"short password", "bob", "bob@example.com", "short"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.username, tt.email, tt.password)
			if !errors.Is(err, ErrValidation) {
				t.Errorf("err = %v, want ErrValidation", err)
			}
		})
	}
}

func TestRegisterDuplicate(t *testing.T) {
	svc, _ := newAuthFixture()

	if _, err := svc.Register(context.Background(), "alice", "alice@example.com", "hunter2hunter2"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := svc.Register(context.Background(), "alice", "other@example.com", "hunter2hunter2"); !errors.Is(err, ErrConflict) {
		t.Errorf("duplicate username: err = %v, want ErrConflict", err)
	}
	if _, err := svc.Register(context.Background(), "bob", "alice@example.com", "hunter2hunter2"); !errors.Is(err, ErrConflict) {
		t.Errorf("duplicate email: err = %v, want ErrConflict", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthFixture()
	svc.Register(context.Background(), "alice", "alice@example.com", "hunter2hunter2")

	if _, _, err := svc.Login(context.Background(), "alice", "wrongpassword"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}
	if _, _, err := svc.Login(context.Background(), "nobody", "hunter2hunter2"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown user: err = %v, want ErrInvalidCredentials", err)
	}
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	svc, _ := newAuthFixture()

	for _, token := range []string{"", "not.a.jwt", "aaaa.bbbb.cccc"} {
		if _, err := svc.VerifyToken(token); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("VerifyToken(%q): err = %v, want ErrInvalidCredentials", token, err)
		}
	}
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewAuthService(users, "test-secret", -time.Minute)
	svc.Register(context.Background(), "alice", "alice@example.com", "hunter2hunter2")

	token, _, err := svc.Login(context.Background(), "alice", "hunter2hunter2")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if _, err := svc.VerifyToken(token); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expired token: err = %v, want ErrInvalidCredentials", err)
	}
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	svc, users := newAuthFixture()
	svc.Register(context.Background(), "alice", "alice@example.com", "hunter2hunter2")
	token, _, _ := svc.Login(context.Background(), "alice", "hunter2hunter2")

	other := NewAuthService(users, "different-secret", 30*time.Minute)
	if _, err := other.VerifyToken(token); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("foreign signature: err = %v, want ErrInvalidCredentials", err)
	}
}
