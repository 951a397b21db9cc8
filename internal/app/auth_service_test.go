package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"webstore/internal/domain"
)

type mockUserRepo struct {
	createFn      func(ctx context.Context, email, firstName, lastName, passwordHash string) (domain.User, error)
	getByEmailFn  func(ctx context.Context, email string) (domain.User, error)
	emailExistsFn func(ctx context.Context, email string) bool
}

func (m *mockUserRepo) Create(ctx context.Context, email, firstName, lastName, passwordHash string) (domain.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, email, firstName, lastName, passwordHash)
	}
	return domain.User{ID: "1", Email: email, FirstName: firstName, LastName: lastName, PasswordHash: passwordHash}, nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return domain.User{}, domain.ErrNotFound
}

func (m *mockUserRepo) EmailExists(ctx context.Context, email string) bool {
	if m.emailExistsFn != nil {
		return m.emailExistsFn(ctx, email)
	}
	return false
}

func (m *mockUserRepo) List(ctx context.Context) map[string]domain.User { return nil }
func (m *mockUserRepo) Count(ctx context.Context) int                  { return 0 }
func (m *mockUserRepo) Seed(users []domain.User) error                 { return nil }

func newTestAuthService(t *testing.T, clock *fakeClock) *AuthService {
	t.Helper()
	return NewAuthService(newTestUserService(t, kari, timo), newTestSessionService(t, clock, time.Hour), nil)
}

func TestAuthService_Login_Success(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService(t, newFakeClock())

	token, err := svc.Login(ctx, "kari.karttinen@foo.com", "Kari")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if token == "" {
		t.Fatal("expected token, got empty string")
	}

	subject, err := svc.Authenticate(ctx, EncodeTransport(token))
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if subject != "kari.karttinen@foo.com" {
		t.Errorf("expected subject kari.karttinen@foo.com, got %s", subject)
	}
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService(t, newFakeClock())

	for _, tc := range []struct{ email, password string }{
		{"kari.karttinen@foo.com", "FAILED-PASSWORD"},
		{"NOT.FOUND@foo.com", "Kari"},
	} {
		_, err := svc.Login(ctx, tc.email, tc.password)
		if !errors.Is(err, domain.ErrUnauthenticated) {
			t.Fatalf("expected unauthenticated, got %v", err)
		}
		if err.Error() != MsgBadCredentials {
			t.Errorf("unexpected message %q", err.Error())
		}
	}
}

func TestAuthService_Login_EmptyFields(t *testing.T) {
	svc := newTestAuthService(t, newFakeClock())

	_, err := svc.Login(context.Background(), "", "Kari")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAuthService_Login_LookupFailure(t *testing.T) {
	users := NewUserService(&mockUserRepo{
		getByEmailFn: func(ctx context.Context, email string) (domain.User, error) {
			return domain.User{}, errors.New("backend unavailable")
		},
	}, newTestHasher(t), nil)
	svc := NewAuthService(users, newTestSessionService(t, newFakeClock(), time.Hour), nil)

	_, err := svc.Login(context.Background(), "kari.karttinen@foo.com", "Kari")
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
}

func TestAuthService_Signup(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService(t, newFakeClock())

	req := SignupRequest{Email: "jamppa.jamppanen@foo.com", FirstName: "Jamppa", LastName: "Jamppanen", Password: "JampanSalasana"}
	u, err := svc.Signup(ctx, req)
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if u.Email != req.Email {
		t.Errorf("expected %s, got %s", req.Email, u.Email)
	}

	if _, err := svc.Login(ctx, req.Email, req.Password); err != nil {
		t.Errorf("login after signup: %v", err)
	}

	_, err = svc.Signup(ctx, req)
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}

	_, err = svc.Signup(ctx, SignupRequest{Email: "x@foo.com", FirstName: "X", Password: "pw"})
	if !errors.Is(err, domain.ErrValidation) || err.Error() != MsgEmptyFields {
		t.Errorf("expected empty fields error, got %v", err)
	}
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService(t, newFakeClock())

	token, err := svc.Login(ctx, "timo.tillinen@foo.com", "Timo")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	presented := EncodeTransport(token)

	if err := svc.Logout(ctx, presented); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := svc.Authenticate(ctx, presented); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Errorf("expected revoked token to be rejected, got %v", err)
	}
}

func TestAuthService_LoginWithSSO(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService(t, newFakeClock())

	// Existing account.
	if _, err := svc.LoginWithSSO(ctx, "kari.karttinen@foo.com", "", ""); err != nil {
		t.Fatalf("LoginWithSSO existing: %v", err)
	}
	if n := len(svc.users.ListUsers(ctx)); n != 2 {
		t.Errorf("expected no new user, got %d users", n)
	}

	// Provisioned on first sign-in, concurrently.
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.LoginWithSSO(ctx, "new.user@foo.com", "New", "User"); err != nil {
				t.Errorf("LoginWithSSO new: %v", err)
			}
		}()
	}
	wg.Wait()

	if n := len(svc.users.ListUsers(ctx)); n != 3 {
		t.Errorf("expected 3 users, got %d", n)
	}

	if _, err := svc.LoginWithSSO(ctx, "", "", ""); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}
