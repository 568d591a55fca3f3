package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"cinebook/internal/shared/config"
	"cinebook/internal/users"
)

type fakeUserRepo struct {
	byEmail map[string]*users.User
	byID    map[string]*users.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: make(map[string]*users.User),
		byID:    make(map[string]*users.User),
	}
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, user *users.User) error {
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	f.byEmail[user.Email] = user
	f.byID[user.ID.String()] = user
	return nil
}

func (f *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*users.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetUserByID(ctx context.Context, id string) (*users.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) UpdateUserPassword(ctx context.Context, userID string, hashedPassword string) error {
	user, ok := f.byID[userID]
	if !ok {
		return ErrUserNotFound
	}
	user.Password = hashedPassword
	return nil
}

func (f *fakeUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	_, ok := f.byEmail[email]
	return ok, nil
}

func newAuthService() (Service, *fakeUserRepo) {
	repo := newFakeUserRepo()
	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:           "test-signing-secret",
			JWTExpiresIn:     15 * time.Minute,
			RefreshExpiresIn: 24 * time.Hour,
		},
	}
	return NewService(repo, cfg), repo
}

func registerRequest() *RegisterRequest {
	return &RegisterRequest{
		FirstName: "Asha",
		LastName:  "Patel",
		Email:     "asha@example.com",
		Password:  "Password@123",
	}
}

func TestRegisterIssuesValidTokenPair(t *testing.T) {
	svc, _ := newAuthService()

	resp, err := svc.Register(context.Background(), registerRequest())
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	if resp.User.Role != string(users.RoleUser) {
		t.Errorf("default role = %q, want %q", resp.User.Role, users.RoleUser)
	}

	claims, err := svc.ValidateToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("access token failed validation: %v", err)
	}
	if claims.Type != tokenTypeAccess {
		t.Errorf("claims type = %q, want %q", claims.Type, tokenTypeAccess)
	}
	if claims.UserID != resp.User.ID {
		t.Errorf("claims user id = %q, want %q", claims.UserID, resp.User.ID)
	}
	if claims.Email != "asha@example.com" {
		t.Errorf("claims email = %q", claims.Email)
	}
	if claims.Issuer != tokenIssuer {
		t.Errorf("issuer = %q, want %q", claims.Issuer, tokenIssuer)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthService()

	if _, err := svc.Register(context.Background(), registerRequest()); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), registerRequest()); !errors.Is(err, ErrUserAlreadyExists) {
		t.Errorf("duplicate register = %v, want ErrUserAlreadyExists", err)
	}
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	svc, _ := newAuthService()

	req := registerRequest()
	req.Role = "superuser"

	resp, err := svc.Register(context.Background(), req)
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if resp.User.Role != string(users.RoleUser) {
		t.Errorf("unknown role stored as %q, want %q", resp.User.Role, users.RoleUser)
	}
}

func TestLoginWrongCredentials(t *testing.T) {
	svc, _ := newAuthService()
	if _, err := svc.Register(context.Background(), registerRequest()); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "asha@example.com", "not-the-password"},
		{"unknown email", "nobody@example.com", "Password@123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), &LoginRequest{Email: tt.email, Password: tt.password})
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("Login = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestRefreshTokenRejectsAccessToken(t *testing.T) {
	svc, _ := newAuthService()

	resp, err := svc.Register(context.Background(), registerRequest())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := svc.RefreshToken(context.Background(), resp.AccessToken); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("refresh with access token = %v, want ErrInvalidToken", err)
	}
}

func TestRefreshTokenReissuesPair(t *testing.T) {
	svc, _ := newAuthService()

	resp, err := svc.Register(context.Background(), registerRequest())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	pair, err := svc.RefreshToken(context.Background(), resp.RefreshToken)
	if err != nil {
		t.Fatalf("RefreshToken returned error: %v", err)
	}

	claims, err := svc.ValidateToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("reissued access token failed validation: %v", err)
	}
	if claims.Type != tokenTypeAccess {
		t.Errorf("claims type = %q, want %q", claims.Type, tokenTypeAccess)
	}
}

func TestValidateTokenRejectsTampered(t *testing.T) {
	svc, _ := newAuthService()

	resp, err := svc.Register(context.Background(), registerRequest())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	tampered := resp.AccessToken[:len(resp.AccessToken)-4] + "zzzz"
	if _, err := svc.ValidateToken(tampered); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("tampered token = %v, want ErrInvalidToken", err)
	}
}
