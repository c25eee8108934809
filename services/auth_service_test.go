package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/ysh038/cloud-storage/models"
	"github.com/ysh038/cloud-storage/utils"

	"gorm.io/gorm"
)

type fakeTxManager struct{}

func (fakeTxManager) WithTransaction(_ context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type failingTxManager struct{ err error }

func (m failingTxManager) WithTransaction(context.Context, func(tx *gorm.DB) error) error {
	return m.err
}

type fakeUserRepo struct {
	usersByEmail map[string]models.User
	usersByID    map[uint]models.User
	nextID       uint
	countErr     error
	createErr    error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		usersByEmail: map[string]models.User{},
		usersByID:    map[uint]models.User{},
	}
}

func (r *fakeUserRepo) CountByEmail(_ context.Context, _ *gorm.DB, email string) (int64, error) {
	if r.countErr != nil {
		return 0, r.countErr
	}
	if _, ok := r.usersByEmail[email]; ok {
		return 1, nil
	}
	return 0, nil
}

func (r *fakeUserRepo) Create(_ context.Context, _ *gorm.DB, user *models.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	user.ID = r.nextID
	r.usersByEmail[user.Email] = *user
	r.usersByID[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, _ *gorm.DB, email string) (models.User, error) {
	user, ok := r.usersByEmail[email]
	if !ok {
		return models.User{}, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, _ *gorm.DB, userID uint) (models.User, error) {
	user, ok := r.usersByID[userID]
	if !ok {
		return models.User{}, gorm.ErrRecordNotFound
	}
	return user, nil
}

func assertAppError(t *testing.T, err error, wantCode int) *AppError {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with status %d, got nil", wantCode)
	}
	appErr, ok := err.(*AppError)
	if !ok {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}
	if appErr.HTTPCode != wantCode {
		t.Fatalf("expected status %d, got %d (%s)", wantCode, appErr.HTTPCode, appErr.Message)
	}
	return appErr
}

func testTokenManager() *utils.TokenManager {
	return utils.NewTokenManager("access-secret", "refresh-secret", time.Minute, time.Hour)
}

func TestAuthServiceRegisterStoresHashedPassword(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewAuthService(users, testTokenManager(), NewPathAllocator(t.TempDir()))

	user, err := svc.Register(context.Background(), RegisterInput{
		Email:    "alice@example.com",
		Name:     "alice",
		Password: "hunter2secret",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("expected assigned user id")
	}
	if user.Password == "hunter2secret" {
		t.Fatal("password stored in plain text")
	}
	if !utils.CheckPassword("hunter2secret", user.Password) {
		t.Fatal("stored hash does not verify against the original password")
	}
}

func TestAuthServiceRegisterRejectsDuplicateEmail(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewAuthService(users, testTokenManager(), NewPathAllocator(t.TempDir()))

	in := RegisterInput{Email: "alice@example.com", Name: "alice", Password: "hunter2secret"}
	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := svc.Register(context.Background(), in)
	assertAppError(t, err, http.StatusBadRequest)
}

func TestAuthServiceLoginUniformUnauthorizedResponse(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewAuthService(users, testTokenManager(), NewPathAllocator(t.TempDir()))

	if _, err := svc.Register(context.Background(), RegisterInput{
		Email:    "alice@example.com",
		Name:     "alice",
		Password: "hunter2secret",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, unknownErr := svc.Login(context.Background(), "nobody@example.com", "whatever")
	unknown := assertAppError(t, unknownErr, http.StatusUnauthorized)

	_, wrongErr := svc.Login(context.Background(), "alice@example.com", "wrong-password")
	wrong := assertAppError(t, wrongErr, http.StatusUnauthorized)

	// Unknown email and bad password must be indistinguishable.
	if unknown.Message != wrong.Message {
		t.Fatalf("unauthorized messages differ: %q vs %q", unknown.Message, wrong.Message)
	}
}

func TestAuthServiceLoginIssuesTokenPair(t *testing.T) {
	users := newFakeUserRepo()
	tokens := testTokenManager()
	svc := NewAuthService(users, tokens, NewPathAllocator(t.TempDir()))

	if _, err := svc.Register(context.Background(), RegisterInput{
		Email:    "alice@example.com",
		Name:     "alice",
		Password: "hunter2secret",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := svc.Login(context.Background(), "alice@example.com", "hunter2secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.TokenType != "bearer" {
		t.Fatalf("expected token type bearer, got %q", out.TokenType)
	}

	claims, err := tokens.ParseToken(out.AccessToken)
	if err != nil {
		t.Fatalf("access token does not parse: %v", err)
	}
	if claims.UserID != out.User.ID || claims.Email != "alice@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	if _, err := tokens.ParseRefreshToken(out.RefreshToken); err != nil {
		t.Fatalf("refresh token does not parse: %v", err)
	}
}

func TestAuthServiceRefreshIssuesNewAccessToken(t *testing.T) {
	users := newFakeUserRepo()
	tokens := testTokenManager()
	svc := NewAuthService(users, tokens, NewPathAllocator(t.TempDir()))

	if _, err := svc.Register(context.Background(), RegisterInput{
		Email:    "alice@example.com",
		Name:     "alice",
		Password: "hunter2secret",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, err := svc.Login(context.Background(), "alice@example.com", "hunter2secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	access, err := svc.Refresh(context.Background(), out.RefreshToken)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	claims, err := tokens.ParseToken(access)
	if err != nil {
		t.Fatalf("refreshed access token does not parse: %v", err)
	}
	if claims.Email != "alice@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuthServiceRefreshRejectsAccessToken(t *testing.T) {
	users := newFakeUserRepo()
	tokens := testTokenManager()
	svc := NewAuthService(users, tokens, NewPathAllocator(t.TempDir()))

	access, err := tokens.GenerateToken(1, "alice@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, refreshErr := svc.Refresh(context.Background(), access)
	assertAppError(t, refreshErr, http.StatusUnauthorized)
}

func TestAuthServiceGetProfileUnknownUser(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), testTokenManager(), NewPathAllocator(t.TempDir()))

	_, err := svc.GetProfile(context.Background(), 42)
	assertAppError(t, err, http.StatusNotFound)
}
