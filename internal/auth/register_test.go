package auth

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/timeeasy/backend/internal/users"
	"github.com/timeeasy/backend/pkg/config"
	"github.com/timeeasy/backend/pkg/db/models"
	pkgerrors "github.com/timeeasy/backend/pkg/errors"
	"github.com/timeeasy/backend/pkg/security"
)

type stubTxRunner struct{}

func (s stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type stubRegisterRepo struct {
	byEmail map[string]*models.User
	byName  map[string]*models.User
	created *models.User
	nextID  uint
}

func newStubRegisterRepo() *stubRegisterRepo {
	return &stubRegisterRepo{
		byEmail: map[string]*models.User{},
		byName:  map[string]*models.User{},
		nextID:  1,
	}
}

func (s *stubRegisterRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if user, ok := s.byEmail[email]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRegisterRepo) FindByName(ctx context.Context, name string) (*models.User, error) {
	if user, ok := s.byName[name]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRegisterRepo) Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error) {
	user := &models.User{
		ID:           s.nextID,
		Name:         dto.Name,
		Email:        dto.Email,
		PasswordHash: dto.PasswordHash,
	}
	s.nextID++
	s.byEmail[user.Email] = user
	s.byName[user.Name] = user
	s.created = user
	return user, nil
}

func newRegisterTestService(t *testing.T, repo *stubRegisterRepo) RegisterService {
	t.Helper()
	svc, err := NewRegisterService(RegisterServiceParams{
		TxRunner: stubTxRunner{},
		UserRepoFactory: func(tx *gorm.DB) registerUserRepository {
			return repo
		},
		SessionManager: &stubSessionManager{token: "refresh"},
		PasswordConfig: config.PasswordConfig{},
		JWTConfig:      testJWTConfig(),
	})
	if err != nil {
		t.Fatalf("new register service: %v", err)
	}
	return svc
}

func TestRegisterCreatesUserAndIssuesTokens(t *testing.T) {
	repo := newStubRegisterRepo()
	svc := newRegisterTestService(t, repo)

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "alice",
		Email:    "Alice@Example.com",
		Password: "hunter2secret",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if repo.created == nil {
		t.Fatal("expected user to be created")
	}
	if repo.created.Email != "alice@example.com" {
		t.Fatalf("expected normalized email, got %q", repo.created.Email)
	}
	valid, err := security.VerifyPassword("hunter2secret", repo.created.PasswordHash)
	if err != nil || !valid {
		t.Fatalf("stored hash does not verify: valid=%v err=%v", valid, err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatal("expected token pair in response")
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	repo := newStubRegisterRepo()
	svc := newRegisterTestService(t, repo)

	ctx := context.Background()
	if _, err := svc.Register(ctx, RegisterRequest{Name: "alice", Email: "alice@example.com", Password: "hunter2secret"}); err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, err := svc.Register(ctx, RegisterRequest{Name: "alice2", Email: "alice@example.com", Password: "hunter2secret"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
	if len(repo.byEmail) != 1 {
		t.Fatalf("expected a single stored user, got %d", len(repo.byEmail))
	}
}

func TestRegisterRejectsDuplicateName(t *testing.T) {
	repo := newStubRegisterRepo()
	svc := newRegisterTestService(t, repo)

	ctx := context.Background()
	if _, err := svc.Register(ctx, RegisterRequest{Name: "alice", Email: "alice@example.com", Password: "hunter2secret"}); err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, err := svc.Register(ctx, RegisterRequest{Name: "alice", Email: "other@example.com", Password: "hunter2secret"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}
