package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/iho/tradejournal/internal/domain"
	"github.com/iho/tradejournal/internal/usecase"
	"github.com/iho/tradejournal/internal/usecase/mocks"
)

func TestUserUseCase_Register(t *testing.T) {
	tests := []struct {
		name    string
		input   usecase.RegisterInput
		wantErr error
	}{
		{
			name:  "successful registration",
			input: usecase.RegisterInput{Email: "trader@example.com", Name: "Trader", Password: "correct horse battery"},
		},
		{
			name:    "malformed email",
			input:   usecase.RegisterInput{Email: "not-an-email", Name: "Trader", Password: "correct horse battery"},
			wantErr: domain.ErrInvalidEmail,
		},
		{
			name:    "short password",
			input:   usecase.RegisterInput{Email: "trader@example.com", Name: "Trader", Password: "short"},
			wantErr: domain.ErrPasswordTooWeak,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := usecase.NewUserUseCase(mocks.NewMockUserRepository(), mocks.NewMockAuditRepository(), mocks.NewMockIDGenerator(), nil)

			user, err := uc.Register(context.Background(), tt.input)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if user.ID == "" || !user.Active {
				t.Errorf("unexpected user: %+v", user)
			}
			if user.HashedPassword != "" {
				t.Error("password hash must not be returned")
			}
		})
	}
}

func TestUserUseCase_Register_DuplicateEmail(t *testing.T) {
	uc := usecase.NewUserUseCase(mocks.NewMockUserRepository(), mocks.NewMockAuditRepository(), mocks.NewMockIDGenerator(), nil)

	input := usecase.RegisterInput{Email: "trader@example.com", Name: "Trader", Password: "correct horse battery"}
	if _, err := uc.Register(context.Background(), input); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := uc.Register(context.Background(), input); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestUserUseCase_Authenticate(t *testing.T) {
	userRepo := mocks.NewMockUserRepository()
	uc := usecase.NewUserUseCase(userRepo, mocks.NewMockAuditRepository(), mocks.NewMockIDGenerator(), nil)

	registered, err := uc.Register(context.Background(), usecase.RegisterInput{
		Email:    "trader@example.com",
		Name:     "Trader",
		Password: "correct horse battery",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	t.Run("valid credentials", func(t *testing.T) {
		user, err := uc.Authenticate(context.Background(), usecase.AuthenticateInput{
			Email:    "trader@example.com",
			Password: "correct horse battery",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.ID != registered.ID {
			t.Errorf("expected user %s, got %s", registered.ID, user.ID)
		}
		if user.HashedPassword != "" {
			t.Error("password hash must not be returned")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := uc.Authenticate(context.Background(), usecase.AuthenticateInput{
			Email:    "trader@example.com",
			Password: "wrong",
		})
		if !errors.Is(err, domain.ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := uc.Authenticate(context.Background(), usecase.AuthenticateInput{
			Email:    "nobody@example.com",
			Password: "correct horse battery",
		})
		if !errors.Is(err, domain.ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	})
}

func TestUserUseCase_AuthEventsAudited(t *testing.T) {
	auditRepo := mocks.NewMockAuditRepository()
	uc := usecase.NewUserUseCase(mocks.NewMockUserRepository(), auditRepo, mocks.NewMockIDGenerator(), nil)

	registered, err := uc.Register(context.Background(), usecase.RegisterInput{
		Email:    "trader@example.com",
		Name:     "Trader",
		Password: "correct horse battery",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := uc.Authenticate(context.Background(), usecase.AuthenticateInput{
		Email:    "trader@example.com",
		Password: "wrong",
	}); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	if _, err := uc.Authenticate(context.Background(), usecase.AuthenticateInput{
		Email:    "trader@example.com",
		Password: "correct horse battery",
	}); err != nil {
		t.Fatalf("authenticate: %v", err)
	}

	if len(auditRepo.Logs) != 3 {
		t.Fatalf("expected 3 audit entries, got %d", len(auditRepo.Logs))
	}

	register := auditRepo.Logs[0]
	if register.Action != string(domain.AuditActionUserRegister) || register.UserID != registered.ID {
		t.Fatalf("unexpected register entry: %+v", register)
	}
	if hash, _ := register.AfterState["HashedPassword"].(string); hash != "" {
		t.Fatal("audit trail must not record password hashes")
	}

	failed := auditRepo.Logs[1]
	if failed.Action != string(domain.AuditActionUserLogin) || failed.Status != string(domain.AuditStatusFailure) {
		t.Fatalf("unexpected failed login entry: %+v", failed)
	}

	succeeded := auditRepo.Logs[2]
	if succeeded.Action != string(domain.AuditActionUserLogin) || succeeded.Status != string(domain.AuditStatusSuccess) {
		t.Fatalf("unexpected login entry: %+v", succeeded)
	}
}

func TestUserUseCase_Authenticate_InactiveUser(t *testing.T) {
	userRepo := mocks.NewMockUserRepository()
	uc := usecase.NewUserUseCase(userRepo, mocks.NewMockAuditRepository(), mocks.NewMockIDGenerator(), nil)

	userRepo.GetByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
		return &domain.User{ID: "u-1", Email: email, Active: false}, nil
	}

	_, err := uc.Authenticate(context.Background(), usecase.AuthenticateInput{
		Email:    "trader@example.com",
		Password: "correct horse battery",
	})
	if !errors.Is(err, domain.ErrUserInactive) {
		t.Fatalf("expected ErrUserInactive, got %v", err)
	}
}
