package services

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yungbote/newsroom-backend/internal/data/repos"
	types "github.com/yungbote/newsroom-backend/internal/domain"
	"github.com/yungbote/newsroom-backend/internal/platform/apierr"
	"github.com/yungbote/newsroom-backend/internal/platform/dbctx"
	"github.com/yungbote/newsroom-backend/internal/platform/logger"
	"github.com/yungbote/newsroom-backend/internal/platform/validate"
)

// AccountInput serves create and update. An empty password on update keeps
// the current one.
type AccountInput struct {
	Name     string      `json:"name" validate:"notblank,max=100"`
	Email    string      `json:"email" validate:"required,email,max=255"`
	Password string      `json:"password" validate:"max=72"`
	Role     *types.Role `json:"role" validate:"required,oneof=0 1"`
	IsActive *bool       `json:"is_active"`
}

type ProfileInput struct {
	Name  string `json:"name" validate:"notblank,max=100"`
	Email string `json:"email" validate:"required,email,max=255"`
}

type AccountService interface {
	List(ctx context.Context) ([]*AccountDTO, error)
	GetByID(ctx context.Context, id uint) (*AccountDTO, error)
	Create(ctx context.Context, in AccountInput) (*AccountDTO, error)
	Update(ctx context.Context, id uint, in AccountInput) (*AccountDTO, error)
	Delete(ctx context.Context, id uint) error

	GetProfile(ctx context.Context, callerID uint) (*AccountDTO, error)
	UpdateProfile(ctx context.Context, callerID uint, in ProfileInput) (*AccountDTO, error)
}

type accountService struct {
	db          *gorm.DB
	log         *logger.Logger
	accountRepo repos.AccountRepo
	articleRepo repos.ArticleRepo
	hashCost    int
}

// NewAccountService hashes passwords with bcrypt at hashCost; zero means
// bcrypt.DefaultCost.
func NewAccountService(
	db *gorm.DB,
	log *logger.Logger,
	accountRepo repos.AccountRepo,
	articleRepo repos.ArticleRepo,
	hashCost int,
) AccountService {
	if hashCost == 0 {
		hashCost = bcrypt.DefaultCost
	}
	return &accountService{
		db:          db,
		log:         log.With("service", "AccountService"),
		accountRepo: accountRepo,
		articleRepo: articleRepo,
		hashCost:    hashCost,
	}
}

func (s *accountService) List(ctx context.Context) ([]*AccountDTO, error) {
	rows, err := s.accountRepo.List(dbctx.Context{Ctx: ctx})
	if err != nil {
		return nil, storeErr("list accounts", err)
	}
	return toAccountDTOs(rows), nil
}

func (s *accountService) GetByID(ctx context.Context, id uint) (*AccountDTO, error) {
	row, err := s.accountRepo.GetByID(dbctx.Context{Ctx: ctx}, id)
	if err != nil {
		return nil, storeErr("get account", err)
	}
	if row == nil {
		return nil, apierr.NotFound("account_not_found", "account %d not found", id)
	}
	return toAccountDTO(row), nil
}

func (s *accountService) Create(ctx context.Context, in AccountInput) (*AccountDTO, error) {
	in = normalizeAccountInput(in)
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Password) == "" {
		return nil, apierr.Invalid("password_required", "password is required").
			WithFields(map[string]string{"password": "is required"})
	}
	hash, err := hashPassword(in.Password, s.hashCost)
	if err != nil {
		return nil, err
	}

	var out *AccountDTO
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		existing, err := s.accountRepo.GetByEmail(dbc, in.Email)
		if err != nil {
			return storeErr("lookup account email", err)
		}
		if existing != nil {
			return apierr.Conflict("email_taken", "email is already registered")
		}
		row := &types.Account{
			Name:         in.Name,
			Email:        in.Email,
			Role:         *in.Role,
			IsActive:     in.IsActive == nil || *in.IsActive,
			PasswordHash: hash,
		}
		if err := s.accountRepo.Create(dbc, row); err != nil {
			return storeErr("create account", err)
		}
		out = toAccountDTO(row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("Account created", "account_id", out.ID, "role", out.RoleName)
	return out, nil
}

func (s *accountService) Update(ctx context.Context, id uint, in AccountInput) (*AccountDTO, error) {
	in = normalizeAccountInput(in)
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	var hash string
	if strings.TrimSpace(in.Password) != "" {
		h, err := hashPassword(in.Password, s.hashCost)
		if err != nil {
			return nil, err
		}
		hash = h
	}

	var out *AccountDTO
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		row, err := s.accountRepo.GetByID(dbc, id)
		if err != nil {
			return storeErr("get account", err)
		}
		if row == nil {
			return apierr.NotFound("account_not_found", "account %d not found", id)
		}
		if err := s.ensureEmailFree(dbc, id, in.Email); err != nil {
			return err
		}
		row.Name = in.Name
		row.Email = in.Email
		row.Role = *in.Role
		if in.IsActive != nil {
			row.IsActive = *in.IsActive
		}
		if hash != "" {
			row.PasswordHash = hash
		}
		if err := s.accountRepo.Update(dbc, row); err != nil {
			return storeErr("update account", err)
		}
		out = toAccountDTO(row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *accountService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		row, err := s.accountRepo.GetByID(dbc, id)
		if err != nil {
			return storeErr("get account", err)
		}
		if row == nil {
			return apierr.NotFound("account_not_found", "account %d not found", id)
		}
		if !row.Role.Deletable() {
			return apierr.Conflict("account_protected", "accounts with role %s cannot be deleted", row.Role)
		}
		n, err := s.articleRepo.CountByCreator(dbc, id)
		if err != nil {
			return storeErr("count account articles", err)
		}
		if n > 0 {
			return apierr.Conflict("account_has_articles", "account %d authored %d articles", id, n)
		}
		cleared, err := s.articleRepo.ClearUpdater(dbc, id)
		if err != nil {
			return storeErr("clear article updater", err)
		}
		if cleared > 0 {
			s.log.Info("Cleared deleted editor from articles", "account_id", id, "articles", cleared)
		}
		if err := s.accountRepo.Delete(dbc, id); err != nil {
			return storeErr("delete account", err)
		}
		return nil
	})
}

func (s *accountService) GetProfile(ctx context.Context, callerID uint) (*AccountDTO, error) {
	if callerID == 0 {
		return nil, apierr.Unauthorized("unauthenticated", "caller identity is required")
	}
	row, err := s.accountRepo.GetByID(dbctx.Context{Ctx: ctx}, callerID)
	if err != nil {
		return nil, storeErr("get profile", err)
	}
	if row == nil {
		return nil, apierr.Unauthorized("unknown_caller", "caller %d is not a known account", callerID)
	}
	return toAccountDTO(row), nil
}

func (s *accountService) UpdateProfile(ctx context.Context, callerID uint, in ProfileInput) (*AccountDTO, error) {
	if callerID == 0 {
		return nil, apierr.Unauthorized("unauthenticated", "caller identity is required")
	}
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	var out *AccountDTO
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		row, err := s.accountRepo.GetByID(dbc, callerID)
		if err != nil {
			return storeErr("get profile", err)
		}
		if row == nil {
			return apierr.Unauthorized("unknown_caller", "caller %d is not a known account", callerID)
		}
		if err := s.ensureEmailFree(dbc, callerID, in.Email); err != nil {
			return err
		}
		row.Name = in.Name
		row.Email = in.Email
		if err := s.accountRepo.Update(dbc, row); err != nil {
			return storeErr("update profile", err)
		}
		out = toAccountDTO(row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *accountService) ensureEmailFree(dbc dbctx.Context, selfID uint, email string) error {
	other, err := s.accountRepo.GetByEmail(dbc, email)
	if err != nil {
		return storeErr("lookup account email", err)
	}
	if other != nil && other.ID != selfID {
		return apierr.Conflict("email_taken", "email is already registered")
	}
	return nil
}

func hashPassword(password string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", apierr.Invalid("invalid_password", "password cannot be hashed: %v", err)
	}
	return string(b), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func normalizeAccountInput(in AccountInput) AccountInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	return in
}
