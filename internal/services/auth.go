package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yungbote/newsroom-backend/internal/data/repos"
	types "github.com/yungbote/newsroom-backend/internal/domain"
	"github.com/yungbote/newsroom-backend/internal/observability"
	"github.com/yungbote/newsroom-backend/internal/platform/apierr"
	"github.com/yungbote/newsroom-backend/internal/platform/dbctx"
	"github.com/yungbote/newsroom-backend/internal/platform/logger"
)

type AuthConfig struct {
	SecretKey string
	Issuer    string
	Audience  string
	TTL       time.Duration
}

// AdminAccount is the administrator seeded at startup. It signs in through
// the normal login path.
type AdminAccount struct {
	Name     string
	Email    string
	Password string
	Role     types.Role
}

type JWTClaims struct {
	Email string     `json:"email"`
	Name  string     `json:"name"`
	Role  types.Role `json:"role"`
	jwt.RegisteredClaims
}

// AccountID is the numeric subject; zero when the subject is malformed.
func (c *JWTClaims) AccountID() uint {
	if c == nil {
		return 0
	}
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil {
		return 0
	}
	return uint(id)
}

type LoginResult struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	Account   *AccountDTO `json:"account"`
}

type WhoAmI struct {
	AccountID uint       `json:"account_id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Role      types.Role `json:"role"`
	RoleName  string     `json:"role_name"`
	ExpiresAt time.Time  `json:"expires_at"`
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	ParseToken(ctx context.Context, token string) (*JWTClaims, error)
	Logout(ctx context.Context, claims *JWTClaims) error
	WhoAmI(claims *JWTClaims) *WhoAmI
	EnsureAdminAccount(ctx context.Context, admin AdminAccount) (*AccountDTO, error)
}

type authService struct {
	db          *gorm.DB
	log         *logger.Logger
	accountRepo repos.AccountRepo
	revoker     TokenRevoker
	cfg         AuthConfig
	hashCost    int
	now         func() time.Time

	dummyOnce sync.Once
	dummyHash []byte
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	accountRepo repos.AccountRepo,
	revoker TokenRevoker,
	cfg AuthConfig,
	hashCost int,
) AuthService {
	if cfg.TTL <= 0 {
		cfg.TTL = 7 * 24 * time.Hour
	}
	if hashCost == 0 {
		hashCost = bcrypt.DefaultCost
	}
	if revoker == nil {
		revoker = NewMemoryRevoker()
	}
	return &authService{
		db:          db,
		log:         log.With("service", "AuthService"),
		accountRepo: accountRepo,
		revoker:     revoker,
		cfg:         cfg,
		hashCost:    hashCost,
		now:         time.Now,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		observability.Current().IncLogin("invalid")
		return nil, apierr.Invalid("invalid_credentials", "email and password are required")
	}

	account, err := s.accountRepo.GetByEmail(dbctx.Context{Ctx: ctx}, email)
	if err != nil {
		return nil, storeErr("lookup account", err)
	}
	if account == nil {
		// Spend the same bcrypt work so unknown emails are not distinguishable by timing.
		_ = bcrypt.CompareHashAndPassword(s.dummy(), []byte(password))
		observability.Current().IncLogin("rejected")
		return nil, apierr.Unauthorized("invalid_credentials", "invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		observability.Current().IncLogin("rejected")
		return nil, apierr.Unauthorized("invalid_credentials", "invalid email or password")
	}
	if !account.IsActive {
		observability.Current().IncLogin("inactive")
		return nil, apierr.Unauthorized("account_inactive", "account is inactive")
	}

	token, expiresAt, err := s.issueToken(account)
	if err != nil {
		return nil, err
	}
	observability.Current().IncLogin("ok")
	s.log.Info("Login succeeded", "account_id", account.ID)
	return &LoginResult{Token: token, ExpiresAt: expiresAt, Account: toAccountDTO(account)}, nil
}

func (s *authService) issueToken(account *types.Account) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.cfg.TTL)
	claims := JWTClaims{
		Email: account.Email,
		Name:  account.Name,
		Role:  account.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(account.ID), 10),
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}
	if s.cfg.Audience != "" {
		claims.Audience = jwt.ClaimStrings{s.cfg.Audience}
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.SecretKey))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

func (s *authService) ParseToken(ctx context.Context, tokenString string) (*JWTClaims, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return nil, apierr.Unauthorized("missing_token", "missing bearer token")
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	}
	if s.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.cfg.Issuer))
	}
	if s.cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(s.cfg.Audience))
	}
	claims := &JWTClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(s.cfg.SecretKey), nil
	}, opts...)
	if err != nil || !parsed.Valid {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apierr.Unauthorized("token_expired", "token has expired")
		}
		return nil, apierr.Unauthorized("invalid_token", "invalid token")
	}
	if claims.AccountID() == 0 {
		return nil, apierr.Unauthorized("invalid_token", "invalid token subject")
	}
	revoked, err := s.revoker.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("check token revocation: %w", err)
	}
	if revoked {
		return nil, apierr.Unauthorized("token_revoked", "token has been revoked")
	}
	return claims, nil
}

func (s *authService) Logout(ctx context.Context, claims *JWTClaims) error {
	if claims == nil || claims.ID == "" {
		return apierr.Unauthorized("invalid_token", "token cannot be revoked")
	}
	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	if err := s.revoker.Revoke(ctx, claims.ID, expiresAt); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	s.log.Info("Token revoked", "account_id", claims.AccountID())
	return nil
}

func (s *authService) WhoAmI(claims *JWTClaims) *WhoAmI {
	if claims == nil {
		return nil
	}
	out := &WhoAmI{
		AccountID: claims.AccountID(),
		Email:     claims.Email,
		Name:      claims.Name,
		Role:      claims.Role,
		RoleName:  claims.Role.String(),
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out
}

// EnsureAdminAccount creates the configured administrator or brings an
// existing one in line with the configuration. An empty email disables it.
func (s *authService) EnsureAdminAccount(ctx context.Context, admin AdminAccount) (*AccountDTO, error) {
	email := normalizeEmail(admin.Email)
	if email == "" {
		return nil, nil
	}
	if admin.Password == "" {
		return nil, apierr.Invalid("admin_password_required", "admin account password is required")
	}
	if !admin.Role.Valid() {
		return nil, apierr.Invalid("admin_role_invalid", "admin account role %d is not valid", admin.Role)
	}
	name := strings.TrimSpace(admin.Name)
	if name == "" {
		name = "Administrator"
	}

	var out *AccountDTO
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		row, err := s.accountRepo.GetByEmail(dbc, email)
		if err != nil {
			return storeErr("lookup admin account", err)
		}
		if row == nil {
			hash, err := hashPassword(admin.Password, s.hashCost)
			if err != nil {
				return err
			}
			row = &types.Account{Name: name, Email: email, Role: admin.Role, IsActive: true, PasswordHash: hash}
			if err := s.accountRepo.Create(dbc, row); err != nil {
				return storeErr("create admin account", err)
			}
			s.log.Info("Admin account created", "account_id", row.ID)
			out = toAccountDTO(row)
			return nil
		}

		row.Name = name
		row.Role = admin.Role
		row.IsActive = true
		if bcrypt.CompareHashAndPassword([]byte(row.PasswordHash), []byte(admin.Password)) != nil {
			hash, err := hashPassword(admin.Password, s.hashCost)
			if err != nil {
				return err
			}
			row.PasswordHash = hash
		}
		if err := s.accountRepo.Update(dbc, row); err != nil {
			return storeErr("update admin account", err)
		}
		out = toAccountDTO(row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *authService) dummy() []byte {
	s.dummyOnce.Do(func() {
		h, err := bcrypt.GenerateFromPassword([]byte("newsroom-login-placeholder"), s.hashCost)
		if err == nil {
			s.dummyHash = h
		}
	})
	return s.dummyHash
}
