package news

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	types "github.com/yungbote/newsroom-backend/internal/domain"
	"github.com/yungbote/newsroom-backend/internal/platform/dbctx"
	"github.com/yungbote/newsroom-backend/internal/platform/logger"
)

type AccountRepo interface {
	List(dbc dbctx.Context) ([]*types.Account, error)
	GetByID(dbc dbctx.Context, id uint) (*types.Account, error)
	GetByEmail(dbc dbctx.Context, email string) (*types.Account, error)
	Create(dbc dbctx.Context, account *types.Account) error
	Update(dbc dbctx.Context, account *types.Account) error
	Delete(dbc dbctx.Context, id uint) error
	Exists(dbc dbctx.Context, id uint) (bool, error)
}

type accountRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAccountRepo(db *gorm.DB, baseLog *logger.Logger) AccountRepo {
	return &accountRepo{db: db, log: baseLog.With("repo", "AccountRepo")}
}

func (r *accountRepo) List(dbc dbctx.Context) ([]*types.Account, error) {
	var rows []*types.Account
	if err := dbc.DB(r.db).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *accountRepo) GetByID(dbc dbctx.Context, id uint) (*types.Account, error) {
	if id == 0 {
		return nil, nil
	}
	var row types.Account
	if err := dbc.DB(r.db).Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// GetByEmail matches case-insensitively; emails are stored lower-cased.
func (r *accountRepo) GetByEmail(dbc dbctx.Context, email string) (*types.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, nil
	}
	var row types.Account
	if err := dbc.DB(r.db).Where("LOWER(email) = ?", email).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *accountRepo) Create(dbc dbctx.Context, account *types.Account) error {
	return dbc.DB(r.db).Create(account).Error
}

func (r *accountRepo) Update(dbc dbctx.Context, account *types.Account) error {
	return dbc.DB(r.db).Save(account).Error
}

func (r *accountRepo) Delete(dbc dbctx.Context, id uint) error {
	return dbc.DB(r.db).Delete(&types.Account{}, id).Error
}

func (r *accountRepo) Exists(dbc dbctx.Context, id uint) (bool, error) {
	if id == 0 {
		return false, nil
	}
	var count int64
	if err := dbc.DB(r.db).Model(&types.Account{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
