package implementation

import (
	"context"
	"errors"

	"guest-concierge-be/internal/entity"
	"guest-concierge-be/internal/mapper"
	"guest-concierge-be/internal/model"
	"guest-concierge-be/internal/repository/contract"
	"guest-concierge-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AccountRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AccountMapper
}

func NewAccountRepository(db *gorm.DB) contract.AccountRepository {
	return &AccountRepositoryImpl{
		db:     db,
		mapper: mapper.NewAccountMapper(),
	}
}

func (r *AccountRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *AccountRepositoryImpl) Create(ctx context.Context, account *entity.Account) error {
	m := r.mapper.ToModel(account)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*account = *r.mapper.ToEntity(m)
	return nil
}

func (r *AccountRepositoryImpl) Update(ctx context.Context, account *entity.Account) error {
	m := r.mapper.ToModel(account)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*account = *r.mapper.ToEntity(m)
	return nil
}

func (r *AccountRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Account, error) {
	var m model.Account
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *AccountRepositoryImpl) IncrementMessageCount(ctx context.Context, accountId uuid.UUID, n int) error {
	return r.db.WithContext(ctx).
		Model(&model.Account{}).
		Where("id = ?", accountId).
		UpdateColumn("message_count", gorm.Expr("message_count + ?", n)).Error
}

func (r *AccountRepositoryImpl) ApplyPlan(ctx context.Context, accountId uuid.UUID, plan string, messageLimit int) error {
	return r.db.WithContext(ctx).
		Model(&model.Account{}).
		Where("id = ?", accountId).
		Updates(map[string]interface{}{
			"plan":          plan,
			"message_limit": messageLimit,
			"message_count": 0,
		}).Error
}
