package implementation

import (
	"context"
	"errors"

	"guest-concierge-be/internal/entity"
	"guest-concierge-be/internal/mapper"
	"guest-concierge-be/internal/model"
	"guest-concierge-be/internal/repository/contract"
	"guest-concierge-be/internal/repository/specification"

	"gorm.io/gorm"
)

type BillingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.BillingMapper
}

func NewBillingRepository(db *gorm.DB) contract.BillingRepository {
	return &BillingRepositoryImpl{
		db:     db,
		mapper: mapper.NewBillingMapper(),
	}
}

func (r *BillingRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *BillingRepositoryImpl) Create(ctx context.Context, transaction *entity.BillingTransaction) error {
	m := r.mapper.ToModel(transaction)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*transaction = *r.mapper.ToEntity(m)
	return nil
}

func (r *BillingRepositoryImpl) Update(ctx context.Context, transaction *entity.BillingTransaction) error {
	m := r.mapper.ToModel(transaction)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*transaction = *r.mapper.ToEntity(m)
	return nil
}

func (r *BillingRepositoryImpl) FindByOrderId(ctx context.Context, orderId string) (*entity.BillingTransaction, error) {
	var m model.BillingTransaction
	err := r.db.WithContext(ctx).Where("order_id = ?", orderId).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *BillingRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.BillingTransaction, error) {
	var models []*model.BillingTransaction
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	transactions := make([]*entity.BillingTransaction, len(models))
	for i, m := range models {
		transactions[i] = r.mapper.ToEntity(m)
	}
	return transactions, nil
}
