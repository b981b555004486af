package mysql

import (
	"context"
	"errors"

	"github.com/wyfcoding/orderdesk/internal/refdata/domain"
	"github.com/wyfcoding/orderdesk/pkg/db"
	"gorm.io/gorm"
)

type blotterRepository struct {
	db *db.DB
}

// NewBlotterRepository 创建交易簿仓储
func NewBlotterRepository(db *db.DB) domain.BlotterRepository {
	return &blotterRepository{db: db}
}

func (r *blotterRepository) List(ctx context.Context) ([]*domain.Blotter, error) {
	var models []*BlotterModel
	if err := r.db.DB.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		return nil, err
	}

	blotters := make([]*domain.Blotter, 0, len(models))
	for _, m := range models {
		blotters = append(blotters, toBlotter(m))
	}
	return blotters, nil
}

func (r *blotterRepository) Get(ctx context.Context, id int64) (*domain.Blotter, error) {
	var model BlotterModel
	if err := r.db.DB.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return toBlotter(&model), nil
}

type securityRepository struct {
	db *db.DB
}

// NewSecurityRepository 创建证券仓储
func NewSecurityRepository(db *db.DB) domain.SecurityRepository {
	return &securityRepository{db: db}
}

func (r *securityRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.DB.WithContext(ctx)
}

func (r *securityRepository) List(ctx context.Context) ([]*domain.Security, error) {
	var models []*SecurityModel
	if err := r.getDB(ctx).Order("id").Find(&models).Error; err != nil {
		return nil, err
	}

	securities := make([]*domain.Security, 0, len(models))
	for _, m := range models {
		securities = append(securities, toSecurity(m))
	}
	return securities, nil
}

func (r *securityRepository) Get(ctx context.Context, id int64) (*domain.Security, error) {
	var model SecurityModel
	if err := r.getDB(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return toSecurity(&model), nil
}

func (r *securityRepository) Create(ctx context.Context, security *domain.Security) error {
	model := toSecurityModel(security)
	model.Version = 1
	if err := r.getDB(ctx).Create(model).Error; err != nil {
		return err
	}
	security.ID = model.ID
	security.Version = model.Version
	return nil
}

func (r *securityRepository) Update(ctx context.Context, security *domain.Security) error {
	currentVersion := security.Version
	result := r.getDB(ctx).Model(&SecurityModel{}).
		Where("id = ? AND version = ?", security.ID, currentVersion).
		Updates(map[string]any{
			"ticker":           security.Ticker,
			"description":      security.Description,
			"security_type_id": security.SecurityTypeID,
			"version":          currentVersion + 1,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrVersionConflict
	}

	security.Version = currentVersion + 1
	return nil
}

func (r *securityRepository) Delete(ctx context.Context, id, version int64) error {
	result := r.getDB(ctx).
		Where("id = ? AND version = ?", id, version).
		Delete(&SecurityModel{})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrVersionConflict
	}
	return nil
}
