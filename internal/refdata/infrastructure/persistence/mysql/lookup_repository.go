package mysql

import (
	"context"
	"errors"

	"github.com/wyfcoding/orderdesk/internal/refdata/domain"
	"github.com/wyfcoding/orderdesk/pkg/db"
	"gorm.io/gorm"
)

type lookupRepository struct {
	db *db.DB
}

// NewLookupRepository 创建查找表仓储
func NewLookupRepository(db *db.DB) domain.LookupRepository {
	return &lookupRepository{db: db}
}

func (r *lookupRepository) table(ctx context.Context, kind domain.LookupKind) *gorm.DB {
	return r.db.DB.WithContext(ctx).Table(tableFor(kind))
}

func (r *lookupRepository) List(ctx context.Context, kind domain.LookupKind) ([]*domain.LookupEntry, error) {
	var models []*LookupModel
	if err := r.table(ctx, kind).Order("id").Find(&models).Error; err != nil {
		return nil, err
	}

	entries := make([]*domain.LookupEntry, 0, len(models))
	for _, m := range models {
		entries = append(entries, toLookupEntry(m))
	}
	return entries, nil
}

func (r *lookupRepository) Get(ctx context.Context, kind domain.LookupKind, id int64) (*domain.LookupEntry, error) {
	var model LookupModel
	if err := r.table(ctx, kind).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return toLookupEntry(&model), nil
}

func (r *lookupRepository) Create(ctx context.Context, kind domain.LookupKind, entry *domain.LookupEntry) error {
	model := toLookupModel(entry)
	model.Version = 1
	if err := r.table(ctx, kind).Create(model).Error; err != nil {
		return err
	}
	entry.ID = model.ID
	entry.Version = model.Version
	return nil
}

func (r *lookupRepository) Update(ctx context.Context, kind domain.LookupKind, entry *domain.LookupEntry) error {
	currentVersion := entry.Version
	result := r.table(ctx, kind).
		Where("id = ? AND version = ?", entry.ID, currentVersion).
		Updates(map[string]any{
			"abbreviation": entry.Abbreviation,
			"description":  entry.Description,
			"version":      currentVersion + 1,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrVersionConflict
	}

	entry.Version = currentVersion + 1
	return nil
}

func (r *lookupRepository) Delete(ctx context.Context, kind domain.LookupKind, id, version int64) error {
	result := r.table(ctx, kind).
		Where("id = ? AND version = ?", id, version).
		Delete(&LookupModel{})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrVersionConflict
	}
	return nil
}
