// Package application 参考数据与订单执行的应用服务
package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wyfcoding/orderdesk/internal/refdata/domain"
)

// ReferenceDataService 处理查找表、交易簿与证券的读写
type ReferenceDataService struct {
	lookupRepo   domain.LookupRepository
	blotterRepo  domain.BlotterRepository
	securityRepo domain.SecurityRepository
	logger       *slog.Logger
}

// NewReferenceDataService 创建参考数据应用服务
func NewReferenceDataService(
	lookupRepo domain.LookupRepository,
	blotterRepo domain.BlotterRepository,
	securityRepo domain.SecurityRepository,
	logger *slog.Logger,
) *ReferenceDataService {
	return &ReferenceDataService{
		lookupRepo:   lookupRepo,
		blotterRepo:  blotterRepo,
		securityRepo: securityRepo,
		logger:       logger.With("module", "refdata_service"),
	}
}

// ListLookup 列出查找表条目
func (s *ReferenceDataService) ListLookup(ctx context.Context, kind domain.LookupKind) ([]*domain.LookupEntry, error) {
	return s.lookupRepo.List(ctx, kind)
}

// CreateLookup 创建查找表条目
func (s *ReferenceDataService) CreateLookup(ctx context.Context, kind domain.LookupKind, entry *domain.LookupEntry) (*domain.LookupEntry, error) {
	if err := entry.Validate(); err != nil {
		return nil, err
	}
	if err := s.lookupRepo.Create(ctx, kind, entry); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", kind, err)
	}

	s.logger.InfoContext(ctx, "lookup entry created",
		"kind", string(kind),
		"id", entry.ID,
		"abbreviation", entry.Abbreviation,
	)
	return entry, nil
}

// UpdateLookup 更新查找表条目，携带的版本号过期时返回 ErrVersionConflict
func (s *ReferenceDataService) UpdateLookup(ctx context.Context, kind domain.LookupKind, entry *domain.LookupEntry) (*domain.LookupEntry, error) {
	if err := entry.Validate(); err != nil {
		return nil, err
	}
	if err := s.lookupRepo.Update(ctx, kind, entry); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "lookup entry updated",
		"kind", string(kind),
		"id", entry.ID,
		"version", entry.Version,
	)
	return entry, nil
}

// DeleteLookup 删除查找表条目，携带的版本号过期时返回 ErrVersionConflict
func (s *ReferenceDataService) DeleteLookup(ctx context.Context, kind domain.LookupKind, id, version int64) error {
	if err := s.lookupRepo.Delete(ctx, kind, id, version); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "lookup entry deleted", "kind", string(kind), "id", id)
	return nil
}

// ListBlotters 列出交易簿
func (s *ReferenceDataService) ListBlotters(ctx context.Context) ([]*domain.Blotter, error) {
	return s.blotterRepo.List(ctx)
}

// ListSecurities 列出证券
func (s *ReferenceDataService) ListSecurities(ctx context.Context) ([]*domain.Security, error) {
	return s.securityRepo.List(ctx)
}

// CreateSecurity 创建证券
func (s *ReferenceDataService) CreateSecurity(ctx context.Context, security *domain.Security) (*domain.Security, error) {
	if err := security.Validate(); err != nil {
		return nil, err
	}
	if err := s.securityRepo.Create(ctx, security); err != nil {
		return nil, fmt.Errorf("failed to create security: %w", err)
	}

	s.logger.InfoContext(ctx, "security created", "id", security.ID, "ticker", security.Ticker)
	return security, nil
}

// UpdateSecurity 更新证券
func (s *ReferenceDataService) UpdateSecurity(ctx context.Context, security *domain.Security) (*domain.Security, error) {
	if err := security.Validate(); err != nil {
		return nil, err
	}
	if err := s.securityRepo.Update(ctx, security); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "security updated", "id", security.ID, "version", security.Version)
	return security, nil
}

// DeleteSecurity 删除证券
func (s *ReferenceDataService) DeleteSecurity(ctx context.Context, id, version int64) error {
	if err := s.securityRepo.Delete(ctx, id, version); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "security deleted", "id", id)
	return nil
}
