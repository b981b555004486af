// Package domain 定义参考数据与订单执行的核心实体、仓储接口与领域事件
package domain

import (
	"fmt"
	"strings"
)

// 状态缩写常量，订单提交工作流依赖这三个配置值
const (
	StatusNew    = "New"
	StatusOpen   = "Open"
	StatusCancel = "Cancel"
)

// LookupEntry 缩写/描述型查找表条目（证券类型、订单状态、订单类型、交易类型、目的地共用）
type LookupEntry struct {
	ID           int64  `json:"id"`
	Abbreviation string `json:"abbreviation"`
	Description  string `json:"description"`
	Version      int64  `json:"version"`
}

// Validate 校验查找表条目
func (e *LookupEntry) Validate() error {
	if strings.TrimSpace(e.Abbreviation) == "" {
		return fmt.Errorf("%w: abbreviation is required", ErrValidation)
	}
	if len(e.Abbreviation) > 10 {
		return fmt.Errorf("%w: abbreviation must be at most 10 characters", ErrValidation)
	}
	if strings.TrimSpace(e.Description) == "" {
		return fmt.Errorf("%w: description is required", ErrValidation)
	}
	return nil
}

// Blotter 交易簿，订单的归属分组
type Blotter struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Version int64  `json:"version"`
}

// Validate 校验交易簿
func (b *Blotter) Validate() error {
	if strings.TrimSpace(b.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	return nil
}

// Security 证券主数据
type Security struct {
	ID             int64  `json:"id"`
	Ticker         string `json:"ticker"`
	Description    string `json:"description"`
	SecurityTypeID int64  `json:"securityTypeId"`
	Version        int64  `json:"version"`
}

// Validate 校验证券
func (s *Security) Validate() error {
	ticker := strings.TrimSpace(s.Ticker)
	if ticker == "" || len(ticker) > 12 {
		return fmt.Errorf("%w: ticker is required (1-12 characters)", ErrValidation)
	}
	if s.SecurityTypeID <= 0 {
		return fmt.Errorf("%w: securityTypeId is required", ErrValidation)
	}
	return nil
}
