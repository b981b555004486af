// Package application 订单提交工作流的协调逻辑
package application

import (
	"fmt"

	refdomain "github.com/wyfcoding/orderdesk/internal/refdata/domain"
	"github.com/wyfcoding/orderdesk/internal/submission/domain"
)

// StatusResolver 将状态缩写解析为数值 ID。
// 基于当前加载的状态表工作，状态表整批刷新后需重建。
type StatusResolver struct {
	byAbbreviation map[string]int64
}

// NewStatusResolver 从已加载的状态表构建解析器
func NewStatusResolver(statuses []*refdomain.LookupEntry) *StatusResolver {
	byAbbreviation := make(map[string]int64, len(statuses))
	for _, s := range statuses {
		byAbbreviation[s.Abbreviation] = s.ID
	}
	return &StatusResolver{byAbbreviation: byAbbreviation}
}

// Resolve 返回缩写对应的状态 ID，未配置时返回 ErrStatusNotConfigured
func (r *StatusResolver) Resolve(abbreviation string) (int64, error) {
	id, ok := r.byAbbreviation[abbreviation]
	if !ok {
		return 0, fmt.Errorf("%w: %q", domain.ErrStatusNotConfigured, abbreviation)
	}
	return id, nil
}

// SubmitEnabled 提交动作仅在当前过滤器为 New 时可用
func (r *StatusResolver) SubmitEnabled(filterAbbreviation string) bool {
	return filterAbbreviation == refdomain.StatusNew
}

// CancelEnabled 取消动作在过滤器为 New 或 Cancel 时不可用
func (r *StatusResolver) CancelEnabled(filterAbbreviation string) bool {
	return filterAbbreviation != refdomain.StatusNew && filterAbbreviation != refdomain.StatusCancel
}
