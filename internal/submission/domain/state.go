// Package domain 定义订单提交工作流的状态机与批次结果
package domain

// Step 单个订单转换过程中的远程调用步骤
type Step string

const (
	// StepBlockCreate 创建执行单元
	StepBlockCreate Step = "block creation"
	// StepAllocationCreate 创建执行单元份额
	StepAllocationCreate Step = "allocation creation"
	// StepTradeCreate 创建交易
	StepTradeCreate Step = "trade creation"
	// StepStatusUpdate 更新订单状态，有意放在最后：
	// 前序任何一步失败时订单仍为 New，可安全重新提交
	StepStatusUpdate Step = "order status update"
)

// State 单个订单在转换状态机中的位置
type State string

const (
	// StatePending 尚未开始
	StatePending State = "pending"
	// StateBlockCreated 执行单元已创建
	StateBlockCreated State = "block created"
	// StateAllocationCreated 份额已创建
	StateAllocationCreated State = "allocation created"
	// StateTradeCreated 交易已创建
	StateTradeCreated State = "trade created"
	// StateStatusUpdated 订单状态已更新，终态（成功）
	StateStatusUpdated State = "status updated"
	// StateFailed 终态（失败）
	StateFailed State = "failed"
)

// Terminal 返回状态是否为终态
func (s State) Terminal() bool {
	return s == StateStatusUpdated || s == StateFailed
}
