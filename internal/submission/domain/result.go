package domain

import "fmt"

// BatchResult 一次批量提交的聚合结果。
// 批次在第一个失败订单处停止：失败订单之前的订单已全部转换完成，
// 之后的订单保持 New 状态未被触碰。
type BatchResult struct {
	// SuccessCount 失败前完整转换的订单数
	SuccessCount int
	// FailedOrderID 首个失败订单的 ID，全部成功时为 0
	FailedOrderID int64
	// FailedStep 失败发生的步骤
	FailedStep Step
	// Cause 失败原因
	Cause error
	// States 每个订单的终止状态，按订单 ID 索引，便于检视中间进度
	States map[int64]State
}

// OK 返回批次是否全部成功
func (r *BatchResult) OK() bool {
	return r.FailedOrderID == 0
}

// Summary 返回人类可读的批次摘要
func (r *BatchResult) Summary() string {
	if r.OK() {
		return fmt.Sprintf("all %d orders submitted", r.SuccessCount)
	}
	return fmt.Sprintf("order %d failed at %s after %d orders submitted: %v",
		r.FailedOrderID, r.FailedStep, r.SuccessCount, r.Cause)
}
