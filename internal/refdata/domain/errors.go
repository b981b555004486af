package domain

import "errors"

var (
	// ErrNotFound 实体不存在
	ErrNotFound = errors.New("entity not found")
	// ErrVersionConflict 乐观锁版本冲突，提交的版本号已过期
	ErrVersionConflict = errors.New("version conflict: entity modified by another writer")
	// ErrValidation 输入校验失败
	ErrValidation = errors.New("validation failed")
)
