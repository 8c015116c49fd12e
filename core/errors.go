package core

import (
	"errors"
	"fmt"
)

// DomainError 是领域层的统一错误类型。
//
// 设计原则：
//   - 所有领域层错误都使用此类型
//   - 提供错误代码（Code）和消息（Message）
//   - 支持错误检查函数（IsXXX），可识别经过 %w 包装的错误
//
// 使用场景：
//   - 协作服务错误：UNAVAILABLE（事件源、相似度索引不可达或超时）
//   - 快照错误：CORRUPT_SNAPSHOT（启动期数据损坏，进程直接退出）
//   - 请求错误：INVALID_INPUT
type DomainError struct {
	Code    string // 错误代码（如 "UNAVAILABLE", "CORRUPT_SNAPSHOT"）
	Message string // 错误消息
	Module  string // 模块名称（如 "events", "similarity", "snapshot"）
	Cause   error  // 底层错误，可为 nil
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *DomainError) Unwrap() error { return e.Cause }

// Is 让 errors.Is 按 Module + Code 比较，便于与哨兵错误对比。
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return t.Code == e.Code && (t.Module == "" || t.Module == e.Module)
}

// IsDomainError 检查错误链中是否有 DomainError
func IsDomainError(err error) bool {
	return GetDomainError(err) != nil
}

// GetDomainError 获取错误链中的 DomainError，如果没有则返回 nil
func GetDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return nil
}

// NewDomainError 创建新的领域错误
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
	}
}

// 错误代码常量
const (
	ErrorCodeUnavailable     = "UNAVAILABLE"      // 协作服务不可用 / 超时
	ErrorCodeCorruptSnapshot = "CORRUPT_SNAPSHOT" // 快照数据损坏
	ErrorCodeInvalidInput    = "INVALID_INPUT"    // 输入无效
)

// 模块名称常量
const (
	ModuleEvents     = "events"     // 事件源
	ModuleSimilarity = "similarity" // 相似物品索引
	ModuleSnapshot   = "snapshot"   // 快照加载
	ModuleRequest    = "request"    // 请求参数
)

var (
	// ErrCollaboratorUnavailable 是所有协作服务失败的哨兵错误（不区分模块）。
	ErrCollaboratorUnavailable = &DomainError{Code: ErrorCodeUnavailable, Message: "collaborator unavailable"}

	// ErrCorruptSnapshot 是快照损坏的哨兵错误（不区分模块）。
	ErrCorruptSnapshot = &DomainError{Code: ErrorCodeCorruptSnapshot, Message: "corrupt snapshot"}

	// ErrInvalidInput 是参数错误的哨兵错误（不区分模块）。
	ErrInvalidInput = &DomainError{Code: ErrorCodeInvalidInput, Message: "invalid input"}
)

// Unavailable 包装一次协作服务调用失败（网络错误、超时、熔断）。
func Unavailable(module string, cause error, format string, args ...any) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    ErrorCodeUnavailable,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// CorruptSnapshot 包装一次快照加载失败。
func CorruptSnapshot(cause error, format string, args ...any) *DomainError {
	return &DomainError{
		Module:  ModuleSnapshot,
		Code:    ErrorCodeCorruptSnapshot,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// InvalidInput 构造请求参数错误。
func InvalidInput(format string, args ...any) *DomainError {
	return &DomainError{
		Module:  ModuleRequest,
		Code:    ErrorCodeInvalidInput,
		Message: fmt.Sprintf(format, args...),
	}
}

func hasCode(err error, code string) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == code
	}
	return false
}

// IsUnavailable 检查错误是否为 UNAVAILABLE（可重试）
func IsUnavailable(err error) bool {
	return hasCode(err, ErrorCodeUnavailable)
}

// IsCorruptSnapshot 检查错误是否为 CORRUPT_SNAPSHOT
func IsCorruptSnapshot(err error) bool {
	return hasCode(err, ErrorCodeCorruptSnapshot)
}

// IsInvalidInput 检查错误是否为 INVALID_INPUT
func IsInvalidInput(err error) bool {
	return hasCode(err, ErrorCodeInvalidInput)
}
