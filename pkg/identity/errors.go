package identity

import (
	"errors"
	"fmt"
)

// ============================================================================
//                              错误定义
// ============================================================================

var (
	// ErrInvalidFormat 身份字符串结构错误
	ErrInvalidFormat = errors.New("identity: invalid identity string")

	// ErrVersionMismatch 不支持的版本标记
	ErrVersionMismatch = errors.New("identity: unsupported version")

	// ErrUnsupportedKind 不支持的身份类别
	ErrUnsupportedKind = errors.New("identity: unsupported kind")

	// ErrInvalidDisplayName 显示名不合法（构造时）
	ErrInvalidDisplayName = errors.New("identity: display name must be non-empty ASCII alphanumeric")
)

// ErrorCode 解析错误码
type ErrorCode int

const (
	// CodeInvalidFormat 结构错误
	CodeInvalidFormat ErrorCode = iota + 1
	// CodeVersionMismatch 版本不匹配
	CodeVersionMismatch
	// CodeUnsupportedKind 类别不支持
	CodeUnsupportedKind
)

// String 返回错误码名称
func (c ErrorCode) String() string {
	switch c {
	case CodeInvalidFormat:
		return "InvalidFormat"
	case CodeVersionMismatch:
		return "VersionMismatch"
	case CodeUnsupportedKind:
		return "UnsupportedKind"
	default:
		return "Unknown"
	}
}

// ParseError 身份字符串解析错误
type ParseError struct {
	Code   ErrorCode
	Found  string // 出错的版本或 kind 片段（InvalidFormat 时为空）
	Reason string // InvalidFormat 的具体原因
}

// Error 实现 error 接口
func (e *ParseError) Error() string {
	switch e.Code {
	case CodeVersionMismatch:
		return fmt.Sprintf("identity: invalid identity string, %s is not supported", e.Found)
	case CodeUnsupportedKind:
		return fmt.Sprintf("identity: invalid identity string, kind %q is not supported", e.Found)
	default:
		if e.Reason != "" {
			return "identity: invalid identity string: " + e.Reason
		}
		return ErrInvalidFormat.Error()
	}
}

// Unwrap 返回错误码对应的哨兵错误
func (e *ParseError) Unwrap() error {
	switch e.Code {
	case CodeVersionMismatch:
		return ErrVersionMismatch
	case CodeUnsupportedKind:
		return ErrUnsupportedKind
	default:
		return ErrInvalidFormat
	}
}

func invalidFormat(reason string) *ParseError {
	return &ParseError{Code: CodeInvalidFormat, Reason: reason}
}

func versionMismatch(found string) *ParseError {
	return &ParseError{Code: CodeVersionMismatch, Found: found}
}

func unsupportedKind(found string) *ParseError {
	return &ParseError{Code: CodeUnsupportedKind, Found: found}
}
