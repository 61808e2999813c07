package message

import (
	"errors"
	"fmt"
)

// ============================================================================
//                              错误定义
// ============================================================================

var (
	// ErrSigningKeyMismatch 签名密钥与作者公钥不一致
	ErrSigningKeyMismatch = errors.New("message: the signing key does not match the author's verifying key")

	// ErrInvalidUTF8 消息文本不是合法 UTF-8，JSON 载荷无法原样携带
	ErrInvalidUTF8 = errors.New("message: text is not valid UTF-8")

	// ErrNilSigner 签名能力为空
	ErrNilSigner = errors.New("message: nil signer")

	// ErrDecode 反序列化失败
	ErrDecode = errors.New("message: deserialization failed")

	// ErrInvalidSignature 签名验证失败（仅 Codec.Open 返回）
	ErrInvalidSignature = errors.New("message: invalid signature")
)

// 出错字段名
const (
	FieldPayload   = "payload"
	FieldAuthor    = "author"
	FieldSignature = "signature"
)

// DecodeError 反序列化错误
//
// 同时匹配 ErrDecode 和底层原因：
//
//	errors.Is(err, message.ErrDecode)            // true
//	errors.Is(err, identity.ErrVersionMismatch)  // 作者字段版本不支持时为 true
type DecodeError struct {
	Field string // 出错字段
	Err   error  // 底层错误
}

// Error 实现 error 接口
func (e *DecodeError) Error() string {
	return fmt.Sprintf("message: decode %s: %v", e.Field, e.Err)
}

// Unwrap 返回 ErrDecode 和底层错误
func (e *DecodeError) Unwrap() []error {
	return []error{ErrDecode, e.Err}
}

func decodeError(field string, err error) *DecodeError {
	return &DecodeError{Field: field, Err: err}
}
