package crypto

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"strings"
)

// SignatureSize 签名长度（64 字节）
const SignatureSize = Ed25519SignatureSize

// SignatureTextSize 签名文本形式长度（128 个十六进制字符）
const SignatureTextSize = SignatureSize * 2

// ============================================================================
//                              VerifyingKey
// ============================================================================

// VerifyingKey 定长验证密钥（32 字节）
//
// 值类型，可直接用 == 比较，也可作为 map 键。
type VerifyingKey [Ed25519PublicKeySize]byte

// Bytes 返回密钥字节副本
func (k VerifyingKey) Bytes() []byte {
	buf := make([]byte, len(k))
	copy(buf, k[:])
	return buf
}

// String 返回小写十六进制形式
func (k VerifyingKey) String() string {
	return hex.EncodeToString(k[:])
}

// IsZero 是否为全零密钥
func (k VerifyingKey) IsZero() bool {
	return k == VerifyingKey{}
}

// Verify 验证签名
//
// 不合法的公钥点或签名只会得到 false。
func (k VerifyingKey) Verify(data []byte, sig Signature) bool {
	return ed25519.Verify(k[:], data, sig[:])
}

// ============================================================================
//                              Signature
// ============================================================================

// Signature 定长签名（64 字节）
type Signature [SignatureSize]byte

// SignatureFromBytes 从字节创建签名
func SignatureFromBytes(b []byte) (Signature, error) {
	var sig Signature
	if len(b) != SignatureSize {
		return sig, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidSignatureSize, SignatureSize, len(b))
	}
	copy(sig[:], b)
	return sig, nil
}

// ParseSignature 解析签名的文本形式
//
// 接受大小写十六进制，长度必须为 128。
func ParseSignature(s string) (Signature, error) {
	var sig Signature
	if len(s) != SignatureTextSize {
		return sig, fmt.Errorf("%w: expected %d characters, got %d", ErrInvalidSignatureText, SignatureTextSize, len(s))
	}
	if _, err := hex.Decode(sig[:], []byte(s)); err != nil {
		return Signature{}, fmt.Errorf("%w: %v", ErrInvalidSignatureText, err)
	}
	return sig, nil
}

// Bytes 返回签名字节副本
func (s Signature) Bytes() []byte {
	buf := make([]byte, len(s))
	copy(buf, s[:])
	return buf
}

// String 返回签名的规范文本形式（大写十六进制）
func (s Signature) String() string {
	return strings.ToUpper(hex.EncodeToString(s[:]))
}

// MarshalText 实现 encoding.TextMarshaler
func (s Signature) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler
func (s *Signature) UnmarshalText(text []byte) error {
	sig, err := ParseSignature(string(text))
	if err != nil {
		return err
	}
	*s = sig
	return nil
}
