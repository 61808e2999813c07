package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"io"
)

// ============================================================================
//                              密钥类型定义
// ============================================================================

// KeyType 密钥类型
//
// 数值会写入密钥文件头，已分配的值不能复用。
type KeyType uint8

const (
	// KeyTypeUnspecified 未指定密钥类型
	KeyTypeUnspecified KeyType = 0
	// KeyTypeEd25519 Ed25519 密钥
	KeyTypeEd25519 KeyType = 2
)

// String 返回密钥类型名称
func (kt KeyType) String() string {
	switch kt {
	case KeyTypeUnspecified:
		return "Unspecified"
	case KeyTypeEd25519:
		return "Ed25519"
	default:
		return "Unknown"
	}
}

// ParseKeyType 从名称解析密钥类型
func ParseKeyType(name string) (KeyType, error) {
	switch name {
	case "Ed25519", "ed25519":
		return KeyTypeEd25519, nil
	default:
		return KeyTypeUnspecified, ErrBadKeyType
	}
}

// ============================================================================
//                              密钥接口定义
// ============================================================================

// Key 基础密钥接口
type Key interface {
	// Raw 返回原始密钥字节
	Raw() ([]byte, error)

	// Type 返回密钥类型
	Type() KeyType

	// Equals 比较两个密钥是否相等
	Equals(Key) bool
}

// PublicKey 公钥接口
type PublicKey interface {
	Key

	// VerifyingKey 返回定长的验证密钥
	VerifyingKey() VerifyingKey

	// Verify 使用此公钥验证签名，签名无效时返回 false
	Verify(data []byte, sig Signature) bool
}

// PrivateKey 私钥接口
//
// 所有私钥实现同时满足 Signer。
type PrivateKey interface {
	Key
	Signer

	// GetPublic 返回对应的公钥
	GetPublic() PublicKey
}

// ============================================================================
//                              能力接口
// ============================================================================

// Signer 签名能力
//
// 签名消息构造时注入：先用 VerifyingKey 核对作者公钥，再对消息原始字节签名。
type Signer interface {
	// VerifyingKey 派生对应的验证密钥
	VerifyingKey() VerifyingKey

	// Sign 对数据签名
	Sign(data []byte) (Signature, error)
}

// Verifier 验证能力
//
// 实现必须是全函数：任何输入都只返回 true/false，不能 panic。
type Verifier interface {
	Verify(key VerifyingKey, data []byte, sig Signature) bool
}

// VerifierFunc 函数适配器
type VerifierFunc func(key VerifyingKey, data []byte, sig Signature) bool

// Verify 实现 Verifier
func (f VerifierFunc) Verify(key VerifyingKey, data []byte, sig Signature) bool {
	return f(key, data, sig)
}

// ============================================================================
//                              密钥工厂函数
// ============================================================================

// GenerateKeyPair 生成密钥对
//
// 使用系统默认的加密安全随机源。
func GenerateKeyPair(keyType KeyType) (PrivateKey, PublicKey, error) {
	return GenerateKeyPairWithReader(keyType, rand.Reader)
}

// GenerateKeyPairWithReader 使用指定的随机源生成密钥对
//
// 参数：
//   - keyType: 密钥类型
//   - reader: 随机源（用于测试时的确定性生成）
func GenerateKeyPairWithReader(keyType KeyType, reader io.Reader) (PrivateKey, PublicKey, error) {
	switch keyType {
	case KeyTypeEd25519:
		return GenerateEd25519Key(reader)
	default:
		return nil, nil, ErrBadKeyType
	}
}

// ============================================================================
//                              反序列化函数
// ============================================================================

// UnmarshalPublicKey 从字节反序列化公钥
func UnmarshalPublicKey(keyType KeyType, data []byte) (PublicKey, error) {
	switch keyType {
	case KeyTypeEd25519:
		return UnmarshalEd25519PublicKey(data)
	default:
		return nil, ErrBadKeyType
	}
}

// UnmarshalPrivateKey 从字节反序列化私钥
func UnmarshalPrivateKey(keyType KeyType, data []byte) (PrivateKey, error) {
	switch keyType {
	case KeyTypeEd25519:
		return UnmarshalEd25519PrivateKey(data)
	default:
		return nil, ErrBadKeyType
	}
}

// ============================================================================
//                              辅助函数
// ============================================================================

// KeyEqual 使用常量时间比较两个密钥是否相等
func KeyEqual(k1, k2 Key) bool {
	if k1 == nil || k2 == nil {
		return false
	}
	if k1.Type() != k2.Type() {
		return false
	}

	b1, err1 := k1.Raw()
	b2, err2 := k2.Raw()
	if err1 != nil || err2 != nil {
		return false
	}

	return subtle.ConstantTimeCompare(b1, b2) == 1
}

// RandomBytes 生成指定长度的加密安全随机字节
func RandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	_, err := io.ReadFull(rand.Reader, b)
	return b, err
}
