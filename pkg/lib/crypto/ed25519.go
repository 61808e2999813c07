package crypto

import (
	"crypto/ed25519"
	"crypto/subtle"
	"fmt"
	"io"
)

// Ed25519 密钥常量
const (
	// Ed25519PrivateKeySize Ed25519 私钥大小（64 字节）
	Ed25519PrivateKeySize = ed25519.PrivateKeySize
	// Ed25519PublicKeySize Ed25519 公钥大小（32 字节）
	Ed25519PublicKeySize = ed25519.PublicKeySize
	// Ed25519SignatureSize Ed25519 签名大小（64 字节）
	Ed25519SignatureSize = ed25519.SignatureSize
	// Ed25519SeedSize Ed25519 种子大小（32 字节）
	Ed25519SeedSize = ed25519.SeedSize
)

// ============================================================================
//                              Ed25519PublicKey
// ============================================================================

// Ed25519PublicKey Ed25519 公钥实现
type Ed25519PublicKey struct {
	k VerifyingKey
}

// NewEd25519PublicKey 从验证密钥创建公钥
func NewEd25519PublicKey(vk VerifyingKey) *Ed25519PublicKey {
	return &Ed25519PublicKey{k: vk}
}

// Raw 返回原始公钥字节
func (k *Ed25519PublicKey) Raw() ([]byte, error) {
	return k.k.Bytes(), nil
}

// Type 返回密钥类型
func (k *Ed25519PublicKey) Type() KeyType {
	return KeyTypeEd25519
}

// Equals 比较两个公钥是否相等
func (k *Ed25519PublicKey) Equals(other Key) bool {
	ek, ok := other.(*Ed25519PublicKey)
	if !ok {
		return KeyEqual(k, other)
	}
	return subtle.ConstantTimeCompare(k.k[:], ek.k[:]) == 1
}

// VerifyingKey 返回定长验证密钥
func (k *Ed25519PublicKey) VerifyingKey() VerifyingKey {
	return k.k
}

// Verify 使用此公钥验证签名
func (k *Ed25519PublicKey) Verify(data []byte, sig Signature) bool {
	return k.k.Verify(data, sig)
}

// ============================================================================
//                              Ed25519PrivateKey
// ============================================================================

// Ed25519PrivateKey Ed25519 私钥实现
type Ed25519PrivateKey struct {
	k ed25519.PrivateKey
}

// Raw 返回原始私钥字节
//
// Ed25519 私钥为 64 字节，包含 32 字节私钥种子和 32 字节公钥。
func (k *Ed25519PrivateKey) Raw() ([]byte, error) {
	buf := make([]byte, len(k.k))
	copy(buf, k.k)
	return buf, nil
}

// Seed 返回私钥种子（32 字节）
func (k *Ed25519PrivateKey) Seed() []byte {
	return k.k.Seed()
}

// Type 返回密钥类型
func (k *Ed25519PrivateKey) Type() KeyType {
	return KeyTypeEd25519
}

// Equals 比较两个私钥是否相等
func (k *Ed25519PrivateKey) Equals(other Key) bool {
	ek, ok := other.(*Ed25519PrivateKey)
	if !ok {
		return KeyEqual(k, other)
	}
	return subtle.ConstantTimeCompare(k.k, ek.k) == 1
}

// GetPublic 返回对应的公钥
func (k *Ed25519PrivateKey) GetPublic() PublicKey {
	return NewEd25519PublicKey(k.VerifyingKey())
}

// VerifyingKey 派生验证密钥
func (k *Ed25519PrivateKey) VerifyingKey() VerifyingKey {
	var vk VerifyingKey
	// ed25519.PrivateKey 后 32 字节即公钥
	copy(vk[:], k.k[Ed25519SeedSize:])
	return vk
}

// Sign 使用此私钥签名数据
func (k *Ed25519PrivateKey) Sign(data []byte) (Signature, error) {
	var sig Signature
	copy(sig[:], ed25519.Sign(k.k, data))
	return sig, nil
}

// ============================================================================
//                              工厂函数
// ============================================================================

// GenerateEd25519Key 生成新的 Ed25519 密钥对
func GenerateEd25519Key(src io.Reader) (PrivateKey, PublicKey, error) {
	_, priv, err := ed25519.GenerateKey(src)
	if err != nil {
		return nil, nil, err
	}
	sk := &Ed25519PrivateKey{k: priv}
	return sk, sk.GetPublic(), nil
}

// Ed25519PrivateKeyFromSeed 从 32 字节种子确定性地派生私钥
func Ed25519PrivateKeyFromSeed(seed []byte) (*Ed25519PrivateKey, error) {
	if len(seed) != Ed25519SeedSize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidKeySize, Ed25519SeedSize, len(seed))
	}
	return &Ed25519PrivateKey{k: ed25519.NewKeyFromSeed(seed)}, nil
}

// UnmarshalEd25519PublicKey 从字节反序列化 Ed25519 公钥
func UnmarshalEd25519PublicKey(data []byte) (PublicKey, error) {
	if len(data) != Ed25519PublicKeySize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidKeySize, Ed25519PublicKeySize, len(data))
	}
	var vk VerifyingKey
	copy(vk[:], data)
	return NewEd25519PublicKey(vk), nil
}

// UnmarshalEd25519PrivateKey 从字节反序列化 Ed25519 私钥
//
// 支持两种格式：
//   - 64 字节：完整私钥（私钥种子 + 公钥），会校验公钥部分
//   - 32 字节：仅私钥种子
func UnmarshalEd25519PrivateKey(data []byte) (PrivateKey, error) {
	switch len(data) {
	case Ed25519PrivateKeySize:
		derived := ed25519.NewKeyFromSeed(data[:Ed25519SeedSize])
		if subtle.ConstantTimeCompare(derived, data) != 1 {
			return nil, fmt.Errorf("%w: embedded public key mismatch", ErrInvalidPrivateKey)
		}
		return &Ed25519PrivateKey{k: derived}, nil

	case Ed25519SeedSize:
		return &Ed25519PrivateKey{k: ed25519.NewKeyFromSeed(data)}, nil

	default:
		return nil, fmt.Errorf("%w: expected %d or %d bytes, got %d",
			ErrInvalidKeySize, Ed25519SeedSize, Ed25519PrivateKeySize, len(data))
	}
}

// ============================================================================
//                              默认验证器
// ============================================================================

// Ed25519Verifier Ed25519 验证器，无状态
type Ed25519Verifier struct{}

// Verify 实现 Verifier
func (Ed25519Verifier) Verify(key VerifyingKey, data []byte, sig Signature) bool {
	return key.Verify(data, sig)
}

// DefaultVerifier 默认验证器
var DefaultVerifier Verifier = Ed25519Verifier{}
