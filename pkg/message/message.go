package message

import (
	"fmt"
	"unicode/utf8"

	"github.com/dep2p/go-sutera/pkg/identity"
	"github.com/dep2p/go-sutera/pkg/lib/crypto"
)

// SignedMessage 签名消息
//
// 值语义：三个字段都由消息持有，可用 == 比较。
// 只有经 New 创建的消息保证签名有效，反序列化得到的消息需要显式 Verify。
type SignedMessage struct {
	// Author 作者身份
	Author identity.Identity

	// Message 消息内容
	Message string

	// Signature 对 Message 原始字节的签名
	Signature crypto.Signature
}

// New 用作者的签名能力签名消息
//
// 先比较 signer 派生的验证密钥与 author.PublicKey，不一致时返回
// ErrSigningKeyMismatch 且不产生消息；一致时对 message 的原始字节签名。
// message 必须是合法 UTF-8，否则返回 ErrInvalidUTF8。
func New(author identity.Identity, message string, signer crypto.Signer) (*SignedMessage, error) {
	if signer == nil {
		return nil, ErrNilSigner
	}
	if signer.VerifyingKey() != author.PublicKey {
		return nil, ErrSigningKeyMismatch
	}
	if !utf8.ValidString(message) {
		return nil, ErrInvalidUTF8
	}

	sig, err := signer.Sign([]byte(message))
	if err != nil {
		return nil, fmt.Errorf("message: sign: %w", err)
	}

	return &SignedMessage{
		Author:    author,
		Message:   message,
		Signature: sig,
	}, nil
}

// Verify 使用默认 Ed25519 验证器检查签名
//
// 全函数：签名无效、密钥不符、消息被修改都只返回 false。
func (m *SignedMessage) Verify() bool {
	return m.VerifyWith(crypto.DefaultVerifier)
}

// VerifyWith 使用指定验证器检查签名
func (m *SignedMessage) VerifyWith(v crypto.Verifier) bool {
	if m == nil || v == nil {
		return false
	}
	return v.Verify(m.Author.PublicKey, []byte(m.Message), m.Signature)
}

// String 返回便于日志输出的摘要（不含消息正文）
func (m *SignedMessage) String() string {
	if m == nil {
		return "<nil>"
	}
	return fmt.Sprintf("SignedMessage{author=%s, len=%d}", m.Author.ShortFingerprint(), len(m.Message))
}
