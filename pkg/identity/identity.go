package identity

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/dep2p/go-sutera/pkg/lib/crypto"
)

const (
	// Version 身份字符串版本标记
	Version = "sutera-identity-v1"

	// PublicKeySize 公钥长度（字节）
	PublicKeySize = crypto.Ed25519PublicKeySize

	// PublicKeyHexSize 公钥十六进制长度
	PublicKeyHexSize = PublicKeySize * 2

	segmentSeparator = "."
	nameSeparator    = "@"
)

// ============================================================================
//                              Identity
// ============================================================================

// Identity 网络参与者身份
//
// 值类型，构造后不可变，可用 == 比较。DisplayName 为空表示没有显示名。
type Identity struct {
	// Kind 身份类别
	Kind Kind

	// DisplayName 显示名，仅用于界面展示，不参与认证
	DisplayName string

	// PublicKey 验证密钥，唯一的认证依据
	PublicKey crypto.VerifyingKey
}

// New 创建并校验身份
func New(kind Kind, displayName string, key crypto.VerifyingKey) (Identity, error) {
	id := Identity{Kind: kind, DisplayName: displayName, PublicKey: key}
	if err := id.Validate(); err != nil {
		return Identity{}, err
	}
	return id, nil
}

// FromSigner 用签名能力派生的公钥创建身份
func FromSigner(kind Kind, displayName string, signer crypto.Signer) (Identity, error) {
	if signer == nil {
		return Identity{}, crypto.ErrNilPrivateKey
	}
	return New(kind, displayName, signer.VerifyingKey())
}

// Validate 校验身份不变量
func (id Identity) Validate() error {
	if !id.Kind.Valid() {
		return unsupportedKind(fmt.Sprintf("Kind(%d)", int(id.Kind)))
	}
	if id.DisplayName != "" && !validDisplayName(id.DisplayName) {
		return ErrInvalidDisplayName
	}
	return nil
}

// HasDisplayName 是否带显示名
func (id Identity) HasDisplayName() bool {
	return id.DisplayName != ""
}

// String 返回规范文本形式
//
//	<kind>[@<display_name>].sutera-identity-v1.<hex(public_key)>
func (id Identity) String() string {
	var b strings.Builder
	b.Grow(len(id.DisplayName) + len(Version) + PublicKeyHexSize + 16)

	b.WriteString(id.Kind.String())
	if id.DisplayName != "" {
		b.WriteString(nameSeparator)
		b.WriteString(id.DisplayName)
	}
	b.WriteString(segmentSeparator)
	b.WriteString(Version)
	b.WriteString(segmentSeparator)
	b.WriteString(hex.EncodeToString(id.PublicKey[:]))
	return b.String()
}

// MarshalText 实现 encoding.TextMarshaler
func (id Identity) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler
func (id *Identity) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// ============================================================================
//                              解析
// ============================================================================

// Parse 解析身份字符串
//
// 检查顺序见包文档；十六进制公钥大小写均可接受，输出总是小写。
func Parse(s string) (Identity, error) {
	parts := strings.Split(s, segmentSeparator)
	if len(parts) != 3 {
		return Identity{}, invalidFormat("expected 3 dot-separated segments")
	}
	head, version, keyHex := parts[0], parts[1], parts[2]

	if head == "" {
		return Identity{}, invalidFormat("empty kind segment")
	}

	if version != Version {
		return Identity{}, versionMismatch(version)
	}

	if len(keyHex) != PublicKeyHexSize {
		return Identity{}, invalidFormat("public key must be 64 hex characters")
	}

	kindToken, displayName, hasName := strings.Cut(head, nameSeparator)
	kind, ok := ParseKind(kindToken)
	if !ok {
		return Identity{}, unsupportedKind(kindToken)
	}

	var key crypto.VerifyingKey
	if _, err := hex.Decode(key[:], []byte(keyHex)); err != nil {
		return Identity{}, invalidFormat("public key is not hex")
	}

	if hasName && !validDisplayName(displayName) {
		return Identity{}, invalidFormat("display name must be non-empty ASCII alphanumeric")
	}

	return Identity{Kind: kind, DisplayName: displayName, PublicKey: key}, nil
}

// MustParse 解析身份字符串，失败时 panic
//
// 仅用于常量初始化和测试。
func MustParse(s string) Identity {
	id, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return id
}

// validDisplayName 非空且只含 [0-9A-Za-z]
func validDisplayName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		default:
			return false
		}
	}
	return true
}
