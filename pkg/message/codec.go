package message

import (
	"encoding/json"

	"github.com/dep2p/go-sutera/pkg/identity"
	"github.com/dep2p/go-sutera/pkg/lib/crypto"
)

// Codec 载荷解码器
//
// 零值可用。解码只做语法解析，不验证签名；Open 在解码后额外验证。
// Codec 创建后只读，可在 goroutine 间共享。
type Codec struct {
	cache    *identity.Cache
	verifier crypto.Verifier
}

// CodecOption Codec 选项
type CodecOption func(*Codec)

// WithIdentityCache 使用解析缓存解码作者字段
func WithIdentityCache(cache *identity.Cache) CodecOption {
	return func(c *Codec) {
		c.cache = cache
	}
}

// WithVerifier 指定 Open 使用的验证器（默认 Ed25519）
func WithVerifier(v crypto.Verifier) CodecOption {
	return func(c *Codec) {
		c.verifier = v
	}
}

// NewCodec 创建解码器
func NewCodec(opts ...CodecOption) *Codec {
	c := &Codec{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultCodec = &Codec{}

// Decode 从载荷还原消息
//
// 作者字段和签名字段的错误都包装为 *DecodeError。
func (c *Codec) Decode(p Payload) (*SignedMessage, error) {
	author, err := c.ParseIdentity(p.Author)
	if err != nil {
		return nil, decodeError(FieldAuthor, err)
	}

	sig, err := crypto.ParseSignature(p.Signature)
	if err != nil {
		return nil, decodeError(FieldSignature, err)
	}

	return &SignedMessage{
		Author:    author,
		Message:   p.Message,
		Signature: sig,
	}, nil
}

// DecodeJSON 从 JSON 对象还原消息
func (c *Codec) DecodeJSON(data []byte) (*SignedMessage, error) {
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, decodeError(FieldPayload, err)
	}
	return c.Decode(p)
}

// DecodeBinary 从 protobuf 线格式还原消息
func (c *Codec) DecodeBinary(data []byte) (*SignedMessage, error) {
	var p Payload
	if err := p.UnmarshalBinary(data); err != nil {
		return nil, decodeError(FieldPayload, err)
	}
	return c.Decode(p)
}

// Open 解码并验证签名
//
// 签名无效时返回 ErrInvalidSignature。需要先查看未验证内容的调用方应使用 Decode。
func (c *Codec) Open(p Payload) (*SignedMessage, error) {
	return c.verified(c.Decode(p))
}

// OpenJSON 解码 JSON 对象并验证签名
func (c *Codec) OpenJSON(data []byte) (*SignedMessage, error) {
	return c.verified(c.DecodeJSON(data))
}

func (c *Codec) verified(m *SignedMessage, err error) (*SignedMessage, error) {
	if err != nil {
		return nil, err
	}
	if !m.VerifyWith(c.verifierOrDefault()) {
		return nil, ErrInvalidSignature
	}
	return m, nil
}

// ParseIdentity 解析身份字符串，配置了缓存时经过缓存
func (c *Codec) ParseIdentity(s string) (identity.Identity, error) {
	if c.cache != nil {
		return c.cache.Parse(s)
	}
	return identity.Parse(s)
}

func (c *Codec) verifierOrDefault() crypto.Verifier {
	if c.verifier != nil {
		return c.verifier
	}
	return crypto.DefaultVerifier
}
