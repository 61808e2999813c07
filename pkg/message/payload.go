package message

import (
	"encoding/json"
)

// Payload 线上载荷：三个文本字段
//
// 字段顺序无语义，每个字段的文本必须原样往返。
type Payload struct {
	// Author 身份编解码输出
	Author string `json:"author"`

	// Message 原始文本
	Message string `json:"message"`

	// Signature 签名的规范文本形式
	Signature string `json:"signature"`
}

// Payload 返回消息的线上载荷
func (m *SignedMessage) Payload() Payload {
	return Payload{
		Author:    m.Author.String(),
		Message:   m.Message,
		Signature: m.Signature.String(),
	}
}

// FromPayload 从线上载荷还原消息，不验证签名
func FromPayload(p Payload) (*SignedMessage, error) {
	return defaultCodec.Decode(p)
}

// MarshalJSON 实现 json.Marshaler
func (m SignedMessage) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Payload())
}

// UnmarshalJSON 实现 json.Unmarshaler，不验证签名
func (m *SignedMessage) UnmarshalJSON(data []byte) error {
	decoded, err := defaultCodec.DecodeJSON(data)
	if err != nil {
		return err
	}
	*m = *decoded
	return nil
}
