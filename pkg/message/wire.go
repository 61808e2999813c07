package message

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"google.golang.org/protobuf/encoding/protowire"
)

// 二进制载荷字段号
//
// 与以下 proto 定义兼容：
//
//	message SignedMessagePayload {
//	  string author = 1;
//	  string message = 2;
//	  string signature = 3;
//	}
const (
	fieldAuthor    protowire.Number = 1
	fieldMessage   protowire.Number = 2
	fieldSignature protowire.Number = 3
)

// errInvalidUTF8 字符串字段不是合法 UTF-8
var errInvalidUTF8 = errors.New("string field contains invalid UTF-8")

// MarshalBinary 编码为 protobuf 线格式
//
// 空字段按 proto3 规则省略。
func (p Payload) MarshalBinary() ([]byte, error) {
	b := make([]byte, 0, sizeString(fieldAuthor, p.Author)+
		sizeString(fieldMessage, p.Message)+
		sizeString(fieldSignature, p.Signature))
	b = appendString(b, fieldAuthor, p.Author)
	b = appendString(b, fieldMessage, p.Message)
	b = appendString(b, fieldSignature, p.Signature)
	return b, nil
}

func sizeString(num protowire.Number, v string) int {
	if v == "" {
		return 0
	}
	return protowire.SizeTag(num) + protowire.SizeBytes(len(v))
}

func appendString(b []byte, num protowire.Number, v string) []byte {
	if v == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

// UnmarshalBinary 解码 protobuf 线格式
//
// 未知字段跳过；同一字段出现多次时后者覆盖前者。
func (p *Payload) UnmarshalBinary(b []byte) error {
	var out Payload
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		var dst *string
		switch num {
		case fieldAuthor:
			dst = &out.Author
		case fieldMessage:
			dst = &out.Message
		case fieldSignature:
			dst = &out.Signature
		}

		if dst == nil {
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			b = b[n:]
			continue
		}

		if typ != protowire.BytesType {
			return fmt.Errorf("field %d: unexpected wire type %d", num, typ)
		}
		v, n := protowire.ConsumeString(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		if !utf8.ValidString(v) {
			return fmt.Errorf("field %d: %w", num, errInvalidUTF8)
		}
		*dst = v
		b = b[n:]
	}

	*p = out
	return nil
}

// MarshalBinary 实现 encoding.BinaryMarshaler
func (m SignedMessage) MarshalBinary() ([]byte, error) {
	return m.Payload().MarshalBinary()
}

// UnmarshalBinary 实现 encoding.BinaryUnmarshaler，不验证签名
func (m *SignedMessage) UnmarshalBinary(data []byte) error {
	decoded, err := defaultCodec.DecodeBinary(data)
	if err != nil {
		return err
	}
	*m = *decoded
	return nil
}
