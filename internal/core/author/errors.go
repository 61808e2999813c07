package author

import "errors"

var (
	// ErrNoKey 密钥不存在且未启用自动生成
	ErrNoKey = errors.New("author: signing key not found and auto-generate is disabled")

	// ErrUnsupportedKeyType 密钥类型不能用于签名消息
	ErrUnsupportedKeyType = errors.New("author: key type is not supported")
)
