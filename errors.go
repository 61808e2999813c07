package sutera

import "errors"

// 公共错误定义
var (
	// ErrAlreadyStarted 客户端已启动
	ErrAlreadyStarted = errors.New("client already started")

	// ErrClientClosed 客户端已关闭
	ErrClientClosed = errors.New("client closed")

	// ErrNoKeyStore 未配置密钥存储目录，生成的密钥无法保存
	ErrNoKeyStore = errors.New("key store dir is not set, generated key would be lost")
)
