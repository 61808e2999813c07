// Package lib 包含基础设施工具库
//
// 本目录包含与业务组件无关的通用工具库：
//
//   - crypto: 密码学原语（Ed25519 密钥、签名、密钥存储）
//   - log: 日志封装
//
// # 与 pkg/ 其他目录的关系
//
//   - identity/: 身份字符串编解码
//   - message/: 签名消息
//   - lib/: 基础设施工具库（本目录）
//
// # 使用示例
//
//	import (
//	    "github.com/dep2p/go-sutera/pkg/lib/crypto"
//	    "github.com/dep2p/go-sutera/pkg/lib/log"
//	)
package lib
