// Package message 实现 Sutera 签名消息信封
//
// 签名消息是 (author, message, signature) 三元组：
//
//   - author: 作者身份，其公钥是验证签名的唯一依据
//   - message: 任意文本内容
//   - signature: 对 message 原始字节的 64 字节签名
//
// # 构造与验证
//
//	id, _ := identity.FromSigner(identity.KindUser, "alice", priv)
//	msg, err := message.New(id, "Hello, Sutera!", priv)
//	ok := msg.Verify()
//
// New 是唯一在创建时保证签名有效的路径。反序列化得到的消息不会自动验证，
// 调用方在信任内容之前必须显式调用 Verify（或使用 Codec.Open）。
//
// # 线上格式
//
// 三个字符串字段，JSON 形式：
//
//	{"author": "user@alice.sutera-identity-v1.…", "message": "…", "signature": "…128 位十六进制…"}
//
// 二进制形式使用 protobuf 线格式，字段号 1/2/3 分别对应 author/message/signature。
package message
