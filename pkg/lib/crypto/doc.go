// Package crypto 提供 Sutera 使用的签名原语
//
// 本包是身份编解码（pkg/identity）与签名消息（pkg/message）之外的
// 外部协作者：核心只通过 Signer / Verifier 两个能力接口使用它，
// 因此可以在不修改核心的前提下替换实现，或在测试中注入确定性的假签名器。
//
// # 支持的密钥类型
//
//   - Ed25519（唯一支持）：32 字节公钥，64 字节签名
//
// # 快速开始
//
// 生成密钥对：
//
//	priv, pub, err := crypto.GenerateKeyPair(crypto.KeyTypeEd25519)
//
// 签名和验证：
//
//	sig, err := priv.Sign(data)
//	ok := pub.Verify(data, sig)
//
// 签名的文本形式：
//
//	text := sig.String()                 // 128 位大写十六进制
//	sig, err := crypto.ParseSignature(text)
//
// 密钥存储：
//
//	ks, err := crypto.NewFSKeystore("/path/to/keys", password)
//	err = ks.Put("author", priv)
//	priv, err := ks.Get("author")
//
// # 安全特性
//
//   - 常量时间比较防止时序攻击
//   - AES-GCM + Argon2id 加密存储
//   - 安全清零敏感数据
package crypto
