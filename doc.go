// Package sutera 提供 Sutera 身份与签名消息的客户端入口
//
// Client 把配置、密钥存储和作者组装在一起，调用方只需要：
//
//	c, err := sutera.Start(ctx, sutera.WithConfigFile("sutera.json"))
//	if err != nil {
//	    return err
//	}
//	defer c.Close()
//
//	msg, _ := c.Sign("hello")
//	data, _ := json.Marshal(msg)
//
//	// 接收方
//	opened, err := c.OpenJSON(data)
//
// 底层包可以单独使用：
//   - pkg/identity: 身份字符串编解码
//   - pkg/message: 签名消息和载荷编解码
//   - pkg/lib/crypto: Ed25519 签名和密钥存储
package sutera
