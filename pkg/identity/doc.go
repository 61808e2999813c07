// Package identity 实现 Sutera 身份的规范文本编解码
//
// 身份字符串格式：
//
//	<kind>[@<display_name>].sutera-identity-v1.<64 位小写十六进制公钥>
//
// 示例：
//
//	user.sutera-identity-v1.0000…00
//	user@alice.sutera-identity-v1.ab01…ef
//
// # 解析顺序
//
// 错误类型是可观察契约的一部分，检查严格按以下顺序进行：
//
//  1. 以 '.' 分割必须恰好三段，否则 ErrInvalidFormat
//  2. 第一段非空，否则 ErrInvalidFormat
//  3. 第二段等于版本标记，否则 ErrVersionMismatch
//  4. 第三段长度为 64，否则 ErrInvalidFormat
//  5. kind 在已知集合中，否则 ErrUnsupportedKind
//  6. 第三段可按十六进制解码，否则 ErrInvalidFormat
//  7. 显示名（若有）非空且仅含 ASCII 字母数字，否则 ErrInvalidFormat
//
// 所有解析错误都是 *ParseError，可用 errors.Is 与对应哨兵错误比较，
// 并通过 Found 字段取得出错的片段。
//
// # 使用示例
//
//	id, err := identity.New(identity.KindUser, "alice", priv.VerifyingKey())
//	text := id.String()
//
//	parsed, err := identity.Parse(text)
//	var perr *identity.ParseError
//	if errors.As(err, &perr) && perr.Code == identity.CodeVersionMismatch {
//	    fmt.Println("unsupported version:", perr.Found)
//	}
//
// 本包不做任何 I/O，不打日志；Identity 为不可变值类型，可在 goroutine 间自由共享。
package identity
