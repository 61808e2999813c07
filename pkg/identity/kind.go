package identity

// Kind 身份类别
//
// 封闭集合。新增类别时只需在常量、String 和 kinds 中各加一行。
type Kind uint8

const (
	// KindUnspecified 零值，不是合法类别
	KindUnspecified Kind = iota
	// KindUser 用户
	KindUser
)

// kinds 所有已知类别（不含零值）
var kinds = []Kind{KindUser}

// kindByToken 文本标记到类别的映射
var kindByToken = func() map[string]Kind {
	m := make(map[string]Kind, len(kinds))
	for _, k := range kinds {
		m[k.String()] = k
	}
	return m
}()

// String 返回类别的规范文本标记
func (k Kind) String() string {
	switch k {
	case KindUser:
		return "user"
	default:
		return ""
	}
}

// Valid 是否为已知类别
func (k Kind) Valid() bool {
	_, ok := kindByToken[k.String()]
	return ok
}

// ParseKind 按文本标记查找类别（区分大小写，精确匹配）
func ParseKind(token string) (Kind, bool) {
	k, ok := kindByToken[token]
	return k, ok
}

// Kinds 返回所有已知类别
func Kinds() []Kind {
	out := make([]Kind, len(kinds))
	copy(out, kinds)
	return out
}
