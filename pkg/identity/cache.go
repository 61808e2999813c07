package identity

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize 默认缓存条目数
const DefaultCacheSize = 1024

// Cache 身份字符串解析缓存
//
// 只缓存解析成功的结果，失败的输入每次都重新解析并返回相同的错误。
// 并发安全。
type Cache struct {
	entries *lru.Cache[string, Identity]
}

// NewCache 创建解析缓存，size <= 0 时使用 DefaultCacheSize
func NewCache(size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	entries, err := lru.New[string, Identity](size)
	if err != nil {
		return nil, err
	}
	return &Cache{entries: entries}, nil
}

// Parse 解析身份字符串，命中时直接返回缓存结果
func (c *Cache) Parse(s string) (Identity, error) {
	if id, ok := c.entries.Get(s); ok {
		return id, nil
	}
	id, err := Parse(s)
	if err != nil {
		return Identity{}, err
	}
	c.entries.Add(s, id)
	return id, nil
}

// Len 返回缓存条目数
func (c *Cache) Len() int {
	return c.entries.Len()
}

// Purge 清空缓存
func (c *Cache) Purge() {
	c.entries.Purge()
}
