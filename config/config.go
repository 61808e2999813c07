// Package config 提供统一的配置管理
//
// 本包采用分层配置模式：
//   - 主 Config 结构体嵌入所有子配置
//   - 每个子配置在独立文件中定义
//   - 支持从 JSON 加载和保存配置
//   - 支持 SUTERA_ 前缀的环境变量覆盖
//
// 使用示例：
//
//	cfg := config.NewConfig()
//	cfg.Identity = cfg.Identity.WithDisplayName("alice")
//
//	// 从文件加载，再应用环境变量
//	cfg, err := config.LoadFile("sutera.json")
//	if err == nil {
//	    err = cfg.ApplyEnv()
//	}
package config

import (
	"go.uber.org/multierr"
)

// Config 是 Sutera 的完整配置结构
//
//   - Identity: 本地作者身份和密钥存储
//   - Log: 日志输出
type Config struct {
	// Identity 身份配置
	Identity IdentityConfig `json:"identity" envconfig:"identity"`

	// Log 日志配置
	Log LogConfig `json:"log" envconfig:"log"`
}

// NewConfig 创建默认配置
func NewConfig() *Config {
	return &Config{
		Identity: DefaultIdentityConfig(),
		Log:      DefaultLogConfig(),
	}
}

// Validate 验证配置的有效性
//
// 汇总所有子配置的错误一并返回。
func (c *Config) Validate() error {
	return multierr.Combine(
		c.Identity.Validate(),
		c.Log.Validate(),
	)
}
