package config

import (
	"fmt"

	"github.com/dep2p/go-sutera/pkg/lib/log"
)

// LogConfig 日志配置
type LogConfig struct {
	// Level 日志级别: debug / info / warn / error
	Level string `json:"level" envconfig:"level"`

	// Format 输出格式: text / json
	Format string `json:"format" envconfig:"format"`
}

// DefaultLogConfig 返回默认日志配置
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:  "info",
		Format: string(log.FormatText),
	}
}

// Validate 验证日志配置
func (c LogConfig) Validate() error {
	if _, err := log.ParseLevel(c.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if _, err := log.ParseFormat(c.Format); err != nil {
		return fmt.Errorf("log.format: %w", err)
	}
	return nil
}

// WithLevel 设置日志级别
func (c LogConfig) WithLevel(level string) LogConfig {
	c.Level = level
	return c
}

// WithFormat 设置输出格式
func (c LogConfig) WithFormat(format string) LogConfig {
	c.Format = format
	return c
}
