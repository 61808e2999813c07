package sutera

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/fx"

	"github.com/dep2p/go-sutera/config"
)

// Option 用户配置选项函数
type Option func(*options) error

// options 内部选项结构
type options struct {
	config     *config.Config
	configFile string
	applyEnv   bool

	// 覆盖配置文件中的值
	keyStoreDir *string
	keyID       string
	displayName *string
	password    *string
	autoGen     *bool

	// 非空时按生效配置设置默认 logger
	logOutput io.Writer

	fxOptions []fx.Option
}

func newOptions() *options {
	return &options{applyEnv: true}
}

// WithConfig 使用已有配置
func WithConfig(cfg *config.Config) Option {
	return func(o *options) error {
		if cfg == nil {
			return errors.New("config is nil")
		}
		o.config = cfg
		return nil
	}
}

// WithConfigFile 从 JSON 文件加载配置
func WithConfigFile(path string) Option {
	return func(o *options) error {
		o.configFile = path
		return nil
	}
}

// WithoutEnv 不应用 SUTERA_ 环境变量
func WithoutEnv() Option {
	return func(o *options) error {
		o.applyEnv = false
		return nil
	}
}

// WithKeyStoreDir 设置密钥存储目录，空字符串表示内存存储
func WithKeyStoreDir(dir string) Option {
	return func(o *options) error {
		o.keyStoreDir = &dir
		return nil
	}
}

// WithKeyID 设置密钥 ID
func WithKeyID(id string) Option {
	return func(o *options) error {
		o.keyID = id
		return nil
	}
}

// WithDisplayName 设置显示名
func WithDisplayName(name string) Option {
	return func(o *options) error {
		o.displayName = &name
		return nil
	}
}

// WithPassword 设置密钥文件加密口令
func WithPassword(password string) Option {
	return func(o *options) error {
		o.password = &password
		return nil
	}
}

// WithAutoGenerate 设置密钥不存在时是否自动生成
func WithAutoGenerate(auto bool) Option {
	return func(o *options) error {
		o.autoGen = &auto
		return nil
	}
}

// WithLogOutput 按生效配置的 log.level / log.format 设置全局 logger，输出到 w
//
// 未使用此选项时客户端不改动全局 logger。
func WithLogOutput(w io.Writer) Option {
	return func(o *options) error {
		if w == nil {
			return errors.New("log output is nil")
		}
		o.logOutput = w
		return nil
	}
}

// WithFxOption 追加自定义 Fx 选项
func WithFxOption(opts ...fx.Option) Option {
	return func(o *options) error {
		o.fxOptions = append(o.fxOptions, opts...)
		return nil
	}
}

// LoadConfig 按选项合并出生效配置，不创建客户端
func LoadConfig(opts ...Option) (*config.Config, error) {
	o, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}
	return o.buildConfig()
}

func applyOptions(opts []Option) (*options, error) {
	o := newOptions()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// buildConfig 合并配置来源
//
// 优先级（从高到低）：
//  1. Option 覆盖
//  2. 环境变量（SUTERA_* 前缀）
//  3. 配置文件 / WithConfig
//  4. 默认值
func (o *options) buildConfig() (*config.Config, error) {
	var cfg *config.Config
	switch {
	case o.config != nil:
		cfg = config.CloneConfig(o.config)
	case o.configFile != "":
		loaded, err := config.LoadFile(o.configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	default:
		cfg = config.NewConfig()
	}

	if o.applyEnv {
		if err := cfg.ApplyEnv(); err != nil {
			return nil, err
		}
	}

	if o.keyStoreDir != nil {
		cfg.Identity.KeyStoreDir = *o.keyStoreDir
	}
	if o.keyID != "" {
		cfg.Identity.KeyID = o.keyID
	}
	if o.displayName != nil {
		cfg.Identity.DisplayName = *o.displayName
	}
	if o.password != nil {
		cfg.Identity.Password = *o.password
	}
	if o.autoGen != nil {
		cfg.Identity.AutoGenerate = *o.autoGen
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}
