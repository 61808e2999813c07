package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/multierr"

	"github.com/dep2p/go-sutera/pkg/identity"
	"github.com/dep2p/go-sutera/pkg/lib/crypto"
)

// DefaultKeyID 默认密钥 ID
const DefaultKeyID = "default"

// IdentityConfig 身份配置
//
// 管理本地作者的身份和签名密钥：
//   - 身份类别和显示名
//   - 密钥存储目录和密钥 ID
//   - 密钥文件加密口令
type IdentityConfig struct {
	// Kind 身份类别，目前只支持 "user"
	Kind string `json:"kind" envconfig:"kind"`

	// DisplayName 显示名，可选，只允许 ASCII 字母和数字
	DisplayName string `json:"display_name,omitempty" envconfig:"display_name"`

	// KeyStoreDir 密钥存储目录
	// 如果为空，将使用内存存储（进程退出后密钥丢失）
	KeyStoreDir string `json:"key_store_dir" envconfig:"key_store_dir"`

	// KeyID 密钥 ID，即存储目录下的文件名
	KeyID string `json:"key_id" envconfig:"key_id"`

	// AutoGenerate 当密钥不存在时是否自动生成
	AutoGenerate bool `json:"auto_generate" envconfig:"auto_generate"`

	// Password 密钥文件加密口令，只从环境变量或命令行读取
	Password string `json:"-" envconfig:"password"`
}

// DefaultIdentityConfig 返回默认身份配置
func DefaultIdentityConfig() IdentityConfig {
	return IdentityConfig{
		Kind:         identity.KindUser.String(),
		KeyStoreDir:  defaultKeyStoreDir(),
		KeyID:        DefaultKeyID,
		AutoGenerate: true,
	}
}

func defaultKeyStoreDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "sutera", "keys")
}

// Validate 验证身份配置
func (c IdentityConfig) Validate() error {
	var err error

	kind, ok := identity.ParseKind(c.Kind)
	if !ok {
		err = multierr.Append(err, fmt.Errorf("identity.kind: %q is not supported", c.Kind))
		kind = identity.KindUser
	}

	if c.DisplayName != "" {
		if _, nerr := identity.New(kind, c.DisplayName, crypto.VerifyingKey{}); nerr != nil {
			err = multierr.Append(err, fmt.Errorf("identity.display_name: %w", nerr))
		}
	}

	if c.KeyID == "" {
		err = multierr.Append(err, errors.New("identity.key_id: must not be empty"))
	} else if filepath.Base(c.KeyID) != c.KeyID {
		err = multierr.Append(err, fmt.Errorf("identity.key_id: %q must be a plain file name", c.KeyID))
	}

	return err
}

// IdentityKind 返回解析后的身份类别
func (c IdentityConfig) IdentityKind() identity.Kind {
	kind, _ := identity.ParseKind(c.Kind)
	return kind
}

// WithKind 设置身份类别
func (c IdentityConfig) WithKind(kind identity.Kind) IdentityConfig {
	c.Kind = kind.String()
	return c
}

// WithDisplayName 设置显示名
func (c IdentityConfig) WithDisplayName(name string) IdentityConfig {
	c.DisplayName = name
	return c
}

// WithKeyStoreDir 设置密钥存储目录
func (c IdentityConfig) WithKeyStoreDir(dir string) IdentityConfig {
	c.KeyStoreDir = dir
	return c
}

// WithKeyID 设置密钥 ID
func (c IdentityConfig) WithKeyID(id string) IdentityConfig {
	c.KeyID = id
	return c
}

// WithAutoGenerate 设置是否自动生成密钥
func (c IdentityConfig) WithAutoGenerate(auto bool) IdentityConfig {
	c.AutoGenerate = auto
	return c
}

// WithPassword 设置密钥文件加密口令
func (c IdentityConfig) WithPassword(password string) IdentityConfig {
	c.Password = password
	return c
}
