package author

import (
	"errors"
	"fmt"

	"github.com/dep2p/go-sutera/config"
	"github.com/dep2p/go-sutera/pkg/lib/crypto"
	"github.com/dep2p/go-sutera/pkg/lib/log"
)

var logger = log.Logger("sutera/author")

// ============================================================================
//                              Manager 实现
// ============================================================================

// Manager 作者管理器
//
// 负责在密钥存储中查找、生成和保存签名密钥。
type Manager struct {
	cfg      config.IdentityConfig
	keystore crypto.Keystore
}

// NewManager 按配置创建管理器
//
// KeyStoreDir 为空时使用内存存储。
func NewManager(cfg config.IdentityConfig) (*Manager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var ks crypto.Keystore
	if cfg.KeyStoreDir == "" {
		ks = crypto.NewMemKeystore()
	} else {
		fsks, err := crypto.NewFSKeystore(cfg.KeyStoreDir, []byte(cfg.Password))
		if err != nil {
			return nil, fmt.Errorf("open key store: %w", err)
		}
		ks = fsks
	}
	return NewManagerWithKeystore(cfg, ks), nil
}

// NewManagerWithKeystore 使用指定的密钥存储创建管理器
func NewManagerWithKeystore(cfg config.IdentityConfig, ks crypto.Keystore) *Manager {
	return &Manager{cfg: cfg, keystore: ks}
}

// Keystore 返回底层密钥存储
func (m *Manager) Keystore() crypto.Keystore {
	return m.keystore
}

// Load 从密钥存储加载作者
func (m *Manager) Load() (*Author, error) {
	key, err := m.keystore.Get(m.cfg.KeyID)
	if err != nil {
		return nil, fmt.Errorf("load key %q: %w", m.cfg.KeyID, err)
	}
	return m.fromKey(key)
}

// Create 生成新密钥并保存
//
// 同 ID 的密钥已存在时返回 crypto.ErrKeyExists。
func (m *Manager) Create() (*Author, error) {
	key, _, err := crypto.GenerateKeyPair(crypto.KeyTypeEd25519)
	if err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}
	a, err := m.fromKey(key)
	if err != nil {
		return nil, err
	}
	if err := m.keystore.Put(m.cfg.KeyID, key); err != nil {
		return nil, fmt.Errorf("save key %q: %w", m.cfg.KeyID, err)
	}

	logger.Info("生成新签名密钥", "keyID", m.cfg.KeyID, "fingerprint", a.Identity().ShortFingerprint())
	return a, nil
}

// LoadOrCreate 加载作者，密钥不存在且允许自动生成时创建
func (m *Manager) LoadOrCreate() (*Author, error) {
	a, err := m.Load()
	if err == nil {
		logger.Debug("加载签名密钥", "keyID", m.cfg.KeyID, "fingerprint", a.Identity().ShortFingerprint())
		return a, nil
	}
	if !errors.Is(err, crypto.ErrKeyNotFound) {
		return nil, err
	}
	if !m.cfg.AutoGenerate {
		return nil, ErrNoKey
	}
	return m.Create()
}

func (m *Manager) fromKey(key crypto.PrivateKey) (*Author, error) {
	return New(m.cfg.IdentityKind(), m.cfg.DisplayName, key)
}
