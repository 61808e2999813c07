package crypto

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// ============================================================================
//                              Keystore 接口
// ============================================================================

// Keystore 密钥存储接口
type Keystore interface {
	// Has 检查是否存在指定 ID 的密钥
	Has(id string) (bool, error)

	// Put 存储密钥，ID 已存在时返回 ErrKeyExists
	Put(id string, key PrivateKey) error

	// Get 获取密钥
	Get(id string) (PrivateKey, error)

	// Delete 删除密钥
	Delete(id string) error

	// List 列出所有密钥 ID（已排序）
	List() ([]string, error)
}

// validateKeyID 密钥 ID 只能是单个文件名片段
func validateKeyID(id string) error {
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidKeyID, id)
	}
	return nil
}

// ============================================================================
//                              文件系统密钥存储
// ============================================================================

// FSKeystore 每个密钥一个 <id>.key 文件，格式见 keyfile.go
type FSKeystore struct {
	dir      string
	password []byte
}

var _ Keystore = (*FSKeystore)(nil)

// NewFSKeystore 创建文件系统密钥存储
//
// dir 不存在时以 0700 创建；password 为空时密钥以明文保存。
func NewFSKeystore(dir string, password []byte) (*FSKeystore, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create keystore dir: %w", err)
	}
	return &FSKeystore{dir: dir, password: password}, nil
}

// Dir 返回存储目录
func (ks *FSKeystore) Dir() string {
	return ks.dir
}

// Has 检查是否存在指定 ID 的密钥
func (ks *FSKeystore) Has(id string) (bool, error) {
	path, err := ks.path(id)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}

// Put 存储密钥
//
// 先写临时文件再硬链接到目标名，目标已存在时链接失败并返回 ErrKeyExists，
// 已有密钥文件不会被覆盖。
func (ks *FSKeystore) Put(id string, key PrivateKey) error {
	if key == nil {
		return ErrNilPrivateKey
	}
	path, err := ks.path(id)
	if err != nil {
		return err
	}
	data, err := sealKeyFile(key, ks.password)
	if err != nil {
		return err
	}
	defer SecureZero(data)

	tmp, err := writeTemp(ks.dir, data)
	if err != nil {
		return err
	}
	defer os.Remove(tmp)

	if err := os.Link(tmp, path); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return ErrKeyExists
		}
		return fmt.Errorf("link key file: %w", err)
	}
	return nil
}

// Get 获取密钥
func (ks *FSKeystore) Get(id string) (PrivateKey, error) {
	path, err := ks.path(id)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, err
	}
	defer SecureZero(data)
	return openKeyFile(data, ks.password)
}

// Delete 删除密钥
func (ks *FSKeystore) Delete(id string) error {
	path, err := ks.path(id)
	if err != nil {
		return err
	}
	err = os.Remove(path)
	if errors.Is(err, fs.ErrNotExist) {
		return ErrKeyNotFound
	}
	return err
}

// List 列出所有密钥 ID
func (ks *FSKeystore) List() ([]string, error) {
	entries, err := os.ReadDir(ks.dir)
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.Type().IsRegular() && strings.HasSuffix(name, keyFileExt) {
			ids = append(ids, strings.TrimSuffix(name, keyFileExt))
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (ks *FSKeystore) path(id string) (string, error) {
	if err := validateKeyID(id); err != nil {
		return "", err
	}
	return filepath.Join(ks.dir, id+keyFileExt), nil
}

// writeTemp 在 dir 下写入并落盘一个 0600 临时文件，返回其路径
func writeTemp(dir string, data []byte) (string, error) {
	f, err := os.CreateTemp(dir, ".tmp-key-")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	name := f.Name()

	_, err = f.Write(data)
	if err == nil {
		err = f.Sync()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(name)
		return "", fmt.Errorf("write temp file: %w", err)
	}
	return name, nil
}

// ============================================================================
//                              内存密钥存储
// ============================================================================

// MemKeystore 内存密钥存储
//
// 未配置存储目录时使用，进程退出后密钥丢失。
type MemKeystore struct {
	mu   sync.RWMutex
	keys map[string]PrivateKey
}

var _ Keystore = (*MemKeystore)(nil)

// NewMemKeystore 创建内存密钥存储
func NewMemKeystore() *MemKeystore {
	return &MemKeystore{keys: make(map[string]PrivateKey)}
}

// Has 检查是否存在指定 ID 的密钥
func (ks *MemKeystore) Has(id string) (bool, error) {
	ks.mu.RLock()
	defer ks.mu.RUnlock()
	_, ok := ks.keys[id]
	return ok, nil
}

// Put 存储密钥
func (ks *MemKeystore) Put(id string, key PrivateKey) error {
	if err := validateKeyID(id); err != nil {
		return err
	}
	if key == nil {
		return ErrNilPrivateKey
	}
	ks.mu.Lock()
	defer ks.mu.Unlock()
	if _, ok := ks.keys[id]; ok {
		return ErrKeyExists
	}
	ks.keys[id] = key
	return nil
}

// Get 获取密钥
func (ks *MemKeystore) Get(id string) (PrivateKey, error) {
	ks.mu.RLock()
	defer ks.mu.RUnlock()
	key, ok := ks.keys[id]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return key, nil
}

// Delete 删除密钥
func (ks *MemKeystore) Delete(id string) error {
	ks.mu.Lock()
	defer ks.mu.Unlock()
	if _, ok := ks.keys[id]; !ok {
		return ErrKeyNotFound
	}
	delete(ks.keys, id)
	return nil
}

// List 列出所有密钥 ID
func (ks *MemKeystore) List() ([]string, error) {
	ks.mu.RLock()
	defer ks.mu.RUnlock()
	ids := make([]string, 0, len(ks.keys))
	for id := range ks.keys {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
