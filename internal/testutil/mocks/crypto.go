package mocks

import (
	"sync"

	"github.com/dep2p/go-sutera/pkg/lib/crypto"
)

// ============================================================================
//                              MockSigner
// ============================================================================

// MockSigner 模拟 crypto.Signer
type MockSigner struct {
	// 基本属性
	Key crypto.VerifyingKey
	Sig crypto.Signature

	// 可覆盖的方法
	VerifyingKeyFunc func() crypto.VerifyingKey
	SignFunc         func(data []byte) (crypto.Signature, error)

	// 调用记录
	SignCalls int
}

var _ crypto.Signer = (*MockSigner)(nil)

// VerifyingKey 返回验证密钥
func (m *MockSigner) VerifyingKey() crypto.VerifyingKey {
	if m.VerifyingKeyFunc != nil {
		return m.VerifyingKeyFunc()
	}
	return m.Key
}

// Sign 签名数据
func (m *MockSigner) Sign(data []byte) (crypto.Signature, error) {
	m.SignCalls++
	if m.SignFunc != nil {
		return m.SignFunc(data)
	}
	return m.Sig, nil
}

// ============================================================================
//                              MockKeystore
// ============================================================================

// MockKeystore 模拟 crypto.Keystore
//
// 默认行为与内存存储相同。
type MockKeystore struct {
	// 可覆盖的方法
	HasFunc    func(id string) (bool, error)
	PutFunc    func(id string, key crypto.PrivateKey) error
	GetFunc    func(id string) (crypto.PrivateKey, error)
	DeleteFunc func(id string) error
	ListFunc   func() ([]string, error)

	// 调用记录
	PutCalls int
	GetCalls int

	mu    sync.Mutex
	inner *crypto.MemKeystore
}

var _ crypto.Keystore = (*MockKeystore)(nil)

// NewMockKeystore 创建 MockKeystore
func NewMockKeystore() *MockKeystore {
	return &MockKeystore{inner: crypto.NewMemKeystore()}
}

// Has 检查密钥是否存在
func (m *MockKeystore) Has(id string) (bool, error) {
	if m.HasFunc != nil {
		return m.HasFunc(id)
	}
	return m.inner.Has(id)
}

// Put 存储密钥
func (m *MockKeystore) Put(id string, key crypto.PrivateKey) error {
	m.mu.Lock()
	m.PutCalls++
	m.mu.Unlock()
	if m.PutFunc != nil {
		return m.PutFunc(id, key)
	}
	return m.inner.Put(id, key)
}

// Get 获取密钥
func (m *MockKeystore) Get(id string) (crypto.PrivateKey, error) {
	m.mu.Lock()
	m.GetCalls++
	m.mu.Unlock()
	if m.GetFunc != nil {
		return m.GetFunc(id)
	}
	return m.inner.Get(id)
}

// Delete 删除密钥
func (m *MockKeystore) Delete(id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(id)
	}
	return m.inner.Delete(id)
}

// List 列出密钥 ID
func (m *MockKeystore) List() ([]string, error) {
	if m.ListFunc != nil {
		return m.ListFunc()
	}
	return m.inner.List()
}
