package author

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-sutera/config"
	"github.com/dep2p/go-sutera/internal/testutil/mocks"
	"github.com/dep2p/go-sutera/pkg/lib/crypto"
)

func testIdentityConfig(t *testing.T) config.IdentityConfig {
	t.Helper()
	return config.DefaultIdentityConfig().
		WithKeyStoreDir(t.TempDir()).
		WithDisplayName("alice")
}

func TestManager_LoadOrCreate_Persists(t *testing.T) {
	cfg := testIdentityConfig(t)

	m1, err := NewManager(cfg)
	require.NoError(t, err)
	a1, err := m1.LoadOrCreate()
	require.NoError(t, err)

	// 同一目录再次加载得到同一身份
	m2, err := NewManager(cfg)
	require.NoError(t, err)
	a2, err := m2.LoadOrCreate()
	require.NoError(t, err)

	assert.Equal(t, a1.Identity(), a2.Identity())

	ids, err := m2.Keystore().List()
	require.NoError(t, err)
	assert.Equal(t, []string{config.DefaultKeyID}, ids)
}

func TestManager_EncryptedKeystore(t *testing.T) {
	cfg := testIdentityConfig(t).WithPassword("correct horse")

	m, err := NewManager(cfg)
	require.NoError(t, err)
	a, err := m.Create()
	require.NoError(t, err)

	loaded, err := mustManager(t, cfg).Load()
	require.NoError(t, err)
	assert.Equal(t, a.Identity(), loaded.Identity())

	_, err = mustManager(t, cfg.WithPassword("wrong")).Load()
	assert.ErrorIs(t, err, crypto.ErrDecryptionFailed)
}

func TestManager_NoAutoGenerate(t *testing.T) {
	cfg := testIdentityConfig(t).WithAutoGenerate(false)

	_, err := mustManager(t, cfg).LoadOrCreate()
	assert.ErrorIs(t, err, ErrNoKey)
}

func TestManager_CreateTwice(t *testing.T) {
	m := NewManagerWithKeystore(config.DefaultIdentityConfig(), crypto.NewMemKeystore())

	_, err := m.Create()
	require.NoError(t, err)

	_, err = m.Create()
	assert.ErrorIs(t, err, crypto.ErrKeyExists)
}

func TestManager_MemoryKeystore(t *testing.T) {
	cfg := config.DefaultIdentityConfig().WithKeyStoreDir("")

	m, err := NewManager(cfg)
	require.NoError(t, err)
	assert.IsType(t, &crypto.MemKeystore{}, m.Keystore())

	a, err := m.LoadOrCreate()
	require.NoError(t, err)
	assert.False(t, a.Identity().HasDisplayName())
}

func TestNewManager_InvalidConfig(t *testing.T) {
	_, err := NewManager(config.DefaultIdentityConfig().WithKeyID(""))
	assert.Error(t, err)
}

func mustManager(t *testing.T, cfg config.IdentityConfig) *Manager {
	t.Helper()
	m, err := NewManager(cfg)
	require.NoError(t, err)
	return m
}

func TestManager_KeystoreErrors(t *testing.T) {
	errDisk := errors.New("disk failure")

	t.Run("Get", func(t *testing.T) {
		ks := mocks.NewMockKeystore()
		ks.GetFunc = func(string) (crypto.PrivateKey, error) { return nil, errDisk }

		_, err := NewManagerWithKeystore(config.DefaultIdentityConfig(), ks).LoadOrCreate()
		assert.ErrorIs(t, err, errDisk)
		assert.Zero(t, ks.PutCalls)
	})

	t.Run("Put", func(t *testing.T) {
		ks := mocks.NewMockKeystore()
		ks.PutFunc = func(string, crypto.PrivateKey) error { return errDisk }

		_, err := NewManagerWithKeystore(config.DefaultIdentityConfig(), ks).LoadOrCreate()
		assert.ErrorIs(t, err, errDisk)
		assert.Equal(t, 1, ks.GetCalls)
		assert.Equal(t, 1, ks.PutCalls)
	})
}
