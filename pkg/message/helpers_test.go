package message

import (
	"crypto/sha256"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-sutera/pkg/identity"
	"github.com/dep2p/go-sutera/pkg/lib/crypto"
)

// ============================================================================
// 测试辅助
// ============================================================================

// fakeSigner 确定性假签名器：签名 = 公钥 || SHA256(数据)
type fakeSigner struct {
	key crypto.VerifyingKey
	err error
}

func (s fakeSigner) VerifyingKey() crypto.VerifyingKey { return s.key }

func (s fakeSigner) Sign(data []byte) (crypto.Signature, error) {
	if s.err != nil {
		return crypto.Signature{}, s.err
	}
	var sig crypto.Signature
	sum := sha256.Sum256(data)
	copy(sig[:32], s.key[:])
	copy(sig[32:], sum[:])
	return sig, nil
}

// fakeVerifier 与 fakeSigner 配套的验证器
var fakeVerifier = crypto.VerifierFunc(func(key crypto.VerifyingKey, data []byte, sig crypto.Signature) bool {
	want, _ := fakeSigner{key: key}.Sign(data)
	return want == sig
})

var errSignerBroken = errors.New("signer broken")

// newAuthor 生成 Ed25519 私钥和对应身份
func newAuthor(t *testing.T, name string) (crypto.PrivateKey, identity.Identity) {
	t.Helper()
	priv, _, err := crypto.GenerateKeyPair(crypto.KeyTypeEd25519)
	require.NoError(t, err)

	id, err := identity.FromSigner(identity.KindUser, name, priv)
	require.NoError(t, err)
	return priv, id
}

// newSignedMessage 生成一条真实签名的消息
func newSignedMessage(t *testing.T) *SignedMessage {
	t.Helper()
	priv, id := newAuthor(t, "see2et")
	m, err := New(id, "Hello, Sutera!", priv)
	require.NoError(t, err)
	return m
}
