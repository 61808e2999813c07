package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-sutera/internal/testutil/mocks"
	"github.com/dep2p/go-sutera/pkg/identity"
	"github.com/dep2p/go-sutera/pkg/lib/crypto"
)

func TestNew_SignAndVerify(t *testing.T) {
	m := newSignedMessage(t)

	assert.Equal(t, "Hello, Sutera!", m.Message)
	assert.Equal(t, "see2et", m.Author.DisplayName)
	assert.True(t, m.Verify())
}

func TestVerify_MutatedMessage(t *testing.T) {
	m := newSignedMessage(t)
	require.True(t, m.Verify())

	m.Message = "Hello, Sutera?"
	assert.False(t, m.Verify())
}

func TestVerify_MutatedSignature(t *testing.T) {
	m := newSignedMessage(t)
	m.Signature[10] ^= 0x01
	assert.False(t, m.Verify())
}

func TestVerify_WrongAuthorKey(t *testing.T) {
	m := newSignedMessage(t)
	_, other := newAuthor(t, "mallory")

	m.Author = other
	assert.False(t, m.Verify())
}

func TestVerify_Total(t *testing.T) {
	t.Run("ZeroValue", func(t *testing.T) {
		var m SignedMessage
		assert.False(t, m.Verify())
	})

	t.Run("NilMessage", func(t *testing.T) {
		var m *SignedMessage
		assert.False(t, m.Verify())
	})

	t.Run("GarbageKeyAndSignature", func(t *testing.T) {
		m := &SignedMessage{Author: identity.Identity{Kind: identity.KindUser}, Message: "x"}
		for i := range m.Author.PublicKey {
			m.Author.PublicKey[i] = 0xff
		}
		for i := range m.Signature {
			m.Signature[i] = 0xff
		}
		assert.NotPanics(t, func() { assert.False(t, m.Verify()) })
	})

	t.Run("NilVerifier", func(t *testing.T) {
		m := newSignedMessage(t)
		assert.False(t, m.VerifyWith(nil))
	})
}

func TestNew_SigningKeyMismatch(t *testing.T) {
	_, author := newAuthor(t, "alice")
	otherKey, _ := newAuthor(t, "bob")

	m, err := New(author, "hi", otherKey)
	assert.ErrorIs(t, err, ErrSigningKeyMismatch)
	assert.Nil(t, m)
}

func TestNew_NilSigner(t *testing.T) {
	_, author := newAuthor(t, "alice")

	m, err := New(author, "hi", nil)
	assert.ErrorIs(t, err, ErrNilSigner)
	assert.Nil(t, m)
}

func TestNew_SignerError(t *testing.T) {
	signer := fakeSigner{key: crypto.VerifyingKey{1}, err: errSignerBroken}
	author := identity.Identity{Kind: identity.KindUser, PublicKey: signer.key}

	m, err := New(author, "hi", signer)
	assert.ErrorIs(t, err, errSignerBroken)
	assert.Nil(t, m)
}

func TestNew_InjectedSigner(t *testing.T) {
	signer := fakeSigner{key: crypto.VerifyingKey{9, 9, 9}}
	author := identity.Identity{Kind: identity.KindUser, DisplayName: "fake", PublicKey: signer.key}

	m, err := New(author, "deterministic", signer)
	require.NoError(t, err)

	want, _ := signer.Sign([]byte("deterministic"))
	assert.Equal(t, want, m.Signature)

	assert.True(t, m.VerifyWith(fakeVerifier))
	assert.False(t, m.Verify(), "fake signature is not a valid Ed25519 signature")

	m.Message = "changed"
	assert.False(t, m.VerifyWith(fakeVerifier))
}

func TestNew_EmptyMessage(t *testing.T) {
	priv, id := newAuthor(t, "")

	m, err := New(id, "", priv)
	require.NoError(t, err)
	assert.True(t, m.Verify())
}

func TestSignedMessage_String(t *testing.T) {
	m := newSignedMessage(t)
	s := m.String()
	assert.Contains(t, s, m.Author.ShortFingerprint())
	assert.NotContains(t, s, m.Message)

	var nilMsg *SignedMessage
	assert.Equal(t, "<nil>", nilMsg.String())
}

func TestNew_MockSigner(t *testing.T) {
	signer := &mocks.MockSigner{Key: crypto.VerifyingKey{7}, Sig: crypto.Signature{9}}
	author := identity.Identity{Kind: identity.KindUser, PublicKey: signer.Key}

	m, err := New(author, "mocked", signer)
	require.NoError(t, err)
	assert.Equal(t, signer.Sig, m.Signature)
	assert.Equal(t, 1, signer.SignCalls)

	// 密钥不符时不调用 Sign
	other := &mocks.MockSigner{Key: crypto.VerifyingKey{8}}
	_, err = New(author, "mocked", other)
	assert.ErrorIs(t, err, ErrSigningKeyMismatch)
	assert.Zero(t, other.SignCalls)
}

func TestNew_InvalidUTF8(t *testing.T) {
	signer := &mocks.MockSigner{Key: crypto.VerifyingKey{7}}
	author := identity.Identity{Kind: identity.KindUser, PublicKey: signer.Key}

	_, err := New(author, "bad \xff\xfe bytes", signer)
	assert.ErrorIs(t, err, ErrInvalidUTF8)
	assert.Zero(t, signer.SignCalls)

	// 合法的多字节文本经 JSON 往返后仍可验证
	priv, id := newAuthor(t, "see2et")
	m, err := New(id, "你好, Sutera! \u00e9", priv)
	require.NoError(t, err)

	data, err := m.MarshalJSON()
	require.NoError(t, err)
	var decoded SignedMessage
	require.NoError(t, decoded.UnmarshalJSON(data))
	assert.True(t, decoded.Verify())
}
