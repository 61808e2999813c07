package identity

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-sutera/pkg/lib/crypto"
)

var zeroKeyHex = strings.Repeat("0", PublicKeyHexSize)

func randomKey(t *testing.T) crypto.VerifyingKey {
	t.Helper()
	var k crypto.VerifyingKey
	_, err := rand.Read(k[:])
	require.NoError(t, err)
	return k
}

// ============================================================================
// 序列化
// ============================================================================

func TestIdentity_String(t *testing.T) {
	t.Run("WithoutDisplayName", func(t *testing.T) {
		id := Identity{Kind: KindUser}
		assert.Equal(t, "user.sutera-identity-v1."+zeroKeyHex, id.String())
	})

	t.Run("WithDisplayName", func(t *testing.T) {
		id := Identity{Kind: KindUser, DisplayName: "see2et"}
		assert.Equal(t, "user@see2et.sutera-identity-v1."+zeroKeyHex, id.String())
	})

	t.Run("LowercaseZeroPaddedHex", func(t *testing.T) {
		var k crypto.VerifyingKey
		k[0], k[1], k[31] = 0xAB, 0x01, 0xEF
		s := Identity{Kind: KindUser, DisplayName: "alice", PublicKey: k}.String()

		require.True(t, strings.HasPrefix(s, "user@alice.sutera-identity-v1.ab01"))
		assert.True(t, strings.HasSuffix(s, "ef"))
		assert.Len(t, s, len("user@alice.sutera-identity-v1.")+PublicKeyHexSize)
	})
}

// ============================================================================
// 往返
// ============================================================================

func TestIdentity_RoundTrip(t *testing.T) {
	names := []string{"", "alice", "Bob42", "0", "ABCdef0123456789"}

	for _, name := range names {
		t.Run("name="+name, func(t *testing.T) {
			id, err := New(KindUser, name, randomKey(t))
			require.NoError(t, err)

			parsed, err := Parse(id.String())
			require.NoError(t, err)
			assert.Equal(t, id, parsed)
		})
	}
}

func TestParse_UppercaseHexAccepted(t *testing.T) {
	id := Identity{Kind: KindUser, DisplayName: "alice", PublicKey: randomKey(t)}
	text := id.String()
	head := text[:len(text)-PublicKeyHexSize]
	upper := head + strings.ToUpper(text[len(head):])

	parsed, err := Parse(upper)
	require.NoError(t, err)
	assert.Equal(t, id, parsed)
	assert.Equal(t, text, parsed.String(), "output is always canonical lowercase")
}

// ============================================================================
// 解析错误
// ============================================================================

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  ErrorCode
		found string
	}{
		{"version mismatch", "see2et.sutera-identity-v2.xxxxxx", CodeVersionMismatch, "sutera-identity-v2"},
		{"version mismatch short key", "see2et.sutera-identity-v2.xxx", CodeVersionMismatch, "sutera-identity-v2"},
		{"two segments", "user.sutera-identity-v1", CodeInvalidFormat, ""},
		{"one segment", "user", CodeInvalidFormat, ""},
		{"four segments", "user.sutera-identity-v1." + zeroKeyHex + ".x", CodeInvalidFormat, ""},
		{"empty input", "", CodeInvalidFormat, ""},
		{"dot in display name", "user@a.b.sutera-identity-v1." + zeroKeyHex, CodeInvalidFormat, ""},
		{"missing kind segment", "sutera-identity-v1." + zeroKeyHex, CodeInvalidFormat, ""},
		{"empty kind segment", ".sutera-identity-v1." + zeroKeyHex, CodeInvalidFormat, ""},
		{"short key", "user.sutera-identity-v1.abc", CodeInvalidFormat, ""},
		{"long key", "user.sutera-identity-v1." + zeroKeyHex + "00", CodeInvalidFormat, ""},
		{"non-hex key", "user.sutera-identity-v1.x" + zeroKeyHex[1:], CodeInvalidFormat, ""},
		{"non-hex key with name", "user@see2et.sutera-identity-v1.x" + zeroKeyHex[1:], CodeInvalidFormat, ""},
		{"unknown kind", "unknown.sutera-identity-v1." + zeroKeyHex, CodeUnsupportedKind, "unknown"},
		{"unknown kind with name", "unknown@hello.sutera-identity-v1." + zeroKeyHex, CodeUnsupportedKind, "unknown"},
		{"kind is case sensitive", "User.sutera-identity-v1." + zeroKeyHex, CodeUnsupportedKind, "User"},
		{"empty kind before name", "@alice.sutera-identity-v1." + zeroKeyHex, CodeUnsupportedKind, ""},
		{"empty display name", "user@.sutera-identity-v1." + zeroKeyHex, CodeInvalidFormat, ""},
		{"non-alphanumeric display name", "user@al-ice.sutera-identity-v1." + zeroKeyHex, CodeInvalidFormat, ""},
		{"second @ in display name", "user@a@b.sutera-identity-v1." + zeroKeyHex, CodeInvalidFormat, ""},
		{"non-ascii display name", "user@álice.sutera-identity-v1." + zeroKeyHex, CodeInvalidFormat, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.Error(t, err)

			var perr *ParseError
			require.True(t, errors.As(err, &perr), "error should be *ParseError, got %T", err)
			assert.Equal(t, tt.code, perr.Code)
			assert.Equal(t, tt.found, perr.Found)
		})
	}
}

// 检查顺序：结构性检查优先于 kind 查找，kind 查找优先于十六进制解码
func TestParse_CheckOrder(t *testing.T) {
	t.Run("VersionBeforeKind", func(t *testing.T) {
		_, err := Parse("unknown.sutera-identity-v9." + zeroKeyHex)
		assert.ErrorIs(t, err, ErrVersionMismatch)
	})

	t.Run("KeyLengthBeforeKind", func(t *testing.T) {
		_, err := Parse("unknown.sutera-identity-v1.abc")
		assert.ErrorIs(t, err, ErrInvalidFormat)
	})

	t.Run("KindBeforeHexDecode", func(t *testing.T) {
		_, err := Parse("unknown.sutera-identity-v1.x" + zeroKeyHex[1:])
		assert.ErrorIs(t, err, ErrUnsupportedKind)
	})

	t.Run("HexDecodeBeforeDisplayName", func(t *testing.T) {
		_, err := Parse("user@bad-name.sutera-identity-v1.x" + zeroKeyHex[1:])
		var perr *ParseError
		require.ErrorAs(t, err, &perr)
		assert.Contains(t, perr.Reason, "hex")
	})
}

func TestParseError_Sentinels(t *testing.T) {
	_, err := Parse("user.sutera-identity-v2." + zeroKeyHex)
	assert.ErrorIs(t, err, ErrVersionMismatch)
	assert.NotErrorIs(t, err, ErrInvalidFormat)
	assert.Contains(t, err.Error(), "sutera-identity-v2")

	_, err = Parse("bot.sutera-identity-v1." + zeroKeyHex)
	assert.ErrorIs(t, err, ErrUnsupportedKind)
	assert.Contains(t, err.Error(), "bot")

	_, err = Parse("nonsense")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

// ============================================================================
// 构造与校验
// ============================================================================

func TestNew(t *testing.T) {
	key := randomKey(t)

	id, err := New(KindUser, "alice", key)
	require.NoError(t, err)
	assert.Equal(t, KindUser, id.Kind)
	assert.Equal(t, "alice", id.DisplayName)
	assert.Equal(t, key, id.PublicKey)
	assert.True(t, id.HasDisplayName())

	anon, err := New(KindUser, "", key)
	require.NoError(t, err)
	assert.False(t, anon.HasDisplayName())

	_, err = New(KindUser, "not valid", key)
	assert.ErrorIs(t, err, ErrInvalidDisplayName)

	_, err = New(KindUnspecified, "alice", key)
	assert.ErrorIs(t, err, ErrUnsupportedKind)

	_, err = New(Kind(200), "", key)
	assert.ErrorIs(t, err, ErrUnsupportedKind)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "Kind(200)", pe.Found)
	assert.Contains(t, err.Error(), "Kind(200)")
}

func TestFromSigner(t *testing.T) {
	priv, pub, err := crypto.GenerateKeyPair(crypto.KeyTypeEd25519)
	require.NoError(t, err)

	id, err := FromSigner(KindUser, "alice", priv)
	require.NoError(t, err)
	assert.Equal(t, pub.VerifyingKey(), id.PublicKey)

	_, err = FromSigner(KindUser, "alice", nil)
	assert.Error(t, err)
}

func TestMustParse(t *testing.T) {
	assert.NotPanics(t, func() { MustParse("user.sutera-identity-v1." + zeroKeyHex) })
	assert.Panics(t, func() { MustParse("user") })
}

// ============================================================================
// 文本编码
// ============================================================================

func TestIdentity_JSON(t *testing.T) {
	type envelope struct {
		Who Identity `json:"who"`
	}

	in := envelope{Who: Identity{Kind: KindUser, DisplayName: "alice", PublicKey: randomKey(t)}}
	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"who":"user@alice.sutera-identity-v1.`)

	var out envelope
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)

	err = json.Unmarshal([]byte(`{"who":"user.sutera-identity-v2.x"}`), &out)
	assert.ErrorIs(t, err, ErrVersionMismatch)
}

// ============================================================================
// Kind
// ============================================================================

func TestKind(t *testing.T) {
	for _, k := range Kinds() {
		parsed, ok := ParseKind(k.String())
		require.True(t, ok, "ParseKind(%q)", k.String())
		assert.Equal(t, k, parsed)
		assert.True(t, k.Valid())
	}

	_, ok := ParseKind("USER")
	assert.False(t, ok)
	assert.False(t, KindUnspecified.Valid())
	assert.Equal(t, "", KindUnspecified.String())
}

// ============================================================================
// 指纹
// ============================================================================

func TestIdentity_Fingerprint(t *testing.T) {
	key := randomKey(t)
	a := Identity{Kind: KindUser, DisplayName: "alice", PublicKey: key}
	b := Identity{Kind: KindUser, PublicKey: key}

	assert.Equal(t, a.Fingerprint(), b.Fingerprint(), "fingerprint depends only on the key")
	assert.NotEmpty(t, a.Fingerprint())
	assert.Len(t, a.ShortFingerprint(), 8)

	c := Identity{Kind: KindUser, PublicKey: randomKey(t)}
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
}
