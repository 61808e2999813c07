package author

import (
	"github.com/dep2p/go-sutera/pkg/identity"
	"github.com/dep2p/go-sutera/pkg/lib/crypto"
	"github.com/dep2p/go-sutera/pkg/message"
)

// Author 本地作者
//
// 身份的公钥总是由签名密钥派生，二者不会不一致。
type Author struct {
	id  identity.Identity
	key crypto.PrivateKey
}

// New 用签名密钥创建作者
func New(kind identity.Kind, displayName string, key crypto.PrivateKey) (*Author, error) {
	if key == nil {
		return nil, crypto.ErrNilPrivateKey
	}
	if key.Type() != crypto.KeyTypeEd25519 {
		return nil, ErrUnsupportedKeyType
	}
	id, err := identity.FromSigner(kind, displayName, key)
	if err != nil {
		return nil, err
	}
	return &Author{id: id, key: key}, nil
}

// Identity 返回作者身份
func (a *Author) Identity() identity.Identity {
	return a.id
}

// Signer 返回签名能力
func (a *Author) Signer() crypto.Signer {
	return a.key
}

// Sign 以作者身份签名消息
func (a *Author) Sign(msg string) (*message.SignedMessage, error) {
	return message.New(a.id, msg, a.key)
}
