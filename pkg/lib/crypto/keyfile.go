package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// ============================================================================
//                              密钥文件
// ============================================================================

// 一个 .key 文件依次为：
//
//	"SUTERA-KEY" | version | key type | sealed | body
//
// sealed=0 时 body 为私钥原始字节；sealed=1 时 body 为
// salt(16) | nonce(12) | AES-256-GCM(私钥)，AES 密钥由口令经 Argon2id 派生，
// 头部的前 13 字节作为 GCM 附加数据，篡改头部同样导致解密失败。

const (
	keyFileMagic   = "SUTERA-KEY"
	keyFileVersion = 1
	keyFileExt     = ".key"

	keyFileHeaderSize = len(keyFileMagic) + 3

	saltSize  = 16
	nonceSize = 12
)

// Argon2id 参数，改动会使已有加密文件无法解开
const (
	kdfTime    = 1
	kdfMemory  = 64 * 1024
	kdfThreads = 4
	kdfKeyLen  = 32
)

// keyFile 解析后的密钥文件
type keyFile struct {
	Type   KeyType
	Sealed bool
	Body   []byte
}

// header 返回文件头，同时用作 GCM 附加数据
func (f keyFile) header() []byte {
	h := make([]byte, 0, keyFileHeaderSize)
	h = append(h, keyFileMagic...)
	h = append(h, keyFileVersion, byte(f.Type), 0)
	if f.Sealed {
		h[keyFileHeaderSize-1] = 1
	}
	return h
}

func (f keyFile) marshal() []byte {
	return append(f.header(), f.Body...)
}

// parseKeyFile 只检查文件头，body 原样返回
func parseKeyFile(data []byte) (keyFile, error) {
	if len(data) < keyFileHeaderSize || string(data[:len(keyFileMagic)]) != keyFileMagic {
		return keyFile{}, ErrInvalidKeyFile
	}
	h := data[len(keyFileMagic):keyFileHeaderSize]
	if h[0] != keyFileVersion {
		return keyFile{}, fmt.Errorf("%w: unsupported version %d", ErrInvalidKeyFile, h[0])
	}
	if h[2] > 1 {
		return keyFile{}, fmt.Errorf("%w: bad sealed flag %d", ErrInvalidKeyFile, h[2])
	}
	return keyFile{
		Type:   KeyType(h[1]),
		Sealed: h[2] == 1,
		Body:   data[keyFileHeaderSize:],
	}, nil
}

// sealKeyFile 编码私钥；password 为空时不加密
func sealKeyFile(key PrivateKey, password []byte) ([]byte, error) {
	raw, err := key.Raw()
	if err != nil {
		return nil, err
	}
	defer SecureZero(raw)

	f := keyFile{Type: key.Type(), Sealed: len(password) > 0}
	if !f.Sealed {
		f.Body = raw
		return f.marshal(), nil
	}

	f.Body, err = seal(raw, password, f.header())
	if err != nil {
		return nil, err
	}
	return f.marshal(), nil
}

// openKeyFile 解码私钥
func openKeyFile(data, password []byte) (PrivateKey, error) {
	f, err := parseKeyFile(data)
	if err != nil {
		return nil, err
	}
	if !f.Sealed {
		return UnmarshalPrivateKey(f.Type, f.Body)
	}
	if len(password) == 0 {
		return nil, ErrInvalidPassword
	}

	raw, err := unseal(f.Body, password, f.header())
	if err != nil {
		return nil, err
	}
	defer SecureZero(raw)
	return UnmarshalPrivateKey(f.Type, raw)
}

// seal 返回 salt | nonce | 密文
func seal(plaintext, password, ad []byte) ([]byte, error) {
	prefix, err := RandomBytes(saltSize + nonceSize)
	if err != nil {
		return nil, err
	}
	aead, err := passwordAEAD(password, prefix[:saltSize])
	if err != nil {
		return nil, err
	}
	return aead.Seal(prefix, prefix[saltSize:], plaintext, ad), nil
}

// unseal 口令错误和数据损坏都返回 ErrDecryptionFailed
func unseal(body, password, ad []byte) ([]byte, error) {
	if len(body) < saltSize+nonceSize {
		return nil, ErrDecryptionFailed
	}
	aead, err := passwordAEAD(password, body[:saltSize])
	if err != nil {
		return nil, err
	}
	plaintext, err := aead.Open(nil, body[saltSize:saltSize+nonceSize], body[saltSize+nonceSize:], ad)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	return plaintext, nil
}

func passwordAEAD(password, salt []byte) (cipher.AEAD, error) {
	key := DeriveKey(password, salt)
	defer SecureZero(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// DeriveKey 用 Argon2id 从口令派生 32 字节密钥
func DeriveKey(password, salt []byte) []byte {
	return argon2.IDKey(password, salt, kdfTime, kdfMemory, kdfThreads, kdfKeyLen)
}

// SecureZero 清零字节切片
func SecureZero(b []byte) {
	clear(b)
}
