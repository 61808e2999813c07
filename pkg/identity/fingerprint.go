package identity

import (
	"github.com/minio/sha256-simd"
	"github.com/mr-tron/base58"
)

// Fingerprint 返回公钥指纹
//
// 派生算法：Base58(SHA256(公钥))。只依赖公钥，不受类别和显示名影响，
// 适合作为日志字段或短标识。
func (id Identity) Fingerprint() string {
	sum := sha256.Sum256(id.PublicKey[:])
	return base58.Encode(sum[:])
}

// ShortFingerprint 返回指纹前 8 个字符
func (id Identity) ShortFingerprint() string {
	fp := id.Fingerprint()
	if len(fp) > 8 {
		return fp[:8]
	}
	return fp
}
