package rtctoken

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
)

func hmacSha256(key, message []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(message)
	return mac.Sum(nil)
}

func le32(v uint32) []byte {
	return binary.LittleEndian.AppendUint32(nil, v)
}

// deriveSigningKey binds the per-token key to the shared certificate and to
// this token's issue time and random salt, so two tokens for the same app
// never share a signing key.
func deriveSigningKey(cert []byte, issueTs, salt uint32) []byte {
	k1 := hmacSha256(le32(issueTs), cert)
	return hmacSha256(le32(salt), k1)
}

func sign(signingKey, payload []byte) []byte {
	return hmacSha256(signingKey, payload)
}
