package keygenerator

import (
	"crypto/rand"
	"crypto/sha1"
	"encoding/hex"
)

const (
	saltLength  = 5
	nonceLength = 16
)

// SHA1 produces 40 character lowercase hex keys.
type SHA1 struct{}

func NewSHA1() *SHA1 {
	return &SHA1{}
}

func (g *SHA1) GenerateKey(seed string) (salt string, key string) {
	salt = hex.EncodeToString(randomBytes(saltLength))[:saltLength]
	hash := sha1.New()
	hash.Write([]byte(salt))
	hash.Write([]byte(seed))
	hash.Write(randomBytes(nonceLength))
	return salt, hex.EncodeToString(hash.Sum(nil))
}

func randomBytes(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return b
}
