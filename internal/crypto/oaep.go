package crypto

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1"

	"pemkey/internal/domain"
)

// OAEPOverhead is the padding overhead of RSA-OAEP with SHA-1: payloads
// longer than the modulus size minus this are rejected by the library.
const OAEPOverhead = 2*sha1.Size + 2

// MaxPayload returns the largest payload Encrypt accepts for key.
func MaxPayload(key *rsa.PublicKey) int { return key.Size() - OAEPOverhead }

// Encrypt performs public-key encryption of plaintext with OAEP
// padding. The ciphertext length equals the modulus byte length.
func Encrypt(key *rsa.PublicKey, plaintext []byte) ([]byte, error) {
	ct, err := rsa.EncryptOAEP(sha1.New(), rand.Reader, key, plaintext, nil)
	if err != nil {
		return nil, &domain.CryptoError{Op: "rsa public-key encryption", Err: err}
	}
	return ct, nil
}

// Decrypt is the private-key counterpart of Encrypt.
func Decrypt(key *rsa.PrivateKey, ciphertext []byte) ([]byte, error) {
	pt, err := rsa.DecryptOAEP(sha1.New(), nil, key, ciphertext, nil)
	if err != nil {
		return nil, &domain.CryptoError{Op: "rsa private-key decryption", Err: err}
	}
	return pt, nil
}
