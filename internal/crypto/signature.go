package crypto

import (
	"crypto/rsa"
	"crypto/sha1"
	"encoding/hex"
	"math/big"

	"pemkey/internal/domain"
)

// Signature derives the keyring fingerprint of an RSA public key.
//
// The hashed packet is a fixed tag byte 0x99, a big-endian 16-bit
// packet length, a fixed algorithm/version header, then for n and e in
// turn a big-endian 16-bit bit-length followed by the big-endian value
// bytes. The SHA-1 digest of the packet, lowercase hex encoded, is the
// signature.
func Signature(key *rsa.PublicKey) domain.Signature {
	e := big.NewInt(int64(key.E))

	nbits := key.N.BitLen()
	nbytes := (nbits + 7) / 8
	ebits := e.BitLen()
	ebytes := (ebits + 7) / 8

	plen := 10 + nbytes + ebytes
	packet := make([]byte, 0, 3+plen)
	packet = append(packet, 0x99, byte(plen>>8), byte(plen))
	packet = append(packet, 0x04, 0x00, 0x00, 0x00, 0x00, 0x02)
	packet = append(packet, byte(nbits>>8), byte(nbits))
	packet = append(packet, key.N.FillBytes(make([]byte, nbytes))...)
	packet = append(packet, byte(ebits>>8), byte(ebits))
	packet = append(packet, e.FillBytes(make([]byte, ebytes))...)

	sum := sha1.Sum(packet)
	return domain.Signature(hex.EncodeToString(sum[:]))
}
