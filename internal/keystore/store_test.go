package keystore

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"pemkey/internal/blob"
	"pemkey/internal/crypto"
	"pemkey/internal/domain"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	return New(t.TempDir(), "openssl", nil)
}

func mustBlob(t *testing.T, path, passphrase string) []byte {
	t.Helper()
	b, err := blob.Marshal(domain.Config{Path: path, Passphrase: []byte(passphrase)})
	if err != nil {
		t.Fatalf("blob.Marshal: %v", err)
	}
	return b
}

func TestGenerateAndReadKey(t *testing.T) {
	s := testStore(t)
	path := s.DefaultKeyPath()

	if err := s.GenerateKey(path, []byte("hunter2")); err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	key, err := s.ReadKey(mustBlob(t, path, "hunter2"))
	if err != nil {
		t.Fatalf("ReadKey: %v", err)
	}
	if got := key.PublicKey.N.BitLen(); got != KeyBits {
		t.Errorf("modulus bits: got %d want %d", got, KeyBits)
	}
	if key.PublicKey.E != 65537 {
		t.Errorf("public exponent: got %d want 65537", key.PublicKey.E)
	}
}

func TestSignatureStableAcrossReloads(t *testing.T) {
	s := testStore(t)
	path := s.DefaultKeyPath()
	if err := s.GenerateKey(path, []byte("hunter2")); err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}

	b := mustBlob(t, path, "hunter2")
	first, err := s.ReadKey(b)
	if err != nil {
		t.Fatalf("ReadKey: %v", err)
	}
	second, err := s.ReadKey(b)
	if err != nil {
		t.Fatalf("ReadKey (reload): %v", err)
	}
	if crypto.Signature(&first.PublicKey) != crypto.Signature(&second.PublicKey) {
		t.Fatal("signature changed between reloads of the same key file")
	}
}

func TestReadKeyWrongPassphrase(t *testing.T) {
	s := testStore(t)
	path := s.DefaultKeyPath()
	if err := s.GenerateKey(path, []byte("hunter2")); err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}

	_, err := s.ReadKey(mustBlob(t, path, "wrong"))
	var cerr *domain.CryptoError
	if !errors.As(err, &cerr) {
		t.Fatalf("ReadKey with wrong passphrase: got %v, want CryptoError", err)
	}
}

func TestReadKeyMissingFile(t *testing.T) {
	s := testStore(t)
	_, err := s.ReadKey(mustBlob(t, filepath.Join(t.TempDir(), "absent.pem"), "pw"))
	var ioErr *domain.IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("ReadKey on missing file: got %v, want IOError", err)
	}
}

func TestWriteKeyIdempotentDirs(t *testing.T) {
	s := testStore(t)
	path := s.DefaultKeyPath()

	if err := s.GenerateKey(path, []byte("pw")); err != nil {
		t.Fatalf("first GenerateKey: %v", err)
	}
	// Second write with the directory chain already present must also
	// succeed, silently replacing the file.
	if err := s.GenerateKey(path, []byte("pw")); err != nil {
		t.Fatalf("second GenerateKey: %v", err)
	}

	info, err := os.Stat(s.Dir())
	if err != nil {
		t.Fatalf("stat key dir: %v", err)
	}
	if perm := info.Mode().Perm(); perm != dirPerm {
		t.Errorf("key dir permissions: got %o want %o", perm, dirPerm)
	}
}

func TestKeyFilePermissions(t *testing.T) {
	s := testStore(t)
	path := s.DefaultKeyPath()
	if err := s.GenerateKey(path, []byte("pw")); err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat key file: %v", err)
	}
	if perm := info.Mode().Perm(); perm != filePerm {
		t.Errorf("key file permissions: got %o want %o", perm, filePerm)
	}
}
