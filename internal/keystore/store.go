package keystore

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"pemkey/internal/blob"
	"pemkey/internal/crypto"
	"pemkey/internal/domain"
)

const (
	// KeyBits is the modulus size of generated key pairs.
	KeyBits = 1024

	// DefaultKeyFile is the key file name inside the per-user module
	// directory.
	DefaultKeyFile = "key.pem"

	appDir = ".ecryptfs"
	pkiDir = "pki"

	dirPerm  = 0o700
	filePerm = 0o600
)

// Store resolves the per-user key directory and loads or persists
// passphrase-protected key files. Key material is held only for the
// duration of a single call.
type Store struct {
	home  string
	alias string
	log   *slog.Logger
}

// New returns a store rooted at the given home directory for the named
// module.
func New(home, alias string, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{home: home, alias: alias, log: log}
}

// Dir returns the per-user key directory for this module.
func (s *Store) Dir() string {
	return filepath.Join(s.home, appDir, pkiDir, s.alias)
}

// DefaultKeyPath returns the suggested key file location.
func (s *Store) DefaultKeyPath() string {
	return filepath.Join(s.Dir(), DefaultKeyFile)
}

// ReadKey deserializes the blob, opens the key file at its path and
// decrypts it with its passphrase. The passphrase copy made by the
// codec is wiped before returning.
func (s *Store) ReadKey(b []byte) (*rsa.PrivateKey, error) {
	cfg, err := blob.Unmarshal(b)
	if err != nil {
		return nil, err
	}
	defer crypto.Wipe(cfg.Passphrase)

	raw, err := os.ReadFile(cfg.Path)
	if err != nil {
		s.log.Error("unable to read key file", "path", cfg.Path)
		return nil, &domain.IOError{Path: cfg.Path, Err: err}
	}
	key, err := decodePrivateKey(raw, cfg.Passphrase)
	if err != nil {
		s.log.Error("unable to decode private key", "path", cfg.Path)
		return nil, err
	}
	return key, nil
}

// WriteKey ensures the per-user directory chain exists, then writes the
// key PEM-encoded and passphrase-encrypted to path. An existing file at
// path is overwritten.
func (s *Store) WriteKey(key *rsa.PrivateKey, path string, passphrase []byte) error {
	if err := s.ensureDirs(); err != nil {
		return err
	}
	der := x509.MarshalPKCS1PrivateKey(key)
	defer crypto.Wipe(der)

	// EncryptPEMBlock is deprecated upstream but is the only
	// implementation of the DEK-Info PEM encryption the key files use.
	block, err := x509.EncryptPEMBlock(rand.Reader, "RSA PRIVATE KEY", der, passphrase, x509.PEMCipherAES256) //nolint:staticcheck
	if err != nil {
		return &domain.CryptoError{Op: "pem encryption", Err: err}
	}
	if err := writeFileAtomic(path, pem.EncodeToMemory(block), filePerm); err != nil {
		s.log.Error("failed to write key to file", "path", path)
		return &domain.IOError{Path: path, Err: err}
	}
	return nil
}

// GenerateKey generates a fresh key pair and writes it to path.
func (s *Store) GenerateKey(path string, passphrase []byte) error {
	key, err := rsa.GenerateKey(rand.Reader, KeyBits)
	if err != nil {
		s.log.Error("error generating new RSA key")
		return &domain.CryptoError{Op: "rsa key generation", Err: err}
	}
	return s.WriteKey(key, path, passphrase)
}

// ensureDirs creates each segment of the per-user directory chain with
// restrictive permissions. An already existing segment is not an error.
func (s *Store) ensureDirs() error {
	dir := filepath.Join(s.home, appDir)
	for _, next := range []string{"", pkiDir, s.alias} {
		dir = filepath.Join(dir, next)
		if err := os.Mkdir(dir, dirPerm); err != nil && !errors.Is(err, fs.ErrExist) {
			s.log.Error("error attempting to mkdir", "dir", dir)
			return &domain.IOError{Path: dir, Err: err}
		}
	}
	return nil
}

func decodePrivateKey(raw, passphrase []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(raw)
	if block == nil {
		return nil, &domain.CryptoError{Op: "pem decode", Err: errors.New("no PEM block found")}
	}
	der := block.Bytes
	if x509.IsEncryptedPEMBlock(block) { //nolint:staticcheck
		var err error
		der, err = x509.DecryptPEMBlock(block, passphrase) //nolint:staticcheck
		if err != nil {
			return nil, &domain.CryptoError{Op: "pem decryption", Err: err}
		}
		defer crypto.Wipe(der)
	}
	if key, err := x509.ParsePKCS1PrivateKey(der); err == nil {
		return key, nil
	}
	parsed, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return nil, &domain.CryptoError{Op: "private key parse", Err: err}
	}
	key, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, &domain.CryptoError{Op: "private key parse", Err: errors.New("not an RSA key")}
	}
	return key, nil
}
