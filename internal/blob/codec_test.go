package blob

import (
	"bytes"
	"errors"
	"testing"

	"pemkey/internal/domain"
)

func TestRoundTrip(t *testing.T) {
	cfg := domain.Config{Path: "/home/user/.ecryptfs/pki/openssl/key.pem", Passphrase: []byte("hunter2")}

	b, err := Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	got, err := Unmarshal(b)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.Path != cfg.Path {
		t.Errorf("path: got %q want %q", got.Path, cfg.Path)
	}
	if !bytes.Equal(got.Passphrase, cfg.Passphrase) {
		t.Errorf("passphrase: got %q want %q", got.Passphrase, cfg.Passphrase)
	}
}

func TestSizeAgreesWithMarshal(t *testing.T) {
	cfg := domain.Config{Path: "/tmp/k.pem", Passphrase: []byte("pw")}

	size, err := Size(cfg)
	if err != nil {
		t.Fatalf("Size: %v", err)
	}
	b, err := Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if len(b) != size {
		t.Fatalf("size query %d != marshaled length %d", size, len(b))
	}
	// 2 + 11 + 2 + 3: length prefixes plus NUL-terminated fields.
	if want := 2 + 11 + 2 + 3; size != want {
		t.Fatalf("size: got %d want %d", size, want)
	}
}

func TestWireLayout(t *testing.T) {
	b, err := Marshal(domain.Config{Path: "/k", Passphrase: []byte("p")})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := []byte{3, 0, '/', 'k', 0, 2, 0, 'p', 0}
	if !bytes.Equal(b, want) {
		t.Fatalf("wire layout: got %v want %v", b, want)
	}
}

func TestMarshalRejectsEmptyFields(t *testing.T) {
	for _, cfg := range []domain.Config{
		{Path: "", Passphrase: []byte("pw")},
		{Path: "/tmp/k.pem", Passphrase: nil},
		{},
	} {
		if _, err := Marshal(cfg); !errors.Is(err, domain.ErrInvalidConfig) {
			t.Errorf("Marshal(%+v): got %v, want ErrInvalidConfig", cfg, err)
		}
		if _, err := Size(cfg); !errors.Is(err, domain.ErrInvalidConfig) {
			t.Errorf("Size(%+v): got %v, want ErrInvalidConfig", cfg, err)
		}
	}
}

func TestUnmarshalRejectsMalformed(t *testing.T) {
	valid, err := Marshal(domain.Config{Path: "/tmp/k.pem", Passphrase: []byte("hunter2")})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	cases := map[string][]byte{
		"empty":                  {},
		"short length prefix":    {3},
		"truncated first field":  valid[:4],
		"truncated mid second":   valid[:len(valid)-2],
		"length past buffer end": {200, 0, 'a', 0},
		"zero-length field":      {0, 0, 2, 0, 'p', 0},
		"missing NUL terminator": {2, 0, 'a', 'b', 2, 0, 'p', 0},
	}
	for name, b := range cases {
		if _, err := Unmarshal(b); !errors.Is(err, domain.ErrMalformedBlob) {
			t.Errorf("%s: got %v, want ErrMalformedBlob", name, err)
		}
	}
}

func TestUnmarshalCopiesOutOfBlob(t *testing.T) {
	b, err := Marshal(domain.Config{Path: "/tmp/k.pem", Passphrase: []byte("hunter2")})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	cfg, err := Unmarshal(b)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	for i := range b {
		b[i] = 0xff
	}
	if cfg.Path != "/tmp/k.pem" || !bytes.Equal(cfg.Passphrase, []byte("hunter2")) {
		t.Fatal("deserialized config aliases the blob buffer")
	}
}
