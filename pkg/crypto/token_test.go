package crypto

import (
	"errors"
	"strings"
	"testing"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !CheckPassword("correct horse battery staple", hash) {
		t.Fatal("expected password to match its hash")
	}
	if CheckPassword("wrong password", hash) {
		t.Fatal("expected mismatching password to fail")
	}
}

func TestHashPasswordError(t *testing.T) {
	orig := bcryptGenerateFromPassword
	defer func() { bcryptGenerateFromPassword = orig }()
	bcryptGenerateFromPassword = func([]byte, int) ([]byte, error) {
		return nil, errors.New("boom")
	}

	if _, err := HashPassword("x"); err == nil {
		t.Fatal("expected error from failing bcrypt")
	}
}

func TestGenerateURLSafeToken(t *testing.T) {
	tok, err := GenerateURLSafeToken(32)
	if err != nil {
		t.Fatalf("GenerateURLSafeToken: %v", err)
	}
	if len(tok) != 43 { // 32 bytes base64url, no padding
		t.Fatalf("unexpected token length %d: %s", len(tok), tok)
	}
	if strings.ContainsAny(tok, "+/=") {
		t.Fatalf("token is not URL safe: %s", tok)
	}

	other, err := GenerateDownloadToken()
	if err != nil {
		t.Fatalf("GenerateDownloadToken: %v", err)
	}
	if tok == other {
		t.Fatal("two generated tokens must differ")
	}
}

func TestGenerateURLSafeTokenError(t *testing.T) {
	orig := randomRead
	defer func() { randomRead = orig }()
	randomRead = func([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

	if _, err := GenerateURLSafeToken(16); err == nil {
		t.Fatal("expected error when random source fails")
	}
}
