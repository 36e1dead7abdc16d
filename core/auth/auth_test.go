package auth

import (
	"strings"
	"testing"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "hunter2" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !VerifyPassword("hunter2", hash) {
		t.Fatal("correct password must verify")
	}
	if VerifyPassword("wrong", hash) {
		t.Fatal("wrong password must not verify")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	Init("test-secret")

	token, err := GenerateToken("user-1", "Freddie")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != "user-1" || claims.Name != "Freddie" {
		t.Fatalf("claims = %+v, want user-1/Freddie", claims)
	}
}

func TestParseTokenRejectsTampering(t *testing.T) {
	Init("test-secret")

	token, err := GenerateToken("user-1", "Freddie")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	tampered := strings.TrimSuffix(token, token[len(token)-2:]) + "xx"
	if _, err := ParseToken(tampered); err == nil {
		t.Fatal("tampered token must not parse")
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	Init("secret-a")
	token, err := GenerateToken("user-1", "Freddie")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	Init("secret-b")
	if _, err := ParseToken(token); err == nil {
		t.Fatal("token signed with another secret must not parse")
	}
}
