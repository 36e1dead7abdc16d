package live

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestMint(t *testing.T) {
	p := NewHMACProvider("shared-secret")

	signed, err := p.Mint("session-1", "artist-1", time.Hour)
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(signed, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte("shared-secret"), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("minted token must verify with the shared secret: %v", err)
	}

	if claims["channel"] != "session-1" || claims["artist"] != "artist-1" {
		t.Fatalf("claims = %v", claims)
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		t.Fatalf("exp claim missing: %v", claims)
	}
	if remaining := time.Until(time.Unix(int64(exp), 0)); remaining <= 0 || remaining > time.Hour {
		t.Fatalf("exp %v out of the requested ttl", remaining)
	}
}

func TestMintWrongSecret(t *testing.T) {
	p := NewHMACProvider("shared-secret")

	signed, err := p.Mint("session-1", "artist-1", time.Hour)
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}

	_, err = jwt.Parse(signed, func(t *jwt.Token) (interface{}, error) {
		return []byte("other-secret"), nil
	})
	if err == nil {
		t.Fatal("token must not verify with the wrong secret")
	}
}
