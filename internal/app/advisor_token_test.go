package app

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/form3tech-oss/jwt-go"
)

func TestAdvisorTokenServiceGenerateToken(t *testing.T) {
	secret := "test-secret"
	svc := NewAdvisorTokenService(secret, "mendikot")
	fixed := time.Now()
	svc.now = func() time.Time { return fixed }

	tokenString, err := svc.GenerateToken("match-123", 2)
	if err != nil {
		t.Fatalf("generate token error: %v", err)
	}

	claims := parseAdvisorClaims(t, tokenString, secret)
	if got := stringClaim(t, claims, "iss"); got != "mendikot" {
		t.Fatalf("iss = %s, want mendikot", got)
	}
	if got := stringClaim(t, claims, "sub"); got != "match-123" {
		t.Fatalf("sub = %s, want match-123", got)
	}
	if got := stringClaim(t, claims, "aud"); got != AdvisorAudience {
		t.Fatalf("aud = %s, want %s", got, AdvisorAudience)
	}
	if got := stringClaim(t, claims, "jti"); got == "" {
		t.Fatal("jti is empty")
	}
	if seat, ok := claims["seat"].(float64); !ok || seat != 2 {
		t.Fatalf("seat = %v, want 2", claims["seat"])
	}
	if exp, ok := claims["exp"].(float64); !ok || int64(exp) != fixed.Add(AdvisorTokenTTL).Unix() {
		t.Fatalf("exp = %v, want %d", claims["exp"], fixed.Add(AdvisorTokenTTL).Unix())
	}
}

func TestAdvisorTokenServiceRequiresSecret(t *testing.T) {
	svc := NewAdvisorTokenService("", "mendikot")
	if svc.Enabled() {
		t.Fatal("service without secret reports enabled")
	}
	if _, err := svc.GenerateToken("match", 0); !errors.Is(err, ErrAdvisorDisabled) {
		t.Fatalf("err = %v, want %v", err, ErrAdvisorDisabled)
	}

	var nilSvc *AdvisorTokenService
	if _, err := nilSvc.GenerateToken("match", 0); !errors.Is(err, ErrAdvisorDisabled) {
		t.Fatalf("nil service err = %v, want %v", err, ErrAdvisorDisabled)
	}
}

func TestAdvisorTokenServiceValidatesInput(t *testing.T) {
	svc := NewAdvisorTokenService("secret", "mendikot")
	if _, err := svc.GenerateToken("", 0); err == nil {
		t.Fatal("expected error for empty match id")
	}
	if _, err := svc.GenerateToken("match", 4); err == nil {
		t.Fatal("expected error for seat out of range")
	}
}

func TestAdvisorTokenExpires(t *testing.T) {
	secret := "secret"
	svc := NewAdvisorTokenService(secret, "mendikot")
	svc.now = func() time.Time { return time.Now().Add(-time.Hour) }

	tokenString, err := svc.GenerateToken("match", 1)
	if err != nil {
		t.Fatalf("generate token error: %v", err)
	}
	_, err = jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err == nil {
		t.Fatal("expected expired token to fail validation")
	}
}

func parseAdvisorClaims(t *testing.T, tokenString, secret string) jwt.MapClaims {
	t.Helper()

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		t.Fatalf("parse token error: %v", err)
	}
	if !token.Valid {
		t.Fatal("token is invalid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("claims are not map claims")
	}
	return claims
}

func stringClaim(t *testing.T, claims jwt.MapClaims, name string) string {
	t.Helper()
	value, ok := claims[name]
	if !ok {
		t.Fatalf("missing %s claim", name)
	}
	str, ok := value.(string)
	if !ok {
		t.Fatalf("%s claim is not a string", name)
	}
	return str
}
