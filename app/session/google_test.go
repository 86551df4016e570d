package session

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testClientID = "client-id.apps.googleusercontent.com"

func newTestVerifier(t *testing.T) (*GoogleVerifier, *rsa.PrivateKey) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}

	jwks := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		doc := map[string]interface{}{
			"keys": []map[string]string{{
				"kid": "test-kid",
				"kty": "RSA",
				"alg": "RS256",
				"n":   base64.RawURLEncoding.EncodeToString(key.PublicKey.N.Bytes()),
				"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(key.PublicKey.E)).Bytes()),
			}},
		}
		json.NewEncoder(w).Encode(doc)
	}))
	t.Cleanup(jwks.Close)

	verifier := NewGoogleVerifier(testClientID)
	verifier.jwksURL = jwks.URL
	return verifier, key
}

func signTestToken(t *testing.T, key *rsa.PrivateKey, claims jwt.MapClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = "test-kid"

	signed, err := token.SignedString(key)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func baseClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"iss":     "https://accounts.google.com",
		"aud":     testClientID,
		"sub":     "google-uid-1",
		"email":   "leitor@example.com",
		"name":    "Leitor Assíduo",
		"picture": "https://example.com/leitor.jpg",
		"exp":     time.Now().Add(time.Hour).Unix(),
		"iat":     time.Now().Unix(),
	}
}

func TestGoogleVerifier_ValidToken(t *testing.T) {
	verifier, key := newTestVerifier(t)

	user, err := verifier.Verify(context.Background(), signTestToken(t, key, baseClaims()))
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if user.UID != "google-uid-1" {
		t.Errorf("Expected UID from sub claim, got %q", user.UID)
	}
	if user.Email != "leitor@example.com" {
		t.Errorf("Unexpected email: %q", user.Email)
	}
	if user.DisplayName != "Leitor Assíduo" {
		t.Errorf("Unexpected display name: %q", user.DisplayName)
	}
	if user.ProviderID != "google.com" {
		t.Errorf("Expected providerId google.com, got %q", user.ProviderID)
	}
}

func TestGoogleVerifier_WrongAudience(t *testing.T) {
	verifier, key := newTestVerifier(t)

	claims := baseClaims()
	claims["aud"] = "another-client.apps.googleusercontent.com"

	if _, err := verifier.Verify(context.Background(), signTestToken(t, key, claims)); err == nil {
		t.Error("Expected error for wrong audience")
	}
}

func TestGoogleVerifier_WrongIssuer(t *testing.T) {
	verifier, key := newTestVerifier(t)

	claims := baseClaims()
	claims["iss"] = "https://evil.example.com"

	if _, err := verifier.Verify(context.Background(), signTestToken(t, key, claims)); err == nil {
		t.Error("Expected error for unexpected issuer")
	}
}

func TestGoogleVerifier_ExpiredToken(t *testing.T) {
	verifier, key := newTestVerifier(t)

	claims := baseClaims()
	claims["exp"] = time.Now().Add(-time.Hour).Unix()

	if _, err := verifier.Verify(context.Background(), signTestToken(t, key, claims)); err == nil {
		t.Error("Expected error for expired token")
	}
}

func TestGoogleVerifier_GarbageToken(t *testing.T) {
	verifier, _ := newTestVerifier(t)

	if _, err := verifier.Verify(context.Background(), "not-a-jwt"); err == nil {
		t.Error("Expected error for malformed token")
	}
}
