package util

import (
	"testing"

	"github.com/pavithranrajkumar/devbuddy-backend/dao/model"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 1, 24)

	msg := &JWTMessage{UserID: 42, UserType: model.UserTypeFreelancer, Name: "Jordan"}
	access, refresh, err := tm.CreateTokens(msg)
	if err != nil {
		t.Fatalf("CreateTokens: %v", err)
	}
	if access == "" || refresh == "" {
		t.Fatal("expected non-empty tokens")
	}

	got, err := tm.CheckToken(access)
	if err != nil {
		t.Fatalf("CheckToken: %v", err)
	}
	if got.UserID != 42 || got.UserType != model.UserTypeFreelancer || got.Name != "Jordan" {
		t.Errorf("claims round trip mismatch: %+v", got)
	}
}

func TestCheckTokenWrongSecret(t *testing.T) {
	tm := NewTokenManager("secret-a", 1, 24)
	access, _, err := tm.CreateTokens(&JWTMessage{UserID: 1, UserType: model.UserTypeClient})
	if err != nil {
		t.Fatalf("CreateTokens: %v", err)
	}

	other := NewTokenManager("secret-b", 1, 24)
	if _, err := other.CheckToken(access); err == nil {
		t.Error("expected verification failure with a different secret")
	}
}

func TestCheckTokenExpired(t *testing.T) {
	tm := NewTokenManager("test-secret", -1, 24)
	access, _, err := tm.CreateTokens(&JWTMessage{UserID: 7, UserType: model.UserTypeAdmin})
	if err != nil {
		t.Fatalf("CreateTokens: %v", err)
	}
	if _, err := tm.CheckToken(access); err == nil {
		t.Error("expected expired token to fail verification")
	}
}

func TestCheckTokenGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret", 1, 24)
	if _, err := tm.CheckToken("not-a-jwt"); err == nil {
		t.Error("expected parse failure")
	}
}
