// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-user-service/models"
)

func TestContextKeyString(t *testing.T) {
	key := contextKey("testKey")
	if key.String() != "testKey" {
		t.Errorf("expected 'testKey', got '%s'", key.String())
	}
}

func TestIdentityCtxKey(t *testing.T) {
	if IdentityCtxKey.String() != "identity" {
		t.Errorf("expected 'identity', got '%s'", IdentityCtxKey.String())
	}
}

func TestGetIdentityFromContext_Success(t *testing.T) {
	identity := models.Identity{UserID: "u-42", Email: "a@x.com"}
	ctx := WithIdentity(context.Background(), identity)

	got, ok := GetIdentityFromContext(ctx)

	if !ok {
		t.Fatal("expected ok=true, got false")
	}
	if got != identity {
		t.Errorf("expected %+v, got %+v", identity, got)
	}
}

func TestGetIdentityFromContext_Missing(t *testing.T) {
	got, ok := GetIdentityFromContext(context.Background())

	if ok {
		t.Fatal("expected ok=false, got true")
	}
	if got != (models.Identity{}) {
		t.Errorf("expected zero identity, got %+v", got)
	}
}

func TestGetIdentityFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), IdentityCtxKey, "not-an-identity")

	if _, ok := GetIdentityFromContext(ctx); ok {
		t.Fatal("expected ok=false for wrong type, got true")
	}
}

func TestGetIdentityFromContext_EmptyUserID(t *testing.T) {
	ctx := context.WithValue(context.Background(), IdentityCtxKey, models.Identity{Email: "a@x.com"})

	if _, ok := GetIdentityFromContext(ctx); ok {
		t.Fatal("expected ok=false for empty user id, got true")
	}
}

func TestGetIdentityFromContext_DifferentKey(t *testing.T) {
	otherKey := contextKey("otherKey")
	ctx := context.WithValue(context.Background(), otherKey, models.Identity{UserID: "u-1"})

	if _, ok := GetIdentityFromContext(ctx); ok {
		t.Fatal("expected ok=false for different key, got true")
	}
}
