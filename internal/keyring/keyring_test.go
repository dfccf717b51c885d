package keyring

import (
	"errors"
	"testing"

	gokeyring "github.com/zalando/go-keyring"
)

func TestSetAndGetConnectionString(t *testing.T) {
	gokeyring.MockInit()

	testConnStr := "postgres://testuser@localhost:5432/testdb?sslmode=disable"

	if err := SetConnectionString(testConnStr); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, err := GetConnectionString()
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != testConnStr {
		t.Errorf("got %q, want %q", got, testConnStr)
	}

	if err := DeleteConnectionString(); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := GetConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestSetConnectionStringEmpty(t *testing.T) {
	gokeyring.MockInit()
	if err := SetConnectionString(""); err == nil {
		t.Error("expected error for empty connection string")
	}
}

func TestAPIKeyRoundTrip(t *testing.T) {
	gokeyring.MockInit()

	if err := SetAPIKey("sk-test-123"); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := GetAPIKey()
	if err != nil || got != "sk-test-123" {
		t.Errorf("got %q (%v)", got, err)
	}

	if err := DeleteAPIKey(); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := GetAPIKey(); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestSetAPIKeyEmpty(t *testing.T) {
	gokeyring.MockInit()
	if err := SetAPIKey(""); err == nil {
		t.Error("expected error for empty API key")
	}
}

func TestIsAvailableWithMock(t *testing.T) {
	gokeyring.MockInit()
	if !IsAvailable() {
		t.Error("mock keyring should report available")
	}
}
