package keyring

import (
	"errors"
	"testing"

	gokeyring "github.com/zalando/go-keyring"
)

func TestCurrentUser(t *testing.T) {
	gokeyring.MockInit()

	if _, err := GetCurrentUser(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetCurrentUser() on empty keyring = %v, want ErrNotFound", err)
	}
	if err := SetCurrentUser("local_abc123"); err != nil {
		t.Fatalf("SetCurrentUser() failed: %v", err)
	}
	got, err := GetCurrentUser()
	if err != nil || got != "local_abc123" {
		t.Errorf("GetCurrentUser() = %q, %v", got, err)
	}
	if err := DeleteCurrentUser(); err != nil {
		t.Fatalf("DeleteCurrentUser() failed: %v", err)
	}
	if err := DeleteCurrentUser(); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteCurrentUser() = %v", err)
	}
}

func TestConnectionStringIsSeparateAccount(t *testing.T) {
	gokeyring.MockInit()

	conn := "postgres://tracker@localhost:5432/waketrack?sslmode=disable"
	if err := SetConnectionString(conn); err != nil {
		t.Fatal(err)
	}
	if err := SetCurrentUser("local_1"); err != nil {
		t.Fatal(err)
	}
	got, err := GetConnectionString()
	if err != nil || got != conn {
		t.Errorf("GetConnectionString() = %q, %v", got, err)
	}
	if err := DeleteConnectionString(); err != nil {
		t.Fatal(err)
	}
	if id, _ := GetCurrentUser(); id != "local_1" {
		t.Errorf("deleting the connection string removed the user id")
	}
}

func TestSetRejectsEmpty(t *testing.T) {
	gokeyring.MockInit()
	if err := SetConnectionString(""); err == nil {
		t.Error("SetConnectionString(\"\") should return an error")
	}
	if err := SetCurrentUser("  "); err == nil {
		t.Error("SetCurrentUser(blank) should return an error")
	}
}

func TestIsAvailableWithMock(t *testing.T) {
	gokeyring.MockInit()
	if !IsAvailable() {
		t.Error("IsAvailable() = false with mock keyring")
	}
}
