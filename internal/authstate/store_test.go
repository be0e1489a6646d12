package authstate

import (
	"testing"

	"github.com/musegate-dev/musegate/internal/session"
)

func TestSetUser_PersistsTokenAndLoginType(t *testing.T) {
	sessions := session.NewMemoryStore()
	store := New(sessions)

	err := store.SetUser(Profile{ID: 7, Username: "visitor", Role: "USER", Token: "tok-7"}, session.LoginTypeUser)
	if err != nil {
		t.Fatalf("SetUser failed: %v", err)
	}

	if got := sessions.Token(); got != "tok-7" {
		t.Errorf("expected token persisted, got %q", got)
	}
	if got := sessions.LoginType(); got != session.LoginTypeUser {
		t.Errorf("expected login type persisted, got %q", got)
	}
	if !store.IsAuthed() {
		t.Error("expected IsAuthed after SetUser")
	}
	if store.IsAdmin() {
		t.Error("USER role must not be admin")
	}
}

func TestIsAdmin_ReflectsProfileRole(t *testing.T) {
	store := New(session.NewMemoryStore())

	if err := store.SetUser(Profile{Username: "curator", Role: RoleAdmin, Token: "tok"}, session.LoginTypeAdmin); err != nil {
		t.Fatalf("SetUser failed: %v", err)
	}

	if !store.IsAdmin() {
		t.Error("expected IsAdmin for ADMIN role")
	}
}

func TestClearUser_WipesSessionAndMemory(t *testing.T) {
	sessions := session.NewMemoryStore()
	store := New(sessions)

	if err := store.SetUser(Profile{Token: "tok"}, session.LoginTypeUser); err != nil {
		t.Fatalf("SetUser failed: %v", err)
	}
	if err := store.ClearUser(); err != nil {
		t.Fatalf("ClearUser failed: %v", err)
	}

	if sessions.Token() != "" || sessions.LoginType() != "" {
		t.Error("expected session store wiped")
	}
	if store.IsAuthed() {
		t.Error("expected logged out after ClearUser")
	}
	if store.Profile() != nil {
		t.Error("expected nil profile after ClearUser")
	}
	if store.LoginType() != "" {
		t.Error("expected empty login type after ClearUser")
	}
}

func TestRestoreAuth_BothKeysPresent(t *testing.T) {
	sessions := session.NewMemoryStore()
	if err := sessions.SetToken("tok"); err != nil {
		t.Fatal(err)
	}
	if err := sessions.SetLoginType(session.LoginTypeAdmin); err != nil {
		t.Fatal(err)
	}

	store := New(sessions)
	store.RestoreAuth()

	if got := store.LoginType(); got != session.LoginTypeAdmin {
		t.Errorf("expected restored login type 'admin', got %q", got)
	}
	// The profile is never restored, only refetched
	if store.Profile() != nil {
		t.Error("expected profile to stay nil after RestoreAuth")
	}
}

func TestRestoreAuth_TokenOnlyLeavesStateUnchanged(t *testing.T) {
	sessions := session.NewMemoryStore()
	if err := sessions.SetToken("tok"); err != nil {
		t.Fatal(err)
	}

	store := New(sessions)
	store.RestoreAuth()

	if got := store.LoginType(); got != "" {
		t.Errorf("expected login type to stay unset, got %q", got)
	}
}

func TestRestoreAuth_LoginTypeOnlyLeavesStateUnchanged(t *testing.T) {
	sessions := session.NewMemoryStore()
	if err := sessions.SetLoginType(session.LoginTypeUser); err != nil {
		t.Fatal(err)
	}

	store := New(sessions)
	store.RestoreAuth()

	if store.LoginType() != "" {
		t.Error("expected login type to stay unset without a token")
	}
	if store.IsAuthed() {
		t.Error("absent token means logged out regardless of stored login type")
	}
}
