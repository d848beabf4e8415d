package wiki

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestSetPasswordHash(t *testing.T) {
	user := &User{ScreenName: "Alice", RawPassword: "correct horse battery staple"}
	if err := user.SetPasswordHash(); err != nil {
		t.Fatal(err)
	}
	if user.RawPassword != "" {
		t.Error("raw password should be cleared after hashing")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("correct horse battery staple")); err != nil {
		t.Errorf("hash does not verify: %v", err)
	}
}

func TestUserPages(t *testing.T) {
	user := &User{ID: 3, ScreenName: "Alice"}
	if got := user.UserPage().FullText(); got != "User:Alice" {
		t.Errorf("expected User:Alice, got %q", got)
	}
	if got := user.TalkPage().FullText(); got != "User talk:Alice" {
		t.Errorf("expected User talk:Alice, got %q", got)
	}
}

func TestAnonymousUser(t *testing.T) {
	if !AnonymousUser().IsAnonymous() {
		t.Error("anonymous user should be anonymous")
	}
	if (&User{ID: 1, Role: RoleAdmin}).IsAnonymous() {
		t.Error("registered user should not be anonymous")
	}
	if !(&User{ID: 1, Role: RoleAdmin}).IsAdmin() {
		t.Error("admin role should report admin")
	}
}
