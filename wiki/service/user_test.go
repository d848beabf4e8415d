package service_test

import (
	"errors"
	"testing"

	"github.com/larkwiki/larkwiki/testutil"
	"github.com/larkwiki/larkwiki/wiki"
)

func TestPostUser(t *testing.T) {
	app, cleanup := testutil.SetupTestApp(t)
	defer cleanup()

	t.Run("creates valid user", func(t *testing.T) {
		user := &wiki.User{
			ScreenName:  "validuser",
			Email:       "valid@example.com",
			RawPassword: "securepassword123",
		}

		err := app.Users.PostUser(user)
		if err != nil {
			t.Fatalf("PostUser failed: %v", err)
		}

		retrieved, err := app.Users.GetUserByScreenName("validuser")
		if err != nil {
			t.Fatalf("GetUserByScreenName failed: %v", err)
		}
		if retrieved.ScreenName != "validuser" {
			t.Errorf("expected screenname 'validuser', got %q", retrieved.ScreenName)
		}
	})

	t.Run("first user becomes admin", func(t *testing.T) {
		user, err := app.Users.GetUserByScreenName("validuser")
		if err != nil {
			t.Fatal(err)
		}
		if !user.IsAdmin() {
			t.Error("expected the first registered user to be an admin")
		}
	})

	t.Run("second user does not", func(t *testing.T) {
		second := &wiki.User{
			ScreenName:  "seconduser",
			Email:       "second@example.com",
			RawPassword: "securepassword123",
		}
		if err := app.Users.PostUser(second); err != nil {
			t.Fatal(err)
		}
		user, err := app.Users.GetUserByScreenName("seconduser")
		if err != nil {
			t.Fatal(err)
		}
		if user.IsAdmin() {
			t.Error("expected a regular user")
		}
	})

	t.Run("rejects short password", func(t *testing.T) {
		user := &wiki.User{
			ScreenName:  "shortpw",
			Email:       "short@example.com",
			RawPassword: "abc",
		}
		if err := app.Users.PostUser(user); !errors.Is(err, wiki.ErrPasswordTooShort) {
			t.Errorf("expected ErrPasswordTooShort, got %v", err)
		}
	})

	t.Run("rejects duplicate screenname", func(t *testing.T) {
		user := &wiki.User{
			ScreenName:  "validuser",
			Email:       "other@example.com",
			RawPassword: "securepassword123",
		}
		if err := app.Users.PostUser(user); !errors.Is(err, wiki.ErrUsernameTaken) {
			t.Errorf("expected ErrUsernameTaken, got %v", err)
		}
	})
}

func TestCheckUserPassword(t *testing.T) {
	app, cleanup := testutil.SetupTestApp(t)
	defer cleanup()

	testutil.CreateTestUser(t, app, "Checker", "checker@example.com", "correct-horse")

	t.Run("accepts the right password", func(t *testing.T) {
		user := &wiki.User{ScreenName: "Checker", RawPassword: "correct-horse"}
		if err := app.Users.CheckUserPassword(user); err != nil {
			t.Errorf("expected success, got %v", err)
		}
	})

	t.Run("rejects the wrong password", func(t *testing.T) {
		user := &wiki.User{ScreenName: "Checker", RawPassword: "battery-staple"}
		if err := app.Users.CheckUserPassword(user); !errors.Is(err, wiki.ErrIncorrectPassword) {
			t.Errorf("expected ErrIncorrectPassword, got %v", err)
		}
	})
}

func TestTalkPageExists(t *testing.T) {
	app, cleanup := testutil.SetupTestApp(t)
	defer cleanup()

	author := testutil.CreateTestUser(t, app, "Author", "author@example.com", "password1")

	t.Run("false before creation", func(t *testing.T) {
		exists, err := app.Users.TalkPageExists("Author")
		if err != nil {
			t.Fatal(err)
		}
		if exists {
			t.Error("expected no talk page yet")
		}
	})

	t.Run("true after creation", func(t *testing.T) {
		talk := wiki.UserTalkTitle("Author")
		if _, err := app.Pages.Edit(talk, author, "hello", ""); err != nil {
			t.Fatal(err)
		}
		exists, err := app.Users.TalkPageExists("Author")
		if err != nil {
			t.Fatal(err)
		}
		if !exists {
			t.Error("expected talk page to exist")
		}
	})
}
