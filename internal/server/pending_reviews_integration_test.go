package server_test

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/larkwiki/larkwiki/testutil"
	"github.com/larkwiki/larkwiki/wiki"
)

// loginAs logs a user in through the router and returns a client carrying
// their session cookie.
func loginAs(t *testing.T, srv *httptest.Server, screenname, password string) *http.Client {
	t.Helper()

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	client := &http.Client{Jar: jar}

	resp, err := client.PostForm(srv.URL+"/user/login", url.Values{
		"screenname": {screenname},
		"password":   {password},
	})
	if err != nil {
		t.Fatalf("login request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login failed with status %d", resp.StatusCode)
	}
	return client
}

func getDocument(t *testing.T, client *http.Client, url string) *goquery.Document {
	t.Helper()

	resp, err := client.Get(url)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("unexpected status %d: %s", resp.StatusCode, body)
	}
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestPendingReviewsFlow(t *testing.T) {
	app, cleanup := testutil.SetupTestApp(t)
	defer cleanup()

	srv := httptest.NewServer(app.Router())
	defer srv.Close()

	alice := testutil.CreateTestUser(t, app, "Alice", "alice@example.com", "password1")
	testutil.CreateTestUser(t, app, "Bob", "bob@example.com", "password2")

	bob := loginAs(t, srv, "Bob", "password2")

	// Bob watches a page that doesn't exist yet.
	resp, err := bob.PostForm(srv.URL+"/wiki/Test_Page?action=watch", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	title, err := wiki.ParseFullTitle("Test_Page")
	if err != nil {
		t.Fatal(err)
	}

	t.Run("edit by another user shows up", func(t *testing.T) {
		if _, err := app.Pages.Edit(title, alice, "hello world", "first draft"); err != nil {
			t.Fatal(err)
		}

		doc := getDocument(t, bob, srv.URL+"/wiki/Special:PendingReviews")

		row := doc.Find("tr.pendingreviews-row")
		if row.Length() == 0 {
			t.Fatal("expected a pending review row")
		}
		if !strings.Contains(doc.Find("strong").Text(), "Test Page") {
			t.Error("expected the watched page's title in the row")
		}
		if !strings.Contains(doc.Find("li").Text(), "edited by User:Alice") {
			t.Error("expected the edit attributed to Alice")
		}
	})

	t.Run("own edits do not notify", func(t *testing.T) {
		otherTitle, _ := wiki.ParseFullTitle("Bobs_Page")
		resp, err := bob.PostForm(srv.URL+"/wiki/Bobs_Page?action=watch", nil)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()

		bobUser, err := app.Users.GetUserByScreenName("Bob")
		if err != nil {
			t.Fatal(err)
		}
		if _, err := app.Pages.Edit(otherTitle, bobUser, "my own page", ""); err != nil {
			t.Fatal(err)
		}

		doc := getDocument(t, bob, srv.URL+"/wiki/Special:PendingReviews")
		if strings.Contains(doc.Find("strong").Text(), "Bobs Page") {
			t.Error("a user's own edit must not appear in their pending reviews")
		}
	})

	t.Run("clearing removes the row", func(t *testing.T) {
		doc := getDocument(t, bob,
			srv.URL+"/wiki/Special:PendingReviews?clearNotificationTitle=Test_Page&clearNotificationNS=0")
		if !strings.Contains(doc.Text(), "Marked changes to Test Page as reviewed") {
			t.Error("expected clear confirmation")
		}

		doc = getDocument(t, bob, srv.URL+"/wiki/Special:PendingReviews")
		if strings.Contains(doc.Find("strong").Text(), "Test Page") {
			t.Error("cleared page must not appear in the list")
		}
	})

	t.Run("deletion shows a deleted row", func(t *testing.T) {
		if _, err := app.Pages.Edit(title, alice, "hello again", "back for more"); err != nil {
			t.Fatal(err)
		}
		if err := app.Pages.Delete(title, alice); err != nil {
			t.Fatal(err)
		}

		doc := getDocument(t, bob, srv.URL+"/wiki/Special:PendingReviews")
		if !strings.Contains(doc.Find("strong").Text(), "Test Page has been deleted") {
			t.Error("expected deleted-page row")
		}
		if !strings.Contains(doc.Find("a.pendingreviews-red-button").Text(), "Accept deletion") {
			t.Error("expected accept-deletion button")
		}
		if !strings.Contains(doc.Find("a.pendingreviews-dark-blue-button").Text(), "Contact User:Alice") {
			t.Error("expected contact button for the deleter")
		}
	})

	t.Run("anonymous viewer is redirected to login", func(t *testing.T) {
		anon := &http.Client{
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		}
		resp, err := anon.Get(srv.URL + "/wiki/Special:PendingReviews")
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusSeeOther {
			t.Fatalf("expected redirect, got %d", resp.StatusCode)
		}
		if loc := resp.Header.Get("Location"); !strings.HasPrefix(loc, "/user/login") {
			t.Errorf("expected login redirect, got %q", loc)
		}
	})
}

func TestPageMoveNotifiesWatchers(t *testing.T) {
	app, cleanup := testutil.SetupTestApp(t)
	defer cleanup()

	srv := httptest.NewServer(app.Router())
	defer srv.Close()

	// First registered user is automatically an admin.
	admin := testutil.CreateTestUser(t, app, "Admin", "admin@example.com", "password1")
	testutil.CreateTestUser(t, app, "Carol", "carol@example.com", "password2")

	carol := loginAs(t, srv, "Carol", "password2")

	from, _ := wiki.ParseFullTitle("Old_Name")
	to, _ := wiki.ParseFullTitle("New_Name")

	if _, err := app.Pages.Edit(from, admin, "content", ""); err != nil {
		t.Fatal(err)
	}

	resp, err := carol.PostForm(srv.URL+"/wiki/Old_Name?action=watch", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	if err := app.Pages.Move(from, to, admin); err != nil {
		t.Fatal(err)
	}

	doc := getDocument(t, carol, srv.URL+"/wiki/Special:PendingReviews")
	if !strings.Contains(doc.Find("li").Text(), "moved by User:Admin to New Name") {
		t.Errorf("expected move entry in change list, got %q", doc.Find("li").Text())
	}
}
