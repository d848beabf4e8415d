package special

import (
	"strings"
	"testing"
	"time"

	"github.com/larkwiki/larkwiki/wiki"
)

func TestClassifyChange(t *testing.T) {
	reviews := &mockReviewLister{
		moveTargets: map[string]string{`{"target":"New Home","target_ns":0}`: "New Home"},
	}
	page := testPage(reviews, nil, &mockPRTemplater{})

	logCase := func(logType, action string) wiki.MergedEntry {
		return wiki.MergedEntry{Log: &wiki.LogEntry{
			Type: logType, Action: action, ActorName: "Admin", Created: at(0),
		}}
	}

	t.Run("known log pairs use their message", func(t *testing.T) {
		cases := []struct {
			logType string
			action  string
			want    string
		}{
			{wiki.LogTypeApproval, wiki.LogActionApprove, "approved by User:Admin"},
			{wiki.LogTypeApproval, wiki.LogActionUnapprove, "approval revoked by User:Admin"},
			{wiki.LogTypeDelete, wiki.LogActionDelete, "deleted by User:Admin"},
			{wiki.LogTypeDelete, wiki.LogActionRestore, "restored by User:Admin"},
			{wiki.LogTypeImport, wiki.LogActionUpload, "imported by file upload by User:Admin"},
			{wiki.LogTypeProtect, wiki.LogActionProtect, "protected by User:Admin"},
			{wiki.LogTypeProtect, wiki.LogActionUnprotect, "unprotected by User:Admin"},
			{wiki.LogTypeProtect, wiki.LogActionModify, "protection settings changed by User:Admin"},
			{wiki.LogTypeUpload, wiki.LogActionUpload, "new file uploaded by User:Admin"},
			{wiki.LogTypeUpload, wiki.LogActionOverwrite, "file overwritten by User:Admin"},
		}
		for _, c := range cases {
			if got := page.classifyChange(logCase(c.logType, c.action)); got != c.want {
				t.Errorf("(%s, %s): expected %q, got %q", c.logType, c.action, c.want, got)
			}
		}
	})

	t.Run("unknown pair degrades to generic description", func(t *testing.T) {
		got := page.classifyChange(logCase(wiki.LogTypeDelete, wiki.LogActionProtect))
		if got != "unknown change by User:Admin" {
			t.Errorf("expected generic description, got %q", got)
		}
	})

	t.Run("move interpolates the resolved target", func(t *testing.T) {
		entry := wiki.MergedEntry{Log: &wiki.LogEntry{
			Type: wiki.LogTypeMove, Action: wiki.LogActionMove, ActorName: "Admin",
			Params: `{"target":"New Home","target_ns":0}`, Created: at(0),
		}}
		got := page.classifyChange(entry)
		if got != "moved by User:Admin to New Home" {
			t.Errorf("unexpected move description: %q", got)
		}
	})

	t.Run("move with unresolvable params degrades to generic", func(t *testing.T) {
		entry := wiki.MergedEntry{Log: &wiki.LogEntry{
			Type: wiki.LogTypeMove, Action: wiki.LogActionMoveRedir, ActorName: "Admin",
			Params: "not json", Created: at(0),
		}}
		if got := page.classifyChange(entry); got != "unknown change by User:Admin" {
			t.Errorf("expected generic description, got %q", got)
		}
	})

	t.Run("revision comment is shown escaped", func(t *testing.T) {
		entry := wiki.MergedEntry{Rev: &wiki.Revision{
			ActorName: "Editor", Comment: "fix <b> tags", Created: at(0),
		}}
		got := page.classifyChange(entry)
		if got != "edited by User:Editor with comment: fix &lt;b&gt; tags" {
			t.Errorf("unexpected revision description: %q", got)
		}
	})

	t.Run("revision without comment", func(t *testing.T) {
		entry := wiki.MergedEntry{Rev: &wiki.Revision{ActorName: "Editor", Created: at(0)}}
		if got := page.classifyChange(entry); got != "edited by User:Editor" {
			t.Errorf("unexpected revision description: %q", got)
		}
	})
}

func TestReviewButton(t *testing.T) {
	title, _ := wiki.NewTitle("Page A", wiki.NamespaceMain)

	t.Run("links diff against the last reviewed revision", func(t *testing.T) {
		reviews := &mockReviewLister{
			previous: map[int]*wiki.Revision{11: {ID: 10}},
		}
		page := testPage(reviews, nil, &mockPRTemplater{})

		item := wiki.NewStandardItem(title, []*wiki.Revision{
			{ID: 12, Created: at(20)},
			{ID: 11, Created: at(10), PreviousID: 10},
		}, nil)

		button := page.reviewButton(item)
		if !strings.Contains(button, "oldid=10") || !strings.Contains(button, "diff=") {
			t.Errorf("expected diff link against revision 10, got %q", button)
		}
		if !strings.Contains(button, "2 changes since your last review") {
			t.Errorf("expected plural change count, got %q", button)
		}
	})

	t.Run("singular label for one revision", func(t *testing.T) {
		reviews := &mockReviewLister{previous: map[int]*wiki.Revision{11: {ID: 10}}}
		page := testPage(reviews, nil, &mockPRTemplater{})

		item := wiki.NewStandardItem(title, []*wiki.Revision{{ID: 11, Created: at(10), PreviousID: 10}}, nil)
		if button := page.reviewButton(item); !strings.Contains(button, "1 change since your last review") {
			t.Errorf("expected singular label, got %q", button)
		}
	})

	t.Run("first revision still unreviewed links latest", func(t *testing.T) {
		reviews := &mockReviewLister{
			latest: map[string]*wiki.Revision{"Page A": {ID: 11}},
		}
		page := testPage(reviews, nil, &mockPRTemplater{})

		item := wiki.NewStandardItem(title, []*wiki.Revision{{ID: 11, Created: at(10)}}, nil)
		button := page.reviewButton(item)
		if !strings.Contains(button, "No content changes - view latest") {
			t.Errorf("expected latest-revision fallback, got %q", button)
		}
		if !strings.Contains(button, "oldid=11") || strings.Contains(button, "diff=") {
			t.Errorf("expected plain revision link, got %q", button)
		}
	})

	t.Run("no revisions at all links latest", func(t *testing.T) {
		reviews := &mockReviewLister{
			latest: map[string]*wiki.Revision{"Page A": {ID: 5}},
		}
		page := testPage(reviews, nil, &mockPRTemplater{})

		item := wiki.NewStandardItem(title, nil, []*wiki.LogEntry{
			{Type: wiki.LogTypeProtect, Action: wiki.LogActionProtect, Created: at(10)},
		})
		if button := page.reviewButton(item); !strings.Contains(button, "oldid=5") {
			t.Errorf("expected latest-revision link, got %q", button)
		}
	})

	t.Run("missing latest revision renders no button", func(t *testing.T) {
		reviews := &mockReviewLister{}
		page := testPage(reviews, nil, &mockPRTemplater{})

		item := wiki.NewStandardItem(title, nil, nil)
		if button := page.reviewButton(item); button != "" {
			t.Errorf("expected empty button, got %q", button)
		}
	})
}

func TestElement(t *testing.T) {
	got := element("a", map[string]string{"href": "/x?a=1&b=2", "class": "btn"}, `Tom & "Jerry"`)
	want := `<a class="btn" href="/x?a=1&amp;b=2">Tom &amp; &#34;Jerry&#34;</a>`
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestChangeListTimes(t *testing.T) {
	page := testPage(&mockReviewLister{}, nil, &mockPRTemplater{})
	page.formatTime = func(ts time.Time) string { return ts.Format(time.RFC3339) }

	entries := []wiki.MergedEntry{
		{Rev: &wiki.Revision{ActorName: "Editor", Created: at(10)}},
	}
	list := page.changeList(entries)
	if !strings.Contains(list, `<span class="pendingreviews-changes-list-time">2024-03-01T00:10:00Z</span>`) {
		t.Errorf("expected timestamp span, got %q", list)
	}
}
