package templater

import (
	"fmt"
	"net/url"

	"github.com/larkwiki/larkwiki/wiki"
)

// URL helper functions for templates.
// These generate page URLs with query parameters.

// pageURL returns the base URL for viewing a page.
// Example: pageURL(title) → "/wiki/Test_Page"
func pageURL(title wiki.Title) string {
	return title.LocalURL(nil)
}

// revisionURL returns a URL for viewing a specific revision of a page.
// Example: revisionURL(title, 5) → "/wiki/Test?oldid=5"
func revisionURL(title wiki.Title, revision int) string {
	return title.LocalURL(url.Values{"oldid": {fmt.Sprint(revision)}})
}

// historyURL returns a URL for viewing a page's revision history.
// Example: historyURL(title) → "/wiki/Test?action=history"
func historyURL(title wiki.Title) string {
	return title.LocalURL(url.Values{"action": {"history"}})
}

// diffURL returns a URL for diffing a revision against the current one.
// Example: diffURL(title, 5) → "/wiki/Test?diff=&oldid=5"
func diffURL(title wiki.Title, oldid int) string {
	return title.LocalURL(url.Values{"diff": {""}, "oldid": {fmt.Sprint(oldid)}})
}
