package special

import (
	"fmt"
	"html"
	"html/template"
	"sort"
	"strings"

	"github.com/larkwiki/larkwiki/wiki"
)

// renderStandardRow produces the two-row table fragment for a page that
// still exists: a header row with the bolded title and the diff and history
// buttons, and a detail row spanning both columns with the page's merged
// change list.
func (p *PendingReviewsPage) renderStandardRow(item *wiki.PendingReviewItem, rowCount int) template.HTML {
	combined := wiki.MergeTimeline(item.Log, item.NewRevisions)
	changes := p.changeList(combined)

	reviewButton := p.reviewButton(item)
	historyButton := p.historyButton(item)

	displayTitle := "<strong>" + html.EscapeString(item.Title.FullText()) + "</strong>"
	classAndAttr := rowClassAttr(rowCount)

	var b strings.Builder
	fmt.Fprintf(&b, `<tr %s><td class="pendingreviews-page-title pendingreviews-top-cell">%s</td>`, classAndAttr, displayTitle)
	fmt.Fprintf(&b, `<td class="pendingreviews-review-links pendingreviews-bottom-cell pendingreviews-top-cell">%s %s</td></tr>`, reviewButton, historyButton)
	fmt.Fprintf(&b, `<tr %s><td colspan="2" class="pendingreviews-bottom-cell">%s</td></tr>`, classAndAttr, changes)

	return template.HTML(b.String())
}

// renderDeletedRow produces the same two-row shape for a page that has been
// deleted since the user started watching it. The title cell wraps the
// deleted page's last known name, the action cell offers mark-reviewed and
// contact-deleter buttons, and the change list comes from the deletion log
// alone.
func (p *PendingReviewsPage) renderDeletedRow(item *wiki.PendingReviewItem, rowCount int) template.HTML {
	entries := make([]wiki.MergedEntry, 0, len(item.DeletionLog))
	for _, logEntry := range item.DeletionLog {
		entries = append(entries, wiki.MergedEntry{Log: logEntry})
	}
	changes := p.changeList(entries)

	acceptButton := p.markReviewedButton(item.DeletedTitle, item.DeletedNamespace)
	talkButton := p.deleterTalkButton(item.DeletionLog)

	// DeletedTitle is the storage key; show it with spaces.
	displayText := strings.ReplaceAll(item.DeletedTitle, "_", " ")
	fullName := wiki.Title{Namespace: item.DeletedNamespace, Text: displayText}.FullText()
	displayTitle := fmt.Sprintf("<strong>%s has been deleted</strong>", html.EscapeString(fullName))
	classAndAttr := rowClassAttr(rowCount)

	var b strings.Builder
	fmt.Fprintf(&b, `<tr %s><td class="pendingreviews-page-title pendingreviews-top-cell">%s</td>`, classAndAttr, displayTitle)
	fmt.Fprintf(&b, `<td class="pendingreviews-review-links pendingreviews-bottom-cell pendingreviews-top-cell">%s %s</td></tr>`, acceptButton, talkButton)
	fmt.Fprintf(&b, `<tr %s><td colspan="2" class="pendingreviews-bottom-cell">%s</td></tr>`, classAndAttr, changes)

	return template.HTML(b.String())
}

// rowClassAttr builds the shared class attribute for a row pair: alternating
// stripe class plus an index class as a scripting hook.
func rowClassAttr(rowCount int) string {
	rowClass := "pendingreviews-odd-row"
	if rowCount%2 == 0 {
		rowClass = "pendingreviews-even-row"
	}
	return fmt.Sprintf(`class="pendingreviews-row %s pendingreviews-row-%d" data-pendingreviews-row-count="%d"`, rowClass, rowCount, rowCount)
}

// changeList renders a merged timeline as an unordered list, newest first,
// each entry led by its human-relative timestamp.
func (p *PendingReviewsPage) changeList(entries []wiki.MergedEntry) string {
	var b strings.Builder
	b.WriteString("<ul>")
	for _, entry := range entries {
		b.WriteString("<li>")
		b.WriteString(element("span", map[string]string{"class": "pendingreviews-changes-list-time"}, p.formatTime(entry.Created())))
		b.WriteString(" ")
		b.WriteString(p.classifyChange(entry))
		b.WriteString("</li>")
	}
	b.WriteString("</ul>")
	return b.String()
}

// classifyChange maps one merged entry to its escaped description HTML.
//
// Log entries dispatch on (type, action); pairs outside the table degrade to
// a generic unknown-change description rather than failing. Move entries
// additionally interpolate the resolved move target. Revisions show their
// comment verbatim when present.
func (p *PendingReviewsPage) classifyChange(entry wiki.MergedEntry) string {
	if entry.Log != nil {
		logEntry := entry.Log
		userPage := html.EscapeString(wiki.UserPageTitle(logEntry.ActorName).FullText())

		message, ok := logChangeMessages[logEntry.Type][logEntry.Action]
		if !ok {
			return fmt.Sprintf(msgUnknownChange, userPage)
		}

		if logEntry.Action == wiki.LogActionMove || logEntry.Action == wiki.LogActionMoveRedir {
			target, err := p.reviews.MoveTarget(logEntry.Params)
			if err != nil {
				return fmt.Sprintf(msgUnknownChange, userPage)
			}
			return fmt.Sprintf(message, userPage, html.EscapeString(target))
		}

		return fmt.Sprintf(message, userPage)
	}

	rev := entry.Rev
	userPage := html.EscapeString(wiki.UserPageTitle(rev.ActorName).FullText())
	if rev.Comment != "" {
		return fmt.Sprintf(msgEditedWithComment, userPage, html.EscapeString(rev.Comment))
	}
	return fmt.Sprintf(msgEditedBy, userPage)
}

// element renders a single HTML element with escaped attributes and text.
// Attributes are emitted in sorted order so output is deterministic.
func element(tag string, attrs map[string]string, text string) string {
	keys := make([]string, 0, len(attrs))
	for key := range attrs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("<")
	b.WriteString(tag)
	for _, key := range keys {
		fmt.Fprintf(&b, ` %s="%s"`, key, html.EscapeString(attrs[key]))
	}
	b.WriteString(">")
	b.WriteString(html.EscapeString(text))
	b.WriteString("</")
	b.WriteString(tag)
	b.WriteString(">")
	return b.String()
}
