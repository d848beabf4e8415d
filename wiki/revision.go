package wiki

import "time"

// Revision is a stored version of a page's content.
type Revision struct {
	ID         int       `db:"id"`
	PageID     int       `db:"page_id"`
	ActorName  string    `db:"actor_name"`
	Comment    string    `db:"comment"`
	Content    string    `db:"content"`
	Created    time.Time `db:"created"`
	PreviousID int       `db:"previous_id"`
}

// Page is a wiki page. Content lives in its revisions.
type Page struct {
	ID        int    `db:"id"`
	Namespace int    `db:"namespace"`
	Title     string `db:"title"`
}

// PageTitle returns the page's Title value. Stored titles were validated on
// the way in, so the fallback only triggers on hand-edited databases.
func (p *Page) PageTitle() Title {
	t, err := NewTitle(p.Title, p.Namespace)
	if err != nil {
		return Title{Namespace: p.Namespace, Text: p.Title}
	}
	return t
}
