package wiki

// StaticPage is a fixed-title page used by templates for non-article views
// such as special pages and auth forms.
type StaticPage struct {
	title string
}

// NewStaticPage creates a static page with the given display title.
func NewStaticPage(title string) *StaticPage {
	return &StaticPage{title: title}
}

// DisplayTitle returns the page's display title.
func (p *StaticPage) DisplayTitle() string {
	return p.title
}
