package wiki

import (
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Namespace numbers follow the usual wiki convention: even numbers are
// subject namespaces, the following odd number is the matching talk
// namespace.
const (
	NamespaceMain     = 0
	NamespaceTalk     = 1
	NamespaceUser     = 2
	NamespaceUserTalk = 3
	NamespaceProject  = 4
	NamespaceFile     = 6
)

var namespacePrefixes = map[int]string{
	NamespaceMain:     "",
	NamespaceTalk:     "Talk",
	NamespaceUser:     "User",
	NamespaceUserTalk: "User talk",
	NamespaceProject:  "Project",
	NamespaceFile:     "File",
}

// Title identifies a page by namespace and text. The text is stored in
// display form ("Main Page"); URL form replaces spaces with underscores.
type Title struct {
	Namespace int
	Text      string
}

// NewTitle builds a validated Title from free-form text. The text is
// trimmed, underscores are normalized to spaces, and the first rune is
// capitalized. Returns ErrInvalidTitle for empty text, unknown namespaces,
// or text containing markup characters.
func NewTitle(text string, namespace int) (Title, error) {
	if _, ok := namespacePrefixes[namespace]; !ok {
		return Title{}, ErrInvalidTitle
	}

	text = strings.TrimSpace(strings.ReplaceAll(text, "_", " "))
	if text == "" || strings.ContainsAny(text, "<>[]{}|#") {
		return Title{}, ErrInvalidTitle
	}

	r, size := utf8.DecodeRuneInString(text)
	text = string(unicode.ToTitle(r)) + text[size:]

	return Title{Namespace: namespace, Text: text}, nil
}

// ParseFullTitle parses a namespace-prefixed page name such as
// "User_talk:Alice" or "Main_Page" into a Title. A colon that doesn't match
// a known namespace prefix is treated as part of a main-namespace title.
func ParseFullTitle(full string) (Title, error) {
	full = strings.ReplaceAll(full, "_", " ")
	if i := strings.Index(full, ":"); i >= 0 {
		prefix := strings.TrimSpace(full[:i])
		for ns, p := range namespacePrefixes {
			if p != "" && strings.EqualFold(p, prefix) {
				return NewTitle(full[i+1:], ns)
			}
		}
	}
	return NewTitle(full, NamespaceMain)
}

// UserPageTitle returns the user page title for a screen name.
func UserPageTitle(screenname string) Title {
	return Title{Namespace: NamespaceUser, Text: screenname}
}

// UserTalkTitle returns the user talk page title for a screen name.
func UserTalkTitle(screenname string) Title {
	return Title{Namespace: NamespaceUserTalk, Text: screenname}
}

// FullText returns the namespace-prefixed display form, e.g. "User:Alice"
// or "Main Page" for the main namespace.
func (t Title) FullText() string {
	prefix := namespacePrefixes[t.Namespace]
	if prefix == "" {
		return t.Text
	}
	return prefix + ":" + t.Text
}

// DBKey returns the canonical storage form of the title text, with
// underscores instead of spaces. The namespace is stored separately.
func (t Title) DBKey() string {
	return strings.ReplaceAll(t.Text, " ", "_")
}

// LocalURL returns the site-relative URL of the page, with an optional
// query string.
func (t Title) LocalURL(query url.Values) string {
	prefix := namespacePrefixes[t.Namespace]
	path := t.DBKey()
	if prefix != "" {
		path = strings.ReplaceAll(prefix, " ", "_") + ":" + path
	}
	u := "/wiki/" + url.PathEscape(path)
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// TalkPage returns the talk title for a subject title. Talk titles return
// themselves.
func (t Title) TalkPage() Title {
	if t.Namespace%2 == 1 {
		return t
	}
	return Title{Namespace: t.Namespace + 1, Text: t.Text}
}
