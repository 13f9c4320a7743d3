// Package terms asks anonymous visitors to accept the site terms before
// they can see anything outside the wiki.
package terms

import (
	"context"
	"net/http"
	"path"
	"strings"

	"gallery/internal/domain"
	"gallery/internal/domain/setting"
)

const (
	KeyMessage     = "terms_message"
	KeyTitle       = "title"
	KeyLoginMemory = "login_memory"

	CookieName = "accepted_terms"

	acceptPrefix = "accept_terms"
	defaultDays  = 365
)

type Gate struct {
	Title     string `json:"title"`
	Message   string `json:"message"`
	AcceptURL string `json:"accept_url"`
}

type Listener struct {
	settings setting.Store
}

var _ domain.Listener = (*Listener)(nil)

func NewListener(settings setting.Store) *Listener {
	return &Listener{settings: settings}
}

func (l *Listener) Name() string { return "terms" }

func (l *Listener) ReceiveEvent(_ context.Context, e domain.Event) error {
	ev, ok := e.(*domain.PageRequestEvent)
	if !ok {
		return nil
	}

	if ev.PathStartsWith(acceptPrefix) {
		cookie, target := l.Accept(ev.Path)
		ev.SetCookies = append(ev.SetCookies, cookie)
		ev.Redirect = target
		return nil
	}

	if !ev.Viewer.Anonymous() || ev.Cookies[CookieName] != "" || ev.PathStartsWith("wiki") {
		return nil
	}

	ev.Halt(http.StatusForbidden, Gate{
		Title:     l.settings.GetString(KeyTitle),
		Message:   l.settings.GetString(KeyMessage),
		AcceptURL: "/" + acceptPrefix + "/" + strings.Trim(ev.Path, "/"),
	})
	return nil
}

// Accept returns the cookie recording acceptance and the page to go back to
// for an "accept_terms/<page>" path. The target is always a path on this
// site.
func (l *Listener) Accept(p string) (domain.Cookie, string) {
	days := l.settings.GetInt(KeyLoginMemory)
	if days <= 0 {
		days = defaultDays
	}

	rest := strings.TrimPrefix(strings.Trim(p, "/"), acceptPrefix)
	return domain.Cookie{
		Name:   CookieName,
		Value:  "true",
		MaxAge: days * 24 * 60 * 60,
	}, localPath(rest)
}

// localPath cleans p into an absolute path that cannot leave the site.
func localPath(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	target := path.Clean("/" + strings.TrimLeft(p, "/"))
	if strings.HasPrefix(target, "//") || strings.ContainsAny(target, "\r\n") {
		return "/"
	}
	return target
}
