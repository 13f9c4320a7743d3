package domain

import "strings"

type NavLink struct {
	Href     string `json:"href"`
	Text     string `json:"text"`
	Category string `json:"category,omitempty"`
}

type PageNavBuildingEvent struct {
	Links []NavLink
}

func (*PageNavBuildingEvent) EventName() string { return "page_nav_building" }

func (e *PageNavBuildingEvent) AddNavLink(href, text, category string) {
	e.Links = append(e.Links, NavLink{Href: href, Text: text, Category: category})
}

type PageSubNavBuildingEvent struct {
	Parent string
	Links  []NavLink
}

func (*PageSubNavBuildingEvent) EventName() string { return "page_sub_nav_building" }

func (e *PageSubNavBuildingEvent) AddNavLink(href, text string) {
	e.Links = append(e.Links, NavLink{Href: href, Text: text, Category: e.Parent})
}

type Cookie struct {
	Name   string
	Value  string
	MaxAge int
}

// PageRequestEvent is sent before a request reaches its handler. A listener
// may halt the request (Halted with Body) or redirect it.
type PageRequestEvent struct {
	Method  string
	Path    string
	Viewer  Viewer
	Cookies map[string]string

	Halted     bool
	HaltStatus int
	Body       any
	Redirect   string
	SetCookies []Cookie
	// Meta holds page metadata by name, sent with the response.
	Meta map[string]string
}

func (*PageRequestEvent) EventName() string { return "page_request" }

// PathStartsWith matches whole path segments, so "wiki" matches "wiki/rules"
// but not "wikipedia".
func (e *PageRequestEvent) PathStartsWith(prefix string) bool {
	p := strings.Trim(e.Path, "/")
	return p == prefix || strings.HasPrefix(p, prefix+"/")
}

func (e *PageRequestEvent) SetMeta(name, content string) {
	if e.Meta == nil {
		e.Meta = make(map[string]string)
	}
	e.Meta[name] = content
}

func (e *PageRequestEvent) Halt(status int, body any) {
	e.Halted = true
	e.HaltStatus = status
	e.Body = body
}

type ImageDeletionEvent struct {
	ImageID int64
	Hash    string
}

func (*ImageDeletionEvent) EventName() string { return "image_deletion" }

type UserDeletionEvent struct {
	UserID int64
}

func (*UserDeletionEvent) EventName() string { return "user_deletion" }

type UserPagePart struct {
	Name    string `json:"name"`
	Content any    `json:"content"`
}

type UserPageBuildingEvent struct {
	DisplayUserID int64
	Viewer        Viewer
	Parts         []UserPagePart
}

func (*UserPageBuildingEvent) EventName() string { return "user_page_building" }

func (e *UserPageBuildingEvent) AddPart(name string, content any) {
	e.Parts = append(e.Parts, UserPagePart{Name: name, Content: content})
}
