// Package navigation provides the page title, breadcrumbs and side menu of a page.
package navigation

// BreadcrumbItem represents a single breadcrumb link.
type BreadcrumbItem struct {
	Title  string
	URL    string
	Active bool
}

// MenuItem is one side menu link.
type MenuItem struct {
	Title  string
	URL    string
	Icon   string
	Active bool
}

// Context represents the navigation context for a page.
type Context struct {
	ActiveSection string
	ActivePage    string
	Breadcrumbs   []BreadcrumbItem
	Menu          []MenuItem
	PageTitle     string
}

// NewContext creates a new navigation context.
func NewContext(pageTitle, activeSection, activePage string) *Context {
	return &Context{
		PageTitle:     pageTitle,
		ActiveSection: activeSection,
		ActivePage:    activePage,
		Breadcrumbs:   make([]BreadcrumbItem, 0),
	}
}

// AddBreadcrumb adds a breadcrumb item to the context.
func (c *Context) AddBreadcrumb(title, url string, active bool) *Context {
	c.Breadcrumbs = append(c.Breadcrumbs, BreadcrumbItem{
		Title:  title,
		URL:    url,
		Active: active,
	})

	return c
}

// AddMenuItem adds a side menu link. It is marked active when page is the active page.
func (c *Context) AddMenuItem(title, url, icon, page string) *Context {
	c.Menu = append(c.Menu, MenuItem{
		Title:  title,
		URL:    url,
		Icon:   icon,
		Active: c.ActivePage == page,
	})

	return c
}
