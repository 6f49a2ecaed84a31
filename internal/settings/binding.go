package settings

// Binding exposes a namespace as one menu entry of the host.
type Binding struct {
	Namespace  Namespace
	Name       string // localization key of the menu title
	Label      string // localization key of the button label
	Hint       string // localization key, may be empty
	Icon       string
	Restricted bool // only privileged users may open the form
}

// Visible reports whether the entry is shown to a user.
func (b Binding) Visible(privileged bool) bool {
	return privileged || !b.Restricted
}

// MenuEntry is a binding with its texts resolved.
type MenuEntry struct {
	Namespace  Namespace
	Title      string
	Label      string
	Hint       string
	Icon       string
	Restricted bool
}

// Menu resolves the bindings visible to a user, keeping their order.
func Menu(bindings []Binding, l Localizer, privileged bool) []MenuEntry {
	entries := make([]MenuEntry, 0, len(bindings))

	for _, b := range bindings {
		if !b.Visible(privileged) {
			continue
		}

		e := MenuEntry{
			Namespace:  b.Namespace,
			Title:      l.Localize(b.Name),
			Label:      l.Localize(b.Label),
			Icon:       b.Icon,
			Restricted: b.Restricted,
		}

		if b.Hint != "" {
			e.Hint = l.Localize(b.Hint)
		}

		entries = append(entries, e)
	}

	return entries
}
