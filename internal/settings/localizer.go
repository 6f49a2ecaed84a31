package settings

// Localizer resolves a text key to a display string.
type Localizer interface {
	Localize(key string) string
}

// LocalizerFunc adapts a function to the Localizer interface.
type LocalizerFunc func(key string) string

// Localize implements Localizer.
func (f LocalizerFunc) Localize(key string) string {
	return f(key)
}

// KeyLocalizer returns every key unchanged.
var KeyLocalizer = LocalizerFunc(func(key string) string { return key })
