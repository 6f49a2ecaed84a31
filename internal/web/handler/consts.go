package handler

const (
	// BaseLayout is the default path for layout templates.
	BaseLayout = "layouts/base"

	// RootPath is the root path the route group.
	RootPath = "/"

	// ErrNilDepsFatalLogMsg is used if app or a required dependency is nil.
	ErrNilDepsFatalLogMsg = "app, cfg, store, schema or auth is nil"
)
