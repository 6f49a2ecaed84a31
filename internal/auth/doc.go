// Package auth authenticates users of the settings host and checks their
// permissions.
//
// Users are configured in the [Users] section of main.toml with argon2id
// password hashes and are checked with HTTP basic auth. Every configured user
// may view the settings menu; game masters may also open restricted menus.
//
// Example usage:
//
//	authService := auth.NewService(cfg.Users)
//
//	app.Use(auth.BasicAuth(authService, cfg.Webserver.Realm))
//	app.Use(auth.ClientContext())
//
//	app.Get("/settings",
//	    auth.RequirePermission(authService, auth.PermSettingsView),
//	    handler,
//	)
package auth
