package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/rs/zerolog/log"

	"github.com/deltagreen-vtt/dgsettings/internal/settings"
)

// fiber.Ctx locals set by the middlewares of this package.
const (
	// LocalUsername holds the authenticated user name.
	LocalUsername = "username"
	// LocalPermissions holds the permissions of the user.
	LocalPermissions = "permissions"
	// LocalGameMaster is true for users who may open restricted menus.
	LocalGameMaster = "gameMaster"
)

// BasicAuth creates the basic auth middleware for the configured users.
func BasicAuth(authService *Service, realm string) fiber.Handler {
	return basicauth.New(basicauth.Config{
		Realm: realm,
		Authorizer: func(username, password string) bool {
			if err := authService.Authenticate(username, password); err != nil {
				log.Warn().Err(err).Str("user", username).Msg("basic auth rejected")
				return false
			}

			return true
		},
		ContextUsername: LocalUsername,
	})
}

// Username returns the authenticated user of a request.
func Username(c *fiber.Ctx) string {
	username, _ := c.Locals(LocalUsername).(string)
	return username
}

// RequirePermission creates Fiber middleware that requires a specific permission.
func RequirePermission(authService *Service, permission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		username := Username(c)
		if username == "" {
			return c.Status(fiber.StatusUnauthorized).SendString("Unauthorized")
		}

		if !authService.HasPermission(username, permission) {
			log.Warn().Str("user", username).Str("permission", permission).
				Msg("User lacks required permission")

			return c.Status(fiber.StatusForbidden).SendString("Forbidden: You don't have permission to access this resource")
		}

		return c.Next()
	}
}

// ClientContext attaches the authenticated user to the request context, so
// client scoped settings are read and written in the user's partition.
func ClientContext() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if username := Username(c); username != "" {
			c.SetUserContext(settings.WithClient(c.UserContext(), username))
		}

		return c.Next()
	}
}

// AddPermissionsToLocals stores the user's permissions and game master
// state in fiber.Locals, for handlers and for templates rendered with
// PassLocalsToViews.
func AddPermissionsToLocals(authService *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		username := Username(c)
		if username == "" {
			return c.Next()
		}

		c.Locals(LocalPermissions, authService.GetUserPermissions(username))
		c.Locals(LocalGameMaster, authService.HasPermission(username, PermSettingsRestricted))

		return c.Next()
	}
}

// GameMaster reports whether AddPermissionsToLocals marked the user as game master.
func GameMaster(c *fiber.Ctx) bool {
	gm, _ := c.Locals(LocalGameMaster).(bool)
	return gm
}
