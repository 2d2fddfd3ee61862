package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/unfake-app/unfake/internal/pkg/session"
	"github.com/unfake-app/unfake/internal/pkg/usercontext"
)

// Session keys written at login time.
const (
	SessionKeyAuthenticated = "authenticated"
	SessionKeyUserID        = "user_id"
	SessionKeyUserName      = "username"
	SessionKeyIsAdmin       = "isAdmin"
)

// UserContextMiddleware resolves the session into a UserContext local for
// every request, so handlers never touch the session store directly.
func UserContextMiddleware(c *fiber.Ctx) error {
	anonymous := usercontext.UserContext{IsLoggedIn: false, IsAdmin: false}

	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		c.Locals(usercontext.ContextKey, anonymous)
		return c.Next()
	}

	userID, ok := sess.Get(SessionKeyUserID).(uint)
	if !ok {
		c.Locals(usercontext.ContextKey, anonymous)
		return c.Next()
	}

	username, _ := sess.Get(SessionKeyUserName).(string)
	isAdmin, _ := sess.Get(SessionKeyIsAdmin).(bool)

	c.Locals(usercontext.ContextKey, usercontext.UserContext{
		UserID:     userID,
		Username:   username,
		IsLoggedIn: true,
		IsAdmin:    isAdmin,
	})

	return c.Next()
}
