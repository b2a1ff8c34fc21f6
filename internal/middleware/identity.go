package middleware

import "github.com/labstack/echo/v4"

// UserID returns the authenticated user name stored by JWTAuth, or ""
// for anonymous requests.
func UserID(c echo.Context) string {
	if s, ok := c.Get(CtxUserID).(string); ok {
		return s
	}
	return ""
}

// userOrAnon is UserID with a placeholder for anonymous requests, used
// when building Redis keys.
func userOrAnon(c echo.Context) string {
	if u := UserID(c); u != "" {
		return u
	}
	return "anon"
}
