package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/train-seat-booking/internal/model"
	"github.com/iliyamo/train-seat-booking/internal/utils"
)

// AuthHandler issues access tokens to the accounts configured in
// AUTH_USERS.
type AuthHandler struct {
	accounts     map[string]model.Account
	JWTSecret    string
	AccessTTLMin int
}

// NewAuthHandler constructs an AuthHandler for accounts.
func NewAuthHandler(accounts []model.Account, secret string, ttlMin int) *AuthHandler {
	m := make(map[string]model.Account, len(accounts))
	for _, a := range accounts {
		m[a.Username] = a
	}
	return &AuthHandler{accounts: m, JWTSecret: secret, AccessTTLMin: ttlMin}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /v1/auth/login. It verifies the bcrypt password and
// returns a signed access token carrying the account role.
func (h *AuthHandler) Login(c echo.Context) error {
	var body loginRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	body.Username = strings.TrimSpace(body.Username)
	if body.Username == "" || body.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username and password are required"})
	}
	acct, ok := h.accounts[body.Username]
	if !ok || !utils.VerifyPassword(acct.PasswordHash, body.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	tok, err := utils.NewAccessToken(h.JWTSecret, acct.Username, acct.Role, h.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to issue token"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"access_token": tok.Token,
		"token_type":   "Bearer",
		"expires_at":   tok.Exp,
		"role":         acct.Role,
	})
}
