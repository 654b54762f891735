package middlewares

import (
	"net/http"
	"strings"

	"github.com/c14220110/poliklinik-dashboard/pkg/utils"
	"github.com/labstack/echo/v4"
)

// ContextKeyClaims adalah key echo.Context tempat *utils.Claims disimpan.
const ContextKeyClaims = "claims"

func unauthorized(c echo.Context, message string) error {
	return c.JSON(http.StatusUnauthorized, map[string]interface{}{
		"status":  http.StatusUnauthorized,
		"message": message,
		"data":    nil,
	})
}

// JWTMiddleware memvalidasi header "Authorization: Bearer <token>" dan
// menyimpan claims ke context. Browsers cannot set headers on a websocket
// handshake, so a ?token= query parameter is accepted when the header is absent.
func JWTMiddleware(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				if q := c.QueryParam("token"); q != "" {
					authHeader = "Bearer " + q
				} else {
					return unauthorized(c, "Authorization header missing")
				}
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
				return unauthorized(c, "Invalid authorization header")
			}

			claims, err := utils.ValidateJWTToken(secret, parts[1])
			if err != nil {
				return unauthorized(c, "Invalid token: "+err.Error())
			}

			c.Set(ContextKeyClaims, claims)
			return next(c)
		}
	}
}

// ClaimsFrom returns the claims JWTMiddleware stored, if any.
func ClaimsFrom(c echo.Context) (*utils.Claims, bool) {
	claims, ok := c.Get(ContextKeyClaims).(*utils.Claims)
	return claims, ok && claims != nil
}
