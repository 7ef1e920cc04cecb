package auth

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ichewm/MedicalBible-sub001/internal/platform/fhir"
)

// publicPaths are reachable without a principal: liveness, the capability
// statement, and the static platform Organization.
func isPublic(path string) bool {
	switch path {
	case "/fhir/health", "/fhir/metadata":
		return true
	}
	return strings.HasPrefix(path, "/fhir/Organization")
}

// Middleware extracts the calling account from a bearer token. Tokens are
// issued by the platform identity service; this layer only verifies the HMAC
// signature and reads the numeric subject claim. In development mode the
// X-User-ID header stands in for a token.
func Middleware(secret string, devMode bool, logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if isPublic(c.Request().URL.Path) {
				return next(c)
			}

			if devMode {
				if raw := c.Request().Header.Get("X-User-ID"); raw != "" {
					userID, err := strconv.ParseInt(raw, 10, 64)
					if err != nil {
						return c.JSON(http.StatusUnauthorized, fhir.ErrorOutcome("invalid X-User-ID header"))
					}
					SetPrincipal(c, Principal{UserID: userID})
					return next(c)
				}
			}

			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				return c.JSON(http.StatusUnauthorized, fhir.ErrorOutcome("missing bearer token"))
			}

			userID, err := parseSubject(token, secret)
			if err != nil {
				logger.Debug().Err(err).Msg("token rejected")
				return c.JSON(http.StatusUnauthorized, fhir.ErrorOutcome("invalid bearer token"))
			}

			SetPrincipal(c, Principal{UserID: userID})
			return next(c)
		}
	}
}

func parseSubject(raw, secret string) (int64, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}))
	if err != nil {
		return 0, err
	}

	sub, err := token.Claims.GetSubject()
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(sub, 10, 64)
}
