package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/painelfacil/painel-api/internal/api/metrics"
	"github.com/painelfacil/painel-api/internal/core/domain"
	"github.com/painelfacil/painel-api/pkg/token"
)

// publicPaths may be reached without a credential; with one they redirect
// home instead.
var publicPaths = map[string]struct{}{
	"/login":          {},
	"/register":       {},
	"/reset-password": {},
}

// PathResolver returns the paths a role's navigation exposes, implemented
// by the menu resolver.
type PathResolver interface {
	VisiblePaths(ctx context.Context, roleID int) ([]string, error)
}

// Decision is the outcome of one guard evaluation.
type Decision int

const (
	Allow Decision = iota
	RedirectLogin
	RedirectHome
)

// Guard authorizes page navigations before anything renders. It is a pure
// function of the request's credential cookie and path; the only side
// effect is allow-or-redirect. The credential is decoded, not verified;
// the API behind the page still runs the verifying Auth middleware, so a
// forged cookie gets an empty page, never data.
func Guard(resolver PathResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			credential := ""
			if cookie, err := c.Cookie(CookieName); err == nil {
				credential = cookie.Value
			}

			switch Decide(c.Request().Context(), credential, c.Request().URL.Path, resolver) {
			case RedirectLogin:
				metrics.GuardDecisionsTotal.WithLabelValues("redirect_login").Inc()
				return c.Redirect(http.StatusFound, "/login")
			case RedirectHome:
				metrics.GuardDecisionsTotal.WithLabelValues("redirect_home").Inc()
				return c.Redirect(http.StatusFound, "/")
			}
			metrics.GuardDecisionsTotal.WithLabelValues("allow").Inc()
			return next(c)
		}
	}
}

// Decide evaluates the navigation rules. Anonymous requests may only reach
// public paths; everything else sends them to login. A signed-in session
// visiting a public path goes home. An undecodable credential or one with
// no role counts as no session. The privileged role sees everything; any
// other role is held to the paths its visible menu set covers. A resolver
// failure redirects to login rather than allowing.
func Decide(ctx context.Context, credential, path string, resolver PathResolver) Decision {
	_, public := publicPaths[path]

	if credential == "" {
		if public {
			return Allow
		}
		return RedirectLogin
	}
	if public {
		return RedirectHome
	}

	claims := token.Decode(credential)
	if claims == nil || claims.RoleID <= 0 {
		return RedirectLogin
	}
	if claims.RoleID == domain.RoleAdmin {
		return Allow
	}
	if path == "/" {
		return Allow
	}

	visible, err := resolver.VisiblePaths(ctx, claims.RoleID)
	if err != nil {
		return RedirectLogin
	}
	for _, p := range visible {
		if pathCovered(path, p) {
			return Allow
		}
	}
	return RedirectHome
}

// pathCovered reports whether requested equals visible or sits beneath it
// (prefix plus separator, so /products does not cover /products-archive).
func pathCovered(requested, visible string) bool {
	if visible == "" {
		return false
	}
	if requested == visible {
		return true
	}
	return strings.HasPrefix(requested, strings.TrimSuffix(visible, "/")+"/")
}
