package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/EFGFA/Comp313-Sec002-Group2-Task-management/internal/core/domain"
)

// ctxPrincipal rebuilds the principal from the claims injected by the Auth
// middleware and performs a fast-fail check before any service call: both
// claims must be present and the role must be one we know, otherwise the
// token is structurally valid but operationally unusable.
func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	id, _ := c.Get("user_id").(string)
	roleStr, _ := c.Get("role").(string)
	if id == "" || roleStr == "" {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	role, err := domain.ParseRole(roleStr)
	if err != nil {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "unknown role in token")
	}

	return domain.Principal{ID: id, Role: role}, nil
}
