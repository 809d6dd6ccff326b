package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/x-xyz/launchpad/base/ctx"
	"github.com/x-xyz/launchpad/base/delivery"
	"github.com/x-xyz/launchpad/domain"
)

type AuthMiddleware struct {
	auth domain.AuthUsecase
}

func New(auth domain.AuthUsecase) *AuthMiddleware {
	return &AuthMiddleware{
		auth: auth,
	}
}

func (m *AuthMiddleware) Auth() echo.MiddlewareFunc {
	return middleware.KeyAuth(m.validateAuthToken)
}

func (m *AuthMiddleware) OptionalAuth() echo.MiddlewareFunc {
	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		Skipper: func(c echo.Context) bool {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			return len(auth) == 0
		},
		Validator: m.validateAuthToken,
	})
}

func (m *AuthMiddleware) IsAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if admin, ok := c.Get("admin").(bool); ok && admin {
				return next(c)
			}
			return delivery.MakeJsonResp(c, http.StatusForbidden, "require admin privilege")
		}
	}
}

func (m *AuthMiddleware) validateAuthToken(key string, c echo.Context) (bool, error) {
	context := c.Get("ctx").(ctx.Ctx)
	claims, err := m.auth.ParseToken(context, key)
	if err != nil {
		context.WithField("err", err).Info("auth.ParseToken failed")
		return false, err
	}
	address := domain.Address(claims.Address)
	c.Set("address", address)
	c.Set("admin", claims.Admin)
	c.Set("ctx", ctx.WithValue(context, ctx.KeyCaller, address.ToLowerStr()))
	return true, nil
}

// Caller returns the address of the authenticated wallet
func Caller(c echo.Context) domain.Address {
	if address, ok := c.Get("address").(domain.Address); ok {
		return address.ToLower()
	}
	return ""
}
