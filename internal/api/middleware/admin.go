package middleware

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/hackathon-hub/api/internal/api/handler/v1/response"
	"github.com/hackathon-hub/api/internal/domain"
)

var errAdminRequired = errors.New("admin role required")

type UserFinder interface {
	GetUser(ctx context.Context, id uint) (domain.User, error)
}

// RequireAdmin gates admin routes. The role from the token claims is
// trusted when it says admin; otherwise a fresh store lookup decides, so a
// freshly promoted admin does not need to log in again.
func RequireAdmin(users UserFinder) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if role, ok := ctx.Get(CtxKeyUserRole); ok && role == domain.RoleAdmin {
			ctx.Next()

			return
		}

		userID, ok := UserID(ctx)
		if !ok {
			response.RenderErr(ctx, response.ErrForbidden(errAdminRequired))

			return
		}

		user, err := users.GetUser(ctx.Request.Context(), userID)
		if err != nil || !user.IsAdmin() {
			response.RenderErr(ctx, response.ErrForbidden(errAdminRequired))

			return
		}

		ctx.Next()
	}
}
