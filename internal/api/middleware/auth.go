package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dainadb/improplan/internal/api/handler/v1/response"
	"github.com/dainadb/improplan/internal/domain"
	"github.com/dainadb/improplan/internal/pkg/jwthelper"
)

// Context keys set by VerifyJWT for downstream handlers.
const (
	CtxKeyUserID    = "userID"
	CtxKeyUserEmail = "userEmail"
	CtxKeyUserRoles = "userRoles"
)

type Authenticator struct {
	signingKey string
}

func NewAuthenticator(signingKey string) *Authenticator {
	return &Authenticator{
		signingKey: signingKey,
	}
}

// VerifyJWT rejects requests without a valid bearer token and stores the
// caller's identity on the gin context.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		if header == "" {
			response.RenderErr(ctx, response.ErrUnauthorized("missing authorization header"))
			return
		}

		token, found := strings.CutPrefix(header, "Bearer ")
		if !found {
			response.RenderErr(ctx, response.ErrUnauthorized("malformed authorization header"))
			return
		}

		claims, err := jwthelper.ParseToken(a.signingKey, token)
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized("invalid or expired token"))
			return
		}

		ctx.Set(CtxKeyUserID, claims.UserID)
		ctx.Set(CtxKeyUserEmail, claims.Email)
		ctx.Set(CtxKeyUserRoles, claims.Roles)
		ctx.Next()
	}
}

// RequireAdmin must run after VerifyJWT.
func (a *Authenticator) RequireAdmin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		roles, ok := ctx.Get(CtxKeyUserRoles)
		if !ok {
			response.RenderErr(ctx, response.ErrUnauthorized("missing authorization header"))
			return
		}

		for _, role := range roles.([]string) {
			if role == string(domain.RoleAdmin) {
				ctx.Next()
				return
			}
		}

		response.RenderErr(ctx, response.ErrPermissionDenied())
	}
}
