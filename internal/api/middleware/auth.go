package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cpreston123/core-swipe-service-Care2Share/internal/api/handler/v1/response"
	"github.com/cpreston123/core-swipe-service-Care2Share/internal/pkg/jwthelper"
)

const claimsKey = "claims"

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrNotAdmin     = errors.New("admin role required")
)

type Authenticator struct {
	key []byte
}

func NewAuthenticator(signingKey string) *Authenticator {
	return &Authenticator{key: []byte(signingKey)}
}

// VerifyJWT accepts "Authorization: Bearer <token>", or a ?token= query parameter
// for clients that cannot set headers (websockets).
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := bearerToken(ctx.GetHeader("Authorization"))
		if token == "" {
			token = ctx.Query("token")
		}
		if token == "" {
			response.RenderErr(ctx, response.ErrUnauthorized(ErrMissingToken))
			return
		}

		claims, err := jwthelper.ParseToken(a.key, token)
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized(err))
			return
		}

		ctx.Set(claimsKey, claims)
		ctx.Next()
	}
}

// RequireAdmin must run after VerifyJWT.
func RequireAdmin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		claims, ok := ClaimsFromContext(ctx)
		if !ok {
			response.RenderErr(ctx, response.ErrUnauthorized(ErrMissingToken))
			return
		}
		if !claims.IsAdmin() {
			response.RenderErr(ctx, response.ErrPermissionDenied(ErrNotAdmin))
			return
		}

		ctx.Next()
	}
}

func ClaimsFromContext(ctx *gin.Context) (*jwthelper.Claims, bool) {
	v, ok := ctx.Get(claimsKey)
	if !ok {
		return nil, false
	}

	claims, ok := v.(*jwthelper.Claims)

	return claims, ok
}

func bearerToken(header string) string {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}

	return strings.TrimSpace(token)
}
