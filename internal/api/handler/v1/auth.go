package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cpreston123/core-swipe-service-Care2Share/internal/api/handler/v1/request"
	"github.com/cpreston123/core-swipe-service-Care2Share/internal/api/handler/v1/response"
	"github.com/cpreston123/core-swipe-service-Care2Share/internal/config"
	"github.com/cpreston123/core-swipe-service-Care2Share/internal/domain"
	"github.com/cpreston123/core-swipe-service-Care2Share/internal/pkg/jwthelper"
	"github.com/cpreston123/core-swipe-service-Care2Share/internal/service"
)

const tokenType = "bearer"

type LoginService interface {
	Login(ctx context.Context, uni string) (domain.User, bool, error)
}

type AdminAuthenticator interface {
	AuthenticateAdmin(username, password string) error
}

type AuthHandler struct {
	conf  *config.APIConfig
	svc   LoginService
	admin AdminAuthenticator
}

func NewAuthHandler(conf *config.APIConfig, svc LoginService, admin AdminAuthenticator) *AuthHandler {
	return &AuthHandler{
		conf:  conf,
		svc:   svc,
		admin: admin,
	}
}

// HandleLogin godoc
// @Summary      Login, creating the user on first sight
// @Description  Requires a bearer token for the same uni, or an admin token. Returns 200 for an existing user and 201 with a Link header for a new one.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      request.LoginRequest  true  "request body"
// @Success      200      {object}  response.LoginResponse
// @Success      201      {object}  response.LoginResponse
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Security     BearerAuth
// @Router       /login [post]
func (h *AuthHandler) HandleLogin(ctx *gin.Context) {
	req := request.LoginRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if e := authorizeUni(ctx, req.Uni); e != nil {
		response.RenderErr(ctx, e)

		return
	}

	user, created, err := h.svc.Login(ctx.Request.Context(), req.Uni)
	if err != nil {
		response.RenderErr(ctx, ledgerErr("v1.HandleLogin -> h.svc.Login", req.Uni, err))

		return
	}

	token, err := jwthelper.GenerateToken([]byte(h.conf.JWTSigningKey), user.Uni, jwthelper.RoleUser, h.conf.TokenTTL, ctx.Request.UserAgent())
	if err != nil {
		err = fmt.Errorf("v1.HandleLogin -> jwthelper.GenerateToken -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
		ctx.Header("Link", fmt.Sprintf(`</api/v1/users/%s>; rel="self"`, user.Uni))
	}

	ctx.JSON(status, response.LoginResponse{
		Token: token,
		Type:  tokenType,
		User:  user,
	})
}

// HandleAdminLogin godoc
// @Summary      Login as the administrator
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      request.AdminLoginRequest  true  "request body"
// @Success      200      {object}  response.AdminLoginResponse
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Router       /admin/login [post]
func (h *AuthHandler) HandleAdminLogin(ctx *gin.Context) {
	req := request.AdminLoginRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := h.admin.AuthenticateAdmin(req.Username, req.Password); err != nil {
		if errors.Is(err, service.ErrWrongCredentials) {
			response.RenderErr(ctx, response.ErrWrongCredentials(err))

			return
		}

		err = fmt.Errorf("v1.HandleAdminLogin -> h.admin.AuthenticateAdmin -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	token, err := jwthelper.GenerateToken([]byte(h.conf.JWTSigningKey), req.Username, jwthelper.RoleAdmin, h.conf.TokenTTL, ctx.Request.UserAgent())
	if err != nil {
		err = fmt.Errorf("v1.HandleAdminLogin -> jwthelper.GenerateToken -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.AdminLoginResponse{
		Token: token,
		Type:  tokenType,
	})
}
