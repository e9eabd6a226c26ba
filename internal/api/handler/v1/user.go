package v1

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cpreston123/core-swipe-service-Care2Share/internal/api/handler/v1/request"
	"github.com/cpreston123/core-swipe-service-Care2Share/internal/api/handler/v1/response"
	"github.com/cpreston123/core-swipe-service-Care2Share/internal/domain"
)

type UserService interface {
	CreateUser(ctx context.Context, user domain.User) (domain.User, error)
	GetUser(ctx context.Context, uni string) (domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	UpdateBalance(ctx context.Context, uni string, upd domain.BalanceUpdate) (domain.User, error)
	SetField(ctx context.Context, uni, field string, value int) (domain.User, error)
}

type UserHandler struct {
	svc UserService
}

func NewUserHandler(svc UserService) *UserHandler {
	return &UserHandler{
		svc: svc,
	}
}

// HandleCreateUser godoc
// @Summary      Create a user with starting balances
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateUserRequest  true  "request body"
// @Success      201      {object}  domain.User
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /users [post]
// @Security     BearerAuth
func (h *UserHandler) HandleCreateUser(ctx *gin.Context) {
	var req request.CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	user, err := h.svc.CreateUser(ctx.Request.Context(), domain.User{
		Uni:           req.Uni,
		CurrentSwipes: req.CurrentSwipes,
		CurrentPoints: req.CurrentPoints,
	})
	if err != nil {
		response.RenderErr(ctx, ledgerErr("v1.HandleCreateUser -> h.svc.CreateUser", req.Uni, err))
		return
	}

	ctx.JSON(http.StatusCreated, user)
}

// HandleGetUser godoc
// @Summary      Get a user by uni
// @Tags         users
// @Produce      json
// @Param        uni  path      string  true  "user uni"
// @Success      200  {object}  domain.User
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /users/{uni} [get]
// @Security     BearerAuth
func (h *UserHandler) HandleGetUser(ctx *gin.Context) {
	uni := ctx.Param("uni")
	if respErr := authorizeUni(ctx, uni); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	user, err := h.svc.GetUser(ctx.Request.Context(), uni)
	if err != nil {
		response.RenderErr(ctx, ledgerErr("v1.HandleGetUser -> h.svc.GetUser", uni, err))
		return
	}

	ctx.JSON(http.StatusOK, user)
}

// HandleUpdateBalance godoc
// @Summary      Set or adjust a user's swipes and points
// @Description  With is_relative=true values are deltas; a decrement larger than the balance is rejected.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        uni          path      string                          true   "user uni"
// @Param        is_relative  query     bool                            false  "apply values as deltas"
// @Param        request      body      request.UpdateBalanceRequest    true   "request body"
// @Success      200          {object}  domain.User
// @Failure      400          {object}  response.Err
// @Failure      401          {object}  response.Err
// @Failure      403          {object}  response.Err
// @Failure      404          {object}  response.Err
// @Failure      500          {object}  response.Err
// @Router       /users/{uni} [put]
// @Security     BearerAuth
func (h *UserHandler) HandleUpdateBalance(ctx *gin.Context) {
	uni := ctx.Param("uni")

	relative, err := strconv.ParseBool(ctx.DefaultQuery("is_relative", "false"))
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var req request.UpdateBalanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	user, err := h.svc.UpdateBalance(ctx.Request.Context(), uni, domain.BalanceUpdate{
		Swipes:   req.CurrentSwipes,
		Points:   req.Points,
		Relative: relative,
	})
	if err != nil {
		response.RenderErr(ctx, ledgerErr("v1.HandleUpdateBalance -> h.svc.UpdateBalance", uni, err))
		return
	}

	ctx.JSON(http.StatusOK, user)
}
