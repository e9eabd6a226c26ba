package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cpreston123/core-swipe-service-Care2Share/internal/api/handler/v1/request"
	"github.com/cpreston123/core-swipe-service-Care2Share/internal/api/handler/v1/response"
)

type AdminHandler struct {
	svc UserService
}

func NewAdminHandler(svc UserService) *AdminHandler {
	return &AdminHandler{
		svc: svc,
	}
}

// HandleListUsers godoc
// @Summary      List every user
// @Tags         admin
// @Produce      json
// @Success      200  {array}   domain.User
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/users [get]
// @Security     BearerAuth
func (h *AdminHandler) HandleListUsers(ctx *gin.Context) {
	users, err := h.svc.ListUsers(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListUsers -> h.svc.ListUsers -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, users)
}

// HandleUpdateUser godoc
// @Summary      Set one balance field of a user
// @Description  field is current_points or current_swipes. The first update initializes the account.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request  body      request.AdminUpdateUserRequest  true  "request body"
// @Success      202      {object}  response.AdminUpdateResponse
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /admin/update-user [put]
// @Security     BearerAuth
func (h *AdminHandler) HandleUpdateUser(ctx *gin.Context) {
	var req request.AdminUpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	user, err := h.svc.SetField(ctx.Request.Context(), req.Uni, req.Field, *req.Value)
	if err != nil {
		response.RenderErr(ctx, ledgerErr("v1.HandleUpdateUser -> h.svc.SetField", req.Uni, err))
		return
	}

	ctx.JSON(http.StatusAccepted, response.AdminUpdateResponse{
		Message: fmt.Sprintf("%s updated for %s", req.Field, req.Uni),
		User:    user,
	})
}
