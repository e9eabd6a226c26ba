package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cpreston123/core-swipe-service-Care2Share/internal/api/handler/v1/request"
	"github.com/cpreston123/core-swipe-service-Care2Share/internal/api/handler/v1/response"
	"github.com/cpreston123/core-swipe-service-Care2Share/internal/domain"
)

type PointsService interface {
	Donate(ctx context.Context, donor string, points int) (domain.PointsDonation, error)
	Claim(ctx context.Context, recipient string, points int) (domain.PointsClaim, error)
	GetPool(ctx context.Context) (domain.PointsPool, error)
}

type PointsHandler struct {
	svc PointsService
}

func NewPointsHandler(svc PointsService) *PointsHandler {
	return &PointsHandler{
		svc: svc,
	}
}

// HandleDonate godoc
// @Summary      Donate points to the pool
// @Tags         points
// @Accept       json
// @Produce      json
// @Param        request  body      request.DonatePointsRequest  true  "request body"
// @Success      200      {object}  domain.PointsDonation
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /points/donate [post]
// @Security     BearerAuth
func (h *PointsHandler) HandleDonate(ctx *gin.Context) {
	var req request.DonatePointsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if respErr := authorizeUni(ctx, req.DonorID); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	donation, err := h.svc.Donate(ctx.Request.Context(), req.DonorID, req.Points)
	if err != nil {
		response.RenderErr(ctx, ledgerErr("v1.HandleDonate -> h.svc.Donate", req.DonorID, err))
		return
	}

	ctx.JSON(http.StatusOK, donation)
}

// HandleClaim godoc
// @Summary      Claim points from the pool
// @Tags         points
// @Accept       json
// @Produce      json
// @Param        request  body      request.ClaimPointsRequest  true  "request body"
// @Success      200      {object}  domain.PointsClaim
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /points/claim [post]
// @Security     BearerAuth
func (h *PointsHandler) HandleClaim(ctx *gin.Context) {
	var req request.ClaimPointsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if respErr := authorizeUni(ctx, req.RecipientID); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	claim, err := h.svc.Claim(ctx.Request.Context(), req.RecipientID, req.Points)
	if err != nil {
		response.RenderErr(ctx, ledgerErr("v1.HandleClaim -> h.svc.Claim", req.RecipientID, err))
		return
	}

	ctx.JSON(http.StatusOK, claim)
}

// HandleGetPool godoc
// @Summary      Get the shared points pool
// @Tags         points
// @Produce      json
// @Success      200  {object}  domain.PointsPool
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /points/pool [get]
// @Security     BearerAuth
func (h *PointsHandler) HandleGetPool(ctx *gin.Context) {
	pool, err := h.svc.GetPool(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetPool -> h.svc.GetPool -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, pool)
}
