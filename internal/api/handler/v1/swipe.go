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

type SwipeService interface {
	Donate(ctx context.Context, donor string, n int) (domain.SwipeDonation, error)
	Claim(ctx context.Context, recipient string, m int) (domain.SwipeClaim, error)
	ListDonated(ctx context.Context) ([]domain.Swipe, error)
}

type SwipeHandler struct {
	svc SwipeService
}

func NewSwipeHandler(svc SwipeService) *SwipeHandler {
	return &SwipeHandler{
		svc: svc,
	}
}

// HandleDonate godoc
// @Summary      Donate swipes to the pool
// @Tags         swipes
// @Accept       json
// @Produce      json
// @Param        request  body      request.DonateSwipesRequest  true  "request body"
// @Success      200      {object}  domain.SwipeDonation
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /swipes/donate [post]
// @Security     BearerAuth
func (h *SwipeHandler) HandleDonate(ctx *gin.Context) {
	var req request.DonateSwipesRequest
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

	donation, err := h.svc.Donate(ctx.Request.Context(), req.DonorID, req.CurrentSwipes)
	if err != nil {
		response.RenderErr(ctx, ledgerErr("v1.HandleDonate -> h.svc.Donate", req.DonorID, err))
		return
	}

	ctx.JSON(http.StatusOK, donation)
}

// HandleClaim godoc
// @Summary      Claim swipes from the pool
// @Description  All or nothing: the oldest donated swipes are claimed, or nothing changes.
// @Tags         swipes
// @Accept       json
// @Produce      json
// @Param        request  body      request.ClaimSwipesRequest  true  "request body"
// @Success      200      {object}  domain.SwipeClaim
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /swipes/claim [post]
// @Security     BearerAuth
func (h *SwipeHandler) HandleClaim(ctx *gin.Context) {
	var req request.ClaimSwipesRequest
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

	claim, err := h.svc.Claim(ctx.Request.Context(), req.RecipientID, req.SwipesToClaim)
	if err != nil {
		response.RenderErr(ctx, ledgerErr("v1.HandleClaim -> h.svc.Claim", req.RecipientID, err))
		return
	}

	ctx.JSON(http.StatusOK, claim)
}

// HandleListDonated godoc
// @Summary      List swipes waiting in the pool, oldest first
// @Tags         swipes
// @Produce      json
// @Success      200  {object}  response.DonatedSwipesResponse
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /swipes/donated [get]
// @Security     BearerAuth
func (h *SwipeHandler) HandleListDonated(ctx *gin.Context) {
	swipes, err := h.svc.ListDonated(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListDonated -> h.svc.ListDonated -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	if swipes == nil {
		swipes = []domain.Swipe{}
	}

	ctx.JSON(http.StatusOK, response.DonatedSwipesResponse{
		Count:  len(swipes),
		Swipes: swipes,
	})
}
