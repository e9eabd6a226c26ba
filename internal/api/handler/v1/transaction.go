package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cpreston123/core-swipe-service-Care2Share/internal/api/handler/v1/request"
	"github.com/cpreston123/core-swipe-service-Care2Share/internal/api/handler/v1/response"
	"github.com/cpreston123/core-swipe-service-Care2Share/internal/domain"
)

type TransactionService interface {
	History(ctx context.Context, uni string, page domain.Page) (domain.TransactionPage, error)
	List(ctx context.Context, page domain.Page) (domain.TransactionPage, error)
	Summary(ctx context.Context, uni string) (domain.TransactionSummary, error)
}

type TransactionHandler struct {
	svc TransactionService
}

func NewTransactionHandler(svc TransactionService) *TransactionHandler {
	return &TransactionHandler{
		svc: svc,
	}
}

func bindPage(ctx *gin.Context) (domain.Page, *response.Err) {
	var q request.PageQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		return domain.Page{}, response.ErrBadRequest(err)
	}

	if err := q.Validate(); err != nil {
		return domain.Page{}, response.ErrBadRequest(err)
	}

	return q.ToDomain(), nil
}

// HandleHistory godoc
// @Summary      Transactions where the user is donor or recipient, newest first
// @Tags         transactions
// @Produce      json
// @Param        uni        path      string  true   "user uni"
// @Param        page       query     int     false  "page number, from 1"
// @Param        page_size  query     int     false  "items per page, 1 to 100"
// @Success      200        {object}  response.TransactionPageResponse
// @Failure      400        {object}  response.Err
// @Failure      401        {object}  response.Err
// @Failure      403        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /transactions/history/{uni} [get]
// @Security     BearerAuth
func (h *TransactionHandler) HandleHistory(ctx *gin.Context) {
	uni := ctx.Param("uni")
	if respErr := authorizeUni(ctx, uni); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	page, respErr := bindPage(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	result, err := h.svc.History(ctx.Request.Context(), uni, page)
	if err != nil {
		response.RenderErr(ctx, ledgerErr("v1.HandleHistory -> h.svc.History", uni, err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewTransactionPageResponse(ctx.Request.URL.Path, result))
}

// HandleSummary godoc
// @Summary      Totals over a user's transactions
// @Tags         transactions
// @Produce      json
// @Param        uni  path      string  true  "user uni"
// @Success      200  {object}  domain.TransactionSummary
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /transactions/summary/{uni} [get]
// @Security     BearerAuth
func (h *TransactionHandler) HandleSummary(ctx *gin.Context) {
	uni := ctx.Param("uni")
	if respErr := authorizeUni(ctx, uni); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	summary, err := h.svc.Summary(ctx.Request.Context(), uni)
	if err != nil {
		response.RenderErr(ctx, ledgerErr("v1.HandleSummary -> h.svc.Summary", uni, err))
		return
	}

	ctx.JSON(http.StatusOK, summary)
}

// HandleListAll godoc
// @Summary      The whole transaction log, newest first
// @Tags         transactions
// @Produce      json
// @Param        page       query     int     false  "page number, from 1"
// @Param        page_size  query     int     false  "items per page, 1 to 100"
// @Success      200        {object}  response.TransactionPageResponse
// @Failure      400        {object}  response.Err
// @Failure      401        {object}  response.Err
// @Failure      403        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /transactions [get]
// @Security     BearerAuth
func (h *TransactionHandler) HandleListAll(ctx *gin.Context) {
	page, respErr := bindPage(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	result, err := h.svc.List(ctx.Request.Context(), page)
	if err != nil {
		response.RenderErr(ctx, ledgerErr("v1.HandleListAll -> h.svc.List", "", err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewTransactionPageResponse(ctx.Request.URL.Path, result))
}
