package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/cpreston123/core-swipe-service-Care2Share/internal/api/handler/v1/request"
	"github.com/cpreston123/core-swipe-service-Care2Share/internal/api/handler/v1/response"
)

const ledgerBasePath = "/api/v1"

var ErrMissingAuthorization = errors.New("authorization header is required")

type Ledger interface {
	Get(ctx context.Context, path string, header http.Header) (Reply, error)
	Post(ctx context.Context, path string, header http.Header, body []byte) (Reply, error)
}

type Dashboard struct {
	User               json.RawMessage `json:"user"`
	TransactionSummary json.RawMessage `json:"transaction_summary"`
}

type validatable interface {
	Validate() error
}

type Handler struct {
	ledger Ledger
}

func NewHandler(ledger Ledger) *Handler {
	return &Handler{
		ledger: ledger,
	}
}

// HandleDashboard godoc
// @Summary      A user's balances and transaction summary in one call
// @Tags         gateway
// @Produce      json
// @Param        uni  path      string  true  "user uni"
// @Success      200  {object}  Dashboard
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      502  {object}  response.Err
// @Router       /user/{uni}/dashboard [get]
// @Security     BearerAuth
func (h *Handler) HandleDashboard(ctx *gin.Context) {
	if ctx.GetHeader("Authorization") == "" {
		response.RenderErr(ctx, response.ErrUnauthorized(ErrMissingAuthorization))
		return
	}

	uni := ctx.Param("uni")
	if err := request.ValidateUni(uni); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var user, summary Reply
	g, gctx := errgroup.WithContext(ctx.Request.Context())
	g.Go(func() error {
		var err error
		user, err = h.ledger.Get(gctx, ledgerBasePath+"/users/"+uni, ctx.Request.Header)

		return err
	})
	g.Go(func() error {
		var err error
		summary, err = h.ledger.Get(gctx, ledgerBasePath+"/transactions/summary/"+uni, ctx.Request.Header)

		return err
	})
	if err := g.Wait(); err != nil {
		renderBadGateway(ctx, fmt.Errorf("gateway.HandleDashboard -> %w", err))
		return
	}

	for _, r := range []Reply{user, summary} {
		if r.Status != http.StatusOK {
			relay(ctx, r)
			return
		}
	}

	ctx.JSON(http.StatusOK, Dashboard{
		User:               user.Body,
		TransactionSummary: summary.Body,
	})
}

// Passthrough validates the body as T, then forwards it to the Ledger API path and relays the reply.
func Passthrough[T any, PT interface {
	*T
	validatable
}](h *Handler, path string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if ctx.GetHeader("Authorization") == "" {
			response.RenderErr(ctx, response.ErrUnauthorized(ErrMissingAuthorization))
			return
		}

		req := PT(new(T))
		if err := ctx.ShouldBindJSON(req); err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		if err := req.Validate(); err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		body, err := json.Marshal(req)
		if err != nil {
			response.RenderErr(ctx, response.ErrInternalServerError(err))
			return
		}

		reply, err := h.ledger.Post(ctx.Request.Context(), ledgerBasePath+path, ctx.Request.Header, body)
		if err != nil {
			renderBadGateway(ctx, fmt.Errorf("gateway.Passthrough %s -> %w", path, err))
			return
		}

		relay(ctx, reply)
	}
}

// HandleHealth godoc
// @Summary      Gateway liveness probe
// @Tags         gateway
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func HandleHealth(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok", "service": "care2share-gateway"})
}

func relay(ctx *gin.Context, r Reply) {
	ctx.Data(r.Status, "application/json", r.Body)
}

func renderBadGateway(ctx *gin.Context, err error) {
	response.RenderErr(ctx, &response.Err{
		HTTPStatusCode: http.StatusBadGateway,
		Detail:         "ledger api unavailable",
		Err:            err,
	})
}
