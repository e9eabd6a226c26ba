package v1

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/cpreston123/core-swipe-service-Care2Share/internal/api/handler/v1/response"
	"github.com/cpreston123/core-swipe-service-Care2Share/internal/domain"
	"github.com/cpreston123/core-swipe-service-Care2Share/internal/service"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	maxMessageSize = 512

	// Pings ride on every push, so the push interval must stay inside the read deadline.
	maxStreamInterval = pongWait * 9 / 10
)

type UserGetter interface {
	GetUser(ctx context.Context, uni string) (domain.User, error)
}

type balanceMessage struct {
	Uni            string `json:"uni"`
	CurrentSwipes  int    `json:"current_swipes"`
	SwipesGiven    int    `json:"swipes_given"`
	SwipesReceived int    `json:"swipes_received"`
	CurrentPoints  int    `json:"current_points"`
	PointsGiven    int    `json:"points_given"`
	PointsReceived int    `json:"points_received"`
}

type StreamHandler struct {
	svc      UserGetter
	interval time.Duration
	upgrader websocket.Upgrader
}

// NewStreamHandler accepts websocket upgrades from the given origins, or from
// the API's own host when the request has no Origin header.
// interval is clamped below the pong deadline.
func NewStreamHandler(svc UserGetter, interval time.Duration, allowedOrigins []string) *StreamHandler {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	if interval > maxStreamInterval {
		zap.L().Warn("stream interval exceeds pong deadline, clamping",
			zap.Duration("interval", interval), zap.Duration("max", maxStreamInterval))
		interval = maxStreamInterval
	}

	return &StreamHandler{
		svc:      svc,
		interval: interval,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				if slices.Contains(allowedOrigins, origin) {
					return true
				}
				u, err := url.Parse(origin)

				return err == nil && u.Host == r.Host
			},
		},
	}
}

// HandleStream godoc
// @Summary      Stream a user's balances over a websocket
// @Description  Pushes the user's balances and given/received counters every interval until the client disconnects.
// @Tags         users
// @Produce      json
// @Param        uni    path      string  true   "user uni"
// @Param        token  query     string  false  "JWT, for clients that cannot set headers"
// @Success      101    {string}  string  "Switching Protocols"
// @Failure      401    {object}  response.Err
// @Failure      403    {object}  response.Err
// @Router       /ws/{uni} [get]
// @Security     BearerAuth
func (h *StreamHandler) HandleStream(ctx *gin.Context) {
	uni := ctx.Param("uni")
	if respErr := authorizeUni(ctx, uni); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	conn, err := h.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		zap.L().Warn("websocket upgrade failed", zap.String("uni", uni), zap.Error(err))
		return
	}

	done := make(chan struct{})
	go h.readPump(conn, done)
	h.writePump(ctx.Request.Context(), conn, uni, done)
}

// readPump drains client frames so control messages are processed, and closes done on disconnect.
func (h *StreamHandler) readPump(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				zap.L().Warn("websocket read failed", zap.Error(err))
			}
			return
		}
	}
}

func (h *StreamHandler) writePump(ctx context.Context, conn *websocket.Conn, uni string, done <-chan struct{}) {
	defer conn.Close()

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		if !h.push(ctx, conn, uni) {
			return
		}

		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// push writes one balance frame. It returns false once the stream should end.
func (h *StreamHandler) push(ctx context.Context, conn *websocket.Conn, uni string) bool {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))

	user, err := h.svc.GetUser(ctx, uni)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			_ = conn.WriteJSON(gin.H{"error": "user not found"})
			_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return false
		}

		zap.L().Error("failed to load balances for stream", zap.String("uni", uni), zap.Error(err))
		return false
	}

	if err := conn.WriteJSON(balanceMessage{
		Uni:            user.Uni,
		CurrentSwipes:  user.CurrentSwipes,
		SwipesGiven:    user.SwipesGiven,
		SwipesReceived: user.SwipesReceived,
		CurrentPoints:  user.CurrentPoints,
		PointsGiven:    user.PointsGiven,
		PointsReceived: user.PointsReceived,
	}); err != nil {
		return false
	}

	if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
		return false
	}

	return true
}
