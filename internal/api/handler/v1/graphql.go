package v1

import (
	"context"
	_ "embed"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	graphql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"go.uber.org/zap"

	"github.com/cpreston123/core-swipe-service-Care2Share/internal/domain"
)

//go:embed schema.graphql
var ledgerSchema string

const graphQLMaxDepth = 4

type UserLister interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
}

type SwipeLister interface {
	ListSwipes(ctx context.Context) ([]domain.Swipe, error)
	PoolSize(ctx context.Context) (int, error)
}

type GraphQLHandler struct {
	relay *relay.Handler
}

// NewGraphQLHandler serves the read-only users and swipes queries. It panics if the
// embedded schema does not match the resolvers.
func NewGraphQLHandler(users UserLister, swipes SwipeLister) *GraphQLHandler {
	schema := graphql.MustParseSchema(ledgerSchema, &queryResolver{users: users, swipes: swipes},
		graphql.MaxDepth(graphQLMaxDepth),
	)

	return &GraphQLHandler{
		relay: &relay.Handler{Schema: schema},
	}
}

// HandleQuery godoc
// @Summary      Read-only GraphQL queries over users and swipes
// @Tags         admin
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]any
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Router       /graphql [post]
// @Security     BearerAuth
func (h *GraphQLHandler) HandleQuery(ctx *gin.Context) {
	h.relay.ServeHTTP(ctx.Writer, ctx.Request)
}

type queryResolver struct {
	users  UserLister
	swipes SwipeLister
}

func (r *queryResolver) Users(ctx context.Context) ([]*userResolver, error) {
	users, err := r.users.ListUsers(ctx)
	if err != nil {
		zap.L().Error("graphql users query failed", zap.Error(err))
		return nil, errors.New("users unavailable")
	}

	out := make([]*userResolver, len(users))
	for i := range users {
		out[i] = &userResolver{u: users[i]}
	}

	return out, nil
}

func (r *queryResolver) Swipes(ctx context.Context) ([]*swipeResolver, error) {
	swipes, err := r.swipes.ListSwipes(ctx)
	if err != nil {
		zap.L().Error("graphql swipes query failed", zap.Error(err))
		return nil, errors.New("swipes unavailable")
	}

	out := make([]*swipeResolver, len(swipes))
	for i := range swipes {
		out[i] = &swipeResolver{s: swipes[i]}
	}

	return out, nil
}

func (r *queryResolver) DonatedSwipeCount(ctx context.Context) (int32, error) {
	n, err := r.swipes.PoolSize(ctx)
	if err != nil {
		zap.L().Error("graphql pool size query failed", zap.Error(err))
		return 0, errors.New("pool size unavailable")
	}

	return int32(n), nil
}

type userResolver struct {
	u domain.User
}

func (r *userResolver) Uni() string { return r.u.Uni }
func (r *userResolver) CurrentSwipes() int32 { return int32(r.u.CurrentSwipes) }
func (r *userResolver) SwipesGiven() int32 { return int32(r.u.SwipesGiven) }
func (r *userResolver) SwipesReceived() int32 { return int32(r.u.SwipesReceived) }
func (r *userResolver) CurrentPoints() int32 { return int32(r.u.CurrentPoints) }
func (r *userResolver) PointsGiven() int32 { return int32(r.u.PointsGiven) }
func (r *userResolver) PointsReceived() int32 { return int32(r.u.PointsReceived) }

type swipeResolver struct {
	s domain.Swipe
}

func (r *swipeResolver) SwipeID() int32 { return int32(r.s.ID) }
func (r *swipeResolver) Uni() string { return r.s.Uni }
func (r *swipeResolver) IsDonated() bool { return r.s.IsDonated }
func (r *swipeResolver) DonorID() *string { return r.s.DonorID }

func (r *swipeResolver) DonatedAt() *string {
	if r.s.DonatedAt == nil {
		return nil
	}
	at := r.s.DonatedAt.UTC().Format(time.RFC3339)

	return &at
}
