package v1

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/cpreston123/core-swipe-service-Care2Share/internal/api/handler/v1/response"
	"github.com/cpreston123/core-swipe-service-Care2Share/internal/api/middleware"
	"github.com/cpreston123/core-swipe-service-Care2Share/internal/service"
)

var ErrForeignUni = errors.New("token does not belong to this uni")

// authorizeUni lets admins act on any uni and users only on their own.
func authorizeUni(ctx *gin.Context, uni string) *response.Err {
	claims, ok := middleware.ClaimsFromContext(ctx)
	if !ok {
		return response.ErrUnauthorized(middleware.ErrMissingToken)
	}
	if claims.IsAdmin() || claims.Subject == uni {
		return nil
	}

	return response.ErrPermissionDenied(fmt.Errorf("%w: %s", ErrForeignUni, uni))
}

// ledgerErr maps service errors to HTTP errors. uni names the user in not-found details.
func ledgerErr(op, uni string, err error) *response.Err {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		return response.ErrNotFound("user", "uni", uni)
	case errors.Is(err, service.ErrInsufficientBalance):
		return response.ErrInsufficientBalance(err)
	case errors.Is(err, service.ErrSwipeClaimConflict):
		return response.ErrConflict(service.ErrSwipeClaimConflict)
	case errors.Is(err, service.ErrUserExists):
		return response.ErrBadRequest(service.ErrUserExists)
	case errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrNegativeBalance),
		errors.Is(err, service.ErrBalanceTooLarge),
		errors.Is(err, service.ErrInvalidField):
		return response.ErrBadRequest(err)
	default:
		return response.ErrInternalServerError(fmt.Errorf("%s -> %w", op, err))
	}
}
