package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cpreston123/core-swipe-service-Care2Share/internal/domain"
)

// Err is the error body of every failed request: {"detail": "..."}.
type Err struct {
	HTTPStatusCode int    `json:"-"`
	Detail         string `json:"detail"`
	Err            error  `json:"-"`
}

func (e *Err) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}

	return e.Detail
}

func RenderErr(ctx *gin.Context, e *Err) {
	if e.HTTPStatusCode >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("correlation_id", requestid.Get(ctx)),
			zap.String("method", ctx.Request.Method),
			zap.String("path", ctx.Request.URL.Path),
			zap.Error(e.Err),
		)
	}

	ctx.AbortWithStatusJSON(e.HTTPStatusCode, e)
}

func ErrBadRequest(err error) *Err {
	return &Err{
		HTTPStatusCode: http.StatusBadRequest,
		Detail:         err.Error(),
		Err:            err,
	}
}

// ErrInsufficientBalance reports the requested and available amounts when err carries them.
func ErrInsufficientBalance(err error) *Err {
	detail := err.Error()

	var insufficient *domain.InsufficientBalanceError
	if errors.As(err, &insufficient) {
		detail = insufficient.Error()
	}

	return &Err{
		HTTPStatusCode: http.StatusBadRequest,
		Detail:         detail,
		Err:            err,
	}
}

func ErrNotFound(resource, field string, value any) *Err {
	return &Err{
		HTTPStatusCode: http.StatusNotFound,
		Detail:         fmt.Sprintf("%s with %s %v not found", resource, field, value),
	}
}

func ErrUnauthorized(err error) *Err {
	return &Err{
		HTTPStatusCode: http.StatusUnauthorized,
		Detail:         "missing or invalid bearer token",
		Err:            err,
	}
}

func ErrWrongCredentials(err error) *Err {
	return &Err{
		HTTPStatusCode: http.StatusUnauthorized,
		Detail:         "incorrect username or password",
		Err:            err,
	}
}

func ErrPermissionDenied(err error) *Err {
	return &Err{
		HTTPStatusCode: http.StatusForbidden,
		Detail:         "permission denied",
		Err:            err,
	}
}

func ErrConflict(err error) *Err {
	return &Err{
		HTTPStatusCode: http.StatusConflict,
		Detail:         err.Error(),
		Err:            err,
	}
}

func ErrTooManyRequests() *Err {
	return &Err{
		HTTPStatusCode: http.StatusTooManyRequests,
		Detail:         "rate limit exceeded",
	}
}

func ErrInternalServerError(err error) *Err {
	return &Err{
		HTTPStatusCode: http.StatusInternalServerError,
		Detail:         "internal server error",
		Err:            err,
	}
}
