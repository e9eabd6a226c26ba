package request

import (
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/cpreston123/core-swipe-service-Care2Share/internal/domain"
)

// PageQuery binds ?page=&page_size=. Zero values fall back to the defaults.
type PageQuery struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size"`
}

func (q *PageQuery) Validate() error {
	return validation.ValidateStruct(
		q,
		validation.Field(&q.Page, validation.Min(0)),
		validation.Field(&q.PageSize, validation.Min(0), validation.Max(domain.MaxPageSize)),
	)
}

func (q *PageQuery) ToDomain() domain.Page {
	return domain.NewPage(q.Page, q.PageSize)
}
