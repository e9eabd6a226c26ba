package response

import (
	"fmt"
	"net/url"

	"github.com/cpreston123/core-swipe-service-Care2Share/internal/domain"
)

type LoginResponse struct {
	Token string      `json:"access_token"`
	Type  string      `json:"token_type"`
	User  domain.User `json:"user"`
}

type AdminLoginResponse struct {
	Token string `json:"access_token"`
	Type  string `json:"token_type"`
}

type AdminUpdateResponse struct {
	Message string      `json:"message"`
	User    domain.User `json:"user"`
}

type DonatedSwipesResponse struct {
	Count  int            `json:"count"`
	Swipes []domain.Swipe `json:"swipes"`
}

type Links struct {
	Self  string `json:"self"`
	First string `json:"first"`
	Last  string `json:"last"`
	Next  string `json:"next,omitempty"`
	Prev  string `json:"prev,omitempty"`
}

type TransactionPageResponse struct {
	Items      []domain.Transaction `json:"items"`
	Page       int                  `json:"page"`
	PageSize   int                  `json:"page_size"`
	TotalItems int64                `json:"total_items"`
	TotalPages int                  `json:"total_pages"`
	Links      Links                `json:"links"`
}

// NewTransactionPageResponse builds the page body with navigation links rooted at path.
func NewTransactionPageResponse(path string, result domain.TransactionPage) TransactionPageResponse {
	p := result.Page
	items := result.Items
	if items == nil {
		items = []domain.Transaction{}
	}

	link := func(number int) string {
		q := url.Values{}
		q.Set("page", fmt.Sprint(number))
		q.Set("page_size", fmt.Sprint(p.Size))

		return path + "?" + q.Encode()
	}

	last := p.TotalPages()
	if last < 1 {
		last = 1
	}

	links := Links{
		Self:  link(p.Number),
		First: link(1),
		Last:  link(last),
	}
	if p.HasNext() {
		links.Next = link(p.Number + 1)
	}
	if p.HasPrev() {
		links.Prev = link(p.Number - 1)
	}

	return TransactionPageResponse{
		Items:      items,
		Page:       p.Number,
		PageSize:   p.Size,
		TotalItems: p.TotalItems,
		TotalPages: p.TotalPages(),
		Links:      links,
	}
}
