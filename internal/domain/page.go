package domain

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Page is a 1-based page window over an ordered result set.
type Page struct {
	Number     int   `json:"page"`
	Size       int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
}

func NewPage(number, size int) Page {
	if number < 1 {
		number = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	return Page{Number: number, Size: size}
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

func (p Page) Limit() int {
	return p.Size
}

// TotalPages is ceil(TotalItems / Size).
func (p Page) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}

	return int((p.TotalItems + int64(p.Size) - 1) / int64(p.Size))
}

func (p Page) HasNext() bool {
	return p.Number < p.TotalPages()
}

func (p Page) HasPrev() bool {
	return p.Number > 1
}
