package types

// QueryFilter carries the pagination inputs accepted by every list endpoint.
type QueryFilter struct {
	Page  int `form:"page" json:"page"`
	Limit int `form:"limit" json:"limit"`
}

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

func NewDefaultQueryFilter() *QueryFilter {
	return &QueryFilter{Page: DefaultPage, Limit: DefaultLimit}
}

func (f *QueryFilter) GetPage() int {
	if f == nil || f.Page < 1 {
		return DefaultPage
	}
	return f.Page
}

func (f *QueryFilter) GetLimit() int {
	if f == nil || f.Limit < 1 {
		return DefaultLimit
	}
	if f.Limit > MaxLimit {
		return MaxLimit
	}
	return f.Limit
}

func (f *QueryFilter) GetOffset() int {
	return (f.GetPage() - 1) * f.GetLimit()
}

// ListResponse is the canonical envelope for every list endpoint. There is
// exactly one list shape; clients never need to sniff for alternatives.
type ListResponse[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

func NewListResponse[T any](items []T, total int64, page, limit int) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Items: items, Total: total, Page: page, Limit: limit}
}
