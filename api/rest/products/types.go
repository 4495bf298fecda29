package products

import (
	"github.com/kalustehaku/server/api/rest/pagination"
	"github.com/kalustehaku/server/catalog/products"
)

// ListResponse wraps a page of catalog rows
type ListResponse struct {
	Products   []products.Product `json:"products"`
	Pagination pagination.Meta    `json:"pagination"`
}
