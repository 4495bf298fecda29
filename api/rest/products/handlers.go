package products

import (
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kalustehaku/server/api/rest/pagination"
	"github.com/kalustehaku/server/catalog/products"
	"github.com/kalustehaku/server/internal/errors"
)

// ListProductsHandler returns a page of catalog rows, most recently
// updated first
func ListProductsHandler(repo *products.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
		offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

		params := pagination.Clamp(limit, offset)

		list, total, err := repo.List(c.Request.Context(), params.Limit, params.Offset)
		if err != nil {
			errors.InternalError(c, "failed to list products", err)
			return
		}

		if list == nil {
			list = []products.Product{}
		}

		c.JSON(http.StatusOK, ListResponse{
			Products:   list,
			Pagination: pagination.NewMeta(params, total),
		})
	}
}

// GetProductHandler fetches one catalog row by its id
func GetProductHandler(repo *products.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := repo.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			if stderrors.Is(err, products.ErrProductNotFound) {
				errors.NotFound(c, "product")
				return
			}

			errors.InternalError(c, "failed to get product", err)
			return
		}

		c.JSON(http.StatusOK, product)
	}
}
