package products

import (
	"github.com/gin-gonic/gin"
	"github.com/kalustehaku/server/catalog/products"
)

func RegisterRoutes(router *gin.RouterGroup, repo *products.Repository) {
	router.GET("/products", ListProductsHandler(repo))
	router.GET("/products/:id", GetProductHandler(repo))
}
