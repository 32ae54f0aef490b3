package web

import (
	"net/http"

	"hkcatalog_api/internal/catalog/app/web/handlers"
	"hkcatalog_api/metrics"
	"hkcatalog_api/pkg/middleware"
)

// RegisterRoutes wires every catalog endpoint onto the mux. All API routes
// share the same middleware chain; /metrics stays unwrapped so scrapes do
// not count themselves.
func RegisterRoutes(
	mux *http.ServeMux,
	productHandler *handlers.ProductHandler,
	specHandler *handlers.SpecHandler,
	categoryHandler *handlers.CategoryHandler,
	mediaHandler *handlers.MediaHandler,
) {
	route := func(pattern string, handler http.HandlerFunc) {
		mux.Handle(pattern, middleware.RequestIDMiddleware(middleware.PrometheusMiddleware(handler)))
	}

	route("/api/products", productHandler.ListProductsHandler)
	route("/api/products/create", productHandler.CreateProductHandler)
	route("/api/products/get", productHandler.GetProductHandler)
	route("/api/products/update", productHandler.UpdateProductHandler)
	route("/api/products/delete", productHandler.DeleteProductHandler)

	route("/api/inventory/set", productHandler.SetInventoryHandler)
	route("/api/inventory/decrement", productHandler.DecrementInventoryHandler)
	route("/api/inventory/increment", productHandler.IncrementInventoryHandler)
	route("/api/inventory/reconcile", productHandler.ReconcileInventoryHandler)

	route("/api/mainspecs", specHandler.ListMainSpecsHandler)
	route("/api/mainspec", specHandler.MainSpecHandler)
	route("/api/subspecs", specHandler.ListSubSpecsHandler)
	route("/api/subspec", specHandler.SubSpecHandler)

	route("/api/categories", categoryHandler.ListCategoriesHandler)
	route("/api/categories/create", categoryHandler.CreateCategoryHandler)
	route("/api/categories/get", categoryHandler.GetCategoryHandler)
	route("/api/categories/update", categoryHandler.UpdateCategoryHandler)
	route("/api/categories/delete", categoryHandler.DeleteCategoryHandler)
	route("/api/platform-categories", categoryHandler.PlatformCategoriesHandler)
	route("/api/platform-category", categoryHandler.PlatformCategoryHandler)
	route("/api/categories/assign", categoryHandler.AssignProductHandler)
	route("/api/categories/remove", categoryHandler.RemoveProductHandler)
	route("/api/categories/by-product", categoryHandler.ProductCategoriesHandler)
	route("/api/products/by-category", categoryHandler.CategoryProductsHandler)

	route("/api/images", mediaHandler.ListImagesHandler)
	route("/api/image", mediaHandler.ImageHandler)
	route("/api/images/cover", mediaHandler.SetCoverImageHandler)
	route("/api/videos", mediaHandler.ListVideosHandler)
	route("/api/video", mediaHandler.VideoHandler)

	mux.Handle("/metrics", metrics.MetricsHandler())
}
