package routes

import (
	"net/http"
	"time"

	"vendora/app/controllers"
	"vendora/app/services"
	"vendora/pkg/metrics"
	"vendora/pkg/middleware"
	"vendora/pkg/response"
	"vendora/pkg/router"
)

// RegisterAPI wires every endpoint. The auth group is rate limited because
// it is the brute-force surface; the catalog and order groups are not.
func RegisterAPI(r *router.Router, mailer *services.Mailer) {
	authController := controllers.NewAuthController(services.NewAuthService(mailer))
	categoryController := controllers.NewCategoryController(services.NewCategoryService())
	productController := controllers.NewProductController(services.NewProductService())
	orderController := controllers.NewOrderController(services.NewOrderService())

	api := r.Group("/api")

	auth := api.Group("/auth", middleware.RateLimit(30, time.Minute))
	auth.Post("/signup", "auth.signup", authController.Signup)
	auth.Post("/login", "auth.login", authController.Login)
	auth.Get("/authentication/{token}", "auth.verify", authController.VerifyEmail)
	auth.Post("/forgot-password", "auth.forgot", authController.ForgotPassword)
	auth.Get("/reset-password/{token}", "auth.reset.form", authController.ResetPasswordForm)
	auth.Post("/reset-password/{token}", "auth.reset", authController.ResetPassword)
	auth.Get("/me", "auth.me", authController.Me, middleware.Auth)

	category := api.Group("/category")
	category.Get("/", "category.all", categoryController.All)
	category.Get("/products-by-category", "category.products", categoryController.ProductsByCategory)
	category.Post("/", "category.create", categoryController.Create)
	category.Put("/{categoryId}", "category.update", categoryController.Update)
	category.Delete("/{categoryId}", "category.delete", categoryController.Delete)
	category.Get("/{categoryId}", "category.get", categoryController.Get)

	product := api.Group("/product")
	product.Get("/", "product.all", productController.All)
	product.Post("/", "product.create", productController.Create)
	product.Put("/{productId}", "product.update", productController.Update)
	product.Delete("/{productId}", "product.delete", productController.Delete)
	product.Get("/{productId}", "product.get", productController.Get)

	order := api.Group("/order")
	order.Post("/", "order.create", orderController.Create)
	order.Get("/", "order.all", orderController.All)
	order.Get("/user/{userId}", "order.by_user", orderController.ByUser)
	order.Get("/{orderId}", "order.get", orderController.Get)

	r.Get("/metrics", "metrics", metrics.Handler())
	r.Get("/healthz", "health", func(w http.ResponseWriter, _ *http.Request) {
		response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}
