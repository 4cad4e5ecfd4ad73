package httpserver

import (
	"github.com/labstack/echo/v4"

	mwauth "github.com/Veldkraal/farm_shop/internal/middleware/auth"
)

type Deps struct {
	Auth     *AuthHTTP
	Cart     *CartHTTP
	Address  *AddressHTTP
	Order    *OrderHTTP
	Product  *ProductHTTP
	Search   *SearchHTTP
	Review   *ReviewHTTP
	Sessions *mwauth.Middleware
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	v1 := e.Group("/api/v1")

	v1.POST("/register", d.Auth.Register)
	v1.POST("/login", d.Auth.Login)
	v1.POST("/logout", d.Auth.Logout)

	v1.GET("/products", d.Product.List)
	v1.GET("/products/:slug", d.Product.GetBySlug)
	v1.GET("/categories", d.Product.ListCategories)
	v1.GET("/search", d.Search.Handler)
	v1.GET("/product/:id/reviews", d.Review.List)
	v1.POST("/product/:id/reviews", d.Review.Create, d.Sessions.RequireLogin)

	// The cart read is unauthenticated-safe; everything that mutates it is not.
	v1.GET("/cart", d.Cart.GetCart, d.Sessions.OptionalLogin)

	cart := v1.Group("/cart", d.Sessions.RequireLogin)
	cart.POST("/items", d.Cart.AddItem)
	cart.PATCH("/items/:id", d.Cart.UpdateItem)
	cart.DELETE("/items/:id", d.Cart.RemoveItem)
	cart.DELETE("", d.Cart.Clear)

	addresses := v1.Group("/addresses", d.Sessions.RequireLogin)
	addresses.GET("", d.Address.List)
	addresses.POST("", d.Address.Create)
	addresses.PATCH("/:id", d.Address.Update)
	addresses.DELETE("/:id", d.Address.Delete)

	orders := v1.Group("/orders", d.Sessions.RequireLogin)
	orders.POST("", d.Order.Place)
	orders.GET("", d.Order.ListMine)
	orders.GET("/:id", d.Order.GetMine)

	admin := v1.Group("/admin", d.Sessions.RequireLogin, d.Sessions.AdminOnly)
	admin.POST("/products", d.Product.Create)
	admin.PATCH("/products/:id", d.Product.Patch)
	admin.DELETE("/products/:id", d.Product.Delete)
	admin.POST("/products/:id/images", d.Product.AddImage)
	admin.PUT("/products/:id/images/order", d.Product.ReorderImages)
	admin.POST("/categories", d.Product.CreateCategory)
	admin.DELETE("/categories/:id", d.Product.DeleteCategory)
	admin.GET("/orders", d.Order.ListAll)
	admin.PATCH("/orders/:id/status", d.Order.UpdateStatus)
}
