package echo

import "github.com/labstack/echo/v4"

// RegisterRoutes mounts the API. The token endpoint is open; everything
// under /api/users requires a bearer token.
func RegisterRoutes(server *echo.Echo, auth *AuthHandler, users *UserHandler, bulk *BulkHandler, requireAuth echo.MiddlewareFunc) {
	api := server.Group("/api")

	api.POST("/auth/token", auth.Token)

	protected := api.Group("/users", requireAuth)
	protected.POST("/single/create", users.Create)
	protected.GET("/all/fetch", users.List)
	protected.GET("/:email/fetch", users.GetByEmail)
	protected.PUT("/:email/update", users.Update)
	protected.DELETE("/:email/delete", users.Delete)
	protected.POST("/bulk/create", bulk.Create)
	protected.POST("/bulk/delete", bulk.Delete)
}
