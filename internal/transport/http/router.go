package httpserver

import (
	"github.com/labstack/echo/v4"

	"bikeshop/internal/handlers"
)

type Deps struct {
	AuthHandler   *handlers.AuthHandler
	BikeHandler   *handlers.BikeHandler
	PartHandler   *handlers.PartHandler
	StaffHandler  *handlers.StaffHandler
	LedgerHandler *handlers.LedgerHandler
	OrderHandler  *handlers.OrderHandler
	SearchHandler *handlers.SearchHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	v1 := e.Group("/api/v1")

	v1.POST("/register", d.AuthHandler.Register)
	v1.POST("/login", d.AuthHandler.Login)

	bikes := v1.Group("/bikes")
	bikes.GET("", d.BikeHandler.GetBikes)
	bikes.GET("/search", d.BikeHandler.SearchBikes)
	bikes.GET("/:id", d.BikeHandler.GetBike)
	bikes.POST("", d.BikeHandler.CreateBike)
	bikes.PUT("/:id", d.BikeHandler.UpdateBike)
	bikes.DELETE("/:id", d.BikeHandler.DeleteBike)

	parts := v1.Group("/parts")
	parts.GET("", d.PartHandler.GetParts)
	parts.GET("/search", d.PartHandler.SearchParts)
	parts.GET("/:id", d.PartHandler.GetPart)
	parts.POST("", d.PartHandler.CreatePart)
	parts.PUT("/:id", d.PartHandler.UpdatePart)
	parts.DELETE("/:id", d.PartHandler.DeletePart)

	staff := v1.Group("/staff")
	staff.GET("", d.StaffHandler.ListStaff)
	staff.GET("/search", d.StaffHandler.SearchStaff)
	staff.GET("/:id", d.StaffHandler.GetStaff)
	staff.POST("", d.StaffHandler.CreateStaff)
	staff.PUT("/:id", d.StaffHandler.UpdateStaff)
	staff.DELETE("/:id", d.StaffHandler.DeleteStaff)

	transactions := v1.Group("/transactions")
	transactions.GET("", d.LedgerHandler.ListTransactions)
	transactions.GET("/search", d.LedgerHandler.SearchTransactions)
	transactions.GET("/:id", d.LedgerHandler.GetTransaction)
	transactions.POST("", d.LedgerHandler.CreateTransaction)
	transactions.PUT("/:id", d.LedgerHandler.UpdateTransaction)
	transactions.DELETE("/:id", d.LedgerHandler.DeleteTransaction)

	orders := v1.Group("/orders")
	orders.GET("", d.OrderHandler.ListOrders)
	orders.GET("/:id", d.OrderHandler.GetOrder)
	orders.POST("", d.OrderHandler.PlaceOrder)

	// fuzzy catalog search, only wired when elasticsearch is configured
	if d.SearchHandler != nil {
		v1.GET("/search", d.SearchHandler.Handler)
	}
}
