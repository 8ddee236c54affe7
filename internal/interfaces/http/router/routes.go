package router

import (
	"github.com/gin-gonic/gin"
	"github.com/stationery/backoffice/internal/interfaces/http/handler"
)

// Handlers groups every HTTP handler mounted by Mount
type Handlers struct {
	Investors      *handler.InvestorHandler
	Payouts        *handler.PayoutHandler
	PurchaseOrders *handler.PurchaseOrderHandler
	SalesOrders    *handler.SalesOrderHandler
	Bills          *handler.BillHandler
	System         *handler.SystemHandler
}

// Mount registers the back-office API on r. Extra middleware applies to the payout routes only.
func Mount(r *Router, h Handlers, payoutMiddleware ...gin.HandlerFunc) *Router {
	investors := NewDomainGroup("financing", "/investors")
	investors.
		POST("", h.Investors.Create).
		GET("", h.Investors.List).
		GET("/statistics", h.Investors.Statistics).
		GET("/:id", h.Investors.GetByID).
		PUT("/:id", h.Investors.Update).
		DELETE("/:id", h.Investors.Delete).
		POST("/:id/activate", h.Investors.Activate).
		POST("/:id/deactivate", h.Investors.Deactivate).
		GET("/:id/statement", h.Investors.Statement)
	payouts := investors.Group("payouts", "/:id/payouts").Use(payoutMiddleware...)
	payouts.
		POST("", h.Payouts.Create).
		GET("", h.Payouts.List)

	purchaseOrders := NewDomainGroup("trade", "/purchase-orders")
	purchaseOrders.
		POST("", h.PurchaseOrders.Create).
		GET("", h.PurchaseOrders.List).
		GET("/:id", h.PurchaseOrders.GetByID).
		PUT("/:id", h.PurchaseOrders.Update).
		POST("/:id/approve", h.PurchaseOrders.Approve).
		POST("/:id/order", h.PurchaseOrders.MarkOrdered).
		POST("/:id/receive", h.PurchaseOrders.Receive).
		POST("/:id/cancel", h.PurchaseOrders.Cancel).
		GET("/:id/investments", h.PurchaseOrders.Investments).
		GET("/:id/inventory", h.PurchaseOrders.Inventory).
		POST("/:id/payments", h.PurchaseOrders.AddPayment).
		PUT("/:id/payments/:paymentId", h.PurchaseOrders.EditPayment).
		DELETE("/:id/payments/:paymentId", h.PurchaseOrders.DeletePayment)

	inventory := NewDomainGroup("inventory", "/inventory")
	inventory.GET("", h.SalesOrders.AvailableInventory)

	salesOrders := NewDomainGroup("sales", "/sales-orders")
	salesOrders.
		POST("", h.SalesOrders.Create).
		GET("", h.SalesOrders.List).
		GET("/:id", h.SalesOrders.GetByID).
		GET("/:id/profit-distribution", h.SalesOrders.ProfitDistribution).
		GET("/:id/bills", h.SalesOrders.Bills)

	bills := NewDomainGroup("billing", "/bills")
	bills.
		POST("", h.Bills.Issue).
		GET("/:id", h.Bills.GetByID).
		POST("/:id/payments", h.Bills.RecordPayment)

	system := NewDomainGroup("system", "/health")
	system.
		GET("", h.System.Health).
		GET("/ready", h.System.Ready)

	return r.Register(investors).
		Register(purchaseOrders).
		Register(inventory).
		Register(salesOrders).
		Register(bills).
		Register(system)
}
