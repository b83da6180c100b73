package routes

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"glowmart_back_end/internal/config"
	"glowmart_back_end/internal/database"
	orderhandler "glowmart_back_end/internal/handlers/order"
	paymenthandler "glowmart_back_end/internal/handlers/payment"
	producthandler "glowmart_back_end/internal/handlers/product"
	userhandler "glowmart_back_end/internal/handlers/user"
	"glowmart_back_end/internal/middleware"
	"glowmart_back_end/internal/models"
	"glowmart_back_end/internal/orders"
	"glowmart_back_end/internal/payment"
	"glowmart_back_end/internal/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires every endpoint onto the engine. Signal flow:
// browser -> Next frontend -> this API -> ScyllaDB/Redis/gateway.
func RegisterRoutes(r *gin.Engine) {
	r.Use(cors.New(corsConfig()))
	r.Use(middleware.APIRateLimit())

	orderSvc := orders.NewService(orders.NewScyllaStore(), orders.NewScyllaCatalog())

	sslczCfg := config.LoadSSLCommerz()
	coordinator := payment.NewCoordinator(orderSvc,
		payment.NewSSLCommerzClient(sslczCfg),
		payment.NewMobileMoneyClient("bkash"),
		payment.NewMobileMoneyClient("rocket"),
		payment.NewMobileMoneyClient("nagad"),
	)

	payments := &paymenthandler.Handler{
		Orders:      orderSvc,
		Coordinator: coordinator,
		Validator:   payment.NewSSLCommerzClient(sslczCfg),
		Guard:       paymenthandler.RedisTranGuard{},
		FrontendURL: sslczCfg.FrontendURL,
		OnPaid:      onPaid,
	}

	ordersHandler := orderhandler.NewHandler(orderSvc)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	// Storefront catalog, public
	api.GET("/products", producthandler.GetProducts)
	api.GET("/products/:id", producthandler.GetProduct)
	api.GET("/products/search", producthandler.SearchProducts)
	api.GET("/products/typeahead", producthandler.Typeahead)
	api.GET("/categories", producthandler.GetCategories)
	api.GET("/categories/:slug/products", producthandler.GetCategoryProducts)

	// Catalog administration
	admin := api.Group("/admin", middleware.AuthRequired(), middleware.RequireAdmin())
	admin.POST("/products", producthandler.CreateProduct)
	admin.PUT("/products/:id", producthandler.UpdateProduct)
	admin.DELETE("/products/:id", producthandler.DeleteProduct)

	// Cart, authenticated
	cart := api.Group("/cart", middleware.AuthRequired(), middleware.CartRateLimit())
	cart.GET("", userhandler.GetCart)
	cart.PUT("", userhandler.UpdateCart)
	cart.DELETE("", userhandler.RemoveFromCart)
	cart.POST("/merge", userhandler.MergeCart)
	cart.DELETE("/clear", userhandler.ClearCart)
	api.GET("/cart/ws", middleware.AuthRequired(), userhandler.CartWebSocket)

	// Orders
	ordersGroup := api.Group("/orders", middleware.AuthRequired())
	ordersGroup.POST("", ordersHandler.CreateOrder)
	ordersGroup.GET("", ordersHandler.GetMyOrders)
	ordersGroup.GET("/:id", ordersHandler.GetOrder)

	// Payment
	api.POST("/payment/initiate", middleware.AuthRequired(), middleware.PaymentRateLimit(), payments.InitiatePayment)

	// Gateway callbacks arrive as server-to-server or browser form POSTs
	// with no auth header. They only redirect, never error.
	callbacks := api.Group("/payment/callback")
	callbacks.POST("/success", payments.Success)
	callbacks.POST("/fail", payments.Fail)
	callbacks.POST("/cancel", payments.Cancel)
}

func corsConfig() cors.Config {
	cfg := cors.DefaultConfig()
	origins := os.Getenv("CORS_ORIGINS")
	if origins == "" {
		origins = "http://localhost:3000"
	}
	cfg.AllowOrigins = strings.Split(origins, ",")
	cfg.AllowCredentials = true
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
	return cfg
}

// onPaid runs once per confirmed payment: clear the persisted cart and
// send the confirmation mail with the invoice attached.
func onPaid(order models.Order) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := database.Redis.Del(ctx, "cart:"+order.UserID).Err(); err != nil {
		log.Println("⚠️ Cart cleanup failed for order", order.LegacyRef, ":", err)
	}

	var pdf []byte
	qr, err := utils.GenerateOrderQR(order.LegacyRef)
	if err == nil {
		pdf, err = utils.RenderInvoicePDF(utils.FrontendInvoiceBaseURL(), order.LegacyRef, qr)
		if err != nil {
			log.Println("⚠️ Invoice render failed for", order.LegacyRef, ":", err)
			pdf = nil
		}
	}

	html := utils.GenerateOrderConfirmationHTML(order)
	if err := utils.SendConfirmationEmail(order.ShippingAddress.Email, "Your GlowMart order "+order.LegacyRef, html, pdf); err != nil {
		log.Println("❌ Confirmation email failed for", order.LegacyRef, ":", err)
		return
	}
	log.Println("✅ Confirmation email sent for order", order.LegacyRef)
}
