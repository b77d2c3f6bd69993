package app

import (
	"bitwise74/shop-api/app/order"
	"bitwise74/shop-api/app/product"
	"bitwise74/shop-api/app/root"
	"bitwise74/shop-api/app/user"
	"bitwise74/shop-api/internal"
	"bitwise74/shop-api/pkg/middleware"
	"bitwise74/shop-api/pkg/validators"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type RouterConfig struct {
	CORSOrigins []string
	// RateLimit is requests per second per IP, 0 disables it
	RateLimit int
	Turnstile middleware.TurnstileConfig
}

func NewRouter(d *internal.Deps, cfg RouterConfig) *gin.Engine {
	validators.Register()

	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"http://localhost:3000"}
	}

	router := gin.New()

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     cfg.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "TurnstileToken"},
			ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v := c.GetString("userID"); v != "" {
					fields = append(fields, zap.String("userID", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true
	router.MaxMultipartMemory = 8 << 20

	auth := middleware.NewSessionMiddleware(d.Sessions, d.Store.Users)
	admin := middleware.RequireAdmin()
	turnstile := middleware.NewTurnstileMiddleware(cfg.Turnstile)
	rateLimiter := middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		RequestsPerSecond: cfg.RateLimit,
		Burst:             cfg.RateLimit * 2,
	})
	jsonLimit := middleware.BodySizeLimiter(1 << 20)

	m := router.Group("/api", rateLimiter)
	{
		// HEAD /api/heartbeat 		-> Used to check if the server is alive
		m.HEAD("/heartbeat", root.Heartbeat)

		// GET /api/validate		-> Validates the session cookie
		m.GET("/validate", auth, root.Validate)
	}

	a := m.Group("/auth", jsonLimit)
	{
		// POST /api/auth/signup		-> Registers a new, unverified user
		a.POST("/signup", turnstile, func(c *gin.Context) { user.UserRegister(c, d) })

		// POST /api/auth/signin		-> Signs a verified user in and sets the session cookie
		a.POST("/signin", func(c *gin.Context) { user.UserLogin(c, d) })

		// POST /api/auth/signout		-> Clears the session cookie
		a.POST("/signout", func(c *gin.Context) { user.UserLogout(c, d) })

		// GET /api/auth/verify-email	-> Verifies an email address with the mailed token
		a.GET("/verify-email", func(c *gin.Context) { user.UserVerify(c, d) })

		// POST /api/auth/forgot-password	-> Mails a password reset link
		a.POST("/forgot-password", turnstile, func(c *gin.Context) { user.UserForgotPassword(c, d) })

		// POST /api/auth/reset-password	-> Sets a new password with a reset token
		a.POST("/reset-password", func(c *gin.Context) { user.UserResetPassword(c, d) })

		// GET /api/auth/me		-> Returns the signed in user
		a.GET("/me", auth, user.UserFetch)
	}

	p := m.Group("/products")
	{
		// GET /api/products		-> Lists products, filtered by the query
		p.GET("", func(c *gin.Context) { product.ProductSearch(c, d) })

		// GET /api/products/:id	-> Returns a single product
		p.GET("/:id", func(c *gin.Context) { product.ProductFetch(c, d) })

		// POST /api/products		-> Creates a product
		p.POST("", jsonLimit, auth, admin, func(c *gin.Context) { product.ProductCreate(c, d) })

		// PUT /api/products/:id	-> Updates a product
		p.PUT("/:id", jsonLimit, auth, admin, func(c *gin.Context) { product.ProductEdit(c, d) })

		// DELETE /api/products/:id	-> Deletes a product
		p.DELETE("/:id", auth, admin, func(c *gin.Context) { product.ProductDelete(c, d) })

		// POST /api/products/:id/image	-> Uploads a product image
		p.POST("/:id/image", middleware.BodySizeLimiter(d.MaxImageSize+1<<20), auth, admin, func(c *gin.Context) { product.ProductImageUpload(c, d) })
	}

	o := m.Group("/orders", auth)
	{
		// GET /api/orders		-> Lists the user's orders, all orders for admins
		o.GET("", func(c *gin.Context) { order.OrderFetchBulk(c, d) })

		// POST /api/orders		-> Places an order
		o.POST("", jsonLimit, func(c *gin.Context) { order.OrderCreate(c, d) })

		// GET /api/orders/:id		-> Returns an order owned by the user
		o.GET("/:id", func(c *gin.Context) { order.OrderFetch(c, d) })

		// PUT /api/orders/:id/status	-> Changes an order's status
		o.PUT("/:id/status", jsonLimit, admin, func(c *gin.Context) { order.OrderStatusUpdate(c, d) })
	}

	u := m.Group("/users", auth, admin)
	{
		// GET /api/users		-> Lists all users without credentials
		u.GET("", func(c *gin.Context) { user.UserList(c, d) })
	}

	return router
}
