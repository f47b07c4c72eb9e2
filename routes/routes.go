package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"luxury-stay-backend/controllers"
	"luxury-stay-backend/middleware"
	"luxury-stay-backend/models"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires the controllers into the route tree.
func SetupRouter(
	db *gorm.DB,
	ac *controllers.AuthController,
	roomCtrl *controllers.RoomController,
	resCtrl *controllers.ReservationController,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	protect := middleware.Protect(db)
	staff := middleware.Authorize(models.RoleAdmin, models.RoleManager, models.RoleReceptionist)

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", ac.Login)
			auth.POST("/forgot-password", ac.ForgotPassword)
			auth.GET("/profile", protect, ac.Profile)
		}

		rooms := api.Group("/rooms")
		{
			rooms.GET("", roomCtrl.List)
			rooms.POST("", protect, staff, roomCtrl.Create)
			rooms.PUT("/:id", protect, staff, roomCtrl.Update)
			rooms.DELETE("/:id", protect, staff, roomCtrl.Delete)
		}

		reservations := api.Group("/reservations")
		{
			// Public: no auth required.
			reservations.POST("/public", resCtrl.CreatePublic)
			reservations.POST("/scan-qr", resCtrl.ScanQR)

			// Authenticated callers (guest or staff).
			reservations.GET("/my-bookings", protect, resCtrl.MyBookings)
			reservations.GET("/:id/qr-code", protect, resCtrl.QRCode)
			reservations.PUT("/:id/cancel", protect, resCtrl.Cancel)
			reservations.POST("", protect, resCtrl.Create)

			// Staff only.
			reservations.GET("", protect, staff, resCtrl.List)
			reservations.POST("/:id/check-in", protect, staff, resCtrl.CheckIn)
			reservations.POST("/:id/check-out", protect, staff, resCtrl.CheckOut)
		}
	}

	return r
}
