package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yahorse/boardo/internal/auth"
	"github.com/yahorse/boardo/internal/booking"
	bookingHttp "github.com/yahorse/boardo/internal/booking/http"
	"github.com/yahorse/boardo/internal/pet"
	petHttp "github.com/yahorse/boardo/internal/pet/http"
	"github.com/yahorse/boardo/internal/room"
	roomHttp "github.com/yahorse/boardo/internal/room/http"
	"github.com/yahorse/boardo/internal/user"
	userHttp "github.com/yahorse/boardo/internal/user/http"
)

// Config holds the services and settings the router needs.
type Config struct {
	IsProduction   bool
	ProdOrigins    string
	UserService    user.Service
	PetService     pet.Service
	RoomService    room.Service
	BookingService booking.Service
	JWTManager     *auth.JWTManager
}

// NewRouter initializes the HTTP router engine.
// It assembles middleware (CORS, Logger, Auth) and registers routes for each module.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:8081"}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// authMiddleware: validates the JWT and stores identity in context.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	// staffMiddleware: further checks the staff/admin role against the database.
	staffMiddleware := RequireStaff(cfg.UserService)

	userHandler := userHttp.NewHandler(cfg.UserService, cfg.JWTManager)
	petHandler := petHttp.NewHandler(cfg.PetService)
	roomHandler := roomHttp.NewHandler(cfg.RoomService, cfg.BookingService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)

	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware)
		petHttp.RegisterRoutes(v1, petHandler, authMiddleware)
		roomHttp.RegisterRoutes(v1, roomHandler, authMiddleware, staffMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware, staffMiddleware)
	}

	return r
}
