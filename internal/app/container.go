package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/yahorse/boardo/internal/api"
	"github.com/yahorse/boardo/internal/auth"
	"github.com/yahorse/boardo/internal/booking"
	"github.com/yahorse/boardo/internal/pet"
	"github.com/yahorse/boardo/internal/room"
	"github.com/yahorse/boardo/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction   bool
	ProdOrigins    string
	DBPool         *pgxpool.Pool
	DBQueryTimeout time.Duration
	JWTSecret      string
	JWTTTL         time.Duration
	BcryptCost     int
	Logger         *zap.Logger
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router      *gin.Engine
	JWTManager  *auth.JWTManager
	RoomService room.Service
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool, cfg.DBQueryTimeout)
	userService := user.NewService(userRepo, passwordHasher)

	// Pet Module
	petRepo := pet.NewPgxRepository(cfg.DBPool, cfg.DBQueryTimeout)
	petService := pet.NewService(petRepo)

	// Room Module
	roomRepo := room.NewPgxRepository(cfg.DBPool, cfg.DBQueryTimeout)
	roomService := room.NewService(roomRepo, cfg.Logger)

	// Booking Module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool, cfg.DBQueryTimeout)
	bookingService := booking.NewService(bookingRepo, roomService, petService, cfg.Logger)

	router := api.NewRouter(api.Config{
		IsProduction:   cfg.IsProduction,
		ProdOrigins:    cfg.ProdOrigins,
		UserService:    userService,
		PetService:     petService,
		RoomService:    roomService,
		BookingService: bookingService,
		JWTManager:     jwtManager,
	})

	return &Container{
		Router:      router,
		JWTManager:  jwtManager,
		RoomService: roomService,
	}
}
