package app

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/nekogravitycat/shareit-backend/internal/api"
	"github.com/nekogravitycat/shareit-backend/internal/booking"
	"github.com/nekogravitycat/shareit-backend/internal/clock"
	"github.com/nekogravitycat/shareit-backend/internal/comment"
	"github.com/nekogravitycat/shareit-backend/internal/config"
	"github.com/nekogravitycat/shareit-backend/internal/item"
	"github.com/nekogravitycat/shareit-backend/internal/itemrequest"
	"github.com/nekogravitycat/shareit-backend/internal/metrics"
	"github.com/nekogravitycat/shareit-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction     bool
	ProdOrigins      string
	StorageDriver    string
	DBPool           *pgxpool.Pool // required for the postgres driver
	AllowSelfBooking bool
	Publisher        booking.Publisher
	Clock            clock.Clock
	Logger           *zap.Logger
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router         *gin.Engine
	BookingService booking.Service
}

type repositories struct {
	users    user.Repository
	requests itemrequest.Repository
	items    item.Repository
	comments comment.Repository
	bookings func(snapshot booking.SnapshotFunc) booking.Repository
}

func newPgxRepositories(pool *pgxpool.Pool) repositories {
	return repositories{
		users:    user.NewPgxRepository(pool),
		requests: itemrequest.NewPgxRepository(pool),
		items:    item.NewPgxRepository(pool),
		comments: comment.NewPgxRepository(pool),
		// The SQL repository joins the item and booker on every read.
		bookings: func(booking.SnapshotFunc) booking.Repository {
			return booking.NewPgxRepository(pool)
		},
	}
}

func newMemoryRepositories() repositories {
	return repositories{
		users:    user.NewMemoryRepository(),
		requests: itemrequest.NewMemoryRepository(),
		items:    item.NewMemoryRepository(),
		comments: comment.NewMemoryRepository(),
		bookings: booking.NewMemoryRepository,
	}
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	clk := cfg.Clock
	if clk == nil {
		clk = clock.NewSystem()
	}

	var repos repositories
	if cfg.StorageDriver == config.StorageMemory {
		repos = newMemoryRepositories()
	} else {
		repos = newPgxRepositories(cfg.DBPool)
	}

	// User Module
	userService := user.NewService(repos.users)

	// Item Module (the request repository answers whether a request exists)
	itemService := item.NewService(repos.items, userService, repos.requests)

	// Item Request Module
	requestService := itemrequest.NewService(repos.requests, userService, itemService)

	// Booking Module
	bookingRepo := repos.bookings(bookingSnapshot(userService, itemService))
	bookingService := booking.NewService(bookingRepo, userService, itemService, clk, booking.Options{
		AllowSelfBooking: cfg.AllowSelfBooking,
		Publisher:        cfg.Publisher,
		Observer:         metrics.BookingObserver{},
		Logger:           log.Named("booking"),
	})

	// Comment Module
	commentService := comment.NewService(repos.comments, userService, itemService, bookingService)

	// API Router Config
	routerParams := api.Config{
		IsProduction:   cfg.IsProduction,
		ProdOrigins:    cfg.ProdOrigins,
		Logger:         log.Named("http"),
		UserService:    userService,
		ItemService:    itemService,
		BookingService: bookingService,
		CommentService: commentService,
		RequestService: requestService,
	}

	// Router
	router := api.NewRouter(routerParams)

	return &Container{
		Router:         router,
		BookingService: bookingService,
	}
}

// bookingSnapshot refreshes item and booker fields of a stored booking so
// in-memory reads see current names and ownership. Bookings of a deleted item
// or booker are dropped, as ON DELETE CASCADE does in postgres.
func bookingSnapshot(users user.Service, items item.Service) booking.SnapshotFunc {
	return func(ctx context.Context, b *booking.Booking) bool {
		it, err := items.GetByID(ctx, b.ItemID)
		switch {
		case errors.Is(err, item.ErrNotFound):
			return false
		case err == nil:
			b.ItemName = it.Name
			b.OwnerID = it.OwnerID
		}

		u, err := users.GetByID(ctx, b.BookerID)
		switch {
		case errors.Is(err, user.ErrNotFound):
			return false
		case err == nil:
			b.BookerName = u.Name
		}
		return true
	}
}
