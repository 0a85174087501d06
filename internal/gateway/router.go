package gateway

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nekogravitycat/shareit-backend/internal/api"
	"github.com/nekogravitycat/shareit-backend/internal/auth"
	"github.com/nekogravitycat/shareit-backend/internal/booking"
	bookingHttp "github.com/nekogravitycat/shareit-backend/internal/booking/http"
	"github.com/nekogravitycat/shareit-backend/internal/clock"
	commentHttp "github.com/nekogravitycat/shareit-backend/internal/comment/http"
	itemHttp "github.com/nekogravitycat/shareit-backend/internal/item/http"
	requestHttp "github.com/nekogravitycat/shareit-backend/internal/itemrequest/http"
	"github.com/nekogravitycat/shareit-backend/internal/metrics"
	userHttp "github.com/nekogravitycat/shareit-backend/internal/user/http"
)

// Config holds the gateway's collaborators.
type Config struct {
	Proxy   *Proxy
	Limiter Limiter
	Clock   clock.Clock
	Logger  *zap.Logger
}

// NewRouter mirrors the backend routes, validating each request before it is forwarded.
func NewRouter(cfg Config) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	clk := cfg.Clock
	if clk == nil {
		clk = clock.NewSystem()
	}

	r := gin.New()
	r.Use(api.Logger(log), api.RequestID(log), api.Recovery(log), metrics.Middleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	metrics.Register()
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	if cfg.Limiter != nil {
		r.Use(RateLimit(cfg.Limiter, log))
	}

	forward := cfg.Proxy.Handle
	userRequired := auth.UserRequired()

	bookingDates := func(req *bookingHttp.CreateBookingRequest) error {
		return booking.ValidateDates(req.Start.Ptr(), req.End.Ptr(), clk.Now())
	}

	users := r.Group("/users")
	{
		users.POST("", JSONBody[userHttp.CreateUserRequest](), forward)
		users.GET("", forward)
		users.GET("/:id", forward)
		users.PATCH("/:id", JSONBody[userHttp.UpdateUserRequest](), forward)
		users.DELETE("/:id", forward)
	}

	items := r.Group("/items")
	items.Use(userRequired)
	{
		items.POST("", JSONBody[itemHttp.CreateItemRequest](), forward)
		items.GET("", Paging(), forward)
		items.GET("/search", Paging(), forward)
		items.GET("/:id", forward)
		items.PATCH("/:id", JSONBody[itemHttp.UpdateItemRequest](), forward)
		items.DELETE("/:id", forward)
		items.POST("/:id/comment", JSONBody[commentHttp.CreateCommentRequest](), forward)
	}

	bookings := r.Group("/bookings")
	bookings.Use(userRequired)
	{
		bookings.POST("", JSONBody(bookingDates), forward)
		bookings.GET("", State(), Paging(), forward)
		bookings.GET("/owner", State(), Paging(), forward)
		bookings.GET("/:id", forward)
		bookings.PATCH("/:id", Approved(), forward)
	}

	requests := r.Group("/requests")
	requests.Use(userRequired)
	{
		requests.POST("", JSONBody[requestHttp.CreateItemRequestRequest](), forward)
		requests.GET("", forward)
		requests.GET("/all", Paging(), forward)
		requests.GET("/:id", forward)
	}

	return r
}
