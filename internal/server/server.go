package server

import (
	"context"
	"net/http"
	"time"

	amenityservice "github.com/Sabyy027/hostel-core/internal/amenity/service"
	bookingservice "github.com/Sabyy027/hostel-core/internal/booking/service"
	"github.com/Sabyy027/hostel-core/internal/bookingflow"
	catalogservice "github.com/Sabyy027/hostel-core/internal/catalog/service"
	checkoutservice "github.com/Sabyy027/hostel-core/internal/checkout/service"
	"github.com/Sabyy027/hostel-core/internal/clock"
	"github.com/Sabyy027/hostel-core/internal/config"
	invoiceservice "github.com/Sabyy027/hostel-core/internal/invoice/service"
	"github.com/Sabyy027/hostel-core/internal/media"
	"github.com/Sabyy027/hostel-core/internal/observability"
	obslogger "github.com/Sabyy027/hostel-core/internal/observability/logger"
	obsmetrics "github.com/Sabyy027/hostel-core/internal/observability/metrics"
	obstracing "github.com/Sabyy027/hostel-core/internal/observability/tracing"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, metrics *obsmetrics.Metrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(obslogger.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(metrics.GinMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, metrics *obsmetrics.Metrics) *gin.Engine {
	return NewEngine(obsCfg, metrics)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine *gin.Engine
	cfg    config.Config
	db     *gorm.DB
	log    *zap.Logger
	clock  clock.Clock

	catalogSvc  *catalogservice.Service
	bookingSvc  *bookingservice.Service
	invoiceSvc  *invoiceservice.Service
	amenitySvc  *amenityservice.Service
	checkoutSvc *checkoutservice.Service
	flows       *bookingflow.Manager
	mediaStore  *media.Store

	checkoutLimiter *rateLimiter
}

type ServerParams struct {
	fx.In

	Gin         *gin.Engine
	Cfg         config.Config
	DB          *gorm.DB
	Log         *zap.Logger
	Clock       clock.Clock
	CatalogSvc  *catalogservice.Service
	BookingSvc  *bookingservice.Service
	InvoiceSvc  *invoiceservice.Service
	AmenitySvc  *amenityservice.Service
	CheckoutSvc *checkoutservice.Service
	Flows       *bookingflow.Manager
	MediaStore  *media.Store
}

func NewServer(p ServerParams) *Server {
	s := &Server{
		engine:          p.Gin,
		cfg:             p.Cfg,
		db:              p.DB,
		log:             p.Log.Named("http.server"),
		clock:           p.Clock,
		catalogSvc:      p.CatalogSvc,
		bookingSvc:      p.BookingSvc,
		invoiceSvc:      p.InvoiceSvc,
		amenitySvc:      p.AmenitySvc,
		checkoutSvc:     p.CheckoutSvc,
		flows:           p.Flows,
		mediaStore:      p.MediaStore,
		checkoutLimiter: newRateLimiter(30, time.Minute),
	}

	s.registerAPIRoutes()
	s.registerAdminRoutes()

	return s
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api", s.StudentRequired())

	// -------- Catalog --------
	api.GET("/rooms", s.ListBookableRooms)

	// -------- Booking flow --------
	api.GET("/booking/flow", s.GetFlow)
	api.POST("/booking/preferences", s.SetPreferences)
	api.POST("/booking/select-room", s.SelectRoom)
	api.POST("/booking/profile", s.SubmitProfile)

	// -------- My booking --------
	api.GET("/my-booking", s.MyBooking)
	api.POST("/my-booking/image", s.UploadProfileImage)

	// -------- Checkout --------
	// One protocol, three subjects. Rate limited per student.
	api.POST("/checkout/orders", s.CheckoutRateLimit(), s.CreateCheckoutOrder)
	api.POST("/checkout/verify", s.CheckoutRateLimit(), s.VerifyPayment)

	// -------- Dues & amenities --------
	api.GET("/dues", s.ListPendingDues)
	api.GET("/amenities", s.ListAmenities)
	api.GET("/amenities/activations", s.ListMyActivations)
}

func (s *Server) registerAdminRoutes() {
	admin := s.engine.Group("/admin", s.AdminRequired())

	admin.GET("/reconciliation-flags", s.ListReconciliationFlags)
	admin.POST("/amenities", s.CreateAmenity)
	admin.POST("/rooms/:id/discount", s.AttachRoomDiscount)
}
