package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"skillconnect-order-service/internal/auth"
	"skillconnect-order-service/internal/event"
	"skillconnect-order-service/internal/gig"
	gighandler "skillconnect-order-service/internal/gig/handler"
	gigrepo "skillconnect-order-service/internal/gig/repository"
	gigservice "skillconnect-order-service/internal/gig/service"
	"skillconnect-order-service/internal/logger"
	"skillconnect-order-service/internal/order"
	orderhandler "skillconnect-order-service/internal/order/handler"
	orderrepo "skillconnect-order-service/internal/order/repository"
	orderservice "skillconnect-order-service/internal/order/service"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/streadway/amqp"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Konteks global untuk klien Redis
var ctx = context.Background()

func main() {
	// === 0. LOGGER ===
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	zl, err := logger.New(logLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zl.Sync()

	zl.Info("Starting SkillConnect Order Service...")

	// === 1. KONEKSI DATABASE ===
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		zl.Fatal("DATABASE_URL environment variable is not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		zl.Fatal("Failed to connect to database", zap.Error(err))
	}
	zl.Info("Database connection established")

	zl.Info("Running AutoMigration...")
	if err := db.AutoMigrate(&order.Order{}, &order.StatusHistoryEntry{}, &gig.Gig{}, &gig.Review{}); err != nil {
		zl.Fatal("Failed to migrate database", zap.Error(err))
	}

	// === 2. CACHE (REDIS) ===
	redisAddr := fmt.Sprintf("%s:%s", os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT"))
	rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		zl.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	zl.Info("Redis connection established")

	// === 3. MESSAGE BROKER (RABBITMQ) ===
	amqpURL := os.Getenv("RABBITMQ_URL")
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		zl.Fatal("Failed to connect to RabbitMQ", zap.Error(err))
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		zl.Fatal("Failed to open RabbitMQ channel", zap.Error(err))
	}
	defer ch.Close()

	if err := event.DeclareExchange(ch); err != nil {
		zl.Fatal("Failed to declare exchange", zap.String("exchange", event.Exchange), zap.Error(err))
	}
	zl.Info("RabbitMQ connection established")

	// Listener event order.* untuk audit log operasional
	go startOrderEventLogger(ch, zl)

	// === 4. AUTH ===
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		zl.Fatal("JWT_SECRET environment variable is not set")
	}
	tokenService := auth.NewTokenService(jwtSecret, 24*time.Hour)

	// === 5. ARSITEKTUR (Repository -> Service -> Handler) ===
	publisher := event.NewAMQPPublisher(ch)

	gigRepository := gigrepo.NewGigRepository(db)
	orderRepository := orderrepo.NewOrderRepository(db)

	orderSvc := orderservice.NewOrderService(orderRepository, gigRepository, rdb, publisher, zl)
	gigSvc := gigservice.NewGigService(gigRepository, orderRepository, rdb, zl)

	orderHandler := orderhandler.NewOrderHandler(orderSvc)
	gigHandler := gighandler.NewGigHandler(gigSvc)

	// === 6. GIN ROUTER ===
	router := gin.Default()
	router.SetTrustedProxies(nil)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")

	// Callback gateway dipanggil server-to-server, tanpa token user
	api.POST("/payments/notification", orderHandler.PaymentNotification)

	authed := api.Group("", auth.Middleware(tokenService))
	{
		authed.POST("/gigs", auth.RequireRole(auth.RoleProvider, auth.RoleAdmin), gigHandler.CreateGig)
		authed.GET("/gigs/:id", gigHandler.GetGig)
		authed.GET("/gigs/:id/reviews", gigHandler.ListReviews)

		authed.POST("/orders", auth.RequireRole(auth.RoleClient), orderHandler.CreateOrder)
		authed.GET("/orders/:id", orderHandler.GetOrder)
		authed.GET("/orders/:id/history", orderHandler.History)
		authed.GET("/orders/:id/fees", orderHandler.Fees)
		authed.POST("/orders/:id/status", orderHandler.TransitionStatus)
		authed.POST("/orders/:id/review", auth.RequireRole(auth.RoleClient), gigHandler.CreateReview)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	zl.Info("SkillConnect Order Service is running", zap.String("port", port))
	if err := router.Run(":" + port); err != nil {
		zl.Fatal("Server stopped", zap.Error(err))
	}
}

// startOrderEventLogger mendengarkan semua event order.* dari exchange dan
// mencatatnya, sebagai jejak operasional di samping history di database.
func startOrderEventLogger(ch *amqp.Channel, zl *zap.Logger) {
	q, err := ch.QueueDeclare(
		"q.orders.log", // name
		true,           // durable
		false,          // delete when unused
		false,          // exclusive
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		zl.Warn("Failed to declare queue 'q.orders.log'", zap.Error(err))
		return
	}

	err = ch.QueueBind(
		q.Name,
		"order.*", // routing key: order.created dan order.status_changed
		event.Exchange,
		false,
		nil,
	)
	if err != nil {
		zl.Warn("Failed to bind queue 'q.orders.log'", zap.Error(err))
		return
	}

	msgs, err := ch.Consume(
		q.Name, // queue
		"",     // consumer
		true,   // auto-ack
		false,  // exclusive
		false,  // no-local
		false,  // no-wait
		nil,    // args
	)
	if err != nil {
		zl.Warn("Failed to register consumer for 'q.orders.log'", zap.Error(err))
		return
	}

	zl.Info("Event logger for 'order.*' started")
	for d := range msgs {
		zl.Info("order event received",
			zap.String("routing_key", d.RoutingKey),
			zap.ByteString("body", d.Body))
	}
}
