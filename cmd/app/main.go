package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"dispatch/cmd"
	amqpin "dispatch/internal/adapters/in/amqp"
	httpin "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/postgres/courierrepo"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/adapters/out/postgres/outboxrepo"
	"dispatch/internal/adapters/out/rabbitmq"

	"log/slog"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs)
	mustMigrate(gormDB)

	app := cmd.NewCompositionRoot(configs, gormDB, logger)

	publisher, err := rabbitmq.NewPublisher(configs.RabbitMQURL)
	if err != nil {
		log.Fatalf("connecting to RabbitMQ: %v", err)
	}
	defer publisher.Close()

	consumer, err := amqpin.NewConsumer(configs.RabbitMQURL, app.CreateDispatchOrderCommandHandler(), logger)
	if err != nil {
		log.Fatalf("creating AMQP consumer: %v", err)
	}
	defer consumer.Close()

	if err := consumer.Start(context.Background()); err != nil {
		log.Fatalf("starting AMQP consumer: %v", err)
	}

	jobManager := app.CreateJobManager(publisher)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:       goDotEnvVariable("HTTP_PORT"),
		DBHost:         goDotEnvVariable("DB_HOST"),
		DBPort:         goDotEnvVariable("DB_PORT"),
		DBUser:         goDotEnvVariable("DB_USER"),
		DBPassword:     goDotEnvVariable("DB_PASSWORD"),
		DBName:         goDotEnvVariable("DB_NAME"),
		DBSslMode:      goDotEnvVariable("DB_SSLMODE"),
		RabbitMQURL:    goDotEnvVariable("RABBITMQ_URL"),
		RequestTimeout: cmd.DefaultRequestTimeout,
	}
	if raw := os.Getenv("REQUEST_TIMEOUT"); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			log.Fatalf("invalid REQUEST_TIMEOUT %q: %v", raw, err)
		}
		config.RequestTimeout = timeout
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("connecting to database: %v", err)
	}
	return gormDB
}

func mustMigrate(gormDB *gorm.DB) {
	err := gormDB.AutoMigrate(
		&courierrepo.CourierDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.DeliveryDTO{},
		&orderrepo.DeliveryRequestDTO{},
		&outboxrepo.MessageDTO{},
	)
	if err != nil {
		log.Fatalf("migrating database schema: %v", err)
	}
}

func startWebServer(app cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpin.NewServer(
		app.CreateCreateCourierCommandHandler(),
		app.CreateStartShiftCommandHandler(),
		app.CreateStopShiftCommandHandler(),
		app.CreateReportLocationCommandHandler(),
		app.CreatePlaceOrderCommandHandler(),
		app.CreatePayOrderCommandHandler(),
		app.CreateStartPreparingCommandHandler(),
		app.CreateFinishPreparingCommandHandler(),
		app.CreateAcceptDeliveryRequestCommandHandler(),
		app.CreateRejectDeliveryRequestCommandHandler(),
		app.CreateConfirmPickupCommandHandler(),
		app.CreateConfirmDropoffCommandHandler(),
		app.CreateCancelOrderCommandHandler(),
		app.CreateGetAllCouriersQueryHandler(),
		app.CreateGetCourierRequestsQueryHandler(),
		app.CreateGetUncompletedOrdersQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
