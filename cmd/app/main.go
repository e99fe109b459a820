package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"dispatch/cmd"
	"dispatch/internal/adapters/out/postgres/courierrepo"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/adapters/out/postgres/refusalrepo"
	"dispatch/internal/core/application/projections/board"
	"dispatch/internal/core/application/usecases/queries"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	gormDB := openDatabase(configs)

	app := cmd.NewCompositionRoot(configs, gormDB, nil)

	startProjector(&app)

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:           goDotEnvVariable("HTTP_PORT"),
		DBHost:             goDotEnvVariable("DB_HOST"),
		DBPort:             goDotEnvVariable("DB_PORT"),
		DBUser:             goDotEnvVariable("DB_USER"),
		DBPassword:         goDotEnvVariable("DB_PASSWORD"),
		DBName:             goDotEnvVariable("DB_NAME"),
		DBSslMode:          goDotEnvVariable("DB_SSLMODE"),
		KafkaHost:          goDotEnvVariable("KAFKA_HOST"),
		KafkaConsumerGroup: goDotEnvVariable("KAFKA_CONSUMER_GROUP"),
		KafkaFeedTopic:     goDotEnvVariable("KAFKA_FEED_TOPIC"),
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

func openDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&courierrepo.CourierDTO{},
		&refusalrepo.RefusalDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return gormDB
}

// startProjector seeds the board from storage, then folds live feed events
// on top in the background.
func startProjector(app *cmd.CompositionRoot) {
	ctx := context.Background()

	activeOrders, err := app.CreateGetActiveOrdersQueryHandler().Handle(ctx, queries.NewGetActiveOrdersQuery())
	if err != nil {
		log.Fatalf("Failed to load board snapshot: %v", err)
	}

	entries := make([]board.Entry, 0, len(activeOrders))
	for _, o := range activeOrders {
		entry := board.Entry{
			OrderID:   o.ID.String(),
			Reference: o.Reference,
			Status:    o.Status.String(),
			Refusals:  o.RefusalCount,
		}
		if o.CourierID != nil {
			entry.CourierID = o.CourierID.String()
		}
		entries = append(entries, entry)
	}
	app.Projector().Rebuild(entries)

	go func() {
		if err := app.Projector().Run(ctx, app.Feed()); err != nil && ctx.Err() == nil {
			log.Fatalf("Board projector stopped: %v", err)
		}
	}()
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	app.CreateHTTPServer().RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
