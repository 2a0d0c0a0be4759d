package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Waqasabid99/rms-backend/config"
	"github.com/Waqasabid99/rms-backend/middlewares"
	"github.com/Waqasabid99/rms-backend/models"
	"github.com/Waqasabid99/rms-backend/router"
	"github.com/Waqasabid99/rms-backend/store"
	"github.com/Waqasabid99/rms-backend/utils"
)

func main() {
	utils.InitLogger()
	config.LoadEnv()

	mongoDB, mongoClient, err := config.ConnectMongo()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to document database: %v", err)
	}

	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.Role{}, &models.User{}); err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := router.SetupRouter(router.Deps{
		Menu:         store.NewMenuStore(mongoDB),
		Reservations: store.NewReservationStore(mongoDB),
		Takeaway:     store.NewTakeawayStore(mongoDB),
		Delivery:     store.NewDeliveryStore(mongoDB),
		DB:           db,
		Verifier:     middlewares.NewIdentityVerifier(),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		utils.InfoLogger.Printf("Listening on port %s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.ErrorLogger.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	utils.InfoLogger.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.ErrorLogger.Printf("Server shutdown: %v", err)
	}
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		utils.ErrorLogger.Printf("Mongo disconnect: %v", err)
	}
}
