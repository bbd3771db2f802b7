package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"
	"strings"

	"frota/internal/api"
	"frota/internal/auth"
	"frota/internal/repository"
	"frota/internal/service"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
)

func main() {
	godotenv.Load()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	database, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := database.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	userRepo := repository.NewUserRepository(database)
	vehicleRepo := repository.NewVehicleRepository(database)
	reservationRepo := repository.NewReservationRepository(database)
	jobRepo := repository.NewJobRepository(database)

	notifySvc := service.NewNotifyService()
	reservationSvc := service.NewReservationService(reservationRepo, vehicleRepo, userRepo, notifySvc)
	vehicleSvc := service.NewVehicleService(vehicleRepo, reservationRepo)
	userSvc := service.NewUserService(userRepo, reservationRepo)
	authSvc := service.NewAuthService(userRepo)
	jobSvc := service.NewJobService(jobRepo)

	reservationHandler := api.NewReservationHandler(reservationSvc)
	vehicleHandler := api.NewVehicleHandler(vehicleSvc)
	userHandler := api.NewUserHandler(userSvc)
	authHandler := api.NewAuthHandler(authSvc)

	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/api/status", api.Status).Methods("GET")
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/api/users", userHandler.Register).Methods("POST")

	// Authenticated endpoints
	protected := r.PathPrefix("/api").Subrouter()
	protected.Use(auth.Middleware)
	protected.HandleFunc("/users", userHandler.List).Methods("GET")
	protected.HandleFunc("/users/me", userHandler.UpdateMe).Methods("PUT")
	protected.HandleFunc("/users/me", userHandler.DeleteMe).Methods("DELETE")
	protected.HandleFunc("/vehicles", vehicleHandler.List).Methods("GET")
	protected.HandleFunc("/vehicles", vehicleHandler.Create).Methods("POST")
	protected.HandleFunc("/vehicles/{id}", vehicleHandler.Update).Methods("PUT")
	protected.HandleFunc("/vehicles/{id}", vehicleHandler.Delete).Methods("DELETE")
	protected.HandleFunc("/reservations", reservationHandler.Reserve).Methods("POST")
	protected.HandleFunc("/reservations/me", reservationHandler.ListMine).Methods("GET")
	protected.HandleFunc("/reservations/me/active", reservationHandler.ActiveMine).Methods("GET")
	protected.HandleFunc("/reservations/{id}/release", reservationHandler.Release).Methods("POST")

	// Periodic sweep for vehicles stuck in 'reserved' without an active reservation
	schedule := os.Getenv("RECONCILE_SCHEDULE")
	if schedule == "" {
		schedule = "@every 5m"
	}
	c := cron.New()
	if _, err := c.AddFunc(schedule, func() {
		if err := jobSvc.ReconcileVehicleStatuses(); err != nil {
			log.Printf("%v", err)
		}
	}); err != nil {
		log.Fatalf("Failed to schedule reconciliation job: %v", err)
	}
	c.Start()

	origins := []string{"*"}
	if raw := os.Getenv("CORS_ALLOWED_ORIGINS"); raw != "" {
		origins = strings.Split(raw, ",")
	}
	corsHandler := handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, handlers.LoggingHandler(os.Stdout, corsHandler)))
}
