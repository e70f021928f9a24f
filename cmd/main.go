package main

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/keyhaven/lockbox-service/internal/app"
	"github.com/keyhaven/lockbox-service/internal/config"
	"github.com/keyhaven/lockbox-service/internal/controllers"
	"github.com/keyhaven/lockbox-service/internal/middleware"
	"github.com/keyhaven/lockbox-service/internal/repositories"
	"github.com/keyhaven/lockbox-service/internal/routes"
	"github.com/keyhaven/lockbox-service/internal/services"
	"github.com/keyhaven/lockbox-service/internal/utils"
)

func main() {
	utils.InitLogger(config.AppName)

	// 1) Config
	cfg := config.LoadConfig()

	// 2) Core application (DB pool + migrations)
	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to initialize app")
	}
	defer application.Close()

	// 3) Repositories & services
	entryRepo := repositories.NewLockboxEntryRepository(application.DB)
	entrySvc := services.NewEntryService(entryRepo)
	pageSvc := services.NewPaginationService(entryRepo)
	importSvc := services.NewImportService(entryRepo)
	autocompleteSvc := services.NewAutocompleteService(cfg.OpenAIAPIKey, entryRepo)
	sessionSvc := services.NewSessionService(cfg.RSAPrivateKey, cfg.SessionTTL)

	// 4) Controllers
	healthCtrl := controllers.NewHealthController(application)
	sessionCtrl := controllers.NewSessionController(sessionSvc)
	entriesCtrl := controllers.NewEntriesController(entrySvc)
	pagesCtrl := controllers.NewPagesController(pageSvc)
	importCtrl := controllers.NewImportController(importSvc)
	autocompleteCtrl := controllers.NewAutocompleteController(autocompleteSvc)

	// 5) Router. Public routes first; everything else sits behind the
	// session-auth middleware. Fixed paths register before {id} so
	// "lookup"/"import"/"page" never parse as entry ids.
	router := mux.NewRouter()
	router.HandleFunc(routes.Health, healthCtrl.HealthCheckHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.Session, sessionCtrl.CreateSessionHandler).Methods(http.MethodPost)

	api := router.NewRoute().Subrouter()
	api.Use(middleware.AuthMiddleware(cfg.RSAPublicKey))

	api.HandleFunc(routes.EntryLookup, entriesCtrl.LookupEntryHandler).Methods(http.MethodGet)
	api.HandleFunc(routes.EntriesImport, importCtrl.ImportCSVHandler).Methods(http.MethodPost)

	api.HandleFunc(routes.PageNext, pagesCtrl.NextPageHandler).Methods(http.MethodPost)
	api.HandleFunc(routes.PagePrev, pagesCtrl.PrevPageHandler).Methods(http.MethodPost)
	api.HandleFunc(routes.PageRefresh, pagesCtrl.RefreshPageHandler).Methods(http.MethodPost)
	api.HandleFunc(routes.PageReset, pagesCtrl.ResetPageHandler).Methods(http.MethodPost)
	api.HandleFunc(routes.PageSize, pagesCtrl.ResizePageHandler).Methods(http.MethodPut)

	api.HandleFunc(routes.Entries, pagesCtrl.CurrentPageHandler).Methods(http.MethodGet)
	api.HandleFunc(routes.Entries, entriesCtrl.CreateEntryHandler).Methods(http.MethodPost)
	api.HandleFunc(routes.EntryByID, entriesCtrl.UpdateEntryHandler).Methods(http.MethodPut)
	api.HandleFunc(routes.EntryByID, entriesCtrl.DeleteEntryHandler).Methods(http.MethodDelete)

	api.HandleFunc(routes.Properties, entriesCtrl.ListPropertyNamesHandler).Methods(http.MethodGet)
	api.HandleFunc(routes.PropertyUnits, entriesCtrl.ListUnitNumbersHandler).Methods(http.MethodGet)

	api.HandleFunc(routes.AutocompletePropertyName, autocompleteCtrl.PropertyNameHandler).Methods(http.MethodPost)
	api.HandleFunc(routes.AutocompleteUnitNumbers, autocompleteCtrl.UnitNumbersHandler).Methods(http.MethodPost)

	// 6) CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.AppUrl},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.AppPort,
		Handler:      c.Handler(router),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	utils.Logger.Infof("Starting %s on :%s", cfg.AppName, cfg.AppPort)
	if err := srv.ListenAndServe(); err != nil {
		utils.Logger.Fatal("Server error:", err)
	}
}
