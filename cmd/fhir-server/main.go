package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ichewm/MedicalBible-sub001/internal/config"
	"github.com/ichewm/MedicalBible-sub001/internal/domain/billing"
	"github.com/ichewm/MedicalBible-sub001/internal/domain/exams"
	"github.com/ichewm/MedicalBible-sub001/internal/domain/identity"
	"github.com/ichewm/MedicalBible-sub001/internal/domain/lectures"
	"github.com/ichewm/MedicalBible-sub001/internal/domain/organization"
	"github.com/ichewm/MedicalBible-sub001/internal/domain/wrongbook"
	"github.com/ichewm/MedicalBible-sub001/internal/platform/auth"
	"github.com/ichewm/MedicalBible-sub001/internal/platform/db"
	"github.com/ichewm/MedicalBible-sub001/internal/platform/fhir"
	"github.com/ichewm/MedicalBible-sub001/internal/platform/middleware"
)

const version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "fhir-server",
		Short: "MedicalBible FHIR R4 adaptation layer",
	}

	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the FHIR API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	// Database
	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID", "X-User-ID"},
	}))

	fhirGroup := e.Group("/fhir")
	fhirGroup.Use(auth.Middleware(cfg.AuthJWTSecret, cfg.IsDev(), logger))

	// Health check
	fhirGroup.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": version,
		})
	})

	// CapabilityStatement. The search param lists must stay in lockstep with
	// what the handlers accept.
	baseURL := fmt.Sprintf("http://localhost:%s/fhir", cfg.Port)
	subjectParam := fhir.CSSearchParam{Name: "subject", Type: "reference"}
	capability := fhir.NewCapabilityStatement(baseURL, []fhir.CSResource{
		patientCapability(),
		fhir.ReadOnlyCapability("Observation", []fhir.CSSearchParam{subjectParam}),
		fhir.ReadOnlyCapability("Condition", []fhir.CSSearchParam{subjectParam}),
		fhir.ReadOnlyCapability("DocumentReference", []fhir.CSSearchParam{subjectParam}),
		fhir.ReadOnlyCapability("Encounter", []fhir.CSSearchParam{subjectParam}),
		fhir.ReadOnlyCapability("Coverage", nil),
		fhir.ReadCapability("Organization"),
	})
	fhirGroup.GET("/metadata", func(c echo.Context) error {
		return c.JSON(http.StatusOK, capability)
	})

	// Domain wiring
	identitySvc := identity.NewService(identity.NewRepo(pool))
	examsSvc := exams.NewService(exams.NewRepo(pool))
	wrongbookSvc := wrongbook.NewService(wrongbook.NewRepo(pool))
	billingSvc := billing.NewService(billing.NewRepo(pool))
	lecturesSvc := lectures.NewService(lectures.NewRepo(pool), billingSvc)

	identity.NewHandler(identitySvc).RegisterRoutes(fhirGroup)
	exams.NewHandler(examsSvc).RegisterRoutes(fhirGroup)
	wrongbook.NewHandler(wrongbookSvc).RegisterRoutes(fhirGroup)
	lectures.NewHandler(lecturesSvc).RegisterRoutes(fhirGroup)
	billing.NewHandler(billingSvc).RegisterRoutes(fhirGroup)
	organization.NewHandler().RegisterRoutes(fhirGroup)

	// Patient/$everything: fixed composition of one Patient, capped
	// Observations and Conditions, then all Coverages.
	everything := fhir.NewEverythingHandler()
	everything.SetPatientFetcher(func(ctx context.Context, userID int64) (map[string]interface{}, error) {
		account, err := identitySvc.GetAccount(ctx, userID)
		if err != nil {
			return nil, err
		}
		return account.ToFHIR(), nil
	})
	everything.RegisterFetcher("Observation", 10, func(ctx context.Context, userID int64) ([]map[string]interface{}, error) {
		sessions, _, err := examsSvc.SearchSessions(ctx, exams.SearchFilter{UserID: userID}, 10, 0)
		if err != nil {
			return nil, err
		}
		out := make([]map[string]interface{}, len(sessions))
		for i, s := range sessions {
			out[i] = s.ToObservationFHIR()
		}
		return out, nil
	})
	everything.RegisterFetcher("Condition", 10, func(ctx context.Context, userID int64) ([]map[string]interface{}, error) {
		entries, _, err := wrongbookSvc.SearchEntries(ctx, wrongbook.SearchFilter{UserID: userID}, 10, 0)
		if err != nil {
			return nil, err
		}
		out := make([]map[string]interface{}, len(entries))
		for i, e := range entries {
			out[i] = e.ToFHIR()
		}
		return out, nil
	})
	everything.RegisterFetcher("Coverage", 0, func(ctx context.Context, userID int64) ([]map[string]interface{}, error) {
		var all []*billing.Subscription
		for offset := 0; ; offset += 500 {
			subs, total, err := billingSvc.ListSubscriptions(ctx, userID, 500, offset)
			if err != nil {
				return nil, err
			}
			all = append(all, subs...)
			if len(all) >= total || len(subs) == 0 {
				break
			}
		}
		now := time.Now()
		out := make([]map[string]interface{}, len(all))
		for i, s := range all {
			out[i] = s.ToFHIR(now)
		}
		return out, nil
	})
	everything.RegisterRoutes(fhirGroup)

	// Start server with graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("forced shutdown")
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}

func patientCapability() fhir.CSResource {
	res := fhir.ReadOnlyCapability("Patient", []fhir.CSSearchParam{
		{Name: "identifier", Type: "token"},
	})
	res.Operation = []fhir.CSOperation{
		{
			Name:       "everything",
			Definition: "http://hl7.org/fhir/OperationDefinition/Patient-everything",
		},
	}
	return res
}
