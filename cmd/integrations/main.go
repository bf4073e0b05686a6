package main

// @title           Integrations Service API
// @version         1.0
// @description     OAuth2 integration service that connects user sessions to CRM providers and fetches normalized contact and company records.

// @host      localhost:8080
// @BasePath  /

import (
	"context"
	"log"
	"log/slog"

	_ "github.com/bhataasim1/integrations-technical-assessment/docs"
	"github.com/bhataasim1/integrations-technical-assessment/internal/adapters/driven/auth"
	"github.com/bhataasim1/integrations-technical-assessment/internal/adapters/driven/connectors"
	"github.com/bhataasim1/integrations-technical-assessment/internal/adapters/driven/connectors/hubspot"
	"github.com/bhataasim1/integrations-technical-assessment/internal/adapters/driven/crypto"
	"github.com/bhataasim1/integrations-technical-assessment/internal/adapters/driven/memory"
	"github.com/bhataasim1/integrations-technical-assessment/internal/adapters/driven/postgres"
	redisadapter "github.com/bhataasim1/integrations-technical-assessment/internal/adapters/driven/redis"
	"github.com/bhataasim1/integrations-technical-assessment/internal/adapters/driving/http"
	"github.com/bhataasim1/integrations-technical-assessment/internal/config"
	"github.com/bhataasim1/integrations-technical-assessment/internal/core/ports/driven"
	"github.com/bhataasim1/integrations-technical-assessment/internal/core/services"
	"github.com/bhataasim1/integrations-technical-assessment/internal/normalisers"
	"github.com/bhataasim1/integrations-technical-assessment/internal/worker"
	"github.com/redis/go-redis/v9"
)

var version = "dev"

func main() {
	log.Printf("integrations %s starting", version)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ===== Credential encryption =====
	encryptor, err := crypto.NewSecretEncryptorFromSecret(cfg.EncryptionSecret)
	if err != nil {
		log.Fatalf("Failed to build credential encryptor: %v", err)
	}

	// ===== Credential store (Redis if available, then PostgreSQL, then memory) =====
	var store driven.CredentialStore
	var pinger http.Pinger

	switch {
	case cfg.RedisURL != "":
		log.Println("Connecting to Redis...")
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to parse Redis URL: %v", err)
		}
		redisClient := redis.NewClient(opts)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()

		redisStore := redisadapter.NewCredentialStore(redisClient, encryptor)
		store = redisStore
		pinger = redisStore
		log.Println("Using Redis credential store")

	case cfg.DatabaseURL != "":
		log.Println("Connecting to PostgreSQL...")
		db, err := postgres.Connect(ctx, postgres.DefaultConfig(cfg.DatabaseURL))
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		// Initialize schema (idempotent)
		if err := db.InitSchema(ctx); err != nil {
			log.Fatalf("Failed to initialize schema: %v", err)
		}
		store = postgres.NewCredentialStore(db.DB, encryptor)
		pinger = db
		log.Println("Using PostgreSQL credential store")

	default:
		store = memory.NewCredentialStore()
		log.Println("Using in-memory credential store (credentials are lost on restart)")
	}

	// ===== Provider connectors =====
	normaliserRegistry := normalisers.DefaultRegistry()
	registry := connectors.NewRegistry()

	if cfg.HubSpotConfigured() {
		hubspotCfg := hubspot.DefaultConfig()
		hubspotCfg.ClientID = cfg.HubSpotClientID
		hubspotCfg.ClientSecret = cfg.HubSpotClientSecret
		hubspotCfg.RedirectURL = cfg.HubSpotRedirectURL
		hubspotCfg.Timeout = cfg.ProviderTimeout
		hubspotCfg.PageLimit = cfg.ProviderPageLimit
		hubspotCfg.MaxPages = cfg.ProviderMaxPages
		hubspotCfg.MaxRetries = cfg.ProviderMaxRetries

		registry.Register(
			hubspot.NewOAuthClient(hubspotCfg),
			hubspot.NewItemSource(hubspotCfg, normaliserRegistry),
		)
		log.Println("HubSpot connector registered")
	} else {
		log.Println("HubSpot connector not configured (set HUBSPOT_CLIENT_ID and HUBSPOT_CLIENT_SECRET)")
	}

	// ===== Services (core business logic) =====
	stateTokens := services.NewStateTokenService(services.StateTokenServiceConfig{
		Store:  store,
		Signer: auth.NewStateSigner(cfg.StateSigningSecret),
		TTL:    cfg.StateTTL,
	})

	integrationService := services.NewIntegrationService(services.IntegrationServiceConfig{
		Store:         store,
		StateTokens:   stateTokens,
		OAuthClients:  registry.OAuthClients(),
		ItemSources:   registry.ItemSources(),
		CredentialTTL: cfg.CredentialTTL,
		Logger:        slog.Default(),
	})

	// ===== Cleanup worker =====
	sweeper := worker.NewCleanupWorker(worker.Config{
		Store:    store,
		Logger:   slog.Default(),
		Interval: cfg.CleanupInterval,
	})
	if err := sweeper.Start(ctx); err != nil {
		log.Fatalf("Failed to start cleanup worker: %v", err)
	}
	defer sweeper.Stop()

	// ===== HTTP server =====
	server := http.NewServer(http.Config{
		Host:               cfg.Host,
		Port:               cfg.Port,
		Version:            version,
		FrontendURL:        cfg.FrontendURL,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	}, integrationService, pinger)

	log.Printf("API server starting on %s", cfg.Addr())
	if err := server.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
