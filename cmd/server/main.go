package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/mrled/mailvet/internal/api"
	"github.com/mrled/mailvet/internal/config"
	"github.com/mrled/mailvet/internal/forms"
	"github.com/mrled/mailvet/internal/logger"
	"github.com/mrled/mailvet/internal/repository"
	"github.com/mrled/mailvet/internal/service/dnscheck"
	"github.com/mrled/mailvet/internal/service/verifier"
	"github.com/mrled/mailvet/internal/usecase"
)

func main() {
	log := logger.NewDefaultLogger()
	log = logger.WithExecutable(log, "server")
	logger.SetDefault(log)

	settings, err := config.Load()
	if err != nil {
		log.Error("Failed to load settings", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	stores, err := repository.NewStores(ctx, repository.Config{
		FilePath:       settings.FilePath,
		DynamoTable:    settings.DynamoTable,
		DynamoEndpoint: settings.DynamoEndpoint,
		RedisAddr:      settings.RedisAddr,
		RedisPassword:  settings.RedisPassword,
	})
	if err != nil {
		log.Error("Failed to initialize stores", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var dns *dnscheck.Service
	if settings.DNSServer != "" {
		dns = dnscheck.NewServiceWithResolver(dnscheck.NewCustomResolver(settings.DNSServer))
		log.Info("Using custom DNS server", slog.String("server", settings.DNSServer))
	} else {
		dns = dnscheck.NewService()
	}

	uc := usecase.NewVerifyUseCase(
		stores.Domains,
		stores.Emails,
		verifier.NewClient(),
		dns,
		usecase.Config{
			APIKey:          settings.APIKey,
			FreshnessWindow: settings.FreshnessWindow,
		},
		usecase.WithLogger(logger.WithService(log, "verify")),
	)

	gates := []*forms.Gate{
		forms.NewGate(forms.FeatureComments, settings.EnableComments, uc),
		forms.NewGate(forms.FeatureCheckout, settings.EnableCheckout, uc),
		forms.NewGate(forms.FeatureForms, settings.EnableForms, uc),
	}

	handler := api.NewHandler(uc, gates, logger.WithService(log, "api"))

	log.Info("Starting HTTP server", slog.String("addr", settings.ListenAddr))
	if err := http.ListenAndServe(settings.ListenAddr, handler.Router()); err != nil {
		log.Error("Server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
