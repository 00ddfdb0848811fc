package app

import (
	"context"

	"signup-service/internal/auth/provider"
	"signup-service/internal/auth/provider/cognito"
	"signup-service/internal/config"
	"signup-service/internal/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type Infra struct {
	Provider provider.IdentityProvider
	Registry *prometheus.Registry
}

func setupInfra(ctx context.Context, cfg config.Config) (*Infra, error) {
	identityProvider, err := cognito.New(ctx, cfg.CognitoRegion)
	if err != nil {
		return nil, err
	}

	logger.Info("identity provider ready", map[string]any{
		"provider": identityProvider.Name(),
	})

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Infra{
		Provider: identityProvider,
		Registry: registry,
	}, nil
}
