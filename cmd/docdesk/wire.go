package main

import (
	"github.com/custodia-labs/docdesk/internal/adapters/driven/backend/httpapi"
	"github.com/custodia-labs/docdesk/internal/adapters/driven/config/file"
	"github.com/custodia-labs/docdesk/internal/adapters/driving/cli"
	"github.com/custodia-labs/docdesk/internal/core/services"
	"github.com/custodia-labs/docdesk/internal/logger"
)

// buildServices wires the TOML config store and the HTTP backend into the
// core services. Settings are returned even when the backend cannot be
// built so config commands can fix a bad server URL.
func buildServices(opts cli.Options) (*cli.Services, error) {
	store, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, err
	}
	settingsService := services.NewSettingsService(store)
	out := &cli.Services{Settings: settingsService}

	settings, err := settingsService.Get()
	if err != nil {
		return out, err
	}

	cfg := httpapi.ConfigFromSettings(settings)
	if opts.ServerURL != "" {
		cfg.BaseURL = opts.ServerURL
	}
	client, err := httpapi.New(cfg)
	if err != nil {
		return out, err
	}
	logger.Debug("Using document server %s (config %s)", client.BaseURL(), store.Path())

	out.Documents = services.NewDocumentService(client)
	out.Search = services.NewSearchService(client)
	out.Chat = services.NewChatService(client)
	return out, nil
}
