package bootstrap

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	cataloginadapter "eductl/internal/modules/catalog/adapter/in"
	catalogoutadapter "eductl/internal/modules/catalog/adapter/out"
	catalogservice "eductl/internal/modules/catalog/service"
	catalogusecase "eductl/internal/modules/catalog/usecase"
	guardin "eductl/internal/modules/guard/port/in"
	guardservice "eductl/internal/modules/guard/service"
	guardusecase "eductl/internal/modules/guard/usecase"
	plugininadapter "eductl/internal/modules/plugin/adapter/in"
	pluginoutadapter "eductl/internal/modules/plugin/adapter/out"
	pluginservice "eductl/internal/modules/plugin/service"
	pluginusecase "eductl/internal/modules/plugin/usecase"
	queryoutadapter "eductl/internal/modules/query/adapter/out"
	queryin "eductl/internal/modules/query/port/in"
	queryservice "eductl/internal/modules/query/service"
	queryusecase "eductl/internal/modules/query/usecase"
	sessioninadapter "eductl/internal/modules/session/adapter/in"
	sessionoutadapter "eductl/internal/modules/session/adapter/out"
	sessionin "eductl/internal/modules/session/port/in"
	sessionservice "eductl/internal/modules/session/service"
	sessionusecase "eductl/internal/modules/session/usecase"
	"eductl/internal/platform/clock"
	"eductl/internal/platform/config"
	"eductl/internal/platform/id"
	uiapp "eductl/internal/ui/app"
)

type App struct {
	SessionCLI sessioninadapter.CLIHandler
	CatalogCLI cataloginadapter.CLIHandler
	CatalogTUI cataloginadapter.TUIHandler
	PluginCLI  plugininadapter.CLIHandler

	SessionUC sessionin.Usecase
	GuardUC   guardin.Usecase
	QueryUC   queryin.Usecase
}

func New(cfg config.Config) (*App, error) {
	clk := clock.SystemClock{}
	ids := id.RandomHex{}

	// The session service is both the token sink for logins and the token
	// source for outgoing requests and the route guard.
	sessionSvc := sessionservice.NewSessionService(sessionoutadapter.NewFileTokenStore(cfg.TokenPath))

	transport, err := queryoutadapter.NewHTTPTransport(cfg.BaseURL, cfg.RequestTimeout, sessionSvc)
	if err != nil {
		return nil, fmt.Errorf("new transport: %w", err)
	}
	snapshots, err := queryoutadapter.NewSQLiteSnapshotStore(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new snapshot store: %w", err)
	}
	cacheSvc := queryservice.NewCacheService(clk, ids, transport, snapshots, queryservice.DefaultGracePeriod)
	if err := cacheSvc.Hydrate(context.Background()); err != nil {
		return nil, fmt.Errorf("hydrate cache: %w", err)
	}
	queryUC := queryusecase.NewInteractor(cacheSvc)

	sessionUC := sessionusecase.NewInteractor(sessionSvc, sessionoutadapter.NewLoginGateway(queryUC))
	guardUC := guardusecase.NewInteractor(guardservice.NewGuardService(sessionSvc))

	catalogUC := catalogusecase.NewInteractor(catalogservice.NewCatalogService(
		catalogoutadapter.NewQueryGateway(queryUC),
		catalogoutadapter.NewLocalPDFQuestionSource(),
	))

	pluginUC := pluginusecase.NewInteractor(pluginservice.NewPluginService(
		pluginoutadapter.NewFileManifestStore(cfg.PluginsPath),
		pluginoutadapter.NewGRPCHost(),
	))

	return &App{
		SessionCLI: sessioninadapter.NewCLIHandler(sessionUC),
		CatalogCLI: cataloginadapter.NewCLIHandler(catalogUC),
		CatalogTUI: cataloginadapter.NewTUIHandler(catalogUC),
		PluginCLI:  plugininadapter.NewCLIHandler(pluginUC),
		SessionUC:  sessionUC,
		GuardUC:    guardUC,
		QueryUC:    queryUC,
	}, nil
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.CatalogTUI, app.SessionUC, app.GuardUC, app.QueryUC)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
