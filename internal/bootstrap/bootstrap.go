package bootstrap

import (
	"context"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hashicorp/go-hclog"

	meter "airtime/internal/modules/meter/domain"
	sessioninadapter "airtime/internal/modules/session/adapter/in"
	sessionoutadapter "airtime/internal/modules/session/adapter/out"
	sessionservice "airtime/internal/modules/session/service"
	sessionusecase "airtime/internal/modules/session/usecase"
	"airtime/internal/platform/clock"
	"airtime/internal/platform/config"
	"airtime/internal/platform/id"
	"airtime/internal/platform/logging"
	uiapp "airtime/internal/ui/app"
)

type App struct {
	Config     config.Config
	Log        hclog.Logger
	SessionCLI sessioninadapter.CLIHandler
	SessionTUI sessioninadapter.TUIHandler

	closers []io.Closer
}

func New(cfg config.Config) (*App, error) {
	log, logFile, err := logging.New(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	app := &App{Config: cfg, Log: log, closers: []io.Closer{logFile}}

	archive, err := sessionoutadapter.NewSQLiteArchiveStore(cfg.DBPath)
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("new archive store: %w", err)
	}
	app.closers = append([]io.Closer{archive}, app.closers...)

	ids := id.UUID{}
	d := cfg.Defaults
	params := meter.NewParameters(d.OnsitePeople, d.RemotePeople, d.RoomAreaM2, d.CeilingHeightM, d.HourlyCostPerPerson, d.Currency, d.O2ConsumptionLpm)

	sessionUC := sessionusecase.NewInteractor(
		sessionservice.NewMeetingService(clock.MonotonicClock{}, ids, log, params),
		sessionservice.NewRecordService(clock.SystemClock{}, ids, log, sessionoutadapter.NewMarkdownReportStore(cfg.ReportDir), archive),
		clock.SystemClock{},
	)

	app.SessionCLI = sessioninadapter.NewCLIHandler(sessionUC)
	app.SessionTUI = sessioninadapter.NewTUIHandler(sessionUC)
	log.Debug("app wired", "state_dir", cfg.StateDir, "db", cfg.DBPath, "reports", cfg.ReportDir)
	return app, nil
}

// Close releases the archive database and the log file.
func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if c == nil {
			continue
		}
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}

// RunTUI blocks until the user quits. A non-empty statusAddr also serves the
// live snapshot over HTTP for the lifetime of the UI.
func RunTUI(app *App, statusAddr string) error {
	var publisher uiapp.Publisher
	if statusAddr != "" {
		board := sessioninadapter.NewStatusBoard()
		server := sessioninadapter.NewStatusServer(statusAddr, board, app.Log)
		if err := server.Start(); err != nil {
			return err
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				app.Log.Warn("status endpoint shutdown", "error", err)
			}
		}()
		publisher = board
	}

	model := uiapp.NewModel(app.SessionTUI, publisher, app.Config.TickInterval)
	program := tea.NewProgram(model, tea.WithAltScreen())
	app.Log.Info("tui started", "tick", app.Config.TickInterval, "status_addr", statusAddr)
	_, err := program.Run()
	app.Log.Info("tui stopped")
	return err
}
