package bootstrap

import (
	"context"
	"fmt"
	"math/rand"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hashicorp/go-hclog"
	"golang.org/x/time/rate"

	analysisinadapter "senscal/internal/modules/analysis/adapter/in"
	analysisoutadapter "senscal/internal/modules/analysis/adapter/out"
	analysisservice "senscal/internal/modules/analysis/service"
	analysisusecase "senscal/internal/modules/analysis/usecase"
	driverinadapter "senscal/internal/modules/driver/adapter/in"
	driveroutadapter "senscal/internal/modules/driver/adapter/out"
	driverdomain "senscal/internal/modules/driver/domain"
	driverservice "senscal/internal/modules/driver/service"
	driverusecase "senscal/internal/modules/driver/usecase"
	planinadapter "senscal/internal/modules/plan/adapter/in"
	planoutadapter "senscal/internal/modules/plan/adapter/out"
	planservice "senscal/internal/modules/plan/service"
	planusecase "senscal/internal/modules/plan/usecase"
	regioninadapter "senscal/internal/modules/region/adapter/in"
	regionoutadapter "senscal/internal/modules/region/adapter/out"
	regionservice "senscal/internal/modules/region/service"
	regionusecase "senscal/internal/modules/region/usecase"
	sessioninadapter "senscal/internal/modules/session/adapter/in"
	sessionoutadapter "senscal/internal/modules/session/adapter/out"
	sessiondomain "senscal/internal/modules/session/domain"
	sessionout "senscal/internal/modules/session/port/out"
	sessionservice "senscal/internal/modules/session/service"
	sessionusecase "senscal/internal/modules/session/usecase"
	"senscal/internal/platform/clock"
	"senscal/internal/platform/config"
	"senscal/internal/platform/id"
	"senscal/internal/platform/logging"
	uiapp "senscal/internal/ui/app"
)

type App struct {
	RegionCLI   regioninadapter.CLIHandler
	PlanCLI     planinadapter.CLIHandler
	SessionCLI  sessioninadapter.CLIHandler
	SessionTUI  sessioninadapter.TUIHandler
	DriverCLI   driverinadapter.CLIHandler
	AnalysisCLI analysisinadapter.CLIHandler

	Log hclog.Logger

	decisions *sessionoutadapter.DecisionBox
}

func New(cfg config.Config) (*App, error) {
	clk := clock.SystemClock{}
	ids := id.TaggedHex{Tag: "run"}
	log := logging.New(cfg.WorkspacePath)

	regionUC := regionusecase.NewInteractor(
		regionservice.NewRegionService(regionoutadapter.NewFileRegionStore(cfg.WorkspacePath)))

	planUC := planusecase.NewInteractor(
		planservice.NewPlanService(clk, nil, planoutadapter.NewFilePlanStore(cfg.WorkspacePath)),
		regionUC,
	)

	driverSvc := driverservice.NewDriverService(
		driveroutadapter.NewFileManifestStore(cfg.WorkspacePath),
		driveroutadapter.NewGRPCHost(),
	)
	driverUC := driverusecase.NewInteractor(driverSvc)

	source, err := buildSampleSource(cfg, driverSvc)
	if err != nil {
		return nil, err
	}

	var publisher sessionout.FramePublisher
	if cfg.MQTTBroker != "" {
		mqttPublisher, err := sessionoutadapter.NewMQTTFramePublisher(cfg.MQTTBroker, "senscal", cfg.MQTTTopic)
		if err != nil {
			return nil, fmt.Errorf("mqtt publisher: %w", err)
		}
		publisher = mqttPublisher
	}

	runStore := sessionoutadapter.NewFileRunStore(cfg.WorkspacePath)

	resultsIndex, err := analysisoutadapter.NewSQLiteResultsIndex(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("results index: %w", err)
	}
	analysisUC := analysisusecase.NewInteractor(analysisservice.NewAnalysisService(
		clk,
		analysisoutadapter.NewSessionRunSource(runStore),
		resultsIndex,
		analysisoutadapter.NewFileReportWriter(cfg.WorkspacePath),
	))

	decisions := sessionoutadapter.NewDecisionBox()
	sessionSvc := sessionservice.NewSessionService(sessionservice.Deps{
		Clock:     clk,
		IDGen:     ids,
		Log:       log.Named("session"),
		Timer:     sessionoutadapter.NewStateGuideTimer(),
		Window:    sessionoutadapter.NewStateGuideWindow(),
		Confirm:   decisions,
		Source:    source,
		Publisher: publisher,
		Store:     runStore,
		Projector: analysisoutadapter.NewRunProjectionBridge(analysisUC),
	})
	sessionUC := sessionusecase.NewInteractor(
		sessionSvc,
		planUC,
		runStore,
		rate.NewLimiter(rate.Every(cfg.FrameInterval), 1),
	)

	return &App{
		RegionCLI:   regioninadapter.NewCLIHandler(regionUC),
		PlanCLI:     planinadapter.NewCLIHandler(planUC),
		SessionCLI:  sessioninadapter.NewCLIHandler(sessionUC),
		SessionTUI:  sessioninadapter.NewTUIHandler(sessionUC),
		DriverCLI:   driverinadapter.NewCLIHandler(driverUC),
		AnalysisCLI: analysisinadapter.NewCLIHandler(analysisUC),
		Log:         log,
		decisions:   decisions,
	}, nil
}

// buildSampleSource picks the configured sensor: the builtin simulator by
// default, an external verified driver binary otherwise.
func buildSampleSource(cfg config.Config, drivers *driverservice.DriverService) (sessionout.SampleSource, error) {
	name := cfg.Driver
	if name == "" || name == driverdomain.BuiltinSimulator {
		return driveroutadapter.NewSimSampleSource(rand.New(rand.NewSource(rand.Int63()))), nil
	}
	manifest, err := drivers.Runnable(context.Background(), name)
	if err != nil {
		return nil, fmt.Errorf("resolve driver %s: %w", name, err)
	}
	return driveroutadapter.NewPluginSampleSource(driveroutadapter.NewGRPCHost(), manifest), nil
}

func RunTUI(workspacePath string, app *App) error {
	setDecision := func(stop bool) {
		if stop {
			app.decisions.Set(sessiondomain.DecisionStop)
		} else {
			app.decisions.Set(sessiondomain.DecisionResume)
		}
	}
	model := uiapp.NewModel(
		workspacePath,
		app.SessionTUI,
		setDecision,
		app.PlanCLI,
		app.RegionCLI,
		app.AnalysisCLI,
	)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
