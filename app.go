package railsim

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/r3labs/sse/v2"
	log "github.com/sirupsen/logrus"

	"github.com/theoremus-urban-solutions/railnet-sim/config"
	"github.com/theoremus-urban-solutions/railnet-sim/formatter"
	"github.com/theoremus-urban-solutions/railnet-sim/gtfs"
	"github.com/theoremus-urban-solutions/railnet-sim/gtfsrt"
	"github.com/theoremus-urban-solutions/railnet-sim/network"
	"github.com/theoremus-urban-solutions/railnet-sim/tracking"
)

// tickStream is the SSE stream id carrying one event per committed tick.
const tickStream = "ticks"

// App wires a network, its simulation runner and the HTTP surface.
type App struct {
	cfg     config.AppConfig
	reg     *network.Registry
	runner  *tracking.Runner
	cache   *ResponseCache
	events  *sse.Server
	builder *formatter.ResponseBuilder
	runID   string
	started time.Time
}

// NewApp seeds the simulation from the registry's fleet. Nothing runs
// until Run is called.
func NewApp(cfg config.AppConfig, reg *network.Registry) *App {
	now := time.Now()
	runner := tracking.NewRunner(reg, tracking.NewState(reg.Fleet(), reg, now), tracking.RunnerOptions{
		TickInterval: cfg.Simulation.TickInterval(),
		StartPaused:  cfg.Simulation.StartPaused,
	})
	events := sse.New()
	events.AutoReplay = false
	events.CreateStream(tickStream)
	return &App{
		cfg:     cfg,
		reg:     reg,
		runner:  runner,
		cache:   NewResponseCache(cfg.Simulation.CacheTTL()),
		events:  events,
		builder: formatter.NewResponseBuilder(),
		runID:   uuid.NewString(),
		started: now,
	}
}

// LoadNetwork resolves the configured network source: a network YAML file,
// a GTFS zip or URL, or the built-in network.
func LoadNetwork(ctx context.Context, nc config.NetworkConfig) (*network.Registry, error) {
	switch {
	case nc.Path != "":
		log.WithField("path", nc.Path).Info("loading network file")
		return network.LoadFile(nc.Path)
	case nc.GTFSPath != "":
		log.WithField("source", nc.GTFSPath).Info("importing gtfs network")
		return gtfs.Import(ctx, nc.GTFSPath, gtfs.ImportOptions{JunctionRadius: nc.JunctionRadius, SeedTrains: true})
	}
	log.Info("using built-in network")
	return network.Default()
}

func (a *App) Runner() *tracking.Runner { return a.runner }

func (a *App) Registry() *network.Registry { return a.reg }

// Run ticks the simulation, streams ticks and serves HTTP until ctx is done.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() { _ = a.runner.Run(ctx) }()
	go a.forward(ctx)
	return a.Serve(ctx)
}

// TickEvent is the payload of one SSE tick event
type TickEvent struct {
	Tick   uint64               `json:"tick"`
	At     time.Time            `json:"at"`
	Trains []tracking.TrainView `json:"trains"`
	Alerts []tracking.Alert     `json:"alerts"`
}

func (a *App) tickEvent(s *tracking.State) TickEvent {
	return TickEvent{
		Tick:   s.Tick,
		At:     s.At,
		Trains: tracking.Views(s.Trains, a.reg),
		Alerts: tracking.Alerts(s, a.reg),
	}
}

// forward publishes every committed tick on the SSE stream.
func (a *App) forward(ctx context.Context) {
	ch, cancel := a.runner.Subscribe(8)
	defer cancel()
	for {
		select {
		case <-ctx.Done():
			return
		case s, ok := <-ch:
			if !ok {
				return
			}
			data, err := json.Marshal(a.tickEvent(s))
			if err != nil {
				log.WithError(err).Warn("marshal tick event")
				continue
			}
			a.events.TryPublish(tickStream, &sse.Event{Data: data})
		}
	}
}

func (a *App) feedOptions() gtfsrt.FeedOptions {
	return gtfsrt.FeedOptions{AgencyID: a.cfg.Simulation.AgencyID}
}
