package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	lib "github.com/theoremus-urban-solutions/railnet-sim"
	"github.com/theoremus-urban-solutions/railnet-sim/config"
	"github.com/theoremus-urban-solutions/railnet-sim/formatter"
	"github.com/theoremus-urban-solutions/railnet-sim/gtfs"
	"github.com/theoremus-urban-solutions/railnet-sim/gtfsrt"
	"github.com/theoremus-urban-solutions/railnet-sim/internal"
	"github.com/theoremus-urban-solutions/railnet-sim/tracking"
)

func main() {
	mode := flag.String("mode", "serve", "serve|oneshot|inspect|convert")
	networkName := flag.String("network", "", "network name from config.networks[]")
	format := flag.String("format", "json", "json|xml (oneshot)")
	view := flag.String("view", "congestion", "congestion|trains|alerts (oneshot)")
	steps := flag.Int("steps", 0, "ticks to advance before printing (oneshot)")
	url := flag.String("url", "", "GTFS-RT feed URL to inspect, or GTFS source to convert")
	out := flag.String("out", "network.yml", "output file (convert)")
	flag.Parse()

	cfg := config.Default()
	if err := config.LoadAppConfig(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			panic(err)
		}
	} else {
		cfg = config.Config
	}
	internal.InitLogging(cfg.Logging.Level, cfg.Logging.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch *mode {
	case "serve":
		app := newApp(ctx, cfg, *networkName)
		if err := app.Run(ctx); err != nil {
			log.WithError(err).Fatal("server stopped")
		}
	case "oneshot":
		app := newApp(ctx, cfg, *networkName)
		for i := 0; i < *steps; i++ {
			app.Runner().Step()
		}
		body, err := oneshot(app, cfg, *view, *format)
		if err != nil {
			panic(err)
		}
		fmt.Println(string(body))
	case "inspect":
		if *url == "" {
			panic("inspect requires -url")
		}
		feed, err := gtfsrt.NewClient().FetchFeed(ctx, *url)
		if err != nil {
			panic(err)
		}
		printFeed(feed)
	case "convert":
		src, opts, err := convertSource(cfg, *networkName, *url)
		if err != nil {
			panic(err)
		}
		ix, err := gtfs.Open(ctx, src)
		if err != nil {
			panic(err)
		}
		doc, err := ix.Document(opts)
		if err != nil {
			panic(err)
		}
		if err := gtfs.SaveDocument(doc, *out); err != nil {
			panic(err)
		}
		log.WithFields(log.Fields{"routes": len(doc.Routes), "junctions": len(doc.Junctions), "out": *out}).Info("network written")
	default:
		panic("unknown mode: " + *mode)
	}
}

// convertSource picks the GTFS source and import options for convert mode.
// An explicit url wins over the selected network's gtfsPath; the junction
// radius always comes from the selected network.
func convertSource(cfg config.AppConfig, name, url string) (string, gtfs.ImportOptions, error) {
	nc := cfg.SelectNetwork(name)
	src := url
	if src == "" {
		src = nc.GTFSPath
	}
	if src == "" {
		return "", gtfs.ImportOptions{}, errors.New("convert requires -url or a network with gtfsPath")
	}
	return src, gtfs.ImportOptions{JunctionRadius: nc.JunctionRadius, SeedTrains: true}, nil
}

func newApp(ctx context.Context, cfg config.AppConfig, name string) *lib.App {
	reg, err := lib.LoadNetwork(ctx, cfg.SelectNetwork(name))
	if err != nil {
		panic(err)
	}
	return lib.NewApp(cfg, reg)
}

func oneshot(app *lib.App, cfg config.AppConfig, view, format string) ([]byte, error) {
	s := app.Runner().Snapshot()
	d := formatter.BuildDelivery(s, app.Runner().Interval(), cfg.Simulation.AgencyID)
	b := formatter.NewResponseBuilder()
	switch view {
	case "congestion":
		c := formatter.WrapCongestion(d, s, app.Registry().Junctions(), nil)
		if format == "xml" {
			return b.BuildCongestionXML(c), nil
		}
		return b.BuildJSON(c)
	case "trains":
		t := formatter.WrapTrains(d, s, app.Registry(), nil)
		if format == "xml" {
			return b.BuildTrainsXML(t), nil
		}
		return b.BuildJSON(t)
	case "alerts":
		return b.BuildJSON(tracking.Alerts(s, app.Registry()))
	}
	return nil, fmt.Errorf("unknown view: %s", view)
}

func printFeed(feed *gtfsrt.FeedIndex) {
	fmt.Printf("feed timestamp %d, %d trips, %d alerts\n", feed.Timestamp(), len(feed.Trips()), len(feed.Alerts()))
	for _, id := range feed.Trips() {
		v, ok := feed.Vehicle(id)
		if !ok {
			continue
		}
		delay, _ := feed.DelayForTrip(id)
		fmt.Printf("%-16s %-14s %9.5f,%10.5f  %-14s stop=%s seq=%d delay=%ds %s\n",
			id, v.RouteID, v.Lat, v.Lon, v.Status, v.StopID, v.StopSequence, delay, v.Congestion)
	}
	for _, a := range feed.Alerts() {
		fmt.Printf("alert %s: %s (stops %v)\n", a.ID, a.Header, a.StopIDs)
	}
}
