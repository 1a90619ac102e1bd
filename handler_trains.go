package railsim

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/theoremus-urban-solutions/railnet-sim/formatter"
	"github.com/theoremus-urban-solutions/railnet-sim/network"
	"github.com/theoremus-urban-solutions/railnet-sim/tracking"
)

func (a *App) handleTrains(w http.ResponseWriter, r *http.Request) {
	format, err := parseFormat(r)
	if err != nil {
		writeError(w, formatJSON, http.StatusBadRequest, err.Error())
		return
	}
	routes, err := a.parseRoutes(r)
	if err != nil {
		writeError(w, format, http.StatusBadRequest, err.Error())
		return
	}
	s := a.runner.Snapshot()
	key := memoKey("trains", format, strconv.FormatUint(s.Tick, 10), routesKey(routes))
	buf, err := a.cache.GetOrBuild(key, func() ([]byte, error) {
		d := formatter.WrapTrains(a.delivery(s), s, a.reg, routes)
		if format == formatXML {
			return a.builder.BuildTrainsXML(d), nil
		}
		return a.builder.BuildJSON(d)
	})
	if err != nil {
		writeError(w, format, http.StatusInternalServerError, err.Error())
		return
	}
	writeBody(w, format, buf)
}

type trainDetail struct {
	tracking.TrainView
	Tick uint64 `json:"tick"`
}

func (a *App) handleTrain(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "trainID")
	s := a.runner.Snapshot()
	t, ok := s.Train(id)
	if !ok {
		writeError(w, formatJSON, http.StatusNotFound, "No such train: "+id)
		return
	}
	writeJSON(w, http.StatusOK, trainDetail{TrainView: tracking.Views([]network.Train{t}, a.reg)[0], Tick: s.Tick})
}

func (a *App) handleJourney(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "trainID")
	s := a.runner.Snapshot()
	t, ok := s.Train(id)
	if !ok {
		writeError(w, formatJSON, http.StatusNotFound, "No such train: "+id)
		return
	}
	route, _ := a.reg.Route(t.RouteID)
	j, ok := tracking.JourneyDetails(t, route, a.cfg.Simulation.ServiceStartOn(s.At))
	if !ok {
		writeError(w, formatJSON, http.StatusNotFound, "No journey for train: "+id)
		return
	}
	writeJSON(w, http.StatusOK, j)
}
