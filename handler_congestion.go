package railsim

import (
	"net/http"
	"strconv"

	"github.com/theoremus-urban-solutions/railnet-sim/formatter"
	"github.com/theoremus-urban-solutions/railnet-sim/tracking"
)

func (a *App) delivery(s *tracking.State) formatter.Delivery {
	return formatter.BuildDelivery(s, a.runner.Interval(), a.cfg.Simulation.AgencyID)
}

func (a *App) handleCongestion(w http.ResponseWriter, r *http.Request) {
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
	key := memoKey("congestion", format, strconv.FormatUint(s.Tick, 10), routesKey(routes))
	buf, err := a.cache.GetOrBuild(key, func() ([]byte, error) {
		d := formatter.WrapCongestion(a.delivery(s), s, a.reg.Junctions(), routes)
		if format == formatXML {
			return a.builder.BuildCongestionXML(d), nil
		}
		return a.builder.BuildJSON(d)
	})
	if err != nil {
		writeError(w, format, http.StatusInternalServerError, err.Error())
		return
	}
	writeBody(w, format, buf)
}

type alertsResponse struct {
	formatter.Delivery
	Alerts []tracking.Alert `json:"alerts"`
}

func (a *App) handleAlerts(w http.ResponseWriter, r *http.Request) {
	s := a.runner.Snapshot()
	writeJSON(w, http.StatusOK, alertsResponse{Delivery: a.delivery(s), Alerts: tracking.Alerts(s, a.reg)})
}

type routeStatusResponse struct {
	formatter.Delivery
	Routes []tracking.RouteStatus `json:"routes"`
}

func (a *App) handleRouteStatus(w http.ResponseWriter, r *http.Request) {
	s := a.runner.Snapshot()
	writeJSON(w, http.StatusOK, routeStatusResponse{Delivery: a.delivery(s), Routes: tracking.RouteStatuses(s.Trains, a.reg.Routes())})
}
