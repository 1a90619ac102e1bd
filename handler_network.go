package railsim

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (a *App) handleRoutes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.reg.Routes())
}

func (a *App) handleRoutesGeoJSON(w http.ResponseWriter, r *http.Request) {
	buf, err := a.cache.GetOrBuild(memoKey("geojson"), func() ([]byte, error) {
		return json.Marshal(a.reg.GeoJSON())
	})
	if err != nil {
		writeError(w, formatJSON, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	_, _ = w.Write(buf)
}

type routeCoordinates struct {
	RouteID     string       `json:"routeId"`
	Coordinates [][2]float64 `json:"coordinates"`
}

func (a *App) handleRouteCoordinates(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "routeID")
	if _, ok := a.reg.Route(id); !ok {
		writeError(w, formatJSON, http.StatusNotFound, "No such route: "+id)
		return
	}
	writeJSON(w, http.StatusOK, routeCoordinates{RouteID: id, Coordinates: a.reg.RouteCoordinates(id)})
}

func (a *App) handleJunctions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.reg.Junctions())
}
