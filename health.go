package railsim

import (
	"net/http"
	"time"

	"github.com/theoremus-urban-solutions/railnet-sim/utils"
)

type healthResponse struct {
	Status        string `json:"status"`
	RunID         string `json:"runId"`
	Tick          uint64 `json:"tick"`
	TickAt        string `json:"tickAt"`
	Paused        bool   `json:"paused"`
	Routes        int    `json:"routes"`
	Trains        int    `json:"trains"`
	UptimeSeconds int64  `json:"uptimeSeconds"`
}

func (a *App) health() healthResponse {
	s := a.runner.Snapshot()
	return healthResponse{
		Status:        "ok",
		RunID:         a.runID,
		Tick:          s.Tick,
		TickAt:        utils.Iso8601(s.At),
		Paused:        a.runner.Paused(),
		Routes:        len(a.reg.Routes()),
		Trains:        len(s.Trains),
		UptimeSeconds: int64(time.Since(a.started).Seconds()),
	}
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.health())
}
