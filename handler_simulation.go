package railsim

import (
	"net/http"
)

type simulationStatus struct {
	Tick   uint64 `json:"tick"`
	Paused bool   `json:"paused"`
}

func (a *App) simulationStatus() simulationStatus {
	return simulationStatus{Tick: a.runner.Snapshot().Tick, Paused: a.runner.Paused()}
}

func (a *App) handlePause(w http.ResponseWriter, r *http.Request) {
	a.runner.Pause()
	writeJSON(w, http.StatusOK, a.simulationStatus())
}

func (a *App) handleResume(w http.ResponseWriter, r *http.Request) {
	a.runner.Resume()
	writeJSON(w, http.StatusOK, a.simulationStatus())
}

// handleStep advances exactly one tick, paused or not.
func (a *App) handleStep(w http.ResponseWriter, r *http.Request) {
	s := a.runner.Step()
	writeJSON(w, http.StatusOK, simulationStatus{Tick: s.Tick, Paused: a.runner.Paused()})
}
