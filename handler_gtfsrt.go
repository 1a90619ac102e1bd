package railsim

import (
	"net/http"
	"strconv"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"

	"github.com/theoremus-urban-solutions/railnet-sim/gtfsrt"
)

// handleVehiclePositions serves the current tick as a GTFS-RT feed.
// debug=1 returns protojson instead of protobuf.
func (a *App) handleVehiclePositions(w http.ResponseWriter, r *http.Request) {
	debug := r.URL.Query().Get("debug") == "1"
	s := a.runner.Snapshot()
	key := memoKey("gtfsrt", strconv.FormatBool(debug), strconv.FormatUint(s.Tick, 10))
	buf, err := a.cache.GetOrBuild(key, func() ([]byte, error) {
		fm := gtfsrt.BuildFeed(s, a.reg, a.feedOptions())
		if debug {
			return protojson.MarshalOptions{Multiline: true, UseProtoNames: true}.Marshal(fm)
		}
		return proto.Marshal(fm)
	})
	if err != nil {
		writeError(w, formatJSON, http.StatusInternalServerError, err.Error())
		return
	}
	if debug {
		w.Header().Set("Content-Type", "application/json")
	} else {
		w.Header().Set("Content-Type", "application/x-protobuf")
	}
	_, _ = w.Write(buf)
}
