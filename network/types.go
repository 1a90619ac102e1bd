package network

// RouteType classifies a route for display
type RouteType string

const (
	RouteIntercity RouteType = "intercity"
	RouteSuburban  RouteType = "suburban"
)

// Status is a train's operating status. It is informational only.
type Status string

const (
	StatusOnTime  Status = "on-time"
	StatusDelayed Status = "delayed"
	StatusStopped Status = "stopped"
)

// Direction of travel along a route's station list
type Direction int

const (
	Forward Direction = 1
	Reverse Direction = -1
)

// Station is a stop on a route
type Station struct {
	Code string  `json:"code" yaml:"code" validate:"required"`
	Name string  `json:"name" yaml:"name" validate:"required"`
	Lat  float64 `json:"lat" yaml:"lat" validate:"latitude"`
	Lng  float64 `json:"lng" yaml:"lng" validate:"longitude"`
}

// Route is an ordered station sequence
type Route struct {
	ID       string    `json:"id" yaml:"id" validate:"required"`
	Name     string    `json:"name" yaml:"name" validate:"required"`
	Color    string    `json:"color" yaml:"color" validate:"omitempty,hexcolor"`
	Type     RouteType `json:"type" yaml:"type" validate:"oneof=intercity suburban"`
	Stations []Station `json:"stations" yaml:"stations" validate:"min=2,dive"`
}

// Station returns the station at index i, or false when out of range.
func (r *Route) Station(i int) (Station, bool) {
	if r == nil || i < 0 || i >= len(r.Stations) {
		return Station{}, false
	}
	return r.Stations[i], true
}

// Train is the mutable per-tick state of one train.
// Speed is cosmetic: movement uses a fixed progress step.
type Train struct {
	ID                  string    `json:"id" yaml:"id" validate:"required"`
	Name                string    `json:"name" yaml:"name"`
	RouteID             string    `json:"routeId" yaml:"routeId" validate:"required"`
	CurrentStationIndex int       `json:"currentStationIndex" yaml:"currentStationIndex" validate:"gte=0"`
	ProgressToNext      float64   `json:"progressToNext" yaml:"progressToNext" validate:"gte=0,lt=1"`
	Status              Status    `json:"status" yaml:"status" validate:"oneof=on-time delayed stopped"`
	Speed               float64   `json:"speed" yaml:"speed" validate:"gte=0"`
	Delay               float64   `json:"delay" yaml:"delay" validate:"gte=0"`
	Direction           Direction `json:"direction" yaml:"direction" validate:"oneof=1 -1"`
}

// JunctionNode is a fixed point where routes meet, used to measure congestion.
type JunctionNode struct {
	StationCode      string   `json:"stationCode" yaml:"stationCode" validate:"required"`
	Name             string   `json:"name" yaml:"name" validate:"required"`
	Lat              float64  `json:"lat" yaml:"lat" validate:"latitude"`
	Lng              float64  `json:"lng" yaml:"lng" validate:"longitude"`
	Routes           []string `json:"routes" yaml:"routes"`
	CongestionRadius float64  `json:"congestionRadius" yaml:"congestionRadius" validate:"gt=0"`
}

// Document is the on-disk network description
type Document struct {
	Routes    []Route        `yaml:"routes" validate:"min=1,dive"`
	Junctions []JunctionNode `yaml:"junctions" validate:"dive"`
	Trains    []Train        `yaml:"trains" validate:"dive"`
}
