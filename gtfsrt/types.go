package gtfsrt

// Vehicle is a flattened GTFS-RT VehiclePosition
type Vehicle struct {
	TripID       string
	RouteID      string
	VehicleID    string
	Label        string
	Lat          float64
	Lon          float64
	SpeedMS      float64
	StopID       string
	StopSequence uint32
	Status       string
	Congestion   string
	Timestamp    int64
}

// RTAlert is a simplified representation of a GTFS-RT Alert
type RTAlert struct {
	ID          string
	Header      string
	Description string
	Cause       string
	Effect      string
	RouteIDs    []string
	StopIDs     []string
	TripIDs     []string
}
