/*
Package network holds the static railway network: routes with their ordered
stations, junction nodes used as congestion anchors, and the initial train
fleet.

A Registry is loaded once at startup and is read-only afterwards. It is
safe for concurrent reads.

# Loading

From the embedded default network:

	reg, err := network.Default()

From a YAML document:

	f, _ := os.Open("network.yml")
	defer f.Close()
	reg, err := network.LoadYAML(f)

# Document format

	routes:
	  - id: mumbai_pune
	    name: Mumbai → Pune Express
	    color: "#dc2626"
	    type: intercity
	    stations:
	      - {code: MMCT, name: Mumbai Central, lat: 19.0760, lng: 72.8777}
	      - {code: PUNE, name: Pune, lat: 18.6298, lng: 73.7997}
	junctions:
	  - {stationCode: MMCT, name: Mumbai Central Junction, lat: 19.0760, lng: 72.8777, routes: [mumbai_pune], congestionRadius: 500}
	trains:
	  - {id: TRAIN_12124, name: Deccan Queen, routeId: mumbai_pune, currentStationIndex: 0, progressToNext: 0.3, status: delayed, speed: 85, delay: 5, direction: 1}

Routes need at least two stations. Trains must reference a known route and
a station index inside it.
*/
package network
