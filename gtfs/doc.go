/*
Package gtfs builds a rail network from a GTFS static feed.

Only the four files that describe where trains go are read: routes.txt,
stops.txt, trips.txt and stop_times.txt. Calendars, fares and shapes are
ignored.

# Basic Usage

	reg, err := gtfs.ImportFile("feed.zip", gtfs.ImportOptions{SeedTrains: true})
	if err != nil {
	    log.Fatal(err)
	}

Sources starting with http:// or https:// are downloaded first:

	reg, err := gtfs.Import(ctx, "https://example.org/gtfs.zip", opts)

# Mapping

  - One network route per GTFS route. Its stations are the stop sequence
    of the route's trip with the most stops.
  - route_type 2 (rail) becomes an intercity route, anything else suburban.
  - A stop served by two or more routes becomes a junction with
    ImportOptions.JunctionRadius (500 m when zero).

Parse the feed once at startup. The resulting Document can be written out
with SaveDocument and loaded on later runs with network.LoadFile.
*/
package gtfs
