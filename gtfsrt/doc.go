// Package gtfsrt encodes simulation snapshots as GTFS-Realtime feeds and
// reads such feeds back.
//
// A feed built by BuildFeed carries, for the same tick:
//   - Vehicle Positions: one entity per train that can be placed on the map
//   - Trip Updates: the train's delay in seconds
//   - Service Alerts: junctions with medium or high congestion
//
// ParseFeed indexes any GTFS-RT FeedMessage by trip id.
package gtfsrt
