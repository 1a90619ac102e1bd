package network

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// GeoJSON returns the network overlay: one LineString per route and one
// Point per junction.
func (r *Registry) GeoJSON() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, rt := range r.routes {
		line := make(orb.LineString, len(rt.Stations))
		codes := make([]string, len(rt.Stations))
		for i, s := range rt.Stations {
			line[i] = orb.Point{s.Lng, s.Lat}
			codes[i] = s.Code
		}
		f := geojson.NewFeature(line)
		f.ID = rt.ID
		f.Properties["kind"] = "route"
		f.Properties["name"] = rt.Name
		f.Properties["color"] = rt.Color
		f.Properties["type"] = string(rt.Type)
		f.Properties["stations"] = codes
		fc.Append(f)
	}
	for _, j := range r.junctions {
		f := geojson.NewFeature(orb.Point{j.Lng, j.Lat})
		f.ID = j.StationCode
		f.Properties["kind"] = "junction"
		f.Properties["name"] = j.Name
		f.Properties["routes"] = j.Routes
		f.Properties["congestionRadius"] = j.CongestionRadius
		fc.Append(f)
	}
	return fc
}
