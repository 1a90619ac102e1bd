package formatter

import (
	"strconv"
	"strings"

	"github.com/theoremus-urban-solutions/railnet-sim/network"
)

// BuildCongestionXML serializes a congestion delivery to XML
func (rb *ResponseBuilder) BuildCongestionXML(d CongestionDelivery) []byte {
	var b strings.Builder
	b.WriteString("<CongestionDelivery>")
	writeDeliveryXML(&b, d.Delivery)
	for _, j := range d.Junctions {
		b.WriteString("<Junction>")
		writeElement(&b, "StationCode", j.StationCode)
		writeElement(&b, "StationName", j.StationName)
		writeElement(&b, "Level", string(j.Level))
		writeElement(&b, "TrainCount", strconv.Itoa(j.TrainCount))
		if len(j.Trains) > 0 {
			b.WriteString("<Trains>")
			for _, t := range j.Trains {
				writeTrainXML(&b, t, nil)
			}
			b.WriteString("</Trains>")
		}
		b.WriteString("</Junction>")
	}
	b.WriteString("</CongestionDelivery>")
	return []byte(b.String())
}

// BuildTrainsXML serializes a trains delivery to XML
func (rb *ResponseBuilder) BuildTrainsXML(d TrainsDelivery) []byte {
	var b strings.Builder
	b.WriteString("<TrainsDelivery>")
	writeDeliveryXML(&b, d.Delivery)
	for _, tv := range d.Trains {
		var pos []float64
		if tv.Position != nil {
			pos = []float64{tv.Position.Lat, tv.Position.Lng}
		}
		writeTrainXML(&b, tv.Train, pos)
	}
	b.WriteString("</TrainsDelivery>")
	return []byte(b.String())
}

func writeDeliveryXML(b *strings.Builder, d Delivery) {
	writeElement(b, "ResponseTimestamp", d.ResponseTimestamp)
	writeElement(b, "ValidUntil", d.ValidUntil)
	writeElement(b, "ProducerRef", d.ProducerRef)
	writeElement(b, "Tick", strconv.FormatUint(d.Tick, 10))
}

// writeTrainXML writes one <Train>. pos is lat,lng or nil.
func writeTrainXML(b *strings.Builder, t network.Train, pos []float64) {
	b.WriteString("<Train id=\"")
	b.WriteString(xmlEscape(t.ID))
	b.WriteString("\">")
	writeElement(b, "Name", t.Name)
	writeElement(b, "RouteRef", t.RouteID)
	writeElement(b, "CurrentStationIndex", strconv.Itoa(t.CurrentStationIndex))
	writeElement(b, "ProgressToNext", formatFloat(t.ProgressToNext))
	writeElement(b, "Status", string(t.Status))
	writeElement(b, "Speed", formatFloat(t.Speed))
	writeElement(b, "Delay", formatFloat(t.Delay))
	writeElement(b, "Direction", strconv.Itoa(int(t.Direction)))
	if len(pos) == 2 {
		b.WriteString("<Position>")
		writeElement(b, "Latitude", formatFloat(pos[0]))
		writeElement(b, "Longitude", formatFloat(pos[1]))
		b.WriteString("</Position>")
	}
	b.WriteString("</Train>")
}

// writeElement skips empty values.
func writeElement(b *strings.Builder, name, value string) {
	if value == "" {
		return
	}
	b.WriteString("<")
	b.WriteString(name)
	b.WriteString(">")
	b.WriteString(xmlEscape(value))
	b.WriteString("</")
	b.WriteString(name)
	b.WriteString(">")
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func xmlEscape(s string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		"\"", "&quot;",
		"'", "&apos;",
	)
	return replacer.Replace(s)
}
