// Package formatter provides response wrapping and serialization for
// simulation snapshots.
//
// This package is organized into:
// - wrapper.go: delivery envelopes and route filtering
// - json.go: JSON serialization
// - xml.go: XML serialization with proper escaping
//
// XML is written by hand for precise control over element order.
package formatter
