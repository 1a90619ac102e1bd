package gtfs

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/theoremus-urban-solutions/railnet-sim/network"
)

// EncodeDocument writes an imported network as network YAML so later runs
// can skip parsing the feed.
func EncodeDocument(doc network.Document, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode network: %w", err)
	}
	return enc.Close()
}

// SaveDocument writes an imported network to a YAML file.
//
// Example:
//
//	ix, _ := gtfs.LoadFile("feed.zip")
//	doc, _ := ix.Document(gtfs.ImportOptions{SeedTrains: true})
//	if err := gtfs.SaveDocument(doc, "network.yml"); err != nil {
//	    // handle error
//	}
//	reg, _ := network.LoadFile("network.yml")
func SaveDocument(doc network.Document, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create network file: %w", err)
	}
	if err := EncodeDocument(doc, f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
