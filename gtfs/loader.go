package gtfs

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"
)

// feedFiles are read in this order; stop_times refers to trips and stops.
var feedFiles = []string{"routes.txt", "stops.txt", "trips.txt", "stop_times.txt"}

// maxDownloadBytes caps a downloaded feed.
const maxDownloadBytes = 256 << 20

// NewIndexFromBytes parses a GTFS zip held in memory.
func NewIndexFromBytes(data []byte) (*Index, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open gtfs zip: %w", err)
	}
	return load(zr.File)
}

// LoadFile parses a GTFS zip on disk.
func LoadFile(filename string) (*Index, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("open gtfs zip: %w", err)
	}
	defer func() { _ = zr.Close() }()
	return load(zr.File)
}

// Fetch downloads a GTFS zip and parses it.
func Fetch(ctx context.Context, url string) (*Index, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download gtfs: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download gtfs: status %d", resp.StatusCode)
	}
	data, err := readCapped(resp.Body, maxDownloadBytes)
	if err != nil {
		return nil, fmt.Errorf("download gtfs: %w", err)
	}
	return NewIndexFromBytes(data)
}

// ErrFeedTooLarge is returned for downloads over the size cap.
var ErrFeedTooLarge = errors.New("feed exceeds size limit")

// readCapped reads at most limit bytes and fails instead of truncating.
func readCapped(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w of %d MB", ErrFeedTooLarge, limit>>20)
	}
	return data, nil
}

func load(files []*zip.File) (*Index, error) {
	byName := map[string]*zip.File{}
	for _, f := range files {
		byName[strings.ToLower(path.Base(f.Name))] = f
	}
	ix := newIndex()
	for _, name := range feedFiles {
		f, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("gtfs feed has no %s", name)
		}
		if err := ix.consumeCSV(name, f); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}
	return ix, nil
}

func (ix *Index) consumeCSV(name string, f *zip.File) error {
	r, err := f.Open()
	if err != nil {
		return err
	}
	defer func() { _ = r.Close() }()
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1
	rec, err := csvr.ReadAll()
	if err != nil {
		return err
	}
	if len(rec) == 0 {
		return nil
	}
	head := rec[0]
	head[0] = strings.TrimPrefix(head[0], "\ufeff")
	idx := func(col string) int {
		for i, h := range head {
			if strings.EqualFold(strings.TrimSpace(h), col) {
				return i
			}
		}
		return -1
	}
	cell := func(row []string, i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	switch name {
	case "routes.txt":
		rID := idx("route_id")
		if rID < 0 {
			return errors.New("missing route_id column")
		}
		rSN := idx("route_short_name")
		rLN := idx("route_long_name")
		rType := idx("route_type")
		rColor := idx("route_color")
		for _, row := range rec[1:] {
			id := cell(row, rID)
			if id == "" {
				continue
			}
			rt := feedRoute{
				shortName: cell(row, rSN),
				longName:  cell(row, rLN),
				color:     cell(row, rColor),
			}
			rt.routeType, _ = strconv.Atoi(cell(row, rType))
			if _, dup := ix.routes[id]; !dup {
				ix.routeOrder = append(ix.routeOrder, id)
			}
			ix.routes[id] = rt
		}
	case "stops.txt":
		sID := idx("stop_id")
		sN := idx("stop_name")
		sLat := idx("stop_lat")
		sLon := idx("stop_lon")
		if sID < 0 || sLat < 0 || sLon < 0 {
			return errors.New("missing stop_id, stop_lat or stop_lon column")
		}
		for _, row := range rec[1:] {
			lat, err1 := strconv.ParseFloat(cell(row, sLat), 64)
			lon, err2 := strconv.ParseFloat(cell(row, sLon), 64)
			if err1 != nil || err2 != nil {
				// stations without coordinates cannot be placed
				continue
			}
			ix.stops[cell(row, sID)] = feedStop{name: cell(row, sN), lat: lat, lon: lon}
		}
	case "trips.txt":
		rID := idx("route_id")
		tID := idx("trip_id")
		if rID < 0 || tID < 0 {
			return errors.New("missing route_id or trip_id column")
		}
		for _, row := range rec[1:] {
			trip := cell(row, tID)
			if _, dup := ix.tripToRoute[trip]; !dup {
				ix.tripOrder = append(ix.tripOrder, trip)
			}
			ix.tripToRoute[trip] = cell(row, rID)
		}
	case "stop_times.txt":
		tID := idx("trip_id")
		sID := idx("stop_id")
		sq := idx("stop_sequence")
		if tID < 0 || sID < 0 || sq < 0 {
			return errors.New("missing trip_id, stop_id or stop_sequence column")
		}
		type stopTime struct {
			stop string
			seq  int
		}
		tmp := map[string][]stopTime{}
		for _, row := range rec[1:] {
			seq, err := strconv.Atoi(cell(row, sq))
			if err != nil {
				return fmt.Errorf("trip %s: bad stop_sequence %q", cell(row, tID), cell(row, sq))
			}
			trip := cell(row, tID)
			tmp[trip] = append(tmp[trip], stopTime{stop: cell(row, sID), seq: seq})
		}
		for trip, arr := range tmp {
			sort.SliceStable(arr, func(i, j int) bool { return arr[i].seq < arr[j].seq })
			seqStops := make([]string, len(arr))
			for i, v := range arr {
				seqStops[i] = v.stop
			}
			ix.tripStopSeq[trip] = seqStops
		}
	}
	return nil
}
