// Package snapshot projects Overpass elements into the persisted
// charging-station schema and writes the compressed snapshot artifact.
package snapshot

import (
	"time"

	"github.com/evatlas/chargesnap/internal/overpass"
)

// Station is the persisted projection of an Overpass element. Changeset
// and uid are deliberately not part of the schema; absent optionals are
// omitted from the JSON rather than serialized as null.
type Station struct {
	ID        uint64               `json:"id"`
	Lat       *float64             `json:"lat,omitempty"`
	Lon       *float64             `json:"lon,omitempty"`
	Timestamp string               `json:"timestamp"`
	Type      overpass.ElementType `json:"type"`
	Version   uint32               `json:"version"`
	User      *string              `json:"user,omitempty"`
	Tags      map[string]string    `json:"tags"`
}

// Snapshot is the envelope written once per run: a generation timestamp
// in epoch seconds, the record count, and the stations in source order.
// Count always equals len(Elements).
type Snapshot struct {
	Timestamp uint64    `json:"timestamp"`
	Count     int       `json:"count"`
	Elements  []Station `json:"elements"`
}

// Transformer builds snapshots. Now is the wall clock, injectable for
// tests.
type Transformer struct {
	Now func() time.Time
}

// NewTransformer returns a Transformer on the system clock.
func NewTransformer() *Transformer {
	return &Transformer{Now: time.Now}
}

// Build validates that elements is non-empty, projects each element to a
// Station, and wraps the result in a Snapshot. The clock is read once,
// after validation, so the envelope carries the true finish time. Fails
// with *EmptyDatasetError on empty input and *ClockError on a pre-epoch
// clock reading.
func (t *Transformer) Build(elements []overpass.Element) (*Snapshot, error) {
	if len(elements) == 0 {
		return nil, &EmptyDatasetError{}
	}

	stations := make([]Station, 0, len(elements))
	for _, el := range elements {
		stations = append(stations, Station{
			ID:        el.ID,
			Lat:       el.Lat,
			Lon:       el.Lon,
			Timestamp: el.Timestamp,
			Type:      el.Type,
			Version:   el.Version,
			User:      el.User,
			Tags:      el.Tags,
		})
	}

	now := t.Now().Unix()
	if now < 0 {
		return nil, &ClockError{Reading: now}
	}

	return &Snapshot{
		Timestamp: uint64(now),
		Count:     len(stations),
		Elements:  stations,
	}, nil
}
