// Package overpass talks to an Overpass API endpoint: it builds the
// charging-station query, dispatches it over HTTP, and parses the JSON
// response into typed elements.
package overpass

// ElementType discriminates the kind of an Overpass element. Every
// element carries exactly one of these values.
type ElementType string

// Element types returned by the Overpass API. Area matches are
// materialized as ways in meta output, so all four appear in practice.
const (
	ElementTypeNode     ElementType = "node"
	ElementTypeWay      ElementType = "way"
	ElementTypeArea     ElementType = "area"
	ElementTypeRelation ElementType = "relation"
)

// Element is a single feature in an Overpass response. Lat/Lon are
// present for nodes and typically absent for areas and relations;
// Changeset, User, and UID are optional edit metadata.
type Element struct {
	Type      ElementType       `json:"type"`
	ID        uint64            `json:"id"`
	Lat       *float64          `json:"lat"`
	Lon       *float64          `json:"lon"`
	Timestamp string            `json:"timestamp"`
	Version   uint32            `json:"version"`
	Changeset *uint64           `json:"changeset"`
	User      *string           `json:"user"`
	UID       *uint64           `json:"uid"`
	Tags      map[string]string `json:"tags"`
}

// Response is the fixed top-level shape of an Overpass JSON response.
// Version and Generator are accepted but unused downstream.
type Response struct {
	Version   float64   `json:"version"`
	Generator string    `json:"generator"`
	Elements  []Element `json:"elements"`
}
