package overpass

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Parse decodes raw response bytes into a Response. Malformed JSON, a
// payload without an elements key, or an element missing a required
// field fails with *ParseError; an elements array that is present but
// empty parses fine — emptiness is validated by the transformer, not
// here.
func Parse(raw []byte) (*Response, error) {
	var resp Response
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, &ParseError{Err: err}
	}
	if resp.Elements == nil {
		return nil, &ParseError{Err: errors.New("missing elements field")}
	}
	for i := range resp.Elements {
		if err := resp.Elements[i].validate(); err != nil {
			return nil, &ParseError{Err: fmt.Errorf("element %d: %w", i, err)}
		}
	}
	return &resp, nil
}

// validate rejects elements that lack a field the schema requires on
// every element. Only lat/lon/changeset/user/uid are individually
// optional; OSM ids and edit versions start at 1, so zero means absent.
func (e *Element) validate() error {
	switch {
	case e.Type == "":
		return errors.New("missing type")
	case e.ID == 0:
		return errors.New("missing id")
	case e.Timestamp == "":
		return errors.New("missing timestamp")
	case e.Version == 0:
		return errors.New("missing version")
	case e.Tags == nil:
		return errors.New("missing tags")
	}
	return nil
}

// Remark probes raw response bytes for the top-level remark field the
// Overpass API attaches to rejected-but-well-formed responses. It is a
// best-effort diagnostic side channel and returns "" on any failure.
func Remark(raw []byte) string {
	var probe struct {
		Remark string `json:"remark"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return ""
	}
	return probe.Remark
}
