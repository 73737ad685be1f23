package overpass

import "fmt"

// ChargingStationQuery builds the Overpass QL query that fetches every
// node, area, and relation tagged amenity=charging_station worldwide.
//
// The timeout directive is the server-side query budget in seconds and is
// independent of the HTTP client timeout (see Client). `out meta qt`
// requests full edit metadata (timestamp, version, changeset, user) in
// quadtile order.
func ChargingStationQuery(timeoutSecs int) string {
	return fmt.Sprintf(
		"[out:json][timeout:%d];"+
			"(node[amenity=charging_station];area[amenity=charging_station];relation[amenity=charging_station];);"+
			"out meta qt;",
		timeoutSecs,
	)
}
