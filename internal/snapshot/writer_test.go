package snapshot

import (
	"compress/gzip"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evatlas/chargesnap/internal/overpass"
)

func testSnapshot() *Snapshot {
	return &Snapshot{
		Timestamp: 1700000000,
		Count:     1,
		Elements: []Station{
			{
				ID:        1,
				Lat:       ptr(47.0),
				Lon:       ptr(8.0),
				Timestamp: "2024-01-01T00:00:00Z",
				Type:      overpass.ElementTypeNode,
				Version:   3,
				Tags:      map[string]string{"amenity": "charging_station"},
			},
		},
	}
}

func TestWriteCompressed(t *testing.T) {
	snap := testSnapshot()
	path := filepath.Join(t.TempDir(), "stations.json.gz")

	n, err := WriteCompressed(path, snap)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, info.Size(), n)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	gz, err := gzip.NewReader(f)
	require.NoError(t, err)
	plain, err := io.ReadAll(gz)
	require.NoError(t, err)

	// Exactly the pretty-printed (one-space indent) serialization.
	expected, err := json.MarshalIndent(snap, "", " ")
	require.NoError(t, err)
	assert.Equal(t, string(expected), string(plain))

	var decoded Snapshot
	require.NoError(t, json.Unmarshal(plain, &decoded))
	assert.Equal(t, snap.Count, decoded.Count)
	assert.Equal(t, snap.Elements[0].ID, decoded.Elements[0].ID)
}

func TestWriteCompressedBadPath(t *testing.T) {
	_, err := WriteCompressed(filepath.Join(t.TempDir(), "missing", "out.gz"), testSnapshot())
	require.Error(t, err)

	var writeErr *WriteError
	assert.ErrorAs(t, err, &writeErr)
}

func TestWriteRaw(t *testing.T) {
	raw := []byte(`{"version":0.6,"generator":"g","elements":[]}`)
	path := filepath.Join(t.TempDir(), "overpass-result.json")

	n, err := WriteRaw(path, raw)
	require.NoError(t, err)
	assert.Equal(t, int64(len(raw)), n)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, raw, got)
}

func TestWriteRawBadPath(t *testing.T) {
	_, err := WriteRaw(filepath.Join(t.TempDir(), "missing", "raw.json"), []byte("x"))
	require.Error(t, err)

	var writeErr *WriteError
	assert.ErrorAs(t, err, &writeErr)
	assert.Contains(t, writeErr.Path, "raw.json")
}
