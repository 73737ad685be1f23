package main

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evatlas/chargesnap/internal/overpass"
	"github.com/evatlas/chargesnap/internal/snapshot"
)

const samplePayload = `{"version":0.6,"generator":"g","elements":[{"type":"node","id":1,"lat":47.0,"lon":8.0,"timestamp":"2024-01-01T00:00:00Z","version":3,"tags":{"amenity":"charging_station"}}]}`

func testOptions(t *testing.T, endpoint string) snapshotOptions {
	dir := t.TempDir()
	return snapshotOptions{
		Endpoint:         endpoint,
		TimeoutSecs:      5,
		KeepIntermediate: false,
		RawPath:          filepath.Join(dir, "overpass-result.json"),
		CompressedPath:   filepath.Join(dir, "charging-stations-osm.json.gz"),
	}
}

func readSnapshot(t *testing.T, path string) *snapshot.Snapshot {
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	gz, err := gzip.NewReader(f)
	require.NoError(t, err)
	plain, err := io.ReadAll(gz)
	require.NoError(t, err)

	var snap snapshot.Snapshot
	require.NoError(t, json.Unmarshal(plain, &snap))
	return &snap
}

func TestRunSnapshotEndToEnd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		w.Write([]byte(samplePayload))
	}))
	defer srv.Close()

	opts := testOptions(t, srv.URL)
	opts.KeepIntermediate = true

	require.NoError(t, runSnapshot(context.Background(), opts))

	snap := readSnapshot(t, opts.CompressedPath)
	require.Equal(t, 1, snap.Count)
	require.Len(t, snap.Elements, 1)
	assert.Equal(t, uint64(1), snap.Elements[0].ID)
	require.NotNil(t, snap.Elements[0].Lat)
	assert.Equal(t, 47.0, *snap.Elements[0].Lat)
	assert.Equal(t, overpass.ElementTypeNode, snap.Elements[0].Type)
	assert.NotZero(t, snap.Timestamp)

	// Raw intermediate holds the exact response bytes.
	raw, err := os.ReadFile(opts.RawPath)
	require.NoError(t, err)
	assert.Equal(t, samplePayload, string(raw))
}

func TestRunSnapshotSkipsIntermediateByDefault(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(samplePayload))
	}))
	defer srv.Close()

	opts := testOptions(t, srv.URL)
	require.NoError(t, runSnapshot(context.Background(), opts))

	_, err := os.Stat(opts.RawPath)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(opts.CompressedPath)
	assert.NoError(t, err)
}

func TestRunSnapshotRemoteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusGatewayTimeout)
	}))
	defer srv.Close()

	opts := testOptions(t, srv.URL)
	opts.KeepIntermediate = true

	err := runSnapshot(context.Background(), opts)
	require.Error(t, err)

	var remoteErr *overpass.RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, http.StatusGatewayTimeout, remoteErr.Status)

	// Aborted before any file was written.
	_, statErr := os.Stat(opts.RawPath)
	assert.True(t, os.IsNotExist(statErr))
	_, statErr = os.Stat(opts.CompressedPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunSnapshotParseError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"version":0.6}`))
	}))
	defer srv.Close()

	opts := testOptions(t, srv.URL)
	opts.KeepIntermediate = true

	err := runSnapshot(context.Background(), opts)
	require.Error(t, err)

	var parseErr *overpass.ParseError
	assert.ErrorAs(t, err, &parseErr)

	_, statErr := os.Stat(opts.RawPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunSnapshotEmptyDatasetWithRemark(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"version":0.6,"generator":"g","elements":[],"remark":"runtime error: Query timed out"}`))
	}))
	defer srv.Close()

	opts := testOptions(t, srv.URL)
	opts.KeepIntermediate = true

	err := runSnapshot(context.Background(), opts)
	require.Error(t, err)

	var empty *snapshot.EmptyDatasetError
	require.ErrorAs(t, err, &empty)
	assert.Contains(t, err.Error(), "runtime error: Query timed out")

	_, statErr := os.Stat(opts.RawPath)
	assert.True(t, os.IsNotExist(statErr))
	_, statErr = os.Stat(opts.CompressedPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunSnapshotInvalidEndpoint(t *testing.T) {
	opts := testOptions(t, "gopher://example.org")
	assert.Error(t, runSnapshot(context.Background(), opts))
}

func TestRunSnapshotInvalidTimeout(t *testing.T) {
	opts := testOptions(t, "switzerland")
	opts.TimeoutSecs = 0
	assert.Error(t, runSnapshot(context.Background(), opts))
}
