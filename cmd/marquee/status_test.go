package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintStatus(t *testing.T) {
	var buf bytes.Buffer
	printStatus(&buf, "http://localhost:8585", &StatusResponse{
		Status:  "ok",
		Version: "1.2.3",
		Caches: []CacheStatus{
			{Resource: "popular", Entries: 1, Capacity: 1, TTLSeconds: 600},
			{Resource: "details", Entries: 12, Capacity: 1000, TTLSeconds: 3600},
			{Resource: "custom", Entries: 3, Capacity: 0, TTLSeconds: 30},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "marquee v1.2.3 | Server: http://localhost:8585 | Status: ok")
	assert.Contains(t, out, "popular:")
	assert.Contains(t, out, "ttl 10m0s")
	assert.Contains(t, out, "ttl 1h0m0s")
	assert.Contains(t, out, "unbounded")
}

func TestStatusCommand(t *testing.T) {
	withJSONOutput(t, false)
	srv := newMockServer(t).
		ExpectPath("/api/v1/status").
		RespondJSON(StatusResponse{Status: "ok", Version: "dev"}).
		Build()
	defer srv.Close()
	withServerURL(t, srv.URL)

	out, err := runCLI(t, "status", "--server", srv.URL, "--json=false")
	require.NoError(t, err)
	assert.Contains(t, out, "marquee vdev")
}
