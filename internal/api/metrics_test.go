package api

import (
	"testing"

	"travel-market-backend/internal/queue"
)

func TestRepeatedServersShareMetricsCollectors(t *testing.T) {
	queueManager := queue.NewRequestQueueManager(1, 1)
	t.Cleanup(queueManager.Shutdown)

	first := NewAPIServer(":0", queueManager, nil, nil)
	second := NewAPIServer(":0", queueManager, nil, nil)

	if first.metrics.requests != second.metrics.requests {
		t.Fatalf("expected the second server to reuse the registered requests collector")
	}
	if first.metrics.duration != second.metrics.duration {
		t.Fatalf("expected the second server to reuse the registered duration collector")
	}
}

func TestSanitizePathCollapsesDeepPaths(t *testing.T) {
	cases := map[string]string{
		"":                             "/",
		"/":                            "/",
		"/api/public/v1":               "/api/public/v1",
		"/api/public/v1/support/agent": "/api/public/v1/...",
	}
	for in, want := range cases {
		if got := sanitizePath(in); got != want {
			t.Fatalf("sanitizePath(%q) = %q, want %q", in, got, want)
		}
	}
}
