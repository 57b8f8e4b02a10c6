package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		status   int
		expected string
	}{
		{200, "2xx"},
		{204, "2xx"},
		{302, "3xx"},
		{404, "4xx"},
		{429, "4xx"},
		{503, "5xx"},
		{0, "error"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ClassifyStatus(tt.status))
	}
}

func TestRecordSyncRun(t *testing.T) {
	okBefore := testutil.ToFloat64(SyncRunsTotal.WithLabelValues("shopify", "ok"))
	errBefore := testutil.ToFloat64(SyncRunsTotal.WithLabelValues("shopify", "error"))
	syncedBefore := testutil.ToFloat64(SyncProductsTotal.WithLabelValues("synced"))
	skippedBefore := testutil.ToFloat64(SyncProductsTotal.WithLabelValues("skipped"))

	RecordSyncRun("shopify", 3, 1, time.Second, nil)
	RecordSyncRun("shopify", 0, 0, time.Second, errors.New("boom"))

	assert.Equal(t, okBefore+1, testutil.ToFloat64(SyncRunsTotal.WithLabelValues("shopify", "ok")))
	assert.Equal(t, errBefore+1, testutil.ToFloat64(SyncRunsTotal.WithLabelValues("shopify", "error")))
	assert.Equal(t, syncedBefore+3, testutil.ToFloat64(SyncProductsTotal.WithLabelValues("synced")))
	assert.Equal(t, skippedBefore+1, testutil.ToFloat64(SyncProductsTotal.WithLabelValues("skipped")))
}

func TestRecordRemoteRequest(t *testing.T) {
	before := testutil.ToFloat64(RemoteRequestsTotal.WithLabelValues("5xx"))

	RecordRemoteRequest(http.StatusBadGateway, 20*time.Millisecond)

	assert.Equal(t, before+1, testutil.ToFloat64(RemoteRequestsTotal.WithLabelValues("5xx")))
}

func TestHandler_ExposesCollectors(t *testing.T) {
	RecordHTTPRequest(http.MethodGet, http.StatusOK)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()

	Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "catalog_sync_http_requests_total")
}
