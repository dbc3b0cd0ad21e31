package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/wildlife", "200"))
	RecordAPIRequest("GET", "/api/wildlife", 200, 15*time.Millisecond)
	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/wildlife", "200"))
	assert.Equal(t, before+1, after)
}

func TestCounters(t *testing.T) {
	hits := testutil.ToFloat64(CacheResults.WithLabelValues("hit"))
	RecordCacheResult(true)
	assert.Equal(t, hits+1, testutil.ToFloat64(CacheResults.WithLabelValues("hit")))

	fails := testutil.ToFloat64(AuthAttempts.WithLabelValues("login", "failure"))
	RecordAuthAttempt("login", errors.New("bad"))
	assert.Equal(t, fails+1, testutil.ToFloat64(AuthAttempts.WithLabelValues("login", "failure")))

	active := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	TrackActiveRequest(false)
	assert.Equal(t, active, testutil.ToFloat64(APIActiveRequests))
}
