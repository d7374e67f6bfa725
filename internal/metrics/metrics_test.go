package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/5w1tchy/wordlist-api/internal/generator"
)

func TestObserveGeneration(t *testing.T) {
	okBefore := testutil.ToFloat64(generationsTotal.WithLabelValues("ok"))
	abortedBefore := testutil.ToFloat64(generationsTotal.WithLabelValues("aborted"))
	numbersBefore := testutil.ToFloat64(stageAdditions.WithLabelValues("numbers"))

	ObserveGeneration(generator.Stats{Seeds: 2, Numbers: 240, Total: 242}, time.Millisecond, false)
	ObserveGeneration(generator.Stats{Seeds: 1, Total: 1}, time.Millisecond, true)

	assert.Equal(t, okBefore+1, testutil.ToFloat64(generationsTotal.WithLabelValues("ok")))
	assert.Equal(t, abortedBefore+1, testutil.ToFloat64(generationsTotal.WithLabelValues("aborted")))
	assert.Equal(t, numbersBefore+240, testutil.ToFloat64(stageAdditions.WithLabelValues("numbers")))
}

func TestObserveHTTP(t *testing.T) {
	before := testutil.ToFloat64(httpRequests.WithLabelValues("unmatched", "404"))
	ObserveHTTP("", 404, time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(httpRequests.WithLabelValues("unmatched", "404")))
}
