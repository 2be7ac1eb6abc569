package monitoring

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordMutation(t *testing.T) {
	before := testutil.ToFloat64(AdminMutations.WithLabelValues("add_component", "error"))
	RecordMutation("add_component", errors.New("boom"))
	RecordMutation("add_component", nil)

	assert.Equal(t, before+1, testutil.ToFloat64(AdminMutations.WithLabelValues("add_component", "error")))
	assert.GreaterOrEqual(t, testutil.ToFloat64(AdminMutations.WithLabelValues("add_component", "success")), 1.0)
}

func TestStoreAlert_CountsFailures(t *testing.T) {
	before := testutil.ToFloat64(StoreErrors.WithLabelValues("find by host"))
	StoreAlert("find by host", errors.New("connection reset"), map[string]string{"host": "demo"})

	assert.Equal(t, before+1, testutil.ToFloat64(StoreErrors.WithLabelValues("find by host")))
}

func TestInitMetrics_Idempotent(t *testing.T) {
	assert.NotPanics(t, func() {
		InitMetrics()
		InitMetrics()
	})
}
