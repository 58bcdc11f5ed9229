package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordResponse(t *testing.T) {
	before := testutil.ToFloat64(ResponsesTotal.WithLabelValues("WBTC", "success"))
	RecordResponse("WBTC", "success")
	assert.Equal(t, before+1, testutil.ToFloat64(ResponsesTotal.WithLabelValues("WBTC", "success")))
}

func TestRecordReport(t *testing.T) {
	RecordReport("1inch_eth", true)
	RecordReport("1inch_eth", false)
	RecordReport("1inch_eth", false)

	assert.GreaterOrEqual(t, testutil.ToFloat64(ReportsTotal.WithLabelValues("1inch_eth", "accepted")), 1.0)
	assert.GreaterOrEqual(t, testutil.ToFloat64(ReportsTotal.WithLabelValues("1inch_eth", "dropped")), 2.0)
}

func TestRecordDataSourceFetch(t *testing.T) {
	before := testutil.ToFloat64(DataSourceFetchesTotal.WithLabelValues("arken_bsc", "error"))
	RecordDataSourceFetch("arken_bsc", false, 20*time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(DataSourceFetchesTotal.WithLabelValues("arken_bsc", "error")))
}
