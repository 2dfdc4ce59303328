package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/tradevault/backend/src/models"
)

func tradesWithNetProfits(values ...float64) []models.Trade {
	trades := make([]models.Trade, len(values))
	for i, v := range values {
		trades[i].NetProfit = v
	}
	return trades
}

func TestPnLDistributionEmpty(t *testing.T) {
	buckets := PnLDistribution(nil, "$")
	assert.Empty(t, buckets)
	assert.NotNil(t, buckets)
}

func TestPnLDistributionCountsConserved(t *testing.T) {
	trades := tradesWithNetProfits(-100, -50, 0, 25, 50, 75, 100, 150, 200, 300, 400)
	buckets := PnLDistribution(trades, "$")

	require.Len(t, buckets, 10)
	total := 0
	for _, bucket := range buckets {
		total += bucket.Count
	}
	assert.Equal(t, len(trades), total)
}

func TestPnLDistributionMaxLandsInLastBucket(t *testing.T) {
	trades := tradesWithNetProfits(0, 100)
	buckets := PnLDistribution(trades, "$")

	require.Len(t, buckets, 10)
	assert.Equal(t, 1, buckets[0].Count)
	assert.Equal(t, 1, buckets[9].Count)
}

func TestPnLDistributionBucketPlacement(t *testing.T) {
	// Range [0, 100], width 10: 5 lands in bucket 0, 15 in bucket 1, 95 in 9.
	trades := tradesWithNetProfits(0, 5, 15, 95, 100)
	buckets := PnLDistribution(trades, "$")

	require.Len(t, buckets, 10)
	assert.Equal(t, 2, buckets[0].Count)
	assert.Equal(t, 1, buckets[1].Count)
	assert.Equal(t, 2, buckets[9].Count)
}

func TestPnLDistributionZeroRange(t *testing.T) {
	trades := tradesWithNetProfits(42.5, 42.5, 42.5)
	buckets := PnLDistribution(trades, "$")

	require.Len(t, buckets, 1)
	assert.Equal(t, 3, buckets[0].Count)
	assert.Equal(t, "$42.50 to $42.50", buckets[0].RangeLabel)
}

func TestPnLDistributionLabels(t *testing.T) {
	trades := tradesWithNetProfits(0, 1000)
	buckets := PnLDistribution(trades, "$")

	require.Len(t, buckets, 10)
	assert.Equal(t, "$0.00 to $100.00", buckets[0].RangeLabel)
	assert.Equal(t, "$900.00 to $1,000.00", buckets[9].RangeLabel)
}
