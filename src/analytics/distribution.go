package analytics

import (
	"fmt"
	"math"

	"github.com/username/tradevault/backend/src/models"
	"github.com/username/tradevault/backend/src/utils"
)

const distributionBuckets = 10

// PnLDistribution builds a fixed-width histogram of net profit across all
// trades. The [min, max] range is split into 10 equal buckets and every trade
// lands in floor((value-min)/width); the exact maximum clamps into the last
// bucket so the counts always sum to the trade count. A zero-width range (all
// trades equal) collapses into a single bucket.
func PnLDistribution(trades []models.Trade, currencySymbol string) []models.HistogramBucket {
	if len(trades) == 0 {
		return []models.HistogramBucket{}
	}

	minVal := trades[0].NetProfit
	maxVal := trades[0].NetProfit
	for _, trade := range trades[1:] {
		if trade.NetProfit < minVal {
			minVal = trade.NetProfit
		}
		if trade.NetProfit > maxVal {
			maxVal = trade.NetProfit
		}
	}

	if maxVal == minVal {
		label := fmt.Sprintf("%s to %s",
			utils.FormatCurrency(minVal, currencySymbol),
			utils.FormatCurrency(maxVal, currencySymbol))
		return []models.HistogramBucket{{RangeLabel: label, Count: len(trades)}}
	}

	width := (maxVal - minVal) / distributionBuckets
	buckets := make([]models.HistogramBucket, distributionBuckets)
	for i := range buckets {
		lower := minVal + float64(i)*width
		upper := lower + width
		buckets[i].RangeLabel = fmt.Sprintf("%s to %s",
			utils.FormatCurrency(lower, currencySymbol),
			utils.FormatCurrency(upper, currencySymbol))
	}

	for _, trade := range trades {
		idx := int(math.Floor((trade.NetProfit - minVal) / width))
		if idx >= distributionBuckets {
			idx = distributionBuckets - 1
		}
		if idx < 0 {
			idx = 0
		}
		buckets[idx].Count++
	}

	return buckets
}
