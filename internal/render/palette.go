// Package render draws the sparkline and trend charts onto canvas regions.
package render

import (
	"github.com/wcharczuk/go-chart/v2/drawing"

	"riskboard/internal/risk"
	"riskboard/internal/theme"
)

// fallbackGreen is used when a bucket token is not defined by the theme.
var fallbackGreen = drawing.Color{R: 0x00, G: 0xff, B: 0x88, A: 255}

var bucketTokens = map[risk.Bucket]string{
	risk.BucketLow:      "--green",
	risk.BucketMedium:   "--yellow",
	risk.BucketHigh:     "--orange",
	risk.BucketCritical: "--red",
}

// RiskColor returns the theme color for a score's card bucket.
func RiskColor(score int, th theme.Theme) drawing.Color {
	return th.ColorOr(bucketTokens[risk.CardBucket(score)], fallbackGreen)
}
