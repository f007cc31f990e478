package risk

// Bucket is the card severity used for signal cards, the gauge and sparkline colors.
type Bucket int

const (
	BucketLow Bucket = iota
	BucketMedium
	BucketHigh
	BucketCritical
)

// CardBucket classifies a score for card styling.
func CardBucket(risk int) Bucket {
	switch {
	case risk < 25:
		return BucketLow
	case risk < 50:
		return BucketMedium
	case risk < 75:
		return BucketHigh
	default:
		return BucketCritical
	}
}

func (b Bucket) String() string {
	switch b {
	case BucketLow:
		return "LOW"
	case BucketMedium:
		return "MEDIUM"
	case BucketHigh:
		return "HIGH"
	default:
		return "CRITICAL"
	}
}

// Class is the style class applied to a card region.
func (b Bucket) Class() string {
	switch b {
	case BucketLow:
		return "risk-low"
	case BucketMedium:
		return "risk-medium"
	case BucketHigh:
		return "risk-high"
	default:
		return "risk-critical"
	}
}

// Alert is the banner level. Its thresholds differ from CardBucket on purpose.
type Alert struct {
	Level int
	Label string
	Style string
}

var alertLevels = []Alert{
	{Level: 0, Label: "LOW", Style: "alert-low"},
	{Level: 1, Label: "GUARDED", Style: "alert-guarded"},
	{Level: 2, Label: "ELEVATED", Style: "alert-elevated"},
	{Level: 3, Label: "HIGH", Style: "alert-high"},
	{Level: 4, Label: "SEVERE", Style: "alert-severe"},
}

// AlertLevel classifies a score for the alert banner.
func AlertLevel(risk int) Alert {
	switch {
	case risk < 20:
		return alertLevels[0]
	case risk < 40:
		return alertLevels[1]
	case risk < 60:
		return alertLevels[2]
	case risk < 80:
		return alertLevels[3]
	default:
		return alertLevels[4]
	}
}
