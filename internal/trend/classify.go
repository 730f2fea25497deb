package trend

// Level is the ordinal label for a pattern score.
type Level string

// Pattern levels, lowest to highest.
const (
	VeryLow  Level = "Very Low"
	Low      Level = "Low"
	Moderate Level = "Moderate"
	High     Level = "High"
	VeryHigh Level = "Very High"
)

// Classify maps a pattern score to its level. Bands are half-open on the
// lower side: a score exactly on a boundary belongs to the upper band
// (0.2 is Low, 0.8 is Very High). Total over all real inputs.
func Classify(pattern float64) Level {
	switch {
	case pattern < 0.2:
		return VeryLow
	case pattern < 0.4:
		return Low
	case pattern < 0.6:
		return Moderate
	case pattern < 0.8:
		return High
	default:
		return VeryHigh
	}
}
