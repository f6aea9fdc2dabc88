package sunset

// Rating is the qualitative sunset quality category.
type Rating string

const (
	RatingExceptional Rating = "Exceptional"
	RatingVeryGood    Rating = "Very Good"
	RatingGood        Rating = "Good"
	RatingFair        Rating = "Fair"
	RatingPoor        Rating = "Poor"
	RatingAwful       Rating = "Awful"
)

// RatingFromScore maps a peak weighted score to its rating category.
// Thresholds are inclusive: a score of exactly 80 rates Exceptional.
func RatingFromScore(score float64) Rating {
	switch {
	case score >= 80:
		return RatingExceptional
	case score >= 65:
		return RatingVeryGood
	case score >= 50:
		return RatingGood
	case score >= 35:
		return RatingFair
	case score >= 20:
		return RatingPoor
	default:
		return RatingAwful
	}
}
