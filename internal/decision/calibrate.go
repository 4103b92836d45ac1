package decision

import "math"

// Calibrate maps a raw model score to a confidence for the given league.
// The result lies in [Curve.Floor, LeagueCap(league)], is rounded to two
// decimals and never decreases as score increases.
func (c Config) Calibrate(score float64, league string) float64 {
	s := clampScore(score) / 100
	curved := math.Pow(s, c.Curve.Exponent)
	confidence := c.Curve.Floor + c.Curve.Span*curved

	ceiling := c.LeagueCap(league)
	if confidence > ceiling {
		confidence = ceiling
	}
	if confidence < c.Curve.Floor {
		confidence = c.Curve.Floor
	}
	return round2(confidence)
}

func clampScore(score float64) float64 {
	if math.IsNaN(score) || score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
