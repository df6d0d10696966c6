package geo

import "math"

// earthRadiusMiles is the mean Earth radius used by the Haversine formula.
const earthRadiusMiles = 3959.0

// Distance returns the great-circle distance in miles between two
// latitude/longitude pairs, computed with the Haversine formula.
//
// Inputs are not validated: NaN or infinite coordinates propagate to a
// NaN result rather than raising an error. Callers relying on the
// distance being finite must check their inputs first.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMiles * c
}

// RoundMiles rounds a distance to one decimal place (half away from zero).
func RoundMiles(d float64) float64 {
	return math.Round(d*10) / 10
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
