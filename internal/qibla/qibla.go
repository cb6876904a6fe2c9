// Package qibla computes the great-circle bearing towards the Kaaba.
package qibla

import "math"

// Kaaba coordinates (Masjid al-Haram, Makkah).
const (
	KaabaLat = 21.4225
	KaabaLon = 39.8262
)

// BearingBetween returns the great-circle initial bearing from the observer
// to the target, in degrees clockwise from north, in [0,360).
func BearingBetween(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	deltaLambda := (lon2 - lon1) * math.Pi / 180

	y := math.Sin(deltaLambda) * math.Cos(phi2)
	x := math.Cos(phi1)*math.Sin(phi2) - math.Sin(phi1)*math.Cos(phi2)*math.Cos(deltaLambda)
	theta := math.Atan2(y, x)

	return math.Mod(theta*180/math.Pi+360, 360)
}

// Bearing returns the qibla bearing from the observer to the Kaaba.
func Bearing(lat, lon float64) float64 {
	return BearingBetween(lat, lon, KaabaLat, KaabaLon)
}

// PointerAngle reconciles the qibla bearing against a live compass heading
// (degrees clockwise from north) and returns the on-screen pointer rotation.
// Callers without a heading pass 0, which yields the absolute bearing.
func PointerAngle(bearing, heading float64) float64 {
	return math.Mod(math.Mod(bearing-heading, 360)+360, 360)
}

var winds = [16]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// Compass returns the 16-wind label for a bearing, e.g. 265° -> "W".
func Compass(bearing float64) string {
	idx := int(math.Mod(bearing+11.25, 360) / 22.5)
	return winds[idx]
}
