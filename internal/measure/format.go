package measure

import "fmt"

// FormatLength renders a length in meters with two decimals, e.g. "10.00 m".
func FormatLength(meters float64) string {
	return fmt.Sprintf("%.2f m", meters)
}

// FormatArea renders an area in square meters with two decimals, e.g. "100.00 m²".
func FormatArea(squareMeters float64) string {
	return fmt.Sprintf("%.2f m²", squareMeters)
}
