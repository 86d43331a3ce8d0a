package utils

import "fmt"

// FormatBrewRatio renders a brew ratio the way baristas read it, e.g. "1:2.0".
func FormatBrewRatio(ratio float64) string {
	return fmt.Sprintf("1:%.1f", ratio)
}

// FormatGrams renders a mass with one decimal, e.g. "18.0g".
func FormatGrams(grams float64) string {
	return fmt.Sprintf("%.1fg", grams)
}

// FormatGrind renders a grinder setting with one decimal.
func FormatGrind(setting float64) string {
	return fmt.Sprintf("%.1f", setting)
}
