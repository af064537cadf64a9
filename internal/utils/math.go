package utils

import "math"

const bytesPerGiB = 1024 * 1024 * 1024

// Round rounds a float64 value to 2 decimal places
// Used for display values (disk space, throughput) to avoid unnecessary precision
func Round(val float64) float64 {
	// Use proper rounding that works for both positive and negative numbers
	return math.Round(val*100) / 100
}

// BytesToGiB converts a byte count to GiB without rounding
func BytesToGiB(bytes float64) float64 {
	return bytes / bytesPerGiB
}

// KiBToGiB converts a KiB count (df -k, /proc/meminfo) to GiB without rounding
func KiBToGiB(kib float64) float64 {
	return kib / 1024 / 1024
}

// BitsToMbps converts bits per second to megabits per second, rounded to 2 decimals
func BitsToMbps(bitsPerSecond float64) float64 {
	return Round(bitsPerSecond / 1000000)
}

// Halve halves n with round-half-to-even, so 1 -> 0, 3 -> 2, 5 -> 2
func Halve(n int) int {
	return int(math.RoundToEven(float64(n) / 2))
}
