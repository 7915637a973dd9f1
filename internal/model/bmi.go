package model

import "math"

// ComputeBMI returns weight (kg) over height (m) squared, rounded to two
// decimals. It returns nil when either input is not positive.
func ComputeBMI(weight, height float64) *float64 {
	if weight <= 0 || height <= 0 {
		return nil
	}
	bmi := math.Round(weight/(height*height)*100) / 100
	return &bmi
}
