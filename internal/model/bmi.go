package model

import (
	"errors"
	"math"
)

// ErrImplausibleMeasurements is returned when height or weight is outside
// the range a BMI can sensibly be derived from.
var ErrImplausibleMeasurements = errors.New("height/weight out of plausible range")

// CalculateBMI expects height in centimeters and weight in kilograms.
// The result is rounded to one decimal place.
func CalculateBMI(heightCm, weightKg float64) (float64, error) {
	if heightCm < 50 || heightCm > 250 || weightKg < 10 || weightKg > 400 {
		return 0, ErrImplausibleMeasurements
	}

	h := heightCm / 100.0
	bmi := weightKg / (h * h)
	return math.Round(bmi*10) / 10, nil
}

// DeriveBMI fills p.BMI from height and weight when it is missing.
// It leaves p unchanged when either measurement is absent or implausible.
func (p *Profile) DeriveBMI() {
	if p.BMI != nil || p.Height == nil || p.Weight == nil {
		return
	}
	bmi, err := CalculateBMI(*p.Height, *p.Weight)
	if err != nil {
		return
	}
	p.BMI = &bmi
}

// Finite reports whether every measurement present in p is a finite number.
func (p Profile) Finite() bool {
	for _, v := range []*float64{p.Height, p.Weight, p.BMI} {
		if v != nil && (math.IsNaN(*v) || math.IsInf(*v, 0)) {
			return false
		}
	}
	return true
}

// BMICategory returns the WHO category label for bmi.
func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25.0:
		return "Normal weight"
	case bmi < 30.0:
		return "Overweight"
	default:
		return "Obesity"
	}
}
