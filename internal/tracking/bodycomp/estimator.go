package bodycomp

import (
	"errors"
	"fmt"
	"math"
)

// Sex selects the estimation formula variant.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

func (s Sex) String() string {
	return string(s)
}

func (s Sex) IsValid() bool {
	switch s {
	case SexMale, SexFemale:
		return true
	default:
		return false
	}
}

var (
	ErrInvalidSex          = errors.New("invalid sex variant")
	ErrInvalidMeasurements = errors.New("invalid measurements")
)

// Params carries the circumference measurements for an estimate.
// All distances must already be in centimeters, callers convert via the
// units package before getting here.
type Params struct {
	Sex      Sex     `json:"sex"`
	WaistCm  float64 `json:"waistCm"`
	NeckCm   float64 `json:"neckCm"`
	HipCm    float64 `json:"hipCm"`
	HeightCm float64 `json:"heightCm"`
}

// Estimate computes a body-fat percentage with the US Navy circumference
// method. The result is rounded to one decimal place and that rounded value
// is canonical: storage and later comparisons use it, never the raw float.
// The output is not clamped, so a physiologically impossible result is
// returned as-is and surfaces bad input instead of masking it.
func Estimate(p Params) (float64, error) {
	if !p.Sex.IsValid() {
		return 0, ErrInvalidSex
	}
	if p.WaistCm <= 0 || p.NeckCm <= 0 || p.HeightCm <= 0 {
		return 0, fmt.Errorf("%w: waist, neck and height must be positive", ErrInvalidMeasurements)
	}

	switch p.Sex {
	case SexMale:
		// the formula takes log10(waist - neck), so waist must be strictly
		// greater than neck, otherwise the result would be NaN
		if p.WaistCm <= p.NeckCm {
			return 0, fmt.Errorf("%w: waist must be greater than neck", ErrInvalidMeasurements)
		}
		pct := 495/(1.0324-0.19077*math.Log10(p.WaistCm-p.NeckCm)+0.15456*math.Log10(p.HeightCm)) - 450
		return roundToOneDecimal(pct), nil
	case SexFemale:
		if p.HipCm <= 0 {
			return 0, fmt.Errorf("%w: hip is required for the female variant", ErrInvalidMeasurements)
		}
		girth := p.WaistCm + p.HipCm - p.NeckCm
		if girth <= 0 {
			return 0, fmt.Errorf("%w: waist + hip must be greater than neck", ErrInvalidMeasurements)
		}
		pct := 495/(1.29579-0.35004*math.Log10(girth)+0.221*math.Log10(p.HeightCm)) - 450
		return roundToOneDecimal(pct), nil
	}

	return 0, ErrInvalidSex
}

func roundToOneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}
