package units

// Canonical storage units are kilograms and centimeters everywhere in the
// backend; conversions live only here so that no call site does its own
// inline kg/lb or cm/in math.

const (
	lbPerKg = 2.20462
	cmPerIn = 2.54
)

func KgToLb(kg float64) float64 {
	return kg * lbPerKg
}

func LbToKg(lb float64) float64 {
	return lb / lbPerKg
}

func CmToIn(cm float64) float64 {
	return cm / cmPerIn
}

func InToCm(in float64) float64 {
	return in * cmPerIn
}
