package handler

import (
	"fmt"
	"math"

	profiledomain "fittrack-go/internal/domain/profile"
)

const (
	lbsPerKg      = 2.20462
	cmPerInch     = 2.54
	inchesPerFoot = 12
)

// displayWeight renders a stored kilogram value in the requested unit.
func displayWeight(kg float64, unit string) string {
	if unit == profiledomain.WeightUnitLbs {
		return fmt.Sprintf("%d lbs", int(math.Round(kg*lbsPerKg)))
	}
	return fmt.Sprintf("%s kg", trimFloat(kg))
}

// displayHeight renders a stored centimetre value as cm or feet and inches.
func displayHeight(cm float64, unit string) string {
	if unit == profiledomain.HeightUnitFt {
		totalInches := cm / cmPerInch
		feet := int(math.Floor(totalInches / inchesPerFoot))
		inches := int(math.Round(math.Mod(totalInches, inchesPerFoot)))
		if inches == inchesPerFoot {
			feet++
			inches = 0
		}
		return fmt.Sprintf("%d'%d\"", feet, inches)
	}
	return fmt.Sprintf("%s cm", trimFloat(cm))
}

func trimFloat(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%d", int(v))
	}
	return fmt.Sprintf("%.1f", v)
}
