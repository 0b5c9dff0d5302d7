package measurement

import "math"

// CoreMeasurements holds the tier-1 formula outputs.  Chest, shoulder, and
// sleeve scale linearly with height using age-banded coefficients; shoulder is
// the only one that also depends on gender.
type CoreMeasurements struct {
	Chest    float64
	Shoulder float64
	Sleeve   float64
}

// CoreFromFormula computes chest, shoulder, and sleeve from age, gender, and
// height in centimeters.  Values are not rounded here; callers round at the
// point they enter a record.
func CoreFromFormula(age float64, gender Gender, height float64) CoreMeasurements {
	var chest float64
	switch {
	case age < 2:
		chest = height * 0.51
	case age < 6:
		chest = height * 0.49
	default:
		chest = height * 0.47
	}

	var shoulder float64
	if gender == Male {
		if age < 6 {
			shoulder = height * 0.22
		} else {
			shoulder = height * 0.23
		}
	} else {
		if age < 6 {
			shoulder = height * 0.21
		} else {
			shoulder = height * 0.22
		}
	}

	var sleeve float64
	switch {
	case age < 2:
		sleeve = height * 0.28
	case age < 6:
		sleeve = height * 0.30
	default:
		sleeve = height * 0.32
	}

	return CoreMeasurements{Chest: chest, Shoulder: shoulder, Sleeve: sleeve}
}

// bandCoeff selects a coefficient by the tier-2 age bands (≤5 / ≤10 / older).
func bandCoeff(age, young, middle, older float64) float64 {
	if age <= 5 {
		return young
	}
	if age <= 10 {
		return middle
	}
	return older
}

// SecondaryLengths computes the derived garment lengths.  The gender and chest
// arguments are part of the established signature but do not influence the
// result: chest is recomputed internally as height*0.52, shadowing the input.
// Callers must not rely on the passed chest affecting any output.
func SecondaryLengths(age float64, gender Gender, height, chest float64) map[string]float64 {
	_ = gender

	inseam := height * bandCoeff(age, 0.38, 0.42, 0.45)
	toplength := height * bandCoeff(age, 0.35, 0.38, 0.40)
	kurtalength := height * bandCoeff(age, 0.40, 0.43, 0.46)
	pantLength := inseam + height*0.05
	kneeLength := height * bandCoeff(age, 0.26, 0.27, 0.28)
	midiLength := height * bandCoeff(age, 0.35, 0.40, 0.45)
	ankleLength := height * bandCoeff(age, 0.48, 0.50, 0.55)
	maxiLength := height * bandCoeff(age, 0.55, 0.58, 0.60)
	armhole := height * 0.12

	chest = height * 0.52
	neckDepthFront := math.Max(chest*0.115, 2.5)
	neckDepthBack := math.Max(chest*0.07, 1.5)

	return map[string]float64{
		"Inseam":         Round2(inseam),
		"Armhole":        Round2(armhole),
		"TopLength":      Round2(toplength),
		"KurtaLength":    Round2(kurtalength),
		"PantLength":     Round2(pantLength),
		"KneeLength":     Round2(kneeLength),
		"MidiLength":     Round2(midiLength),
		"AnkleLength":    Round2(ankleLength),
		"MaxiLength":     Round2(maxiLength),
		"NeckDepthBack":  Round2(neckDepthBack),
		"NeckDepthFront": Round2(neckDepthFront),
	}
}
