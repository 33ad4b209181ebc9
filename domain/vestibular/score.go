package vestibular

import "math"

// Scores maps a field label to the raw value entered by the candidate.
// A missing label counts as zero, which is indistinguishable from an explicit
// zero score.
type Scores map[string]float64

// ComputeScore applies the process formula to the raw scores and returns the
// composite, rounded to 3 decimal places. Inputs are clamped to each field's
// range before the formula runs.
func ComputeScore(p Process, raw Scores) float64 {
	clamped := make(map[string]float64, len(raw))
	for _, f := range p.Fields() {
		clamped[f.Label] = f.Clamp(raw[f.Label])
	}

	var total float64
	switch p {
	case ProcessPSC:
		// (PSC1 + PSC2 + PSC3) * 3 + Redação * 6
		total = (clamped["PSC 1"]+clamped["PSC 2"]+clamped["PSC 3"])*3 + clamped["Redação"]*6

	case ProcessMACRO:
		// Day 1 normalized to a 0-100 scale; day 2 weighted with the essay;
		// composite is the mean of the two components.
		dia1 := clamped["Dia 1"] * 100 / 84
		dia2 := clamped["Dia 2"]*2 + clamped["Redação"]
		total = (dia1 + dia2) / 2

	case ProcessSIS:
		total = clamped["SIS 1"] + clamped["SIS 2"] + clamped["SIS 3"] +
			clamped["Redação SIS 2"]*2 + clamped["Redação SIS 3"]*2

	case ProcessENEM:
		// Arithmetic mean of the filled-in sections. Sections left at zero do
		// not enter the divisor.
		var sum float64
		var filled int
		for _, f := range p.Fields() {
			v := clamped[f.Label]
			if v > 0 {
				sum += v
				filled++
			}
		}
		if filled == 0 {
			return 0
		}
		total = sum / float64(filled)
	}

	return round3(total)
}

// MaxScore returns the theoretical maximum composite for the process.
func MaxScore(p Process) float64 {
	switch p {
	case ProcessPSC:
		return round3(54*3*3 + 9*6)
	case ProcessMACRO:
		return round3((100.0 + (36*2 + 28)) / 2)
	case ProcessSIS:
		return round3(60*3 + 10*2 + 10*2)
	case ProcessENEM:
		return 1000
	}
	return 0
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
