package vestibular

import (
	"math"
	"strings"

	"github.com/yvensrabelo/entropia-site-2-sub000/internal/errors"
)

// Process identifies one of the admission exam processes the calculator
// supports. It selects the quota rule set, the score formula and the cutoff
// table used for comparison.
type Process string

const (
	ProcessPSC   Process = "PSC"
	ProcessMACRO Process = "MACRO"
	ProcessSIS   Process = "SIS"
	ProcessENEM  Process = "ENEM"
)

// Processes lists every supported process in display order.
var Processes = []Process{ProcessPSC, ProcessMACRO, ProcessSIS, ProcessENEM}

// ParseProcess normalizes and validates a process name.
func ParseProcess(s string) (Process, error) {
	switch Process(strings.ToUpper(strings.TrimSpace(s))) {
	case ProcessPSC:
		return ProcessPSC, nil
	case ProcessMACRO:
		return ProcessMACRO, nil
	case ProcessSIS:
		return ProcessSIS, nil
	case ProcessENEM:
		return ProcessENEM, nil
	}
	return "", errors.InvalidInput("processo seletivo inválido: " + s)
}

// ScoreField describes one raw score input of a process, with its valid range.
type ScoreField struct {
	Label string  `json:"label"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

var fieldsByProcess = map[Process][]ScoreField{
	ProcessPSC: {
		{Label: "PSC 1", Min: 0, Max: 54},
		{Label: "PSC 2", Min: 0, Max: 54},
		{Label: "PSC 3", Min: 0, Max: 54},
		{Label: "Redação", Min: 0, Max: 9},
	},
	ProcessMACRO: {
		{Label: "Dia 1", Min: 0, Max: 84},
		{Label: "Dia 2", Min: 0, Max: 36},
		{Label: "Redação", Min: 0, Max: 28},
	},
	ProcessSIS: {
		{Label: "SIS 1", Min: 0, Max: 60},
		{Label: "SIS 2", Min: 0, Max: 60},
		{Label: "SIS 3", Min: 0, Max: 60},
		{Label: "Redação SIS 2", Min: 0, Max: 10},
		{Label: "Redação SIS 3", Min: 0, Max: 10},
	},
	ProcessENEM: {
		{Label: "Linguagens", Min: 0, Max: 1000},
		{Label: "Humanas", Min: 0, Max: 1000},
		{Label: "Natureza", Min: 0, Max: 1000},
		{Label: "Matemática", Min: 0, Max: 1000},
		{Label: "Redação", Min: 0, Max: 1000},
	},
}

// Fields returns the score inputs of the process.
func (p Process) Fields() []ScoreField {
	return fieldsByProcess[p]
}

// Clamp forces a value into the field's valid range. Clamping an in-range
// value returns it unchanged.
func (f ScoreField) Clamp(v float64) float64 {
	return math.Max(f.Min, math.Min(f.Max, v))
}
