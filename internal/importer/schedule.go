package importer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ScheduleSlotRecord is one normalized cell of a weekly schedule grid.
type ScheduleSlotRecord struct {
	DiaSemana  string
	Turno      string
	Tempo      int
	HoraInicio string
	HoraFim    string
	Materia    string
	Professor  string
}

// mapeamentoMaterias expands the subject abbreviations the schedule grids
// use in cell brackets. Unknown abbreviations pass through unchanged.
var mapeamentoMaterias = map[string]string{
	"LIN": "Linguagens",
	"POR": "Português",
	"RED": "Redação",
	"LIT": "Literatura",
	"ING": "Inglês",
	"ESP": "Espanhol",
	"MAT": "Matemática",
	"FIS": "Física",
	"QUI": "Química",
	"BIO": "Biologia",
	"HIS": "História",
	"GEO": "Geografia",
	"FIL": "Filosofia",
	"SOC": "Sociologia",
	"ART": "Artes",
}

// weekDays are the grid columns after the time column, in sheet order.
var weekDays = []string{"segunda", "terça", "quarta", "quinta", "sexta", "sábado"}

// cellPattern matches "Professor Name [ABR]".
var cellPattern = regexp.MustCompile(`^(.+?)\s*\[([^\]]+)\]$`)

// timePattern matches the period start in the first column, "07:00" or
// "7h" or "7".
var timePattern = regexp.MustCompile(`^(\d{1,2})(?::(\d{2})|h)?`)

// ParseScheduleGrid walks a weekly grid sheet. Rows above the anchor row
// (the one containing "HORÁRIO") are ignored; each row below it is a class
// period: first column the start time, then one cell per weekday.
func ParseScheduleGrid(rows [][]string) ([]ScheduleSlotRecord, []string) {
	anchor := -1
	for i, row := range rows {
		for _, cell := range row {
			if strings.Contains(strings.ToUpper(cell), "HORÁRIO") || strings.Contains(strings.ToUpper(cell), "HORARIO") {
				anchor = i
				break
			}
		}
		if anchor >= 0 {
			break
		}
	}

	var slots []ScheduleSlotRecord
	var problems []string
	if anchor < 0 {
		return nil, []string{"Linha de cabeçalho HORÁRIO não encontrada"}
	}

	for i := anchor + 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		hour, ok := parseStartHour(row[0])
		if !ok {
			problems = append(problems, fmt.Sprintf("Linha %d: horário inválido %q", i+1, row[0]))
			continue
		}
		// Classes start at 07:00; anything earlier is a typo in the grid.
		if hour < 7 {
			problems = append(problems, fmt.Sprintf("Linha %d: horário fora do expediente %q", i+1, row[0]))
			continue
		}
		turno, tempo := shiftAndPeriod(hour)

		for d, dia := range weekDays {
			col := d + 1
			if col >= len(row) {
				break
			}
			cell := strings.TrimSpace(row[col])
			if cell == "" || cell == "-" {
				continue
			}
			professor, materia, ok := parseCell(cell)
			if !ok {
				problems = append(problems, fmt.Sprintf("Linha %d, %s: célula não reconhecida %q", i+1, dia, cell))
				continue
			}
			slots = append(slots, ScheduleSlotRecord{
				DiaSemana:  dia,
				Turno:      turno,
				Tempo:      tempo,
				HoraInicio: fmt.Sprintf("%02d:00", hour),
				HoraFim:    fmt.Sprintf("%02d:00", hour+1),
				Materia:    materia,
				Professor:  professor,
			})
		}
	}
	return slots, problems
}

// parseCell splits "Professor Name [ABR]" into teacher and expanded subject.
func parseCell(cell string) (professor, materia string, ok bool) {
	m := cellPattern.FindStringSubmatch(cell)
	if m == nil {
		return "", "", false
	}
	professor = strings.TrimSpace(m[1])
	abbrev := strings.ToUpper(strings.TrimSpace(m[2]))
	materia, found := mapeamentoMaterias[abbrev]
	if !found {
		materia = abbrev
	}
	return professor, materia, true
}

func parseStartHour(cell string) (int, bool) {
	m := timePattern.FindStringSubmatch(strings.TrimSpace(cell))
	if m == nil {
		return 0, false
	}
	hour, err := strconv.Atoi(m[1])
	if err != nil || hour < 0 || hour > 23 {
		return 0, false
	}
	return hour, true
}

// shiftAndPeriod derives the shift label and the 1-based period within it
// from the start hour. Morning runs from 7, afternoon from 13, evening
// from 19.
func shiftAndPeriod(hour int) (string, int) {
	switch {
	case hour >= 7 && hour < 13:
		return "manhã", hour - 6
	case hour >= 13 && hour < 19:
		return "tarde", hour - 12
	default:
		return "noite", hour - 18
	}
}
