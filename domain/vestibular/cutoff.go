package vestibular

import "sort"

// Record is one historical cutoff fact loaded from the reference datasets.
// Turno, Cidade and Campus are only present for MACRO and SIS editions.
type Record struct {
	Processo Process `json:"processo"`
	Cota     string  `json:"cota"`
	Curso    string  `json:"curso"`
	Nota     float64 `json:"nota"`
	Turno    string  `json:"turno,omitempty"`
	Cidade   string  `json:"cidade,omitempty"`
	Campus   string  `json:"campus,omitempty"`
}

// Cutoff is the resolved entry for a (process, quota, course) key.
type Cutoff struct {
	Nota   float64
	Turno  string
	Cidade string
	Campus string
}

// Table is an immutable cutoff lookup built once at startup and passed into
// the comparison engine. It never changes after construction.
type Table struct {
	entries map[Process]map[string]map[string]Cutoff
}

// macroCotaLabels translates the short quota labels DetermineQuota produces
// for MACRO into the longer names used by the MACRO dataset.
var macroCotaLabels = map[string]string{
	"Interior AM":              "Estudantes do Interior Amazonas",
	"Portador de Diploma":      "Portador de Diploma Brasil",
	"PCD AM":                   "Pessoas com Deficiência (PCD) Amazonas",
	"PCD":                      "Pessoas com Deficiência (PCD) Brasil",
	"Pessoas Indígenas AM":     "Pessoas Indígenas Amazonas",
	"Pessoas Indígenas":        "Pessoas Indígenas Brasil",
	"Pessoas Pretas AM":        "Pessoas Pretas Amazonas",
	"Pessoas Pretas":           "Pessoas Pretas Brasil",
	"Escola Pública AM":        "Estudantes de Escola Pública Amazonas",
	"Escola Pública Brasil":    "Estudantes de Escola Pública Brasil",
	"Qualquer Natureza AM":     "Estudantes de Escola de Qualquer Natureza Amazonas",
	"Qualquer Natureza Brasil": "Estudantes de Escola de Qualquer Natureza Brasil",
}

// NewTable builds the lookup from raw records. When several records exist for
// the same (process, quota, course) key, MACRO and SIS keep the minimum
// cutoff while PSC keeps the maximum. The asymmetry comes from the source
// data conventions and is preserved on purpose.
func NewTable(records []Record) *Table {
	t := &Table{entries: make(map[Process]map[string]map[string]Cutoff)}
	for _, r := range records {
		byQuota, ok := t.entries[r.Processo]
		if !ok {
			byQuota = make(map[string]map[string]Cutoff)
			t.entries[r.Processo] = byQuota
		}
		byCourse, ok := byQuota[r.Cota]
		if !ok {
			byCourse = make(map[string]Cutoff)
			byQuota[r.Cota] = byCourse
		}

		candidate := Cutoff{Nota: r.Nota, Turno: r.Turno, Cidade: r.Cidade, Campus: r.Campus}
		existing, dup := byCourse[r.Curso]
		if !dup {
			byCourse[r.Curso] = candidate
			continue
		}
		switch r.Processo {
		case ProcessPSC:
			if candidate.Nota > existing.Nota {
				byCourse[r.Curso] = candidate
			}
		default:
			// MACRO and SIS resolve duplicates to the minimum.
			if candidate.Nota < existing.Nota {
				byCourse[r.Curso] = candidate
			}
		}
	}
	return t
}

// Lookup returns the cutoff for a course under a quota. For MACRO the short
// quota labels are translated to the dataset names first.
func (t *Table) Lookup(p Process, cota, curso string) (Cutoff, bool) {
	cota = t.datasetCota(p, cota)
	byCourse, ok := t.entries[p][cota]
	if !ok {
		return Cutoff{}, false
	}
	c, ok := byCourse[curso]
	return c, ok
}

// Courses lists, in alphabetical order, every course with a record for the
// (process, quota) pair.
func (t *Table) Courses(p Process, cota string) []string {
	cota = t.datasetCota(p, cota)
	byCourse := t.entries[p][cota]
	courses := make([]string, 0, len(byCourse))
	for curso := range byCourse {
		courses = append(courses, curso)
	}
	sort.Strings(courses)
	return courses
}

func (t *Table) datasetCota(p Process, cota string) string {
	if p == ProcessMACRO {
		if mapped, ok := macroCotaLabels[cota]; ok {
			return mapped
		}
	}
	return cota
}
