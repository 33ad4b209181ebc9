package vestibular

import (
	"math"
	"sort"
	"strings"

	"github.com/montanaflynn/stats"
)

// Result is the per-course outcome of comparing a composite score against the
// historical cutoff. SemCorte marks courses whose last edition had no
// approvals under the quota (cutoff absent or zero); those are never passable
// and carry no percentage.
type Result struct {
	Curso      string  `json:"curso"`
	NotaCorte  float64 `json:"nota_corte"`
	Diferenca  float64 `json:"diferenca"`
	Aprovado   bool    `json:"aprovado"`
	Percentual float64 `json:"percentual"`
	SemCorte   bool    `json:"sem_corte"`
	Turno      string  `json:"turno,omitempty"`
	Cidade     string  `json:"cidade,omitempty"`
	Campus     string  `json:"campus,omitempty"`
}

// Summary aggregates a result list the way the calculator's closing panel
// does: approved courses, near misses (within 50 points) and the rest, plus
// mean and median cutoff over courses that had a cutoff at all.
type Summary struct {
	Aprovados       int     `json:"aprovados"`
	QuaseLa         int     `json:"quase_la"`
	PrecisaMelhorar int     `json:"precisa_melhorar"`
	MediaCorte      float64 `json:"media_corte"`
	MedianaCorte    float64 `json:"mediana_corte"`
}

// Compare joins the composite score and quota against the cutoff table and
// returns one result per visible course. The search filter is applied before
// comparison, so percentages and ordering reflect only the visible subset.
// Passed courses come first, both groups sorted by cutoff descending.
func Compare(table *Table, p Process, cota string, nota float64, busca string) []Result {
	courses := table.Courses(p, cota)
	busca = strings.ToLower(strings.TrimSpace(busca))

	results := make([]Result, 0, len(courses))
	for _, curso := range courses {
		if busca != "" && !strings.Contains(strings.ToLower(curso), busca) {
			continue
		}
		cutoff, _ := table.Lookup(p, cota, curso)
		r := Result{
			Curso:     curso,
			NotaCorte: cutoff.Nota,
			Turno:     cutoff.Turno,
			Cidade:    cutoff.Cidade,
			Campus:    cutoff.Campus,
		}
		if cutoff.Nota > 0 {
			r.Diferenca = round3(nota - cutoff.Nota)
			r.Aprovado = nota >= cutoff.Nota
			r.Percentual = math.Round(nota/cutoff.Nota*100*100) / 100
		} else {
			r.SemCorte = true
		}
		results = append(results, r)
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Aprovado != results[j].Aprovado {
			return results[i].Aprovado
		}
		return results[i].NotaCorte > results[j].NotaCorte
	})
	return results
}

// Summarize builds the closing statistics over a comparison result set.
func Summarize(results []Result) Summary {
	var s Summary
	var cortes []float64
	for _, r := range results {
		if r.SemCorte {
			continue
		}
		cortes = append(cortes, r.NotaCorte)
		switch {
		case r.Aprovado:
			s.Aprovados++
		case -r.Diferenca <= 50:
			s.QuaseLa++
		default:
			s.PrecisaMelhorar++
		}
	}
	if len(cortes) > 0 {
		if media, err := stats.Mean(cortes); err == nil {
			s.MediaCorte = round3(media)
		}
		if mediana, err := stats.Median(cortes); err == nil {
			s.MedianaCorte = round3(mediana)
		}
	}
	return s
}
