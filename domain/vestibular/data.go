package vestibular

import (
	"embed"
	"encoding/json"

	"github.com/yvensrabelo/entropia-site-2-sub000/internal/errors"
)

//go:embed data/*.json
var datasetFS embed.FS

var datasetFiles = []string{
	"data/notas-corte-psc-2024.json",
	"data/notas-corte-macro-2025.json",
	"data/notas-corte-sis-2025.json",
}

// rawRecord tolerates both spellings the datasets use for the cutoff value.
type rawRecord struct {
	Processo  string   `json:"processo"`
	Cota      string   `json:"cota"`
	Curso     string   `json:"curso"`
	Nota      *float64 `json:"nota"`
	NotaCorte *float64 `json:"nota-corte"`
	Turno     string   `json:"turno"`
	Cidade    string   `json:"cidade"`
	Campus    string   `json:"campus"`
}

// enemCutoffs is the ENEM reference table. ENEM has no published per-edition
// dataset file; the values follow the reference table the calculator always
// shipped with.
var enemCutoffs = map[string]map[string]float64{
	"AC":             {"Medicina": 780, "Direito": 690, "Engenharia": 670, "Psicologia": 650, "Pedagogia": 610, "Licenciaturas": 600},
	"Escola Pública": {"Medicina": 760, "Direito": 670, "Engenharia": 650, "Psicologia": 630, "Pedagogia": 590, "Licenciaturas": 580},
	"PPI":            {"Medicina": 750, "Direito": 660, "Engenharia": 640, "Psicologia": 620, "Pedagogia": 580, "Licenciaturas": 570},
	"PCD":            {"Medicina": 740, "Direito": 650, "Engenharia": 630, "Psicologia": 610, "Pedagogia": 570, "Licenciaturas": 560},
}

// LoadTable parses the embedded cutoff datasets and builds the lookup table.
// Call it once at startup and inject the result wherever comparison runs.
func LoadTable() (*Table, error) {
	var records []Record
	for _, name := range datasetFiles {
		data, err := datasetFS.ReadFile(name)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read cutoff dataset %s", name)
		}
		var raw []rawRecord
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, errors.Wrapf(err, "failed to parse cutoff dataset %s", name)
		}
		for _, r := range raw {
			p, err := ParseProcess(r.Processo)
			if err != nil {
				return nil, errors.Wrapf(err, "dataset %s has an unknown process", name)
			}
			nota := 0.0
			switch {
			case r.Nota != nil:
				nota = *r.Nota
			case r.NotaCorte != nil:
				nota = *r.NotaCorte
			}
			records = append(records, Record{
				Processo: p,
				Cota:     r.Cota,
				Curso:    r.Curso,
				Nota:     nota,
				Turno:    r.Turno,
				Cidade:   r.Cidade,
				Campus:   r.Campus,
			})
		}
	}

	for cota, byCourse := range enemCutoffs {
		for curso, nota := range byCourse {
			records = append(records, Record{Processo: ProcessENEM, Cota: cota, Curso: curso, Nota: nota})
		}
	}

	return NewTable(records), nil
}
