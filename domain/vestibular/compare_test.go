package vestibular

import "testing"

func comparisonFixture() *Table {
	return NewTable([]Record{
		{Processo: ProcessPSC, Cota: "PP2", Curso: "Engenharia Civil", Nota: 390},
		{Processo: ProcessPSC, Cota: "PP2", Curso: "Medicina", Nota: 470.5},
		{Processo: ProcessPSC, Cota: "PP2", Curso: "Direito", Nota: 402},
		{Processo: ProcessPSC, Cota: "PP2", Curso: "Psicologia", Nota: 0},
	})
}

func TestCompareApproval(t *testing.T) {
	results := Compare(comparisonFixture(), ProcessPSC, "PP2", 402, "Engenharia")
	if len(results) != 1 {
		t.Fatalf("Expected 1 result after filter, got %d", len(results))
	}
	r := results[0]
	if !r.Aprovado {
		t.Error("Expected 402 against cutoff 390 to pass")
	}
	if r.Diferenca != 12.0 {
		t.Errorf("Expected difference +12, got %v", r.Diferenca)
	}
	if r.Percentual != 103.08 {
		t.Errorf("Expected percentage 103.08, got %v", r.Percentual)
	}
}

func TestCompareExactCutoffPasses(t *testing.T) {
	results := Compare(comparisonFixture(), ProcessPSC, "PP2", 402, "Direito")
	if len(results) != 1 || !results[0].Aprovado {
		t.Fatal("Expected score equal to cutoff to pass")
	}
	if results[0].Diferenca != 0 {
		t.Errorf("Expected zero difference, got %v", results[0].Diferenca)
	}
}

func TestCompareZeroCutoffNeverPasses(t *testing.T) {
	results := Compare(comparisonFixture(), ProcessPSC, "PP2", 530, "Psicologia")
	if len(results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(results))
	}
	r := results[0]
	if !r.SemCorte {
		t.Error("Expected zero cutoff flagged as SemCorte")
	}
	if r.Aprovado {
		t.Error("A course without cutoff must never be approved")
	}
	if r.Percentual != 0 {
		t.Errorf("Expected no percentage for SemCorte, got %v", r.Percentual)
	}
}

func TestCompareOrdering(t *testing.T) {
	results := Compare(comparisonFixture(), ProcessPSC, "PP2", 402, "")
	if len(results) != 4 {
		t.Fatalf("Expected 4 results, got %d", len(results))
	}
	// Passed first sorted by cutoff descending, then the rest.
	expected := []string{"Direito", "Engenharia Civil", "Medicina", "Psicologia"}
	for i, curso := range expected {
		if results[i].Curso != curso {
			t.Errorf("Position %d: expected %q, got %q", i, curso, results[i].Curso)
		}
	}
}

func TestCompareFilterCaseInsensitive(t *testing.T) {
	results := Compare(comparisonFixture(), ProcessPSC, "PP2", 402, "  mediCINA ")
	if len(results) != 1 || results[0].Curso != "Medicina" {
		t.Fatalf("Expected filter to match Medicina, got %+v", results)
	}
}

func TestCompareUnknownQuota(t *testing.T) {
	if results := Compare(comparisonFixture(), ProcessPSC, "QLB1", 402, ""); len(results) != 0 {
		t.Errorf("Expected empty result for quota without records, got %d", len(results))
	}
}

func TestSummarize(t *testing.T) {
	results := Compare(comparisonFixture(), ProcessPSC, "PP2", 402, "")
	s := Summarize(results)
	if s.Aprovados != 2 {
		t.Errorf("Expected 2 approved, got %d", s.Aprovados)
	}
	// Medicina misses by 68.5 points, beyond the near-miss band.
	if s.QuaseLa != 0 {
		t.Errorf("Expected 0 near misses, got %d", s.QuaseLa)
	}
	if s.PrecisaMelhorar != 1 {
		t.Errorf("Expected 1 needs-improvement, got %d", s.PrecisaMelhorar)
	}
	// SemCorte courses stay out of the statistics.
	if s.MediaCorte != 420.833 {
		t.Errorf("Expected mean cutoff 420.833, got %v", s.MediaCorte)
	}
	if s.MedianaCorte != 402.0 {
		t.Errorf("Expected median cutoff 402, got %v", s.MedianaCorte)
	}
}

func TestSummarizeNearMiss(t *testing.T) {
	results := Compare(comparisonFixture(), ProcessPSC, "PP2", 430, "Medicina")
	s := Summarize(results)
	if s.QuaseLa != 1 {
		t.Errorf("Expected a 40.5 point miss to count as near miss, got %+v", s)
	}
}
