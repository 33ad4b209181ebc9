package vestibular

import "testing"

func TestDetermineQuotaPSC(t *testing.T) {
	tests := []struct {
		name     string
		answers  Answers
		expected string
	}{
		{"private school yields ample competition", Answers{}, "AC"},
		{"public school alone", Answers{EscolaPublica: true}, "NDC2"},
		{"public school low income", Answers{EscolaPublica: true, BaixaRenda: true}, "NDC1"},
		{"public school black student", Answers{EscolaPublica: true, Preto: true}, "PP2"},
		{"public school black low income", Answers{EscolaPublica: true, Preto: true, BaixaRenda: true}, "PP1"},
		{"indigenous before racial quota", Answers{EscolaPublica: true, Indigena: true}, "IND2"},
		{"quilombola low income", Answers{EscolaPublica: true, Quilombola: true, BaixaRenda: true}, "QLB1"},
		{"pcd outranks everything else", Answers{EscolaPublica: true, PCD: true, Preto: true, Indigena: true}, "PCD2"},
		{"black student from private school", Answers{Preto: true}, "AC"},
	}
	for _, test := range tests {
		if got := DetermineQuota(ProcessPSC, test.answers); got != test.expected {
			t.Errorf("%s: expected %q, got %q", test.name, test.expected, got)
		}
	}
}

func TestDetermineQuotaMACRO(t *testing.T) {
	tests := []struct {
		name     string
		answers  Answers
		expected string
	}{
		{"interior outranks all", Answers{ResideAM: true, InteriorAM: true, PCD: true, Preto: true}, "Interior AM"},
		{"diploma holder", Answers{PortadorDiploma: true, Preto: true}, "Portador de Diploma"},
		{"pcd in amazonas", Answers{PCD: true, ResideAM: true}, "PCD AM"},
		{"pcd elsewhere", Answers{PCD: true}, "PCD"},
		{"black student in amazonas", Answers{Preto: true, ResideAM: true}, "Pessoas Pretas AM"},
		{"public school outside amazonas", Answers{EscolaPublica: true}, "Escola Pública Brasil"},
		{"no quota in amazonas", Answers{ResideAM: true}, "Qualquer Natureza AM"},
		{"no quota elsewhere", Answers{}, "Qualquer Natureza Brasil"},
	}
	for _, test := range tests {
		if got := DetermineQuota(ProcessMACRO, test.answers); got != test.expected {
			t.Errorf("%s: expected %q, got %q", test.name, test.expected, got)
		}
	}
}

func TestDetermineQuotaSIS(t *testing.T) {
	tests := []struct {
		name     string
		answers  Answers
		expected string
	}{
		{"interior group", Answers{ResideAM: true, InteriorAM: true}, "GRUPO K"},
		{"indigenous in amazonas", Answers{ResideAM: true, Indigena: true}, "GRUPO A"},
		{"public school in amazonas", Answers{ResideAM: true, EscolaPublica: true}, "GRUPO D"},
		{"ample competition in amazonas", Answers{ResideAM: true}, "GRUPO E"},
		{"indigenous from another state", Answers{Indigena: true}, "GRUPO F"},
		{"ample competition from another state", Answers{}, "GRUPO J"},
	}
	for _, test := range tests {
		if got := DetermineQuota(ProcessSIS, test.answers); got != test.expected {
			t.Errorf("%s: expected %q, got %q", test.name, test.expected, got)
		}
	}
}

func TestDetermineQuotaENEM(t *testing.T) {
	tests := []struct {
		answers  Answers
		expected string
	}{
		{Answers{PCD: true, Preto: true}, "PCD"},
		{Answers{Preto: true}, "PPI"},
		{Answers{Indigena: true}, "PPI"},
		{Answers{EscolaPublica: true}, "Escola Pública"},
		{Answers{}, "AC"},
	}
	for _, test := range tests {
		if got := DetermineQuota(ProcessENEM, test.answers); got != test.expected {
			t.Errorf("Expected %q for %+v, got %q", test.expected, test.answers, got)
		}
	}
}

// Every reachable label must be a known label with a description, for every
// combination of answers. Nine booleans means the whole input space is small
// enough to enumerate.
func TestDetermineQuotaCodomain(t *testing.T) {
	for _, p := range Processes {
		known := map[string]bool{}
		for _, l := range QuotaLabels(p) {
			known[l] = true
		}
		for mask := 0; mask < 1<<9; mask++ {
			a := Answers{
				EscolaPublica:   mask&1 != 0,
				BaixaRenda:      mask&2 != 0,
				Preto:           mask&4 != 0,
				Indigena:        mask&8 != 0,
				Quilombola:      mask&16 != 0,
				PCD:             mask&32 != 0,
				ResideAM:        mask&64 != 0,
				InteriorAM:      mask&128 != 0,
				PortadorDiploma: mask&256 != 0,
			}
			got := DetermineQuota(p, a)
			if !known[got] {
				t.Fatalf("%s: label %q for %+v is not in QuotaLabels", p, got, a)
			}
			if QuotaDescriptions[got] == "" {
				t.Fatalf("%s: label %q has no description", p, got)
			}
			if again := DetermineQuota(p, a); again != got {
				t.Fatalf("%s: DetermineQuota not deterministic for %+v", p, a)
			}
		}
	}
}
