package vestibular

// Answers holds the self-reported demographic and economic facts that drive
// quota determination. All fields are independent booleans; the precedence
// between them lives in the per-process rule lists, not here.
type Answers struct {
	EscolaPublica   bool `json:"escola_publica"`
	BaixaRenda      bool `json:"baixa_renda"`
	Preto           bool `json:"preto"`
	Indigena        bool `json:"indigena"`
	Quilombola      bool `json:"quilombola"`
	PCD             bool `json:"pcd"`
	ResideAM        bool `json:"reside_am"`
	InteriorAM      bool `json:"interior_am"`
	PortadorDiploma bool `json:"portador_diploma"`
}

// quotaRule is one entry of an ordered decision list. The first rule whose
// predicate holds wins. whenLow/whenHigh select the label by the low-income
// flag; rules that do not split on income carry the same label twice.
type quotaRule struct {
	when func(Answers) bool
	low  string
	high string
}

func (r quotaRule) label(a Answers) string {
	if a.BaixaRenda {
		return r.low
	}
	return r.high
}

var pscRules = []quotaRule{
	{when: func(a Answers) bool { return a.EscolaPublica && a.PCD }, low: "PCD1", high: "PCD2"},
	{when: func(a Answers) bool { return a.EscolaPublica && a.Indigena }, low: "IND1", high: "IND2"},
	{when: func(a Answers) bool { return a.EscolaPublica && a.Quilombola }, low: "QLB1", high: "QLB2"},
	{when: func(a Answers) bool { return a.EscolaPublica && (a.Preto || a.Indigena) }, low: "PP1", high: "PP2"},
	{when: func(a Answers) bool { return a.EscolaPublica }, low: "NDC1", high: "NDC2"},
}

var macroRules = []quotaRule{
	{when: func(a Answers) bool { return a.ResideAM && a.InteriorAM }, low: "Interior AM", high: "Interior AM"},
	{when: func(a Answers) bool { return a.PortadorDiploma }, low: "Portador de Diploma", high: "Portador de Diploma"},
	{when: func(a Answers) bool { return a.PCD && a.ResideAM }, low: "PCD AM", high: "PCD AM"},
	{when: func(a Answers) bool { return a.PCD }, low: "PCD", high: "PCD"},
	{when: func(a Answers) bool { return a.Indigena && a.ResideAM }, low: "Pessoas Indígenas AM", high: "Pessoas Indígenas AM"},
	{when: func(a Answers) bool { return a.Indigena }, low: "Pessoas Indígenas", high: "Pessoas Indígenas"},
	{when: func(a Answers) bool { return a.Preto && a.ResideAM }, low: "Pessoas Pretas AM", high: "Pessoas Pretas AM"},
	{when: func(a Answers) bool { return a.Preto }, low: "Pessoas Pretas", high: "Pessoas Pretas"},
	{when: func(a Answers) bool { return a.EscolaPublica && a.ResideAM }, low: "Escola Pública AM", high: "Escola Pública AM"},
	{when: func(a Answers) bool { return a.EscolaPublica }, low: "Escola Pública Brasil", high: "Escola Pública Brasil"},
	{when: func(a Answers) bool { return a.ResideAM }, low: "Qualquer Natureza AM", high: "Qualquer Natureza AM"},
}

var sisRules = []quotaRule{
	{when: func(a Answers) bool { return a.ResideAM && a.InteriorAM }, low: "GRUPO K", high: "GRUPO K"},
	{when: func(a Answers) bool { return a.ResideAM && a.Indigena }, low: "GRUPO A", high: "GRUPO A"},
	{when: func(a Answers) bool { return a.ResideAM && a.Preto }, low: "GRUPO B", high: "GRUPO B"},
	{when: func(a Answers) bool { return a.ResideAM && a.PCD }, low: "GRUPO C", high: "GRUPO C"},
	{when: func(a Answers) bool { return a.ResideAM && a.EscolaPublica }, low: "GRUPO D", high: "GRUPO D"},
	{when: func(a Answers) bool { return a.ResideAM }, low: "GRUPO E", high: "GRUPO E"},
	{when: func(a Answers) bool { return a.Indigena }, low: "GRUPO F", high: "GRUPO F"},
	{when: func(a Answers) bool { return a.Preto }, low: "GRUPO G", high: "GRUPO G"},
	{when: func(a Answers) bool { return a.PCD }, low: "GRUPO H", high: "GRUPO H"},
	{when: func(a Answers) bool { return a.EscolaPublica }, low: "GRUPO I", high: "GRUPO I"},
}

var enemRules = []quotaRule{
	{when: func(a Answers) bool { return a.PCD }, low: "PCD", high: "PCD"},
	{when: func(a Answers) bool { return a.Preto || a.Indigena }, low: "PPI", high: "PPI"},
	{when: func(a Answers) bool { return a.EscolaPublica }, low: "Escola Pública", high: "Escola Pública"},
}

var rulesByProcess = map[Process][]quotaRule{
	ProcessPSC:   pscRules,
	ProcessMACRO: macroRules,
	ProcessSIS:   sisRules,
	ProcessENEM:  enemRules,
}

var fallbackByProcess = map[Process]string{
	ProcessPSC:   "AC",
	ProcessMACRO: "Qualquer Natureza Brasil",
	ProcessSIS:   "GRUPO J",
	ProcessENEM:  "AC",
}

// DetermineQuota maps the answers to exactly one quota label for the process.
// An unmatched combination always falls through to the process's
// ample-competition label; there is no error path.
func DetermineQuota(p Process, a Answers) string {
	for _, rule := range rulesByProcess[p] {
		if rule.when(a) {
			return rule.label(a)
		}
	}
	return fallbackByProcess[p]
}

// QuotaLabels returns every label DetermineQuota can produce for the process,
// fallback included.
func QuotaLabels(p Process) []string {
	seen := map[string]bool{}
	var labels []string
	add := func(l string) {
		if !seen[l] {
			seen[l] = true
			labels = append(labels, l)
		}
	}
	for _, rule := range rulesByProcess[p] {
		add(rule.low)
		add(rule.high)
	}
	add(fallbackByProcess[p])
	return labels
}

// QuotaDescriptions maps quota labels to the human explanation shown next to
// the determined quota.
var QuotaDescriptions = map[string]string{
	"AC":   "Ampla Concorrência",
	"PP1":  "Escola Pública + PPI + Baixa Renda",
	"PP2":  "Escola Pública + PPI",
	"IND1": "Escola Pública + Indígena + Baixa Renda",
	"IND2": "Escola Pública + Indígena",
	"QLB1": "Escola Pública + Quilombola + Baixa Renda",
	"QLB2": "Escola Pública + Quilombola",
	"PCD1": "Escola Pública + PCD + Baixa Renda",
	"PCD2": "Escola Pública + PCD",
	"NDC1": "Escola Pública + Baixa Renda",
	"NDC2": "Escola Pública",

	"Interior AM":              "Estudantes do Interior do Amazonas",
	"Portador de Diploma":      "Portador de Diploma de Curso Superior",
	"PCD AM":                   "Pessoa com Deficiência residente no Amazonas",
	"PCD":                      "Pessoa com Deficiência",
	"Pessoas Indígenas AM":     "Pessoas Indígenas residentes no Amazonas",
	"Pessoas Indígenas":        "Pessoas Indígenas",
	"Pessoas Pretas AM":        "Pessoas Pretas residentes no Amazonas",
	"Pessoas Pretas":           "Pessoas Pretas",
	"Escola Pública AM":        "Estudantes de Escola Pública do Amazonas",
	"Escola Pública Brasil":    "Estudantes de Escola Pública",
	"Escola Pública":           "Estudantes de Escola Pública",
	"Qualquer Natureza AM":     "Escola de Qualquer Natureza, Amazonas",
	"Qualquer Natureza Brasil": "Escola de Qualquer Natureza",
	"PPI":                      "Pretos, Pardos e Indígenas",

	"GRUPO A": "Indígenas residentes no Amazonas",
	"GRUPO B": "Pessoas Pretas residentes no Amazonas",
	"GRUPO C": "PCD residentes no Amazonas",
	"GRUPO D": "Escola Pública, residentes no Amazonas",
	"GRUPO E": "Ampla concorrência, residentes no Amazonas",
	"GRUPO F": "Indígenas de outros estados",
	"GRUPO G": "Pessoas Pretas de outros estados",
	"GRUPO H": "PCD de outros estados",
	"GRUPO I": "Escola Pública de outros estados",
	"GRUPO J": "Ampla concorrência de outros estados",
	"GRUPO K": "Estudantes do interior do Amazonas",
}
