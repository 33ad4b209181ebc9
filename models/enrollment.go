package models

// Enrollment is the public enrollment form payload. Field names follow the
// downstream automation webhook contract.
type Enrollment struct {
	NomeAluno           string `json:"nome_aluno"`
	CPFAluno            string `json:"cpf_aluno"`
	DataNascimentoAluno string `json:"data_nascimento_aluno"`
	WhatsappAluno       string `json:"whatsapp_aluno"`
	EmailAluno          string `json:"email_aluno"`
	Endereco            string `json:"endereco"`
	Bairro              string `json:"bairro"`
	Cidade              string `json:"cidade"`
	CEP                 string `json:"cep"`

	NomeResponsavel     string `json:"nome_responsavel"`
	CPFResponsavel      string `json:"cpf_responsavel"`
	WhatsappResponsavel string `json:"whatsapp_responsavel"`

	TurmaDesejada string `json:"turma_desejada"`
	Observacoes   string `json:"observacoes,omitempty"`

	PlanoPagamento        string  `json:"plano_pagamento"`
	NumeroParcelas        int     `json:"numero_parcelas"`
	ValorParcela          float64 `json:"valor_parcela"`
	ValorTotal            float64 `json:"valor_total"`
	DataPrimeiroPagamento string  `json:"data_primeiro_pagamento,omitempty"`
}
