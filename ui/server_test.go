package ui

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/yvensrabelo/entropia-site-2-sub000/domain/vestibular"
	"github.com/yvensrabelo/entropia-site-2-sub000/internal"
	"github.com/yvensrabelo/entropia-site-2-sub000/internal/config"
	apperrors "github.com/yvensrabelo/entropia-site-2-sub000/internal/errors"
	"github.com/yvensrabelo/entropia-site-2-sub000/models"

	"github.com/google/uuid"
)

type fakeNotifier struct {
	delivered []*models.Enrollment
	fail      bool
}

func (f *fakeNotifier) NotifyEnrollment(_ context.Context, e *models.Enrollment) error {
	if f.fail {
		return apperrors.ExternalServiceError("webhook", nil)
	}
	f.delivered = append(f.delivered, e)
	return nil
}

type fakeDescriptorRepo struct {
	upserted []*models.Descriptor
	listed   []*models.Descriptor
	topics   []*models.Topic
}

func (f *fakeDescriptorRepo) UpsertDescriptor(_ context.Context, d *models.Descriptor) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	f.upserted = append(f.upserted, d)
	return nil
}

func (f *fakeDescriptorRepo) GetDescriptorByID(_ context.Context, id uuid.UUID) (*models.Descriptor, error) {
	for _, d := range f.upserted {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, apperrors.NotFound("descritor")
}

func (f *fakeDescriptorRepo) ListDescriptors(context.Context, models.DescriptorFilter) ([]*models.Descriptor, error) {
	return f.listed, nil
}

func (f *fakeDescriptorRepo) DeleteDescriptor(_ context.Context, id uuid.UUID) error {
	for i, d := range f.upserted {
		if d.ID == id {
			f.upserted = append(f.upserted[:i], f.upserted[i+1:]...)
			return nil
		}
	}
	return apperrors.NotFound("descritor")
}

func (f *fakeDescriptorRepo) CreateTopic(_ context.Context, topic *models.Topic) error {
	f.topics = append(f.topics, topic)
	return nil
}

func (f *fakeDescriptorRepo) ListTopics(_ context.Context, materiaID uuid.UUID) ([]*models.Topic, error) {
	var out []*models.Topic
	for _, topic := range f.topics {
		if topic.MateriaID == materiaID {
			out = append(out, topic)
		}
	}
	return out, nil
}

func testServer(t *testing.T, notifier *fakeNotifier, descriptors *fakeDescriptorRepo) *Server {
	t.Helper()
	cutoffs, err := vestibular.LoadTable()
	if err != nil {
		t.Fatalf("LoadTable failed: %v", err)
	}
	cfg := &config.Config{}
	cfg.Server.Port = "0"
	cfg.Server.GinMode = "test"
	if notifier == nil {
		notifier = &fakeNotifier{}
	}
	if descriptors == nil {
		descriptors = &fakeDescriptorRepo{}
	}
	return NewServer(cfg, cutoffs, descriptors, newMemScheduleRepo(), newMemTeacherRepo(), notifier,
		internal.NewLogger(internal.LogLevelError))
}

func postJSON(t *testing.T, s *Server, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func TestHandleComputeScore(t *testing.T) {
	s := testServer(t, nil, nil)
	rec := postJSON(t, s, "/api/calculadora/nota", map[string]interface{}{
		"processo": "PSC",
		"notas":    map[string]float64{"PSC 1": 40, "PSC 2": 40, "PSC 3": 40, "Redação": 7},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Nota float64 `json:"nota_final"`
	}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Nota != 402.0 {
		t.Errorf("Expected composite 402, got %v", resp.Nota)
	}
}

func TestHandleComputeScoreUnknownProcess(t *testing.T) {
	s := testServer(t, nil, nil)
	rec := postJSON(t, s, "/api/calculadora/nota", map[string]interface{}{
		"processo": "FUVEST",
		"notas":    map[string]float64{},
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for unknown process, got %d", rec.Code)
	}
}

func TestHandleDetermineQuota(t *testing.T) {
	s := testServer(t, nil, nil)
	rec := postJSON(t, s, "/api/calculadora/cota", map[string]interface{}{
		"processo": "PSC",
		"respostas": map[string]bool{
			"escola_publica": true,
			"preto":          true,
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Cota      string `json:"cota"`
		Descricao string `json:"descricao"`
	}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Cota != "PP2" {
		t.Errorf("Expected quota PP2, got %q", resp.Cota)
	}
	if resp.Descricao == "" {
		t.Error("Expected a quota description")
	}
}

func TestHandleCompare(t *testing.T) {
	s := testServer(t, nil, nil)
	rec := postJSON(t, s, "/api/calculadora/comparar", map[string]interface{}{
		"processo": "PSC",
		"notas":    map[string]float64{"PSC 1": 50, "PSC 2": 50, "PSC 3": 50, "Redação": 9},
		"respostas": map[string]bool{
			"escola_publica": true,
			"preto":          true,
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Nota       float64             `json:"nota_final"`
		Cota       string              `json:"cota"`
		Resultados []vestibular.Result `json:"resultados"`
		Resumo     vestibular.Summary  `json:"resumo"`
	}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Nota != 504.0 {
		t.Errorf("Expected composite 504, got %v", resp.Nota)
	}
	if resp.Cota != "PP2" {
		t.Errorf("Expected quota PP2, got %q", resp.Cota)
	}
	if len(resp.Resultados) == 0 {
		t.Fatal("Expected comparison results against the dataset")
	}
	// 504 beats every PSC cutoff in the dataset.
	if resp.Resumo.Aprovados != len(resp.Resultados) {
		t.Errorf("Expected all courses approved at 504, got %+v", resp.Resumo)
	}
	// Passed courses come sorted by cutoff descending.
	for i := 1; i < len(resp.Resultados); i++ {
		if resp.Resultados[i].NotaCorte > resp.Resultados[i-1].NotaCorte {
			t.Errorf("Results out of order at %d", i)
			break
		}
	}
}

func TestHandleListProcesses(t *testing.T) {
	s := testServer(t, nil, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/calculadora/processos", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var resp struct {
		Processos []struct {
			Processo string   `json:"processo"`
			NotaMax  float64  `json:"nota_maxima"`
			Cotas    []string `json:"cotas"`
		} `json:"processos"`
	}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if len(resp.Processos) != 4 {
		t.Fatalf("Expected 4 processes, got %d", len(resp.Processos))
	}
	if resp.Processos[0].Processo != "PSC" || resp.Processos[0].NotaMax != 540 {
		t.Errorf("Unexpected first process: %+v", resp.Processos[0])
	}
}

func TestHandleEnrollment(t *testing.T) {
	notifier := &fakeNotifier{}
	s := testServer(t, notifier, nil)
	rec := postJSON(t, s, "/api/matricula", map[string]interface{}{
		"nome_aluno":      "Ana Beatriz Souza",
		"cpf_aluno":       "52998224725",
		"whatsapp_aluno":  "92999991234",
		"turma_desejada":  "PSC M1",
		"plano_pagamento": "mensal",
		"numero_parcelas": 12,
		"valor_parcela":   250.0,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(notifier.delivered) != 1 {
		t.Fatalf("Expected 1 delivery, got %d", len(notifier.delivered))
	}
	if notifier.delivered[0].CPFAluno != "529.982.247-25" {
		t.Errorf("Expected formatted CPF forwarded, got %q", notifier.delivered[0].CPFAluno)
	}
	if notifier.delivered[0].ValorTotal != 3000.0 {
		t.Errorf("Expected computed total 3000, got %v", notifier.delivered[0].ValorTotal)
	}
}

func TestHandleEnrollmentMissingPaymentPlan(t *testing.T) {
	notifier := &fakeNotifier{}
	s := testServer(t, notifier, nil)
	rec := postJSON(t, s, "/api/matricula", map[string]interface{}{
		"nome_aluno":     "Ana Beatriz Souza",
		"cpf_aluno":      "52998224725",
		"whatsapp_aluno": "92999991234",
		"turma_desejada": "PSC M1",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 without payment plan, got %d", rec.Code)
	}
	if len(notifier.delivered) != 0 {
		t.Error("Enrollment without payment plan must not reach the webhook")
	}
}

func TestHandleEnrollmentInvalid(t *testing.T) {
	notifier := &fakeNotifier{}
	s := testServer(t, notifier, nil)
	rec := postJSON(t, s, "/api/matricula", map[string]string{
		"nome_aluno":     "A",
		"cpf_aluno":      "11111111111",
		"whatsapp_aluno": "1",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", rec.Code)
	}
	if len(notifier.delivered) != 0 {
		t.Error("Invalid enrollment must not reach the webhook")
	}
}

func TestHandleEnrollmentWebhookDown(t *testing.T) {
	s := testServer(t, &fakeNotifier{fail: true}, nil)
	rec := postJSON(t, s, "/api/matricula", map[string]interface{}{
		"nome_aluno":      "Ana Beatriz Souza",
		"cpf_aluno":       "52998224725",
		"whatsapp_aluno":  "92999991234",
		"turma_desejada":  "PSC M1",
		"plano_pagamento": "mensal",
	})
	if rec.Code != http.StatusBadGateway {
		t.Errorf("Expected 502 when webhook is down, got %d", rec.Code)
	}
}
