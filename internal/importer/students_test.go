package importer

import (
	"strings"
	"testing"
	"time"
)

var importNow = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

func TestMapHeaders(t *testing.T) {
	headers := MapHeaders([]string{"Nome Completo", "CPF", "Data de Nascimento", "WhatsApp", "Coluna Misteriosa", "UF"})
	expected := []string{"nome", "cpf", "data_nascimento", "telefone", "", "estado"}
	for i := range expected {
		if headers[i] != expected[i] {
			t.Errorf("Column %d: expected %q, got %q", i, expected[i], headers[i])
		}
	}
}

func TestParseStudentRowValid(t *testing.T) {
	headers := MapHeaders([]string{"nome", "cpf", "data de nascimento", "telefone", "email"})
	row := []string{"Ana Beatriz Souza", "529.982.247-25", "2008-03-15", "(92) 99999-1234", "ana@escola.com"}
	result := ParseStudentRow(headers, row, 2, importNow)
	if !result.Ok() {
		t.Fatalf("Expected valid row, got errors %v", result.Errors)
	}
	rec := result.Record
	if rec.CPF != "52998224725" {
		t.Errorf("Expected bare CPF, got %q", rec.CPF)
	}
	if rec.DataNascimento != "15/03/2008" {
		t.Errorf("Expected normalized birth date, got %q", rec.DataNascimento)
	}
	if rec.Telefone != "92999991234" {
		t.Errorf("Expected cleaned phone, got %q", rec.Telefone)
	}
}

func TestParseStudentRowCollectsAllErrors(t *testing.T) {
	headers := MapHeaders([]string{"nome", "cpf", "data de nascimento"})
	result := ParseStudentRow(headers, []string{"Jo", "11111111111", "texto"}, 3, importNow)
	if result.Ok() {
		t.Fatal("Expected invalid row")
	}
	if result.Record != nil {
		t.Error("An invalid row must not carry a partial record")
	}
	if len(result.Errors) != 3 {
		t.Errorf("Expected name, CPF and date errors, got %v", result.Errors)
	}
}

func TestParseStudentRowAgeWindow(t *testing.T) {
	headers := MapHeaders([]string{"nome", "cpf", "data de nascimento", "responsavel"})
	// Ten years old, below the accepted range.
	result := ParseStudentRow(headers, []string{"Caio Lima", "52998224725", "01/01/2016", "Maria Lima"}, 2, importNow)
	if result.Ok() {
		t.Error("Expected under-12 student rejected")
	}
}

func TestParseStudentRowMinorNeedsGuardian(t *testing.T) {
	headers := MapHeaders([]string{"nome", "cpf", "data de nascimento", "responsavel"})
	minor := []string{"Caio Lima", "52998224725", "01/01/2010", ""}
	result := ParseStudentRow(headers, minor, 2, importNow)
	if result.Ok() {
		t.Fatal("Expected minor without guardian rejected")
	}
	found := false
	for _, e := range result.Errors {
		if strings.Contains(e, "responsável") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected guardian error, got %v", result.Errors)
	}

	minor[3] = "Maria Lima"
	if result := ParseStudentRow(headers, minor, 2, importNow); !result.Ok() {
		t.Errorf("Expected minor with guardian accepted, got %v", result.Errors)
	}
}

func TestParseStudentRowPlaceholders(t *testing.T) {
	headers := MapHeaders([]string{"nome", "cpf", "data de nascimento"})
	result := ParseStudentRow(headers, []string{"Ana Beatriz Souza", "52998224725", "15/03/2006"}, 2, importNow)
	if !result.Ok() {
		t.Fatalf("Expected valid row, got %v", result.Errors)
	}
	if result.Record.Telefone != "00000000000" {
		t.Errorf("Expected placeholder phone, got %q", result.Record.Telefone)
	}
	if !strings.Contains(result.Record.Email, "importado.local") {
		t.Errorf("Expected placeholder email, got %q", result.Record.Email)
	}
	if len(result.Warnings) < 2 {
		t.Errorf("Expected warnings for auto-filled fields, got %v", result.Warnings)
	}
}

func TestParseStudentRowShortRow(t *testing.T) {
	headers := MapHeaders([]string{"nome", "cpf", "data de nascimento", "email"})
	// Row shorter than the header must not panic; missing cells are empty.
	result := ParseStudentRow(headers, []string{"Ana Beatriz Souza", "52998224725"}, 2, importNow)
	if result.Ok() {
		t.Error("Expected missing birth date to invalidate the row")
	}
}
