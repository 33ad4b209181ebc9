package importer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/yvensrabelo/entropia-site-2-sub000/internal"
	"github.com/yvensrabelo/entropia-site-2-sub000/internal/errors"
	"github.com/yvensrabelo/entropia-site-2-sub000/internal/validation"
	"github.com/yvensrabelo/entropia-site-2-sub000/models"
	"github.com/yvensrabelo/entropia-site-2-sub000/ports"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"
)

// Service runs spreadsheet imports. A weighted semaphore keeps concurrent
// imports below the configured cap so a pair of big uploads cannot starve
// the API connection pool.
type Service struct {
	students ports.StudentRepository
	turmas   ports.ClassGroupRepository
	teachers ports.TeacherRepository
	schedule ports.ScheduleRepository
	sem      *semaphore.Weighted
	logger   *internal.Logger
}

// NewService wires the import service.
func NewService(
	students ports.StudentRepository,
	turmas ports.ClassGroupRepository,
	teachers ports.TeacherRepository,
	schedule ports.ScheduleRepository,
	maxConcurrent int,
	logger *internal.Logger,
) *Service {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &Service{
		students: students,
		turmas:   turmas,
		teachers: teachers,
		schedule: schedule,
		sem:      semaphore.NewWeighted(int64(maxConcurrent)),
		logger:   logger,
	}
}

// StudentImportReport is returned by both preview and commit runs.
type StudentImportReport struct {
	Total      int         `json:"total"`
	Importados int         `json:"importados"`
	Invalidos  int         `json:"invalidos"`
	Duplicados int         `json:"duplicados"`
	Rows       []RowReport `json:"rows"`
}

// RowReport is the per-row outcome shown to the operator.
type RowReport struct {
	Linha    int      `json:"linha"`
	Nome     string   `json:"nome,omitempty"`
	CPF      string   `json:"cpf,omitempty"`
	Status   string   `json:"status"` // "ok", "erro", "duplicado"
	Erros    []string `json:"erros,omitempty"`
	Avisos   []string `json:"avisos,omitempty"`
	Inserido bool     `json:"inserido"`
}

// ImportStudents parses and validates the upload. With preview true nothing
// is written; otherwise valid rows are inserted one by one, and with partial
// false the run halts at the first database error.
func (s *Service) ImportStudents(ctx context.Context, rows [][]string, preview, partial bool) (*StudentImportReport, error) {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return nil, errors.Wrap(err, "import slot unavailable")
	}
	defer s.sem.Release(1)

	if len(rows) < 2 {
		return nil, errors.ValidationError("Planilha deve conter cabeçalho e ao menos uma linha")
	}

	headers := MapHeaders(rows[0])
	if !hasRequiredColumns(headers) {
		return nil, errors.ValidationError("Planilha deve conter as colunas nome e cpf")
	}

	report := &StudentImportReport{}
	now := time.Now()

	var results []RowResult
	var cpfs []string
	for i := 1; i < len(rows); i++ {
		result := ParseStudentRow(headers, rows[i], i+1, now)
		results = append(results, result)
		if result.Ok() {
			cpfs = append(cpfs, result.Record.CPF)
		}
	}
	report.Total = len(results)

	existing, err := s.students.ExistingCPFs(ctx, cpfs)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check existing CPFs")
	}

	for _, result := range results {
		row := RowReport{Linha: result.Line, Avisos: result.Warnings}
		if result.Record != nil {
			row.Nome = result.Record.Nome
			row.CPF = validation.FormatCPF(result.Record.CPF)
		}

		switch {
		case !result.Ok():
			row.Status = "erro"
			row.Erros = result.Errors
			report.Invalidos++
		case existing[result.Record.CPF]:
			row.Status = "duplicado"
			report.Duplicados++
		case preview:
			row.Status = "ok"
			report.Importados++
		default:
			if err := s.insertStudent(ctx, result.Record); err != nil {
				row.Status = "erro"
				row.Erros = append(row.Erros, err.Error())
				report.Invalidos++
				if !partial {
					report.Rows = append(report.Rows, row)
					s.logger.Warn("student import halted at line %d: %v", result.Line, err)
					return report, nil
				}
			} else {
				row.Status = "ok"
				row.Inserido = true
				report.Importados++
			}
		}
		report.Rows = append(report.Rows, row)
	}

	s.logger.Info("student import finished: %d rows, %d imported, %d invalid, %d duplicate (preview=%v)",
		report.Total, report.Importados, report.Invalidos, report.Duplicados, preview)
	return report, nil
}

func hasRequiredColumns(headers []string) bool {
	var hasNome, hasCPF bool
	for _, h := range headers {
		switch h {
		case "nome":
			hasNome = true
		case "cpf":
			hasCPF = true
		}
	}
	return hasNome && hasCPF
}

func (s *Service) insertStudent(ctx context.Context, rec *StudentRecord) error {
	student := &models.Student{
		ID:                  uuid.New(),
		Nome:                rec.Nome,
		CPF:                 rec.CPF,
		Telefone:            rec.Telefone,
		Email:               rec.Email,
		Endereco:            rec.Endereco,
		Bairro:              rec.Bairro,
		Cidade:              rec.Cidade,
		Estado:              rec.Estado,
		CEP:                 rec.CEP,
		NomeResponsavel:     rec.NomeResponsavel,
		TelefoneResponsavel: rec.TelefoneResponsavel,
		Ativo:               true,
	}
	if rec.DataNascimento != "" {
		if birth, err := validation.ParseDate(rec.DataNascimento); err == nil {
			student.DataNascimento = &birth
		}
	}
	if rec.Turma != "" {
		turma, err := s.turmas.GetClassGroupByName(ctx, rec.Turma)
		if err == nil && turma != nil {
			student.TurmaID = &turma.ID
		}
	}
	if err := s.students.CreateStudent(ctx, student); err != nil {
		return errors.TranslatePG(err)
	}
	return nil
}

// ScheduleImportReport summarizes a schedule grid import.
type ScheduleImportReport struct {
	Turma     string               `json:"turma"`
	Total     int                  `json:"total"`
	Aplicados int                  `json:"aplicados"`
	Problemas []string             `json:"problemas,omitempty"`
	Slots     []ScheduleSlotRecord `json:"slots"`
}

// ImportSchedule parses a weekly grid and, unless previewing, replaces the
// class group's slots atomically with the parsed ones.
func (s *Service) ImportSchedule(ctx context.Context, turmaNome string, rows [][]string, preview bool) (*ScheduleImportReport, error) {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return nil, errors.Wrap(err, "import slot unavailable")
	}
	defer s.sem.Release(1)

	turma, err := s.turmas.GetClassGroupByName(ctx, turmaNome)
	if err != nil {
		return nil, errors.NotFound(fmt.Sprintf("turma %s", turmaNome))
	}

	records, problems := ParseScheduleGrid(rows)
	report := &ScheduleImportReport{
		Turma:     turma.Nome,
		Total:     len(records),
		Problemas: problems,
		Slots:     records,
	}
	if len(records) == 0 {
		return report, nil
	}
	if preview {
		return report, nil
	}

	slots := make([]*models.ScheduleSlot, 0, len(records))
	for _, rec := range records {
		slot := &models.ScheduleSlot{
			ID:         uuid.New(),
			TurmaID:    turma.ID,
			DiaSemana:  rec.DiaSemana,
			Turno:      rec.Turno,
			Tempo:      rec.Tempo,
			HoraInicio: rec.HoraInicio,
			HoraFim:    rec.HoraFim,
		}
		materia, err := s.schedule.GetOrCreateSubject(ctx, rec.Materia)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to resolve subject %s", rec.Materia)
		}
		slot.MateriaID = &materia.ID
		if prof := s.resolveTeacher(ctx, rec.Professor); prof != nil {
			slot.ProfessorID = &prof.ID
		} else {
			report.Problemas = append(report.Problemas,
				fmt.Sprintf("Professor não cadastrado: %s", rec.Professor))
		}
		slots = append(slots, slot)
	}

	if err := s.schedule.ReplaceClassGroupSlots(ctx, turma.ID, slots); err != nil {
		return nil, errors.TranslatePG(err)
	}
	report.Aplicados = len(slots)
	s.logger.Info("schedule import applied %d slots to turma %s", len(slots), turma.Nome)
	return report, nil
}

// resolveTeacher matches a grid cell teacher name against the registry,
// first by exact name then by unambiguous first-name prefix.
func (s *Service) resolveTeacher(ctx context.Context, nome string) *models.Teacher {
	nome = strings.TrimSpace(nome)
	if nome == "" {
		return nil
	}
	teachers, err := s.teachers.ListTeachers(ctx)
	if err != nil {
		return nil
	}
	lower := strings.ToLower(nome)
	var prefix *models.Teacher
	prefixCount := 0
	for _, t := range teachers {
		candidate := strings.ToLower(t.Nome)
		if candidate == lower {
			return t
		}
		if strings.HasPrefix(candidate, lower) {
			prefix = t
			prefixCount++
		}
	}
	if prefixCount == 1 {
		return prefix
	}
	return nil
}
