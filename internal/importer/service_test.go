package importer

import (
	"context"
	"testing"

	"github.com/yvensrabelo/entropia-site-2-sub000/internal"
	"github.com/yvensrabelo/entropia-site-2-sub000/internal/errors"
	"github.com/yvensrabelo/entropia-site-2-sub000/models"

	"github.com/google/uuid"
)

type fakeStudentRepo struct {
	existing map[string]bool
	created  []*models.Student
	failCPF  string
}

func (f *fakeStudentRepo) CreateStudent(_ context.Context, s *models.Student) error {
	if s.CPF == f.failCPF {
		return errors.New(errors.CodeDuplicate, "CPF/Email já cadastrado")
	}
	f.created = append(f.created, s)
	return nil
}

func (f *fakeStudentRepo) GetStudentByID(context.Context, uuid.UUID) (*models.Student, error) {
	return nil, errors.NotFound("aluno")
}

func (f *fakeStudentRepo) GetStudentByCPF(context.Context, string) (*models.Student, error) {
	return nil, errors.NotFound("aluno")
}

func (f *fakeStudentRepo) ListStudents(context.Context, models.StudentFilter) ([]*models.Student, error) {
	return nil, nil
}

func (f *fakeStudentRepo) UpdateStudent(context.Context, *models.Student) error { return nil }
func (f *fakeStudentRepo) DeleteStudent(context.Context, uuid.UUID) error       { return nil }

func (f *fakeStudentRepo) ExistingCPFs(_ context.Context, cpfs []string) (map[string]bool, error) {
	out := map[string]bool{}
	for _, cpf := range cpfs {
		if f.existing[cpf] {
			out[cpf] = true
		}
	}
	return out, nil
}

type fakeClassGroupRepo struct {
	byName map[string]*models.ClassGroup
}

func (f *fakeClassGroupRepo) CreateClassGroup(context.Context, *models.ClassGroup) error { return nil }
func (f *fakeClassGroupRepo) GetClassGroupByID(context.Context, uuid.UUID) (*models.ClassGroup, error) {
	return nil, errors.NotFound("turma")
}

func (f *fakeClassGroupRepo) GetClassGroupByName(_ context.Context, nome string) (*models.ClassGroup, error) {
	if t, ok := f.byName[nome]; ok {
		return t, nil
	}
	return nil, errors.NotFound("turma")
}

func (f *fakeClassGroupRepo) ListClassGroups(context.Context, bool) ([]*models.ClassGroup, error) {
	return nil, nil
}
func (f *fakeClassGroupRepo) UpdateClassGroup(context.Context, *models.ClassGroup) error { return nil }
func (f *fakeClassGroupRepo) DeleteClassGroup(context.Context, uuid.UUID) error          { return nil }

type fakeTeacherRepo struct {
	teachers []*models.Teacher
}

func (f *fakeTeacherRepo) CreateTeacher(context.Context, *models.Teacher) error { return nil }
func (f *fakeTeacherRepo) GetTeacherByID(context.Context, uuid.UUID) (*models.Teacher, error) {
	return nil, errors.NotFound("professor")
}
func (f *fakeTeacherRepo) GetTeacherByCPF(context.Context, string) (*models.Teacher, error) {
	return nil, errors.NotFound("professor")
}
func (f *fakeTeacherRepo) GetTeacherByNumero(context.Context, int) (*models.Teacher, error) {
	return nil, errors.NotFound("professor")
}
func (f *fakeTeacherRepo) ListTeachers(context.Context) ([]*models.Teacher, error) {
	return f.teachers, nil
}
func (f *fakeTeacherRepo) UpdateTeacher(context.Context, *models.Teacher) error { return nil }
func (f *fakeTeacherRepo) DeleteTeacher(context.Context, uuid.UUID) error       { return nil }

type fakeScheduleRepo struct {
	replaced map[uuid.UUID][]*models.ScheduleSlot
	subjects map[string]*models.Subject
}

func (f *fakeScheduleRepo) CreateSlot(context.Context, *models.ScheduleSlot) error { return nil }
func (f *fakeScheduleRepo) GetSlotByID(context.Context, uuid.UUID) (*models.ScheduleSlot, error) {
	return nil, errors.NotFound("horário")
}
func (f *fakeScheduleRepo) ListSlots(context.Context, models.ScheduleFilter) ([]*models.ScheduleSlot, error) {
	return nil, nil
}
func (f *fakeScheduleRepo) UpdateSlot(context.Context, *models.ScheduleSlot) error { return nil }
func (f *fakeScheduleRepo) DeleteSlot(context.Context, uuid.UUID) error            { return nil }

func (f *fakeScheduleRepo) ReplaceClassGroupSlots(_ context.Context, turmaID uuid.UUID, slots []*models.ScheduleSlot) error {
	if f.replaced == nil {
		f.replaced = map[uuid.UUID][]*models.ScheduleSlot{}
	}
	f.replaced[turmaID] = slots
	return nil
}

func (f *fakeScheduleRepo) GetOrCreateSubject(_ context.Context, nome string) (*models.Subject, error) {
	if f.subjects == nil {
		f.subjects = map[string]*models.Subject{}
	}
	if s, ok := f.subjects[nome]; ok {
		return s, nil
	}
	s := &models.Subject{ID: uuid.New(), Nome: nome}
	f.subjects[nome] = s
	return s, nil
}

func newTestService(students *fakeStudentRepo, turmas *fakeClassGroupRepo, teachers *fakeTeacherRepo, schedule *fakeScheduleRepo) *Service {
	return NewService(students, turmas, teachers, schedule, 1, internal.NewLogger(internal.LogLevelError))
}

func studentRows() [][]string {
	return [][]string{
		{"Nome", "CPF", "Data de Nascimento", "Responsável"},
		{"Ana Beatriz Souza", "52998224725", "15/03/2006", ""},
		{"Jo", "11111111111", "hoje", ""},
		{"Bruno Almeida Lima", "15350946056", "20/05/2007", ""},
	}
}

func TestImportStudentsPreview(t *testing.T) {
	students := &fakeStudentRepo{existing: map[string]bool{"15350946056": true}}
	svc := newTestService(students, &fakeClassGroupRepo{}, &fakeTeacherRepo{}, &fakeScheduleRepo{})

	report, err := svc.ImportStudents(context.Background(), studentRows(), true, true)
	if err != nil {
		t.Fatalf("ImportStudents failed: %v", err)
	}
	if report.Total != 3 || report.Importados != 1 || report.Invalidos != 1 || report.Duplicados != 1 {
		t.Errorf("Unexpected report: %+v", report)
	}
	if len(students.created) != 0 {
		t.Error("Preview must not write to the database")
	}
}

func TestImportStudentsCommit(t *testing.T) {
	students := &fakeStudentRepo{}
	svc := newTestService(students, &fakeClassGroupRepo{}, &fakeTeacherRepo{}, &fakeScheduleRepo{})

	report, err := svc.ImportStudents(context.Background(), studentRows(), false, true)
	if err != nil {
		t.Fatalf("ImportStudents failed: %v", err)
	}
	if report.Importados != 2 {
		t.Errorf("Expected 2 inserted, got %d", report.Importados)
	}
	if len(students.created) != 2 {
		t.Fatalf("Expected 2 repository writes, got %d", len(students.created))
	}
	if students.created[0].CPF != "52998224725" {
		t.Errorf("Unexpected first insert: %+v", students.created[0])
	}
	if !students.created[0].Ativo {
		t.Error("Imported students must start active")
	}
}

func TestImportStudentsHaltsWithoutPartial(t *testing.T) {
	students := &fakeStudentRepo{failCPF: "52998224725"}
	svc := newTestService(students, &fakeClassGroupRepo{}, &fakeTeacherRepo{}, &fakeScheduleRepo{})

	report, err := svc.ImportStudents(context.Background(), studentRows(), false, false)
	if err != nil {
		t.Fatalf("ImportStudents failed: %v", err)
	}
	// The failing row is the first valid one, so the run stops there.
	if len(report.Rows) != 1 {
		t.Errorf("Expected halt after first database error, got %d rows", len(report.Rows))
	}
	if len(students.created) != 0 {
		t.Errorf("Expected no inserts after failure, got %d", len(students.created))
	}
}

func TestImportStudentsRejectsMissingColumns(t *testing.T) {
	svc := newTestService(&fakeStudentRepo{}, &fakeClassGroupRepo{}, &fakeTeacherRepo{}, &fakeScheduleRepo{})
	_, err := svc.ImportStudents(context.Background(), [][]string{
		{"Telefone", "Email"},
		{"92999991234", "a@b.com"},
	}, true, true)
	if err == nil {
		t.Error("Expected error for sheet without nome/cpf columns")
	}
}

func TestImportSchedule(t *testing.T) {
	turmaID := uuid.New()
	turmas := &fakeClassGroupRepo{byName: map[string]*models.ClassGroup{
		"PSC M1": {ID: turmaID, Nome: "PSC M1", Turno: "manhã"},
	}}
	teachers := &fakeTeacherRepo{teachers: []*models.Teacher{
		{ID: uuid.New(), Nome: "Rafael Santos"},
		{ID: uuid.New(), Nome: "Julia Prado"},
	}}
	schedule := &fakeScheduleRepo{}
	svc := newTestService(&fakeStudentRepo{}, turmas, teachers, schedule)

	report, err := svc.ImportSchedule(context.Background(), "PSC M1", scheduleGrid(), false)
	if err != nil {
		t.Fatalf("ImportSchedule failed: %v", err)
	}
	if report.Aplicados != 7 {
		t.Errorf("Expected 7 applied slots, got %d", report.Aplicados)
	}
	slots := schedule.replaced[turmaID]
	if len(slots) != 7 {
		t.Fatalf("Expected atomic replacement with 7 slots, got %d", len(slots))
	}
	if slots[0].MateriaID == nil || schedule.subjects["Matemática"] == nil {
		t.Error("Expected subject resolved through GetOrCreateSubject")
	}
	if slots[0].ProfessorID == nil {
		t.Error("Expected exact teacher name resolved")
	}

	// Carlos Mota is not registered; the slot lands without a teacher and
	// the operator is told.
	foundProblem := false
	for _, p := range report.Problemas {
		if p == "Professor não cadastrado: Carlos Mota" {
			foundProblem = true
		}
	}
	if !foundProblem {
		t.Errorf("Expected unregistered teacher reported, got %v", report.Problemas)
	}
}

func TestImportSchedulePreview(t *testing.T) {
	turmas := &fakeClassGroupRepo{byName: map[string]*models.ClassGroup{
		"PSC M1": {ID: uuid.New(), Nome: "PSC M1"},
	}}
	schedule := &fakeScheduleRepo{}
	svc := newTestService(&fakeStudentRepo{}, turmas, &fakeTeacherRepo{}, schedule)

	report, err := svc.ImportSchedule(context.Background(), "PSC M1", scheduleGrid(), true)
	if err != nil {
		t.Fatalf("ImportSchedule failed: %v", err)
	}
	if report.Total != 7 || report.Aplicados != 0 {
		t.Errorf("Unexpected preview report: %+v", report)
	}
	if len(schedule.replaced) != 0 {
		t.Error("Preview must not replace slots")
	}
}

func TestImportScheduleUnknownClassGroup(t *testing.T) {
	svc := newTestService(&fakeStudentRepo{}, &fakeClassGroupRepo{}, &fakeTeacherRepo{}, &fakeScheduleRepo{})
	if _, err := svc.ImportSchedule(context.Background(), "INEXISTENTE", scheduleGrid(), true); err == nil {
		t.Error("Expected error for unknown class group")
	}
}
