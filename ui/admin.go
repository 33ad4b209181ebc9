package ui

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/yvensrabelo/entropia-site-2-sub000/adapters/spreadsheet"
	"github.com/yvensrabelo/entropia-site-2-sub000/internal"
	"github.com/yvensrabelo/entropia-site-2-sub000/internal/config"
	apperrors "github.com/yvensrabelo/entropia-site-2-sub000/internal/errors"
	"github.com/yvensrabelo/entropia-site-2-sub000/internal/importer"
	"github.com/yvensrabelo/entropia-site-2-sub000/internal/validation"
	"github.com/yvensrabelo/entropia-site-2-sub000/models"
	"github.com/yvensrabelo/entropia-site-2-sub000/ports"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// AdminApp is the administrative API. It listens on its own port so the
// deployment can keep it off the public network; there is no authentication
// layer here on purpose.
type AdminApp struct {
	router      *chi.Mux
	students    ports.StudentRepository
	teachers    ports.TeacherRepository
	turmas      ports.ClassGroupRepository
	schedule    ports.ScheduleRepository
	descriptors ports.DescriptorRepository
	importer    *importer.Service
	logger      *internal.Logger
	cfg         *config.Config
}

// NewAdminApp wires the admin router.
func NewAdminApp(cfg *config.Config, students ports.StudentRepository, teachers ports.TeacherRepository, turmas ports.ClassGroupRepository, schedule ports.ScheduleRepository, descriptors ports.DescriptorRepository, imp *importer.Service, logger *internal.Logger) *AdminApp {
	a := &AdminApp{
		router:      chi.NewRouter(),
		students:    students,
		teachers:    teachers,
		turmas:      turmas,
		schedule:    schedule,
		descriptors: descriptors,
		importer:    imp,
		logger:      logger,
		cfg:         cfg,
	}
	a.setupRoutes()
	return a
}

func (a *AdminApp) setupRoutes() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))

	a.router.Route("/admin", func(r chi.Router) {
		r.Route("/alunos", func(r chi.Router) {
			r.Get("/", a.handleListStudents)
			r.Post("/", a.handleCreateStudent)
			r.Post("/importar", a.handleImportStudents)
			r.Get("/cpf/{cpf}", a.handleGetStudentByCPF)
			r.Get("/{id}", a.handleGetStudent)
			r.Put("/{id}", a.handleUpdateStudent)
			r.Delete("/{id}", a.handleDeleteStudent)
		})
		r.Route("/professores", func(r chi.Router) {
			r.Get("/", a.handleListTeachers)
			r.Post("/", a.handleCreateTeacher)
			r.Get("/numero/{numero}", a.handleGetTeacherByNumero)
			r.Get("/{id}", a.handleGetTeacher)
			r.Put("/{id}", a.handleUpdateTeacher)
			r.Delete("/{id}", a.handleDeleteTeacher)
		})
		r.Route("/turmas", func(r chi.Router) {
			r.Get("/", a.handleListClassGroups)
			r.Post("/", a.handleCreateClassGroup)
			r.Get("/{id}", a.handleGetClassGroup)
			r.Put("/{id}", a.handleUpdateClassGroup)
			r.Delete("/{id}", a.handleDeleteClassGroup)
		})
		r.Route("/horarios", func(r chi.Router) {
			r.Get("/", a.handleListSlots)
			r.Post("/", a.handleCreateSlot)
			r.Post("/importar", a.handleImportSchedule)
			r.Put("/{id}", a.handleUpdateSlot)
			r.Delete("/{id}", a.handleDeleteSlot)
		})
		r.Route("/descritores", func(r chi.Router) {
			r.Get("/", a.handleListDescriptors)
			r.Get("/{id}", a.handleGetDescriptor)
			r.Delete("/{id}", a.handleDeleteDescriptor)
		})
		r.Route("/topicos", func(r chi.Router) {
			r.Get("/", a.handleListTopics)
			r.Post("/", a.handleCreateTopic)
		})
	})
}

// Run starts the admin API on its own port.
func (a *AdminApp) Run() error {
	addr := ":" + a.cfg.Server.AdminPort
	a.logger.Info("admin API listening on %s", addr)
	return http.ListenAndServe(addr, a.router)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch apperrors.GetCode(err) {
	case apperrors.CodeNotFound:
		status = http.StatusNotFound
	case apperrors.CodeValidationError, apperrors.CodeInvalidInput:
		status = http.StatusBadRequest
	case apperrors.CodeDuplicate:
		status = http.StatusConflict
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func pathID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}

// ---- students ----

func (a *AdminApp) handleListStudents(w http.ResponseWriter, r *http.Request) {
	filter := models.StudentFilter{Busca: r.URL.Query().Get("busca")}
	if v := r.URL.Query().Get("turma_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "turma_id inválido"})
			return
		}
		filter.TurmaID = &id
	}
	if v := r.URL.Query().Get("ativo"); v != "" {
		ativo := v == "true"
		filter.Ativo = &ativo
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		filter.Limit = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil {
		filter.Offset = v
	}

	students, err := a.students.ListStudents(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"alunos": students, "total": len(students)})
}

func (a *AdminApp) handleCreateStudent(w http.ResponseWriter, r *http.Request) {
	var student models.Student
	if err := json.NewDecoder(r.Body).Decode(&student); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Requisição inválida"})
		return
	}
	student.CPF = validation.CleanCPF(student.CPF)
	if err := validation.ValidateCPF(student.CPF); err != nil {
		writeError(w, err)
		return
	}
	if err := validation.ValidateName(student.Nome); err != nil {
		writeError(w, err)
		return
	}
	student.ID = uuid.New()
	student.Ativo = true
	if err := a.students.CreateStudent(r.Context(), &student); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, student)
}

func (a *AdminApp) handleGetStudent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "id inválido"})
		return
	}
	student, err := a.students.GetStudentByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, student)
}

func (a *AdminApp) handleUpdateStudent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "id inválido"})
		return
	}
	var student models.Student
	if err := json.NewDecoder(r.Body).Decode(&student); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Requisição inválida"})
		return
	}
	student.ID = id
	student.CPF = validation.CleanCPF(student.CPF)
	if err := validation.ValidateCPF(student.CPF); err != nil {
		writeError(w, err)
		return
	}
	if err := a.students.UpdateStudent(r.Context(), &student); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, student)
}

func (a *AdminApp) handleDeleteStudent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "id inválido"})
		return
	}
	if err := a.students.DeleteStudent(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "removido"})
}

// handleImportStudents accepts a multipart CSV or XLSX upload. Query
// parameters: preview=true parses without writing, partial=false halts on
// the first database error.
func (a *AdminApp) handleImportStudents(w http.ResponseWriter, r *http.Request) {
	rows, err := a.uploadRows(r)
	if err != nil {
		writeError(w, err)
		return
	}
	preview := r.URL.Query().Get("preview") == "true"
	partial := r.URL.Query().Get("partial") != "false"

	report, err := a.importer.ImportStudents(r.Context(), rows, preview, partial)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// handleImportSchedule accepts a weekly grid upload for one class group,
// named by the turma query parameter.
func (a *AdminApp) handleImportSchedule(w http.ResponseWriter, r *http.Request) {
	turma := r.URL.Query().Get("turma")
	if turma == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Parâmetro turma é obrigatório"})
		return
	}
	rows, err := a.uploadRows(r)
	if err != nil {
		writeError(w, err)
		return
	}
	preview := r.URL.Query().Get("preview") == "true"

	report, err := a.importer.ImportSchedule(r.Context(), turma, rows, preview)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (a *AdminApp) uploadRows(r *http.Request) ([][]string, error) {
	if err := r.ParseMultipartForm(a.cfg.Import.MaxUploadBytes); err != nil {
		return nil, apperrors.ValidationError("Upload inválido ou muito grande")
	}
	file, header, err := r.FormFile("arquivo")
	if err != nil {
		return nil, apperrors.ValidationError("Campo arquivo é obrigatório")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, a.cfg.Import.MaxUploadBytes))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to read upload")
	}
	return spreadsheet.NewReader(header.Filename).Rows(data)
}

// ---- teachers ----

func (a *AdminApp) handleListTeachers(w http.ResponseWriter, r *http.Request) {
	teachers, err := a.teachers.ListTeachers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"professores": teachers, "total": len(teachers)})
}

func (a *AdminApp) handleCreateTeacher(w http.ResponseWriter, r *http.Request) {
	var teacher models.Teacher
	if err := json.NewDecoder(r.Body).Decode(&teacher); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Requisição inválida"})
		return
	}
	teacher.CPF = validation.CleanCPF(teacher.CPF)
	if err := validation.ValidateCPF(teacher.CPF); err != nil {
		writeError(w, err)
		return
	}
	if err := validation.ValidateName(teacher.Nome); err != nil {
		writeError(w, err)
		return
	}
	teacher.ID = uuid.New()
	teacher.Ativo = true
	if err := a.teachers.CreateTeacher(r.Context(), &teacher); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, teacher)
}

func (a *AdminApp) handleGetTeacher(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "id inválido"})
		return
	}
	teacher, err := a.teachers.GetTeacherByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, teacher)
}

func (a *AdminApp) handleUpdateTeacher(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "id inválido"})
		return
	}
	var teacher models.Teacher
	if err := json.NewDecoder(r.Body).Decode(&teacher); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Requisição inválida"})
		return
	}
	teacher.ID = id
	teacher.CPF = validation.CleanCPF(teacher.CPF)
	if err := a.teachers.UpdateTeacher(r.Context(), &teacher); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, teacher)
}

func (a *AdminApp) handleDeleteTeacher(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "id inválido"})
		return
	}
	if err := a.teachers.DeleteTeacher(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "removido"})
}

// ---- class groups ----

func (a *AdminApp) handleListClassGroups(w http.ResponseWriter, r *http.Request) {
	onlyActive := r.URL.Query().Get("ativo") == "true"
	turmas, err := a.turmas.ListClassGroups(r.Context(), onlyActive)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"turmas": turmas, "total": len(turmas)})
}

func (a *AdminApp) handleCreateClassGroup(w http.ResponseWriter, r *http.Request) {
	var turma models.ClassGroup
	if err := json.NewDecoder(r.Body).Decode(&turma); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Requisição inválida"})
		return
	}
	if err := validation.ValidateName(turma.Nome); err != nil {
		writeError(w, err)
		return
	}
	turma.ID = uuid.New()
	turma.Ativo = true
	if err := a.turmas.CreateClassGroup(r.Context(), &turma); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, turma)
}

func (a *AdminApp) handleGetClassGroup(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "id inválido"})
		return
	}
	turma, err := a.turmas.GetClassGroupByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, turma)
}

func (a *AdminApp) handleUpdateClassGroup(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "id inválido"})
		return
	}
	var turma models.ClassGroup
	if err := json.NewDecoder(r.Body).Decode(&turma); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Requisição inválida"})
		return
	}
	turma.ID = id
	if err := a.turmas.UpdateClassGroup(r.Context(), &turma); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, turma)
}

func (a *AdminApp) handleDeleteClassGroup(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "id inválido"})
		return
	}
	if err := a.turmas.DeleteClassGroup(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "removido"})
}

// ---- schedule slots ----

func (a *AdminApp) handleListSlots(w http.ResponseWriter, r *http.Request) {
	var filter models.ScheduleFilter
	if v := r.URL.Query().Get("turma_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "turma_id inválido"})
			return
		}
		filter.TurmaID = &id
	}
	if v := r.URL.Query().Get("professor_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "professor_id inválido"})
			return
		}
		filter.ProfessorID = &id
	}
	filter.DiaSemana = r.URL.Query().Get("dia_semana")
	filter.Turno = r.URL.Query().Get("turno")

	slots, err := a.schedule.ListSlots(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"horarios": slots, "total": len(slots)})
}

func (a *AdminApp) handleCreateSlot(w http.ResponseWriter, r *http.Request) {
	var slot models.ScheduleSlot
	if err := json.NewDecoder(r.Body).Decode(&slot); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Requisição inválida"})
		return
	}
	slot.ID = uuid.New()
	if err := a.schedule.CreateSlot(r.Context(), &slot); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, slot)
}

func (a *AdminApp) handleUpdateSlot(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "id inválido"})
		return
	}
	var slot models.ScheduleSlot
	if err := json.NewDecoder(r.Body).Decode(&slot); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Requisição inválida"})
		return
	}
	slot.ID = id
	if err := a.schedule.UpdateSlot(r.Context(), &slot); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, slot)
}

func (a *AdminApp) handleDeleteSlot(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "id inválido"})
		return
	}
	if err := a.schedule.DeleteSlot(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "removido"})
}

// ---- lookups ----

func (a *AdminApp) handleGetStudentByCPF(w http.ResponseWriter, r *http.Request) {
	cpf := validation.CleanCPF(chi.URLParam(r, "cpf"))
	if err := validation.ValidateCPF(cpf); err != nil {
		writeError(w, err)
		return
	}
	student, err := a.students.GetStudentByCPF(r.Context(), cpf)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, student)
}

func (a *AdminApp) handleGetTeacherByNumero(w http.ResponseWriter, r *http.Request) {
	numero, err := strconv.Atoi(chi.URLParam(r, "numero"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "numero inválido"})
		return
	}
	teacher, err := a.teachers.GetTeacherByNumero(r.Context(), numero)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, teacher)
}

// ---- descriptors and topics ----

func (a *AdminApp) handleListDescriptors(w http.ResponseWriter, r *http.Request) {
	var filter models.DescriptorFilter
	if v := r.URL.Query().Get("turma_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "turma_id inválido"})
			return
		}
		filter.TurmaID = &id
	}
	if v := r.URL.Query().Get("professor_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "professor_id inválido"})
			return
		}
		filter.ProfessorID = &id
	}
	if v := r.URL.Query().Get("data_inicio"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "data_inicio inválida"})
			return
		}
		filter.DataInicio = &t
	}
	if v := r.URL.Query().Get("data_fim"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "data_fim inválida"})
			return
		}
		filter.DataFim = &t
	}

	descriptors, err := a.descriptors.ListDescriptors(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"descritores": descriptors, "total": len(descriptors)})
}

func (a *AdminApp) handleGetDescriptor(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "id inválido"})
		return
	}
	descriptor, err := a.descriptors.GetDescriptorByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, descriptor)
}

func (a *AdminApp) handleDeleteDescriptor(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "id inválido"})
		return
	}
	if err := a.descriptors.DeleteDescriptor(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "removido"})
}

func (a *AdminApp) handleListTopics(w http.ResponseWriter, r *http.Request) {
	materiaID, err := uuid.Parse(r.URL.Query().Get("materia_id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "materia_id é obrigatório"})
		return
	}
	topics, err := a.descriptors.ListTopics(r.Context(), materiaID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"topicos": topics, "total": len(topics)})
}

func (a *AdminApp) handleCreateTopic(w http.ResponseWriter, r *http.Request) {
	var topic models.Topic
	if err := json.NewDecoder(r.Body).Decode(&topic); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Requisição inválida"})
		return
	}
	if topic.MateriaID == uuid.Nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "materia_id é obrigatório"})
		return
	}
	if err := validation.ValidateName(topic.Nome); err != nil {
		writeError(w, err)
		return
	}
	topic.ID = uuid.New()
	if err := a.descriptors.CreateTopic(r.Context(), &topic); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, topic)
}
