package ui

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/yvensrabelo/entropia-site-2-sub000/internal/validation"
	"github.com/yvensrabelo/entropia-site-2-sub000/models"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/google/uuid"
)

// descriptorWindowDays bounds how far back a teacher can still file or edit
// a descriptor. Admin requests bypass the window.
const descriptorWindowDays = 7

const dateLayout = "2006-01-02"

func parseDescriptorFilter(c *gin.Context) (models.DescriptorFilter, error) {
	var filter models.DescriptorFilter
	if v := c.Query("turma_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return filter, fmt.Errorf("turma_id inválido")
		}
		filter.TurmaID = &id
	}
	if v := c.Query("data"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return filter, fmt.Errorf("data inválida")
		}
		filter.DataInicio = &t
		filter.DataFim = &t
	}
	if v := c.Query("data_inicio"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return filter, fmt.Errorf("data_inicio inválida")
		}
		filter.DataInicio = &t
	}
	if v := c.Query("data_fim"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return filter, fmt.Errorf("data_fim inválida")
		}
		filter.DataFim = &t
	}
	// Default to the trailing week when no range is given.
	if filter.DataInicio == nil && filter.DataFim == nil {
		start := time.Now().AddDate(0, 0, -descriptorWindowDays)
		filter.DataInicio = &start
	}
	return filter, nil
}

// handleListDescriptors serves both the admin dashboard (admin=true, any
// filter) and teachers, who must identify themselves by professor_cpf and
// only see their own entries.
func (s *Server) handleListDescriptors(c *gin.Context) {
	filter, err := parseDescriptorFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	isAdmin := c.Query("admin") == "true"
	cpf := validation.CleanCPF(c.Query("professor_cpf"))
	if !isAdmin && cpf == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "professor_cpf é obrigatório para consultas não-admin"})
		return
	}
	if cpf != "" {
		teacher, err := s.teachers.GetTeacherByCPF(c.Request.Context(), cpf)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Professor não encontrado"})
			return
		}
		filter.ProfessorID = &teacher.ID
	}

	descriptors, err := s.descriptors.ListDescriptors(c.Request.Context(), filter)
	if err != nil {
		s.logger.Error("failed to list descriptors: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao listar descritores"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"descritores": descriptors, "total": len(descriptors)})
}

// handleListTopics feeds the descriptor form: the syllabus topics of one
// subject.
func (s *Server) handleListTopics(c *gin.Context) {
	materiaID, err := uuid.Parse(c.Query("materia_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "materia_id é obrigatório"})
		return
	}
	topics, err := s.descriptors.ListTopics(c.Request.Context(), materiaID)
	if err != nil {
		s.logger.Error("failed to list topics: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao listar tópicos"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"topicos": topics, "total": len(topics)})
}

type descriptorRequest struct {
	HorarioID      string `json:"horario_id" binding:"required"`
	ProfessorCPF   string `json:"professor_cpf" binding:"required"`
	Data           string `json:"data" binding:"required"`
	TopicoID       string `json:"topico_id"`
	DescricaoLivre string `json:"descricao_livre" binding:"required"`
	IsAdmin        bool   `json:"is_admin"`
}

func (s *Server) handleUpsertDescriptor(c *gin.Context) {
	var req descriptorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Campos obrigatórios: horario_id, professor_cpf, data, descricao_livre"})
		return
	}
	horarioID, err := uuid.Parse(req.HorarioID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "horario_id inválido"})
		return
	}
	data, err := time.Parse(dateLayout, req.Data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Formato de data inválido"})
		return
	}
	descricao := strings.TrimSpace(req.DescricaoLivre)
	if len([]rune(descricao)) < 10 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Descrição deve ter pelo menos 10 caracteres"})
		return
	}

	teacher, err := s.teachers.GetTeacherByCPF(c.Request.Context(), validation.CleanCPF(req.ProfessorCPF))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Professor não encontrado"})
		return
	}
	if !teacher.Ativo {
		c.JSON(http.StatusForbidden, gin.H{"error": "Professor inativo"})
		return
	}
	if _, err := s.schedule.GetSlotByID(c.Request.Context(), horarioID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Horário não encontrado"})
		return
	}

	if !req.IsAdmin {
		if time.Since(data) > descriptorWindowDays*24*time.Hour {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Prazo para registrar o descritor expirou"})
			return
		}
		if req.Data > time.Now().Format(dateLayout) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Data no futuro"})
			return
		}
	}

	d := &models.Descriptor{
		HorarioID:   horarioID,
		ProfessorID: teacher.ID,
		Data:        data,
		Descricao:   descricao,
	}
	if req.TopicoID != "" {
		topicoID, err := uuid.Parse(req.TopicoID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "topico_id inválido"})
			return
		}
		d.TopicoID = &topicoID
	}

	if err := s.descriptors.UpsertDescriptor(c.Request.Context(), d); err != nil {
		s.logger.Error("failed to upsert descriptor: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "registrado", "id": d.ID})
}

// handleDescriptorReport renders the period's descriptors as an HTML page
// built from a markdown report, grouped by class group and date.
func (s *Server) handleDescriptorReport(c *gin.Context) {
	filter, err := parseDescriptorFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	descriptors, err := s.descriptors.ListDescriptors(c.Request.Context(), filter)
	if err != nil {
		s.logger.Error("failed to build descriptor report: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao gerar relatório"})
		return
	}

	md := buildReportMarkdown(descriptors)
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	page := markdown.Render(p.Parse([]byte(md)), renderer)

	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}

func buildReportMarkdown(descriptors []*models.Descriptor) string {
	var b strings.Builder
	b.WriteString("# Relatório de Descritores\n\n")
	if len(descriptors) == 0 {
		b.WriteString("Nenhum descritor registrado no período.\n")
		return b.String()
	}

	byTurma := map[string][]*models.Descriptor{}
	var turmas []string
	for _, d := range descriptors {
		nome := d.TurmaNome
		if nome == "" {
			nome = "Sem turma"
		}
		if _, ok := byTurma[nome]; !ok {
			turmas = append(turmas, nome)
		}
		byTurma[nome] = append(byTurma[nome], d)
	}

	for _, turma := range turmas {
		b.WriteString(fmt.Sprintf("## %s\n\n", turma))
		b.WriteString("| Data | Tempo | Matéria | Professor | Descrição |\n")
		b.WriteString("| --- | --- | --- | --- | --- |\n")
		for _, d := range byTurma[turma] {
			b.WriteString(fmt.Sprintf("| %s | %dº | %s | %s | %s |\n",
				d.Data.Format("02/01/2006"), d.Tempo, d.MateriaNome, d.ProfessorNome,
				strings.ReplaceAll(d.Descricao, "|", "\\|")))
		}
		b.WriteString("\n")
	}
	return b.String()
}
