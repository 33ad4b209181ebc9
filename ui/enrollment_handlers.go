package ui

import (
	"net/http"

	"github.com/yvensrabelo/entropia-site-2-sub000/internal/validation"
	"github.com/yvensrabelo/entropia-site-2-sub000/models"

	"github.com/gin-gonic/gin"
)

// handleEnrollment validates the public enrollment form and forwards it to
// the automation webhook. Nothing is persisted here; the downstream flow
// owns the enrollment pipeline.
func (s *Server) handleEnrollment(c *gin.Context) {
	var enrollment models.Enrollment
	if err := c.ShouldBindJSON(&enrollment); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Requisição inválida"})
		return
	}

	var problems []string
	if err := validation.ValidateName(enrollment.NomeAluno); err != nil {
		problems = append(problems, err.Error())
	}
	if err := validation.ValidateCPF(enrollment.CPFAluno); err != nil {
		problems = append(problems, err.Error())
	}
	if err := validation.ValidatePhone(enrollment.WhatsappAluno); err != nil {
		problems = append(problems, err.Error())
	}
	if err := validation.ValidateEmail(enrollment.EmailAluno); err != nil {
		problems = append(problems, err.Error())
	}
	if err := validation.ValidateCEP(enrollment.CEP); err != nil {
		problems = append(problems, err.Error())
	}
	if enrollment.TurmaDesejada == "" {
		problems = append(problems, "Turma desejada é obrigatória")
	}
	if enrollment.PlanoPagamento == "" {
		problems = append(problems, "Plano de pagamento é obrigatório")
	}
	if enrollment.NumeroParcelas < 0 || enrollment.ValorParcela < 0 {
		problems = append(problems, "Valores de pagamento inválidos")
	}
	if len(problems) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"erros": problems})
		return
	}

	enrollment.CPFAluno = validation.FormatCPF(enrollment.CPFAluno)
	enrollment.WhatsappAluno = validation.CleanPhone(enrollment.WhatsappAluno)
	enrollment.DataNascimentoAluno = validation.NormalizeDate(enrollment.DataNascimentoAluno)
	if enrollment.ValorTotal == 0 {
		enrollment.ValorTotal = float64(enrollment.NumeroParcelas) * enrollment.ValorParcela
	}

	if err := s.notifier.NotifyEnrollment(c.Request.Context(), &enrollment); err != nil {
		s.logger.Error("enrollment delivery failed for %s: %v", enrollment.CPFAluno, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Não foi possível enviar a matrícula, tente novamente"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "enviado"})
}
