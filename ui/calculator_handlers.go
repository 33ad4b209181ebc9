package ui

import (
	"net/http"

	"github.com/yvensrabelo/entropia-site-2-sub000/domain/vestibular"

	"github.com/gin-gonic/gin"
)

// scoreRequest carries the raw per-field scores for one exam process.
type scoreRequest struct {
	Processo string            `json:"processo" binding:"required"`
	Notas    vestibular.Scores `json:"notas" binding:"required"`
}

// quotaRequest carries the questionnaire answers.
type quotaRequest struct {
	Processo  string             `json:"processo" binding:"required"`
	Respostas vestibular.Answers `json:"respostas"`
}

// compareRequest runs the full calculator flow: score, quota, then the
// cutoff comparison, optionally filtered by course name.
type compareRequest struct {
	Processo  string             `json:"processo" binding:"required"`
	Notas     vestibular.Scores  `json:"notas" binding:"required"`
	Respostas vestibular.Answers `json:"respostas"`
	Busca     string             `json:"busca"`
}

// handleListProcesses describes each exam process: its score fields with
// bounds and every quota label the questionnaire can produce.
func (s *Server) handleListProcesses(c *gin.Context) {
	type processInfo struct {
		Processo string                  `json:"processo"`
		Campos   []vestibular.ScoreField `json:"campos"`
		NotaMax  float64                 `json:"nota_maxima"`
		Cotas    []string                `json:"cotas"`
	}
	out := make([]processInfo, 0, len(vestibular.Processes))
	for _, p := range vestibular.Processes {
		out = append(out, processInfo{
			Processo: string(p),
			Campos:   p.Fields(),
			NotaMax:  vestibular.MaxScore(p),
			Cotas:    vestibular.QuotaLabels(p),
		})
	}
	c.JSON(http.StatusOK, gin.H{"processos": out})
}

func (s *Server) handleComputeScore(c *gin.Context) {
	var req scoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Requisição inválida"})
		return
	}
	processo, err := vestibular.ParseProcess(req.Processo)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"processo":    processo,
		"nota_final":  vestibular.ComputeScore(processo, req.Notas),
		"nota_maxima": vestibular.MaxScore(processo),
	})
}

func (s *Server) handleDetermineQuota(c *gin.Context) {
	var req quotaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Requisição inválida"})
		return
	}
	processo, err := vestibular.ParseProcess(req.Processo)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cota := vestibular.DetermineQuota(processo, req.Respostas)
	c.JSON(http.StatusOK, gin.H{
		"processo":  processo,
		"cota":      cota,
		"descricao": vestibular.QuotaDescriptions[cota],
	})
}

func (s *Server) handleCompare(c *gin.Context) {
	var req compareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Requisição inválida"})
		return
	}
	processo, err := vestibular.ParseProcess(req.Processo)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	nota := vestibular.ComputeScore(processo, req.Notas)
	cota := vestibular.DetermineQuota(processo, req.Respostas)
	resultados := vestibular.Compare(s.cutoffs, processo, cota, nota, req.Busca)

	c.JSON(http.StatusOK, gin.H{
		"processo":   processo,
		"nota_final": nota,
		"cota":       cota,
		"descricao":  vestibular.QuotaDescriptions[cota],
		"resultados": resultados,
		"resumo":     vestibular.Summarize(resultados),
	})
}
