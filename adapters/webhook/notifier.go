package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/yvensrabelo/entropia-site-2-sub000/internal"
	"github.com/yvensrabelo/entropia-site-2-sub000/internal/errors"
	"github.com/yvensrabelo/entropia-site-2-sub000/models"
	"github.com/yvensrabelo/entropia-site-2-sub000/ports"
)

// Notifier posts enrollments to the downstream automation endpoint. When the
// full payload is rejected it retries once with the reduced shape older
// automation flows accept.
type Notifier struct {
	url    string
	client *http.Client
	logger *internal.Logger
}

// NewNotifier creates an enrollment notifier.
func NewNotifier(url string, timeout time.Duration, logger *internal.Logger) ports.EnrollmentNotifier {
	return &Notifier{
		url:    url,
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// enrollmentOrigin tags every outbound payload with the channel the
// downstream automation expects.
const enrollmentOrigin = "site_entropia"

// outboundEnrollment is the full webhook body. Money fields go out as
// two-decimal strings and every delivery carries timestamp and origem.
type outboundEnrollment struct {
	*models.Enrollment
	ValorParcela string `json:"valor_parcela"`
	ValorTotal   string `json:"valor_total"`
	Timestamp    string `json:"timestamp"`
	Origem       string `json:"origem"`
}

// NotifyEnrollment delivers the enrollment payload.
func (n *Notifier) NotifyEnrollment(ctx context.Context, enrollment *models.Enrollment) error {
	now := time.Now().UTC().Format(time.RFC3339)
	full := outboundEnrollment{
		Enrollment:   enrollment,
		ValorParcela: fmt.Sprintf("%.2f", enrollment.ValorParcela),
		ValorTotal:   fmt.Sprintf("%.2f", enrollment.ValorTotal),
		Timestamp:    now,
		Origem:       enrollmentOrigin,
	}
	status, err := n.post(ctx, full)
	if err == nil && status < 300 {
		return nil
	}
	if err != nil {
		n.logger.Warn("enrollment webhook failed: %v, retrying with simplified payload", err)
	} else {
		n.logger.Warn("enrollment webhook returned %d, retrying with simplified payload", status)
	}

	simplified := map[string]string{
		"aluno":     enrollment.NomeAluno,
		"whatsapp":  enrollment.WhatsappAluno,
		"cpf":       enrollment.CPFAluno,
		"turma":     enrollment.TurmaDesejada,
		"pagamento": enrollment.PlanoPagamento,
		"timestamp": now,
	}
	status, err = n.post(ctx, simplified)
	if err != nil {
		return errors.ExternalServiceError("webhook", err)
	}
	if status >= 300 {
		return errors.ExternalServiceError("webhook", fmt.Errorf("status %d", status))
	}
	return nil
}

func (n *Notifier) post(ctx context.Context, payload interface{}) (int, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	return resp.StatusCode, nil
}
