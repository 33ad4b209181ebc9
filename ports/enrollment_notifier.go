package ports

import (
	"context"

	"github.com/yvensrabelo/entropia-site-2-sub000/models"
)

// EnrollmentNotifier forwards an accepted enrollment to the downstream
// automation endpoint.
type EnrollmentNotifier interface {
	// NotifyEnrollment delivers the enrollment payload. Implementations may
	// retry with a reduced payload before giving up.
	NotifyEnrollment(ctx context.Context, enrollment *models.Enrollment) error
}
