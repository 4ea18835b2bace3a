// Package identity resolves participant credentials to an interview category.
package identity

import (
	"context"
	"errors"

	"github.com/rnlabs/finbot/internal/domain"
	"github.com/rnlabs/finbot/internal/logging"
)

// ErrUnknownCredentials is returned when the directory cannot resolve an
// identifier/token pair. The orchestrator maps it to a credential-error
// reply and a reset to the start of the script.
var ErrUnknownCredentials = errors.New("identity: unknown identifier or token")

// Directory is the external lookup behind identity resolution.
type Directory interface {
	// FetchCategory maps (identifier, token) to the participant's category.
	FetchCategory(ctx context.Context, identifier, token string) (domain.Category, error)
}

// Attendance records that a participant showed up. MarkAttended must be
// idempotent: repeated calls for the same identifier have no observable
// effect after the first.
type Attendance interface {
	MarkAttended(ctx context.Context, identifier string) error
}

// Resolver maps login credentials to a category and fires the attendance
// side effect on success.
type Resolver struct {
	dir Directory
	att Attendance
	log *logging.Logger
}

// NewResolver creates a resolver over the given directory and attendance
// collaborators.
func NewResolver(dir Directory, att Attendance, log *logging.Logger) *Resolver {
	return &Resolver{dir: dir, att: att, log: log.Sub("identity")}
}

// Resolve performs exactly one directory lookup. Any lookup failure —
// unknown participant, bad token, or a directory error — collapses to
// ErrUnknownCredentials; the underlying cause is logged, not surfaced to the
// participant. On success the attendance marker fires; its failure is logged
// and never blocks the login.
func (r *Resolver) Resolve(ctx context.Context, identifier, token string) (domain.Category, error) {
	category, err := r.dir.FetchCategory(ctx, identifier, token)
	if err != nil {
		r.log.Warn().Err(err).Str("identifier", identifier).Msg("credential lookup failed")
		return domain.CategoryUnresolved, ErrUnknownCredentials
	}
	if !category.Resolved() {
		return domain.CategoryUnresolved, ErrUnknownCredentials
	}

	if err := r.att.MarkAttended(ctx, identifier); err != nil {
		r.log.Error().Err(err).Str("identifier", identifier).Msg("attendance mark failed")
	}

	return category, nil
}
