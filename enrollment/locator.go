package enrollment

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/ruteri/mdm-cert-reconciler/configstore"
	"github.com/ruteri/mdm-cert-reconciler/interfaces"
)

// DefaultProviderID is the provider tag of the Microsoft device management
// enrollment.
const DefaultProviderID = "MS DM Server"

// Locator finds the active enrollment record in the configuration store.
type Locator struct {
	store interfaces.ConfigStore
	paths configstore.Paths
	log   *slog.Logger
}

// NewLocator creates a locator reading from store with the given path layout.
func NewLocator(store interfaces.ConfigStore, paths configstore.Paths, log *slog.Logger) *Locator {
	return &Locator{store: store, paths: paths, log: log}
}

// Locate returns the first enrollment (in sorted subkey order) whose
// ProviderID property equals providerID. A missing enrollments root and a
// root with no matching record both return ErrEnrollmentNotFound. When more
// than one record matches, the first is used and a warning is logged.
func (l *Locator) Locate(providerID string) (interfaces.Enrollment, error) {
	ids, err := l.store.List(l.paths.EnrollmentsRoot)
	if err != nil {
		if errors.Is(err, interfaces.ErrKeyNotFound) {
			return interfaces.Enrollment{}, fmt.Errorf("%w: %s", interfaces.ErrEnrollmentNotFound, providerID)
		}
		return interfaces.Enrollment{}, fmt.Errorf("failed to enumerate enrollments: %w", err)
	}

	var matches []interfaces.Enrollment
	for _, raw := range ids {
		id, err := interfaces.NewEnrollmentID(raw)
		if err != nil {
			// The enrollments root also holds bookkeeping keys
			// (Context, Status, ...) that are not GUID-named records.
			continue
		}

		provider, err := l.store.Get(l.paths.EnrollmentKey(id), configstore.ProviderIDValue)
		if err != nil {
			continue
		}
		if provider == providerID {
			matches = append(matches, interfaces.Enrollment{ID: id, ProviderID: provider})
		}
	}

	if len(matches) == 0 {
		return interfaces.Enrollment{}, fmt.Errorf("%w: %s", interfaces.ErrEnrollmentNotFound, providerID)
	}
	if len(matches) > 1 {
		l.log.Warn("Multiple enrollments match provider, using first in sorted order",
			slog.String("provider", providerID),
			slog.Int("matches", len(matches)),
			slog.String("selected", matches[0].ID.String()))
	}

	l.log.Debug("Located enrollment",
		slog.String("id", matches[0].ID.String()),
		slog.String("provider", providerID))
	return matches[0], nil
}
