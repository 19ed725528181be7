package enrollment

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/ruteri/mdm-cert-reconciler/certstore"
	"github.com/ruteri/mdm-cert-reconciler/configstore"
	"github.com/ruteri/mdm-cert-reconciler/interfaces"
)

// DefaultIssuerPattern identifies certificates issued by the management CA.
const DefaultIssuerPattern = "Microsoft Intune MDM Device CA"

// Resolver retrieves the identity data of one enrollment: its management
// identity value, its installed management certificate and its recorded
// certificate thumbprint.
type Resolver struct {
	store         interfaces.ConfigStore
	certs         interfaces.CertStore
	paths         configstore.Paths
	issuerPattern string
	log           *slog.Logger
}

// NewResolver creates a resolver over the given stores. An empty
// issuerPattern falls back to DefaultIssuerPattern.
func NewResolver(store interfaces.ConfigStore, certs interfaces.CertStore, paths configstore.Paths, issuerPattern string, log *slog.Logger) *Resolver {
	if issuerPattern == "" {
		issuerPattern = DefaultIssuerPattern
	}
	return &Resolver{
		store:         store,
		certs:         certs,
		paths:         paths,
		issuerPattern: issuerPattern,
		log:           log,
	}
}

// ManagementID reads the enrollment's EntDMID from its DMClient settings
// key. An absent or empty value is ErrMissingIdentity.
func (r *Resolver) ManagementID(enr interfaces.Enrollment) (string, error) {
	id, err := r.store.Get(r.paths.IdentityKey(enr.ID), configstore.IdentityValue)
	if err != nil {
		if errors.Is(err, interfaces.ErrKeyNotFound) || errors.Is(err, interfaces.ErrValueNotFound) {
			return "", fmt.Errorf("%w: enrollment %s", interfaces.ErrMissingIdentity, enr.ID)
		}
		return "", fmt.Errorf("failed to read management identity: %w", err)
	}
	if id == "" {
		return "", fmt.Errorf("%w: enrollment %s", interfaces.ErrMissingIdentity, enr.ID)
	}

	r.log.Debug("Resolved management identity",
		slog.String("enrollment", enr.ID.String()),
		slog.String("entDMID", id))
	return id, nil
}

// Certificate enumerates the machine personal store and selects the
// management certificate by issuer pattern. Zero matches is
// ErrCertificateNotFound.
func (r *Resolver) Certificate(enr interfaces.Enrollment) (interfaces.CertificateRecord, error) {
	records, err := r.certs.Enumerate()
	if err != nil {
		return interfaces.CertificateRecord{}, fmt.Errorf("failed to enumerate certificate store: %w", err)
	}

	rec, err := certstore.SelectByIssuer(records, r.issuerPattern)
	if err != nil {
		return interfaces.CertificateRecord{}, err
	}

	r.log.Debug("Resolved management certificate",
		slog.String("enrollment", enr.ID.String()),
		slog.String("thumbprint", rec.Thumbprint),
		slog.String("issuer", rec.Issuer))
	return rec, nil
}

// Thumbprint reads the certificate thumbprint the enrollment itself records
// (DMPCertThumbPrint). This is deliberately not re-derived from the
// certificate store; the reference value must bind the thumbprint the
// enrollment was established with.
func (r *Resolver) Thumbprint(enr interfaces.Enrollment) (string, error) {
	tp, err := r.store.Get(r.paths.EnrollmentKey(enr.ID), configstore.ThumbprintValue)
	if err != nil {
		if errors.Is(err, interfaces.ErrKeyNotFound) || errors.Is(err, interfaces.ErrValueNotFound) {
			return "", fmt.Errorf("%w: enrollment %s has no recorded thumbprint", interfaces.ErrCertificateNotFound, enr.ID)
		}
		return "", fmt.Errorf("failed to read enrollment thumbprint: %w", err)
	}
	if tp == "" {
		return "", fmt.Errorf("%w: enrollment %s has no recorded thumbprint", interfaces.ErrCertificateNotFound, enr.ID)
	}

	r.log.Debug("Resolved enrollment thumbprint",
		slog.String("enrollment", enr.ID.String()),
		slog.String("thumbprint", tp))
	return tp, nil
}
