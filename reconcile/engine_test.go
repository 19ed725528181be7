package reconcile

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ruteri/mdm-cert-reconciler/certstore"
	"github.com/ruteri/mdm-cert-reconciler/configstore"
	"github.com/ruteri/mdm-cert-reconciler/enrollment"
	"github.com/ruteri/mdm-cert-reconciler/interfaces"
	"github.com/ruteri/mdm-cert-reconciler/oplog"
)

const (
	testEnrollmentID = "1f0b01f9-9f62-4f98-9c5e-1a2b3c4d5e6f"
	testEntDMID      = "AB12"
	testThumbprint   = "9F3E7C1A"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// seedStore populates a memory store with one healthy enrollment.
func seedStore(t *testing.T, paths configstore.Paths) *configstore.MemoryStore {
	t.Helper()
	store := configstore.NewMemoryStore()
	id := interfaces.EnrollmentID(testEnrollmentID)
	require.NoError(t, store.Set(paths.EnrollmentKey(id), configstore.ProviderIDValue, enrollment.DefaultProviderID))
	require.NoError(t, store.Set(paths.EnrollmentKey(id), configstore.ThumbprintValue, testThumbprint))
	require.NoError(t, store.Set(paths.IdentityKey(id), configstore.IdentityValue, testEntDMID))
	return store
}

func seedCerts() *certstore.MemoryStore {
	return certstore.NewMemoryStore(interfaces.CertificateRecord{
		Thumbprint: testThumbprint,
		Subject:    "CN=" + testEntDMID,
		Issuer:     "CN=Microsoft Intune MDM Device CA",
		NotBefore:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		NotAfter:   time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
	})
}

func newTestEngine(store interfaces.ConfigStore, certs interfaces.CertStore, paths configstore.Paths, dryRun bool) *Engine {
	return NewEngine(EngineConfig{
		Locator:  enrollment.NewLocator(store, paths, testLogger()),
		Resolver: enrollment.NewResolver(store, certs, paths, "", testLogger()),
		Store:    store,
		Paths:    paths,
		DryRun:   dryRun,
		OpLog:    oplog.Nop(),
		Log:      testLogger(),
	})
}

// readOnly fails the test on any write. It proves MATCH and dry runs leave
// the store untouched.
type readOnly struct {
	interfaces.ConfigStore
	t *testing.T
}

func (r readOnly) Set(path, name, value string) error {
	r.t.Fatalf("unexpected write: %s %s", path, name)
	return nil
}

func TestEngineCorrectsAbsentValues(t *testing.T) {
	paths := configstore.DefaultPaths()
	store := seedStore(t, paths)

	run := newTestEngine(store, seedCerts(), paths, false).Run()

	require.NoError(t, run.DiscoveryErr)
	require.Len(t, run.Results, 2)
	assert.Equal(t, 2, run.Corrected)
	assert.Equal(t, 0, run.ExitCode())

	for _, res := range run.Results {
		assert.Equal(t, interfaces.StatusCorrected, res.Status)
		assert.Equal(t, "", res.Current, "absent value compares as empty string")
	}

	id := interfaces.EnrollmentID(testEnrollmentID)
	criteria, err := store.Get(paths.ProtectedKey(id), interfaces.SearchCriteria.ValueName())
	require.NoError(t, err)
	assert.Equal(t, "Subject=CN%3dAB12&Stores=MY%5CSystem", criteria)

	reference, err := store.Get(paths.ProtectedKey(id), interfaces.Reference.ValueName())
	require.NoError(t, err)
	assert.Equal(t, "MY;System;9F3E7C1A", reference)
}

func TestEngineConvergesAfterCorrection(t *testing.T) {
	paths := configstore.DefaultPaths()
	store := seedStore(t, paths)
	certs := seedCerts()

	first := newTestEngine(store, certs, paths, false).Run()
	require.Equal(t, 2, first.Corrected)

	second := newTestEngine(store, certs, paths, false).Run()
	assert.Equal(t, 2, second.Matched)
	assert.Equal(t, 0, second.Corrected)
	assert.Equal(t, 0, second.ExitCode())
}

func TestEngineMatchedValueLeavesStoreUntouched(t *testing.T) {
	paths := configstore.DefaultPaths()
	store := seedStore(t, paths)
	id := interfaces.EnrollmentID(testEnrollmentID)
	require.NoError(t, store.Set(paths.ProtectedKey(id), interfaces.SearchCriteria.ValueName(),
		"Subject=CN%3dAB12&Stores=MY%5CSystem"))
	require.NoError(t, store.Set(paths.ProtectedKey(id), interfaces.Reference.ValueName(),
		"MY;System;9F3E7C1A"))

	run := NewEngine(EngineConfig{
		Locator:  enrollment.NewLocator(store, paths, testLogger()),
		Resolver: enrollment.NewResolver(store, seedCerts(), paths, "", testLogger()),
		Store:    readOnly{store, t},
		Paths:    paths,
		OpLog:    oplog.Nop(),
		Log:      testLogger(),
	}).Run()

	require.Len(t, run.Results, 2)
	assert.Equal(t, 2, run.Matched)
	assert.Equal(t, 0, run.ExitCode())
}

func TestEngineDiscoveryFailureAbortsRun(t *testing.T) {
	paths := configstore.DefaultPaths()
	store := configstore.NewMemoryStore()
	store.CreateKey(paths.EnrollmentsRoot)

	run := newTestEngine(store, seedCerts(), paths, false).Run()

	require.Error(t, run.DiscoveryErr)
	assert.ErrorIs(t, run.DiscoveryErr, interfaces.ErrEnrollmentNotFound)
	assert.Empty(t, run.Results, "no kind is processed after a discovery failure")
	assert.Equal(t, 1, run.ExitCode())
}

func TestEngineKindFailuresAreIsolated(t *testing.T) {
	paths := configstore.DefaultPaths()
	store := seedStore(t, paths)

	// Empty certificate store: search criteria resolution fails, the
	// reference kind must still be corrected.
	run := newTestEngine(store, certstore.NewMemoryStore(), paths, false).Run()

	require.Len(t, run.Results, 2)
	assert.Equal(t, interfaces.StatusFailed, run.Results[0].Status)
	assert.ErrorIs(t, run.Results[0].Err, interfaces.ErrCertificateNotFound)
	assert.Equal(t, interfaces.StatusCorrected, run.Results[1].Status)
	assert.Equal(t, 1, run.ExitCode())
}

func TestEngineMissingIdentityFailsOnlySearchCriteria(t *testing.T) {
	paths := configstore.DefaultPaths()
	store := configstore.NewMemoryStore()
	id := interfaces.EnrollmentID(testEnrollmentID)
	require.NoError(t, store.Set(paths.EnrollmentKey(id), configstore.ProviderIDValue, enrollment.DefaultProviderID))
	require.NoError(t, store.Set(paths.EnrollmentKey(id), configstore.ThumbprintValue, testThumbprint))

	run := newTestEngine(store, seedCerts(), paths, false).Run()

	require.Len(t, run.Results, 2)
	assert.Equal(t, interfaces.StatusFailed, run.Results[0].Status)
	assert.ErrorIs(t, run.Results[0].Err, interfaces.ErrMissingIdentity)
	assert.Equal(t, interfaces.StatusCorrected, run.Results[1].Status)
}

func TestEngineWriteFailureReportedNotRetried(t *testing.T) {
	paths := configstore.DefaultPaths()
	id := interfaces.EnrollmentID(testEnrollmentID)

	store := new(configstore.MockStore)
	store.On("List", paths.EnrollmentsRoot).Return([]string{testEnrollmentID}, nil)
	store.On("Get", paths.EnrollmentKey(id), configstore.ProviderIDValue).Return(enrollment.DefaultProviderID, nil)
	store.On("Get", paths.IdentityKey(id), configstore.IdentityValue).Return(testEntDMID, nil)
	store.On("Get", paths.EnrollmentKey(id), configstore.ThumbprintValue).Return(testThumbprint, nil)
	store.On("Get", paths.ProtectedKey(id), mock.Anything).Return("", interfaces.ErrValueNotFound)
	store.On("Set", paths.ProtectedKey(id), interfaces.SearchCriteria.ValueName(), mock.Anything).
		Return(errors.New("access denied")).Once()
	store.On("Set", paths.ProtectedKey(id), interfaces.Reference.ValueName(), mock.Anything).
		Return(nil).Once()

	run := newTestEngine(store, seedCerts(), paths, false).Run()

	require.Len(t, run.Results, 2)
	assert.Equal(t, interfaces.StatusFailed, run.Results[0].Status)
	assert.Equal(t, interfaces.StatusCorrected, run.Results[1].Status)
	assert.Equal(t, 1, run.ExitCode(), "a rejected write always forces a non-zero exit")
	store.AssertExpectations(t)
}

func TestEngineDryRunWritesNothing(t *testing.T) {
	paths := configstore.DefaultPaths()
	store := seedStore(t, paths)

	run := NewEngine(EngineConfig{
		Locator:  enrollment.NewLocator(store, paths, testLogger()),
		Resolver: enrollment.NewResolver(store, seedCerts(), paths, "", testLogger()),
		Store:    readOnly{store, t},
		Paths:    paths,
		DryRun:   true,
		OpLog:    oplog.Nop(),
		Log:      testLogger(),
	}).Run()

	require.Len(t, run.Results, 2)
	for _, res := range run.Results {
		assert.Equal(t, interfaces.StatusWouldCorrect, res.Status)
	}
	assert.Equal(t, 0, run.ExitCode())
}
