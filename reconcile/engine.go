package reconcile

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/ruteri/mdm-cert-reconciler/configstore"
	"github.com/ruteri/mdm-cert-reconciler/enrollment"
	"github.com/ruteri/mdm-cert-reconciler/interfaces"
	"github.com/ruteri/mdm-cert-reconciler/oplog"
)

// state is one node of the per-kind reconciliation machine.
type state int

const (
	stateDiscover state = iota
	stateResolve
	stateCompare
	stateMatch
	stateCorrect
	stateReport
	stateFailed
)

func (s state) String() string {
	switch s {
	case stateDiscover:
		return "DISCOVER"
	case stateResolve:
		return "RESOLVE"
	case stateCompare:
		return "COMPARE"
	case stateMatch:
		return "MATCH"
	case stateCorrect:
		return "CORRECT"
	case stateReport:
		return "REPORT"
	case stateFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// EngineConfig wires an Engine. Locator, Resolver, Store and OpLog are
// required; Log defaults to the locator's logger conventions upstream.
type EngineConfig struct {
	Locator    *enrollment.Locator
	Resolver   *enrollment.Resolver
	Store      interfaces.ConfigStore
	Paths      configstore.Paths
	ProviderID string
	DryRun     bool
	OpLog      *oplog.Log
	Log        *slog.Logger
}

// Engine orchestrates discovery, resolution, comparison and correction of
// the two bound configuration values.
type Engine struct {
	cfg EngineConfig
}

// NewEngine creates an engine from cfg. An empty ProviderID falls back to
// the Microsoft device management provider.
func NewEngine(cfg EngineConfig) *Engine {
	if cfg.ProviderID == "" {
		cfg.ProviderID = enrollment.DefaultProviderID
	}
	if cfg.OpLog == nil {
		cfg.OpLog = oplog.Nop()
	}
	if cfg.Log == nil {
		cfg.Log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Engine{cfg: cfg}
}

// Run executes one full reconciliation pass: the enrollment is discovered
// once, then each value kind runs its own pipeline. Kind failures are
// isolated from each other; only a discovery failure aborts the run.
func (e *Engine) Run() *Run {
	run := newRun(e.cfg.OpLog.RunID(), e.cfg.DryRun)
	e.cfg.OpLog.Record(oplog.Info, "reconciliation started",
		"provider", e.cfg.ProviderID)

	enr, err := e.cfg.Locator.Locate(e.cfg.ProviderID)
	if err != nil {
		e.cfg.OpLog.Record(oplog.Error, "enrollment discovery failed",
			"state", stateDiscover.String(),
			"err", err.Error())
		e.cfg.Log.Error("Enrollment discovery failed", "err", err)
		run.finishDiscoveryFailure(err)
		return run
	}
	e.cfg.OpLog.Record(oplog.Info, "enrollment discovered",
		"enrollment", enr.ID.String())

	for _, kind := range interfaces.Kinds() {
		run.add(e.reconcileKind(enr, kind))
	}

	run.finish()
	e.cfg.OpLog.Record(oplog.Info, "reconciliation finished",
		"matched", fmt.Sprint(run.Matched),
		"corrected", fmt.Sprint(run.Corrected),
		"failed", fmt.Sprint(run.Failed))
	return run
}

// reconcileKind drives one value kind through RESOLVE, COMPARE and, on
// mismatch, CORRECT.
func (e *Engine) reconcileKind(enr interfaces.Enrollment, kind interfaces.ValueKind) interfaces.ReconcileResult {
	res := interfaces.ReconcileResult{
		Kind: kind,
		Path: e.cfg.Paths.ProtectedKey(enr.ID),
	}

	expected, err := e.resolve(enr, kind)
	if err != nil {
		return e.fail(res, stateResolve, err)
	}
	res.Expected = expected

	current, err := e.currentValue(res.Path, kind)
	if err != nil {
		return e.fail(res, stateCompare, err)
	}
	res.Current = current

	if current == expected {
		res.Status = interfaces.StatusMatched
		return e.report(res, stateMatch)
	}

	e.cfg.OpLog.Record(oplog.Warning, "value drift detected",
		"kind", kind.String(),
		"path", res.Path,
		"current", current,
		"expected", expected)

	if e.cfg.DryRun {
		res.Status = interfaces.StatusWouldCorrect
		return e.report(res, stateCorrect)
	}

	if err := e.cfg.Store.Set(res.Path, kind.ValueName(), expected); err != nil {
		return e.fail(res, stateCorrect, fmt.Errorf("correction write rejected: %w", err))
	}
	res.Status = interfaces.StatusCorrected
	return e.report(res, stateCorrect)
}

// resolve produces the expected value for kind from identity data alone.
// The search criteria kind additionally verifies that a certificate issued
// by the management CA is installed, since the criteria it writes will be
// used to look that certificate up.
func (e *Engine) resolve(enr interfaces.Enrollment, kind interfaces.ValueKind) (string, error) {
	switch kind {
	case interfaces.SearchCriteria:
		entDMID, err := e.cfg.Resolver.ManagementID(enr)
		if err != nil {
			return "", err
		}
		cert, err := e.cfg.Resolver.Certificate(enr)
		if err != nil {
			return "", err
		}
		e.cfg.OpLog.Record(oplog.Info, "management certificate present",
			"thumbprint", cert.Thumbprint)
		return BuildSearchCriteria(entDMID), nil

	case interfaces.Reference:
		thumbprint, err := e.cfg.Resolver.Thumbprint(enr)
		if err != nil {
			return "", err
		}
		return BuildReference(thumbprint), nil

	default:
		return "", fmt.Errorf("unknown value kind %d", kind)
	}
}

// currentValue reads the persisted value for kind; absence is an empty
// string, not an error.
func (e *Engine) currentValue(path string, kind interfaces.ValueKind) (string, error) {
	current, err := e.cfg.Store.Get(path, kind.ValueName())
	if err != nil {
		if errors.Is(err, interfaces.ErrKeyNotFound) || errors.Is(err, interfaces.ErrValueNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read current value: %w", err)
	}
	return current, nil
}

func (e *Engine) fail(res interfaces.ReconcileResult, at state, err error) interfaces.ReconcileResult {
	res.Status = interfaces.StatusFailed
	res.Err = err
	e.cfg.Log.Error("Reconciliation failed for kind",
		"err", err,
		slog.String("kind", res.Kind.String()),
		slog.String("state", at.String()))
	return e.report(res, stateFailed)
}

func (e *Engine) report(res interfaces.ReconcileResult, from state) interfaces.ReconcileResult {
	res.Timestamp = time.Now().UTC()

	level := oplog.Info
	msg := "kind reconciled"
	if res.Status == interfaces.StatusFailed {
		level = oplog.Error
		msg = "kind failed"
	}
	errText := ""
	if res.Err != nil {
		errText = res.Err.Error()
	}
	e.cfg.OpLog.Record(level, msg,
		"kind", res.Kind.String(),
		"state", from.String(),
		"status", res.Status.String(),
		"path", res.Path,
		"current", res.Current,
		"expected", res.Expected,
		"err", errText)

	e.cfg.Log.Info("Reconciliation result",
		slog.String("kind", res.Kind.String()),
		slog.String("status", res.Status.String()))
	return res
}
