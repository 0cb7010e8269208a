// Package usecase contains the verification orchestrator: the decision
// engine that consults the domain and email caches, decides whether a remote
// call is needed, updates the caches on response, and returns a normalized
// result to callers.
package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/mrled/mailvet/internal/model"
	"github.com/mrled/mailvet/internal/repository"
)

// DefaultFreshnessWindow is how long a cached record is trusted before it
// must be re-confirmed remotely.
const DefaultFreshnessWindow = 30 * 24 * time.Hour

// RemoteVerifier calls the external verification endpoint for one address.
type RemoteVerifier interface {
	Verify(ctx context.Context, address, apiKey string) (model.Outcome, error)
}

// DNSChecker reports whether a mail domain exists in DNS.
type DNSChecker interface {
	HostExists(ctx context.Context, domain string) (bool, error)
}

// Config is the orchestrator's configuration, supplied once at construction.
type Config struct {
	// APIKey authenticates remote verification calls. When empty, any Verify
	// call that needs remote confirmation answers ServiceUnavailable without
	// touching DNS or the remote service.
	APIKey string

	// FreshnessWindow overrides DefaultFreshnessWindow when positive.
	FreshnessWindow time.Duration
}

// VerifyUseCase orchestrates email verification over the two-tier cache.
// It is the exclusive owner of both repositories; nothing else may mutate
// them.
type VerifyUseCase struct {
	domains repository.DomainRepository
	emails  repository.EmailRepository
	remote  RemoteVerifier
	dns     DNSChecker
	cfg     Config
	locks   *keyedMutex
	clock   func() time.Time
	log     *slog.Logger
}

// Option configures a VerifyUseCase.
type Option func(*VerifyUseCase)

// WithClock overrides the time source. Tests use this to step through the
// freshness window without sleeping.
func WithClock(clock func() time.Time) Option {
	return func(uc *VerifyUseCase) {
		uc.clock = clock
	}
}

// WithLogger overrides the default logger.
func WithLogger(log *slog.Logger) Option {
	return func(uc *VerifyUseCase) {
		uc.log = log
	}
}

// NewVerifyUseCase creates the orchestrator.
func NewVerifyUseCase(
	domains repository.DomainRepository,
	emails repository.EmailRepository,
	remote RemoteVerifier,
	dns DNSChecker,
	cfg Config,
	opts ...Option,
) *VerifyUseCase {
	if cfg.FreshnessWindow <= 0 {
		cfg.FreshnessWindow = DefaultFreshnessWindow
	}
	uc := &VerifyUseCase{
		domains: domains,
		emails:  emails,
		remote:  remote,
		dns:     dns,
		cfg:     cfg,
		locks:   newKeyedMutex(),
		clock:   time.Now,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// serviceUnavailable is the result for every recoverable failure: transport,
// timeout, parse, persistence, missing API key. Never cached.
var serviceUnavailable = model.Result{Status: model.StatusServiceUnavailable}

// Verify produces a normalized verification result for one address.
//
// Expected outcomes, including failures, are returned as a Result value,
// never as an error. The caches are consulted first; the remote service is
// only called when neither cache holds a fresh answer. All cache mutations
// complete before the result is returned.
func (uc *VerifyUseCase) Verify(ctx context.Context, address string) model.Result {
	local, domain, ok := model.SplitAddress(address)
	if !ok {
		return model.Result{Status: model.StatusMalformedAddress}
	}

	now := uc.clock()

	// Read-and-decide phase. The per-domain lock covers the same-address
	// case too, since equal addresses share a domain. The lock is released
	// before any network I/O.
	result, decided, hadStaleDomain := uc.consultCaches(ctx, local, domain, address, now)
	if decided {
		return result
	}

	if uc.cfg.APIKey == "" {
		uc.log.Warn("remote verification skipped, no API key configured",
			slog.String("domain", domain))
		return serviceUnavailable
	}

	exists, err := uc.dns.HostExists(ctx, domain)
	if err != nil {
		// The resolver itself failed, which says nothing about the domain.
		uc.log.Warn("DNS check failed",
			slog.String("domain", domain), slog.String("error", err.Error()))
		return serviceUnavailable
	}
	if !exists {
		// Nonexistent domain, remote verification would be wasted.
		return model.Result{Status: model.StatusMalformedAddress}
	}

	outcome, err := uc.remote.Verify(ctx, address, uc.cfg.APIKey)
	if err != nil {
		uc.log.Warn("remote verification unavailable",
			slog.String("address", address), slog.String("error", err.Error()))
		return serviceUnavailable
	}
	if outcome.Code == model.CodeCallFailed {
		// The service answered but reported its own failure. Recoverable,
		// so never cached.
		return serviceUnavailable
	}

	// Write phase. now is re-read so LastRefreshed reflects the completed
	// remote call rather than lock acquisition time.
	now = uc.clock()
	unlock := uc.locks.Lock(domain)
	defer unlock()

	if outcome.Code == model.CodeCatchAll {
		if err := uc.recordCatchAll(ctx, domain, suggestedDomain(outcome.DidYouMean), now); err != nil {
			uc.log.Error("failed to persist domain record",
				slog.String("domain", domain), slog.String("error", err.Error()))
			return serviceUnavailable
		}
	} else if hadStaleDomain {
		if err := uc.touchDomain(ctx, domain, now); err != nil {
			uc.log.Error("failed to persist domain record",
				slog.String("domain", domain), slog.String("error", err.Error()))
			return serviceUnavailable
		}
	}

	err = uc.emails.Put(ctx, &model.EmailRecord{
		Address:       address,
		Outcome:       outcome,
		LastRefreshed: now,
	})
	if err != nil {
		// An un-persisted result would cause a duplicate remote call for
		// this address within the window, so report the call as failed.
		uc.log.Error("failed to persist email record",
			slog.String("address", address), slog.String("error", err.Error()))
		return serviceUnavailable
	}

	return model.ResultFromOutcome(outcome)
}

// consultCaches runs the cache read/decide phase under the per-domain lock.
// It reports the terminal result when one of the caches answered, and
// whether a stale domain record was seen (its hit counter is then persisted
// together with the post-remote refresh, avoiding a double write).
func (uc *VerifyUseCase) consultCaches(ctx context.Context, local, domain, address string, now time.Time) (result model.Result, decided bool, hadStaleDomain bool) {
	unlock := uc.locks.Lock(domain)
	defer unlock()

	emailRec, err := uc.emails.Get(ctx, address)
	switch {
	case err == nil:
		if emailRec.Fresh(now, uc.cfg.FreshnessWindow) {
			// Cache hit: reproduce the stored answer, no domain touch.
			return model.ResultFromOutcome(emailRec.Outcome), true, false
		}
	case !errors.Is(err, model.ErrNotFound):
		uc.log.Error("email cache read failed",
			slog.String("address", address), slog.String("error", err.Error()))
		return serviceUnavailable, true, false
	}

	domainRec, err := uc.domains.Get(ctx, domain)
	switch {
	case errors.Is(err, model.ErrNotFound):
		return model.Result{}, false, false
	case err != nil:
		uc.log.Error("domain cache read failed",
			slog.String("domain", domain), slog.String("error", err.Error()))
		return serviceUnavailable, true, false
	}

	// Every lookup that matches a record counts as a hit, but the increment
	// is only persisted here when this branch is terminal.
	domainRec.HitCount++

	if domainRec.Fresh(now, uc.cfg.FreshnessWindow) {
		if err := uc.domains.Put(ctx, domainRec); err != nil {
			uc.log.Error("failed to persist domain record",
				slog.String("domain", domain), slog.String("error", err.Error()))
			return serviceUnavailable, true, false
		}

		if domainRec.CatchAll {
			// Terminal: per-address verification at a catch-all domain is
			// uninformative, a remote call would be wasted.
			result := model.Result{Status: model.StatusCatchAllDomain}
			if domainRec.SuggestedDomain != "" {
				result.SuggestedAddress = local + "@" + domainRec.SuggestedDomain
			}
			return result, true, false
		}

		// The domain was recently confirmed non-catch-all, but this address
		// was not individually confirmed. Conservative answer rather than a
		// positive validity claim.
		return model.Result{Status: model.StatusDomainUnverified}, true, false
	}

	// Stale record: fall through to remote verification.
	return model.Result{}, false, true
}

// recordCatchAll creates or refreshes the catch-all record for a domain.
// Runs under the per-domain lock.
func (uc *VerifyUseCase) recordCatchAll(ctx context.Context, domain, suggested string, now time.Time) error {
	record, err := uc.domains.Get(ctx, domain)
	if errors.Is(err, model.ErrNotFound) {
		record = &model.DomainRecord{Domain: domain}
	} else if err != nil {
		return err
	}

	record.HitCount++
	record.CatchAll = true
	if suggested != "" {
		record.SuggestedDomain = suggested
	}
	if now.After(record.LastRefreshed) {
		record.LastRefreshed = now
	}

	return uc.domains.Put(ctx, record)
}

// touchDomain increments the hit counter and refreshes a record without
// changing its catch-all flag. Used when a stale domain record existed but
// the remote call answered for the address, not the domain. Runs under the
// per-domain lock.
func (uc *VerifyUseCase) touchDomain(ctx context.Context, domain string, now time.Time) error {
	record, err := uc.domains.Get(ctx, domain)
	if errors.Is(err, model.ErrNotFound) {
		// Records are never deleted, but nothing to touch means nothing
		// to do.
		return nil
	} else if err != nil {
		return err
	}

	record.HitCount++
	if now.After(record.LastRefreshed) {
		record.LastRefreshed = now
	}

	return uc.domains.Put(ctx, record)
}

// suggestedDomain extracts the domain part of a "did you mean" hint, which
// may arrive as a full address or as a bare domain.
func suggestedDomain(didYouMean string) string {
	if didYouMean == "" {
		return ""
	}
	if _, domain, ok := model.SplitAddress(didYouMean); ok {
		return domain
	}
	return didYouMean
}
