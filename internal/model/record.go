package model

import (
	"strings"
	"time"
)

// Outcome is the raw payload from the remote verification service. It is
// persisted verbatim in the email cache so that a cache hit reproduces the
// original answer exactly.
type Outcome struct {
	Code       int    `json:"code"`
	DidYouMean string `json:"did_you_mean,omitempty"`
}

// Result is the normalized answer returned to consumers.
type Result struct {
	Status Status
	// SuggestedAddress is a corrected full address ("did you mean") when the
	// verifier or the domain cache can offer one.
	SuggestedAddress string
}

// ResultFromOutcome normalizes a raw remote outcome.
func ResultFromOutcome(o Outcome) Result {
	return Result{
		Status:           StatusFromCode(o.Code),
		SuggestedAddress: o.DidYouMean,
	}
}

// DomainRecord caches the catch-all classification of a mail domain.
type DomainRecord struct {
	Domain string
	// HitCount is incremented on every lookup that matches this record,
	// whether or not the domain is a known catch-all. Always >= 1.
	HitCount int64
	// CatchAll marks a domain that accepts mail at any local part.
	CatchAll bool
	// SuggestedDomain is a corrected domain spelling, when known.
	SuggestedDomain string
	// LastRefreshed is the time of the last remote confirmation.
	// Monotonically non-decreasing for the life of the record.
	LastRefreshed time.Time
}

// Fresh reports whether the record was confirmed remotely within the window.
func (r *DomainRecord) Fresh(now time.Time, window time.Duration) bool {
	return now.Sub(r.LastRefreshed) < window
}

// EmailRecord caches the last verification outcome for one exact address.
// A record exists only after a remote call has completed for that address.
type EmailRecord struct {
	Address       string
	Outcome       Outcome
	LastRefreshed time.Time
}

// Fresh reports whether the record was confirmed remotely within the window.
func (r *EmailRecord) Fresh(now time.Time, window time.Duration) bool {
	return now.Sub(r.LastRefreshed) < window
}

// SplitAddress splits an email address on its single "@" separator.
// Addresses without exactly one "@", or with an empty local part or domain,
// are rejected as malformed.
func SplitAddress(address string) (local, domain string, ok bool) {
	at := strings.IndexByte(address, '@')
	if at <= 0 || at == len(address)-1 {
		return "", "", false
	}
	if strings.IndexByte(address[at+1:], '@') >= 0 {
		return "", "", false
	}
	return address[:at], address[at+1:], true
}
