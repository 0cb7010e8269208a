// Package forms contains the submission-side consumers of the verification
// orchestrator: gates for comment forms, checkout forms, and a generic form
// framework. Each gate consults its enable flag before calling the
// orchestrator, and translates normalized results into user-facing messages.
package forms

import (
	"context"
	"fmt"

	"github.com/mrled/mailvet/internal/model"
)

// Feature identifies which form integration a gate serves.
type Feature string

const (
	FeatureComments Feature = "comments"
	FeatureCheckout Feature = "checkout"
	FeatureForms    Feature = "forms"
)

// Severity classifies a message for presentation.
type Severity string

const (
	SeverityOK      Severity = "ok"      // rendered green
	SeverityWarning Severity = "warning" // rendered orange
	SeverityError   Severity = "error"   // rendered red
)

// Message is a user-facing translation of a verification result.
type Message struct {
	Text     string
	Severity Severity
}

// Verifier is the orchestrator surface a gate needs.
type Verifier interface {
	Verify(ctx context.Context, address string) model.Result
}

// Gate validates submitted addresses for one form integration.
type Gate struct {
	feature  Feature
	enabled  bool
	verifier Verifier
}

// NewGate creates a gate for a feature. A disabled gate accepts every
// submission without ever calling the orchestrator.
func NewGate(feature Feature, enabled bool, verifier Verifier) *Gate {
	return &Gate{
		feature:  feature,
		enabled:  enabled,
		verifier: verifier,
	}
}

// Feature returns the form integration this gate serves.
func (g *Gate) Feature() Feature { return g.feature }

// Enabled reports whether this gate performs verification at all.
func (g *Gate) Enabled() bool { return g.enabled }

// CheckSubmission validates an address at submission time. It returns nil
// when the submission should be accepted, and a blocking Message otherwise.
//
// Only definitive rejections block: invalid addresses and disposable
// domains. Everything else, including catch-all domains, unverifiable
// addresses, and verification outages, lets the submission through; an
// email field should never be the reason a user cannot submit a form when
// the verdict is uncertain.
func (g *Gate) CheckSubmission(ctx context.Context, address string) *Message {
	if !g.enabled || address == "" {
		return nil
	}

	result := g.verifier.Verify(ctx, address)
	switch result.Status {
	case model.StatusInvalid, model.StatusMalformedAddress:
		return &Message{Text: invalidText(result), Severity: SeverityError}
	case model.StatusDisposable:
		return &Message{Text: "Disposable emails not allowed.", Severity: SeverityError}
	default:
		return nil
	}
}

// Advise translates a result into a live-check message covering every
// status, for as-you-type feedback. The ok return is false when the
// verification attempt failed outright and the caller should show a generic
// try-again notice instead.
func Advise(result model.Result) (Message, bool) {
	switch result.Status {
	case model.StatusServiceUnavailable:
		return Message{}, false
	case model.StatusInvalid, model.StatusMalformedAddress:
		return Message{Text: invalidText(result), Severity: SeverityError}, true
	case model.StatusDisposable:
		return Message{Text: "Disposable emails not allowed.", Severity: SeverityError}, true
	case model.StatusCatchAllDomain, model.StatusUnverifiable, model.StatusDomainUnverified:
		return Message{
			Text:     "This email address can't be verified for correctness. Double check the spelling before submitting.",
			Severity: SeverityWarning,
		}, true
	case model.StatusRoleBased:
		return Message{
			Text:     "We can't guarantee perfect delivery to role based emails, but use it if needed.",
			Severity: SeverityWarning,
		}, true
	case model.StatusValid:
		return Message{Text: "Email correct!", Severity: SeverityOK}, true
	default:
		return Message{}, false
	}
}

func invalidText(result model.Result) string {
	if result.SuggestedAddress == "" {
		return "This is not a valid email."
	}
	return fmt.Sprintf("Email not valid. Did you mean %s?", result.SuggestedAddress)
}
