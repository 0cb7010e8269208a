package forms

import (
	"context"
	"testing"

	"github.com/mrled/mailvet/internal/model"
)

// stubVerifier answers every call with a fixed result and counts calls.
type stubVerifier struct {
	result model.Result
	calls  int
}

func (s *stubVerifier) Verify(ctx context.Context, address string) model.Result {
	s.calls++
	return s.result
}

func TestCheckSubmission(t *testing.T) {
	tests := []struct {
		name      string
		result    model.Result
		wantBlock bool
		wantText  string
	}{
		{
			name:      "valid passes",
			result:    model.Result{Status: model.StatusValid},
			wantBlock: false,
		},
		{
			name:      "invalid blocks",
			result:    model.Result{Status: model.StatusInvalid},
			wantBlock: true,
			wantText:  "This is not a valid email.",
		},
		{
			name:      "invalid with suggestion blocks",
			result:    model.Result{Status: model.StatusInvalid, SuggestedAddress: "user@gmail.com"},
			wantBlock: true,
			wantText:  "Email not valid. Did you mean user@gmail.com?",
		},
		{
			name:      "malformed blocks",
			result:    model.Result{Status: model.StatusMalformedAddress},
			wantBlock: true,
			wantText:  "This is not a valid email.",
		},
		{
			name:      "disposable blocks",
			result:    model.Result{Status: model.StatusDisposable},
			wantBlock: true,
			wantText:  "Disposable emails not allowed.",
		},
		{
			name:      "catch all passes",
			result:    model.Result{Status: model.StatusCatchAllDomain},
			wantBlock: false,
		},
		{
			name:      "unverifiable passes",
			result:    model.Result{Status: model.StatusUnverifiable},
			wantBlock: false,
		},
		{
			name:      "role based passes",
			result:    model.Result{Status: model.StatusRoleBased},
			wantBlock: false,
		},
		{
			name:      "domain unverified passes",
			result:    model.Result{Status: model.StatusDomainUnverified},
			wantBlock: false,
		},
		{
			name:      "outage passes",
			result:    model.Result{Status: model.StatusServiceUnavailable},
			wantBlock: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gate := NewGate(FeatureComments, true, &stubVerifier{result: tt.result})

			msg := gate.CheckSubmission(context.Background(), "user@example.com")
			if tt.wantBlock {
				if msg == nil {
					t.Fatal("submission accepted, want block")
				}
				if msg.Text != tt.wantText {
					t.Errorf("Text = %q, want %q", msg.Text, tt.wantText)
				}
				if msg.Severity != SeverityError {
					t.Errorf("Severity = %s, want %s", msg.Severity, SeverityError)
				}
				return
			}
			if msg != nil {
				t.Fatalf("submission blocked with %q, want accept", msg.Text)
			}
		})
	}
}

func TestDisabledGateSkipsVerification(t *testing.T) {
	stub := &stubVerifier{result: model.Result{Status: model.StatusInvalid}}
	gate := NewGate(FeatureCheckout, false, stub)

	if msg := gate.CheckSubmission(context.Background(), "user@example.com"); msg != nil {
		t.Fatalf("disabled gate blocked with %q", msg.Text)
	}
	if stub.calls != 0 {
		t.Errorf("verifier called %d times, want 0", stub.calls)
	}
}

func TestEmptyAddressSkipsVerification(t *testing.T) {
	stub := &stubVerifier{result: model.Result{Status: model.StatusInvalid}}
	gate := NewGate(FeatureForms, true, stub)

	if msg := gate.CheckSubmission(context.Background(), ""); msg != nil {
		t.Fatalf("empty address blocked with %q", msg.Text)
	}
	if stub.calls != 0 {
		t.Errorf("verifier called %d times, want 0", stub.calls)
	}
}

func TestAdvise(t *testing.T) {
	tests := []struct {
		name         string
		result       model.Result
		wantOK       bool
		wantSeverity Severity
		wantText     string
	}{
		{
			name:   "service unavailable",
			result: model.Result{Status: model.StatusServiceUnavailable},
			wantOK: false,
		},
		{
			name:         "valid",
			result:       model.Result{Status: model.StatusValid},
			wantOK:       true,
			wantSeverity: SeverityOK,
			wantText:     "Email correct!",
		},
		{
			name:         "invalid",
			result:       model.Result{Status: model.StatusInvalid},
			wantOK:       true,
			wantSeverity: SeverityError,
			wantText:     "This is not a valid email.",
		},
		{
			name:         "catch all",
			result:       model.Result{Status: model.StatusCatchAllDomain},
			wantOK:       true,
			wantSeverity: SeverityWarning,
			wantText:     "This email address can't be verified for correctness. Double check the spelling before submitting.",
		},
		{
			name:         "role based",
			result:       model.Result{Status: model.StatusRoleBased},
			wantOK:       true,
			wantSeverity: SeverityWarning,
			wantText:     "We can't guarantee perfect delivery to role based emails, but use it if needed.",
		},
		{
			name:         "domain unverified",
			result:       model.Result{Status: model.StatusDomainUnverified},
			wantOK:       true,
			wantSeverity: SeverityWarning,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, ok := Advise(tt.result)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if msg.Severity != tt.wantSeverity {
				t.Errorf("Severity = %s, want %s", msg.Severity, tt.wantSeverity)
			}
			if tt.wantText != "" && msg.Text != tt.wantText {
				t.Errorf("Text = %q, want %q", msg.Text, tt.wantText)
			}
		})
	}
}
