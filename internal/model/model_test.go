package model

import (
	"testing"
	"time"
)

func TestSplitAddress(t *testing.T) {
	tests := []struct {
		name       string
		address    string
		wantLocal  string
		wantDomain string
		wantOK     bool
	}{
		{name: "simple address", address: "user@example.com", wantLocal: "user", wantDomain: "example.com", wantOK: true},
		{name: "plus addressing", address: "user+tag@example.com", wantLocal: "user+tag", wantDomain: "example.com", wantOK: true},
		{name: "no at sign", address: "userexample.com", wantOK: false},
		{name: "two at signs", address: "user@host@example.com", wantOK: false},
		{name: "empty local part", address: "@example.com", wantOK: false},
		{name: "empty domain", address: "user@", wantOK: false},
		{name: "empty string", address: "", wantOK: false},
		{name: "only at sign", address: "@", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			local, domain, ok := SplitAddress(tt.address)
			if ok != tt.wantOK {
				t.Fatalf("SplitAddress(%q) ok = %v, want %v", tt.address, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if local != tt.wantLocal {
				t.Errorf("local = %q, want %q", local, tt.wantLocal)
			}
			if domain != tt.wantDomain {
				t.Errorf("domain = %q, want %q", domain, tt.wantDomain)
			}
		})
	}
}

func TestStatusFromCode(t *testing.T) {
	tests := []struct {
		code int
		want Status
	}{
		{CodeCallFailed, StatusServiceUnavailable},
		{CodeInvalidSyntax, StatusInvalid},
		{CodeInvalidMailbox, StatusInvalid},
		{CodeDisposable, StatusDisposable},
		{CodeCatchAll, StatusCatchAllDomain},
		{CodeValid, StatusValid},
		{CodeInvalidSuggestion, StatusInvalid},
		{CodeUnverifiable, StatusUnverifiable},
		{CodeRoleBased, StatusRoleBased},
		{99, StatusUnverifiable},
		{-1, StatusUnverifiable},
	}

	for _, tt := range tests {
		if got := StatusFromCode(tt.code); got != tt.want {
			t.Errorf("StatusFromCode(%d) = %s, want %s", tt.code, got, tt.want)
		}
	}
}

func TestResultFromOutcome(t *testing.T) {
	result := ResultFromOutcome(Outcome{Code: CodeInvalidSuggestion, DidYouMean: "user@gmail.com"})
	if result.Status != StatusInvalid {
		t.Errorf("Status = %s, want %s", result.Status, StatusInvalid)
	}
	if result.SuggestedAddress != "user@gmail.com" {
		t.Errorf("SuggestedAddress = %q, want %q", result.SuggestedAddress, "user@gmail.com")
	}
}

func TestRecordFreshness(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	window := 30 * 24 * time.Hour

	tests := []struct {
		name      string
		refreshed time.Time
		want      bool
	}{
		{name: "just refreshed", refreshed: now, want: true},
		{name: "one day old", refreshed: now.Add(-24 * time.Hour), want: true},
		{name: "exactly at window", refreshed: now.Add(-window), want: false},
		{name: "older than window", refreshed: now.Add(-window - time.Hour), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dr := &DomainRecord{Domain: "example.com", LastRefreshed: tt.refreshed}
			if got := dr.Fresh(now, window); got != tt.want {
				t.Errorf("DomainRecord.Fresh = %v, want %v", got, tt.want)
			}
			er := &EmailRecord{Address: "a@example.com", LastRefreshed: tt.refreshed}
			if got := er.Fresh(now, window); got != tt.want {
				t.Errorf("EmailRecord.Fresh = %v, want %v", got, tt.want)
			}
		})
	}
}
