package model

// Status is the normalized verification outcome, independent of the raw
// codes returned by the remote verification service.
type Status int

const (
	// StatusServiceUnavailable means the remote service could not be reached,
	// the response could not be parsed, a cache write failed, or no API key
	// is configured. Never cached; retrying later may succeed.
	StatusServiceUnavailable Status = iota

	// StatusMalformedAddress means the address failed local shape checks or
	// its domain does not resolve. The remote service is never consulted.
	StatusMalformedAddress

	// StatusInvalid means the address has invalid syntax or the mailbox does
	// not exist.
	StatusInvalid

	// StatusDisposable means the domain provides throwaway mailboxes.
	StatusDisposable

	// StatusCatchAllDomain means the domain accepts mail at any local part,
	// so per-address verification carries no signal.
	StatusCatchAllDomain

	// StatusValid means the mailbox was confirmed deliverable.
	StatusValid

	// StatusUnverifiable means the remote service could not determine
	// deliverability for this address.
	StatusUnverifiable

	// StatusRoleBased means the address represents a function (admin@,
	// support@) rather than a person.
	StatusRoleBased

	// StatusDomainUnverified means the domain was recently confirmed
	// non-catch-all, and the address itself has not been individually
	// verified within the freshness window. This is an "insufficient fresh
	// signal" answer, not a positive validity claim.
	StatusDomainUnverified
)

// String returns the machine-readable name used in API responses and logs.
func (s Status) String() string {
	switch s {
	case StatusServiceUnavailable:
		return "service_unavailable"
	case StatusMalformedAddress:
		return "malformed_address"
	case StatusInvalid:
		return "invalid"
	case StatusDisposable:
		return "disposable"
	case StatusCatchAllDomain:
		return "catch_all_domain"
	case StatusValid:
		return "valid"
	case StatusUnverifiable:
		return "unverifiable"
	case StatusRoleBased:
		return "role_based"
	case StatusDomainUnverified:
		return "domain_unverified"
	default:
		return "unknown"
	}
}

// Remote verification codes as returned by the debounce.io API.
const (
	CodeCallFailed        = 0
	CodeInvalidSyntax     = 1
	CodeInvalidMailbox    = 2
	CodeDisposable        = 3
	CodeCatchAll          = 4
	CodeValid             = 5
	CodeInvalidSuggestion = 6
	CodeUnverifiable      = 7
	CodeRoleBased         = 8
)

// StatusFromCode maps a remote verification code to a normalized Status.
// Unknown codes map to StatusUnverifiable rather than failing, so a new
// upstream code degrades to "double check the spelling" instead of an error.
func StatusFromCode(code int) Status {
	switch code {
	case CodeCallFailed:
		return StatusServiceUnavailable
	case CodeInvalidSyntax, CodeInvalidMailbox, CodeInvalidSuggestion:
		return StatusInvalid
	case CodeDisposable:
		return StatusDisposable
	case CodeCatchAll:
		return StatusCatchAllDomain
	case CodeValid:
		return StatusValid
	case CodeUnverifiable:
		return StatusUnverifiable
	case CodeRoleBased:
		return StatusRoleBased
	default:
		return StatusUnverifiable
	}
}
