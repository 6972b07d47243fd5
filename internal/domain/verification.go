package domain

// RawVerificationInput is the decoded request body before type checks.
// Fields stay untyped so a number or null can be told apart from a bad string.
type RawVerificationInput struct {
	UserID any `json:"user_id"`
	Token  any `json:"token"`
}

// VerificationRequest is a structurally valid request. Never persisted.
type VerificationRequest struct {
	UserID string `validate:"required"`
	Code   string `validate:"totp_code"`
}

// Outcome is the result of a verification that reached a decision.
type Outcome int

const (
	OutcomeInvalid Outcome = iota
	OutcomeValid
	// OutcomeNotEnrolled means the user has no second factor on file.
	OutcomeNotEnrolled
)

func (o Outcome) String() string {
	switch o {
	case OutcomeValid:
		return "valid"
	case OutcomeInvalid:
		return "invalid"
	case OutcomeNotEnrolled:
		return "not_enrolled"
	default:
		return "unknown"
	}
}
