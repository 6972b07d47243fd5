package verification

import (
	"errors"
	"fmt"

	"github.com/go-totp-verify/internal/domain"
	"github.com/go-totp-verify/internal/pkg/validate"
)

// ValidateRequest checks the shape of an inbound request before any secret
// material is touched. user_id is checked before token.
func ValidateRequest(in domain.RawVerificationInput) (domain.VerificationRequest, error) {
	userID, ok := in.UserID.(string)
	if !ok || userID == "" {
		return domain.VerificationRequest{}, &domain.ValidationError{Kind: domain.KindMissingOrInvalidUserID}
	}
	code, ok := in.Token.(string)
	if !ok {
		return domain.VerificationRequest{}, &domain.ValidationError{Kind: domain.KindMalformedCode}
	}

	req := domain.VerificationRequest{UserID: userID, Code: code}
	if err := validate.Struct(req); err != nil {
		var fe *validate.FieldError
		if !errors.As(err, &fe) {
			return domain.VerificationRequest{}, fmt.Errorf("validate request: %v: %w", err, domain.ErrInternal)
		}
		if fe.Field == "UserID" {
			return domain.VerificationRequest{}, &domain.ValidationError{Kind: domain.KindMissingOrInvalidUserID}
		}
		return domain.VerificationRequest{}, &domain.ValidationError{Kind: domain.KindMalformedCode}
	}
	return req, nil
}
