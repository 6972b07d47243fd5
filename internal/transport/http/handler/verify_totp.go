package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-totp-verify/internal/application/verification"
	"github.com/go-totp-verify/internal/domain"
)

const maxVerifyBodyBytes = 4 << 10

// TOTPHandler handles second-factor verification.
type TOTPHandler struct {
	svc    verification.Service
	logger *slog.Logger
}

func NewTOTPHandler(svc verification.Service, logger *slog.Logger) *TOTPHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TOTPHandler{svc: svc, logger: logger}
}

func (h *TOTPHandler) Verify(w http.ResponseWriter, r *http.Request) {
	in, err := decodeVerifyBody(http.MaxBytesReader(w, r.Body, maxVerifyBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	out, err := h.svc.Handle(r.Context(), in)
	if err != nil {
		h.httpError(w, r, err)
		return
	}

	switch out {
	case domain.OutcomeValid:
		writeJSON(w, http.StatusOK, VerifyEnvelope{OK: true})
	case domain.OutcomeInvalid:
		writeJSON(w, http.StatusOK, VerifyEnvelope{OK: false})
	case domain.OutcomeNotEnrolled:
		writeJSON(w, http.StatusNotFound, VerifyEnvelope{OK: false, Message: "2FA not enabled for user"})
	default:
		h.logger.ErrorContext(r.Context(), "unknown verification outcome", "outcome", int(out))
		writeError(w, http.StatusInternalServerError, msgInternal)
	}
}

// decodeVerifyBody reads exactly one JSON value. An empty body decodes to the
// zero input; anything after the first value is rejected.
func decodeVerifyBody(body io.Reader) (domain.RawVerificationInput, error) {
	var in domain.RawVerificationInput
	dec := json.NewDecoder(body)
	if err := dec.Decode(&in); err != nil && !errors.Is(err, io.EOF) {
		return in, err
	}
	var trailing json.RawMessage
	if err := dec.Decode(&trailing); !errors.Is(err, io.EOF) {
		return in, errors.New("trailing data after request body")
	}
	return in, nil
}

// httpError maps service errors to responses. Only validation messages are
// returned verbatim; everything else is opaque to the caller.
func (h *TOTPHandler) httpError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, ve.Error())
	case errors.Is(err, domain.ErrStore), errors.Is(err, domain.ErrInternal):
		writeError(w, http.StatusInternalServerError, msgInternal)
	default:
		h.logger.ErrorContext(r.Context(), "unclassified verification error", "err", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
	}
}
