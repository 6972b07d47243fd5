package totp

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/hotp"
)

const (
	// DefaultDigits is the code width.
	DefaultDigits = 6
	// DefaultPeriod is the length of one time step.
	DefaultPeriod = 30 * time.Second
	// DefaultWindow accepts the previous, current and next step.
	DefaultWindow = 1
	// MaxWindow caps the number of adjacent steps checked on each side.
	MaxWindow = 5
)

var (
	ErrWindowOutOfRange = errors.New("totp: window out of range")
	ErrInvalidSecret    = errors.New("totp: invalid secret")
)

// Engine verifies codes for one fixed digit width, period and window.
// Secrets are passed in their stored base32 form.
type Engine struct {
	digits int
	period int64
	window int
	opts   hotp.ValidateOpts
}

// NewEngine returns a 6-digit, 30-second engine checking window steps on each
// side of the current one.
func NewEngine(window int) (*Engine, error) {
	if window < 0 || window > MaxWindow {
		return nil, fmt.Errorf("%w: %d (allowed 0..%d)", ErrWindowOutOfRange, window, MaxWindow)
	}
	return &Engine{
		digits: DefaultDigits,
		period: int64(DefaultPeriod / time.Second),
		window: window,
		opts: hotp.ValidateOpts{
			Digits:    otp.DigitsSix,
			Algorithm: otp.AlgorithmSHA1,
		},
	}, nil
}

// Default returns an engine with DefaultWindow.
func Default() *Engine {
	e, _ := NewEngine(DefaultWindow)
	return e
}

func (e *Engine) Digits() int { return e.digits }

func (e *Engine) Window() int { return e.window }

// Counter returns floor(unix(at) / period).
func (e *Engine) Counter(at time.Time) int64 {
	sec := at.Unix()
	c := sec / e.period
	if sec%e.period != 0 && sec < 0 {
		c--
	}
	return c
}

// Code computes the code for a single counter value.
func (e *Engine) Code(secret string, counter uint64) (string, error) {
	if isBlank(secret) {
		return "", fmt.Errorf("%w: empty", ErrInvalidSecret)
	}
	code, err := hotp.GenerateCodeCustom(secret, counter, e.opts)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidSecret, err)
	}
	return code, nil
}

// CodeAt computes the code for the step containing at. Instants before the
// Unix epoch map to counter 0.
func (e *Engine) CodeAt(secret string, at time.Time) (string, error) {
	c := e.Counter(at)
	if c < 0 {
		c = 0
	}
	return e.Code(secret, uint64(c))
}

// Verify reports whether code matches any step in [C-window, C+window] where
// C is the step containing at. Every candidate is computed and compared in
// constant time; there is no early exit on a match. An unusable secret never
// verifies.
func (e *Engine) Verify(secret, code string, at time.Time) bool {
	if len(code) != e.digits || isBlank(secret) {
		return false
	}

	submitted := []byte(code)
	c := e.Counter(at)
	matched := 0
	for i := -e.window; i <= e.window; i++ {
		n := c + int64(i)
		if n < 0 {
			continue
		}
		candidate, err := e.Code(secret, uint64(n))
		if err != nil {
			return false
		}
		matched |= subtle.ConstantTimeCompare([]byte(candidate), submitted)
	}
	return matched == 1
}

// ValidateSecret reports whether encoded is a usable base32 secret as stored
// by authenticator enrollment. Lowercase, surrounding whitespace and missing
// padding are accepted.
func ValidateSecret(encoded string) error {
	_, err := Default().Code(encoded, 0)
	return err
}

// isBlank also catches padding-only input, which decodes to an empty key.
func isBlank(secret string) bool {
	return strings.Trim(secret, "= \t\r\n") == ""
}
