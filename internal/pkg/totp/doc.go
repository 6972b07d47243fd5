// Package totp implements time-based one-time password verification
// (RFC 6238, HMAC-SHA1, 6 digits, 30 second steps) with a bounded clock-drift
// window. Per-step codes come from github.com/pquerna/otp/hotp; this package
// owns the step arithmetic and the window scan.
//
// The engine is stateless: a verification is a pure function of the shared
// secret, the submitted code and the reference time. It keeps no record of
// codes already accepted, so a correct code verifies repeatedly while its
// window is open.
package totp
