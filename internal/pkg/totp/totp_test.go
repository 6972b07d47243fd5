package totp

import (
	"testing"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rfcSecret is the SHA1 seed from RFC 6238 appendix B ("12345678901234567890")
// in base32.
const rfcSecret = "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ"

const exampleSecret = "JBSWY3DPEHPK3PXP"

func mustCode(t *testing.T, e *Engine, counter uint64) string {
	t.Helper()
	code, err := e.Code(rfcSecret, counter)
	require.NoError(t, err)
	return code
}

func mustCodeAt(t *testing.T, e *Engine, secret string, at time.Time) string {
	t.Helper()
	code, err := e.CodeAt(secret, at)
	require.NoError(t, err)
	return code
}

func TestCode_RFC4226Vectors(t *testing.T) {
	want := []string{
		"755224", "287082", "359152", "969429", "338314",
		"254676", "287922", "162583", "399871", "520489",
	}
	e := Default()
	for counter, code := range want {
		assert.Equal(t, code, mustCode(t, e, uint64(counter)), "counter %d", counter)
	}
}

func TestCode_StoredSecretForms(t *testing.T) {
	e := Default()
	want := mustCode(t, e, 1)

	for _, in := range []string{
		"gezdgnbvgy3tqojqgezdgnbvgy3tqojq",
		" GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ\n",
	} {
		got, err := e.Code(in, 1)
		require.NoError(t, err, "input %q", in)
		assert.Equal(t, want, got, "input %q", in)
	}

	unpadded, err := e.Code("JBSWY3DPEHPK3PX", 1)
	require.NoError(t, err)
	padded, err := e.Code("JBSWY3DPEHPK3PX=", 1)
	require.NoError(t, err)
	assert.Equal(t, padded, unpadded)
}

func TestCodeAt_RFC6238Vectors(t *testing.T) {
	// RFC vectors are 8 digits; a 6-digit code is the low six of them.
	cases := []struct {
		unix int64
		want string
	}{
		{59, "287082"},
		{1111111109, "081804"},
		{1111111111, "050471"},
		{1234567890, "005924"},
		{2000000000, "279037"},
		{20000000000, "353130"},
	}
	e := Default()
	for _, c := range cases {
		assert.Equal(t, c.want, mustCodeAt(t, e, rfcSecret, time.Unix(c.unix, 0)), "unix %d", c.unix)
	}
}

func TestCodeAt_MatchesPquerna(t *testing.T) {
	e := Default()
	for _, unix := range []int64{0, 29, 30, 1_700_000_000, 1_700_000_015, 1_999_999_999} {
		at := time.Unix(unix, 0).UTC()
		want, err := totp.GenerateCodeCustom(exampleSecret, at, totp.ValidateOpts{
			Period:    30,
			Digits:    otp.DigitsSix,
			Algorithm: otp.AlgorithmSHA1,
		})
		require.NoError(t, err)
		assert.Equal(t, want, mustCodeAt(t, e, exampleSecret, at), "unix %d", unix)
	}
}

func TestVerify_WindowBoundaries(t *testing.T) {
	e := Default()
	// 1_000_000_020 is exactly on a step edge.
	const edge = int64(1_000_000_020)
	c := edge / 30
	code := mustCode(t, e, uint64(c))

	cases := []struct {
		name string
		unix int64
		want bool
	}{
		{"current step start", edge, true},
		{"current step end", edge + 29, true},
		{"next step start", edge + 30, true},
		{"next step end", edge + 59, true},
		{"two steps ahead", edge + 60, false},
		{"previous step start", edge - 30, true},
		{"previous step last second at edge", edge - 1, true},
		{"two steps behind", edge - 31, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, e.Verify(rfcSecret, code, time.Unix(tc.unix, 0)))
		})
	}
}

func TestVerify_ZeroWindowOnlyCurrentStep(t *testing.T) {
	e, err := NewEngine(0)
	require.NoError(t, err)
	at := time.Unix(1_700_000_010, 0)
	code := mustCodeAt(t, e, rfcSecret, at)

	assert.True(t, e.Verify(rfcSecret, code, at))
	assert.False(t, e.Verify(rfcSecret, code, at.Add(30*time.Second)))
	assert.False(t, e.Verify(rfcSecret, code, at.Add(-30*time.Second)))
}

func TestVerify_WiderWindow(t *testing.T) {
	e, err := NewEngine(2)
	require.NoError(t, err)
	at := time.Unix(1_700_000_010, 0)
	code := mustCodeAt(t, e, rfcSecret, at)

	assert.True(t, e.Verify(rfcSecret, code, at.Add(60*time.Second)))
	assert.False(t, e.Verify(rfcSecret, code, at.Add(90*time.Second)))
}

func TestVerify_RejectsWrongWidth(t *testing.T) {
	e := Default()
	at := time.Unix(1_700_000_010, 0)
	code := mustCodeAt(t, e, rfcSecret, at)

	assert.False(t, e.Verify(rfcSecret, code[:5], at))
	assert.False(t, e.Verify(rfcSecret, code+"0", at))
	assert.False(t, e.Verify(rfcSecret, "", at))
}

func TestVerify_EmptySecret(t *testing.T) {
	at := time.Unix(1_700_000_010, 0)
	for _, secret := range []string{"", "   ", "========"} {
		assert.False(t, Default().Verify(secret, "123456", at), "secret %q", secret)
	}
}

func TestVerify_UndecodableSecret(t *testing.T) {
	assert.False(t, Default().Verify("not base32!", "123456", time.Unix(1_700_000_010, 0)))
}

func TestVerify_Deterministic(t *testing.T) {
	e := Default()
	at := time.Unix(1_700_000_010, 0)
	for _, code := range []string{mustCodeAt(t, e, rfcSecret, at), "000000"} {
		first := e.Verify(rfcSecret, code, at)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, e.Verify(rfcSecret, code, at))
		}
	}
}

func TestVerify_NearEpochSkipsNegativeCounters(t *testing.T) {
	e := Default()
	at := time.Unix(5, 0)
	assert.True(t, e.Verify(rfcSecret, mustCode(t, e, 0), at))
	assert.True(t, e.Verify(rfcSecret, mustCode(t, e, 1), at))
}

func TestCounter_FloorsNegativeTimes(t *testing.T) {
	e := Default()
	assert.Equal(t, int64(0), e.Counter(time.Unix(29, 0)))
	assert.Equal(t, int64(1), e.Counter(time.Unix(30, 0)))
	assert.Equal(t, int64(-1), e.Counter(time.Unix(-1, 0)))
	assert.Equal(t, int64(-1), e.Counter(time.Unix(-30, 0)))
	assert.Equal(t, int64(-2), e.Counter(time.Unix(-31, 0)))
}

func TestNewEngine_WindowBounds(t *testing.T) {
	_, err := NewEngine(-1)
	assert.ErrorIs(t, err, ErrWindowOutOfRange)
	_, err = NewEngine(MaxWindow + 1)
	assert.ErrorIs(t, err, ErrWindowOutOfRange)

	e, err := NewEngine(MaxWindow)
	require.NoError(t, err)
	assert.Equal(t, MaxWindow, e.Window())
	assert.Equal(t, 6, e.Digits())
}

func TestValidateSecret(t *testing.T) {
	for _, in := range []string{
		"JBSWY3DPEHPK3PXP",
		"jbswy3dpehpk3pxp",
		"  JBSWY3DPEHPK3PXP  ",
		"JBSWY3DPEHPK3PX",
	} {
		assert.NoError(t, ValidateSecret(in), "input %q", in)
	}
}

func TestValidateSecret_Invalid(t *testing.T) {
	for _, in := range []string{"", "   ", "====", "not base32!", "18", "JBSW Y3DP EHPK 3PXP"} {
		assert.ErrorIs(t, ValidateSecret(in), ErrInvalidSecret, "input %q", in)
	}
}
