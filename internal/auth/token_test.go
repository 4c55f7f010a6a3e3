package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/airquality-service/internal/domain"
)

func testIdentity() domain.Identity {
	tenantID := int64(42)
	return domain.Identity{
		UserID:   7,
		Email:    "t@x",
		Role:     domain.RoleTenant,
		TenantID: &tenantID,
	}
}

func TestIssueAndVerifyRoundtrip(t *testing.T) {
	tm := NewTokenManager("secret", 8*time.Hour)

	token, expiresAt, err := tm.Issue(testIdentity())
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(8*time.Hour), expiresAt, time.Minute)

	identity, err := tm.Verify(token)
	require.NoError(t, err)
	require.NotNil(t, identity)
	assert.Equal(t, int64(7), identity.UserID)
	assert.Equal(t, "t@x", identity.Email)
	assert.Equal(t, domain.RoleTenant, identity.Role)
	require.NotNil(t, identity.TenantID)
	assert.Equal(t, int64(42), *identity.TenantID)
}

func TestVerifyEmptyTokenIsAnonymous(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)

	identity, err := tm.Verify("")
	assert.NoError(t, err)
	assert.Nil(t, identity)
}

const base64URLAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

func TestVerifyRejectsTamperedSignature(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)

	token, _, err := tm.Issue(testIdentity())
	require.NoError(t, err)

	// Alter the first character of the signature segment: its six bits all
	// land in the decoded signature, so the change is never absorbed by
	// base64 padding.
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	signature := parts[2]
	replacement := byte('A')
	if signature[0] == 'A' {
		replacement = 'B'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(replacement) + signature[1:]
	require.NotEqual(t, token, tampered)

	identity, err := tm.Verify(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, identity)
}

func TestVerifyRejectsPaddingBitFlip(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)

	token, _, err := tm.Issue(testIdentity())
	require.NoError(t, err)

	// An HS256 signature is 32 bytes, encoded as 43 base64url characters;
	// the final character carries two bits that decode to nothing. Flipping
	// the lowest bit of that character produces a different token string
	// that decodes to the identical signature bytes, so only strict
	// (canonical) decoding can reject it.
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	signature := parts[2]
	require.Len(t, signature, 43)

	last := signature[len(signature)-1]
	idx := strings.IndexByte(base64URLAlphabet, last)
	require.GreaterOrEqual(t, idx, 0)
	flipped := base64URLAlphabet[idx^1]
	tampered := parts[0] + "." + parts[1] + "." + signature[:len(signature)-1] + string(flipped)
	require.NotEqual(t, token, tampered)

	identity, err := tm.Verify(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, identity)
}

func TestVerifyRejectsMutatedClaims(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)

	token, _, err := tm.Issue(testIdentity())
	require.NoError(t, err)

	// Swap the payload segment for another token's payload, keeping the
	// original signature.
	other := testIdentity()
	otherTenant := int64(43)
	other.TenantID = &otherTenant
	otherToken, _, err := tm.Issue(other)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	otherParts := strings.Split(otherToken, ".")
	require.Len(t, parts, 3)
	require.Len(t, otherParts, 3)
	spliced := parts[0] + "." + otherParts[1] + "." + parts[2]

	identity, err := tm.Verify(spliced)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, identity)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	tm := NewTokenManager("secret", time.Millisecond)

	token, _, err := tm.Issue(testIdentity())
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	identity, err := tm.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, identity)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, _, err := NewTokenManager("secret-a", time.Hour).Issue(testIdentity())
	require.NoError(t, err)

	identity, err := NewTokenManager("secret-b", time.Hour).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, identity)
}

func TestVerifyRejectsMalformedToken(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)

	identity, err := tm.Verify("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, identity)
}
