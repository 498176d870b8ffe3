package authtoken

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestIssueAndParse(t *testing.T) {
	token, err := Issue(testSecret, time.Hour, 42, "owner")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := Parse(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "owner", claims.Role)
}

func TestParse_WrongSecret(t *testing.T) {
	token, err := Issue(testSecret, time.Hour, 1, "user")
	require.NoError(t, err)

	_, err = Parse("another-secret", token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_Expired(t *testing.T) {
	token, err := Issue(testSecret, -time.Minute, 1, "user")
	require.NoError(t, err)

	_, err = Parse(testSecret, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_Garbage(t *testing.T) {
	_, err := Parse(testSecret, "not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
