package hash

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_DefaultCost(t *testing.T) {
	h, err := HashPassword("secret", 0)
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(h))
	require.NoError(t, err)
	assert.Equal(t, DefaultCost, cost)
	assert.True(t, CheckPassword(h, "secret"))
}

func TestHashPassword_Salted(t *testing.T) {
	a, err := HashPassword("secret", bcrypt.MinCost)
	require.NoError(t, err)
	b, err := HashPassword("secret", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.True(t, CheckPassword(a, "secret"))
	assert.True(t, CheckPassword(b, "secret"))
}

func TestCheckPassword_Mismatch(t *testing.T) {
	h, err := HashPassword("secret", bcrypt.MinCost)
	require.NoError(t, err)

	assert.False(t, CheckPassword(h, "Secret"))
	assert.False(t, CheckPassword("not-a-hash", "secret"))
}

func TestHashPassword_LongPasswordIsTruncated(t *testing.T) {
	long := strings.Repeat("p", 80)

	h, err := HashPassword(long, bcrypt.MinCost)
	require.NoError(t, err)

	assert.True(t, CheckPassword(h, long))
	assert.True(t, CheckPassword(h, long[:MaxPasswordBytes]))
	assert.False(t, CheckPassword(h, long[:MaxPasswordBytes-1]))
}
