package auth_test

import (
	"testing"

	"github.com/dom/postboard/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndVerify(t *testing.T) {
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("correct horse")
	require.NoError(t, err)

	assert.NotEqual(t, "correct horse", hash)
	assert.True(t, hasher.Verify("correct horse", hash))
	assert.False(t, hasher.Verify("wrong horse", hash))
	assert.False(t, hasher.Verify("correct horse", "not-a-bcrypt-hash"))
}

func TestBcryptHasher_Salted(t *testing.T) {
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)

	first, err := hasher.Hash("password123")
	require.NoError(t, err)
	second, err := hasher.Hash("password123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestNewBcryptHasher_CostBounds(t *testing.T) {
	tests := []struct {
		name     string
		cost     int
		wantCost int
	}{
		{name: "in range", cost: bcrypt.MinCost, wantCost: bcrypt.MinCost},
		{name: "too low", cost: 1, wantCost: bcrypt.DefaultCost},
		{name: "too high", cost: bcrypt.MaxCost + 1, wantCost: bcrypt.DefaultCost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := auth.NewBcryptHasher(tt.cost).Hash("pw")
			require.NoError(t, err)

			cost, err := bcrypt.Cost([]byte(hash))
			require.NoError(t, err)
			assert.Equal(t, tt.wantCost, cost)
		})
	}
}
