package payment

import (
	"testing"

	xerrors "healthybowl-service/internal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestComputeSignatureDeterministic(t *testing.T) {
	a := ComputeSignature("order_abc", "pay_xyz", "secret")
	b := ComputeSignature("order_abc", "pay_xyz", "secret")

	assert.Equal(t, a, b)
	assert.Len(t, a, 64, "hex-encoded SHA-256")
}

func TestComputeSignatureDependsOnAllInputs(t *testing.T) {
	base := ComputeSignature("order_abc", "pay_xyz", "secret")

	assert.NotEqual(t, base, ComputeSignature("order_abd", "pay_xyz", "secret"))
	assert.NotEqual(t, base, ComputeSignature("order_abc", "pay_xyy", "secret"))
	assert.NotEqual(t, base, ComputeSignature("order_abc", "pay_xyz", "secres"))
}

func TestVerifySignatureAccepts(t *testing.T) {
	c := NewClient("key_id", "secret", "https://example.invalid", zap.NewNop())

	sig := ComputeSignature("order_abc", "pay_xyz", "secret")
	assert.NoError(t, c.VerifySignature("order_abc", "pay_xyz", sig))
}

func TestVerifySignatureRejectsMutation(t *testing.T) {
	c := NewClient("key_id", "secret", "https://example.invalid", zap.NewNop())

	sig := ComputeSignature("order_abc", "pay_xyz", "secret")
	require.NotEmpty(t, sig)

	// Flip a single character
	mutated := []byte(sig)
	if mutated[0] == 'a' {
		mutated[0] = 'b'
	} else {
		mutated[0] = 'a'
	}

	err := c.VerifySignature("order_abc", "pay_xyz", string(mutated))
	assert.ErrorIs(t, err, xerrors.ErrSignatureMismatch)
}

func TestVerifySignatureRejectsEmpty(t *testing.T) {
	c := NewClient("key_id", "secret", "https://example.invalid", zap.NewNop())

	err := c.VerifySignature("order_abc", "pay_xyz", "")
	assert.ErrorIs(t, err, xerrors.ErrSignatureMismatch)
}
