package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignIsDeterministic(t *testing.T) {
	first := Sign("secret", "order_1", "pay_1")
	second := Sign("secret", "order_1", "pay_1")
	assert.Equal(t, first, second)
	assert.Len(t, first, 64)
}

func TestVerifySignature(t *testing.T) {
	sig := Sign("secret", "order_1", "pay_1")

	assert.True(t, VerifySignature("secret", "order_1", "pay_1", sig))
	assert.False(t, VerifySignature("secret", "order_1", "pay_2", sig))
	assert.False(t, VerifySignature("secret", "order_2", "pay_1", sig))
	assert.False(t, VerifySignature("other", "order_1", "pay_1", sig))
	assert.False(t, VerifySignature("secret", "order_1", "pay_1", ""))
}

func TestSignSeparatorPreventsAmbiguity(t *testing.T) {
	// "ab"+"c" and "a"+"bc" must not collide.
	assert.NotEqual(t, Sign("secret", "ab", "c"), Sign("secret", "a", "bc"))
}
