package polynomial

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/assert"
)

func TestLagrangeCoefficients(t *testing.T) {
	domain := 7
	value := 2

	var zero fr.Element
	var one fr.Element
	one.SetOne()

	lagrangePolynomial := GetLagrangePolynomial(domain)[value]
	for i := 0; i < domain; i++ {
		var x fr.Element
		x.SetUint64(uint64(i))
		y := EvaluatePolynomial(lagrangePolynomial, x)
		if i == value {
			assert.Equal(t, y, one, "Should have been one")
		} else {
			assert.Equal(t, y, zero, "Should have been zero")
		}
	}
}

func TestInterpolateOnRange(t *testing.T) {
	// interpolate x^2 + 1 from its evaluations at 0, 1, 2
	values := make([]fr.Element, 3)
	for i := range values {
		values[i].SetUint64(uint64(i*i + 1))
	}
	coeffs := InterpolateOnRange(values)

	var x, expected fr.Element
	x.SetUint64(5)
	expected.SetUint64(26)
	assert.Equal(t, expected, EvaluatePolynomial(coeffs, x))
}

func TestLagrangeBeyondCache(t *testing.T) {
	domain := maxCachedDomainSize + 3
	lagrange := GetLagrangePolynomial(domain)
	assert.Len(t, lagrange, domain)

	var one fr.Element
	one.SetOne()
	var x fr.Element
	x.SetUint64(uint64(domain - 1))
	assert.Equal(t, one, EvaluatePolynomial(lagrange[domain-1], x))
}
