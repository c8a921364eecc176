package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVectorToPg_NilForEmpty(t *testing.T) {
	assert.Nil(t, VectorToPg(nil))
	assert.Nil(t, VectorToPg([]float32{}))
}

func TestVectorRoundTrip(t *testing.T) {
	original := []float32{0.1, 0.2, 0.3}

	pg := VectorToPg(original)
	require.NotNil(t, pg)
	assert.Equal(t, original, PgToVector(pg))
}

func TestPgToVector_NilForNil(t *testing.T) {
	assert.Nil(t, PgToVector(nil))
}
