package postgres

import (
	pgvector "github.com/pgvector/pgvector-go"
)

// VectorToPg converts []float32 to a nullable pgvector.Vector
func VectorToPg(v []float32) *pgvector.Vector {
	if len(v) == 0 {
		return nil
	}
	vec := pgvector.NewVector(v)
	return &vec
}

// PgToVector converts a nullable pgvector.Vector to []float32
func PgToVector(v *pgvector.Vector) []float32 {
	if v == nil {
		return nil
	}
	return v.Slice()
}
