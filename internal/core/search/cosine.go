package search

import "math"

// MaxCosineDistance はコサイン距離の最大値（逆向きのベクトル）
const MaxCosineDistance = 2.0

// CosineDistance は2つのベクトルのコサイン距離 1 - dot(a,b)/(|a|*|b|) を返す
// 値域は [0, 2]。0 は同一方向、2 は逆方向を表す。
// どちらかがゼロベクトル（または次元不一致）の場合は角度が定義できないため、
// 最大距離 2.0 を返してランキングの最後尾に回す
func CosineDistance(a, b []float32) float64 {
	if len(a) != len(b) {
		return MaxCosineDistance
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return MaxCosineDistance
	}

	return 1 - dot/(math.Sqrt(normA)*math.Sqrt(normB))
}
