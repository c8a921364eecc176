package search

// DefaultLimit は検索結果の最大件数
const DefaultLimit = 30

// Result はランキング済みの検索結果1件を表す
type Result struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Category        *string `json:"category"`
	Price           float64 `json:"price"`
	Distance        float64 `json:"distance"`
	SimilarityScore float64 `json:"similarity_score"`
}
