package domain

import "fmt"

// EmbeddingDim is the fixed width of the product embedding vector. It is
// pinned by the embedding model and baked into the index schema; stored and
// query vectors must both have exactly this many components.
const EmbeddingDim = 768

// Product is the catalog document stored in the search engine.
type Product struct {
	Name          string    `json:"name"`
	MainCategory  string    `json:"main_category"`
	SubCategory   string    `json:"sub_category"`
	Image         string    `json:"image"`
	Link          string    `json:"link"`
	Ratings       float64   `json:"ratings"`
	NoOfRatings   int       `json:"no_of_ratings"`
	DiscountPrice float64   `json:"discount_price"`
	ActualPrice   float64   `json:"actual_price"`
	Embedding     []float32 `json:"embedding,omitempty"`
}

// Validate checks the invariants every stored product must hold.
func (p *Product) Validate() error {
	if len(p.Embedding) != EmbeddingDim {
		return fmt.Errorf("%w: embedding must have %d components, got %d",
			ErrInvalidArgument, EmbeddingDim, len(p.Embedding))
	}
	if p.Ratings < 0 || p.NoOfRatings < 0 || p.DiscountPrice < 0 || p.ActualPrice < 0 {
		return fmt.Errorf("%w: numeric fields must be non-negative", ErrInvalidArgument)
	}
	return nil
}

// ZeroEmbedding returns the all-zero placeholder vector assigned at load
// time, pending backfill.
func ZeroEmbedding() []float32 {
	return make([]float32, EmbeddingDim)
}

// IdentifiedProduct pairs a product with its storage identifier. IDs are
// the source row ordinals, assigned at load time and stable thereafter.
type IdentifiedProduct struct {
	ID      string
	Product Product
}

// Hit is a single search result in the engine's hit shape: identifier,
// score, and the source document.
type Hit struct {
	ID     string  `json:"_id"`
	Score  float64 `json:"_score"`
	Source Product `json:"_source"`
}
