package product

import (
	"testing"

	"github.com/openmart/prodsearch/internal/domain"
)

func TestHashFields_RoundTrip(t *testing.T) {
	in := domain.Product{
		Name:          "Bluetooth Speaker",
		MainCategory:  "electronics",
		SubCategory:   "Speakers",
		Image:         "https://img.example.com/s.jpg",
		Link:          "https://example.com/s",
		Ratings:       4.4,
		NoOfRatings:   8123,
		DiscountPrice: 1499,
		ActualPrice:   2999,
		Embedding:     []float32{0.25, -0.5, 1.0},
	}

	out := ParseHashFields(buildHashFields(&in))

	if out.Name != in.Name || out.MainCategory != in.MainCategory {
		t.Errorf("text fields mangled: %+v", out)
	}
	if out.Ratings != in.Ratings || out.NoOfRatings != in.NoOfRatings {
		t.Errorf("numeric fields mangled: %+v", out)
	}
	if out.DiscountPrice != in.DiscountPrice || out.ActualPrice != in.ActualPrice {
		t.Errorf("prices mangled: %+v", out)
	}
	if len(out.Embedding) != 3 || out.Embedding[1] != -0.5 {
		t.Errorf("embedding mangled: %v", out.Embedding)
	}
}

func TestParseHashFields_Unparsable(t *testing.T) {
	p := ParseHashFields(map[string]string{
		"name":    "x",
		"ratings": "not-a-number",
	})
	if p.Ratings != 0 {
		t.Errorf("expected zero ratings, got %v", p.Ratings)
	}
	if p.Embedding != nil {
		t.Errorf("expected nil embedding, got %v", p.Embedding)
	}
}

func TestBytesToVector_BadLength(t *testing.T) {
	if v := BytesToVector("abc"); v != nil {
		t.Errorf("expected nil for truncated blob, got %v", v)
	}
}

func TestVectorRoundTrip(t *testing.T) {
	in := []float32{0, 1, -1, 3.14159}
	out := BytesToVector(VectorToBytes(in))
	if len(out) != len(in) {
		t.Fatalf("expected %d components, got %d", len(in), len(out))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("component %d: got %v, want %v", i, out[i], in[i])
		}
	}
}
