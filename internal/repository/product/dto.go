package product

import (
	"encoding/binary"
	"math"
	"strconv"

	"github.com/openmart/prodsearch/internal/domain"
)

// Hash field names. The embedding field holds the raw FLOAT32 blob the FT
// vector index reads.
const (
	fieldName          = "name"
	fieldMainCategory  = "main_category"
	fieldSubCategory   = "sub_category"
	fieldImage         = "image"
	fieldLink          = "link"
	fieldRatings       = "ratings"
	fieldNoOfRatings   = "no_of_ratings"
	fieldDiscountPrice = "discount_price"
	fieldActualPrice   = "actual_price"
	fieldEmbedding     = "embedding"
)

// buildHashFields converts a domain Product into a flat map[string]string for HSET.
func buildHashFields(p *domain.Product) map[string]string {
	return map[string]string{
		fieldName:          p.Name,
		fieldMainCategory:  p.MainCategory,
		fieldSubCategory:   p.SubCategory,
		fieldImage:         p.Image,
		fieldLink:          p.Link,
		fieldRatings:       formatFloat(p.Ratings),
		fieldNoOfRatings:   strconv.Itoa(p.NoOfRatings),
		fieldDiscountPrice: formatFloat(p.DiscountPrice),
		fieldActualPrice:   formatFloat(p.ActualPrice),
		fieldEmbedding:     VectorToBytes(p.Embedding),
	}
}

// ParseHashFields converts a flat hash map back into a domain Product.
// Unparsable numerics come back as zero, mirroring the ingestion policy.
func ParseHashFields(m map[string]string) domain.Product {
	return domain.Product{
		Name:          m[fieldName],
		MainCategory:  m[fieldMainCategory],
		SubCategory:   m[fieldSubCategory],
		Image:         m[fieldImage],
		Link:          m[fieldLink],
		Ratings:       parseFloat(m[fieldRatings]),
		NoOfRatings:   parseInt(m[fieldNoOfRatings]),
		DiscountPrice: parseFloat(m[fieldDiscountPrice]),
		ActualPrice:   parseFloat(m[fieldActualPrice]),
		Embedding:     BytesToVector(m[fieldEmbedding]),
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

func parseInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// VectorToBytes serializes []float32 to a binary string (4 bytes per float, little-endian).
func VectorToBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}

// BytesToVector deserializes a binary string back to []float32.
func BytesToVector(s string) []float32 {
	b := []byte(s)
	if len(b) == 0 || len(b)%4 != 0 {
		return nil
	}
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v
}
