package memory

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
	"unicode"
)

// DefaultHashingDimensions is the vector size of the hashing embedder
const DefaultHashingDimensions = 256

// HashingEmbedder is an offline, deterministic embedder. Word unigrams and
// bigrams are hashed into a fixed number of signed buckets and the vector is
// L2-normalized, so transcripts sharing vocabulary land close together.
type HashingEmbedder struct {
	Dimensions int
}

// NewHashingEmbedder creates a hashing embedder with the default size
func NewHashingEmbedder() *HashingEmbedder {
	return &HashingEmbedder{Dimensions: DefaultHashingDimensions}
}

// EmbedDocument implements Embedder
func (h *HashingEmbedder) EmbedDocument(ctx context.Context, text string) ([]float32, error) {
	return h.embed(ctx, text)
}

// EmbedQuery implements Embedder
func (h *HashingEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return h.embed(ctx, text)
}

func (h *HashingEmbedder) embed(ctx context.Context, text string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dims := h.Dimensions
	if dims <= 0 {
		dims = DefaultHashingDimensions
	}

	vec := make([]float64, dims)
	tokens := Tokenize(text)
	for i, tok := range tokens {
		addFeature(vec, tok)
		if i > 0 {
			addFeature(vec, tokens[i-1]+" "+tok)
		}
	}

	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	out := make([]float32, dims)
	if norm == 0 {
		return out, nil
	}
	norm = math.Sqrt(norm)
	for i, v := range vec {
		out[i] = float32(v / norm)
	}
	return out, nil
}

func addFeature(vec []float64, feature string) {
	hasher := fnv.New64a()
	_, _ = hasher.Write([]byte(feature))
	sum := hasher.Sum64()

	idx := int(sum % uint64(len(vec)))
	if sum&(1<<63) != 0 {
		vec[idx]--
	} else {
		vec[idx]++
	}
}

// Tokenize lower-cases text and splits it on anything that is not a letter or number
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}
