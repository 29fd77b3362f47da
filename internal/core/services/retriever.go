package services

import (
	"math"
	"sort"

	"github.com/custodia-labs/noterag-cli/internal/core/domain"
)

// DefaultTopK is the default number of retrieval results.
const DefaultTopK = 5

// Retriever ranks stored chunks against a query vector by cosine
// similarity. Ranking is deterministic: descending by score, ties broken
// by ascending chunk index within the page.
type Retriever struct {
	topK int
}

// NewRetriever creates a retriever. topK <= 0 selects DefaultTopK.
func NewRetriever(topK int) *Retriever {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Retriever{topK: topK}
}

// TopK returns the highest-ranked chunks for the query vector, fewer if
// the index holds fewer chunks. An empty index yields an empty result.
//
// Chunks with a zero-norm embedding (the degrade fallback) are skipped
// entirely rather than scored as zero, so failed embeddings are not
// masked as weak matches.
func (r *Retriever) TopK(query []float32, chunks []domain.EmbeddedChunk) []domain.SearchResult {
	results := make([]domain.SearchResult, 0, len(chunks))
	for i := range chunks {
		score, ok := CosineSimilarity(query, chunks[i].Embedding)
		if !ok {
			continue
		}
		results = append(results, domain.SearchResult{
			Score: score,
			Chunk: chunks[i],
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Chunk.Metadata.ChunkIndex < results[j].Chunk.Metadata.ChunkIndex
	})

	if len(results) > r.topK {
		results = results[:r.topK]
	}
	return results
}

// CosineSimilarity returns the normalised dot product of two vectors.
// The boolean is false when either vector has zero norm or the lengths
// differ, in which case no meaningful score exists.
func CosineSimilarity(a, b []float32) (float64, bool) {
	if len(a) == 0 || len(a) != len(b) {
		return 0, false
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0, false
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), true
}
