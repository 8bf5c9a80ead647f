package corpus

import (
	"errors"
	"math"

	"flightchat/internal/domain"
	"flightchat/internal/embedding"
)

// Index is an in-memory similarity index over the QnA corpus. It embeds
// every question once at preparation time and answers lookups with a
// brute-force cosine scan. Entries are never mutated after Prepare.
type Index struct {
	embedder embedding.Embedder
	entries  []domain.QAEntry
	vectors  [][]float64
	prepared bool
}

// NewIndex creates an unprepared index over the given embedder.
func NewIndex(embedder embedding.Embedder) *Index {
	return &Index{embedder: embedder}
}

// Prepare builds the embedder vocabulary from the corpus questions and
// embeds each entry.
func (ix *Index) Prepare(entries []domain.QAEntry) error {
	if len(entries) == 0 {
		return errors.New("empty corpus")
	}
	questions := make([]string, len(entries))
	for i, e := range entries {
		questions[i] = e.Question
	}
	if err := ix.embedder.Prepare(questions); err != nil {
		return err
	}
	vectors := make([][]float64, len(entries))
	for i, q := range questions {
		vec, err := ix.embedder.Embed(q)
		if err != nil {
			return err
		}
		vectors[i] = vec
	}
	ix.entries = entries
	ix.vectors = vectors
	ix.prepared = true
	return nil
}

// BestMatch returns the answer of the highest-scoring corpus entry for the
// query, along with its cosine similarity. Ties resolve to the earliest
// entry in corpus order. A query sharing no vocabulary with the corpus
// scores zero.
func (ix *Index) BestMatch(query string) (string, float64) {
	if !ix.prepared {
		return "", 0
	}
	qvec, err := ix.embedder.Embed(query)
	if err != nil {
		return "", 0
	}
	bestIdx := -1
	bestScore := 0.0
	for i, v := range ix.vectors {
		score := cosine(qvec, v)
		if bestIdx == -1 || score > bestScore {
			bestIdx = i
			bestScore = score
		}
	}
	if bestIdx == -1 {
		return "", 0
	}
	return ix.entries[bestIdx].Answer, bestScore
}

// cosine computes full cosine similarity; vectors from remote embedders are
// not guaranteed to be L2-normalized.
func cosine(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	dot, na, nb := 0.0, 0.0, 0.0
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
	}
	for _, v := range a {
		na += v * v
	}
	for _, v := range b {
		nb += v * v
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

var _ domain.Index = (*Index)(nil)
