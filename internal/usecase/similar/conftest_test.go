package similar

import (
	"context"

	"github.com/kailas-cloud/cinedex/internal/domain/movie"
)

type mockRepo struct {
	vec    []float32
	vecErr error

	rows    []movie.Scored
	pageErr error

	count      int
	countErr   error
	countCalls int

	gotID     int64
	gotOffset int
	gotLimit  int
}

func (m *mockRepo) EmbeddingOf(_ context.Context, id int64) ([]float32, error) {
	m.gotID = id
	return m.vec, m.vecErr
}

func (m *mockRepo) SimilarPage(_ context.Context, _ int64, _ []float32, offset, limit int) ([]movie.Scored, error) {
	m.gotOffset = offset
	m.gotLimit = limit
	return m.rows, m.pageErr
}

func (m *mockRepo) CountWithEmbedding(_ context.Context, _ int64) (int, error) {
	m.countCalls++
	return m.count, m.countErr
}

func scored(id int64, sim float64) movie.Scored {
	return movie.Scored{
		Movie:      movie.Movie{ID: id, Title: "film", Embedding: []float32{0.1, 0.2}},
		Similarity: sim,
	}
}
