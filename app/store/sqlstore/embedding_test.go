package sqlstore

import (
	"testing"

	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
)

func TestBuildSimilarityQuery(t *testing.T) {
	vector := pgvector.NewVector([]float32{0.1, 0.2, 0.3})

	queryString, args, err := buildSimilarityQuery("memochat_embeddings", vector, 0.5, 4)
	assert.NoError(t, err)

	assert.Equal(t,
		"SELECT content, 1 - (embedding <=> $1) AS similarity FROM memochat_embeddings "+
			"WHERE 1 - (embedding <=> $2) > $3 ORDER BY similarity DESC LIMIT 4",
		queryString)

	assert.Len(t, args, 3)
	assert.Equal(t, vector, args[0])
	assert.Equal(t, vector, args[1])
	assert.Equal(t, float32(0.5), args[2])
}
