package mongodb

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/phrazzld/taskmanager-api/internal/domain"
)

func TestTaskDocumentCreatedAtSurvivesBSON(t *testing.T) {
	created := time.Date(2025, 3, 14, 15, 9, 26, 535897932, time.FixedZone("CET", 3600))
	doc := newTaskDocument(uuid.New(), &domain.Task{
		Title:     "precise",
		UserID:    uuid.New(),
		CreatedAt: created,
	})

	returned, err := doc.toDomain()
	require.NoError(t, err)

	raw, err := bson.Marshal(doc)
	require.NoError(t, err)
	var decoded taskDocument
	require.NoError(t, bson.Unmarshal(raw, &decoded))
	read, err := decoded.toDomain()
	require.NoError(t, err)

	assert.True(t, returned.CreatedAt.Equal(read.CreatedAt),
		"returned %v, read back %v", returned.CreatedAt, read.CreatedAt)
	assert.Equal(t, time.UTC, returned.CreatedAt.Location())
	assert.WithinDuration(t, created, returned.CreatedAt, time.Millisecond)
}

func TestStoredTimeTruncatesToMilliseconds(t *testing.T) {
	in := time.Date(2025, 1, 2, 3, 4, 5, 999999999, time.UTC)
	assert.Equal(t, time.Date(2025, 1, 2, 3, 4, 5, 999000000, time.UTC), storedTime(in))
}
