package testdb

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/phrazzld/taskmanager-api/internal/ciutil"
	"github.com/phrazzld/taskmanager-api/internal/platform/mongodb"
)

var (
	mongoOnce   sync.Once
	mongoClient *mongo.Client
	mongoErr    error
)

// GetTestMongoDBWithT returns a fresh, indexed MongoDB database that is
// dropped when the test finishes. It skips the test when no server is
// configured.
func GetTestMongoDBWithT(t *testing.T) *mongo.Database {
	t.Helper()

	uri := ciutil.GetTestMongoURI(nil)
	if uri == "" {
		skipOrFail(t, ciutil.EnvMongoURI)
	}

	mongoOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		client, err := mongodb.Connect(ctx, uri, nil)
		if err != nil {
			mongoErr = fmt.Errorf("connect to %s: %w", ciutil.MaskSensitiveValue(uri), err)
			return
		}
		mongoClient = client
	})
	if mongoErr != nil {
		t.Fatalf("test mongodb unavailable: %v", mongoErr)
	}

	name := "taskmanager_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	db := mongoClient.Database(name)

	ctx := context.Background()
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		t.Fatalf("failed to create indexes: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Drop(context.Background()); err != nil {
			t.Logf("failed to drop test database %s: %v", name, err)
		}
	})
	return db
}
