package memory_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/taskmanager-api/internal/platform/memory"
	"github.com/phrazzld/taskmanager-api/internal/store"
	"github.com/phrazzld/taskmanager-api/internal/store/storetest"
)

func TestUserStore(t *testing.T) {
	storetest.RunUserStoreTests(t, func(t *testing.T) store.UserStore {
		return memory.NewUserStore(nil)
	})
}

func TestTaskStore(t *testing.T) {
	storetest.RunTaskStoreTests(t,
		func(t *testing.T) store.TaskStore { return memory.NewTaskStore(nil) },
		func(t *testing.T) uuid.UUID { return uuid.New() },
	)
}
