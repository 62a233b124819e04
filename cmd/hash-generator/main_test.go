package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/taskmanager-api/internal/service/auth"
)

func TestGenerate(t *testing.T) {
	var out bytes.Buffer
	passwords := []string{"testpassword123", "тест123"}

	require.NoError(t, generate(context.Background(), &out, auth.DefaultCost, passwords))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, len(passwords))

	hasher := auth.NewBcryptHasher(auth.DefaultCost)
	for i, line := range lines {
		parts := strings.SplitN(line, "\t", 2)
		require.Len(t, parts, 2)
		assert.Equal(t, passwords[i], parts[0])
		assert.True(t, hasher.Verify(passwords[i], parts[1]))
	}
}
