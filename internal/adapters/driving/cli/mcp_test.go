package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tidewater-labs/lakeview-cli/internal/core/domain"
)

func TestMCPCmd_Use(t *testing.T) {
	assert.Equal(t, "mcp", mcpCmd.Use)
}

func TestMCPServeCmd_Use(t *testing.T) {
	assert.Equal(t, "serve", mcpServeCmd.Use)
}

func TestMCPServeCmd_HasPortFlag(t *testing.T) {
	flag := mcpServeCmd.Flags().Lookup("port")
	require.NotNil(t, flag, "port flag should exist")
	assert.Equal(t, "p", flag.Shorthand)
	assert.Equal(t, "0", flag.DefValue)
}

func TestForwardingPorts_ResolveCurrentServices(t *testing.T) {
	mocks, cleanup := setupTestServices()
	defer cleanup()

	mocks.search.results = []domain.Document{{ID: "post-1", Kind: "post"}}
	mocks.document.count = 7

	docs, err := searchPort{}.Search(context.Background(), "harbour", domain.SearchOptions{})
	require.NoError(t, err)
	assert.Len(t, docs, 1)
	assert.Equal(t, "harbour", mocks.search.lastQuery)

	count, err := documentPort{}.Count(context.Background(), "post")
	require.NoError(t, err)
	assert.Equal(t, 7, count)
}

func TestForwardingPorts_SeeServiceRebuild(t *testing.T) {
	mocks, cleanup := setupTestServices()
	defer cleanup()

	replacement := &mockSearchService{
		results: []domain.Document{{ID: "post-2", Kind: "post"}},
	}
	servicesMu.Lock()
	current.search = replacement
	servicesMu.Unlock()

	docs, err := searchPort{}.Search(context.Background(), "harbour", domain.SearchOptions{})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "post-2", docs[0].ID)
	assert.Empty(t, mocks.search.lastQuery, "old service should not receive calls")
}
