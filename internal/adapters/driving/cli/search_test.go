package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tidewater-labs/lakeview-cli/internal/core/domain"
)

func TestSearchCmd_Use(t *testing.T) {
	assert.Equal(t, "search [query]", searchCmd.Use)
}

func TestSearchCmd_Short(t *testing.T) {
	assert.Equal(t, "Search lake documents", searchCmd.Short)
}

func TestSearchCmd_RequiresExactlyOneArg(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"search"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestSearchCmd_HasLimitFlag(t *testing.T) {
	flag := searchCmd.Flags().Lookup("limit")
	require.NotNil(t, flag, "limit flag should exist")
	assert.Equal(t, "n", flag.Shorthand)
	assert.Equal(t, "10", flag.DefValue)
}

func TestSearchCmd_HasKindsFlag(t *testing.T) {
	flag := searchCmd.Flags().Lookup("kinds")
	require.NotNil(t, flag, "kinds flag should exist")
	assert.Equal(t, "k", flag.Shorthand)
}

func TestSearchCmd_ExecutesWithQuery(t *testing.T) {
	mocks, cleanup := setupTestServices()
	defer cleanup()

	mocks.search.results = []domain.Document{
		{ID: "post-1", Kind: "post", Score: 4.5,
			Fields: map[string]any{"title": "Harbour Lights"}},
	}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"search", "harbour"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Equal(t, "harbour", mocks.search.lastQuery)
	assert.Contains(t, buf.String(), "Harbour Lights")
	assert.Contains(t, buf.String(), "post-1")
}

func TestSearchCmd_PassesFlagsToService(t *testing.T) {
	mocks, cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"search", "harbour", "--kinds", "post,author", "-n", "3"})
	defer func() {
		rootCmd.SetArgs(nil)
		searchKinds = nil
		searchLimit = 10
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Equal(t, []string{"post", "author"}, mocks.search.lastOpts.Kinds)
	assert.Equal(t, 3, mocks.search.lastOpts.Limit)
}

func TestSearchCmd_JSONOutput(t *testing.T) {
	mocks, cleanup := setupTestServices()
	defer cleanup()

	mocks.search.results = []domain.Document{
		{ID: "post-1", Kind: "post", Score: 2.25,
			Fields: map[string]any{"title": "Harbour Lights"}},
	}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"search", "harbour", "--json"})
	defer func() {
		rootCmd.SetArgs(nil)
		searchJSON = false
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), `"id": "post-1"`)
	assert.Contains(t, buf.String(), `"title": "Harbour Lights"`)
	assert.Contains(t, buf.String(), `"score": 2.25`)
}

func TestSearchCmd_ServiceError(t *testing.T) {
	mocks, cleanup := setupTestServices()
	defer cleanup()

	mocks.search.err = errors.New("store unreachable")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"search", "harbour"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "search failed")
}

func TestOutputSearchJSON_EmptyResults(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)

	err := outputSearchJSON(rootCmd, []domain.Document{})

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "[]")
}

func TestOutputSearchTable_EmptyResults(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)

	err := outputSearchTable(rootCmd, []domain.Document{})

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "No results found")
}

func TestOutputSearchTable_MarksDrafts(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)

	docs := []domain.Document{
		{ID: "drafts.post-1", Kind: "post", Score: 0.95,
			Fields: map[string]any{"title": "Working Copy"}},
	}

	err := outputSearchTable(rootCmd, docs)

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Working Copy")
	assert.Contains(t, buf.String(), "0.95")
	assert.Contains(t, buf.String(), "draft")
}

func TestOutputSearchTable_FallsBackToID(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)

	docs := []domain.Document{
		{ID: "doc-123", Kind: "note", Score: 0.75},
	}

	err := outputSearchTable(rootCmd, docs)

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "doc-123")
	assert.Contains(t, buf.String(), "0.75")
}
