package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/registro-cli/internal/adapters/driving/mcp"
)

func TestMCPServeCmd_PortFlag(t *testing.T) {
	flag := mcpServeCmd.Flags().Lookup("port")

	require.NotNil(t, flag)
	assert.Equal(t, "p", flag.Shorthand)
	assert.Equal(t, "0", flag.DefValue)
}

func TestMCPCmd_HasServe(t *testing.T) {
	var found bool
	for _, cmd := range mcpCmd.Commands() {
		if cmd.Name() == "serve" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestMCPServeCmd_MissingSubmissionService(t *testing.T) {
	cleanup := setupTestServices(nil)
	defer cleanup()
	submissionService = nil

	_, _, err := execute(t, "mcp", "serve")

	assert.ErrorIs(t, err, mcp.ErrMissingSubmissionService)
}
