package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanCmd_Use(t *testing.T) {
	assert.Equal(t, "scan", scanCmd.Use)
}

func TestScanCmd_HasWatchFlag(t *testing.T) {
	flag := scanCmd.Flags().Lookup("watch")
	require.NotNil(t, flag, "watch flag should exist")
	assert.Equal(t, "w", flag.Shorthand)
}

func TestScanCmd_PrintsCorpusSummary(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"scan"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Extracted corpus: 1 documents, 1 pages")
	assert.Contains(t, buf.String(), "/docs/contract.pdf (1 pages)")
}

func TestScanCmd_JSONOutput(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"scan", "--json"})
	defer func() {
		rootCmd.SetArgs(nil)
		scanJSON = false
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), `"path": "/docs/contract.pdf"`)
	assert.Contains(t, buf.String(), `"sha256": "abc123"`)
	assert.Contains(t, buf.String(), `"pages": 1`)
}

func TestScanCmd_MissingSourceIsFatal(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	corpusScanner = &fakeScanner{err: assert.AnError}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"scan"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
}
