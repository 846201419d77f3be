package buildinfo

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrintBuildData(t *testing.T) {
	old := Version
	t.Cleanup(func() { Version = old })
	Version = "v1.2.3"

	var buf bytes.Buffer
	PrintBuildData(&buf)

	require.Contains(t, buf.String(), "Build version: v1.2.3")
	require.Contains(t, buf.String(), "Build date: N/A")
	require.Contains(t, buf.String(), "Build commit: N/A")
}
