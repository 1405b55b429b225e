package buildinfo

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrintBuildData(t *testing.T) {
	origV, origD, origC := Version, Date, Commit
	t.Cleanup(func() { Version, Date, Commit = origV, origD, origC })

	Version, Date, Commit = "1.0.0", "2026-01-01", "abc123"

	var buf bytes.Buffer
	PrintBuildData(&buf)

	assert.Equal(t, "Build version: 1.0.0\nBuild date: 2026-01-01\nBuild commit: abc123\n", buf.String())
	assert.Equal(t, "1.0.0 (commit: abc123, built: 2026-01-01)", String())
}
