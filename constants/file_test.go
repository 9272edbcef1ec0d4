package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsStatementFile(t *testing.T) {
	assert.True(t, IsStatementFile("mts0224.pdf"))
	assert.True(t, IsStatementFile("/data/pdf/MTS1223.PDF"))

	assert.False(t, IsStatementFile("report.pdf"))
	assert.False(t, IsStatementFile("mts.pdf"))
	assert.False(t, IsStatementFile("mts0224.txt"))
	assert.False(t, IsStatementFile("notes.txt"))
}

func TestStatementID(t *testing.T) {
	assert.Equal(t, "mts0224", StatementID("mts0224.pdf"))
	assert.Equal(t, "mts0224", StatementID("/data/pdf/mts0224.pdf"))
}

func TestIsDepartment(t *testing.T) {
	assert.True(t, IsDepartment("Department of Defense"))
	assert.True(t, IsDepartment("  social security administration "))
	assert.False(t, IsDepartment("Department of Silly Walks"))
}
