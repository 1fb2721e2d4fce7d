package console

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTable_Render(t *testing.T) {
	table := NewConsole().CreateTable()
	table.AddColumn("Customer")
	table.AddColumn("Revenue")
	table.AddRow("C1", 199.1)
	table.AddRow("C2", "50.00")

	out := table.Render()
	assert.Contains(t, out, "Customer")
	assert.Contains(t, out, "199.1")
	assert.Contains(t, out, "C2")
	assert.GreaterOrEqual(t, strings.Count(out, "\n"), 3)
}
