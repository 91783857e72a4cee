package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Domenick1991/hackportal/internal/domain"
)

func TestLoadImportFile_JSON(t *testing.T) {
	input := `{"items":[{"title":"Alpha","devpostUrl":"https://devpost.com/alpha","categories":["health","hardware"]},{"title":"Beta","devpostUrl":"https://devpost.com/beta","floor":2,"table":"B12"}]}`

	items, err := loadImportFile(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Alpha", items[0].Title)
	assert.Equal(t, []string{"health", "hardware"}, items[0].Categories)
	require.NotNil(t, items[1].Floor)
	assert.Equal(t, 2, *items[1].Floor)
	assert.Equal(t, "B12", *items[1].Table)
}

func TestLoadImportFile_YAML(t *testing.T) {
	input := `
items:
  - title: Alpha
    devpostUrl: https://devpost.com/alpha
  - title: Beta
    devpostUrl: https://devpost.com/beta
    categories: [fintech]
`
	items, err := loadImportFile(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "https://devpost.com/beta", items[1].DevpostURL)
	assert.Equal(t, []string{"fintech"}, items[1].Categories)
}

func TestLoadImportFile_Errors(t *testing.T) {
	_, err := loadImportFile(strings.NewReader(""))
	assert.EqualError(t, err, "import file is empty")

	_, err = loadImportFile(strings.NewReader(`{"items": [`))
	assert.Error(t, err)
}

func TestPrintHacks(t *testing.T) {
	floor := 3
	table := "C4"
	var buf bytes.Buffer

	printHacks(&buf, []domain.Hack{
		{ID: 1000, Title: "Alpha", DevpostURL: "https://devpost.com/alpha"},
		{ID: 1001, Title: "Beta", DevpostURL: "https://devpost.com/beta", Floor: &floor, Table: &table},
	})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "1000  Alpha - https://devpost.com/alpha")
	assert.Contains(t, lines[1], "[floor 3, table C4]")
}
