package answer

import (
	"strings"
	"testing"
	"unicode/utf8"

	"campus-assistant/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestFormatCurrentPriceYearOnly(t *testing.T) {
	// Both amounts missing: print the year, never fail.
	rt := models.RoomType{Name: "standard", Prices: []models.RoomPrice{
		{Year: "2024/25"},
	}}

	assert.Equal(t, "2024/25", formatCurrentPrice(rt))
}

func TestFormatCurrentPriceUsesLastEntry(t *testing.T) {
	old := 99.0
	week := 120.5
	total := 4699.5
	rt := models.RoomType{Prices: []models.RoomPrice{
		{Year: "2023/24", PerWeekAmount: &old},
		{Year: "2024/25", PerWeekAmount: &week, TotalAmount: &total},
	}}

	assert.Equal(t, "£120.50/week, £4699.50 total (2024/25)", formatCurrentPrice(rt))
}

func TestFormatCurrentPriceNoHistory(t *testing.T) {
	assert.Equal(t, missingField, formatCurrentPrice(models.RoomType{Name: "studio"}))
}

func TestFormatHallDetailPlaceholders(t *testing.T) {
	got := formatHallDetail(models.Hall{Name: "Bare Hall"})

	assert.Contains(t, got, "Bare Hall")
	assert.Contains(t, got, "Address: "+missingField)
	assert.Contains(t, got, "Email: "+missingField)
	assert.NotContains(t, got, "Rooms:")
}

func TestFormatShortlistTruncatesDescription(t *testing.T) {
	long := strings.Repeat("a", 200)
	got := formatShortlist([]models.Hall{{Name: "Long Hall", ShortDescription: long}})

	assert.Contains(t, got, strings.Repeat("a", shortlistDescLen))
	assert.NotContains(t, got, strings.Repeat("a", shortlistDescLen+1))
}

func TestSourceSnippetLength(t *testing.T) {
	long := strings.Repeat("b", 300)
	src := sourceFor(models.Hall{Name: "Long Hall", ShortDescription: long})

	assert.Len(t, src.Snippet, snippetLen)
}

func TestTruncateKeepsRuneBoundaries(t *testing.T) {
	// "é" is two bytes; an odd cut point would split it.
	long := strings.Repeat("é", snippetLen)

	got := truncate(long, snippetLen-1)

	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, snippetLen-2, len(got))
}
