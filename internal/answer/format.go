package answer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"campus-assistant/internal/models"
)

const (
	// missingField stands in for any absent record field.
	missingField = "—"

	snippetLen       = 240
	shortlistDescLen = 140
)

func orMissing(s string) string {
	if s == "" {
		return missingField
	}
	return s
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func joinOrMissing(items []string) string {
	if len(items) == 0 {
		return missingField
	}
	return strings.Join(items, ", ")
}

// formatHallDetail renders one hall in full: descriptive fields, current
// prices per room type, and contact details. Missing fields degrade to a
// placeholder, never an error.
func formatHallDetail(h models.Hall) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", orMissing(h.Name))
	fmt.Fprintf(&b, "%s\n\n", orMissing(h.ShortDescription))
	fmt.Fprintf(&b, "Address: %s\n", orMissing(h.Address))
	fmt.Fprintf(&b, "Catering: %s\n", orMissing(h.CateringType))
	fmt.Fprintf(&b, "Facilities: %s\n", joinOrMissing(h.Facilities))
	fmt.Fprintf(&b, "Room features: %s\n", joinOrMissing(h.RoomFeaturesCommon))
	fmt.Fprintf(&b, "Services: %s\n", joinOrMissing(h.Services))

	if len(h.RoomTypes) > 0 {
		b.WriteString("\nRooms:\n")
		for _, rt := range h.RoomTypes {
			b.WriteString(formatRoomType(rt))
		}
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "Website: %s\n", orMissing(h.OfficialURL))
	fmt.Fprintf(&b, "Email: %s\n", orMissing(h.ContactEmail))
	fmt.Fprintf(&b, "Phone: %s\n", orMissing(h.ContactPhone))

	return b.String()
}

func formatRoomType(rt models.RoomType) string {
	ensuite := "shared bathroom"
	if rt.Ensuite {
		ensuite = "ensuite"
	}

	tenancy := missingField
	if rt.TenancyWeeks > 0 {
		tenancy = fmt.Sprintf("%d weeks", rt.TenancyWeeks)
	}

	line := fmt.Sprintf("- %s (%s, tenancy %s): %s\n",
		orMissing(rt.Name), ensuite, tenancy, formatCurrentPrice(rt))
	return line
}

// formatCurrentPrice renders the chronologically last price entry. When both
// amounts are absent only the year is printed.
func formatCurrentPrice(rt models.RoomType) string {
	price, ok := rt.CurrentPrice()
	if !ok {
		return missingField
	}

	switch {
	case price.PerWeekAmount != nil && price.TotalAmount != nil:
		return fmt.Sprintf("£%.2f/week, £%.2f total (%s)", *price.PerWeekAmount, *price.TotalAmount, price.Year)
	case price.PerWeekAmount != nil:
		return fmt.Sprintf("£%.2f/week (%s)", *price.PerWeekAmount, price.Year)
	case price.TotalAmount != nil:
		return fmt.Sprintf("£%.2f total (%s)", *price.TotalAmount, price.Year)
	default:
		return price.Year
	}
}

// formatShortlist renders a bulleted list of candidate halls.
func formatShortlist(halls []models.Hall) string {
	var b strings.Builder

	b.WriteString("Here are some halls that might fit:\n\n")
	for _, h := range halls {
		fmt.Fprintf(&b, "- %s: %s\n", orMissing(h.Name),
			orMissing(truncate(h.ShortDescription, shortlistDescLen)))
		fmt.Fprintf(&b, "  Tags: %s | Lifestyle: %s\n",
			joinOrMissing(h.Tags), joinOrMissing(h.LifestyleTags))
		fmt.Fprintf(&b, "  %s\n", orMissing(h.OfficialURL))
	}

	return b.String()
}

func sourceFor(h models.Hall) models.Source {
	return models.Source{
		Title:   h.Name,
		URL:     h.OfficialURL,
		Snippet: truncate(h.ShortDescription, snippetLen),
	}
}
