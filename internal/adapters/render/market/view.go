package market

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/mtnworks/gt-client/internal/domain"
)

// RenderStock renders the marketplace listing as terminal text.
func RenderStock(records []domain.TradeRecord) string {
	s := newStyles()

	lines := []string{
		s.title.Render("Galactic Trade Marketplace"),
		s.header.Render(fmt.Sprintf("items for sale: %d", len(records))),
	}

	if len(records) == 0 {
		lines = append(lines, s.empty.Render("Nothing is for sale right now."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, record := range records {
		lines = append(lines, renderRecord(record, s))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderRecord(record domain.TradeRecord, s styles) string {
	kind := record.ItemKind
	if record.Quality != "" {
		kind = fmt.Sprintf("%s (%s)", record.ItemKind, record.Quality)
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.kind.Render(kind),
		" ",
		s.detail.Render(fmt.Sprintf("x%d", record.Quantity)),
		" ",
		s.price.Render(fmt.Sprintf("%d silver each", record.UnitPrice)),
		" ",
		s.seller.Render("from "+record.CounterpartyName),
	)
}

// RenderInventory renders the locally-owned tradable stacks.
func RenderInventory(records []domain.TradeRecord) string {
	s := newStyles()

	lines := []string{s.title.Render("Colony Inventory")}
	if len(records) == 0 {
		lines = append(lines, s.empty.Render("Nothing tradable is owned."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, record := range records {
		lines = append(lines, lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.kind.Render(record.ItemKind),
			" ",
			s.detail.Render(fmt.Sprintf("x%d", record.Quantity)),
		))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// RenderClaim renders a claim settlement outcome.
func RenderClaim(result domain.ClaimResult) string {
	s := newStyles()

	if result.Status != domain.ClaimSuccess {
		return s.failure.Render("Claim failed; nothing was settled.")
	}
	if result.ClaimedCount == 0 {
		return s.empty.Render("No pending sales to claim.")
	}
	return s.success.Render(fmt.Sprintf("Claimed %d silver from %d sale(s).", result.TotalClaimed, result.ClaimedCount))
}
