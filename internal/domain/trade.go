package domain

// TradeRecord is one tradable line item: either a colony offering on the
// marketplace or an incoming purchase/sale line. Immutable once sent to the
// server; mutable client-side while staged in a PendingTradeSet.
type TradeRecord struct {
	ItemKind         string
	Quantity         int
	UnitPrice        int
	CounterpartyName string
	Quality          string
}

// Key returns the record's identity, independent of quantity.
func (r TradeRecord) Key() TradeKey {
	return TradeKey{
		ItemKind:         r.ItemKind,
		UnitPrice:        r.UnitPrice,
		CounterpartyName: r.CounterpartyName,
		Quality:          r.Quality,
	}
}

// TotalCost is the cost of the full line at its unit price.
func (r TradeRecord) TotalCost() int {
	return r.UnitPrice * r.Quantity
}

// TradeKey identifies a TradeRecord across quantity changes.
type TradeKey struct {
	ItemKind         string
	UnitPrice        int
	CounterpartyName string
	Quality          string
}

// PendingTradeSet maps record identity to a desired transfer quantity.
// A quantity of 0 means "not selected". Mutated by the presentation layer,
// read by the trade service at submission time.
type PendingTradeSet map[TradeKey]int

// Stage sets the desired quantity for a record. Negative quantities clamp
// to zero.
func (p PendingTradeSet) Stage(key TradeKey, quantity int) {
	if quantity < 0 {
		quantity = 0
	}
	p[key] = quantity
}

// Selected returns the staged lines with a positive quantity, as records
// carrying the staged quantity. Zero-quantity entries are excluded, not
// emitted as zero.
func (p PendingTradeSet) Selected() []TradeRecord {
	records := make([]TradeRecord, 0, len(p))
	for key, quantity := range p {
		if quantity <= 0 {
			continue
		}
		records = append(records, TradeRecord{
			ItemKind:         key.ItemKind,
			Quantity:         quantity,
			UnitPrice:        key.UnitPrice,
			CounterpartyName: key.CounterpartyName,
			Quality:          key.Quality,
		})
	}
	return records
}

// ClaimStatus is the outcome class of a claim settlement.
type ClaimStatus string

const (
	ClaimSuccess ClaimStatus = "success"
	ClaimError   ClaimStatus = "error"
)

// ClaimResult is the outcome of settling previously-sold items.
type ClaimResult struct {
	Status       ClaimStatus
	TotalClaimed int
	ClaimedCount int
}

// BuyResult is the server's acknowledgment of a purchase.
type BuyResult struct {
	TotalCost int
	Purchased []TradeRecord
}

// SilverKind is the item kind used as currency throughout the marketplace.
const SilverKind = "Silver"
