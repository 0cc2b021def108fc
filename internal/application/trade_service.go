package application

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/mtnworks/gt-client/internal/domain"
	"github.com/mtnworks/gt-client/internal/ports"
	"github.com/mtnworks/gt-client/internal/wire"
	"github.com/mtnworks/gt-client/pkg/logger"
)

// TradeService composes the request client and the codec into the trading
// flows, with optimistic client-side validation in front of each submission.
// The server re-validates authoritatively; its rejections are surfaced to the
// caller unchanged.
type TradeService struct {
	client    ports.Requester
	inventory ports.WorldInventory
	log       *logrus.Entry

	mu        sync.Mutex
	lastStock []domain.TradeRecord
}

func NewTradeService(client ports.Requester, inventory ports.WorldInventory) *TradeService {
	return &TradeService{
		client:    client,
		inventory: inventory,
		log:       logger.WithComponent("trade"),
	}
}

// FetchStock retrieves the marketplace listing. Records without an item kind
// are already dropped by the codec. The result becomes the last-known stock
// used to validate purchases.
func (s *TradeService) FetchStock(ctx context.Context) ([]domain.TradeRecord, error) {
	body, err := s.client.Do(ctx, http.MethodGet, "/forsale", nil)
	if err != nil {
		return nil, err
	}
	records, err := wire.DecodeTradeRecords(string(body))
	if err != nil {
		return nil, fmt.Errorf("decode stock listing: %w", err)
	}

	s.mu.Lock()
	s.lastStock = records
	s.mu.Unlock()

	s.log.WithField("records", len(records)).Debug("fetched stock listing")
	return records, nil
}

// LastKnownStock returns a copy of the most recently fetched listing.
func (s *TradeService) LastKnownStock() []domain.TradeRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	stock := make([]domain.TradeRecord, len(s.lastStock))
	copy(stock, s.lastStock)
	return stock
}

// SubmitBuy purchases the staged lines. Requests exceeding last-known stock
// or the local silver balance are rejected locally without a network call.
// On acknowledgment the purchase is settled: silver leaves the inventory and
// the purchased items materialize — never before the ack.
func (s *TradeService) SubmitBuy(ctx context.Context, order domain.PendingTradeSet) (domain.BuyResult, error) {
	lines := order.Selected()
	if len(lines) == 0 {
		return domain.BuyResult{}, &domain.ValidationError{Reason: "no items selected"}
	}

	totalCost := 0
	for _, line := range lines {
		available, ok := s.availableQuantity(line)
		if !ok {
			return domain.BuyResult{}, &domain.ValidationError{
				Reason: fmt.Sprintf("%s from %s is not in the last-known stock", line.ItemKind, line.CounterpartyName),
			}
		}
		if line.Quantity > available {
			return domain.BuyResult{}, &domain.ValidationError{
				Reason: fmt.Sprintf("requested %d of %s but only %d known to be available", line.Quantity, line.ItemKind, available),
			}
		}
		totalCost += line.TotalCost()
	}

	silver, err := s.inventory.CountOf(ctx, domain.SilverKind)
	if err != nil {
		return domain.BuyResult{}, fmt.Errorf("count local silver: %w", err)
	}
	if totalCost > silver {
		return domain.BuyResult{}, &domain.ValidationError{
			Reason: fmt.Sprintf("purchase costs %d silver but only %d held", totalCost, silver),
		}
	}

	body, err := s.client.Do(ctx, http.MethodPost, "/buy", []byte(wire.EncodeBuyRequest(lines, silver)))
	if err != nil {
		return domain.BuyResult{}, err
	}
	result, err := wire.DecodeBuyResult(string(body))
	if err != nil {
		return domain.BuyResult{}, fmt.Errorf("decode buy acknowledgment: %w", err)
	}

	if err := s.settlePurchase(ctx, result); err != nil {
		return result, err
	}
	s.log.WithFields(logrus.Fields{"items": len(lines), "cost": result.TotalCost}).Info("purchase settled")
	return result, nil
}

func (s *TradeService) availableQuantity(line domain.TradeRecord) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, stock := range s.lastStock {
		if stock.ItemKind == line.ItemKind && stock.CounterpartyName == line.CounterpartyName {
			return stock.Quantity, true
		}
	}
	return 0, false
}

func (s *TradeService) settlePurchase(ctx context.Context, result domain.BuyResult) error {
	if result.TotalCost > 0 {
		if err := s.inventory.Remove(ctx, domain.SilverKind, result.TotalCost); err != nil {
			return fmt.Errorf("remove silver after purchase: %w", err)
		}
	}
	for _, item := range result.Purchased {
		if err := s.inventory.Add(ctx, item.ItemKind, item.Quantity); err != nil {
			return fmt.Errorf("materialize purchased %s: %w", item.ItemKind, err)
		}
	}
	return nil
}

// SubmitSell lists the staged lines for sale. Only positive staged quantities
// are sent; zero-quantity entries are excluded entirely. Inventory is reduced
// only after server acknowledgment so a failed request never desynchronizes
// local ownership from the server's ledger.
func (s *TradeService) SubmitSell(ctx context.Context, staged domain.PendingTradeSet) error {
	lines := staged.Selected()
	if len(lines) == 0 {
		return &domain.ValidationError{Reason: "no items staged for sale"}
	}

	for _, line := range lines {
		owned, err := s.inventory.CountOf(ctx, line.ItemKind)
		if err != nil {
			return fmt.Errorf("count local %s: %w", line.ItemKind, err)
		}
		if line.Quantity > owned {
			return &domain.ValidationError{
				Reason: fmt.Sprintf("staged %d of %s but only %d owned", line.Quantity, line.ItemKind, owned),
			}
		}
	}

	if _, err := s.client.Do(ctx, http.MethodPost, "/trade", []byte(wire.EncodeSellRequest(lines))); err != nil {
		return err
	}

	for _, line := range lines {
		if err := s.inventory.Remove(ctx, line.ItemKind, line.Quantity); err != nil {
			return fmt.Errorf("remove sold %s: %w", line.ItemKind, err)
		}
	}
	s.log.WithField("items", len(lines)).Info("items listed for sale")
	return nil
}

// PendingSales fetches the caller's unsettled sales. The payload is opaque
// text by contract and returned as received.
func (s *TradeService) PendingSales(ctx context.Context) (string, error) {
	body, err := s.client.Do(ctx, http.MethodPost, "/sales/pending", nil)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// ClaimSales settles previously-sold items. The claimed silver materializes
// locally only on a successful claim.
func (s *TradeService) ClaimSales(ctx context.Context) (domain.ClaimResult, error) {
	body, err := s.client.Do(ctx, http.MethodPost, "/sales/claim", []byte("{}"))
	if err != nil {
		return domain.ClaimResult{}, err
	}

	result := wire.DecodeClaimResult(string(body))
	if result.Status == domain.ClaimSuccess && result.TotalClaimed > 0 {
		if err := s.inventory.Add(ctx, domain.SilverKind, result.TotalClaimed); err != nil {
			return result, fmt.Errorf("materialize claimed silver: %w", err)
		}
	}
	s.log.WithFields(logrus.Fields{"claimed": result.TotalClaimed, "sales": result.ClaimedCount}).Info("claim settled")
	return result, nil
}
