package env

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/mtnworks/gt-client/internal/domain"
	"github.com/mtnworks/gt-client/internal/ports"
)

// Provider feeds the player identity and authentication ticket from
// configuration. The game host owns real ticket issuance and cancellation;
// outside the game process this adapter hands over the ticket it was given
// and tracks the at-most-one-live-ticket invariant.
type Provider struct {
	handle     string
	playerName string
	ticketHex  string

	mu   sync.Mutex
	live bool
}

var _ ports.IdentityProvider = (*Provider)(nil)

func NewProvider(handle, playerName, ticketHex string) *Provider {
	return &Provider{
		handle:     handle,
		playerName: playerName,
		ticketHex:  strings.ToLower(strings.TrimSpace(ticketHex)),
	}
}

func (p *Provider) Identity(ctx context.Context) (domain.Identity, error) {
	if err := ctx.Err(); err != nil {
		return domain.Identity{}, err
	}
	if p.playerName == "" {
		return domain.Identity{}, errors.New("player name is not configured")
	}
	return domain.Identity{Handle: p.handle, PlayerName: p.playerName}, nil
}

func (p *Provider) AcquireTicket(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.live {
		return nil, errors.New("a ticket is already outstanding, cancel it first")
	}
	if p.ticketHex == "" {
		return nil, errors.New("no auth ticket configured")
	}
	ticket, err := hex.DecodeString(p.ticketHex)
	if err != nil {
		return nil, fmt.Errorf("decode configured auth ticket: %w", err)
	}

	p.live = true
	return ticket, nil
}

func (p *Provider) CancelTicket(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.live = false
	return nil
}
