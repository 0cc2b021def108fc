package env

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentity(t *testing.T) {
	t.Parallel()

	provider := NewProvider("7656119", "Ayla", "deadbeef")

	identity, err := provider.Identity(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "7656119", identity.Handle)
	assert.Equal(t, "Ayla", identity.PlayerName)
}

func TestIdentityRequiresPlayerName(t *testing.T) {
	t.Parallel()

	provider := NewProvider("7656119", "", "deadbeef")

	_, err := provider.Identity(context.Background())
	require.Error(t, err)
}

func TestAcquireTicketDecodesHex(t *testing.T) {
	t.Parallel()

	provider := NewProvider("", "Ayla", "  DEADBEEF  ")

	ticket, err := provider.AcquireTicket(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, ticket)
}

func TestAcquireTicketEnforcesSingleLiveTicket(t *testing.T) {
	t.Parallel()

	provider := NewProvider("", "Ayla", "deadbeef")

	_, err := provider.AcquireTicket(context.Background())
	require.NoError(t, err)

	_, err = provider.AcquireTicket(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already outstanding")

	require.NoError(t, provider.CancelTicket(context.Background()))

	_, err = provider.AcquireTicket(context.Background())
	require.NoError(t, err)
}

func TestAcquireTicketRequiresConfiguredTicket(t *testing.T) {
	t.Parallel()

	provider := NewProvider("", "Ayla", "")

	_, err := provider.AcquireTicket(context.Background())
	require.Error(t, err)
}

func TestAcquireTicketRejectsInvalidHex(t *testing.T) {
	t.Parallel()

	provider := NewProvider("", "Ayla", "not-hex")

	_, err := provider.AcquireTicket(context.Background())
	require.Error(t, err)

	// A failed decode must not leave a phantom live ticket.
	_, err = provider.AcquireTicket(context.Background())
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "already outstanding")
}

func TestCancelTicketWithoutLiveTicket(t *testing.T) {
	t.Parallel()

	provider := NewProvider("", "Ayla", "deadbeef")
	require.NoError(t, provider.CancelTicket(context.Background()))
}
