package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mtnworks/gt-client/internal/domain"
)

func TestDecodeClaimResultSuccess(t *testing.T) {
	t.Parallel()

	result := DecodeClaimResult(`{"status":"success","total_claimed":120,"claimed_sales_count":3}`)

	assert.Equal(t, domain.ClaimResult{
		Status:       domain.ClaimSuccess,
		TotalClaimed: 120,
		ClaimedCount: 3,
	}, result)
}

func TestDecodeClaimResultNothingToClaim(t *testing.T) {
	t.Parallel()

	result := DecodeClaimResult(`{"status":"success","total_claimed":0,"claimed_sales_count":0}`)

	assert.Equal(t, domain.ClaimSuccess, result.Status)
	assert.Zero(t, result.TotalClaimed)
	assert.Zero(t, result.ClaimedCount)
}

func TestDecodeClaimResultUnknownStatusIsError(t *testing.T) {
	t.Parallel()

	result := DecodeClaimResult(`{"status":"partial","total_claimed":10,"claimed_sales_count":1}`)
	assert.Equal(t, domain.ClaimError, result.Status)
}

func TestDecodeClaimResultFallbackLocatesFields(t *testing.T) {
	t.Parallel()

	// Fractional counts break the strict decode; the fields are then located
	// in the parsed document instead.
	result := DecodeClaimResult(`{"status":"success","total_claimed":55,"claimed_sales_count":2.0}`)
	assert.Equal(t, domain.ClaimSuccess, result.Status)
	assert.Equal(t, 55, result.TotalClaimed)
	assert.Equal(t, 2, result.ClaimedCount)
}

func TestDecodeClaimResultGarbageIsError(t *testing.T) {
	t.Parallel()

	for _, text := range []string{``, `not json`, `[]`, `{"total_claimed":5}`} {
		result := DecodeClaimResult(text)
		assert.Equal(t, domain.ClaimError, result.Status, "input %q", text)
		assert.Zero(t, result.TotalClaimed, "input %q", text)
	}
}

func TestDecodeClaimResultClampsNegativeCounts(t *testing.T) {
	t.Parallel()

	result := DecodeClaimResult(`{"status":"success","total_claimed":-9,"claimed_sales_count":-1}`)
	assert.Zero(t, result.TotalClaimed)
	assert.Zero(t, result.ClaimedCount)
}
