package wire

import (
	"encoding/json"

	"github.com/mtnworks/gt-client/internal/domain"
)

type claimSchema struct {
	Status            string `json:"status"`
	TotalClaimed      int    `json:"total_claimed"`
	ClaimedSalesCount int    `json:"claimed_sales_count"`
}

// DecodeClaimResult extracts a claim outcome from the server's response.
// A schema decode is attempted first; when it yields no usable status the
// fields are located independently in the parsed document. Never fails: on
// total failure the result is an error status with zero counts.
func DecodeClaimResult(text string) domain.ClaimResult {
	var schema claimSchema
	if err := json.Unmarshal([]byte(text), &schema); err == nil && schema.Status != "" {
		return domain.ClaimResult{
			Status:       claimStatus(schema.Status),
			TotalClaimed: nonNegative(schema.TotalClaimed),
			ClaimedCount: nonNegative(schema.ClaimedSalesCount),
		}
	}

	document, err := parseDocument(text)
	if err != nil {
		return domain.ClaimResult{Status: domain.ClaimError}
	}
	object, ok := document.(map[string]any)
	if !ok {
		return domain.ClaimResult{Status: domain.ClaimError}
	}

	status := stringField(object, "status")
	if status == "" {
		return domain.ClaimResult{Status: domain.ClaimError}
	}
	return domain.ClaimResult{
		Status:       claimStatus(status),
		TotalClaimed: intField(object, "total_claimed"),
		ClaimedCount: intField(object, "claimed_sales_count"),
	}
}

func claimStatus(status string) domain.ClaimStatus {
	if status == string(domain.ClaimSuccess) {
		return domain.ClaimSuccess
	}
	return domain.ClaimError
}

func nonNegative(value int) int {
	if value < 0 {
		return 0
	}
	return value
}
