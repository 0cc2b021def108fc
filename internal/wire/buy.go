package wire

import (
	"github.com/mtnworks/gt-client/internal/domain"
)

// DecodeBuyResult extracts the purchase acknowledgment from a /buy response.
// total_cost and the purchased lines are located independently; a response
// with no locatable object fails, since settlement must not run on a payload
// the client cannot read.
func DecodeBuyResult(text string) (domain.BuyResult, error) {
	document, err := parseDocument(text)
	if err != nil {
		return domain.BuyResult{}, &DecodeError{Reason: err.Error()}
	}
	object, ok := document.(map[string]any)
	if !ok {
		return domain.BuyResult{}, &DecodeError{Reason: "buy response is not an object"}
	}

	result := domain.BuyResult{TotalCost: intField(object, "total_cost")}
	if purchased, ok := object["purchased_items"].([]any); ok {
		for _, element := range purchased {
			item, ok := element.(map[string]any)
			if !ok {
				continue
			}
			record := recordFromObject(item)
			if record.ItemKind == "" {
				continue
			}
			result.Purchased = append(result.Purchased, record)
		}
	}
	return result, nil
}
