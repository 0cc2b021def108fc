package wire

import (
	"github.com/mtnworks/gt-client/internal/domain"
)

// DecodeError means the outer structure of a response could not be located at
// all. Individual malformed records never raise it; they are dropped.
type DecodeError struct {
	Reason string
}

func (e *DecodeError) Error() string {
	return "decode trade payload: " + e.Reason
}

// Envelope keys the server uses for record collections, depending on the
// endpoint.
var recordEnvelopeKeys = []string{"records", "items"}

// DecodeTradeRecords converts a server response carrying a record collection
// into trade records. The collection may sit under a "records" or "items"
// envelope key or be a bare top-level array. Unrecognized fields are ignored
// for forward compatibility; records without an item kind are dropped as a
// validity filter, not an error. A DecodeError is returned only when no outer
// array can be located.
func DecodeTradeRecords(text string) ([]domain.TradeRecord, error) {
	document, err := parseDocument(text)
	if err != nil {
		return nil, &DecodeError{Reason: err.Error()}
	}

	elements, ok := locateRecordArray(document)
	if !ok {
		return nil, &DecodeError{Reason: "no record array in response"}
	}

	records := make([]domain.TradeRecord, 0, len(elements))
	for _, element := range elements {
		object, ok := element.(map[string]any)
		if !ok {
			continue
		}
		record := recordFromObject(object)
		if record.ItemKind == "" {
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

func locateRecordArray(document any) ([]any, bool) {
	switch value := document.(type) {
	case []any:
		return value, true
	case map[string]any:
		for _, key := range recordEnvelopeKeys {
			if nested, present := value[key]; present {
				if array, ok := nested.([]any); ok {
					return array, true
				}
			}
		}
	}
	return nil, false
}

func recordFromObject(object map[string]any) domain.TradeRecord {
	return domain.TradeRecord{
		ItemKind:         stringField(object, "DefName"),
		Quantity:         intField(object, "Quantity"),
		UnitPrice:        intField(object, "Price"),
		CounterpartyName: stringField(object, "PlayerName"),
		Quality:          stringField(object, "Quality"),
	}
}

func stringField(object map[string]any, key string) string {
	if value, ok := object[key].(string); ok {
		return value
	}
	return ""
}

func intField(object map[string]any, key string) int {
	value, ok := object[key].(float64)
	if !ok || value < 0 {
		return 0
	}
	return int(value)
}
