package wire

import (
	"fmt"
	"strings"

	"github.com/mtnworks/gt-client/internal/domain"
)

// EncodeSellRequest builds the /trade request body listing items for sale.
// The body is assembled by hand: the server's envelope is fixed and trivially
// flat, and keeping encode next to decode keeps the wire names in one place.
func EncodeSellRequest(items []domain.TradeRecord) string {
	var builder strings.Builder
	builder.WriteString(`{"records":[`)
	for i, item := range items {
		if i > 0 {
			builder.WriteByte(',')
		}
		fmt.Fprintf(&builder, `{"DefName":%s,"Quantity":%d,"Price":%d,"Quality":%s}`,
			quoteString(item.ItemKind), item.Quantity, item.UnitPrice, quoteString(item.Quality))
	}
	builder.WriteString(`]}`)
	return builder.String()
}

// EncodeBuyRequest builds the /buy request body. clientSilver is the locally
// observed currency balance, sent so the server can detect stale client
// state.
func EncodeBuyRequest(items []domain.TradeRecord, clientSilver int) string {
	var builder strings.Builder
	builder.WriteString(`{"items":[`)
	for i, item := range items {
		if i > 0 {
			builder.WriteByte(',')
		}
		fmt.Fprintf(&builder, `{"def_name":%s,"quantity":%d,"seller_name":%s}`,
			quoteString(item.ItemKind), item.Quantity, quoteString(item.CounterpartyName))
	}
	fmt.Fprintf(&builder, `],"client_silver":%d}`, clientSilver)
	return builder.String()
}

// quoteString escapes and quotes a string for embedding in a hand-built
// envelope. Quotes, backslashes, and control characters must not corrupt the
// surrounding JSON.
func quoteString(value string) string {
	var builder strings.Builder
	builder.WriteByte('"')
	for _, r := range value {
		switch r {
		case '"':
			builder.WriteString(`\"`)
		case '\\':
			builder.WriteString(`\\`)
		case '\n':
			builder.WriteString(`\n`)
		case '\r':
			builder.WriteString(`\r`)
		case '\t':
			builder.WriteString(`\t`)
		default:
			if r < 0x20 {
				builder.WriteString(`\u`)
				builder.WriteString(fmt.Sprintf("%04x", r))
			} else {
				builder.WriteRune(r)
			}
		}
	}
	builder.WriteByte('"')
	return builder.String()
}
