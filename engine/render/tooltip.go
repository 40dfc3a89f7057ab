package render

import (
	"fmt"
	"strings"

	"github.com/Chemberlein/ADA-Cosmos/engine/entity"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	currencySuffix = " ₳"
	notAvailable   = "N/A"

	addressHead = 12
	addressTail = 8
)

// Tooltip returns the multi-line hover text for e. Counts and volumes use
// thousands separators; zero figures on the hub read N/A.
//
// Parameters:
//   - e: the hovered entity
//
// Returns:
//   - string: the tooltip text, or "" for a nil entity
func Tooltip(e entity.Entity) string {
	printer := message.NewPrinter(language.English)
	switch n := e.(type) {
	case *entity.Hub:
		return hubTooltip(printer, n)
	case *entity.Explorer:
		return "Wallet Explorer\nAddress: " + ShortAddress(n.Address)
	case *entity.Ranked:
		var b strings.Builder
		fmt.Fprintf(&b, "$%s\nMcap: %s%s", n.Ticker, printer.Sprintf("%d", int64(n.MarketCap)), currencySuffix)
		if n.Holders > 0 {
			b.WriteString(printer.Sprintf("\nHolders: %d", n.Holders))
		}
		return b.String()
	case nil:
		return ""
	default:
		panic(fmt.Sprintf("render: unhandled entity type %T", e))
	}
}

func hubTooltip(printer *message.Printer, h *entity.Hub) string {
	d := h.Data
	lines := []string{
		d.Symbol + " Market Data",
		fmt.Sprintf("%s Price: %s", d.Symbol, figure(d.Price != 0, func() string { return printer.Sprintf("%.3f $", d.Price) })),
		"24H DEX Volume: " + figure(d.Volume != 0, func() string { return printer.Sprintf("%d", int64(d.Volume)) + currencySuffix }),
		"24H NFT Volume: " + figure(d.SecondaryVolume != 0, func() string { return printer.Sprintf("%d", int64(d.SecondaryVolume)) + currencySuffix }),
		"24H Active Addresses: " + figure(d.ActiveCount != 0, func() string { return printer.Sprintf("%d", d.ActiveCount) }),
	}
	return strings.Join(lines, "\n")
}

func figure(ok bool, format func() string) string {
	if !ok {
		return notAvailable
	}
	return format()
}

// ShortAddress abbreviates a long address to its first 12 and last 8 characters.
// Addresses too short to abbreviate are returned unchanged.
func ShortAddress(addr string) string {
	if len(addr) <= addressHead+addressTail {
		return addr
	}
	return addr[:addressHead] + "..." + addr[len(addr)-addressTail:]
}
