package engine

import (
	"math"

	"go.uber.org/zap"

	"github.com/rustyeddy/backtester/market"
	"github.com/rustyeddy/backtester/pkg/id"
)

// executeOrder attempts to fill one order against the current bar. It returns
// true on success, having mutated the ledger and the order; on rejection it
// returns false with no state changed, and the engine drops the order.
//
// Fill model:
//   - market orders fill at bar close, limit orders at the limit price when
//     the bar's range touched it
//   - slippage moves the fill against the order's side
//   - commission is charged on both sides of the book
func (e *Engine) executeOrder(o *Order, bar market.Bar) bool {
	var base float64
	switch o.Type {
	case Market:
		base = bar.Close
	case Limit:
		base = o.LimitPrice
		// Unfilled when the limit was never touched during the bar.
		if o.Side == Buy && bar.Low > o.LimitPrice {
			e.log.Debug("buy limit not touched",
				zap.String("symbol", o.Symbol),
				zap.Float64("limit", o.LimitPrice),
				zap.Float64("low", bar.Low))
			return false
		}
		if o.Side == Sell && bar.High < o.LimitPrice {
			e.log.Debug("sell limit not touched",
				zap.String("symbol", o.Symbol),
				zap.Float64("limit", o.LimitPrice),
				zap.Float64("high", bar.High))
			return false
		}
	}

	fill := base * (1 + float64(o.Side)*e.cfg.Slippage)
	value := o.Quantity * fill
	commission := value * e.cfg.Commission

	pos := e.ledger.Position(o.Symbol)

	// Capital/risk checks come before any mutation, so rejection needs no
	// rollback.
	if o.Side == Buy {
		required := value + commission
		if required > e.ledger.Cash() {
			e.log.Warn("insufficient cash for order",
				zap.String("symbol", o.Symbol),
				zap.Float64("required", required),
				zap.Float64("cash", e.ledger.Cash()))
			return false
		}
	} else if !e.cfg.AllowShorting && pos.Quantity < o.Quantity {
		e.log.Warn("shorting disallowed",
			zap.String("symbol", o.Symbol),
			zap.Float64("position", pos.Quantity),
			zap.Float64("quantity", o.Quantity))
		return false
	}

	oldQty := pos.Quantity
	oldAvg := pos.AvgPrice

	if o.Side == Buy {
		e.ledger.debit(value + commission)
		newQty := oldQty + o.Quantity

		if oldQty >= 0 {
			// Opening or extending a long: quantity-weighted basis.
			if newQty != 0 {
				pos.AvgPrice = (oldQty*oldAvg + o.Quantity*fill) / newQty
			}
			if oldQty == 0 {
				pos.EntryTime = bar.Time
			}
		} else {
			// Covering a short: realize P&L on the closed portion.
			closed := math.Min(o.Quantity, -oldQty)
			e.closeLot(pos, bar, closed, oldAvg, fill, closed*(oldAvg-fill))
			if newQty > 0 {
				// Reversal: the remainder opens a fresh long lot.
				pos.AvgPrice = fill
				pos.EntryTime = bar.Time
			}
		}
		pos.Quantity = newQty
	} else {
		e.ledger.credit(value - commission)
		newQty := oldQty - o.Quantity

		if oldQty > 0 {
			// Closing or reducing a long: realize P&L on the closed portion.
			closed := math.Min(o.Quantity, oldQty)
			e.closeLot(pos, bar, closed, oldAvg, fill, closed*(fill-oldAvg))
			if newQty < 0 {
				pos.AvgPrice = fill
				pos.EntryTime = bar.Time
			}
		} else {
			// Opening or extending a short: weighted basis over the signed
			// quantity.
			if newQty != 0 {
				pos.AvgPrice = (oldQty*oldAvg - o.Quantity*fill) / newQty
			}
			if oldQty == 0 {
				pos.EntryTime = bar.Time
			}
		}
		pos.Quantity = newQty
	}

	pos.resetIfFlat()

	o.Filled = true
	o.FillPrice = fill
	o.FillTime = bar.Time

	e.log.Debug("filled order",
		zap.String("symbol", o.Symbol),
		zap.String("side", o.Side.String()),
		zap.Float64("quantity", o.Quantity),
		zap.Float64("price", fill))
	return true
}

// closeLot records a realized round-trip for the closed portion of a lot.
func (e *Engine) closeLot(pos *Position, bar market.Bar, closed, entry, exit, pnl float64) {
	pos.RealizedPnL += pnl

	entryTime := pos.EntryTime
	if entryTime.IsZero() {
		entryTime = bar.Time
	}

	returnPct := 0.0
	if entry > 0 {
		returnPct = pnl / (closed * entry)
	}

	e.trades = append(e.trades, Trade{
		ID:         id.New(),
		Symbol:     pos.Symbol,
		EntryTime:  entryTime,
		ExitTime:   bar.Time,
		Quantity:   closed,
		EntryPrice: entry,
		ExitPrice:  exit,
		PnL:        pnl,
		ReturnPct:  returnPct,
	})
}
