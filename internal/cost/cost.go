package cost

// Price defines how much currency one shop refresh costs.
type Price struct {
	Currency string // e.g. "gold"
	PerRoll  int    // currency spent per refresh, 2 in the standard ruleset
}

// Gold is the standard shop price: 2 gold per refresh.
var Gold = Price{Currency: "gold", PerRoll: 2}

// RollsFor returns how many refreshes a budget buys. Leftover currency is dropped.
func (p Price) RollsFor(budget int) int {
	if budget <= 0 || p.PerRoll <= 0 {
		return 0
	}
	return budget / p.PerRoll
}

// CostOf returns the currency required for n refreshes.
func (p Price) CostOf(n int) int {
	if n <= 0 {
		return 0
	}
	return n * p.PerRoll
}

// Leftover is what remains of budget after buying RollsFor(budget) refreshes.
func (p Price) Leftover(budget int) int {
	if budget <= 0 {
		return 0
	}
	return budget - p.CostOf(p.RollsFor(budget))
}
