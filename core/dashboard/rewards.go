package dashboard

// RewardTally accumulates pending reward gains until the UI drains them for
// its popup animations. Both counters are strictly additive with no cap, so
// rewards landing close together compound instead of coalescing.
type RewardTally struct {
	XPGain    int `json:"pending_xp_gain"`
	CoinsGain int `json:"pending_coins_gain"`
}

// AddXP adds amount to the pending XP counter. Non-positive amounts are
// ignored; the counters never go below zero.
func (rt RewardTally) AddXP(amount int) RewardTally {
	if amount > 0 {
		rt.XPGain += amount
	}
	return rt
}

func (rt RewardTally) AddCoins(amount int) RewardTally {
	if amount > 0 {
		rt.CoinsGain += amount
	}
	return rt
}

// Clear resets both counters at once.
func (rt RewardTally) Clear() RewardTally {
	return RewardTally{}
}

func (rt RewardTally) IsEmpty() bool {
	return rt.XPGain == 0 && rt.CoinsGain == 0
}
