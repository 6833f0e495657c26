package world

import "github.com/veyra/ballista/constants"

// Alliances is a symmetric player-to-player alliance matrix. Every
// player is allied with itself.
type Alliances struct {
	m [constants.MaxPlayers][constants.MaxPlayers]bool
}

func NewAlliances() *Alliances {
	a := &Alliances{}
	for i := 0; i < constants.MaxPlayers; i++ {
		a.m[i][i] = true
	}
	return a
}

// Set establishes or breaks an alliance between p and q, symmetrically.
// Self-alliance cannot be broken.
func (a *Alliances) Set(p, q int, allied bool) {
	if p < 0 || q < 0 || p >= constants.MaxPlayers || q >= constants.MaxPlayers || p == q {
		return
	}
	a.m[p][q] = allied
	a.m[q][p] = allied
}

// Allied reports whether p and q are allied. Out-of-range players are
// allied with nobody.
func (a *Alliances) Allied(p, q int) bool {
	if p < 0 || q < 0 || p >= constants.MaxPlayers || q >= constants.MaxPlayers {
		return false
	}
	return a.m[p][q]
}
