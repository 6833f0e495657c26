package projectile

// registry holds the live projectiles in creation order, which is the
// update order and therefore part of the deterministic state, plus a
// tracker-id lookup table.
type registry struct {
	order  []*Projectile
	byID   map[uint32]*Projectile
	cursor int
}

func (r *registry) init() {
	r.order = nil
	r.byID = make(map[uint32]*Projectile)
	r.cursor = 0
}

func (r *registry) len() int {
	return len(r.order)
}

// add registers p. Reports false if the tracker id is already taken.
func (r *registry) add(p *Projectile) bool {
	if _, dup := r.byID[p.id]; dup {
		return false
	}
	r.byID[p.id] = p
	r.order = append(r.order, p)
	return true
}

func (r *registry) lookup(id uint32) *Projectile {
	return r.byID[id]
}

func (r *registry) first() *Projectile {
	r.cursor = 0
	return r.next()
}

func (r *registry) next() *Projectile {
	if r.cursor >= len(r.order) {
		return nil
	}
	p := r.order[r.cursor]
	r.cursor++
	return p
}
