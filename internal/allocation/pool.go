package allocation

import (
	"tripcraft/internal/models/trip_models"
)

// pool hands out activities for one itinerary. It is not safe for concurrent use.
type pool struct {
	rng Rand

	rotation []trip_models.Interest
	buckets  map[trip_models.Interest][]string
	cursor   int
	// extra holds candidates outside the traveller's interests; they come after every interest bucket.
	extra []string

	categoryOf map[string]trip_models.Interest

	placed      []string
	lastPlaced  map[string]int
	tick        int
	usedFillers map[string]bool
}

func newPool(interests []trip_models.Interest, candidates []string, categoryOf map[string]trip_models.Interest, rng Rand) *pool {
	p := &pool{
		rng:         rng,
		buckets:     make(map[trip_models.Interest][]string),
		categoryOf:  categoryOf,
		lastPlaced:  make(map[string]int),
		usedFillers: make(map[string]bool),
	}

	names := dedupe(candidates)
	rng.Shuffle(len(names), func(i, j int) { names[i], names[j] = names[j], names[i] })

	wanted := make(map[trip_models.Interest]bool)
	for _, i := range interests {
		wanted[i] = true
	}
	for _, name := range names {
		category, ok := categoryOf[name]
		if !ok || !wanted[category] {
			p.extra = append(p.extra, name)
			continue
		}
		p.buckets[category] = append(p.buckets[category], name)
	}
	for _, i := range trip_models.NormalizeInterests(interests) {
		if len(p.buckets[i]) > 0 {
			p.rotation = append(p.rotation, i)
		}
	}
	return p
}

func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// next fills one slot: an unused activity if any remain, otherwise an unused filler, otherwise
// the least recently placed activity, otherwise any filler.
func (p *pool) next(slot trip_models.SlotName) trip_models.SlotAssignment {
	if name, ok := p.fresh(); ok {
		return p.place(slot, name)
	}

	vocab := slotFillers[slot]
	for _, f := range vocab {
		if !p.usedFillers[f] {
			p.usedFillers[f] = true
			return filler(slot, f)
		}
	}

	if name, ok := p.leastRecent(); ok {
		return p.place(slot, name)
	}
	return filler(slot, vocab[p.rng.IntN(len(vocab))])
}

// fresh takes the next unused activity, moving the rotation cursor past the category it came from.
func (p *pool) fresh() (string, bool) {
	n := len(p.rotation)
	for i := 0; i < n; i++ {
		idx := (p.cursor + i) % n
		category := p.rotation[idx]
		if bucket := p.buckets[category]; len(bucket) > 0 {
			p.buckets[category] = bucket[1:]
			p.cursor = (idx + 1) % n
			return bucket[0], true
		}
	}
	if len(p.extra) > 0 {
		name := p.extra[0]
		p.extra = p.extra[1:]
		return name, true
	}
	return "", false
}

func (p *pool) leastRecent() (string, bool) {
	best, bestTick := "", -1
	for _, name := range p.placed {
		if t := p.lastPlaced[name]; bestTick < 0 || t < bestTick {
			best, bestTick = name, t
		}
	}
	return best, bestTick >= 0
}

func (p *pool) place(slot trip_models.SlotName, name string) trip_models.SlotAssignment {
	if _, seen := p.lastPlaced[name]; !seen {
		p.placed = append(p.placed, name)
	}
	p.tick++
	p.lastPlaced[name] = p.tick
	return trip_models.SlotAssignment{
		Slot:     slot,
		Activity: name,
		Category: p.categoryOf[name],
	}
}
