package skill

// Tracker ticks and resets the cooldowns of every skill it tracks.
//
// The battle engine builds one Tracker per encounter from the whole party,
// living or not.
type Tracker struct {
	owners []string
	skills map[string][]*Skill
}

// NewTracker returns an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{skills: make(map[string][]*Skill)}
}

// Track registers skills under owner; repeated calls append.
func (t *Tracker) Track(owner string, skills []*Skill) {
	if _, ok := t.skills[owner]; !ok {
		t.owners = append(t.owners, owner)
	}
	t.skills[owner] = append(t.skills[owner], skills...)
}

// Tick decrements every tracked skill's cooldown by one, flooring at zero.
func (t *Tracker) Tick() {
	for _, owner := range t.owners {
		for _, s := range t.skills[owner] {
			s.Tick()
		}
	}
}

// Reset makes every tracked skill ready.
func (t *Tracker) Reset() {
	for _, owner := range t.owners {
		for _, s := range t.skills[owner] {
			s.Reset()
		}
	}
}
