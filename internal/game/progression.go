package game

import "fmt"

// Ability is a power unlocked by levelling.
type Ability uint8

const (
	AbilityDoubleHole Ability = iota
	AbilityTimeWarp
	abilityCount
)

// unlockOrder is the order abilities are granted, one every UnlockEvery levels.
var unlockOrder = [...]Ability{AbilityDoubleHole, AbilityTimeWarp}

const (
	XPPerLevel  = 100
	UnlockEvery = 3
)

func (a Ability) String() string {
	switch a {
	case AbilityDoubleHole:
		return "Double Black Hole"
	case AbilityTimeWarp:
		return "Time Distortion"
	}
	return fmt.Sprintf("Ability(%d)", int(a))
}

// Key is the binding shown to the player.
func (a Ability) Key() string {
	switch a {
	case AbilityDoubleHole:
		return "D"
	case AbilityTimeWarp:
		return "T"
	}
	return "?"
}

// Progression tracks level, experience, unlocked abilities and achievements.
// Every transition is announced on the bus.
type Progression struct {
	Level      int
	Experience int

	unlocked [abilityCount]bool
	earned   [achievementCount]bool

	bus *EventBus
}

func NewProgression(bus *EventBus) *Progression {
	return &Progression{Level: 1, bus: bus}
}

// Threshold is the experience needed to leave the current level.
func (p *Progression) Threshold() int {
	return p.Level * XPPerLevel
}

// AddExperience accumulates points and levels up at most once per call;
// points beyond the threshold are discarded with the reset.
func (p *Progression) AddExperience(points int) {
	if points <= 0 {
		return
	}
	p.Experience += points
	if p.Experience >= p.Threshold() {
		p.levelUp()
	}
}

func (p *Progression) levelUp() {
	p.Level++
	p.Experience = 0
	p.bus.Notify(fmt.Sprintf("Level %d reached!", p.Level))
	p.bus.Emit(Event{Type: EventLevelUp, Data: p.Level})

	if p.Level%UnlockEvery == 0 {
		if a, ok := p.nextLocked(); ok {
			p.unlocked[a] = true
			p.bus.Notify(fmt.Sprintf("Ability unlocked: press [%s] for %s!", a.Key(), a))
			p.bus.Emit(Event{Type: EventAbilityUnlocked, Data: int(a)})
		}
	}
	if p.Level == 3 {
		p.earn(AchievementHoleMaster)
	}
	p.bus.Emit(Event{Type: EventSupernova, Data: NovaAtCenter})
}

func (p *Progression) nextLocked() (Ability, bool) {
	for _, a := range unlockOrder {
		if !p.unlocked[a] {
			return a, true
		}
	}
	return 0, false
}

func (p *Progression) Unlocked(a Ability) bool {
	if a >= abilityCount {
		return false
	}
	return p.unlocked[a]
}

// LevelMultiplier is the extra particle speed granted by the current level.
func (p *Progression) LevelMultiplier() float64 {
	return float64(p.Level-1) * LevelSpeedStep
}
