package game

import "fmt"

// Achievement is a one-shot milestone.
type Achievement uint8

const (
	AchievementSwarm Achievement = iota
	AchievementGravityWell
	AchievementHoleMaster
	achievementCount
)

// Achievements lists every milestone in display order.
var Achievements = [...]Achievement{AchievementSwarm, AchievementGravityWell, AchievementHoleMaster}

func (a Achievement) String() string {
	switch a {
	case AchievementSwarm:
		return "Swarm"
	case AchievementGravityWell:
		return "Gravity Well"
	case AchievementHoleMaster:
		return "Black Hole Master"
	}
	return fmt.Sprintf("Achievement(%d)", int(a))
}

// Goal describes what earns the achievement.
func (a Achievement) Goal() string {
	switch a {
	case AchievementSwarm:
		return fmt.Sprintf("Run %d particles", SwarmParticleCount)
	case AchievementGravityWell:
		return "Switch to attract mode"
	case AchievementHoleMaster:
		return "Reach level 3"
	}
	return ""
}

// Snapshot is the slice of simulation state achievements look at.
type Snapshot struct {
	ParticleCount int
	Mode          Mode
	Level         int
}

// CheckAchievements evaluates every predicate; each achievement fires once.
func (p *Progression) CheckAchievements(s Snapshot) {
	if s.ParticleCount >= SwarmParticleCount {
		p.earn(AchievementSwarm)
	}
	if s.Mode == ModeAttract {
		p.earn(AchievementGravityWell)
	}
	if s.Level >= 3 {
		p.earn(AchievementHoleMaster)
	}
}

func (p *Progression) earn(a Achievement) {
	if p.earned[a] {
		return
	}
	p.earned[a] = true
	p.bus.Notify(fmt.Sprintf("Achievement: %s!", a))
	p.bus.Emit(Event{Type: EventAchievement, Data: int(a)})
}

func (p *Progression) Earned(a Achievement) bool {
	if a >= achievementCount {
		return false
	}
	return p.earned[a]
}
