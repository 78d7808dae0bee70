package mob

import (
	"testing"

	"github.com/brackenmoor/mudcore/internal/collab"
)

func TestRecomputeBootstrapSetsFullResources(t *testing.T) {
	m := New(1, "goblin", "a goblin", 10, "goblinoid", "warrior", 1, nil)
	race := &collab.Race{Start: collab.Primary{Strength: 10, Agility: 5, Intelligence: 2}}
	job := &collab.Job{Start: collab.Primary{Strength: 2}}

	m.Recompute(race, job, true, -1, -1)

	if m.Health() != m.MaxHealth() {
		t.Fatalf("expected bootstrap health == maxHealth, got %d/%d", m.Health(), m.MaxHealth())
	}
	if m.Mana() != m.MaxMana() {
		t.Fatalf("expected bootstrap mana == maxMana, got %d/%d", m.Mana(), m.MaxMana())
	}
	if m.Exhaustion() != 0 {
		t.Fatalf("expected exhaustion 0 on bootstrap, got %d", m.Exhaustion())
	}
}

func TestGainExperienceLevelsUp(t *testing.T) {
	m := New(1, "hero", "a hero", 10, "human", "warrior", 1, nil)
	race := &collab.Race{Start: collab.Primary{Strength: 10}}
	m.Recompute(race, nil, true, -1, -1)

	summary := m.GainExperience(250, race, nil, false)
	if summary == nil {
		t.Fatalf("expected a level-up summary")
	}
	if summary.LevelsGained != 2 {
		t.Fatalf("expected 2 levels gained from 250 xp, got %d", summary.LevelsGained)
	}
	if m.Level != 3 {
		t.Fatalf("expected level 3, got %d", m.Level)
	}
	if m.Experience() != 50 {
		t.Fatalf("expected 50 leftover xp, got %d", m.Experience())
	}
}

func TestAwardKillExperienceScalesWithLevelDelta(t *testing.T) {
	m := New(1, "hero", "a hero", 10, "human", "warrior", 5, nil)
	race := &collab.Race{Start: collab.Primary{Strength: 10}}
	m.Recompute(race, nil, true, -1, -1)

	before := m.Experience()
	m.AwardKillExperience(10, race, nil) // 5 levels above: 10 + 2*5 = 20 xp
	after := m.Experience()
	if after-before != 20 {
		t.Fatalf("expected 20 xp awarded, got %d", after-before)
	}
}

func TestResourceClampNeverExceedsCaps(t *testing.T) {
	m := New(1, "hero", "a hero", 10, "human", "warrior", 1, nil)
	race := &collab.Race{Start: collab.Primary{Strength: 10}}
	m.Recompute(race, nil, true, -1, -1)

	m.Heal(1_000_000)
	if m.Health() != m.MaxHealth() {
		t.Fatalf("expected health clamped at maxHealth, got %d", m.Health())
	}
	m.ReduceHealth(1_000_000)
	if m.Health() != 0 {
		t.Fatalf("expected health clamped at 0, got %d", m.Health())
	}
}

func TestSelfTargetForbiddenAtComabtLayer(t *testing.T) {
	// internal/combat enforces this with simerr.ErrSelfTarget at its
	// SetCombatTarget entry point; this package only exposes the raw
	// setter combat builds on, verified here not to itself crash.
	m := New(1, "hero", "a hero", 10, "human", "warrior", 1, nil)
	m.SetCombatTargetRaw(m)
	if m.CombatTarget() != m {
		t.Fatalf("expected raw setter to not second-guess the caller")
	}
}
