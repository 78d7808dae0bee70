package mob

import (
	"testing"

	"github.com/brackenmoor/mudcore/internal/collab"
	"github.com/brackenmoor/mudcore/internal/object"
)

func TestDestroyStopsThreatTimerAndReleasesState(t *testing.T) {
	m := New(1, "npc", "an npc", 10, "", "", 1, nil)
	other := New(2, "other", "another npc", 10, "", "", 1, nil)
	m.Recompute(nil, nil, true, -1, -1)

	m.SetCombatTargetRaw(other)
	m.ThreatTable()[other.Base().ObjectID()] = &ThreatEntry{Attacker: other, Hate: 500}

	stopped := false
	m.SetThreatTimer("handle")
	m.SetThreatStopper(func() { stopped = true })

	sword := object.NewWeapon(3, "sword", "a sword", 3, "mainhand", 5, "slash", "sword")
	m.Equip(sword)

	object.Destroy(m)

	if !stopped {
		t.Fatalf("expected threat timer canceled on destroy")
	}
	if m.ThreatTimer() != nil {
		t.Fatalf("expected timer handle cleared")
	}
	if len(m.ThreatTable()) != 0 {
		t.Fatalf("expected threat table emptied")
	}
	if len(m.Equipped()) != 0 {
		t.Fatalf("expected equipment map released")
	}
	if m.CombatTarget() != nil {
		t.Fatalf("expected combat target cleared")
	}
	if !sword.IsDestroyed() {
		t.Fatalf("expected carried equipment destroyed recursively")
	}

	// Idempotent.
	object.Destroy(m)
}

func TestLearnAbilityByIDRequiresResolvers(t *testing.T) {
	m := New(1, "hero", "a hero", 70, "human", "warrior", 1, nil)
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic without resolvers")
		}
	}()
	m.LearnAbilityByID("power-strike")
}

func TestRecordAbilityUseReportsProficiencyIncrease(t *testing.T) {
	ability := &collab.Ability{
		ID: "power-strike",
		Proficiency: func(useCount int32) int32 {
			pct := 10 + useCount*5
			if pct > 100 {
				pct = 100
			}
			return pct
		},
	}
	m := New(1, "hero", "a hero", 70, "", "", 1, nil)
	m.LearnArchetypeAbility(ability)
	if m.ProficiencyPercent("power-strike") != 10 {
		t.Fatalf("expected initial snapshot 10, got %d", m.ProficiencyPercent("power-strike"))
	}

	if !m.RecordAbilityUse("power-strike") {
		t.Fatalf("expected proficiency increase on first use")
	}
	if m.ProficiencyPercent("power-strike") != 15 {
		t.Fatalf("expected snapshot 15, got %d", m.ProficiencyPercent("power-strike"))
	}
	if m.RecordAbilityUse("missing") {
		t.Fatalf("expected unknown ability use to report no increase")
	}
}

func TestGetUnlearnedArchetypeAbilitiesFiltersByLevel(t *testing.T) {
	race := &collab.Race{Abilities: []collab.AbilityGrant{
		{AbilityID: "power-strike", Level: 1},
		{AbilityID: "second-wind", Level: 5},
	}}
	job := &collab.Job{Abilities: []collab.AbilityGrant{
		{AbilityID: "shield-bash", Level: 3},
	}}

	m := New(1, "hero", "a hero", 70, "human", "warrior", 3, nil)
	m.LearnArchetypeAbility(&collab.Ability{ID: "power-strike"})

	grants := m.GetUnlearnedArchetypeAbilities(race, job)
	if len(grants) != 1 || grants[0].AbilityID != "shield-bash" {
		t.Fatalf("expected only shield-bash unlearned at level 3, got %v", grants)
	}
}

func TestAddCurrencyFoldsIntoValue(t *testing.T) {
	m := New(1, "hero", "a hero", 70, "", "", 1, nil)
	coins := object.NewCurrency(2, "a pile of coins", 30)
	if err := object.PickUp(m, coins); err != nil {
		t.Fatalf("unexpected pickup error: %v", err)
	}
	if m.Value() != 30 {
		t.Fatalf("expected carried balance 30, got %d", m.Value())
	}
	if !coins.IsDestroyed() {
		t.Fatalf("expected the currency item destroyed")
	}
}
