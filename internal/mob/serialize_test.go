package mob

import (
	"testing"

	"github.com/brackenmoor/mudcore/internal/collab"
	"github.com/brackenmoor/mudcore/internal/object"
)

func TestMobExtraFieldsCarryFullState(t *testing.T) {
	m := New(5, "goblin grunt", "a goblin grunt", 40, "orc", "raider", 3, nil)
	race := &collab.Race{Start: collab.Primary{Strength: 12, Agility: 8, Intelligence: 4}}
	m.Recompute(race, nil, true, -1, -1)
	m.SetBehaviors(Aggressive | Wimpy)
	m.RestoreExperience(42)
	m.RestoreLearnedAbility(&collab.Ability{ID: "power-strike"}, 7)

	sword := object.NewWeapon(6, "sword", "a sword", 3, "mainhand", 5, "slash", "sword")
	m.Equip(sword)

	rec := object.Serialize(m)
	if rec["type"] != "Mob" {
		t.Fatalf("expected Mob type tag, got %v", rec["type"])
	}
	if rec["race"] != "orc" || rec["job"] != "raider" {
		t.Fatalf("expected archetype ids serialized")
	}
	if rec["level"] != int32(3) || rec["experience"] != int32(42) {
		t.Fatalf("unexpected level/experience: %v/%v", rec["level"], rec["experience"])
	}

	behaviors := rec["behaviors"].(map[string]any)
	if behaviors["aggressive"] != true || behaviors["wimpy"] != true || behaviors["wander"] != false {
		t.Fatalf("unexpected behaviors: %v", behaviors)
	}

	learned := rec["learnedAbilities"].(map[string]any)
	if learned["power-strike"] != int32(7) {
		t.Fatalf("unexpected learned abilities: %v", learned)
	}

	equipped := rec["equipped"].(map[string]any)
	slotRec, ok := equipped["mainhand"].(map[string]any)
	if !ok || slotRec["type"] != "weapon" {
		t.Fatalf("expected equipped mainhand weapon record, got %v", equipped)
	}

	// Equipped items stay in inventory (spec invariant), so the sword also
	// appears in contents.
	if _, ok := rec["contents"]; !ok {
		t.Fatalf("expected equipped sword also serialized under contents")
	}
}

func TestEquipPlacesItemInInventory(t *testing.T) {
	m := New(1, "hero", "a hero", 70, "", "", 1, nil)
	helm := object.NewArmor(2, "cap", "a cap", 0.5, "head", 2)

	m.Equip(helm)
	if !m.Contains(helm) {
		t.Fatalf("expected equipped item contained by wearer")
	}
	if m.Equipped()["head"] != helm {
		t.Fatalf("expected cap in head slot")
	}

	m.Unequip("head")
	if _, ok := m.Equipped()["head"]; ok {
		t.Fatalf("expected head slot emptied")
	}
	if !m.Contains(helm) {
		t.Fatalf("expected unequipped item to stay in inventory")
	}
}
