package attr

import "testing"

func TestSumPrimaryRounds(t *testing.T) {
	got := SumPrimary(
		Primary{Strength: 1.006, Agility: 2.006, Intelligence: 0.5},
		Primary{Strength: 0.001, Agility: 0.001, Intelligence: 0.5},
	)
	if got.Strength != 1.01 {
		t.Fatalf("expected strength rounded to 1.01, got %v", got.Strength)
	}
	if got.Agility != 2.01 {
		t.Fatalf("expected agility rounded to 2.01, got %v", got.Agility)
	}
	if got.Intelligence != 1.0 {
		t.Fatalf("expected intelligence 1.0, got %v", got.Intelligence)
	}
}

func TestMultiplyPrimary(t *testing.T) {
	got := MultiplyPrimary(Primary{Strength: 1.5, Agility: 2, Intelligence: 0.5}, 4)
	if got.Strength != 6 || got.Agility != 8 || got.Intelligence != 2 {
		t.Fatalf("unexpected scaled primary: %+v", got)
	}
}

func TestComputeCapsFromVitalityWisdom(t *testing.T) {
	caps := ComputeCaps(7, 3)
	if caps.MaxHealth != 7*HealthPerVitality {
		t.Fatalf("expected maxHealth %d, got %d", 7*HealthPerVitality, caps.MaxHealth)
	}
	if caps.MaxMana != 3*ManaPerWisdom {
		t.Fatalf("expected maxMana %d, got %d", 3*ManaPerWisdom, caps.MaxMana)
	}
}

func TestSumSecondaryAccumulatesEveryField(t *testing.T) {
	a := Secondary{AttackPower: 1, Defense: 2, CritRate: 3, Avoidance: 4, Accuracy: 5,
		SpellPower: 6, Resilience: 7, Vitality: 8, Wisdom: 9, Endurance: 10, Spirit: 11}
	got := SumSecondary(a, a)
	if got.AttackPower != 2 || got.Spirit != 22 || got.Wisdom != 18 {
		t.Fatalf("unexpected summed secondary: %+v", got)
	}
}

func TestClamp(t *testing.T) {
	cases := []struct{ v, lo, hi, want int32 }{
		{5, 0, 10, 5},
		{-1, 0, 10, 0},
		{11, 0, 10, 10},
	}
	for _, c := range cases {
		if got := Clamp(c.v, c.lo, c.hi); got != c.want {
			t.Fatalf("Clamp(%d, %d, %d) = %d, want %d", c.v, c.lo, c.hi, got, c.want)
		}
	}
}
