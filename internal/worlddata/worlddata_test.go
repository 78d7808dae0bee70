package worlddata

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadResolvesRacesJobsAbilitiesEffectsTemplates(t *testing.T) {
	c, err := Load("testdata/catalog.yaml")
	require.NoError(t, err)

	race, err := c.ResolveRace("human")
	require.NoError(t, err)
	require.Equal(t, 10.0, race.Start.Strength)
	require.Len(t, race.Abilities, 2)
	require.InDelta(t, 1.1, race.GrowthCurve(10), 0.001)

	job, err := c.ResolveJob("warrior")
	require.NoError(t, err)
	require.Equal(t, 4.0, job.Start.Strength)

	ability, err := c.ResolveAbility("power-strike")
	require.NoError(t, err)
	require.Equal(t, int32(10), ability.Proficiency(0))
	require.Equal(t, int32(100), ability.Proficiency(100), "clamped at 100")

	effect, err := c.ResolveEffect("burning")
	require.NoError(t, err)
	require.True(t, effect.IsOffensive)
	require.EqualValues(t, 10, effect.Amount)

	tmpl, err := c.ResolveTemplate("goblin")
	require.NoError(t, err)
	require.Equal(t, "Mob", tmpl.Type)
	require.Equal(t, "a goblin grunt", tmpl.Overrides["display"])
}

func TestResolveUnknownReturnsError(t *testing.T) {
	c, err := Load("testdata/catalog.yaml")
	require.NoError(t, err)

	_, err = c.ResolveRace("dragonkin")
	require.Error(t, err)

	_, err = c.ResolveEffect("nope")
	require.Error(t, err)

	_, err = c.ResolveTemplate("nope")
	require.Error(t, err)
}

func TestPolynomialEmptyCoefficientsIsNeutral(t *testing.T) {
	require.Equal(t, 1.0, Polynomial(nil, 5))
}

func TestLoadUnknownEffectKindErrors(t *testing.T) {
	_, err := Parse([]byte("effects:\n  weird:\n    kind: not-a-kind\n"))
	require.Error(t, err)
}
