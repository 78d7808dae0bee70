package object

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brackenmoor/mudcore/internal/attr"
)

func TestSerializeWeaponCarriesSubtypeFields(t *testing.T) {
	w := NewWeapon(7, "sword iron", "an iron sword", 3.5, "mainhand", 12, "slash", "sword")
	w.SetTemplateID("iron-sword")
	w.SetDescription("A plain but serviceable blade.")

	rec := Serialize(w)
	require.Equal(t, "weapon", rec["type"])
	require.Equal(t, int64(7), rec["oid"])
	require.Equal(t, "iron-sword", rec["templateId"])
	require.Equal(t, int32(12), rec["attackPower"])
	require.Equal(t, "slash", rec["hitType"])
	require.Equal(t, "sword", rec["weaponType"])
	require.Equal(t, 3.5, rec["baseWeight"])
}

func TestSerializeCurrencyPanics(t *testing.T) {
	c := NewCurrency(9, "a pile of coins", 25)
	require.Panics(t, func() { Serialize(c) })
}

func TestCompressNormalizeRoundTrip(t *testing.T) {
	w := NewWeapon(7, "sword iron", "an iron sword", 3.5, "mainhand", 12, "slash", "sword")
	w.AttributeBonus = attr.Primary{Strength: 2}

	full := Serialize(w)
	compressed := Compress(full, TypeDefault("weapon"))

	// Fields matching the weapon baseline are stripped; identity fields and
	// genuinely differing fields survive.
	require.Contains(t, compressed, "type")
	require.Contains(t, compressed, "oid")
	require.Contains(t, compressed, "attackPower")
	require.NotContains(t, compressed, "resourceBonus", "zero bonus map equals baseline")
	require.NotContains(t, compressed, "secondaryBonus")

	restored := Normalize(compressed, TypeDefault("weapon"))
	require.Equal(t, full, restored, "normalize(compress(x)) == x against the same baseline")
}

func TestCompressPrefersTemplateBaseline(t *testing.T) {
	w := NewWeapon(7, "sword iron", "an iron sword", 3.5, "mainhand", 12, "slash", "sword")
	tmpl := TemplateFromObject(w, "iron-sword")

	w2 := NewWeapon(8, "sword iron", "an iron sword", 3.5, "mainhand", 12, "slash", "sword")
	w2.SetTemplateID("iron-sword")
	full := Serialize(w2)
	compressed := Compress(full, Baseline(tmpl, "weapon"))

	// Everything the template already records vanishes; identity remains.
	require.NotContains(t, compressed, "attackPower")
	require.NotContains(t, compressed, "display")
	require.NotContains(t, compressed, "baseWeight")
	require.Contains(t, compressed, "oid")
	require.Contains(t, compressed, "templateId")

	restored := Normalize(compressed, Baseline(tmpl, "weapon"))
	for k, v := range full {
		require.Equal(t, v, restored[k], "field %s must survive the round trip", k)
	}
}

func TestTemplateFromObjectOmitsInstanceFields(t *testing.T) {
	bag := NewItem(1, "bag", "a bag", 1, true)
	coin := NewItem(2, "coin", "a coin", 0.1, false)
	bag.Add(bag, coin)

	tmpl := TemplateFromObject(bag, "plain-bag")
	require.Equal(t, "item", tmpl.Type)
	require.NotContains(t, tmpl.Overrides, "oid")
	require.NotContains(t, tmpl.Overrides, "contents")
	require.NotContains(t, tmpl.Overrides, "location")
	require.Equal(t, "bag", tmpl.Overrides["keywords"])
	require.Equal(t, true, tmpl.Overrides["isContainer"])
	require.NotContains(t, tmpl.BaseSerialized, "contents")
}

func TestNormalizeRecursesIntoContents(t *testing.T) {
	compressedChild := map[string]any{"type": "item", "oid": int64(2), "keywords": "coin", "display": "a coin"}
	rec := map[string]any{
		"type":     "item",
		"oid":      int64(1),
		"keywords": "bag",
		"display":  "a bag",
		"contents": []any{compressedChild},
	}

	out := Normalize(rec, TypeDefault("item"))
	contents, ok := out["contents"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, contents, 1)
	require.Equal(t, float64(0), contents[0]["baseWeight"], "child re-gains the baseline weight field")
	require.Equal(t, false, contents[0]["isContainer"])
}

func TestParseTemplateIDForms(t *testing.T) {
	dID, local, err := ParseTemplateID("sword-basic")
	require.NoError(t, err)
	require.Empty(t, dID)
	require.Equal(t, "sword-basic", local)

	dID, local, err = ParseTemplateID("@midgar:sword-basic")
	require.NoError(t, err)
	require.Equal(t, "midgar", dID)
	require.Equal(t, "sword-basic", local)
	require.Equal(t, "@midgar:sword-basic", FormatTemplateID(dID, local))

	_, _, err = ParseTemplateID("@:broken")
	require.Error(t, err)
	_, _, err = ParseTemplateID("@midgar:")
	require.Error(t, err)
}

func TestLookupHitTypeByVerbRoundTrip(t *testing.T) {
	ht := LookupHitType("blunt")
	require.Equal(t, "crush", ht.Verb)
	tag, ok := HitTypeTagByVerb("crush")
	require.True(t, ok)
	require.Equal(t, "blunt", tag)
	_, ok = HitTypeTagByVerb("tickle")
	require.False(t, ok)
	require.Panics(t, func() { LookupHitType("tickle") })
}
