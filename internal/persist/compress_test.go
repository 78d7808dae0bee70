package persist

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brackenmoor/mudcore/internal/object"
	"github.com/brackenmoor/mudcore/internal/simerr"
)

type fakeResolver struct {
	templates map[string]*object.Template
}

func (r *fakeResolver) ResolveTemplate(id string) (*object.Template, error) {
	t, ok := r.templates[id]
	if !ok {
		return nil, simerr.ErrUnknownTemplate
	}
	return t, nil
}

func TestCompressNormalizeTreeRoundTrip(t *testing.T) {
	bag := object.NewItem(1, "bag", "a bag", 2, true)
	coin := object.NewItem(2, "coin", "a coin", 0.1, false)
	bag.Add(bag, coin)

	full := object.Serialize(bag)
	resolver := &fakeResolver{templates: map[string]*object.Template{}}

	compressed := CompressTree(full, resolver)
	restored := NormalizeTree(compressed, resolver)

	require.Equal(t, full, restored, "NormalizeTree inverts CompressTree")
}

func TestCompressTreeSurvivesJSONRoundTrip(t *testing.T) {
	sword := object.NewWeapon(3, "sword", "a sword", 3.5, "mainhand", 5, "slash", "sword")
	bag := object.NewItem(1, "bag", "a bag", 2, true)
	bag.Add(bag, sword)

	resolver := &fakeResolver{templates: map[string]*object.Template{}}
	compressed := CompressTree(object.Serialize(bag), resolver)

	payload, err := json.Marshal(compressed)
	require.NoError(t, err)
	var loaded map[string]any
	require.NoError(t, json.Unmarshal(payload, &loaded))

	restored := NormalizeTree(loaded, resolver)
	contents, ok := object.ContentsSlice(restored["contents"])
	require.True(t, ok, "contents decodable after a JSON round trip")
	require.Len(t, contents, 1)
	require.Equal(t, "weapon", contents[0]["type"])
	require.Equal(t, "sword", contents[0]["weaponType"], "non-baseline fields survive the round trip")

	// JSON widens ints to float64; the record is still structurally whole.
	require.EqualValues(t, 5, contents[0]["attackPower"].(float64))
}

func TestCompressTreeDiffsAgainstTemplateBaseline(t *testing.T) {
	proto := object.NewWeapon(10, "sword iron", "an iron sword", 3.5, "mainhand", 12, "slash", "sword")
	tmpl := object.TemplateFromObject(proto, "iron-sword")
	resolver := &fakeResolver{templates: map[string]*object.Template{"iron-sword": tmpl}}

	instance := object.NewWeapon(11, "sword iron", "an iron sword", 3.5, "mainhand", 12, "slash", "sword")
	instance.SetTemplateID("iron-sword")

	compressed := CompressTree(object.Serialize(instance), resolver)
	require.NotContains(t, compressed, "attackPower", "template-covered field stripped")
	require.NotContains(t, compressed, "display")
	require.Contains(t, compressed, "oid")
	require.Contains(t, compressed, "templateId")
}
