package persist

import (
	"fmt"

	"github.com/brackenmoor/mudcore/internal/attr"
	"github.com/brackenmoor/mudcore/internal/collab"
	"github.com/brackenmoor/mudcore/internal/direction"
	"github.com/brackenmoor/mudcore/internal/effects"
	"github.com/brackenmoor/mudcore/internal/geo"
	"github.com/brackenmoor/mudcore/internal/mob"
	"github.com/brackenmoor/mudcore/internal/object"
	"github.com/brackenmoor/mudcore/internal/world"
)

// DecodeOptions carries the collaborators record decoding needs: archetype
// and effect resolution, an oid mint for records that don't carry one
// (rooms), the clock reading effect restoration anchors to, and a live-mob
// index for re-binding effect casters.
type DecodeOptions struct {
	Resolvers     collab.Resolvers
	MintOID       func() int64
	NowMs         int64
	ResolveCaster func(oid int64) *mob.Mob
}

func (o DecodeOptions) mint() int64 {
	if o.MintOID != nil {
		return o.MintOID()
	}
	return -1
}

// DecodeNode rebuilds a live Node from a fully normalized serialized
// record (spec.md §8 round-trip laws: Serialize(Deserialize(s)) == s for
// any form the core produced). The record must already be normalized —
// callers holding a compressed save run NormalizeTree first. Contents are
// decoded recursively and attached.
func DecodeNode(rec map[string]any, opts DecodeOptions) (object.Node, error) {
	typeTag, _ := rec["type"].(string)
	oid := asI64(rec["oid"])
	if oid == 0 {
		oid = opts.mint()
	}
	keywords := asStr(rec["keywords"])
	display := asStr(rec["display"])
	weight := asF64(rec["baseWeight"])

	var n object.Node
	switch typeTag {
	case "Mob":
		m, err := decodeMob(rec, oid, keywords, display, weight, opts)
		if err != nil {
			return nil, err
		}
		n = m
	case "Room":
		n = decodeRoom(rec, oid, keywords, display)
	case "weapon":
		tag, ok := object.HitTypeTagByVerb(asStr(rec["hitType"]))
		if !ok {
			return nil, fmt.Errorf("decoding weapon %d: unknown hit verb %q", oid, rec["hitType"])
		}
		w := object.NewWeapon(oid, keywords, display, weight, asStr(rec["slot"]),
			asI32(rec["attackPower"]), tag, asStr(rec["weaponType"]))
		decodeEquipmentBonuses(w.Equipment, rec)
		n = w
	case "armor":
		a := object.NewArmor(oid, keywords, display, weight, asStr(rec["slot"]), asI32(rec["defense"]))
		decodeEquipmentBonuses(a.Equipment, rec)
		n = a
	case "equipment":
		e := object.NewEquipment(oid, keywords, display, weight, asStr(rec["slot"]))
		decodeEquipmentBonuses(e, rec)
		n = e
	case "prop":
		n = object.NewProp(oid, keywords, display, weight)
	case "item":
		n = object.NewItem(oid, keywords, display, weight, asBool(rec["isContainer"]))
	default:
		return nil, fmt.Errorf("decoding record: unknown type tag %q", typeTag)
	}

	b := n.Base()
	if id, ok := rec["templateId"].(string); ok && id != "" {
		b.SetTemplateID(id)
	}
	if s, ok := rec["description"].(string); ok {
		b.SetDescription(s)
	}
	if s, ok := rec["roomDescription"].(string); ok {
		b.SetRoomDescription(s)
	}
	if s, ok := rec["mapText"].(string); ok {
		b.SetMapText(s)
	}
	if s, ok := rec["mapColor"].(string); ok {
		b.SetMapColor(s)
	}
	if v := asI64(rec["value"]); v != 0 {
		b.SetValue(v)
	}

	if contents, ok := object.ContentsSlice(rec["contents"]); ok {
		for _, childRec := range contents {
			child, err := DecodeNode(childRec, opts)
			if err != nil {
				return nil, err
			}
			object.Move(child, n)
		}
	}
	return n, nil
}

func decodeRoom(rec map[string]any, oid int64, keywords, display string) *world.Room {
	coord := geo.Coordinate{}
	if c, ok := rec["coordinates"].(map[string]any); ok {
		coord = geo.Coordinate{X: asI32(c["x"]), Y: asI32(c["y"]), Z: asI32(c["z"])}
	}
	r := world.NewRoom(oid, coord)
	r.SetKeywords(keywords)
	r.SetDisplay(display)
	if exits, ok := rec["allowedExits"]; ok {
		r.AllowedExits = direction.Direction(asI64(exits))
	}
	r.Dense = asBool(rec["dense"])
	return r
}

func decodeMob(rec map[string]any, oid int64, keywords, display string, weight float64, opts DecodeOptions) (*mob.Mob, error) {
	m := mob.New(oid, keywords, display, weight,
		asStr(rec["race"]), asStr(rec["job"]), asI32(rec["level"]), opts.Resolvers)
	m.RestoreExperience(asI32(rec["experience"]))

	if p, ok := rec["attributeBonuses"].(map[string]any); ok {
		m.AddRuntimeAttributeBonus(attr.Primary{
			Strength:     asF64(p["strength"]),
			Agility:      asF64(p["agility"]),
			Intelligence: asF64(p["intelligence"]),
		})
	}
	if c, ok := rec["resourceBonuses"].(map[string]any); ok {
		m.AddRuntimeResourceBonus(attr.Caps{
			MaxHealth: asI32(c["maxHealth"]),
			MaxMana:   asI32(c["maxMana"]),
		})
	}

	if bh, ok := rec["behaviors"].(map[string]any); ok {
		var flags mob.Behavior
		if asBool(bh["aggressive"]) {
			flags |= mob.Aggressive
		}
		if asBool(bh["wimpy"]) {
			flags |= mob.Wimpy
		}
		if asBool(bh["wander"]) {
			flags |= mob.Wander
		}
		if asBool(bh["shopkeeper"]) {
			flags |= mob.Shopkeeper
		}
		m.SetBehaviors(flags)
	}

	if learned, ok := rec["learnedAbilities"].(map[string]any); ok && opts.Resolvers != nil {
		for id, uses := range learned {
			a, err := opts.Resolvers.ResolveAbility(id)
			if err != nil {
				continue
			}
			m.RestoreLearnedAbility(a, asI32(uses))
		}
	}

	var race *collab.Race
	var job *collab.Job
	if opts.Resolvers != nil {
		if r, err := opts.Resolvers.ResolveRace(m.RaceID); err == nil {
			race = r
		}
		if j, err := opts.Resolvers.ResolveJob(m.JobID); err == nil {
			job = j
		}
	}
	m.Recompute(race, job, false, -1, -1)

	if equipped, ok := rec["equipped"].(map[string]any); ok {
		for _, eqRec := range equipped {
			eqMap, ok := eqRec.(map[string]any)
			if !ok {
				continue
			}
			n, err := DecodeNode(eqMap, opts)
			if err != nil {
				return nil, err
			}
			if eq, ok := n.(mob.Equippable); ok {
				m.Equip(eq)
			}
		}
		m.Recompute(race, job, false, -1, -1)
	}

	m.RestoreResources(asI32(rec["health"]), asI32(rec["mana"]), asI32(rec["exhaustion"]))

	if list, ok := object.ContentsSlice(rec["effects"]); ok && opts.Resolvers != nil {
		for _, eff := range list {
			id, _ := eff["effectId"].(string)
			tmpl, err := opts.Resolvers.ResolveEffect(id)
			if err != nil {
				continue
			}
			effects.Restore(m, tmpl, opts.NowMs, eff, opts.ResolveCaster)
		}
	}
	return m, nil
}

func decodeEquipmentBonuses(e *object.Equipment, rec map[string]any) {
	if p, ok := rec["attributeBonus"].(map[string]any); ok {
		e.AttributeBonus = attr.Primary{
			Strength:     asF64(p["strength"]),
			Agility:      asF64(p["agility"]),
			Intelligence: asF64(p["intelligence"]),
		}
	}
	if c, ok := rec["resourceBonus"].(map[string]any); ok {
		e.ResourceBonus = attr.Caps{MaxHealth: asI32(c["maxHealth"]), MaxMana: asI32(c["maxMana"])}
	}
	if s, ok := rec["secondaryBonus"].(map[string]any); ok {
		e.SecondaryBonus = attr.Secondary{
			AttackPower: asI32(s["attackPower"]),
			Defense:     asI32(s["defense"]),
			CritRate:    asI32(s["critRate"]),
			Avoidance:   asI32(s["avoidance"]),
			Accuracy:    asI32(s["accuracy"]),
			SpellPower:  asI32(s["spellPower"]),
			Resilience:  asI32(s["resilience"]),
			Vitality:    asI32(s["vitality"]),
			Wisdom:      asI32(s["wisdom"]),
			Endurance:   asI32(s["endurance"]),
			Spirit:      asI32(s["spirit"]),
		}
	}
}

// RestoreDungeonRooms rebuilds every saved room (and its recursive
// contents) into d, the load half of SaveDungeon. Records must be the
// normalized form; run NormalizeTree over a loaded snapshot first.
func RestoreDungeonRooms(d *world.Dungeon, rooms []map[string]any, opts DecodeOptions) error {
	for _, rec := range rooms {
		n, err := DecodeNode(rec, opts)
		if err != nil {
			return err
		}
		room, ok := n.(*world.Room)
		if !ok {
			return fmt.Errorf("restoring dungeon %q: top-level record is not a room", d.ID())
		}
		if !d.AddRoom(room) {
			return fmt.Errorf("restoring dungeon %q: room %v out of bounds", d.ID(), room.Coordinates)
		}
	}
	return nil
}

func asStr(v any) string {
	s, _ := v.(string)
	return s
}

func asF64(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	}
	return 0
}

func asI64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int32:
		return int64(n)
	case int:
		return int64(n)
	case float64:
		return int64(n)
	}
	return 0
}

func asI32(v any) int32 { return int32(asI64(v)) }

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}
