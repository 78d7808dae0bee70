package object

import (
	"reflect"

	"github.com/brackenmoor/mudcore/internal/attr"
)

// Template is a reusable blueprint for spawning objects (spec.md §4.1
// "Templates", §6 "serialized schema"). It carries the type tag used to
// pick a factory branch, plus only the fields that differ from that
// type's compile-time baseline.
type Template struct {
	ID             string
	Type           string
	Overrides      map[string]any
	BaseSerialized map[string]any
}

// FieldSerializer is an optional hook a concrete Node implements to
// contribute type-specific fields to Serialize (e.g. Weapon contributing
// attackPower/hitType). Types with no extra fields beyond the Object base
// simply don't implement it.
type FieldSerializer interface {
	ExtraFields() map[string]any
}

// typeTagger is an optional hook used to label a record's "type" field.
// Serialize labels types that don't implement it "object".
type typeTagger interface {
	TypeTag() string
}

// TypeTag returns o's type tag for serialization purposes.
func (o *Item) TypeTag() string      { return "item" }
func (o *Currency) TypeTag() string  { return "currency" }
func (o *Equipment) TypeTag() string { return "equipment" }
func (o *Armor) TypeTag() string     { return "armor" }
func (o *Weapon) TypeTag() string    { return "weapon" }
func (o *Prop) TypeTag() string      { return "prop" }

// ExtraFields implements FieldSerializer for the Item family.
func (o *Item) ExtraFields() map[string]any {
	return map[string]any{"isContainer": o.IsContainer}
}

func (o *Currency) ExtraFields() map[string]any {
	// SerializeCurrency is a programmer error (spec.md §7): currency is
	// always folded into a receiver's balance on pickup and is never
	// expected to still exist at serialize time.
	panic("object: attempted to serialize a Currency item directly")
}

func (o *Equipment) ExtraFields() map[string]any {
	return map[string]any{
		"slot":           o.Slot,
		"attributeBonus": primaryToMap(o.AttributeBonus),
		"resourceBonus":  capsToMap(o.ResourceBonus),
		"secondaryBonus": secondaryToMap(o.SecondaryBonus),
	}
}

func (o *Armor) ExtraFields() map[string]any {
	f := o.Equipment.ExtraFields()
	f["defense"] = o.Defense
	return f
}

func (o *Weapon) ExtraFields() map[string]any {
	f := o.Equipment.ExtraFields()
	f["attackPower"] = o.AttackPower
	f["hitType"] = o.HitType.Verb
	f["weaponType"] = o.WeaponType
	return f
}

func primaryToMap(p attr.Primary) map[string]any {
	return map[string]any{
		"strength":     p.Strength,
		"agility":      p.Agility,
		"intelligence": p.Intelligence,
	}
}

func capsToMap(c attr.Caps) map[string]any {
	return map[string]any{
		"maxHealth": c.MaxHealth,
		"maxMana":   c.MaxMana,
	}
}

func secondaryToMap(s attr.Secondary) map[string]any {
	return map[string]any{
		"attackPower": s.AttackPower,
		"defense":     s.Defense,
		"critRate":    s.CritRate,
		"avoidance":   s.Avoidance,
		"accuracy":    s.Accuracy,
		"spellPower":  s.SpellPower,
		"resilience":  s.Resilience,
		"vitality":    s.Vitality,
		"wisdom":      s.Wisdom,
		"endurance":   s.Endurance,
		"spirit":      s.Spirit,
	}
}

// serializeCore builds the fields every Node carries regardless of type:
// oid, keywords, display, baseWeight, value, templateId, and contents
// (each recursively serialized). Type-specific extras are merged in by
// Serialize.
func (o *Object) serializeCore() map[string]any {
	m := map[string]any{
		"oid":        o.oid,
		"keywords":   o.keyword,
		"display":    o.display,
		"baseWeight": o.baseWeight,
	}
	if o.description != nil {
		m["description"] = *o.description
	}
	if o.roomDescription != nil {
		m["roomDescription"] = *o.roomDescription
	}
	if o.mapText != nil {
		m["mapText"] = *o.mapText
	}
	if o.mapColor != nil {
		m["mapColor"] = *o.mapColor
	}
	if o.templateID != nil {
		m["templateId"] = *o.templateID
	}
	if o.parent != nil {
		if lf, ok := o.parent.(locationRefFormatter); ok {
			if ref, ok := lf.LocationRefString(); ok {
				m["location"] = ref
			}
		}
	}
	if o.value != 0 {
		m["value"] = o.value
	}
	if len(o.children) > 0 {
		contents := make([]map[string]any, 0, len(o.children))
		for _, c := range o.children {
			contents = append(contents, Serialize(c))
		}
		m["contents"] = contents
	}
	return m
}

// locationRefFormatter is implemented by a parent Node (namely world.Room)
// that can express itself as a stable room-ref string. Kept as a minimal
// interface here so object never imports world (spec.md §6: "location is a
// room-ref string ... when the parent is a registered Room").
type locationRefFormatter interface {
	LocationRefString() (string, bool)
}

// oidOmitter is implemented by Node types that must never serialize their
// oid (world.Room: "Rooms omit oid" per spec.md §4.1 Serialization).
type oidOmitter interface {
	OmitOID() bool
}

// Serialize produces the full self-describing record for n (spec.md §6).
// Type-specific extras are contributed via FieldSerializer; the type tag
// via typeTagger, falling back to "object" for the bare base type.
func Serialize(n Node) map[string]any {
	b := n.Base()
	m := b.serializeCore()
	if tt, ok := n.(typeTagger); ok {
		m["type"] = tt.TypeTag()
	} else {
		m["type"] = "object"
	}
	if fs, ok := n.(FieldSerializer); ok {
		for k, v := range fs.ExtraFields() {
			m[k] = v
		}
	}
	if om, ok := n.(oidOmitter); ok && om.OmitOID() {
		delete(m, "oid")
	}
	return m
}

// SerializeWithVersion is Serialize plus a schema-version stamp; Compress
// always preserves the version field alongside the other identity fields
// (spec.md §4.1 "Always preserves type, oid, templateId, version").
func SerializeWithVersion(n Node, version string) map[string]any {
	m := Serialize(n)
	if version != "" {
		m["version"] = version
	}
	return m
}

// typeDefaults holds one compile-time baseline record per type tag. The
// Item family registers its baselines here; packages defining their own
// Node types (world.Room, mob.Mob) register theirs via RegisterTypeDefault
// from an init func, since their default field values aren't visible from
// this package.
var typeDefaults = map[string]map[string]any{}

func init() {
	zeroEquipment := map[string]any{
		"baseWeight":     float64(0),
		"slot":           "",
		"attributeBonus": primaryToMap(attr.Primary{}),
		"resourceBonus":  capsToMap(attr.Caps{}),
		"secondaryBonus": secondaryToMap(attr.Secondary{}),
	}
	typeDefaults["item"] = map[string]any{"baseWeight": float64(0), "isContainer": false}
	typeDefaults["prop"] = map[string]any{"baseWeight": float64(0)}
	typeDefaults["equipment"] = zeroEquipment
	typeDefaults["armor"] = merge(zeroEquipment, map[string]any{"defense": int32(0)})
	typeDefaults["weapon"] = merge(zeroEquipment, map[string]any{
		"attackPower": int32(0),
		"weaponType":  "",
	})
}

func merge(base, extra map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

// RegisterTypeDefault installs the compile-time baseline record for a type
// tag defined outside this package.
func RegisterTypeDefault(typeTag string, baseline map[string]any) {
	typeDefaults[typeTag] = baseline
}

// TypeDefault returns the compile-time default serialized baseline for a
// type tag, used when no Template is available to supply BaseSerialized.
// Unknown tags return an empty map, which makes Compress a no-op and
// Normalize an identity overlay — the conservative fallback.
func TypeDefault(typeTag string) map[string]any {
	if d, ok := typeDefaults[typeTag]; ok {
		return d
	}
	return map[string]any{}
}

// TemplateFromObject produces a Template from a live object: serialize it,
// drop the instance-identity fields (oid, location, contents), and keep
// only what differs from the type baseline (spec.md §4.1 "Templates"). The
// full trimmed record is cached as BaseSerialized so later Compress calls
// can diff instances of this template against it.
func TemplateFromObject(n Node, id string) *Template {
	full := Serialize(n)
	delete(full, "oid")
	delete(full, "location")
	delete(full, "contents")
	typeTag, _ := full["type"].(string)

	overrides := Compress(full, TypeDefault(typeTag))
	delete(overrides, "type")
	delete(overrides, "templateId")

	return &Template{
		ID:             id,
		Type:           typeTag,
		Overrides:      overrides,
		BaseSerialized: full,
	}
}

// Baseline picks the diffing baseline for a template: its own cached
// BaseSerialized if present, else the compile-time TypeDefault for its
// type tag.
func Baseline(tmpl *Template, typeTag string) map[string]any {
	if tmpl != nil && tmpl.BaseSerialized != nil {
		return tmpl.BaseSerialized
	}
	return TypeDefault(typeTag)
}

// Compress removes fields from serialized that are equal to the matching
// baseline field, always preserving the identity fields (spec.md §6
// "compressed form omits fields equal to the template baseline").
func Compress(serialized, baseline map[string]any) map[string]any {
	out := map[string]any{}
	for k, v := range serialized {
		if isIdentityField(k) {
			out[k] = v
			continue
		}
		if bv, ok := baseline[k]; ok && equalAny(bv, v) {
			continue
		}
		out[k] = v
	}
	return out
}

// Normalize overlays a compressed record back onto its baseline, recursing
// into contents, producing the full record again (spec.md §6 "normalize is
// the left inverse of compress given the same baseline").
func Normalize(serialized, baseline map[string]any) map[string]any {
	out := map[string]any{}
	for k, v := range baseline {
		out[k] = v
	}
	for k, v := range serialized {
		out[k] = v
	}
	if contents, ok := ContentsSlice(out["contents"]); ok {
		normalized := make([]map[string]any, 0, len(contents))
		for _, c := range contents {
			childType, _ := c["type"].(string)
			normalized = append(normalized, Normalize(c, TypeDefault(childType)))
		}
		out["contents"] = normalized
	}
	return out
}

// ContentsSlice coerces a record's "contents" value into a slice of child
// records, accepting both the []map[string]any the serializer emits and
// the []any a JSON decode round-trip produces.
func ContentsSlice(v any) ([]map[string]any, bool) {
	switch c := v.(type) {
	case []map[string]any:
		return c, true
	case []any:
		out := make([]map[string]any, 0, len(c))
		for _, e := range c {
			m, ok := e.(map[string]any)
			if !ok {
				return nil, false
			}
			out = append(out, m)
		}
		return out, true
	}
	return nil, false
}

func isIdentityField(k string) bool {
	switch k {
	case "type", "oid", "templateId", "version":
		return true
	}
	return false
}

func equalAny(a, b any) bool {
	return reflect.DeepEqual(a, b)
}
