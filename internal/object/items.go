package object

import "github.com/brackenmoor/mudcore/internal/attr"

// Destroyer is an optional hook a Node implements to release resources
// before the generic recursive teardown in Destroy runs (e.g. a mob
// stopping its threat timers and releasing its equipment map).
type Destroyer interface {
	OnDestroy()
}

// CurrencyReceiver is an optional hook a Node implements to accept currency
// directly rather than holding a Currency item in its contents. Picking up
// a Currency item against a receiver transfers its Value and destroys the
// item instead of adding it (spec.md §4.1 "Currency").
type CurrencyReceiver interface {
	AddCurrency(amount int64)
}

// PickUp moves item into actor's contents, special-casing Currency: if
// actor implements CurrencyReceiver, the currency's value is transferred
// and the item is destroyed rather than carried.
func PickUp(actor Node, item Node) error {
	if cur, ok := item.(*Currency); ok {
		if recv, ok := actor.(CurrencyReceiver); ok {
			recv.AddCurrency(cur.Value())
			Destroy(item)
			return nil
		}
	}
	Move(item, actor)
	return nil
}

// Item is a portable object: weapons, armor, currency, and plain
// knick-knacks all embed it (spec.md §3 entity list).
type Item struct {
	*Object
	IsContainer bool
}

// NewItem constructs a detached Item and marks it as part of the Item
// family so spawnedByReset clears on every relocation (spec.md §4.1(d)).
func NewItem(oid int64, keywords, display string, weight float64, isContainer bool) *Item {
	it := &Item{Object: New(oid, keywords, display, weight), IsContainer: isContainer}
	it.MarkItemKind()
	return it
}

// Currency is a stack of coin-equivalent value. It is never carried in
// serialized form — see the panic in Currency.ExtraFields in template.go —
// because currency is always immediately folded into a CurrencyReceiver's
// balance on pickup and never persists as a standalone object.
type Currency struct {
	*Item
}

// NewCurrency constructs a detached Currency item worth amount.
func NewCurrency(oid int64, display string, amount int64) *Currency {
	it := NewItem(oid, "currency coin gold coins money", display, 0, false)
	it.SetValue(amount)
	return &Currency{Item: it}
}

// HitType names the verb and damage type a weapon applies on a successful
// hit (spec.md §4.4 "weapon hit types").
type HitType struct {
	Verb       string
	DamageType string
}

// commonHitTypes is the fixed catalog of hit-type tags a Weapon can be
// constructed with. Unrecognized tags are a programmer error (spec.md §7:
// "HitTypeNotFound: throw during construction").
var commonHitTypes = map[string]HitType{
	"slash":  {Verb: "slash", DamageType: "physical"},
	"pierce": {Verb: "pierce", DamageType: "physical"},
	"blunt":  {Verb: "crush", DamageType: "physical"},
	"fire":   {Verb: "burn", DamageType: "fire"},
	"frost":  {Verb: "freeze", DamageType: "frost"},
	"arcane": {Verb: "blast", DamageType: "arcane"},
}

// LookupHitType resolves a hit-type tag, panicking if it is unrecognized.
func LookupHitType(tag string) HitType {
	ht, ok := commonHitTypes[tag]
	if !ok {
		panic("object: unknown hit type tag " + tag)
	}
	return ht
}

// HitTypeTagByVerb reverses LookupHitType for deserialization: serialized
// weapons carry the hit verb, not the catalog tag.
func HitTypeTagByVerb(verb string) (string, bool) {
	for tag, ht := range commonHitTypes {
		if ht.Verb == verb {
			return tag, true
		}
	}
	return "", false
}

// Equipment is a wearable/wieldable item that grants attribute bonuses
// while equipped (spec.md §4.4 "equipment bonuses").
type Equipment struct {
	*Item
	Slot            string
	AttributeBonus  attr.Primary
	ResourceBonus   attr.Caps
	SecondaryBonus  attr.Secondary
}

// NewEquipment constructs a detached Equipment item for the given slot.
func NewEquipment(oid int64, keywords, display string, weight float64, slot string) *Equipment {
	return &Equipment{Item: NewItem(oid, keywords, display, weight, false), Slot: slot}
}

// EquipSlot, AttributeBonuses, ResourceBonuses, and SecondaryBonuses let
// mob.Mob fold an equipped item's bonuses into attribute recomputation
// without needing to know whether it holds a bare Equipment, an Armor, or
// a Weapon — each promotes these from its embedded *Equipment, so the map
// that stores them can hold the concrete pointer and still recover the
// Armor/Weapon-specific fields via a type assertion later.
func (e *Equipment) EquipSlot() string                { return e.Slot }
func (e *Equipment) AttributeBonuses() attr.Primary   { return e.AttributeBonus }
func (e *Equipment) ResourceBonuses() attr.Caps       { return e.ResourceBonus }
func (e *Equipment) SecondaryBonuses() attr.Secondary { return e.SecondaryBonus }

// Armor is Equipment whose Defense is added to the wearer's secondary
// defense attribute when the wearer's attributes are recomputed.
type Armor struct {
	*Equipment
	Defense int32
}

// NewArmor constructs a detached Armor item.
func NewArmor(oid int64, keywords, display string, weight float64, slot string, defense int32) *Armor {
	return &Armor{Equipment: NewEquipment(oid, keywords, display, weight, slot), Defense: defense}
}

// Weapon is Equipment that defines the attack power and hit type applied
// when its wielder lands a hit (spec.md §4.5 "damage pipeline").
type Weapon struct {
	*Equipment
	AttackPower int32
	HitType     HitType
	WeaponType  string
}

// NewWeapon constructs a detached Weapon. hitTypeTag must be one of the
// recognized tags in commonHitTypes; an unrecognized tag panics, matching
// spec.md §7's HitTypeNotFound "throw during construction" rule.
func NewWeapon(oid int64, keywords, display string, weight float64, slot string, attackPower int32, hitTypeTag, weaponType string) *Weapon {
	return &Weapon{
		Equipment:   NewEquipment(oid, keywords, display, weight, slot),
		AttackPower: attackPower,
		HitType:     LookupHitType(hitTypeTag),
		WeaponType:  weaponType,
	}
}

// Prop is a decorative, non-portable fixture (spec.md §3 entity list).
// Nothing in the base containment graph stops a Prop from being moved;
// Props are simply never given a pickup verb by the (out of scope)
// command layer.
type Prop struct {
	*Object
}

// NewProp constructs a detached Prop.
func NewProp(oid int64, keywords, display string, weight float64) *Prop {
	return &Prop{Object: New(oid, keywords, display, weight)}
}
