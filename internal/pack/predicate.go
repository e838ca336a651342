package pack

// Predicate keys recognized by the classifier. "damaged" is a 0/1 flag the
// legacy schema pairs with "damage"; it carries no value of its own and is
// never written to output.
const (
	keyCustomModelData = "custom_model_data"
	keyDamage          = "damage"
	keyDamaged         = "damaged"
)

// Kind tags the shape of one override's predicate.
type Kind int

const (
	// KindUnrecognized covers predicates the converter does not handle
	// (unknown keys, or "damaged" with no damage value).
	KindUnrecognized Kind = iota

	// KindCustomModelData is a pure custom_model_data predicate.
	KindCustomModelData

	// KindCustomModelDataDamage combines custom_model_data with
	// damage/damaged.
	KindCustomModelDataDamage

	// KindDamageOnly is a damage predicate with no custom_model_data.
	KindDamageOnly
)

// Classified is the result of classifying one override predicate.
// CustomModelData is meaningful for the custom-model-data kinds, Damage for
// the damage-bearing kinds.
type Classified struct {
	Kind            Kind
	CustomModelData int
	Damage          float64
}

// Classify inspects one override predicate and determines its kind.
// Precedence: custom_model_data combined with damage/damaged wins over pure
// custom_model_data, which wins over damage-only. A "damaged" flag without a
// "damage" value and without custom_model_data is malformed and reported as
// unrecognized rather than guessing a threshold.
func Classify(predicate map[string]float64) Classified {
	cmd, hasCMD := predicate[keyCustomModelData]
	damage, hasDamage := predicate[keyDamage]
	_, hasDamagedFlag := predicate[keyDamaged]

	switch {
	case hasCMD && (hasDamage || hasDamagedFlag):
		return Classified{
			Kind:            KindCustomModelDataDamage,
			CustomModelData: int(cmd),
			Damage:          damage,
		}
	case hasCMD:
		return Classified{Kind: KindCustomModelData, CustomModelData: int(cmd)}
	case hasDamage:
		return Classified{Kind: KindDamageOnly, Damage: damage}
	default:
		return Classified{Kind: KindUnrecognized}
	}
}

// HasCustomModelData reports whether the kind carries a custom_model_data
// component.
func (k Kind) HasCustomModelData() bool {
	return k == KindCustomModelData || k == KindCustomModelDataDamage
}

// String returns the kind name used in log fields and skip details.
func (k Kind) String() string {
	switch k {
	case KindCustomModelData:
		return "custom_model_data"
	case KindCustomModelDataDamage:
		return "custom_model_data+damage"
	case KindDamageOnly:
		return "damage"
	default:
		return "unrecognized"
	}
}
