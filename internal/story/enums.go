package story

// String backed tags so catalogs read naturally and log cleanly.

type Phase string
type Particles string
type Variant string

const (
	PhaseNone    Phase = ""
	PhaseFull    Phase = "full"
	PhaseWaning  Phase = "waning"
	PhaseQuarter Phase = "quarter"
	PhaseWaxing  Phase = "waxing"
	PhaseNew     Phase = "new"
)

var AllPhases = []Phase{PhaseFull, PhaseWaning, PhaseQuarter, PhaseWaxing, PhaseNew}

const (
	ParticlesNone      Particles = ""
	ParticlesStars     Particles = "stars"
	ParticlesRain      Particles = "rain"
	ParticlesFireflies Particles = "fireflies"
	ParticlesEmbers    Particles = "embers"
	ParticlesPetals    Particles = "petals"
)

var AllParticles = []Particles{ParticlesStars, ParticlesRain, ParticlesFireflies, ParticlesEmbers, ParticlesPetals}

const (
	VariantBloom  Variant = "bloom"
	VariantPhases Variant = "phases"
)

var AllVariants = []Variant{VariantBloom, VariantPhases}

// Valid reports whether v names a built-in narrative.
func (v Variant) Valid() bool {
	for _, known := range AllVariants {
		if v == known {
			return true
		}
	}
	return false
}
