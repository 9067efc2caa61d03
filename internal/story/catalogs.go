package story

import "fmt"

// Bloom is the primary narrative: seven chapters whose substitutions spell
// the secret date, ending on the finale that accepts the code.
func Bloom() *Catalog {
	return mustCatalog(VariantBloom, []Chapter{
		{
			Title:         "El inicio",
			Text:          "Hace trece años nos conocimos. No fue casualidad, fue el inicio de algo que marcaría nuestras vidas.",
			Image:         "story/1.png",
			Theme:         "dusk",
			Substitutions: map[int]rune{6: '1', 8: '4'},
		},
		{
			Text:          "No tardamos en reír juntos, en tener esas charlas infinitas que parecían detener el tiempo.",
			Image:         "story/2.png",
			Theme:         "dusk",
			Substitutions: map[int]rune{20: '0'},
		},
		{
			Text:          "Vivimos tantas cosas, momentos buenos y malos, pero siempre supimos encontrarnos en medio del caos.",
			Image:         "story/3.png",
			Theme:         "dusk",
			Substitutions: map[int]rune{15: '8'},
		},
		{
			Text:          "Hubo abrazos que nos curaron, miradas que lo dijeron todo sin palabras.",
			Image:         "story/4.png",
			Theme:         "dusk",
			Substitutions: map[int]rune{5: '2'},
		},
		{
			Title:         "El tiempo cambia",
			Text:          "Hoy las cosas no son como antes. Estamos lejos, aunque en el corazón nunca dejamos de estar cerca.",
			Image:         "story/5.png",
			Theme:         "dusk",
			Substitutions: map[int]rune{25: '0'},
		},
		{
			Text:          "Hoy no puedo darte flores reales, pero puedo regalarte este mundo de flores amarillas, hecho solo para vos.",
			Image:         "story/6.png",
			Theme:         "bloom",
			Particles:     ParticlesPetals,
			Substitutions: map[int]rune{50: '1'},
			Immersive:     true,
		},
		{
			Text:          "Y acá estamos. Vos y yo. Porque pase lo que pase, siempre serás parte de mi historia. Feliz Día del Estudiante! Y Feliz Día de la Primavera!",
			Image:         "story/7.png",
			Theme:         "bloom",
			Particles:     ParticlesPetals,
			Substitutions: map[int]rune{75: '2'},
			Finale:        true,
			Immersive:     true,
		},
	})
}

// Phases is the audio-synced narrative; every chapter waits for its track.
func Phases() *Catalog {
	return mustCatalog(VariantPhases, []Chapter{
		{
			Title:     "Lo que era",
			Text:      "Hubo un tiempo donde todo brillaba. Donde la luna estaba llena y nosotros también. Donde no había sombras entre los dos...",
			Image:     "fases/1.png",
			Phase:     PhaseFull,
			Theme:     "slate",
			Particles: ParticlesStars,
			Track:     Track{ID: "zABLecsR5UE", Start: 24},
		},
		{
			Title:     "La distancia",
			Text:      "Pero la luz empezó a menguar. Las palabras que no dijimos, las que dijimos de más. La luna empezó a esconderse... y nosotros también.",
			Image:     "fases/2_new.png",
			Phase:     PhaseWaning,
			Theme:     "ash",
			Particles: ParticlesRain,
			Track:     Track{ID: "JQyOOas-LGU", Start: 6},
		},
		{
			Title:     "El puente",
			Text:      "En la mitad exacta de la noche, alguien decidió construir un puente. Hacia vos. Hacia mí. Hacia lo que podíamos ser.",
			Image:     "fases/3_new.png",
			Phase:     PhaseQuarter,
			Theme:     "violet",
			Particles: ParticlesFireflies,
			Track:     Track{ID: "UrHDUKMI5DI", Start: 49},
		},
		{
			Title:     "Juntos de nuevo",
			Text:      "Y empezamos a caminar juntos de nuevo. No perfectos. No sin miedo. Pero juntos. Y eso era suficiente.",
			Image:     "fases/4.png",
			Phase:     PhaseWaxing,
			Theme:     "slate",
			Particles: ParticlesStars,
			Track:     Track{ID: "7hgwPdW9vbA"},
		},
		{
			Title:     "El nuevo comienzo",
			Text:      "Así como la luna llena simboliza el fin de algo, la luna nueva simboliza el comienzo de algo.",
			Image:     "fases/5.png",
			Phase:     PhaseNew,
			Theme:     "dawn",
			Particles: ParticlesEmbers,
			Track:     Track{ID: "VxKYsiapvFg", Start: 58},
		},
	})
}

// ForVariant returns the built-in catalog for v.
func ForVariant(v Variant) (*Catalog, error) {
	switch v {
	case VariantBloom:
		return Bloom(), nil
	case VariantPhases:
		return Phases(), nil
	}
	return nil, fmt.Errorf("unknown variant %q", v)
}

func mustCatalog(v Variant, chapters []Chapter) *Catalog {
	c, err := NewCatalog(v, chapters)
	if err != nil {
		panic(fmt.Sprintf("built-in catalog %s: %v", v, err))
	}
	return c
}
