// Package text holds the prose the surface shows around a chapter and
// composes a chapter's revealed prefix with its active substitutions.
package text

import (
	"fmt"
	"strings"
)

// Segment is a run of revealed text drawn with one style.
type Segment struct {
	Text        string
	Substituted bool
}

// Compose returns the first revealed runes of body split into runs, with
// every transformed position replaced by its substitute and marked.
func Compose(body []rune, revealed int, transformed map[int]rune) []Segment {
	if revealed > len(body) {
		revealed = len(body)
	}
	var out []Segment
	var run strings.Builder
	flush := func() {
		if run.Len() > 0 {
			out = append(out, Segment{Text: run.String()})
			run.Reset()
		}
	}
	for i := 0; i < revealed; i++ {
		if r, ok := transformed[i]; ok {
			flush()
			out = append(out, Segment{Text: string(r), Substituted: true})
			continue
		}
		run.WriteRune(body[i])
	}
	flush()
	return out
}

// Plain joins segments back into one string.
func Plain(segs []Segment) string {
	var b strings.Builder
	for _, s := range segs {
		b.WriteString(s.Text)
	}
	return b.String()
}

const (
	Waiting       = "Espera mientras se escribe..."
	Holding       = "Mantén presionado..."
	HoldHint      = "Mantén pulsado para el secreto"
	CodePrompt    = "Hay un capítulo secreto para desbloquear.\nEn las historias se te mostraron pistas, ingresa acá el resultado."
	CodeLabel     = "Código secreto"
	CodeRejected  = "Ese no es el código."
	BeginPrompt   = "Esta historia se escucha. Presiona Enter para comenzar."
	WaitingTrack  = "Esperando la música..."
	SwipeBack     = "← Volver"
	SwipeForward  = "Deslizá →"
	ButtonBack    = "[←] Anterior"
	ButtonForward = "[→] Siguiente"
)

// ThanksMarkdown is the long-press overlay.
func ThanksMarkdown() string {
	var b strings.Builder
	b.WriteString("# 💛 Capítulo Secreto\n\n")
	b.WriteString("Gracias por llegar hasta aquí. Esta historia es solo el comienzo de muchas más que vendrán. ")
	b.WriteString("Cada momento que compartimos es un tesoro que guardo en mi corazón.\n\n")
	b.WriteString("**Te quiero mucho. 💕**\n\n")
	b.WriteString("_Enter o Esc para cerrar_\n")
	return b.String()
}

// SecretMarkdown is the overlay behind the secret code and the sustained
// touch. next names the narrative offered as a second part, if any.
func SecretMarkdown(next string) string {
	var b strings.Builder
	b.WriteString("# 💖 ¡Te amamos mucho!\n\n")
	b.WriteString("🌸 💛 ✨ 🌟\n\n")
	if next != "" {
		b.WriteString(fmt.Sprintf("🌙 **Segunda Parte**: presiona `p` para continuar con _%s_.\n\n", next))
	}
	b.WriteString("_Esc para volver_\n")
	return b.String()
}
