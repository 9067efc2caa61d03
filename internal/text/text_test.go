package text

import (
	"strings"
	"testing"
)

func TestComposePrefix(t *testing.T) {
	body := []rune("Hace trece años")
	segs := Compose(body, 4, nil)
	if len(segs) != 1 || segs[0].Text != "Hace" || segs[0].Substituted {
		t.Fatalf("unexpected segments %+v", segs)
	}
	if got := Plain(Compose(body, 99, nil)); got != "Hace trece años" {
		t.Fatalf("expected whole body when over-revealed, got %q", got)
	}
	if segs := Compose(body, 0, nil); len(segs) != 0 {
		t.Fatalf("expected nothing revealed, got %+v", segs)
	}
}

func TestComposeSubstitutions(t *testing.T) {
	body := []rune("Hace trece años")
	segs := Compose(body, 9, map[int]rune{6: '1', 8: '4'})
	want := []Segment{
		{Text: "Hace t"},
		{Text: "1", Substituted: true},
		{Text: "e"},
		{Text: "4", Substituted: true},
	}
	if len(segs) != len(want) {
		t.Fatalf("expected %d segments, got %+v", len(want), segs)
	}
	for i := range want {
		if segs[i] != want[i] {
			t.Fatalf("segment %d: got %+v want %+v", i, segs[i], want[i])
		}
	}
}

func TestComposeIgnoresUnrevealedSubstitution(t *testing.T) {
	body := []rune("años")
	if got := Plain(Compose(body, 2, map[int]rune{3: '0'})); got != "añ" {
		t.Fatalf("unexpected %q", got)
	}
}

func TestOverlayMarkdown(t *testing.T) {
	if !strings.Contains(ThanksMarkdown(), "Capítulo Secreto") {
		t.Fatal("thanks overlay missing its heading")
	}
	if strings.Contains(SecretMarkdown(""), "Segunda Parte") {
		t.Fatal("second part offered without a next narrative")
	}
	if !strings.Contains(SecretMarkdown("phases"), "phases") {
		t.Fatal("second part not named")
	}
}
