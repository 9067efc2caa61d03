package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/DaanHessen/moonlit/internal/audio"
	"github.com/DaanHessen/moonlit/internal/story"
	"github.com/DaanHessen/moonlit/internal/ui"
	"github.com/DaanHessen/moonlit/internal/util"
)

var version = "0.1.0"

func main() {
	// Load .env file if it exists (ignore error if file doesn't exist)
	_ = godotenv.Load()

	cfg, err := util.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}
	cfg.BindFlags(flag.CommandLine)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "moonlit [--variant=bloom|phases] [--audio] [--tracks DIR] [--volume N] [--seed TEXT] | chapters | version\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	args := flag.Args()
	if len(args) > 0 {
		switch args[0] {
		case "version":
			fmt.Println("moonlit", version)
			return
		case "chapters":
			if err := listChapters(os.Stdout, story.Variant(cfg.Variant)); err != nil {
				log.Fatal(err)
			}
			return
		default:
			flag.Usage()
			os.Exit(2)
		}
	}

	closeLog, err := setupLogging(cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to open log file: %v", err)
	}
	defer closeLog()

	var out *audio.Output
	if cfg.Audio {
		out = audio.NewOutput()
		if err := out.Initialize(); err != nil {
			log.Printf("audio unavailable, playing silently: %v", err)
		} else {
			defer out.Cleanup()
		}
	}

	if err := ui.Run(context.Background(), cfg, out, version); err != nil {
		log.Fatal(err)
	}
}

// setupLogging sends log output to path, or discards it: the terminal
// belongs to the program while it runs.
func setupLogging(path string) (func(), error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	f, err := tea.LogToFile(path, "moonlit")
	if err != nil {
		return nil, err
	}
	// One id per run so interleaved runs in the same file can be told apart.
	log.SetPrefix(fmt.Sprintf("moonlit %s ", uuid.NewString()[:8]))
	log.Printf("moonlit %s starting", version)
	return func() { _ = f.Close() }, nil
}

func listChapters(w io.Writer, v story.Variant) error {
	catalog, err := story.ForVariant(v)
	if err != nil {
		return err
	}
	for _, ch := range catalog.All() {
		title := ch.Title
		if title == "" {
			title = "(sin título)"
		}
		line := fmt.Sprintf("%d. %s · %d caracteres", ch.Index+1, title, ch.Length())
		if ch.HasTrack() {
			line += fmt.Sprintf(" · pista %s @%ds", ch.Track.ID, ch.Track.Start)
		}
		if ch.Finale {
			line += " · final"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
