package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/quizdeck/triviacast/go/internal/viewer"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Terminal display station: renders the synchronized game state once a
// second. Real venues point a browser at the gateway instead; this is the
// reference consumer and a handy smoke test.
func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	addr := os.Getenv("GATEWAY_ADDR")
	if addr == "" {
		addr = "localhost:8080"
	}
	station := os.Getenv("STATION")
	if station == "" {
		station = "display-1"
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	view := viewer.NewView()
	countdown := viewer.NewCountdown(30*time.Second, nil)
	client := viewer.NewClient(viewer.DefaultClientConfig(addr, station), view, countdown)

	go func() {
		if err := client.Run(ctx); err != nil && ctx.Err() == nil {
			log.Error().Err(err).Msg("client stopped")
		}
	}()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			render(view, countdown)
		}
	}
}

func render(view *viewer.View, countdown *viewer.Countdown) {
	snap := view.Snapshot()
	if snap == nil {
		fmt.Println("waiting for snapshot...")
		return
	}

	fmt.Printf("round=%s spinning=%t", snap.Session.CurrentRound, snap.Session.IsSpinning)
	if name, ok := view.CategoryName(); ok {
		fmt.Printf(" category=%q", name)
	}
	if q := view.Question(); q != nil {
		fmt.Printf(" question=%q (%.0fs left)", q.QuestionText, countdown.Remaining().Seconds())
		if snap.Session.ShowAnswer {
			fmt.Printf(" answer=%q", q.CanonicalAnswer())
		}
	}
	fmt.Println()
	for _, t := range snap.Teams {
		marker := " "
		if snap.Session.CurrentTeamID != nil && *snap.Session.CurrentTeamID == t.ID {
			marker = ">"
		}
		fmt.Printf("  %s %-20s %4d\n", marker, t.Name, t.Score)
	}
}
