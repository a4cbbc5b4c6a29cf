// cmd/schedcheck/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/dtsarkov/freebusy/internal/feed"
	"github.com/dtsarkov/freebusy/internal/schedule"
)

func main() {
	var (
		sourceURL = flag.String("url", "", "Schedule source URL")
		date      = flag.String("date", "2025-02-18", "Date to inspect (YYYY-MM-DD)")
		start     = flag.String("start", "10:00", "Sample slot start (HH:MM)")
		end       = flag.String("end", "11:00", "Sample slot end (HH:MM)")
		duration  = flag.Int("duration", 90, "Duration to search for, in minutes")
		timeout   = flag.Duration("timeout", feed.DefaultTimeout, "Fetch timeout")
	)
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if *sourceURL == "" {
		fmt.Fprintln(os.Stderr, "-url is required")
		flag.PrintDefaults()
		os.Exit(1)
	}

	client := feed.NewClient(*sourceURL, *timeout)
	payload, err := client.Fetch(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to fetch schedule source")
	}
	model, err := schedule.NewModel(payload)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to ingest schedule")
	}
	fmt.Printf("Schedule loaded: %d dates\n\n", model.Len())

	busy, err := model.BusySlots(*date)
	if err != nil {
		log.Fatal().Err(err).Msg("Busy slot query failed")
	}
	fmt.Printf("1. Busy slots on %s:\n", *date)
	printSlots(busy)
	fmt.Println(strings.Repeat("-", 30))

	free, err := model.FreeSlots(*date)
	if err != nil {
		log.Fatal().Err(err).Msg("Free slot query failed")
	}
	fmt.Printf("2. Free slots on %s:\n", *date)
	printSlots(free)
	fmt.Println(strings.Repeat("-", 30))

	available, err := model.IsSlotAvailable(*date, *start, *end)
	if err != nil {
		log.Fatal().Err(err).Msg("Availability query failed")
	}
	fmt.Printf("3. Is slot %s from %s to %s available? -> %s\n", *date, *start, *end, yesNo(available))
	fmt.Println(strings.Repeat("-", 30))

	found, err := model.FindSlotsForDuration(*duration)
	if err != nil {
		log.Fatal().Err(err).Msg("Duration search failed")
	}
	fmt.Printf("4. Free slots of at least %d minutes:\n", *duration)
	if len(found) == 0 {
		fmt.Printf("   - No suitable slots found for %d minutes.\n", *duration)
	}
	for _, d := range model.Dates() {
		slots, ok := found[d]
		if !ok {
			continue
		}
		fmt.Printf("   Date: %s\n", d)
		for _, slot := range slots {
			fmt.Printf("     - Available slot from %s to %s\n", slot.Start, slot.End)
		}
	}
	fmt.Println(strings.Repeat("-", 30))

	// Demonstrate query-time validation
	if _, err := model.FreeSlots("invalid-date"); err != nil {
		fmt.Printf("Example error handling: %v\n", err)
	}
}

func printSlots(slots []schedule.Interval) {
	if len(slots) == 0 {
		fmt.Println("   - No slots.")
		return
	}
	for _, slot := range slots {
		fmt.Printf("   - from %s to %s\n", slot.Start, slot.End)
	}
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
