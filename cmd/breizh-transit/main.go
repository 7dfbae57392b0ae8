package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	lib "github.com/neoniv-fr/breizh-transit"
	"github.com/neoniv-fr/breizh-transit/config"
	"github.com/neoniv-fr/breizh-transit/registry"
)

func main() {
	op := flag.String("op", "records", "networks|records|byid|route|trips|events|weather|stats|delays|static")
	network := flag.String("network", "bibus", "network id (bibus|star|tub)")
	kind := flag.String("kind", "vehicle_positions", "feed kind for -op=records/byid")
	id := flag.String("id", "", "record id for -op=byid")
	routeID := flag.String("route", "", "route id for -op=route/trips/delays")
	date := flag.String("date", "", "YYYY-MM-DD filter for -op=events")
	timestamp := flag.String("at", "", "forecast timestamp for -op=weather")
	configPath := flag.String("config", "", "path to config.yml (optional)")
	flag.Parse()

	lib.InitLogging()
	cfg, err := config.Load(*configPath)
	if err != nil {
		fail(err)
	}
	engine := lib.New(cfg)
	ctx := context.Background()

	var out any
	switch *op {
	case "networks":
		out = engine.ListNetworks()
	case "records":
		out = engine.GetRecords(ctx, *network, registry.FeedKind(*kind))
	case "byid":
		rec, ok, err := engine.GetByID(ctx, *network, registry.FeedKind(*kind), *id)
		if err != nil {
			fail(err)
		}
		if !ok {
			fail(fmt.Errorf("no %s record with id %q", *kind, *id))
		}
		out = rec
	case "route":
		out, err = engine.FindByRoute(ctx, *network, *routeID)
	case "trips":
		out, err = engine.TripsByRoute(ctx, *network, *routeID)
	case "events":
		if *date != "" {
			out, err = engine.EventsByDate(ctx, *network, *date)
		} else {
			out, err = engine.Events(ctx, *network)
		}
	case "weather":
		if *timestamp != "" {
			point, ok, werr := engine.WeatherAt(ctx, *network, *timestamp)
			if werr != nil {
				fail(werr)
			}
			if !ok {
				fail(fmt.Errorf("no forecast for %q", *timestamp))
			}
			out = point
		} else {
			out, err = engine.Weather(ctx, *network)
		}
	case "stats":
		out, err = engine.Statistics(ctx, *network)
	case "delays":
		out, err = engine.RouteDelays(ctx, *network, *routeID)
	case "static":
		out, err = engine.StaticBlob(ctx, *network)
	default:
		fail(fmt.Errorf("unknown op %q", *op))
	}
	if err != nil {
		fail(err)
	}

	buf, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		fail(err)
	}
	fmt.Println(string(buf))
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
