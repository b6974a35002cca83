package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	flag "github.com/spf13/pflag"
	_ "modernc.org/sqlite"

	"planner/internal/adapters/api"
	"planner/internal/adapters/storage"
	"planner/internal/adapters/storage/draftstore"
	"planner/internal/adapters/storage/localstate"
	"planner/internal/adapters/storage/tripindex"
	"planner/internal/application/orchestrators"
	"planner/internal/application/projections"
	"planner/internal/config"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

// app wires the stores, the gateway, and the per-process session state
// together; one app is one browser-context equivalent.
type app struct {
	gateway *api.Client
	draft   *draftstore.Store
	index   *tripindex.Cache
	session *orchestrators.SearchSession
	gate    *orchestrators.CreateTripGate
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	setupLogging(cfg.LogLevel)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	db, err := storage.Open(cfg.StateDBPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	defer db.Close()

	gateway, err := api.NewClient(cfg.APIBaseURL, time.Duration(cfg.HTTPTimeoutSecs)*time.Second, cfg.SearchPerMinute)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	ctx := context.Background()
	state := localstate.NewSQLiteStore(storage.NewTimedDB(db))
	a := &app{
		gateway: gateway,
		draft:   draftstore.New(ctx, state),
		index:   tripindex.New(ctx, state),
		session: &orchestrators.SearchSession{},
		gate:    &orchestrators.CreateTripGate{},
	}

	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}

func usage() {
	fmt.Fprintf(os.Stderr, `plannerctl %s — trip planner client

Usage:
  plannerctl search <city> [--collect n,m,...]
  plannerctl draft [list|remove <placeRef>|clear]
  plannerctl trip create [--title t] [--days n] [--start YYYY-MM-DD]
  plannerctl trips
  plannerctl trip show <tripId>
  plannerctl trip places <tripId>
  plannerctl trip add-place <tripId> <placeRef>
  plannerctl trip remove-place <tripId> <destinationId>
  plannerctl signup --name n --email e --password p
  plannerctl login --email e --password p
  plannerctl logout
  plannerctl whoami
`, version)
}

func (a *app) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "search":
		return a.cmdSearch(ctx, args)
	case "draft":
		return a.cmdDraft(ctx, args)
	case "trips":
		return a.cmdTrips()
	case "trip":
		return a.cmdTrip(ctx, args)
	case "signup":
		return a.cmdSignup(ctx, args)
	case "login":
		return a.cmdLogin(ctx, args)
	case "logout":
		return orchestrators.ExecuteLogout(ctx, a.authDeps())
	case "whoami":
		return a.cmdWhoAmI(ctx)
	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *app) authDeps() orchestrators.AuthDeps {
	return orchestrators.AuthDeps{Gateway: a.gateway}
}

func (a *app) cmdSearch(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	collect := fs.IntSlice("collect", nil, "1-based result numbers to add to the draft")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("search: destination required")
	}

	res, err := orchestrators.ExecuteSearchAttractions(ctx,
		orchestrators.SearchAttractionsCommand{Query: fs.Arg(0)},
		orchestrators.SearchAttractionsDeps{Gateway: a.gateway, Session: a.session})
	if err != nil {
		return err
	}
	if res.Outcome.Empty {
		fmt.Println("no results:", res.Outcome.Reason)
		return nil
	}

	for i, item := range res.Outcome.Results {
		marker := " "
		if a.draft.Contains(item.PlaceRef) {
			marker = "*"
		}
		fmt.Printf("%2d %s %s — %s (%s)\n", i+1, marker, item.Name, item.City, item.PlaceRef)
	}

	for _, n := range *collect {
		if n < 1 || n > len(res.Outcome.Results) {
			return fmt.Errorf("search: no result #%d", n)
		}
		added, err := orchestrators.ExecuteCollectPlace(ctx,
			orchestrators.CollectPlaceCommand{Attraction: res.Outcome.Results[n-1]},
			orchestrators.CollectPlaceDeps{Draft: a.draft})
		if err != nil {
			return err
		}
		if added {
			fmt.Printf("collected #%d %s\n", n, res.Outcome.Results[n-1].Name)
		} else {
			fmt.Printf("already in draft: #%d %s\n", n, res.Outcome.Results[n-1].Name)
		}
	}
	return nil
}

func (a *app) cmdDraft(ctx context.Context, args []string) error {
	sub := "list"
	if len(args) > 0 {
		sub = args[0]
	}
	switch sub {
	case "list":
		places := a.draft.Snapshot()
		if len(places) == 0 {
			fmt.Println("draft is empty")
			return nil
		}
		for i, p := range places {
			fmt.Printf("%2d  %s — %s (%s)\n", i+1, p.Name, p.Locality, p.PlaceRef)
		}
		return nil
	case "remove":
		if len(args) < 2 {
			return fmt.Errorf("draft remove: place reference required")
		}
		if orchestrators.ExecuteDiscardPlace(ctx,
			orchestrators.DiscardPlaceCommand{PlaceRef: args[1]},
			orchestrators.CollectPlaceDeps{Draft: a.draft}) {
			fmt.Println("removed", args[1])
		} else {
			fmt.Println("not in draft:", args[1])
		}
		return nil
	case "clear":
		a.draft.Clear(ctx)
		fmt.Println("draft cleared")
		return nil
	default:
		return fmt.Errorf("draft: unknown subcommand %q", sub)
	}
}

func (a *app) cmdTrips() error {
	res := projections.QueryListTrips(projections.ListTripsDeps{Index: a.index})
	if len(res.Trips) == 0 {
		fmt.Println("no trips yet — collect places and run: plannerctl trip create")
		return nil
	}
	for _, t := range res.Trips {
		line := fmt.Sprintf("#%d  %s — %d days", t.TripID, t.Title, t.Days)
		if t.StartDate != "" {
			line += " from " + t.StartDate
		}
		fmt.Println(line)
	}
	return nil
}

func (a *app) cmdTrip(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("trip: subcommand required")
	}
	switch args[0] {
	case "create":
		return a.cmdTripCreate(ctx, args[1:])
	case "show":
		return a.cmdTripShow(ctx, args[1:])
	case "places":
		return a.cmdTripPlaces(ctx, args[1:])
	case "add-place":
		return a.cmdTripAddPlace(ctx, args[1:])
	case "remove-place":
		return a.cmdTripRemovePlace(ctx, args[1:])
	default:
		return fmt.Errorf("trip: unknown subcommand %q", args[0])
	}
}

func (a *app) cmdTripCreate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("trip create", flag.ContinueOnError)
	title := fs.String("title", "", "trip title")
	days := fs.Int("days", 5, "trip length in days (1-60)")
	start := fs.String("start", "", "start date YYYY-MM-DD")
	if err := fs.Parse(args); err != nil {
		return err
	}

	entry, err := orchestrators.ExecuteCreateTrip(ctx,
		orchestrators.CreateTripCommand{Title: *title, Days: *days, StartDate: *start},
		orchestrators.CreateTripDeps{Gateway: a.gateway, Draft: a.draft, Index: a.index, Gate: a.gate})
	if err != nil {
		return err
	}
	fmt.Printf("created trip #%d %q (%d days)\n", entry.TripID, entry.Title, entry.Days)
	return nil
}

func (a *app) cmdTripShow(ctx context.Context, args []string) error {
	id, err := parseTripID(args)
	if err != nil {
		return err
	}
	res, err := projections.QueryGetTrip(ctx, projections.GetTripQuery{TripID: id},
		projections.GetTripDeps{Gateway: a.gateway, Index: a.index})
	if err != nil {
		return err
	}
	fmt.Printf("#%d  %s — %d days", res.Trip.TripID, res.Trip.Title, res.Trip.Days)
	if res.Trip.StartDate != "" {
		fmt.Printf(" from %s", res.Trip.StartDate)
	}
	fmt.Println()
	if !res.Known {
		fmt.Println("(not created from this client)")
	}
	return nil
}

func (a *app) cmdTripPlaces(ctx context.Context, args []string) error {
	id, err := parseTripID(args)
	if err != nil {
		return err
	}
	res, err := projections.QueryListTripPlaces(ctx, projections.ListTripPlacesQuery{TripID: id},
		projections.GetTripDeps{Gateway: a.gateway})
	if err != nil {
		return err
	}
	if len(res.Places) == 0 {
		fmt.Println("no places on this trip yet")
		return nil
	}
	for _, p := range res.Places {
		fmt.Printf("%4d  %s — %s (%s)\n", p.DestinationID, p.Name, p.Locality, p.PlaceRef)
	}
	return nil
}

func (a *app) cmdTripAddPlace(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("trip add-place: trip id and place reference required")
	}
	id, err := parseTripID(args)
	if err != nil {
		return err
	}
	place, err := orchestrators.ExecuteAddTripPlace(ctx,
		orchestrators.AddTripPlaceCommand{TripID: id, PlaceRef: args[1]},
		orchestrators.TripPlacesDeps{Gateway: a.gateway})
	if err != nil {
		return err
	}
	fmt.Printf("added %s (destination %d)\n", place.PlaceRef, place.DestinationID)
	return nil
}

func (a *app) cmdTripRemovePlace(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("trip remove-place: trip id and destination id required")
	}
	id, err := parseTripID(args)
	if err != nil {
		return err
	}
	destID, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("trip remove-place: bad destination id %q", args[1])
	}
	if err := orchestrators.ExecuteRemoveTripPlace(ctx,
		orchestrators.RemoveTripPlaceCommand{TripID: id, DestinationID: destID},
		orchestrators.TripPlacesDeps{Gateway: a.gateway}); err != nil {
		return err
	}
	fmt.Println("removed destination", destID)
	return nil
}

func (a *app) cmdSignup(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("signup", flag.ContinueOnError)
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	user, err := orchestrators.ExecuteSignup(ctx,
		orchestrators.SignupCommand{Name: *name, Email: *email, Password: *password}, a.authDeps())
	if err != nil {
		return err
	}
	fmt.Printf("welcome, %s <%s>\n", user.Name, user.Email)
	return nil
}

func (a *app) cmdLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	user, err := orchestrators.ExecuteLogin(ctx,
		orchestrators.LoginCommand{Email: *email, Password: *password}, a.authDeps())
	if err != nil {
		return err
	}
	fmt.Printf("logged in as %s <%s>\n", user.Name, user.Email)
	return nil
}

func (a *app) cmdWhoAmI(ctx context.Context) error {
	res, err := orchestrators.QueryWhoAmI(ctx, a.authDeps())
	if err != nil {
		return err
	}
	if !res.LoggedIn {
		fmt.Println("not logged in")
		return nil
	}
	fmt.Printf("%s <%s>\n", res.User.Name, res.User.Email)
	return nil
}

func parseTripID(args []string) (int64, error) {
	if len(args) < 1 {
		return 0, fmt.Errorf("trip id required")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("bad trip id %q", args[0])
	}
	return id, nil
}
