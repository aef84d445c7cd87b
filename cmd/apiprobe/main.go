// Command apiprobe manually exercises the incident backend's API shape:
// register and sign in, mutate incidents, and inspect the normalized
// responses. Configuration comes from the environment (optionally a .env
// file); request payloads can be supplied as YAML files.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
	"gopkg.in/yaml.v3"

	rmg "github.com/reportmygrievance/rmg-go"
	"github.com/reportmygrievance/rmg-go/pkg/api"
	"github.com/reportmygrievance/rmg-go/pkg/logger"
)

const usage = `Usage: apiprobe <command> [flags]

Session:
  init                         resolve the persisted session
  register  -f user.yaml       create an account and sign in
  login     -email -password   sign in
  logout                       sign out (clears local session regardless)
  profile                      show the authenticated profile
  update-profile -f file.yaml  edit the profile
  reset     -email             request a password reset

Incidents:
  incidents                    list incidents
  create    -type -details [-priority | -f incident.yaml]
  get       -id
  update    -id [-details -priority -status | -f incident.yaml]
  close     -id
  delete    -id
  search    -incident-id
  stats

Utilities:
  health                       check backend connectivity
  pincode   -code              look up city/state for a pincode

Environment: RMG_API_BASE_URL, RMG_API_TIMEOUT, RMG_SESSION_FILE,
RMG_REDIS_URL, RMG_CONFIG_FILE (YAML config file), SENTRY_DSN, RMG_DEBUG.
A .env file is loaded if present.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	// Missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	ctx := context.Background()

	cfg, err := rmg.LoadConfig(ctx)
	if err != nil {
		fatalf("failed to load configuration: %v", err)
	}

	var sentryCfg logger.SentryConfig
	if err := envconfig.Process(ctx, &sentryCfg); err != nil {
		fatalf("failed to load sentry configuration: %v", err)
	}

	level := slog.LevelInfo
	if os.Getenv("RMG_DEBUG") != "" {
		level = slog.LevelDebug
	}
	log := logger.New(
		logger.WithWriter(os.Stderr),
		logger.WithLevel(level),
		logger.WithSentry(sentryCfg),
		logger.WithExtractors(api.RequestIDExtractor()),
	)

	client, err := rmg.New(cfg, rmg.WithLogger(log))
	if err != nil {
		fatalf("failed to construct client: %v", err)
	}
	defer client.Close()

	cmd, args := os.Args[1], os.Args[2:]
	run(ctx, client, cmd, args)
}

func run(ctx context.Context, client *rmg.Client, cmd string, args []string) {
	switch cmd {
	case "init":
		state := client.Session.Init(ctx)
		printJSON(map[string]any{
			"authenticated": state.Authenticated,
			"user":          state.User,
		})

	case "register":
		fs := flag.NewFlagSet("register", flag.ExitOnError)
		file := fs.String("f", "", "YAML file with the registration payload")
		parseFlags(fs, args)
		var reg rmg.Registration
		loadYAML(*file, &reg)
		printResult(client.Session.Register(ctx, reg))

	case "login":
		fs := flag.NewFlagSet("login", flag.ExitOnError)
		email := fs.String("email", "", "account email")
		password := fs.String("password", "", "account password")
		parseFlags(fs, args)
		printResult(client.Session.Login(ctx, rmg.Credentials{
			Email:    *email,
			Password: *password,
		}))

	case "logout":
		client.Session.Logout(ctx)
		fmt.Println("signed out")

	case "profile":
		client.Session.Init(ctx)
		printProfile(client.Session.User())

	case "update-profile":
		fs := flag.NewFlagSet("update-profile", flag.ExitOnError)
		file := fs.String("f", "", "YAML file with the profile fields")
		parseFlags(fs, args)
		client.Session.Init(ctx)
		var upd rmg.ProfileUpdate
		loadYAML(*file, &upd)
		printResult(client.Session.UpdateProfile(ctx, upd))

	case "reset":
		fs := flag.NewFlagSet("reset", flag.ExitOnError)
		email := fs.String("email", "", "account email")
		parseFlags(fs, args)
		printResult(client.Session.RequestPasswordReset(ctx, rmg.PasswordResetRequest{
			Email: *email,
		}))

	case "incidents":
		client.Session.Init(ctx)
		printResult(client.Incidents.List(ctx))

	case "create":
		fs := flag.NewFlagSet("create", flag.ExitOnError)
		file := fs.String("f", "", "YAML file with the incident payload")
		typ := fs.String("type", string(rmg.ReporterEnterprise), "reporter type (ENTERPRISE or GOVERNMENT)")
		details := fs.String("details", "", "incident description")
		priority := fs.String("priority", "", "priority (LOW, MEDIUM, HIGH)")
		parseFlags(fs, args)
		client.Session.Init(ctx)
		inc := rmg.IncidentCreate{
			ReporterType:    api.ReporterType(*typ),
			IncidentDetails: *details,
			Priority:        api.Priority(*priority),
		}
		if *file != "" {
			loadYAML(*file, &inc)
		}
		printResult(client.Incidents.Create(ctx, inc))

	case "get":
		client.Session.Init(ctx)
		printResult(client.Incidents.Get(ctx, idFlag(args)))

	case "update":
		fs := flag.NewFlagSet("update", flag.ExitOnError)
		id := fs.Int64("id", 0, "incident database ID")
		file := fs.String("f", "", "YAML file with the update payload")
		details := fs.String("details", "", "incident description")
		priority := fs.String("priority", "", "priority (LOW, MEDIUM, HIGH)")
		status := fs.String("status", "", "status (OPEN, IN_PROGRESS, CLOSED)")
		parseFlags(fs, args)
		client.Session.Init(ctx)
		upd := rmg.IncidentUpdate{
			IncidentDetails: *details,
			Priority:        api.Priority(*priority),
			Status:          api.Status(*status),
		}
		if *file != "" {
			loadYAML(*file, &upd)
		}
		printResult(client.Incidents.Update(ctx, requireID(*id), upd))

	case "close":
		client.Session.Init(ctx)
		printResult(client.Incidents.Close(ctx, idFlag(args)))

	case "delete":
		client.Session.Init(ctx)
		printResult(client.Incidents.Delete(ctx, idFlag(args)))

	case "search":
		fs := flag.NewFlagSet("search", flag.ExitOnError)
		incidentID := fs.String("incident-id", "", "public incident ID (e.g. RMG123452026)")
		parseFlags(fs, args)
		client.Session.Init(ctx)
		printResult(client.Incidents.Search(ctx, *incidentID))

	case "stats":
		client.Session.Init(ctx)
		printResult(client.Incidents.Stats(ctx))

	case "health":
		// Any HTTP response, including an error status, proves the
		// backend is up; only a transport failure means unreachable.
		err := client.API().Get(ctx, "users/", nil)
		if errors.Is(err, api.ErrRequestFailed) {
			fatalf("backend unreachable: %v", err)
		}
		fmt.Println("backend is running and responding")

	case "pincode":
		fs := flag.NewFlagSet("pincode", flag.ExitOnError)
		code := fs.String("code", "", "postal code")
		parseFlags(fs, args)
		printResult(client.Utils.LookupPincode(ctx, *code))

	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}

func printResult[T any](res rmg.Result[T]) {
	if !res.OK() {
		fmt.Fprintln(os.Stderr, "error:", res.Err.Summary())
		printJSONTo(os.Stderr, res.Err)
		exit(1)
		return
	}
	printJSON(res.Data)
}

func printProfile(u *rmg.UserProfile) {
	if u == nil {
		fatalf("no active session; run login first")
		return
	}
	printJSON(u)
}

func printJSON(v any) {
	printJSONTo(os.Stdout, v)
}

func printJSONTo(w *os.File, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fatalf("failed to render output: %v", err)
	}
	fmt.Fprintln(w, string(data))
}

// loadYAML reads a payload file keyed by the backend's wire field names.
// YAML is decoded into a generic map and re-marshaled as JSON so the
// payload structs' json tags apply.
func loadYAML(path string, out any) {
	if path == "" {
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		fatalf("failed to read %s: %v", path, err)
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		fatalf("failed to parse %s: %v", path, err)
	}
	jsonData, err := json.Marshal(raw)
	if err != nil {
		fatalf("failed to convert %s: %v", path, err)
	}
	if err := json.Unmarshal(jsonData, out); err != nil {
		fatalf("failed to map %s onto the payload: %v", path, err)
	}
}

func parseFlags(fs *flag.FlagSet, args []string) {
	_ = fs.Parse(args) // ExitOnError
}

func idFlag(args []string) int64 {
	fs := flag.NewFlagSet("id", flag.ExitOnError)
	id := fs.Int64("id", 0, "incident database ID")
	parseFlags(fs, args)
	return requireID(*id)
}

func requireID(id int64) int64 {
	if id == 0 {
		fatalf("missing required -id flag")
	}
	return id
}

// exit is swapped out in tests.
var exit = os.Exit

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	exit(1)
}
