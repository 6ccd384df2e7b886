package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"mime"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/Josesitobb/adcu-client/analysis"
	"github.com/Josesitobb/adcu-client/api"
	"github.com/Josesitobb/adcu-client/config"
	"github.com/Josesitobb/adcu-client/docflow"
	"github.com/Josesitobb/adcu-client/handler"
	"github.com/Josesitobb/adcu-client/model"
	"github.com/Josesitobb/adcu-client/pkg/logger"
	"github.com/Josesitobb/adcu-client/service"
	"github.com/Josesitobb/adcu-client/session"
	"github.com/gin-gonic/gin"
)

const usage = `Usage: adcu [-config file] <command> [arguments]

Commands:
  login        -email -password        authenticate and store the session
  logout                               end the session locally and remotely
  whoami                               show the stored profile and expiry
  register     -name -email -password  create a platform account (admin)
  contractors  list|get|create|update  manage contractor accounts
  contracts    list|get|create|update  manage contracts
  docs         status|upload|replace   manage the eleven document slots
  analysis     run|list|get            run and inspect document analyses
  verify                               list per-contractor verification results
  stub                                 run the local stub server
`

func main() {
	configPath := flag.String("config", "config.yaml", "configuration file")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	sess := session.NewStore(cfg.Session.Path)
	client := api.NewClient(&cfg.API, sess)
	ctx := context.Background()

	var code int
	switch args[0] {
	case "login":
		code = cmdLogin(ctx, client, args[1:])
	case "logout":
		code = cmdLogout(ctx, client)
	case "whoami":
		code = cmdWhoami(ctx, client, sess)
	case "register":
		code = cmdRegister(ctx, client, args[1:])
	case "contractors":
		code = cmdContractors(ctx, client, args[1:])
	case "contracts":
		code = cmdContracts(ctx, client, args[1:])
	case "docs":
		code = cmdDocs(ctx, client, args[1:])
	case "analysis":
		code = cmdAnalysis(ctx, client, args[1:])
	case "verify":
		code = cmdVerify(ctx, client)
	case "stub":
		code = runStub(cfg)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", args[0])
		flag.Usage()
		code = 2
	}
	os.Exit(code)
}

// printJSON renders a payload the way the mobile screens would consume it.
func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to render output: %v\n", err)
		return
	}
	fmt.Println(string(out))
}

// report prints the outcome of an API call and returns the exit code.
func report[T any](res api.Result[T]) int {
	if !res.Success {
		fmt.Fprintln(os.Stderr, res.Message)
		return 1
	}
	printJSON(res.Data)
	return 0
}

func cmdLogin(ctx context.Context, client *api.Client, args []string) int {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	fs.Parse(args)

	if *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "login requires -email and -password")
		return 2
	}

	res := client.SignIn(ctx, *email, *password)
	if !res.Success {
		fmt.Fprintln(os.Stderr, res.Message)
		return 1
	}
	fmt.Printf("signed in as %s (%s)\n", res.Data.User.Name, res.Data.User.Role)
	return 0
}

func cmdLogout(ctx context.Context, client *api.Client) int {
	res := client.Logout(ctx)
	if !res.Success {
		// The local session is cleared regardless; the server call failing
		// is worth mentioning but not fatal.
		fmt.Fprintf(os.Stderr, "server logout failed: %s\n", res.Message)
	}
	fmt.Println("signed out")
	return 0
}

func cmdWhoami(ctx context.Context, client *api.Client, sess *session.Store) int {
	res := client.Verify(ctx)
	if !res.Success {
		fmt.Fprintln(os.Stderr, res.Message)
		return 1
	}
	printJSON(res.Data)
	if exp, err := sess.ExpiresAt(); err == nil {
		fmt.Printf("session expires %s\n", exp.Format(time.RFC3339))
	}
	return 0
}

func cmdRegister(ctx context.Context, client *api.Client, args []string) int {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	name := fs.String("name", "", "full name")
	idCard := fs.String("id-card", "", "identity card number")
	email := fs.String("email", "", "account email")
	phone := fs.String("phone", "", "phone number")
	post := fs.String("post", "", "job post")
	role := fs.String("role", "", "account role")
	password := fs.String("password", "", "account password")
	fs.Parse(args)

	if *name == "" || *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "register requires -name, -email and -password")
		return 2
	}

	return report(client.Register(ctx, api.RegisterRequest{
		Name:     *name,
		IDCard:   *idCard,
		Email:    *email,
		Phone:    *phone,
		Post:     *post,
		Role:     *role,
		Password: *password,
	}))
}

func cmdContractors(ctx context.Context, client *api.Client, args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "contractors requires a subcommand: list, get, create or update")
		return 2
	}

	switch args[0] {
	case "list":
		fs := flag.NewFlagSet("contractors list", flag.ExitOnError)
		state := fs.String("state", "", "filter by active state (true/false)")
		fs.Parse(args[1:])

		var filter *bool
		if *state != "" {
			v := *state == "true"
			filter = &v
		}
		return report(client.ListContractors(ctx, filter))

	case "get":
		fs := flag.NewFlagSet("contractors get", flag.ExitOnError)
		id := fs.String("id", "", "contractor id")
		fs.Parse(args[1:])
		if *id == "" {
			fmt.Fprintln(os.Stderr, "contractors get requires -id")
			return 2
		}
		return report(client.GetUser(ctx, *id))

	case "create", "update":
		fs := flag.NewFlagSet("contractors "+args[0], flag.ExitOnError)
		id := fs.String("id", "", "contractor id (update only)")
		name := fs.String("name", "", "full name")
		idCard := fs.String("id-card", "", "identity card number")
		email := fs.String("email", "", "account email")
		phone := fs.String("phone", "", "phone number")
		post := fs.String("post", "", "job post")
		password := fs.String("password", "", "account password")
		contractID := fs.String("contract", "", "contract id to bind")
		state := fs.String("state", "", "active state (true/false)")
		fs.Parse(args[1:])

		req := api.ContractorRequest{
			Name:       *name,
			IDCard:     *idCard,
			Email:      *email,
			Phone:      *phone,
			Post:       *post,
			Password:   *password,
			ContractID: *contractID,
		}
		if *state != "" {
			v := *state == "true"
			req.State = &v
		}

		if args[0] == "create" {
			return report(client.CreateContractor(ctx, req))
		}
		if *id == "" {
			fmt.Fprintln(os.Stderr, "contractors update requires -id")
			return 2
		}
		return report(client.UpdateContractor(ctx, *id, req))
	}

	fmt.Fprintf(os.Stderr, "unknown contractors subcommand %q\n", args[0])
	return 2
}

func cmdContracts(ctx context.Context, client *api.Client, args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "contracts requires a subcommand: list, get, create or update")
		return 2
	}

	switch args[0] {
	case "list":
		fs := flag.NewFlagSet("contracts list", flag.ExitOnError)
		withContractor := fs.String("with-contractor", "", "filter by contractor binding (true/false)")
		fs.Parse(args[1:])

		var filter *bool
		if *withContractor != "" {
			v := *withContractor == "true"
			filter = &v
		}
		return report(client.ListContracts(ctx, filter))

	case "get":
		fs := flag.NewFlagSet("contracts get", flag.ExitOnError)
		id := fs.String("id", "", "contract id")
		fs.Parse(args[1:])
		if *id == "" {
			fmt.Fprintln(os.Stderr, "contracts get requires -id")
			return 2
		}
		return report(client.GetContract(ctx, *id))

	case "create", "update":
		fs := flag.NewFlagSet("contracts "+args[0], flag.ExitOnError)
		id := fs.String("id", "", "contract id (update only)")
		number := fs.String("number", "", "contract number")
		ctype := fs.String("type", "", "contract type")
		objective := fs.String("objective", "", "contract objective")
		periodValue := fs.Float64("period-value", 0, "value per period")
		totalValue := fs.Float64("total-value", 0, "total contract value")
		fs.Parse(args[1:])

		contract := model.Contract{
			Number:      *number,
			Type:        *ctype,
			Objective:   *objective,
			PeriodValue: *periodValue,
			TotalValue:  *totalValue,
			State:       true,
		}

		if args[0] == "create" {
			return report(client.CreateContract(ctx, contract))
		}
		if *id == "" {
			fmt.Fprintln(os.Stderr, "contracts update requires -id")
			return 2
		}
		return report(client.UpdateContract(ctx, *id, contract))
	}

	fmt.Fprintf(os.Stderr, "unknown contracts subcommand %q\n", args[0])
	return 2
}

// slotFiles collects repeated -file slot=path flags.
type slotFiles map[string]string

func (s slotFiles) String() string { return fmt.Sprint(map[string]string(s)) }

func (s slotFiles) Set(value string) error {
	slot, path, ok := strings.Cut(value, "=")
	if !ok {
		return fmt.Errorf("expected slot=path, got %q", value)
	}
	if !model.IsSlot(slot) {
		return fmt.Errorf("unknown document slot %q", slot)
	}
	s[slot] = path
	return nil
}

func loadDocument(path string) (docflow.File, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return docflow.File{}, err
	}
	mimeType := mime.TypeByExtension(filepath.Ext(path))
	return docflow.File{
		Name:    filepath.Base(path),
		MIME:    mimeType,
		Size:    int64(len(content)),
		Content: content,
	}, nil
}

func cmdDocs(ctx context.Context, client *api.Client, args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "docs requires a subcommand: status, upload or replace")
		return 2
	}

	switch args[0] {
	case "status":
		fs := flag.NewFlagSet("docs status", flag.ExitOnError)
		contractorID := fs.String("contractor", "", "contractor id")
		fs.Parse(args[1:])
		if *contractorID == "" {
			fmt.Fprintln(os.Stderr, "docs status requires -contractor")
			return 2
		}

		res := client.GetDocuments(ctx, *contractorID)
		if !res.Success {
			fmt.Fprintln(os.Stderr, res.Message)
			return 1
		}

		tracker := docflow.NewTracker(*contractorID, &res.Data, client.DocumentUploader())
		summary := tracker.Summary()
		keys := make([]string, 0, len(summary))
		for k := range summary {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("%-32s %s\n", model.SlotLabels[k], summary[k])
		}
		return 0

	case "upload":
		fs := flag.NewFlagSet("docs upload", flag.ExitOnError)
		contractorID := fs.String("contractor", "", "contractor id")
		description := fs.String("description", "", "shared batch description")
		files := slotFiles{}
		fs.Var(files, "file", "document as slot=path (repeatable)")
		fs.Parse(args[1:])
		if *contractorID == "" {
			fmt.Fprintln(os.Stderr, "docs upload requires -contractor")
			return 2
		}

		res := client.GetDocuments(ctx, *contractorID)
		if !res.Success {
			fmt.Fprintln(os.Stderr, res.Message)
			return 1
		}

		tracker := docflow.NewTracker(*contractorID, &res.Data, client.DocumentUploader())
		for slot, path := range files {
			f, err := loadDocument(path)
			if err != nil {
				fmt.Fprintf(os.Stderr, "failed to read %s: %v\n", path, err)
				return 1
			}
			if err := tracker.Select(slot, f); err != nil {
				fmt.Fprintf(os.Stderr, "%s: %v\n", slot, err)
				return 1
			}
		}

		if err := tracker.Submit(ctx, *description, localIP()); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Printf("uploaded %d document(s)\n", len(files))
		return 0

	case "replace":
		fs := flag.NewFlagSet("docs replace", flag.ExitOnError)
		contractorID := fs.String("contractor", "", "contractor id")
		slot := fs.String("slot", "", "document slot to replace")
		path := fs.String("path", "", "replacement file")
		fs.Parse(args[1:])
		if *contractorID == "" || *slot == "" || *path == "" {
			fmt.Fprintln(os.Stderr, "docs replace requires -contractor, -slot and -path")
			return 2
		}

		res := client.GetDocuments(ctx, *contractorID)
		if !res.Success {
			fmt.Fprintln(os.Stderr, res.Message)
			return 1
		}

		f, err := loadDocument(*path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to read %s: %v\n", *path, err)
			return 1
		}

		tracker := docflow.NewTracker(*contractorID, &res.Data, client.DocumentUploader())
		if err := tracker.Replace(ctx, *slot, f); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Printf("replaced %s\n", model.SlotLabels[*slot])
		return 0
	}

	fmt.Fprintf(os.Stderr, "unknown docs subcommand %q\n", args[0])
	return 2
}

func cmdAnalysis(ctx context.Context, client *api.Client, args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "analysis requires a subcommand: run, list or get")
		return 2
	}

	switch args[0] {
	case "run":
		fs := flag.NewFlagSet("analysis run", flag.ExitOnError)
		id := fs.String("id", "", "document-management record id")
		fs.Parse(args[1:])
		if *id == "" {
			fmt.Fprintln(os.Stderr, "analysis run requires -id")
			return 2
		}

		fmt.Fprintln(os.Stderr, "running analysis; this can take several minutes")
		runner := analysis.NewRunner(client)
		outcome := runner.Run(ctx, *id)
		if !outcome.OK {
			fmt.Fprintf(os.Stderr, "analysis failed (%s): %s\n", outcome.Kind, outcome.Message)
			if outcome.Retryable {
				fmt.Fprintln(os.Stderr, "the server could not be reached; try again")
			}
			return 1
		}
		printJSON(outcome.Comparison)
		fmt.Printf("approval: %d%%\n", outcome.Comparison.Percentage())
		return 0

	case "list":
		return report(client.ListComparisons(ctx))

	case "get":
		fs := flag.NewFlagSet("analysis get", flag.ExitOnError)
		id := fs.String("id", "", "document-management record id")
		fs.Parse(args[1:])
		if *id == "" {
			fmt.Fprintln(os.Stderr, "analysis get requires -id")
			return 2
		}
		return report(client.GetComparison(ctx, *id))
	}

	fmt.Fprintf(os.Stderr, "unknown analysis subcommand %q\n", args[0])
	return 2
}

func cmdVerify(ctx context.Context, client *api.Client) int {
	res := client.ListVerifications(ctx)
	if !res.Success {
		fmt.Fprintln(os.Stderr, res.Message)
		return 1
	}
	for _, v := range res.Data {
		status := "ok"
		if !v.State {
			status = "missing: " + strings.Join(v.Missing(), ", ")
		}
		fmt.Printf("%-36s %s\n", v.ContractorID, status)
	}
	return 0
}

// localIP resolves the outbound interface address recorded with uploads.
func localIP() string {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return "127.0.0.1"
	}
	defer conn.Close()
	return conn.LocalAddr().(*net.UDPAddr).IP.String()
}

// runStub starts the local stub server and blocks until interrupted.
func runStub(cfg *config.Config) int {
	stub := &cfg.Stub

	var objects service.ObjectStore
	if stub.Minio.Endpoint != "" {
		store, err := service.NewMinioStore(&stub.Minio)
		if err != nil {
			slog.Error("failed to initialize MinIO store", "error", err)
			return 1
		}
		if err := store.EnsureBucket(context.Background()); err != nil {
			slog.Error("failed to ensure MinIO bucket", "error", err)
			return 1
		}
		objects = store
	} else {
		slog.Info("no MinIO endpoint configured, using in-memory object store")
		objects = service.NewMemoryStore()
	}

	store := service.NewStore()
	users := stub.Users
	if len(users) == 0 {
		users = []config.StubUser{{
			Email:    "admin@adcu.local",
			Password: "admin123",
			Name:     "Administrator",
			Role:     model.RoleAdmin,
		}}
		slog.Warn("no stub users configured, seeding default admin", "email", users[0].Email)
	}
	if err := store.Seed(users); err != nil {
		slog.Error("failed to seed stub users", "error", err)
		return 1
	}

	gin.SetMode(gin.ReleaseMode)
	router := handler.NewRouter(stub, store, objects)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", stub.Port),
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 25 * time.Minute, // the analysis endpoint blocks for the whole run
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("stub server starting", "port", stub.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("failed to start stub server", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down stub server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("stub server forced to shutdown", "error", err)
		return 1
	}

	slog.Info("stub server exited gracefully")
	return 0
}
