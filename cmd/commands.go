package main

import (
	"bufio"
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/envmon/console/internal/backend"
	"github.com/envmon/console/internal/config"
	"github.com/envmon/console/internal/database"
	"github.com/envmon/console/internal/models"
	"github.com/envmon/console/internal/monitoring"
	"github.com/envmon/console/internal/repository"
	"github.com/envmon/console/internal/repository/journal"
	"github.com/envmon/console/internal/server"
	"github.com/envmon/console/internal/service"
	"github.com/envmon/console/internal/session"
	"github.com/envmon/console/internal/views"
	"github.com/spf13/cobra"
	nuts "github.com/vaudience/go-nuts"
	"gopkg.in/yaml.v3"
)

// errReported marks a failure whose status was already printed.
var errReported = stderrors.New("failed")

var (
	cfg        *config.Config
	backendURL string
	noColor    bool

	rootCmd = &cobra.Command{
		Use:               "envmon-console",
		Short:             "Environmental monitoring console",
		Long:              "Web console and command-line client for the environmental monitoring backend.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: loadConfig,
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Run the web console",
		Args:  cobra.NoArgs,
		RunE:  serve,
	}

	audioCmd = &cobra.Command{
		Use:   "audio",
		Short: "Browse audio recordings",
	}

	audioListCmd = &cobra.Command{
		Use:   "list",
		Short: "List audio recordings",
		Args:  cobra.NoArgs,
		RunE:  listAudio,
	}

	audioShowCmd = &cobra.Command{
		Use:   "show [audio-id]",
		Short: "Show the environmental data correlated with a recording",
		Args:  cobra.ExactArgs(1),
		RunE:  showAudio,
	}

	queryCmd = &cobra.Command{
		Use:       "query [sensor|weather|combined]",
		Short:     "Query sensor and weather records",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"sensor", "weather", "combined"},
		RunE:      runQuery,
	}

	uploadCmd = &cobra.Command{
		Use:       "upload [csv|audio] [file]",
		Short:     "Upload a CSV file or an audio recording",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"csv", "audio"},
		RunE:      runUpload,
	}

	deleteCmd = &cobra.Command{
		Use:   "delete [sensor|weather|combined|audio] [id...]",
		Short: "Delete rows of one data source",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runDelete,
	}

	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE:  printConfig,
	}

	queryParams models.QueryParams
	assumeYes   bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&backendURL, "backend", "", "Backend base URL (overrides configuration)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	queryCmd.Flags().StringVar(&queryParams.StartDate, "start-date", "", "Start date (YYYY-MM-DD)")
	queryCmd.Flags().StringVar(&queryParams.EndDate, "end-date", "", "End date (YYYY-MM-DD)")
	queryCmd.Flags().StringVar(&queryParams.StartTime, "start-time", "", "Start time (HH:MM)")
	queryCmd.Flags().StringVar(&queryParams.EndTime, "end-time", "", "End time (HH:MM)")

	deleteCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Do not ask for confirmation")

	audioCmd.AddCommand(audioListCmd)
	audioCmd.AddCommand(audioShowCmd)

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(audioCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(configCmd)
}

func loadConfig(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if backendURL != "" {
		loaded.Backend.BaseURL = backendURL
	}
	cfg = loaded
	return nil
}

func terminal() *views.Terminal {
	return views.NewTerminal(os.Stdout, !noColor)
}

// commandContext is cancelled on interrupt.
func commandContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func serve(cmd *cobra.Command, args []string) error {
	ClearConsole()
	DrawLogo()
	nuts.L.Infof("[Main] Starting environmental monitoring console v%s", nuts.GetVersion())

	srv := server.New(cfg)
	if err := srv.Start(); err != nil {
		nuts.L.Errorf("[Main] Server error: %v", err)
		return err
	}
	return nil
}

func listAudio(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	records, err := backend.New(cfg.Backend).ListAudio(ctx)
	terminal().AudioList(views.NewAudioListView(cfg.Console.AudioMode, records, err, ""))
	return reported(err)
}

func showAudio(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	id := args[0]
	bundle, err := backend.New(cfg.Backend).Environmental(ctx, id)
	view := views.NewDetailView(config.AudioModeNavigated, id, "", bundle, err)
	fmt.Fprintln(os.Stdout, view.Title)
	terminal().Correlation(view.Panel)
	return reported(err)
}

func runQuery(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	params := queryParams
	params.Source = models.DataSource(args[0])
	res, err := backend.New(cfg.Backend).Query(ctx, params)
	terminal().Query(views.NewQueryView(params, views.FilterPanel{}, true, true, res, err))
	return reported(err)
}

func runUpload(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	kind := models.UploadKind(args[0])
	widget, ok := uploadWidget(kind)
	if !ok {
		return fmt.Errorf("unknown upload kind %q (csv or audio)", args[0])
	}
	path := args[1]
	name := filepath.Base(path)
	term := terminal()
	if !widget.Allows(name) {
		term.Status(widget.RejectedFile(name))
		return errReported
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	svc, closeSvc := newService()
	defer closeSvc()
	res, err := svc.Upload(ctx, nuts.NID("cli", 12), kind, name, f)
	outcome := views.UploadStatus(res, err)
	term.Status(outcome.Status)
	if err == nil && res.CSV != nil {
		for _, rowErr := range res.CSV.Errors {
			fmt.Fprintf(os.Stdout, "  %v\n", rowErr)
		}
	}
	if outcome.Status.IsError() {
		return errReported
	}
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	sel := models.Selection{Source: models.DataSource(args[0]), IDs: args[1:]}.Normalized()
	term := terminal()
	if sel.Count() > 0 && !assumeYes && !confirm(views.MsgConfirmDelete) {
		term.Status(views.Info("Nothing deleted."))
		return nil
	}

	svc, closeSvc := newService()
	defer closeSvc()
	err := svc.Delete(ctx, nuts.NID("cli", 12), sel)
	term.Status(views.DeleteStatus(err))
	return reported(err)
}

func printConfig(cmd *cobra.Command, args []string) error {
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(cfg)
}

func uploadWidget(kind models.UploadKind) (views.UploadWidget, bool) {
	switch kind {
	case models.UploadCSV:
		return views.NewUploadWidget(kind, "CSV", cfg.Upload.CSVExtensions), true
	case models.UploadAudio:
		return views.NewUploadWidget(kind, "audio", cfg.Upload.AudioExtensions), true
	}
	return views.UploadWidget{}, false
}

// newService builds the console service for one-shot commands. Actions are
// journaled when the journal is reachable; the CLI keeps working without it.
func newService() (*service.Service, func()) {
	var activity repository.ActivityRepository
	var db database.DB
	if cfg.Journal.Driver != "" {
		var err error
		db, err = database.Open(cfg.Journal)
		if err == nil {
			repo := journal.NewActivityRepository(db)
			if err = repo.Migrate(context.Background()); err == nil {
				activity = repo
			}
		}
		if err != nil {
			nuts.L.Warnf("[Main] Journal unavailable, actions are not recorded: %v", err)
		}
	}
	svc := service.New(backend.New(cfg.Backend), session.NewMemoryStore(0), activity, monitoring.NewService(monitoring.Config{}))
	return svc, func() {
		if db != nil {
			db.Close()
		}
	}
}

func confirm(prompt string) bool {
	fmt.Fprintf(os.Stdout, "%s [y/N] ", prompt)
	answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func reported(err error) error {
	if err != nil {
		return errReported
	}
	return nil
}
