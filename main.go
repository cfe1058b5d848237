package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	config "github.com/drummonds/printdesk/config"
	engine "github.com/drummonds/printdesk/engine"
	"github.com/drummonds/printdesk/webapp"
)

// Logger is global since we will need it everywhere
var Logger *slog.Logger

// injectGlobals injects all of our globals into their packages
func injectGlobals(logger *slog.Logger) {
	Logger = logger
	engine.Logger = Logger
}

type cliOptions struct {
	configFile string
	port       string
	shell      bool
}

func newRootCommand() *cobra.Command {
	var opts cliOptions

	root := &cobra.Command{
		Use:           "printdesk",
		Short:         "Serve the printdesk edit and print web app",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, &opts)
		},
	}
	root.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "Path to serverConfig.toml (default: config/ or working directory)")
	root.PersistentFlags().BoolVar(&opts.shell, "shell", false, "Wrap pages in the root shell component (overrides config)")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, &opts)
		},
	}
	for _, c := range []*cobra.Command{root, serve} {
		c.Flags().StringVarP(&opts.port, "port", "p", "", "HTTP port (overrides config)")
	}

	routesCmd := &cobra.Command{
		Use:   "routes",
		Short: "Print the client route table",
		RunE: func(cmd *cobra.Command, args []string) error {
			serverConfig, err := config.Load(opts.configFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("shell") {
				serverConfig.Shell = opts.shell
			}
			return printRoutes(cmd.OutOrStdout(), serverConfig.Shell)
		},
	}

	root.AddCommand(serve, routesCmd)
	return root
}

func runServe(cmd *cobra.Command, opts *cliOptions) error {
	serverConfig, logger, err := config.SetupServer(opts.configFile)
	if err != nil {
		return err
	}
	injectGlobals(logger) //inject the logger into all of the packages

	if opts.port != "" {
		serverConfig.ListenAddrPort = opts.port
	}
	if cmd.Flags().Changed("shell") {
		serverConfig.Shell = opts.shell
	}

	Logger.Info("Setting up go-app WASM UI", "shell", serverConfig.Shell)
	serverHandler, err := engine.NewServerHandler(serverConfig)
	if err != nil {
		return err
	}
	Logger.Info("Routes registered", "paths", serverHandler.Table.Paths())

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	Logger.Info("Starting HTTP server")
	return serverHandler.Start(ctx)
}

func printRoutes(w io.Writer, shell bool) error {
	table := webapp.Routes(shell)
	if err := table.Validate(); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PATH\tNAME\tCOMPONENT")
	for _, route := range table.Entries() {
		fmt.Fprintf(tw, "%s\t%s\t%T\n", route.Path, route.Name, route.New())
	}
	return tw.Flush()
}

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
