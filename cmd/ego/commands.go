package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agenthands/egograph/internal/console"
	"github.com/agenthands/egograph/internal/core/model"
	"github.com/agenthands/egograph/internal/errs"
	"github.com/agenthands/egograph/internal/server"
)

var (
	configPath string
	query      string
	selection  int
	noServe    bool
	addrFlag   string
	outFlag    string
)

var (
	rootCmd = &cobra.Command{
		Use:   "ego",
		Short: "Build and serve the KRS ego graph of a person",
		Long: `Searches the KRS people registry, lets you pick one of the hits,
writes the person's relationship graph as node-link JSON and serves it
together with a visualization page.`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE:          runInteractive,
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve an existing output directory",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}

	buildCmd = &cobra.Command{
		Use:   "build <id>",
		Short: "Fetch and write the graph of a known registry id",
		Args:  cobra.ExactArgs(1),
		RunE:  runBuild,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config.toml (default $CONFIG_PATH or config/config.toml)")
	rootCmd.PersistentFlags().StringVar(&addrFlag, "addr", "", "address to serve on, overrides server.addr")
	rootCmd.PersistentFlags().StringVar(&outFlag, "out", "", "output directory, overrides graph.output_dir")

	rootCmd.Flags().StringVarP(&query, "query", "q", "", "name to search for instead of prompting")
	rootCmd.Flags().IntVarP(&selection, "select", "n", 0, "candidate number to pick instead of prompting")
	rootCmd.Flags().BoolVar(&noServe, "no-serve", false, "write the graph and exit")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(buildCmd)
}

func runInteractive(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx, loadOptions{ConfigPath: configPath, Addr: addrFlag, OutputDir: outFlag})
	if err != nil {
		return err
	}
	defer a.Close()

	prompter := console.NewPrompter(os.Stdin, cmd.OutOrStdout())

	q := query
	if q == "" {
		if q, err = prompter.AskQuery(); err != nil {
			return err
		}
	}

	candidates, err := a.Ego.Search(ctx, q)
	if err != nil {
		return err
	}
	prompter.RenderCandidates(candidates)

	id, err := chooseCandidate(cmd.Flags().Changed("select"), selection, prompter, candidates)
	if err != nil {
		return err
	}

	if _, err := a.Ego.Build(ctx, id); err != nil {
		return err
	}

	if noServe {
		fmt.Fprintln(cmd.OutOrStdout(), a.Config.Graph.OutputPath())
		return nil
	}
	return serve(cmd, a, prompter)
}

// chooseCandidate uses --select when it was given, whatever its value, and
// prompts otherwise.
func chooseCandidate(selectSet bool, index int, prompter *console.Prompter, candidates []model.Candidate) (string, error) {
	if selectSet {
		return console.Select(candidates, index)
	}
	return prompter.AskIndex(candidates)
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context(), loadOptions{ConfigPath: configPath, Addr: addrFlag, OutputDir: outFlag, SkipEnrichment: true})
	if err != nil {
		return err
	}
	defer a.Close()

	return serve(cmd, a, console.NewPrompter(os.Stdin, cmd.OutOrStdout()))
}

func runBuild(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context(), loadOptions{ConfigPath: configPath, Addr: addrFlag, OutputDir: outFlag})
	if err != nil {
		return err
	}
	defer a.Close()

	if _, err := a.Ego.Build(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), a.Config.Graph.OutputPath())
	return nil
}

func serve(cmd *cobra.Command, a *app, prompter *console.Prompter) error {
	cfg := a.Config
	if cfg.Server.WriteDefaultPage {
		if _, err := server.EnsurePage(cfg.Graph.OutputDir, cfg.Server.Page); err != nil {
			return errs.Server("server.EnsurePage", err)
		}
	}

	srv := server.NewServer(cfg.Graph.OutputDir, cfg.Server.Addr, cfg.Server.Page)
	ln, err := srv.Listen()
	if err != nil {
		return err
	}
	prompter.RenderResult(srv.URL())
	return srv.Serve(cmd.Context(), ln)
}
