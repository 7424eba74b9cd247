package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/thesminc/POCkit-sub000/internal/bootstrap"
	"github.com/thesminc/POCkit-sub000/internal/capability"
	"github.com/thesminc/POCkit-sub000/internal/feasibility"
	"github.com/thesminc/POCkit-sub000/internal/knowledge"
	"github.com/thesminc/POCkit-sub000/internal/shared/config"
	"github.com/thesminc/POCkit-sub000/internal/shared/server"
)

func main() {
	root := &cobra.Command{
		Use:   "pockit",
		Short: "Feasibility and tool-fit assessment for PoC engagements",
	}

	root.AddCommand(newCheckCmd())
	root.AddCommand(newEvaluateCmd())
	root.AddCommand(newIngestCmd())
	root.AddCommand(newServeCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newCheckCmd() *cobra.Command {
	var kbDir string
	cmd := &cobra.Command{
		Use:   "check <problem>",
		Short: "Quick feasibility check against a knowledge-base directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			evaluator, err := dirEvaluator(kbDir)
			if err != nil {
				return err
			}
			res, err := evaluator.QuickCheck(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d/100)\n%s\n", res.Verdict, res.Score, res.Summary)
			return nil
		},
	}
	cmd.Flags().StringVar(&kbDir, "kb", "", "knowledge base directory (default from KB_DIR)")
	return cmd
}

func newEvaluateCmd() *cobra.Command {
	var kbDir string
	var stack []string
	cmd := &cobra.Command{
		Use:   "evaluate <problem>",
		Short: "Full feasibility evaluation against a knowledge-base directory, as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			evaluator, err := dirEvaluator(kbDir)
			if err != nil {
				return err
			}
			res, err := evaluator.Evaluate(cmd.Context(), args[0], stack, nil)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		},
	}
	cmd.Flags().StringVar(&kbDir, "kb", "", "knowledge base directory (default from KB_DIR)")
	cmd.Flags().StringSliceVar(&stack, "stack", nil, "known technology stack entries")
	return cmd
}

func newIngestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ingest <dir>",
		Short: "Ingest a directory of documents into the configured store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			app, err := bootstrap.Build(cfg)
			if err != nil {
				return err
			}
			count, err := app.KnowledgeService.IngestDir(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ingested %d documents\n", count)
			return nil
		},
	}
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			app, err := bootstrap.Build(cfg)
			if err != nil {
				return err
			}
			addr := server.Addr(cfg.Port)
			log.Printf("Starting API server on %s", addr)
			return app.Router.Run(addr)
		},
	}
}

// dirEvaluator builds the evaluation engine straight over a directory
// knowledge base, with no catalog or server involved.
func dirEvaluator(kbDir string) (*feasibility.Evaluator, error) {
	cfg := config.Load()
	if kbDir == "" {
		kbDir = cfg.KnowledgeDir
	}
	info, err := os.Stat(kbDir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("knowledge base directory %q not found", kbDir)
	}
	src := knowledge.NewDirSource(kbDir)
	index := capability.NewIndex(src, cfg.SearchWorkers)
	return feasibility.NewEvaluator(index), nil
}
