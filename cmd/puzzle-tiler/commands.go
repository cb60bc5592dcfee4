package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironsheep/puzzle-tiler/internal/server"
	"github.com/ironsheep/puzzle-tiler/internal/tiler"
)

func newPlanCmd() *cobra.Command {
	var size, grid int

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print segment bounds as JSON without reading or writing images",
		Long: `Prints the segment names and pixel bounds for a square of --size pixels.
Without --grid every grid from 3x3 to 8x8 is printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if size <= 0 {
				return errors.New("--size must be a positive number of pixels")
			}

			sizes := []int{grid}
			if grid == 0 {
				sizes = sizes[:0]
				for n := tiler.MinGridSize; n <= tiler.MaxGridSize; n++ {
					sizes = append(sizes, n)
				}
			}

			plans := make([]*server.PlanResult, 0, len(sizes))
			for _, n := range sizes {
				p, err := server.NewPlanResult(size, n)
				if err != nil {
					return err
				}
				plans = append(plans, p)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if len(plans) == 1 {
				return enc.Encode(plans[0])
			}
			return enc.Encode(plans)
		},
	}

	cmd.Flags().IntVar(&size, "size", 0, "Side of the square image in pixels")
	cmd.Flags().IntVar(&grid, "grid", 0, "Grid size N; 0 prints every grid from 3 to 8")
	return cmd
}

func (a *app) newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the tiler as MCP tools over stdio",
		Long: `Runs an MCP (Model Context Protocol) server on stdin/stdout.
Logs go to stderr or --log-file since stdout carries the protocol.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv := server.New(a.cfg.OutputRoot, Version)
			return srv.Serve(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "puzzle-tiler %s\n", Version)
			fmt.Fprintf(out, "  Build time: %s\n", BuildTime)
			fmt.Fprintf(out, "  Git commit: %s\n", GitCommit)
		},
	}
}
