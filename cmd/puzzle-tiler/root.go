package main

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ironsheep/puzzle-tiler/internal/config"
	"github.com/ironsheep/puzzle-tiler/internal/imaging"
	"github.com/ironsheep/puzzle-tiler/internal/logging"
	"github.com/ironsheep/puzzle-tiler/internal/tiler"
)

// app carries the configuration shared by every command.
type app struct {
	cfg       *config.Config
	logCloser io.Closer
}

// run executes the command line and returns the process exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{cfg: config.Load()}
	defer a.close()

	cmd := a.newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func (a *app) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "puzzle-tiler <image>",
		Short: "Cut an image into square puzzle segments",
		Long: `Center-crops an image to a square and cuts it into 3x3 through 8x8 grids.

The output for photo.jpg is written to <output>/photo/:
  cropped_original.png   the normalized square
  3x3/A1.png ... 8x8/H8.png

The letter names the row and the number names the column, both starting at
the top-left. The last row and column absorb any remainder pixels.`,
		Args:              cobra.ExactArgs(1),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setupLogging,
		RunE:              a.runTile,
	}
	cmd.CompletionOptions.DisableDefaultCmd = true

	pf := cmd.PersistentFlags()
	pf.StringVarP(&a.cfg.OutputRoot, "output", "o", a.cfg.OutputRoot, "Output root directory (env "+config.EnvOutputRoot+")")
	pf.StringVar(&a.cfg.LogLevel, "log-level", a.cfg.LogLevel, "Log level: debug, info, warn, error (env "+config.EnvLogLevel+")")
	pf.StringVar(&a.cfg.LogFile, "log-file", a.cfg.LogFile, "Write logs to a rotating file instead of stderr (env "+config.EnvLogFile+")")

	cmd.Flags().BoolVar(&a.cfg.Manifest, "manifest", false, "Also write manifest.json with segment bounds and average colors")

	cmd.AddCommand(newPlanCmd(), a.newMCPCmd(), newVersionCmd())
	return cmd
}

func (a *app) setupLogging(cmd *cobra.Command, _ []string) error {
	closer, err := logging.Setup(logging.Options{
		Level:  a.cfg.LogLevel,
		File:   a.cfg.LogFile,
		Output: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	a.logCloser = closer
	logrus.Debugf("Puzzle tiler %s (built %s, commit %s)", Version, BuildTime, GitCommit)
	return nil
}

func (a *app) close() {
	if a.logCloser != nil {
		a.logCloser.Close()
	}
}

func (a *app) runTile(cmd *cobra.Command, args []string) error {
	a.cfg.InputPath = args[0]
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Processing image: %s\n", a.cfg.InputPath)

	if info, err := imaging.LoadImageInfo(a.cfg.InputPath); err == nil {
		logrus.WithFields(logrus.Fields{
			"format":      info.Format,
			"width":       info.Width,
			"height":      info.Height,
			"color_depth": info.ColorDepth,
			"has_alpha":   info.HasAlpha,
		}).Debug("Input image")
	}

	res, err := tiler.Process(a.cfg.InputPath, a.cfg.OutputRoot, tiler.Options{Manifest: a.cfg.Manifest})
	if err != nil {
		logrus.WithError(err).WithField("input", a.cfg.InputPath).Error("Processing failed")
		return err
	}

	fmt.Fprintf(out, "Original size: %dx%d\n", res.OriginalWidth, res.OriginalHeight)
	fmt.Fprintf(out, "Cropped size: %dx%d\n", res.Side, res.Side)
	for _, g := range res.Grids {
		fmt.Fprintf(out, "Created %dx%d grid: %d segments\n", g.Size, g.Size, len(g.Files))
	}
	if res.ManifestPath != "" {
		fmt.Fprintf(out, "Manifest: %s\n", res.ManifestPath)
	}
	fmt.Fprintf(out, "Successfully processed %s\n", a.cfg.InputPath)
	fmt.Fprintf(out, "Output saved to: %s\n", res.Dir)
	return nil
}
