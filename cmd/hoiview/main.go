// Package main provides the hoiview binary entry point.
// Hoiview inspects human-object interaction image datasets: it prints
// summaries, renders annotation overlays, builds contact sheets and exports
// annotations to interchange formats.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/menta2k/hoiview"
	"github.com/menta2k/hoiview/internal/config"
	"github.com/menta2k/hoiview/internal/utils"
	"github.com/menta2k/hoiview/pkg/dataset"
	"github.com/menta2k/hoiview/pkg/export"
	"github.com/menta2k/hoiview/pkg/render"
)

const appName = "hoiview"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type globalOptions struct {
	configPath  string
	datasetRoot string
	logLevel    string
}

// loadConfig resolves the effective configuration: an explicit config file,
// then the user config if present, then the built-in defaults. The --dataset
// flag overrides the configured dataset root.
func (g *globalOptions) loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error

	switch {
	case g.configPath != "":
		cfg, err = config.LoadFromFile(g.configPath)
		if err != nil {
			return nil, err
		}
	case utils.FileExists(config.GetConfigPath()):
		cfg, err = config.LoadFromFile(config.GetConfigPath())
		if err != nil {
			return nil, err
		}
	default:
		cfg = config.Default()
	}

	if g.datasetRoot != "" {
		cfg.Dataset.Root = g.datasetRoot
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// openViewer loads the dataset configured in cfg.
func openViewer(cfg *config.Config) (*hoiview.Viewer, error) {
	if !utils.DirExists(cfg.Dataset.Root) {
		return nil, fmt.Errorf("dataset root %q is not a directory", cfg.Dataset.Root)
	}

	viewer, err := hoiview.Open(cfg.Dataset.Root)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}

	ds := viewer.Dataset()
	slog.Info("Dataset loaded",
		"root", cfg.Dataset.Root,
		"samples", ds.Len(),
		"categories", len(ds.Categories()),
		"verbs", len(ds.Verbs()))

	viewer.SetOptions(render.Options{
		StrokeRatio: cfg.Render.StrokeRatio,
		MinStroke:   cfg.Render.MinStroke,
		DrawLabels:  cfg.Render.DrawLabels,
	})
	return viewer, nil
}

func rootCmd() *cobra.Command {
	g := &globalOptions{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "HOI dataset viewer and export tool",
		Long: `Hoiview inspects human-object interaction image datasets stored in the
H2O directory layout (categories.json, verbs.json, train.json, test.json).

It provides:
- Dataset summaries and image verification
- Annotation overlays, entity crops and contact sheets
- HTML statistics reports
- Sloth, KITTI and TFRecord annotation export`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(g.logLevel)
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "Config file path (JSON)")
	cmd.PersistentFlags().StringVarP(&g.datasetRoot, "dataset", "d", "", "Dataset root directory (default datasets/h2o)")
	cmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		newInfoCmd(g),
		newRenderCmd(g),
		newGridCmd(g),
		newCropsCmd(g),
		newStatsCmd(g),
		newExportCmd(g),
		newVersionCmd(),
	)

	return cmd
}

func setupLogging(logLevel string) {
	level := slog.LevelInfo
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s\n", appName, hoiview.GetVersion())
		},
	}
}

func newInfoCmd(g *globalOptions) *cobra.Command {
	var (
		verify bool
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Print dataset summary information",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			viewer, err := openViewer(cfg)
			if err != nil {
				return err
			}
			return runInfo(viewer, cfg, verify, limit)
		},
	}
	cmd.Flags().BoolVar(&verify, "verify", false, "Check that the referenced image files exist on disk")
	cmd.Flags().IntVar(&limit, "limit", 5, "Number of samples to list (0 disables the listing)")
	return cmd
}

func runInfo(viewer *hoiview.Viewer, cfg *config.Config, verify bool, limit int) error {
	ds := viewer.Dataset()

	summary, err := viewer.Summary()
	if err != nil {
		return fmt.Errorf("collect statistics: %w", err)
	}

	fmt.Printf("Dataset root: %s\n", cfg.Dataset.Root)
	fmt.Printf("Splits:       %s\n", strings.Join(ds.Splits(), ", "))
	fmt.Printf("Samples:      %d\n", summary.Samples)
	fmt.Printf("Categories:   %d (%s)\n", len(ds.Categories()), strings.Join(ds.Categories(), ", "))
	fmt.Printf("Verbs:        %d (%s)\n", len(ds.Verbs()), strings.Join(ds.Verbs(), ", "))
	fmt.Printf("Entities:     %d\n", summary.Entities)
	fmt.Printf("Actions:      %d (%.0f%% interactive)\n", summary.Actions, 100*summary.InteractiveFraction())
	for _, split := range ds.Splits() {
		fmt.Printf("  %s: %d samples\n", split, summary.Splits[split])
	}

	if limit > 0 {
		fmt.Println("\nFirst samples:")
		for i, id := range ds.IDs() {
			if i >= limit {
				fmt.Printf("  ... and %d more\n", ds.Len()-limit)
				break
			}
			sample, err := ds.Get(id)
			if err != nil {
				return err
			}
			fmt.Printf("  %s: %d entities, %d actions, splits %s\n",
				id, len(sample.Entities), len(sample.Actions), strings.Join(sample.Splits, ","))
		}
	}

	if !verify {
		return nil
	}

	// Compare the manifests against the image files on disk.
	referenced := make([]string, 0, ds.Len())
	referencedSet := make(map[string]bool, ds.Len())
	for _, id := range ds.IDs() {
		sample, err := ds.Get(id)
		if err != nil {
			return err
		}
		referenced = append(referenced, sample.ImagePath)
		referencedSet[sample.ImagePath] = true
	}

	total, found := utils.DiskUsage(referenced)
	fmt.Printf("Images:       %d/%d on disk (%s)\n", found, len(referenced), utils.FormatFileSize(total))
	if missing := len(referenced) - found; missing > 0 {
		slog.Warn("Referenced images missing from disk", "count", missing)
	}

	imagesDir := filepath.Join(cfg.Dataset.Root, "images")
	if utils.DirExists(imagesDir) {
		onDisk, err := utils.ListImageFiles(imagesDir)
		if err != nil {
			return fmt.Errorf("scan images directory: %w", err)
		}
		orphans := 0
		for _, path := range onDisk {
			if !referencedSet[path] {
				orphans++
			}
		}
		if orphans > 0 {
			fmt.Printf("Orphans:      %d image files not referenced by any sample\n", orphans)
		}
	}

	return nil
}

func newRenderCmd(g *globalOptions) *cobra.Command {
	var (
		outputDir string
		all       bool
	)

	cmd := &cobra.Command{
		Use:   "render [sample-id...]",
		Short: "Draw annotation overlays for samples",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && !all {
				return fmt.Errorf("specify at least one sample id or --all")
			}
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			viewer, err := openViewer(cfg)
			if err != nil {
				return err
			}

			ids := make([]dataset.SampleID, 0, len(args))
			for _, arg := range args {
				ids = append(ids, dataset.SampleID(arg))
			}
			if all {
				ids = viewer.Dataset().IDs()
			}

			return runRender(viewer, cfg, ids, outputDir)
		},
	}
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory (default from config)")
	cmd.Flags().BoolVar(&all, "all", false, "Render every sample in the dataset")
	return cmd
}

func runRender(viewer *hoiview.Viewer, cfg *config.Config, ids []dataset.SampleID, outputDir string) error {
	if outputDir == "" {
		outputDir = cfg.Output.OutputDir
	}
	if err := utils.EnsureDir(outputDir); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	for _, id := range ids {
		annotated, err := viewer.Annotated(id)
		if err != nil {
			return err
		}

		sample, err := viewer.Dataset().Get(id)
		if err != nil {
			return err
		}
		outputPath := utils.GenerateOutputFilename(sample.ImagePath, outputDir, "_overlay", cfg.Output.DefaultFormat)

		if err := render.SaveImage(annotated, outputPath, cfg.Output.DefaultFormat, cfg.Output.Quality, cfg.Output.Lossless); err != nil {
			return fmt.Errorf("save overlay for sample %s: %w", id, err)
		}
		slog.Info("Rendered sample", "id", id, "output", outputPath)
	}

	fmt.Printf("Rendered %d samples to %s\n", len(ids), outputDir)
	return nil
}

func newGridCmd(g *globalOptions) *cobra.Command {
	var (
		output  string
		split   string
		limit   int
		columns int
	)

	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Build a contact sheet of annotated thumbnails",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			viewer, err := openViewer(cfg)
			if err != nil {
				return err
			}
			return runGrid(viewer, cfg, output, split, limit, columns)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default contact_sheet.<format> in the output directory)")
	cmd.Flags().StringVar(&split, "split", "", "Only include samples of this split")
	cmd.Flags().IntVar(&limit, "limit", 25, "Maximum number of samples on the sheet")
	cmd.Flags().IntVar(&columns, "columns", 0, "Number of grid columns (default from config)")
	return cmd
}

func runGrid(viewer *hoiview.Viewer, cfg *config.Config, output, split string, limit, columns int) error {
	ds := viewer.Dataset()

	ids := make([]dataset.SampleID, 0, limit)
	for _, id := range ds.IDs() {
		if split != "" {
			sample, err := ds.Get(id)
			if err != nil {
				return err
			}
			if !containsString(sample.Splits, split) {
				continue
			}
		}
		ids = append(ids, id)
		if limit > 0 && len(ids) >= limit {
			break
		}
	}
	if len(ids) == 0 {
		return fmt.Errorf("no samples selected")
	}

	if columns <= 0 {
		columns = cfg.Grid.Columns
	}
	sheet, err := viewer.ContactSheet(ids, columns, cfg.Grid.CellSize, cfg.Grid.ThumbSize)
	if err != nil {
		return err
	}

	if output == "" {
		if err := utils.EnsureDir(cfg.Output.OutputDir); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
		output = filepath.Join(cfg.Output.OutputDir, "contact_sheet."+cfg.Output.DefaultFormat)
	}
	if err := render.SaveImage(sheet, output, utils.GetFileExtension(output), cfg.Output.Quality, cfg.Output.Lossless); err != nil {
		return fmt.Errorf("save contact sheet: %w", err)
	}

	fmt.Printf("Contact sheet with %d samples written to %s\n", len(ids), output)
	return nil
}

func newCropsCmd(g *globalOptions) *cobra.Command {
	var (
		outputDir string
		padding   float64
	)

	cmd := &cobra.Command{
		Use:   "crops <sample-id>...",
		Short: "Cut the annotated entities out of sample images",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("padding") {
				padding = cfg.Render.PaddingRatio
			}
			viewer, err := openViewer(cfg)
			if err != nil {
				return err
			}

			ids := make([]dataset.SampleID, 0, len(args))
			for _, arg := range args {
				ids = append(ids, dataset.SampleID(arg))
			}
			return runCrops(viewer, cfg, ids, outputDir, padding)
		},
	}
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory (default from config)")
	cmd.Flags().Float64Var(&padding, "padding", 0, "Padding around each box as a fraction of its size (default from config)")
	return cmd
}

func runCrops(viewer *hoiview.Viewer, cfg *config.Config, ids []dataset.SampleID, outputDir string, padding float64) error {
	if outputDir == "" {
		outputDir = cfg.Output.OutputDir
	}
	if err := utils.EnsureDir(outputDir); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	written := 0
	for _, id := range ids {
		sample, err := viewer.Dataset().Get(id)
		if err != nil {
			return err
		}
		crops, err := viewer.Crops(id, padding)
		if err != nil {
			return err
		}

		for i, crop := range crops {
			name := fmt.Sprintf("%s_entity%d_%s.%s",
				utils.SanitizeFilename(string(id)), i,
				utils.SanitizeFilename(sample.Entities[i].Category),
				cfg.Output.DefaultFormat)
			outputPath := filepath.Join(outputDir, name)

			if err := render.SaveImage(crop, outputPath, cfg.Output.DefaultFormat, cfg.Output.Quality, cfg.Output.Lossless); err != nil {
				return fmt.Errorf("save crop %d of sample %s: %w", i, id, err)
			}
			slog.Info("Cropped entity", "id", id, "entity", i, "category", sample.Entities[i].Category, "output", outputPath)
		}
		written += len(crops)
	}

	fmt.Printf("Wrote %d entity crops to %s\n", written, outputDir)
	return nil
}

func newStatsCmd(g *globalOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Write an HTML statistics report",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			viewer, err := openViewer(cfg)
			if err != nil {
				return err
			}
			return runStats(viewer, cfg, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stats.html in the output directory)")
	return cmd
}

func runStats(viewer *hoiview.Viewer, cfg *config.Config, output string) error {
	if output == "" {
		if err := utils.EnsureDir(cfg.Output.OutputDir); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
		output = filepath.Join(cfg.Output.OutputDir, "stats.html")
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	defer f.Close()

	if err := viewer.WriteStatsReport(f); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	fmt.Printf("Statistics report written to %s\n", output)
	return nil
}

func newExportCmd(g *globalOptions) *cobra.Command {
	var (
		format   string
		output   string
		labelMap string
		shards   int
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export annotations to an interchange format",
		Long: `Export converts the dataset annotations to one of:

  sloth     one JSON file with all annotations
  kitti     one text label file per sample
  tfrecord  TFRecord shards plus a JSON label map`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("num-shards") {
				shards = cfg.Export.NumShards
			}
			viewer, err := openViewer(cfg)
			if err != nil {
				return err
			}
			return runExport(viewer, cfg, format, output, labelMap, shards)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "sloth", "Export format (sloth, kitti, tfrecord)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output path (file or directory depending on the format)")
	cmd.Flags().StringVar(&labelMap, "label-map", "", "Label map output path for tfrecord (default <output>.labels.json)")
	cmd.Flags().IntVar(&shards, "num-shards", 0, "Number of TFRecord shards (default from config)")
	return cmd
}

func runExport(viewer *hoiview.Viewer, cfg *config.Config, format, output, labelMap string, shards int) error {
	ds := viewer.Dataset()

	files, err := export.Flatten(ds)
	if err != nil {
		return fmt.Errorf("flatten annotations: %w", err)
	}
	slog.Info("Annotations flattened", "samples", len(files))

	switch strings.ToLower(format) {
	case "sloth":
		if output == "" {
			if err := utils.EnsureDir(cfg.Output.OutputDir); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}
			output = filepath.Join(cfg.Output.OutputDir, "annotations.json")
		}
		if err := export.WriteSloth(output, files); err != nil {
			return err
		}
		fmt.Printf("Sloth annotations for %d samples written to %s\n", len(files), output)

	case "kitti":
		if output == "" {
			output = filepath.Join(cfg.Output.OutputDir, "kitti")
		}
		if err := utils.EnsureDir(output); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
		if err := export.WriteKitti(output, files); err != nil {
			return err
		}
		fmt.Printf("KITTI labels for %d samples written to %s\n", len(files), output)

	case "tfrecord":
		if output == "" {
			if err := utils.EnsureDir(cfg.Output.OutputDir); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}
			output = filepath.Join(cfg.Output.OutputDir, "dataset.record")
		}
		if labelMap == "" {
			labelMap = output + ".labels.json"
		}
		if err := export.WriteTFRecord(output, labelMap, files, export.LabelMap(ds.Categories()), shards); err != nil {
			return err
		}
		fmt.Printf("TFRecord export of %d samples written to %s (%d shards, label map %s)\n",
			len(files), output, shards, labelMap)

	default:
		return fmt.Errorf("unknown export format %q (want sloth, kitti or tfrecord)", format)
	}

	return nil
}

func containsString(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
