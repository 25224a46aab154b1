package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/cobra"

	"github.com/julisunkan/CoverWizard/internal/cover"
)

const (
	defaultTrimSize     = "6x9"
	defaultPageCount    = 100
	defaultTitleSizePt  = 48
	defaultAuthorSizePt = 24
	defaultTextColor    = "#FFFFFF"
)

// allowedImageExts lists the upload formats the decoder supports.
var allowedImageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".tiff": true,
}

// Options holds everything main needs to generate one cover.
type Options struct {
	FrontPath  string
	BackPath   string
	OutputPath string
	FontPaths  []string
	Spec       cover.CoverSpec
	Logger     *slog.Logger
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "coverwizard <front-image>",
		Short: "Generate KDP-ready wraparound book covers as print PDFs",
		Long: `coverwizard composites a full wraparound print cover (back panel,
spine, front panel, bleed) from one or two source images, overlays the
title, author, and optional subtitle, spine, and back-cover text, and
writes a press-ready PDF at exact physical size.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := readCLIOptions(cmd, args)
			if err != nil {
				return err
			}
			return run(opts)
		},
	}

	flags := cmd.Flags()
	flags.StringP("output", "o", "", "output PDF path (default: front image path with .pdf extension)")
	flags.String("back", "", "back cover image (PNG, JPG, JPEG, GIF, BMP, or TIFF)")
	flags.String("title", "", "book title (required)")
	flags.String("subtitle", "", "subtitle shown under the title")
	flags.String("author", "", "author name (required)")
	flags.String("spine-text", "", "text printed along the spine")
	flags.String("back-text", "", "back cover description (needs --back)")
	flags.Int("pages", defaultPageCount, "page count, drives the spine width")
	flags.String("trim", defaultTrimSize, "trim size name (see 'coverwizard trims')")
	flags.Float64("title-size", defaultTitleSizePt, "title font size in points")
	flags.Float64("author-size", defaultAuthorSizePt, "author font size in points")
	flags.String("color", defaultTextColor, "text color as a hex value like #1A2B3C")
	flags.StringSlice("font", nil, "TTF/OTF font file, first parseable one wins (repeatable)")
	flags.String("log-level", "info", "log level: debug, info, warn, error")
	flags.String("log-format", "text", "log format: text, json")
	flags.BoolP("verbose", "v", false, "shorthand for --log-level debug")

	cmd.AddCommand(newTrimsCmd())
	return cmd
}

// readCLIOptions validates the parsed flags and assembles the Options.
func readCLIOptions(cmd *cobra.Command, args []string) (*Options, error) {
	flags := cmd.Flags()

	frontPath := args[0]
	if !allowedImageFile(frontPath) {
		return nil, fmt.Errorf("front image must be a PNG, JPG, JPEG, GIF, BMP, or TIFF file, got %q", frontPath)
	}

	backPath, _ := flags.GetString("back")
	if backPath != "" && !allowedImageFile(backPath) {
		return nil, fmt.Errorf("--back must be a PNG, JPG, JPEG, GIF, BMP, or TIFF file, got %q", backPath)
	}

	title, _ := flags.GetString("title")
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("--title is required")
	}
	author, _ := flags.GetString("author")
	if strings.TrimSpace(author) == "" {
		return nil, fmt.Errorf("--author is required")
	}

	backText, _ := flags.GetString("back-text")
	if strings.TrimSpace(backText) != "" && backPath == "" {
		return nil, fmt.Errorf("--back-text requires --back")
	}

	pages, _ := flags.GetInt("pages")
	if pages < 1 {
		return nil, fmt.Errorf("--pages must be a positive number, got %d", pages)
	}

	trim, _ := flags.GetString("trim")
	if _, ok := cover.LookupTrimSize(trim); !ok {
		return nil, fmt.Errorf("--trim must be one of %s, got %q", strings.Join(cover.TrimSizeNames(), ", "), trim)
	}

	titleSize, _ := flags.GetFloat64("title-size")
	if titleSize <= 0 {
		return nil, fmt.Errorf("--title-size must be positive, got %g", titleSize)
	}
	authorSize, _ := flags.GetFloat64("author-size")
	if authorSize <= 0 {
		return nil, fmt.Errorf("--author-size must be positive, got %g", authorSize)
	}

	colorValue, _ := flags.GetString("color")
	textColor, err := parseHexColor(colorValue)
	if err != nil {
		return nil, fmt.Errorf("--color must be a hex value like #RRGGBB: %w", err)
	}

	logLevel, _ := flags.GetString("log-level")
	switch strings.ToLower(logLevel) {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("--log-level must be one of debug, info, warn, error, got %q", logLevel)
	}

	logFormat, _ := flags.GetString("log-format")
	switch strings.ToLower(logFormat) {
	case "text", "json":
	default:
		return nil, fmt.Errorf("--log-format must be text or json, got %q", logFormat)
	}

	if verbose, _ := flags.GetBool("verbose"); verbose {
		logLevel = "debug"
	}

	outputPath, _ := flags.GetString("output")
	if outputPath == "" {
		outputPath = defaultOutputPath(frontPath, "pdf")
	}

	subtitle, _ := flags.GetString("subtitle")
	spineText, _ := flags.GetString("spine-text")
	fontPaths, _ := flags.GetStringSlice("font")

	return &Options{
		FrontPath:  frontPath,
		BackPath:   backPath,
		OutputPath: outputPath,
		FontPaths:  fontPaths,
		Spec: cover.CoverSpec{
			TrimName:     trim,
			PageCount:    pages,
			Title:        strings.TrimSpace(title),
			Subtitle:     strings.TrimSpace(subtitle),
			Author:       strings.TrimSpace(author),
			SpineText:    strings.TrimSpace(spineText),
			BackText:     strings.TrimSpace(backText),
			TitleSizePt:  titleSize,
			AuthorSizePt: authorSize,
			TextColor:    textColor,
		},
		Logger: buildLogger(cmd.ErrOrStderr(), logLevel, logFormat),
	}, nil
}

// run opens the source images and hands off to the cover generator.
func run(opts *Options) error {
	front, err := os.Open(opts.FrontPath)
	if err != nil {
		return fmt.Errorf("failed to open front image: %w", err)
	}
	defer front.Close()

	var back io.Reader
	if opts.BackPath != "" {
		backFile, err := os.Open(opts.BackPath)
		if err != nil {
			return fmt.Errorf("failed to open back image: %w", err)
		}
		defer backFile.Close()
		back = backFile
	}

	opts.Logger.Info("generating cover",
		"front", opts.FrontPath,
		"trim", opts.Spec.TrimName,
		"pages", opts.Spec.PageCount,
		"output", opts.OutputPath)

	gen := cover.NewGenerator(cover.Options{
		FontPaths: opts.FontPaths,
		Logger:    opts.Logger,
	})
	if err := gen.Generate(front, back, opts.Spec, opts.OutputPath); err != nil {
		return fmt.Errorf("cover generation failed: %w", err)
	}

	opts.Logger.Info("done", "output", opts.OutputPath)
	return nil
}

func newTrimsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trims",
		Short: "List the supported trim sizes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, name := range cover.TrimSizeNames() {
				size, _ := cover.LookupTrimSize(name)
				fmt.Fprintf(out, "%-12s %.2f x %.2f in\n", name, size.WidthIn, size.HeightIn)
			}
			return nil
		},
	}
}

// buildLogger builds a slog.Logger writing to w at the given level, as
// text or json.
func buildLogger(w io.Writer, level, format string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// parseHexColor accepts #RRGGBB and #RGB, with or without the leading #.
func parseHexColor(value string) (colorful.Color, error) {
	v := strings.TrimSpace(value)
	if !strings.HasPrefix(v, "#") {
		v = "#" + v
	}
	return colorful.Hex(v)
}

func defaultOutputPath(inputPath, ext string) string {
	return strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + "." + ext
}

func allowedImageFile(path string) bool {
	return allowedImageExts[strings.ToLower(filepath.Ext(path))]
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
