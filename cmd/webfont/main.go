// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command webfont builds an icon font from SVG icons.
//
// Usage:
//
//	webfont [flags] <file or glob>...
//
// Flags override values from the configuration file (.webfontrc,
// webfont.config.yaml, the "webfont" property of package.json, ...) and
// WEBFONT_* environment variables.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/term"

	"github.com/gogpu/webfont"
	"github.com/gogpu/webfont/config"
	"github.com/gogpu/webfont/templates"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// options are the flags that are not configuration keys.
type options struct {
	dest         string
	destTemplate string
	configFile   string
	verbose      bool
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("webfont", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: webfont [flags] <file or glob>...")
		fs.PrintDefaults()
	}

	var opts options
	fs.StringVar(&opts.dest, "dest", ".", "output `directory` for the fonts")
	fs.StringVar(&opts.destTemplate, "dest-template", "", "output `directory` for the template (default -dest)")
	fs.StringVar(&opts.configFile, "config", "", "configuration `file`; disables the configuration search")
	fs.BoolVar(&opts.verbose, "verbose", false, "log build details")

	collect := registerConfigFlags(fs)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	setupLogger(stderr, opts.verbose)

	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(stderr, "webfont:", err)
		return 1
	}
	patch, err := collect()
	if err != nil {
		fmt.Fprintln(stderr, "webfont:", err)
		return 2
	}
	if fs.NArg() > 0 {
		patch.Files = fs.Args()
	}

	cfg, err := config.Resolve(config.Options{
		ConfigFile: opts.configFile,
		Environ:    os.Environ(),
	}, patch)
	if err != nil {
		fmt.Fprintln(stderr, "webfont:", err)
		return 1
	}

	res, err := webfont.NewBuilder().Build(ctx, cfg)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	written, err := writeResult(res, opts)
	for _, p := range written {
		fmt.Fprintln(stdout, p)
	}
	if err != nil {
		fmt.Fprintln(stderr, "webfont:", err)
		return 1
	}
	if err := applyRenames(res); err != nil {
		fmt.Fprintln(stderr, "webfont:", err)
		return 1
	}
	return 0
}

// setupLogger logs as text to a terminal and as JSON otherwise.
func setupLogger(w io.Writer, verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	ho := &slog.HandlerOptions{Level: level}
	var h slog.Handler = slog.NewJSONHandler(w, ho)
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		h = slog.NewTextHandler(w, ho)
	}
	webfont.SetLogger(slog.New(h))
}

// registerConfigFlags defines one flag per configuration key. The returned
// function builds a patch from the flags that were set.
func registerConfigFlags(fs *flag.FlagSet) func() (webfont.ConfigPatch, error) {
	var (
		fontName          = fs.String("font-name", webfont.DefaultFontName, "font name")
		fontID            = fs.String("font-id", "", "font id (default font name)")
		fontStyle         = fs.String("font-style", "", "font style")
		fontWeight        = fs.String("font-weight", "", "font weight")
		fontHeight        = fs.Float64("font-height", 0, "font height (default tallest icon)")
		ascent            = fs.Float64("ascent", 0, "font ascent (default font height minus descent)")
		descent           = fs.Float64("descent", 0, "font descent")
		fixedWidth        = fs.Bool("fixed-width", false, "give every glyph the same width")
		centerH           = fs.Bool("center-horizontally", false, "center glyphs horizontally")
		normalize         = fs.Bool("normalize", false, "scale every icon to the font height")
		round             = fs.Float64("round", webfont.DefaultRound, "coordinate precision factor")
		metadata          = fs.String("metadata", "", "font metadata")
		formats           = fs.String("formats", "svg,ttf,eot,woff,woff2", "comma separated output `formats`")
		noSort            = fs.Bool("no-sort", false, "keep input order instead of sorting by path")
		startUnicode      = fs.String("start-unicode", "0xea01", "first auto-assigned code point")
		prependUnicode    = fs.Bool("prepend-unicode", false, "rename icons to carry their code point")
		template          = fs.String("template", "", "template: css, scss, html or a template file")
		templateClassName = fs.String("template-class-name", "", "template class name (default font name)")
		templateFontPath  = fs.String("template-font-path", webfont.DefaultFontPath, "font URL prefix in the template")
		templateFontName  = fs.String("template-font-name", "", "font name in the template (default font name)")
		addHash           = fs.Bool("add-hash-in-font-url", false, "append the font hash to font URLs")
		maxConcurrency    = fs.Int("max-concurrency", webfont.DefaultMaxConcurrency, "maximum number of files read at once")
		verify            = fs.Bool("verify", false, "parse the TrueType font back and check every glyph")
		inspector         = fs.String("inspector", "", "font parser used by -verify: ximage or gotext")
		ttfCopyright      = fs.String("ttf-copyright", "", "TrueType copyright notice")
		ttfVersion        = fs.String("ttf-version", "", "TrueType font version")
		ttfTimestamp      = fs.Int64("ttf-timestamp", 0, "TrueType creation time in Unix seconds")
	)

	return func() (webfont.ConfigPatch, error) {
		var (
			p   webfont.ConfigPatch
			ttf webfont.TTFOptionsPatch
			err error
		)
		fs.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "font-name":
				p.FontName = fontName
			case "font-id":
				p.FontID = fontID
			case "font-style":
				p.FontStyle = fontStyle
			case "font-weight":
				p.FontWeight = fontWeight
			case "font-height":
				p.FontHeight = fontHeight
			case "ascent":
				p.Ascent = ascent
			case "descent":
				p.Descent = descent
			case "fixed-width":
				p.FixedWidth = fixedWidth
			case "center-horizontally":
				p.CenterHorizontally = centerH
			case "normalize":
				p.Normalize = normalize
			case "round":
				p.Round = round
			case "metadata":
				p.Metadata = metadata
			case "formats":
				p.Formats = webfont.StringList{}
				for _, s := range strings.Split(*formats, ",") {
					fm, perr := webfont.ParseFormat(s)
					if perr != nil {
						err = perr
						return
					}
					p.Formats = append(p.Formats, fm.String())
				}
			case "no-sort":
				sort := !*noSort
				p.Sort = &sort
			case "start-unicode":
				r, perr := parseCodepoint(*startUnicode)
				if perr != nil {
					err = perr
					return
				}
				p.StartUnicode = &r
			case "prepend-unicode":
				p.PrependUnicode = prependUnicode
			case "template":
				p.Template = template
			case "template-class-name":
				p.TemplateClassName = templateClassName
			case "template-font-path":
				p.TemplateFontPath = templateFontPath
			case "template-font-name":
				p.TemplateFontName = templateFontName
			case "add-hash-in-font-url":
				p.AddHashInFontURL = addHash
			case "max-concurrency":
				p.MaxConcurrency = maxConcurrency
			case "verify":
				p.Verify = verify
			case "inspector":
				p.Inspector = inspector
			case "ttf-copyright":
				ttf.Copyright = ttfCopyright
			case "ttf-version":
				ttf.Version = ttfVersion
			case "ttf-timestamp":
				ttf.Timestamp = ttfTimestamp
			}
		})
		if ttf != (webfont.TTFOptionsPatch{}) {
			p.FormatsOptions = &webfont.FormatsOptionsPatch{TTF: &ttf}
		}
		return p, err
	}
}

// parseCodepoint accepts "0xEA01", "U+EA01", "uEA01", "EA01" and decimal
// numbers.
func parseCodepoint(s string) (rune, error) {
	s = strings.TrimSpace(s)
	var v int64
	var err error
	switch {
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		_, err = fmt.Sscanf(s[2:], "%x", &v)
	case strings.HasPrefix(s, "U+"), strings.HasPrefix(s, "u+"):
		_, err = fmt.Sscanf(s[2:], "%x", &v)
	case strings.HasPrefix(s, "u"), strings.HasPrefix(s, "U"):
		_, err = fmt.Sscanf(s[1:], "%x", &v)
	case strings.ContainsAny(s, "abcdefABCDEF"):
		_, err = fmt.Sscanf(s, "%x", &v)
	default:
		_, err = fmt.Sscanf(s, "%d", &v)
	}
	if err != nil || v <= 0 || v > 0x10FFFF {
		return 0, fmt.Errorf("invalid start unicode %q", s)
	}
	return rune(v), nil
}

// writeResult writes the fonts and the template and returns the written
// paths.
func writeResult(res *webfont.Result, opts options) ([]string, error) {
	cfg := res.Config
	var written []string
	if len(res.Artifacts) > 0 {
		if err := os.MkdirAll(opts.dest, 0o755); err != nil {
			return nil, err
		}
	}
	for _, f := range webfont.AllFormats() {
		data, ok := res.Artifacts[f]
		if !ok {
			continue
		}
		path := filepath.Join(opts.dest, cfg.FontName+"."+f.String())
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return written, err
		}
		written = append(written, path)
	}

	if cfg.Template == "" {
		return written, nil
	}
	dir := opts.destTemplate
	if dir == "" {
		dir = opts.dest
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return written, err
	}
	path := filepath.Join(dir, templateFileName(cfg))
	if err := os.WriteFile(path, []byte(res.Template), 0o644); err != nil {
		return written, err
	}
	return append(written, path), nil
}

// templateFileName is "<font>.<template>" for built-in templates and the
// template's base name, without a .tmpl suffix, otherwise.
func templateFileName(cfg webfont.Config) string {
	if slices.Contains(templates.Builtins(), cfg.Template) {
		return cfg.FontName + "." + cfg.Template
	}
	return strings.TrimSuffix(filepath.Base(cfg.Template), ".tmpl")
}

// applyRenames renames icons that were auto-numbered with -prepend-unicode.
func applyRenames(res *webfont.Result) error {
	for _, g := range res.Glyphs {
		md := g.Metadata
		if !md.Renamed || md.RenamedPath == "" {
			continue
		}
		if err := os.Rename(md.Path, md.RenamedPath); err != nil {
			return err
		}
		webfont.Logger().Debug("webfont: renamed icon", "from", md.Path, "to", md.RenamedPath)
	}
	return nil
}
