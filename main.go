// cadtext: translation and Vietnamese encoding conversion for CAD drawing text.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/inconshreveable/mousetrap"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/cadtext/cadtext/config"
	"github.com/cadtext/cadtext/i18n"
	"github.com/cadtext/cadtext/langmeta"
	"github.com/cadtext/cadtext/mask"
	"github.com/cadtext/cadtext/memory"
	"github.com/cadtext/cadtext/terms"
	"github.com/cadtext/cadtext/textfile"
	"github.com/cadtext/cadtext/translate"
	"github.com/cadtext/cadtext/vnenc"
)

// Version information (set via -ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	infoTag    = color.New(color.FgBlue).Sprint("[INFO]")
	successTag = color.New(color.FgGreen).Sprint("[OK]")
	warningTag = color.New(color.FgYellow, color.Bold).Sprint("[WARN]")
	errorTag   = color.New(color.FgRed).Sprint("[ERROR]")
)

func logInfo(format string, args ...any) {
	fmt.Fprintf(os.Stderr, infoTag+" "+format+"\n", args...)
}

func logSuccess(format string, args ...any) {
	fmt.Fprintf(os.Stderr, successTag+" "+format+"\n", args...)
}

func logWarning(format string, args ...any) {
	fmt.Fprintf(os.Stderr, warningTag+" "+format+"\n", args...)
}

func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, errorTag+" "+format+"\n", args...)
}

// ---------------------------------------------------------------------------
// Global flags
// ---------------------------------------------------------------------------

var (
	rootDir string
	verbose bool
)

// ---------------------------------------------------------------------------
// Root command
// ---------------------------------------------------------------------------

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "cadtext",
		Short: i18n.T("Translate CAD drawing text and convert Vietnamese encodings"),
		Long: i18n.T(`cadtext translates the text of CAD drawings (MText, single-line text,
block attributes, multileaders) exported to fragment files, and converts
Vietnamese text between Unicode and the legacy VNI and TCVN3 (ABC) encodings.

MText control codes (\P, \fArial|b1;, \S1/2;, %%c, braces) are shielded
from the translation engine and restored afterwards. A built-in glossary of
drafting terms for Vietnamese, Japanese, Korean and Chinese is applied before
translation.

Commands:
  translate   Translate a fragment file (.yaml or .txt)
  convert     Convert text between Unicode, VNI and TCVN3
  detect      Detect the encoding of Vietnamese text
  terms       Apply or list the drafting glossary
  langs       List languages with a built-in glossary
  memory      Inspect or prune the translation memory`),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global persistent flags, inherited by all subcommands
	root.PersistentFlags().StringVar(&rootDir, "root", ".", i18n.T("Directory holding .cadtext.yaml and .env"))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, i18n.T("Enable detailed logging"))

	root.AddCommand(
		newTranslateCmd(),
		newConvertCmd(),
		newDetectCmd(),
		newTermsCmd(),
		newLangsCmd(),
		newMemoryCmd(),
		newVersionCmd(),
	)

	return root
}

func main() {
	if mousetrap.StartedByExplorer() {
		fmt.Fprintln(os.Stderr, i18n.T("cadtext is a command-line tool. Open a terminal and run it from there."))
		time.Sleep(5 * time.Second)
		os.Exit(1)
	}

	i18n.Init("")

	if err := newRootCmd().Execute(); err != nil {
		logError("%v", err)
		os.Exit(1)
	}
}

// ---------------------------------------------------------------------------
// version
// ---------------------------------------------------------------------------

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: i18n.T("Show version information"),
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "cadtext version %s\n", version)
			fmt.Fprintf(out, "  commit:    %s\n", commit)
			fmt.Fprintf(out, "  built:     %s\n", date)
		},
	}
}

// ---------------------------------------------------------------------------
// translate
// ---------------------------------------------------------------------------

type translateArgs struct {
	from, to     string
	out          string
	charset      string
	concurrency  int
	maxAttempts  int
	timeout      time.Duration
	endpoint     string
	proxy        string
	glossaries   []string
	noTerms      bool
	memoryPath   string
	noMemory     bool
	dryRun       bool
	showProgress bool
}

func newTranslateCmd() *cobra.Command {
	var a translateArgs

	cmd := &cobra.Command{
		Use:   "translate FILE",
		Short: i18n.T("Translate a fragment file"),
		Long: i18n.T(`Translate every fragment of a .yaml or .txt dump file.

Fragments that hold nothing but control codes are never sent to the
translation service. A fragment that fails to translate keeps its text.
The result is written next to the input as FILE.<lang>.<ext> unless --out
is given.

Examples:
  cadtext translate plan.yaml --to vi
  cadtext translate notes.txt --from ja --to vi --out notes-vi.txt
  cadtext translate plan.yaml --to ko --dry-run`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings()
			if err != nil {
				return err
			}
			a.applyTo(cmd, &settings)
			return runTranslate(cmd, args[0], settings, a)
		},
	}

	cmd.Flags().StringVar(&a.from, "from", "", i18n.T("Source language (default from config, \"auto\")"))
	cmd.Flags().StringVar(&a.to, "to", "", i18n.T("Target language (default from config, \"vi\")"))
	cmd.Flags().StringVarP(&a.out, "out", "o", "", i18n.T("Output file (default FILE.<lang>.<ext>)"))
	cmd.Flags().StringVar(&a.charset, "charset", "utf-8", i18n.T("Byte encoding of .txt files"))
	cmd.Flags().IntVar(&a.concurrency, "concurrency", 0, i18n.T("Requests in flight (default from config, 8)"))
	cmd.Flags().IntVar(&a.maxAttempts, "max-attempts", 0, i18n.T("Attempts per request before giving up"))
	cmd.Flags().DurationVar(&a.timeout, "timeout", 0, i18n.T("Per-request timeout"))
	cmd.Flags().StringVar(&a.endpoint, "endpoint", "", i18n.T("Translation endpoint URL"))
	cmd.Flags().StringVar(&a.proxy, "proxy", "", i18n.T("HTTP/HTTPS proxy URL"))
	cmd.Flags().StringSliceVar(&a.glossaries, "glossary", nil, i18n.T("Extra glossary files (.yaml or .toml)"))
	cmd.Flags().BoolVar(&a.noTerms, "no-terms", false, i18n.T("Skip the glossary pre-pass"))
	cmd.Flags().StringVar(&a.memoryPath, "memory", "", i18n.T("Translation memory file"))
	cmd.Flags().BoolVar(&a.noMemory, "no-memory", false, i18n.T("Do not read or update the translation memory"))
	cmd.Flags().BoolVar(&a.dryRun, "dry-run", false, i18n.T("Show what would be translated without calling the service"))
	cmd.Flags().BoolVar(&a.showProgress, "progress", false, i18n.T("Report progress after each fragment"))

	_ = cmd.RegisterFlagCompletionFunc("to", completeLanguages)
	_ = cmd.RegisterFlagCompletionFunc("from", completeLanguages)

	return cmd
}

// applyTo lets explicitly set flags override the loaded settings.
func (a *translateArgs) applyTo(cmd *cobra.Command, s *config.Settings) {
	flags := cmd.Flags()
	if flags.Changed("from") {
		s.SourceLang = a.from
	}
	if flags.Changed("to") {
		s.TargetLang = a.to
	}
	if flags.Changed("concurrency") && a.concurrency > 0 {
		s.MaxConcurrent = a.concurrency
	}
	if flags.Changed("max-attempts") && a.maxAttempts > 0 {
		s.MaxAttempts = a.maxAttempts
	}
	if flags.Changed("timeout") && a.timeout > 0 {
		s.RequestTimeout = a.timeout
	}
	if flags.Changed("endpoint") {
		s.Endpoint = a.endpoint
	}
	if flags.Changed("proxy") {
		s.Proxy = a.proxy
	}
	s.Glossaries = append(s.Glossaries, a.glossaries...)
	if a.noTerms {
		s.Terminology = false
	}
	if flags.Changed("memory") {
		s.MemoryPath = a.memoryPath
	}
	if a.noMemory {
		s.MemoryPath = ""
	}
}

func runTranslate(cmd *cobra.Command, path string, s config.Settings, a translateArgs) error {
	if err := config.ValidateLang(s.SourceLang, true); err != nil {
		return fmt.Errorf("--from: %w", err)
	}
	if err := config.ValidateLang(s.TargetLang, false); err != nil {
		return fmt.Errorf("--to: %w", err)
	}

	f, err := textfile.Open(path, a.charset)
	if err != nil {
		return err
	}

	var glossary *terms.Glossary
	if s.Terminology {
		if glossary, err = terms.LoadDefault(s.Glossaries...); err != nil {
			return err
		}
	}

	var (
		mem  *memory.Memory
		view translate.Memory
	)
	if s.MemoryPath != "" {
		if mem, err = memory.Load(s.MemoryPath); err != nil {
			return err
		}
		view = memoryVariant(mem, s.Terminology)
	}

	logInfo(i18n.T("Translating %s: %s -> %s"), path, langmeta.Label(s.SourceLang), langmeta.Label(s.TargetLang))
	if verbose {
		logInfo(i18n.T("Concurrency: %d, attempts: %d, timeout: %s"), s.MaxConcurrent, s.MaxAttempts, s.RequestTimeout)
		if mem != nil {
			logInfo(i18n.T("Memory: %s (%s)"), mem.Path(), mem.Summary())
		}
	}

	if a.dryRun {
		return dryRunTranslate(cmd.OutOrStdout(), f, s, view)
	}

	// Setup signal handling for graceful cancellation
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	engine := translate.NewGoogleClient(translate.GoogleOptions{
		Endpoint:    s.Endpoint,
		MaxAttempts: s.MaxAttempts,
		BaseDelay:   s.BaseDelay,
		Timeout:     s.RequestTimeout,
		Proxy:       s.Proxy,
		OnLog:       debugLog,
	})

	opts := translate.Options{
		MaxConcurrent: s.MaxConcurrent,
		Glossary:      glossary,
		OnLog:         debugLog,
		OnError: func(format string, args ...any) {
			logWarning(format, args...)
		},
	}
	if view != nil {
		opts.Memory = view
	}
	if a.showProgress {
		opts.OnProgress = func(done, total int) {
			logInfo("  %d/%d", done, total)
		}
	}

	summary := translate.TranslateHolders(ctx, translate.New(engine, opts), f.Holders(), s.SourceLang, s.TargetLang)
	if ctx.Err() != nil {
		logWarning(i18n.T("Interrupted, unfinished fragments keep their text"))
	}

	out := a.out
	if out == "" {
		out = outputPath(path, s.TargetLang)
	}
	if err := f.WriteFile(out); err != nil {
		return err
	}

	if mem != nil {
		if err := mem.Save(); err != nil {
			logWarning(i18n.T("Saving translation memory: %v"), err)
		}
	}

	reportSummary(cmd.OutOrStdout(), summary)
	logSuccess(i18n.T("Wrote %s"), out)
	return nil
}

func dryRunTranslate(w io.Writer, f *textfile.File, s config.Settings, mem translate.Memory) error {
	var pending, masked, cached int
	for _, fr := range f.Fragments() {
		text, ok := fr.Text()
		if !ok {
			continue
		}
		if mem != nil {
			if _, hit := mem.Lookup(text, s.SourceLang, s.TargetLang); hit {
				cached++
				continue
			}
		}
		if mask.Mask(text).FullyMasked() {
			masked++
			continue
		}
		pending++
		if verbose {
			fmt.Fprintf(w, "  %s: %s\n", fr.ID, text)
		}
	}
	fmt.Fprintf(w, i18n.N("%d fragment to translate", "%d fragments to translate", pending)+"\n", pending)
	fmt.Fprintf(w, i18n.T("%d control-code only, %d from memory")+"\n", masked, cached)
	return nil
}

func reportSummary(w io.Writer, s translate.Summary) {
	fmt.Fprintf(w, i18n.N("%d of %d item changed", "%d of %d items changed", s.Changed)+"\n", s.Changed, s.Total)
	if s.Cached > 0 {
		fmt.Fprintf(w, i18n.T("%d from translation memory")+"\n", s.Cached)
	}
	if s.Failed > 0 {
		logWarning(i18n.N("%d item failed and kept its text", "%d items failed and kept their text", s.Failed), s.Failed)
	}
}

// ---------------------------------------------------------------------------
// convert
// ---------------------------------------------------------------------------

type convertArgs struct {
	text       string
	from, to   vnenc.Encoding
	charset    string
	outCharset string
	out        string
	noClean    bool
}

// --from and --to parse straight into vnenc.Encoding.
var _ pflag.Value = (*vnenc.Encoding)(nil)

func newConvertCmd() *cobra.Command {
	a := convertArgs{from: vnenc.Auto, to: vnenc.Unicode}

	cmd := &cobra.Command{
		Use:   "convert [FILE]",
		Short: i18n.T("Convert text between Unicode, VNI and TCVN3"),
		Long: i18n.T(`Convert Vietnamese text between Unicode and the legacy VNI and TCVN3 (ABC)
encodings. With --from auto the source encoding is detected per fragment.

MText font overrides (\fVNI-Times;) are dropped and \U+XXXX escapes are
decoded before conversion unless --no-clean is given.

Legacy .txt files are 8-bit: --charset names the code page used to read
them (default windows-1252, which maps each byte to the character the
VNI and TCVN3 tables expect).

Examples:
  cadtext convert --text "BêÙp" --from vni --to unicode
  cadtext convert legacy.txt --from tcvn3 --to unicode --out unicode.txt
  cadtext convert plan.yaml --to vni`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings()
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if !flags.Changed("from") {
				a.from = settings.SourceEncoding
			}
			if !flags.Changed("to") {
				a.to = settings.TargetEncoding
			}
			if !flags.Changed("charset") {
				a.charset = settings.Charset
			}
			if a.to == vnenc.Auto {
				return errors.New(i18n.T("--to cannot be auto"))
			}

			switch {
			case len(args) == 1:
				return runConvertFile(cmd.OutOrStdout(), args[0], a)
			case flags.Changed("text"):
				text := a.text
				if !a.noClean {
					text = vnenc.CleanMText(text)
				}
				fmt.Fprintln(cmd.OutOrStdout(), vnenc.Convert(text, a.from, a.to))
				return nil
			}
			return errors.New(i18n.T("give a FILE or --text"))
		},
	}

	cmd.Flags().StringVarP(&a.text, "text", "t", "", i18n.T("Convert this text instead of a file"))
	cmd.Flags().Var(&a.from, "from", i18n.T("Source encoding: auto, unicode, vni, tcvn3"))
	cmd.Flags().Var(&a.to, "to", i18n.T("Target encoding: unicode, vni, tcvn3"))
	cmd.Flags().StringVar(&a.charset, "charset", vnenc.DefaultCharset, i18n.T("Byte encoding used to read .txt files"))
	cmd.Flags().StringVar(&a.outCharset, "out-charset", "", i18n.T("Byte encoding used to write .txt files (default utf-8 for unicode, else --charset)"))
	cmd.Flags().StringVarP(&a.out, "out", "o", "", i18n.T("Output file (default FILE.<encoding>.<ext>)"))
	cmd.Flags().BoolVar(&a.noClean, "no-clean", false, i18n.T("Keep font overrides and \\U+XXXX escapes"))

	_ = cmd.RegisterFlagCompletionFunc("from", completeEncodings)
	_ = cmd.RegisterFlagCompletionFunc("to", completeEncodings)

	return cmd
}

func runConvertFile(w io.Writer, path string, a convertArgs) error {
	f, err := textfile.Open(path, a.charset)
	if err != nil {
		return err
	}

	n := f.Convert(a.from, a.to, !a.noClean)

	if f.Format == textfile.FormatLines {
		switch {
		case a.outCharset != "":
			f.Charset = a.outCharset
		case a.to == vnenc.Unicode:
			f.Charset = "utf-8"
		}
	}

	out := a.out
	if out == "" {
		out = outputPath(path, strings.ToLower(a.to.String()))
	}
	if err := f.WriteFile(out); err != nil {
		return err
	}

	total, _, _ := f.Stats()
	fmt.Fprintf(w, i18n.N("Processed %d of %d item", "Processed %d of %d items", n)+"\n", n, total)
	logSuccess(i18n.T("Wrote %s"), out)
	return nil
}

// ---------------------------------------------------------------------------
// detect
// ---------------------------------------------------------------------------

func newDetectCmd() *cobra.Command {
	var charset string

	cmd := &cobra.Command{
		Use:   "detect TEXT|FILE",
		Short: i18n.T("Detect the encoding of Vietnamese text"),
		Long: i18n.T(`Score a text (or the contents of a file) against the TCVN3, VNI and
Unicode character sets and print the winner. Text that was stored as UTF-8
and read back as Windows-1252 is repaired first.`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := args[0]
			if fileExists(text) {
				f, err := textfile.Open(text, charset)
				if err != nil {
					return err
				}
				text = strings.Join(f.Texts(), "\n")
			}
			return runDetect(cmd.OutOrStdout(), text)
		},
	}
	cmd.Flags().StringVar(&charset, "charset", vnenc.DefaultCharset, i18n.T("Byte encoding used to read .txt files"))
	return cmd
}

func runDetect(w io.Writer, text string) error {
	if repaired, ok := vnenc.Repair(text); ok {
		fmt.Fprintln(w, i18n.T("Mis-decoded UTF-8 repaired:"), repaired)
		text = repaired
	}
	enc, scores := vnenc.DetectScores(text)
	fmt.Fprintln(w, i18n.T("Detected encoding:"), enc)
	fmt.Fprintf(w, "  TCVN3 %d  VNI %d  Unicode %d\n", scores.TCVN3, scores.VNI, scores.Unicode)
	return nil
}

// ---------------------------------------------------------------------------
// terms
// ---------------------------------------------------------------------------

func newTermsCmd() *cobra.Command {
	var (
		from, to   string
		glossaries []string
	)

	cmd := &cobra.Command{
		Use:   "terms TEXT",
		Short: i18n.T("Apply the drafting glossary to a text"),
		Long: i18n.T(`Replace known drafting terms without calling the translation service.
Terms between two non-English languages are bridged through English.

Examples:
  cadtext terms "FLOOR PLAN" --to vi
  cadtext terms "断面" --from zh-CN --to vi
  cadtext terms list --lang ja`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings()
			if err != nil {
				return err
			}
			g, err := terms.LoadDefault(append(settings.Glossaries, glossaries...)...)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("to") {
				to = settings.TargetLang
			}
			fmt.Fprintln(cmd.OutOrStdout(), g.Apply(args[0], from, to))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "auto", i18n.T("Source language"))
	cmd.Flags().StringVar(&to, "to", "vi", i18n.T("Target language"))
	cmd.PersistentFlags().StringSliceVar(&glossaries, "glossary", nil, i18n.T("Extra glossary files (.yaml or .toml)"))

	cmd.AddCommand(newTermsListCmd(&glossaries))
	return cmd
}

func newTermsListCmd(glossaries *[]string) *cobra.Command {
	var lang string

	cmd := &cobra.Command{
		Use:   "list",
		Short: i18n.T("List glossary entries of a language"),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings()
			if err != nil {
				return err
			}
			g, err := terms.LoadDefault(append(settings.Glossaries, *glossaries...)...)
			if err != nil {
				return err
			}
			lang = terms.NormalizeLang(lang)
			entries := g.Entries(lang)
			if len(entries) == 0 {
				return fmt.Errorf(i18n.T("no glossary for %q (available: %s)"), lang, strings.Join(g.Languages(), ", "))
			}

			w := cmd.OutOrStdout()
			width := 0
			for _, e := range entries {
				width = max(width, len(e.English))
			}
			fmt.Fprintf(w, "%s\n", langmeta.Label(lang))
			for _, e := range entries {
				fmt.Fprintf(w, "  %-*s  %s\n", width, e.English, e.Local)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&lang, "lang", "vi", i18n.T("Glossary language"))
	_ = cmd.RegisterFlagCompletionFunc("lang", completeLanguages)
	return cmd
}

// ---------------------------------------------------------------------------
// langs
// ---------------------------------------------------------------------------

func newLangsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "langs",
		Short: i18n.T("List languages with a built-in glossary"),
		Long: i18n.T(`List the languages that have a drafting glossary. Any language code
accepted by the translation service can still be used with translate.`),
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			g := terms.Default()
			langs := g.Languages()
			width := langColumnWidth(langs)
			for _, lang := range langs {
				m := langmeta.Resolve(lang)
				fmt.Fprintf(w, "  %s  %-12s  %s\n", langCell(lang, width), m.English, i18n.N("%d term", "%d terms", len(g.Entries(lang))))
			}
		},
	}
}

// langColumnWidth returns the widest language code.
func langColumnWidth(langs []string) int {
	width := 0
	for _, l := range langs {
		width = max(width, len(l))
	}
	return width
}

// langCell renders a padded language code with its flag and native name.
func langCell(lang string, width int) string {
	m := langmeta.Resolve(lang)
	flag := m.Flag
	if flag == "" {
		flag = "  "
	}
	return fmt.Sprintf("%s %-*s  %s", flag, width, lang, m.Name)
}

// ---------------------------------------------------------------------------
// memory
// ---------------------------------------------------------------------------

func newMemoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "memory",
		Short: i18n.T("Inspect or prune the translation memory"),
	}
	cmd.AddCommand(newMemoryStatsCmd(), newMemoryPruneCmd())
	return cmd
}

func openMemory() (*memory.Memory, error) {
	settings, err := loadSettings()
	if err != nil {
		return nil, err
	}
	if settings.MemoryPath == "" {
		return nil, errors.New(i18n.T("translation memory is disabled"))
	}
	return memory.Load(settings.MemoryPath)
}

func newMemoryStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: i18n.T("Show translation memory statistics"),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mem, err := openMemory()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", mem.Path(), mem.Summary())
			return nil
		},
	}
}

func newMemoryPruneCmd() *cobra.Command {
	var (
		from, to, charset string
		noTerms           bool
	)

	cmd := &cobra.Command{
		Use:   "prune FILE",
		Short: i18n.T("Drop remembered translations not used by FILE"),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mem, err := openMemory()
			if err != nil {
				return err
			}
			f, err := textfile.Open(args[0], charset)
			if err != nil {
				return err
			}
			n := memoryVariant(mem, !noTerms).Prune(from, to, f.Texts())
			if err := mem.Save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), i18n.N("Removed %d entry", "Removed %d entries", n)+"\n", n)
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "auto", i18n.T("Source language"))
	cmd.Flags().StringVar(&to, "to", "vi", i18n.T("Target language"))
	cmd.Flags().StringVar(&charset, "charset", "utf-8", i18n.T("Byte encoding of .txt files"))
	cmd.Flags().BoolVar(&noTerms, "no-terms", false, i18n.T("Prune translations made without the glossary"))
	return cmd
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func loadSettings() (config.Settings, error) {
	s, err := config.Load(rootDir)
	if err != nil {
		return s, err
	}
	if verbose && s.File != nil {
		logInfo(i18n.T("Using %s"), filepath.Join(rootDir, config.FileName))
	}
	return s, nil
}

// memoryVariant keeps translations made without the glossary apart from
// the ones made with it.
func memoryVariant(mem *memory.Memory, terminology bool) *memory.Variant {
	if terminology {
		return mem.Variant("")
	}
	return mem.Variant(memory.NoTerms)
}

func debugLog(format string, args ...any) {
	if verbose {
		logInfo(format, args...)
	}
}

// outputPath inserts tag before the extension: plan.yaml -> plan.vi.yaml.
func outputPath(path, tag string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "." + tag + ext
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func completeLanguages(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	langs := append([]string{"auto", "en"}, terms.Default().Languages()...)
	out := make([]string, 0, len(langs))
	for _, l := range langs {
		out = append(out, l+"\t"+langmeta.Resolve(l).Name)
	}
	sort.Strings(out)
	return out, cobra.ShellCompDirectiveNoFileComp
}

func completeEncodings(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var out []string
	for _, e := range vnenc.Encodings() {
		out = append(out, strings.ToLower(e.String()))
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
