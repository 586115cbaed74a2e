package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"minifyall/internal/config"
	"minifyall/internal/core"
	"minifyall/internal/logger"
	"minifyall/internal/parser"
	"minifyall/pkg/document"
)

var (
	cfgFile      string
	logLevelFlag string

	inPlace   bool
	newFile   bool
	linesFlag string
	gitOnly   bool
	langFlag  string

	loader   *config.Loader
	settings *config.Settings
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "minifyall [files or directories...]",
	Short: "Minify HTML, CSS, JSON and JavaScript files",
	Long: `minifyall minifies markup (HTML, Twig, PHP, XML), stylesheets (CSS, SCSS,
LESS, Sass), JSON/JSONC and JavaScript/JSX.

Files are written to stdout unless --in-place or --new-file is given.
Directories are walked and every supported file is minified into a new file.`,
	Args:          cobra.MinimumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loader = config.NewLoader(cfgFile)
		s, err := loader.Load()
		if err != nil {
			return fmt.Errorf("failed to load settings: %w", err)
		}
		settings = s

		level := settings.Logging.Level
		if cmd.Flags().Changed("log-level") {
			level = logLevelFlag
		}
		logger.Setup(os.Stderr, level)
		logger.SetNotifyOutput(cmd.ErrOrStderr())
		logger.SetMessagesMuted(settings.DisableMessages)

		for _, msg := range settings.Deprecations {
			logger.NotifyWarn("%s", msg)
		}
		if used := loader.ConfigFileUsed(); used != "" {
			logger.Debug("loaded settings", "file", used)
		}
		return nil
	},
	RunE: runMinify,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.NotifyError("%v", err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is "+config.DefaultPath()+" or ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "info", "log level: debug, info, warn, error")

	rootCmd.Flags().BoolVarP(&inPlace, "in-place", "i", false, "overwrite each file with its minified text")
	rootCmd.Flags().BoolVarP(&newFile, "new-file", "n", false, "write a new file next to each input, named with the configured prefix")
	rootCmd.Flags().StringVarP(&linesFlag, "lines", "l", "", "only minify this line range of a single file (e.g. 10-20), replacing it in place")
	rootCmd.Flags().BoolVar(&gitOnly, "git", false, "for directories, only minify files tracked by git")
	rootCmd.Flags().StringVar(&langFlag, "language", "", "language of text read from stdin via \"-\" (html, css, json, js, ...)")
	rootCmd.MarkFlagsMutuallyExclusive("in-place", "new-file", "lines")
}

// expandTilde resolves a leading ~ or ~/ to the user's home directory.
// Other users' homes (~name) are left as they are.
func expandTilde(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, "~"+string(filepath.Separator)) {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		logger.Warn("cannot expand ~", "path", path, "err", err)
		return path
	}
	return filepath.Join(home, path[1:])
}

func newService() *core.Service {
	store := core.NewFileHistoryStore(expandTilde(settings.History.Path))
	return core.NewService(settings, store)
}

func target() core.Target {
	switch {
	case inPlace:
		return core.TargetInPlace
	case newFile:
		return core.TargetNewFile
	default:
		return core.TargetStdout
	}
}

func runMinify(cmd *cobra.Command, args []string) error {
	svc := newService()
	ctx := cmd.Context()

	if linesFlag != "" {
		if len(args) != 1 {
			return errors.New("--lines needs exactly one file")
		}
		start, end, err := parser.ParseLineRange(linesFlag)
		if err != nil {
			return err
		}
		res, err := svc.MinifySelection(ctx, args[0], start, end)
		if err != nil {
			return err
		}
		logger.NotifyInfo("Minified %s lines %d-%d: %s", res.Path, start, end, res.Sizes)
		return nil
	}

	var errs []error
	for _, arg := range args {
		if arg == "-" {
			if err := minifyStdin(cmd, svc); err != nil {
				errs = append(errs, err)
			}
			continue
		}
		info, err := os.Stat(arg)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if info.IsDir() {
			results, err := svc.MinifyDir(ctx, arg, gitOnly)
			for _, res := range results {
				logger.NotifyInfo("Minified %s -> %s: %s", res.Path, res.OutputPath, res.Sizes)
			}
			if err != nil {
				errs = append(errs, err)
			}
			continue
		}

		res, err := svc.MinifyFile(ctx, arg, target())
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if res.OutputPath == "" {
			fmt.Fprintln(cmd.OutOrStdout(), res.Output)
			continue
		}
		logger.NotifyInfo("Minified %s -> %s: %s", res.Path, res.OutputPath, res.Sizes)
		if settings.OpenMinifiedDocument && res.OutputPath != res.Path {
			fmt.Fprintln(cmd.OutOrStdout(), res.OutputPath)
		}
	}
	return errors.Join(errs...)
}

func minifyStdin(cmd *cobra.Command, svc *core.Service) error {
	lang := document.ParseLanguage(langFlag)
	if lang == document.Unknown {
		return fmt.Errorf("reading stdin needs --language, got %q", langFlag)
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("error reading stdin: %w", err)
	}
	out, report, err := svc.MinifyDocument(parser.ParseText(string(data), lang))
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	logger.Debug("minified stdin", "language", string(lang), "original", report.Original, "minified", report.Minified)
	return nil
}
