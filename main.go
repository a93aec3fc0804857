package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/aicat/aicat-tui/app"
	"github.com/aicat/aicat-tui/chat"
	"github.com/aicat/aicat-tui/config"
	"github.com/aicat/aicat-tui/logging"
	"github.com/aicat/aicat-tui/markdown"
	"github.com/aicat/aicat-tui/style"
)

var version = "dev"

func main() {
	profileFlag := flag.String("profile", os.Getenv("AICAT_PROFILE"), "Named profile for state isolation (~/.aicat/profiles/<name>)")
	themeFlag := flag.String("theme", "", "UI theme: dark, light or catppuccin (default: detect)")
	codeThemeFlag := flag.String("code-theme", "", "Chroma style for code blocks")
	noColor := flag.Bool("no-color", false, "Disable ANSI colors")
	transcript := flag.String("transcript", "", "JSON or JSON-lines transcript to preload")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.BoolVar(showVersion, "V", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("aicat %s\n", version)
		os.Exit(0)
	}

	if *noColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	profileDir := profileDirPath(*profileFlag)
	cfg := config.Load(profileDir)
	if *codeThemeFlag != "" {
		cfg.CodeTheme = *codeThemeFlag
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	cfg.CodeTheme = markdown.CodeTheme(cfg.CodeTheme)

	theme := *themeFlag
	if theme == "" {
		theme = cfg.Theme
	}
	applyTheme(theme)

	args := flag.Args()
	var err error
	switch {
	case len(args) > 0 && args[0] == "render":
		err = runRender(os.Stdout, args[1:], cfg)
	case len(args) > 0 && args[0] == "preview":
		err = runPreview(os.Stdout, cfg)
	case len(args) > 0:
		err = fmt.Errorf("unknown command %q", args[0])
	default:
		err = runInteractive(profileDir, cfg, *transcript)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "aicat: %v\n", err)
		os.Exit(1)
	}
}

func profileDirPath(profile string) string {
	home, _ := os.UserHomeDir()
	if profile != "" {
		return filepath.Join(home, ".aicat", "profiles", profile)
	}
	return filepath.Join(home, ".aicat")
}

// applyTheme selects name, or auto-detects from the terminal background.
func applyTheme(name string) {
	if name != "" && style.SetTheme(name) {
		return
	}
	if lipgloss.HasDarkBackground() {
		style.SetTheme("dark")
	} else {
		style.SetTheme("light")
	}
}

func runInteractive(profileDir string, cfg config.Config, transcriptPath string) error {
	logger, closer, err := logging.Init(logging.Options{
		Path:   cfg.LogPath(profileDir),
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "aicat: %v (logging disabled)\n", err)
	}
	defer closer.Close()

	opts := []app.Option{
		app.WithVersion(version),
		app.WithCodeTheme(cfg.CodeTheme),
		app.WithLogger(logger),
		app.WithProfileDir(profileDir),
	}
	if transcriptPath != "" {
		msgs, err := readTranscript(transcriptPath)
		if err != nil {
			return err
		}
		opts = append(opts, app.WithTranscript(msgs))
	}

	delay := time.Duration(cfg.EchoDelayMS) * time.Millisecond
	m := app.New(app.NewEchoController(delay), opts...)
	logger.Info("starting", "version", version, "profile", profileDir, "theme", style.CurrentThemeName)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return err
	}
	logger.Info("exiting")
	return nil
}

func readTranscript(path string) ([]chat.Message, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open transcript: %w", err)
	}
	defer f.Close()
	msgs, err := chat.DecodeTranscript(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return msgs, nil
}

// runRender paints a transcript as bubbles to w and exits.
func runRender(w io.Writer, args []string, cfg config.Config) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	width := fs.Int("width", cfg.Width, "Display width in cells")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var (
		msgs []chat.Message
		err  error
	)
	if fs.NArg() > 0 && fs.Arg(0) != "-" {
		msgs, err = readTranscript(fs.Arg(0))
	} else {
		msgs, err = chat.DecodeTranscript(os.Stdin)
		if err != nil {
			err = fmt.Errorf("stdin: %w", err)
		}
	}
	if err != nil {
		return err
	}
	slog.Debug("render", "messages", len(msgs), "width", *width)
	return writeBubbles(w, msgs, *width, cfg.CodeTheme)
}
