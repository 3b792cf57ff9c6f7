package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dori/larder/internal/app"
	"github.com/dori/larder/internal/backup"
	"github.com/dori/larder/internal/config"
	"github.com/dori/larder/internal/expiry"
	"github.com/dori/larder/internal/model"
	"github.com/dori/larder/internal/ui"
	"github.com/dori/larder/internal/ui/theme"
	"github.com/dori/larder/internal/view"
	"go.uber.org/zap"
)

var (
	version = "0.1.0"
)

func main() {
	// Subcommand handling
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "add":
			handleAdd(os.Args[2:])
			return
		case "export":
			handleExport(os.Args[2:])
			return
		case "import":
			handleImport(os.Args[2:])
			return
		case "version":
			fmt.Printf("larder v%s\n", version)
			return
		case "help", "-h", "--help":
			printHelp()
			return
		}
	}

	// Parse flags for TUI mode
	viewFlag := flag.String("view", "list", "Starting screen (entry, list, calendar)")
	themeFlag := flag.String("theme", "", "Theme name (nord, dracula, gruvbox, catppuccin)")
	flag.Parse()

	if err := runTUI(*viewFlag, *themeFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	help := `larder - A household food expiry tracker

Usage:
  larder                    Start the TUI
  larder add <item>         Quick add an item
  larder export [path]      Export all items to a backup file
  larder import <path>      Replace all items from a backup file
  larder version            Show version
  larder help               Show this help

Quick Add Syntax:
  larder add "Milk exp:2026-09-07"
  larder add "Frozen peas exp:+30 #Frozen @Freezer"

  Expiry:    exp:today exp:tomorrow exp:+7 exp:2026-09-15  (required)
  Genre:     #genre        (e.g., #Dairy, #Frozen)
  Area:      @area         (e.g., @Fridge, @Pantry)

TUI Options:
  --view <name>     Starting screen (entry, list, calendar)
  --theme <name>    Theme (nord, dracula, gruvbox, catppuccin)

Keybindings:
  Screens:      1             Entry form
                2             Item list
                3             Calendar

  List:         a             Add new item
                enter         Edit item
                d             Delete (with confirm)
                f/F           Cycle genre/area filter
                s             Toggle sort order
                ctrl+e        Export backup

  General:      ?             Help
                q             Quit

For more info: https://github.com/dori/larder`

	fmt.Println(help)
}

// handleAdd inserts one item without starting the TUI.
func handleAdd(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: larder add <item>")
		fmt.Fprintln(os.Stderr, "Example: larder add \"Milk exp:+7 #Dairy @Fridge\"")
		os.Exit(1)
	}

	text := strings.Join(args, " ")
	item, err := parseQuickAdd(text)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	application := mustOpenApp()
	defer application.Close()

	saved, err := application.Store.Add(item)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error saving item: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Added: %s\n", saved.Name)
	fmt.Printf("Expires: %s\n", saved.Date)
	if saved.Genre != "" {
		fmt.Printf("Genre: %s\n", saved.Genre)
	}
	if saved.Area != "" {
		fmt.Printf("Area: %s\n", saved.Area)
	}
}

// parseQuickAdd splits an add line into name and attribute tokens. Tokens
// are exp:<date>, #genre, and @area; everything else joins into the name.
func parseQuickAdd(text string) (model.Item, error) {
	var nameParts []string
	var date, genre, area string

	for _, word := range strings.Fields(text) {
		switch {
		case strings.HasPrefix(strings.ToLower(word), "exp:"):
			parsed, err := parseExpiryToken(strings.TrimPrefix(strings.ToLower(word), "exp:"))
			if err != nil {
				return model.Item{}, err
			}
			date = parsed

		case strings.HasPrefix(word, "#") && len(word) > 1:
			genre = strings.TrimPrefix(word, "#")

		case strings.HasPrefix(word, "@") && len(word) > 1:
			area = strings.TrimPrefix(word, "@")

		default:
			nameParts = append(nameParts, word)
		}
	}

	item := model.NewItem(strings.Join(nameParts, " "), date, genre, area, "")
	if err := item.Validate(); err != nil {
		return model.Item{}, err
	}
	return item, nil
}

// parseExpiryToken resolves today, tomorrow, +N days, or a literal date.
func parseExpiryToken(s string) (string, error) {
	now := time.Now()

	switch s {
	case "today":
		return expiry.FormatDate(now), nil
	case "tomorrow", "tom":
		return expiry.FormatDate(now.AddDate(0, 0, 1)), nil
	}

	if strings.HasPrefix(s, "+") {
		days, err := strconv.Atoi(strings.TrimPrefix(s, "+"))
		if err != nil || days < 0 {
			return "", fmt.Errorf("invalid expiry offset %q", s)
		}
		return expiry.FormatDate(now.AddDate(0, 0, days)), nil
	}

	if _, err := expiry.ParseDate(s); err != nil {
		return "", fmt.Errorf("invalid expiry date %q (want YYYY-MM-DD)", s)
	}
	return s, nil
}

// handleExport writes the full collection to a backup file. The default
// destination is a dated filename in the current directory.
func handleExport(args []string) {
	application := mustOpenApp()
	defer application.Close()

	path := backup.Filename(time.Now())
	if len(args) > 0 {
		path = args[0]
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			path = filepath.Join(path, backup.Filename(time.Now()))
		}
	}

	if err := backup.WriteFile(path, application.Store.Items()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Exported %d items to %s\n", application.Store.Len(), path)
}

// handleImport replaces the whole collection from a backup file after an
// explicit confirmation. Declining leaves the current items untouched.
func handleImport(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: larder import <path>")
		os.Exit(1)
	}

	f, err := os.Open(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	items, err := backup.Parse(f)
	f.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	application := mustOpenApp()
	defer application.Close()

	fmt.Printf("This replaces all %d current items with %d imported items. Continue? [y/N] ",
		application.Store.Len(), len(items))
	reader := bufio.NewReader(os.Stdin)
	answer, _ := reader.ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))
	if answer != "y" && answer != "yes" {
		fmt.Println("Import cancelled, nothing changed.")
		return
	}

	if err := application.Store.ReplaceAll(items); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Imported %d items.\n", len(items))
}

func mustOpenApp() *app.App {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	application, err := app.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return application
}

func runTUI(startScreen, themeName string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// The command-line theme wins over the config file
	if themeName == "" {
		themeName = cfg.Theme
	}
	if themeName != "" {
		if t, ok := theme.ByName(themeName); ok {
			theme.SetTheme(t)
		} else {
			var names []string
			for _, t := range theme.Available() {
				names = append(names, t.Name)
			}
			fmt.Fprintf(os.Stderr, "Unknown theme %q, using default (available: %s)\n",
				themeName, strings.Join(names, ", "))
		}
	}

	application, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer application.Close()

	// Desktop alert for anything expired or close to it, sent once per
	// session start
	notices := view.DeriveNotices(application.Store.Items(), time.Now())
	if !notices.Empty() {
		if err := application.Notifier.SendExpiryAlert(notices); err != nil {
			application.Log.Debug("expiry alert failed", zap.Error(err))
		}
	}

	screen, _ := ui.ScreenByName(startScreen)
	rootModel := ui.NewRootModel(application, screen)

	p := tea.NewProgram(
		rootModel,
		tea.WithAltScreen(),
	)

	_, err = p.Run()
	return err
}
