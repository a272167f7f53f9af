package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Team-GIVY/givy-cli/internal/api"
	"github.com/Team-GIVY/givy-cli/internal/applog"
	"github.com/Team-GIVY/givy-cli/internal/auth"
	"github.com/Team-GIVY/givy-cli/internal/nav"
	"github.com/Team-GIVY/givy-cli/internal/session"
	"github.com/Team-GIVY/givy-cli/internal/tui"
)

const (
	defaultAPIURL = "https://api.givy.team"
	defaultWSURL  = "wss://quotes.givy.team/ws"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "session":
			runSession(os.Args[2:])
			return
		case "logout":
			runLogout(os.Args[2:])
			return
		case "screens":
			runScreens()
			return
		case "help", "--help", "-h":
			printHelp()
			return
		}
	}

	fs := flag.NewFlagSet("givy", flag.ExitOnError)
	screenFlag := fs.String("screen", "", "Open a specific screen (skips resume)")
	oauthCode := fs.String("oauth-code", "", "OAuth callback code from the browser")
	apiURL := fs.String("api", "", "API base URL")
	wsURL := fs.String("ws", "", "Quote stream WebSocket URL")
	dataDir := fs.String("data-dir", "", "Directory for session data and logs")
	fs.Parse(os.Args[1:])

	dir := resolveDataDir(*dataDir)

	if err := applog.Init(dir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}
	defer applog.Close()

	store, err := session.Open(filepath.Join(dir, "session.db"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening session store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	client := api.New(resolveURL(*apiURL, "GIVY_API_URL", defaultAPIURL))
	mgr := auth.NewManager(store, client)
	client.Token = func() string { return session.AccessToken(store) }
	client.Refresher = mgr
	client.OnForcedLogout = mgr.ForceLogout

	override := *screenFlag
	if override == "" {
		override = os.Getenv("GIVY_SCREEN")
	}

	initial := nav.ResolveInitial(store, override, *oauthCode)
	machine := nav.NewMachine(store, initial)
	applog.Info("app.start", "screen", initial)

	model := tui.NewModel(store, machine, mgr, client,
		resolveURL(*wsURL, "GIVY_WS_URL", defaultWSURL), *oauthCode)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Print(`givy — your first step into investing

Usage:
  givy                               Start the app (resumes where you left off)
    --screen <name>     Open a specific screen (see 'givy screens')
    --oauth-code <code> Finish a Kakao/Google browser login
    --api <url>         API base URL (env: GIVY_API_URL)
    --ws <url>          Quote stream URL (env: GIVY_WS_URL)
    --data-dir <path>   Data directory (default: ~/.local/share/givy)

  givy session                       Show the stored session record
  givy logout                        Clear the stored session
  givy screens                       List screen names for --screen
  givy help                          Show this help

Environment:
  GIVY_SCREEN      Default screen override (overridden by --screen)
  GIVY_API_URL     API base URL
  GIVY_WS_URL      Quote stream WebSocket URL
  GIVY_DATA_DIR    Data directory
  GIVY_DEBUG       Enable debug logging when set
`)
}

// resolveDataDir resolves flag > env > default.
func resolveDataDir(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if v := os.Getenv("GIVY_DATA_DIR"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share", "givy")
}

func resolveURL(flagValue, envVar, fallback string) string {
	if flagValue != "" {
		return flagValue
	}
	if v := os.Getenv(envVar); v != "" {
		return v
	}
	return fallback
}

func openStore(dataDir string) (*session.SQLiteStore, error) {
	return session.Open(filepath.Join(resolveDataDir(dataDir), "session.db"))
}

func runSession(args []string) {
	fs := flag.NewFlagSet("session", flag.ExitOnError)
	dataDir := fs.String("data-dir", "", "Directory for session data and logs")
	fs.Parse(args)

	store, err := openStore(*dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening session store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	keys := store.Keys()
	if len(keys) == 0 {
		fmt.Println("No session stored.")
		return
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := store.Get(k)
		// Tokens are credentials; show presence, not value.
		if k == session.KeyAccessToken || k == session.KeyRefreshToken {
			v = fmt.Sprintf("(%d bytes)", len(v))
		}
		fmt.Printf("%-22s %s\n", k, v)
	}
}

func runLogout(args []string) {
	fs := flag.NewFlagSet("logout", flag.ExitOnError)
	dataDir := fs.String("data-dir", "", "Directory for session data and logs")
	apiURL := fs.String("api", "", "API base URL")
	fs.Parse(args)

	store, err := openStore(*dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening session store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	client := api.New(resolveURL(*apiURL, "GIVY_API_URL", defaultAPIURL))
	mgr := auth.NewManager(store, client)
	client.Token = func() string { return session.AccessToken(store) }

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	mgr.Logout(ctx)
	fmt.Println("Logged out.")
}

func runScreens() {
	for _, s := range nav.AllScreens {
		fmt.Println(s)
	}
}
