// REPL binary for materializing SQL templates and running the result.
//
// Configuration (env vars):
//
//	SQLBIND_ENGINE=postgres|mysql|sqlite|sqlserver  (optional, prompted if absent)
//	SQLBIND_PLACEHOLDER=<token>                      (optional, default ?)
//	SQLBIND_ESCAPE=true|false                        (optional, default false)
//	DATABASE_URL=<dsn>                               (optional, auto-connects if set)
//
// Usage:
//
//	go run ./cmd/repl
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ergochat/readline"
)

// config is the startup configuration read from the environment.
type config struct {
	engine      string // "" means ask
	placeholder string
	escape      bool
	dsn         string
	warnings    []string
}

func loadConfig(getenv func(string) string) config {
	var cfg config
	if engine := strings.ToLower(strings.TrimSpace(getenv("SQLBIND_ENGINE"))); engine != "" {
		if isValidEngine(engine) {
			cfg.engine = engine
		} else {
			cfg.engine = "postgres"
			cfg.warnings = append(cfg.warnings, fmt.Sprintf("invalid SQLBIND_ENGINE=%q, defaulting to postgres", engine))
		}
	}
	cfg.placeholder = strings.TrimSpace(getenv("SQLBIND_PLACEHOLDER"))
	if raw := strings.TrimSpace(getenv("SQLBIND_ESCAPE")); raw != "" {
		escape, err := strconv.ParseBool(raw)
		if err != nil {
			cfg.warnings = append(cfg.warnings, fmt.Sprintf("invalid SQLBIND_ESCAPE=%q, escaping stays off", raw))
		}
		cfg.escape = escape
	}
	cfg.dsn = strings.TrimSpace(getenv("DATABASE_URL"))
	return cfg
}

// apply copies the template settings onto sess.
func (cfg config) apply(sess *Session) {
	if cfg.placeholder != "" {
		sess.placeholder = cfg.placeholder
	}
	sess.escape = cfg.escape
	sess.rebuildMaterializer()
}

func main() {
	cfg := loadConfig(os.Getenv)
	for _, w := range cfg.warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
	}

	rl, err := readline.NewFromConfig(&readline.Config{
		Prompt:          "[Config] ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "readline init: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = rl.Close() }()

	if cfg.engine == "" {
		cfg.engine = askEngine(rl)
	}
	sess := NewSession(cfg.engine, rl)
	cfg.apply(sess)
	fmt.Printf("[Config] Engine: %s, placeholder: %s, escaping: %t\n", sess.engine, sess.placeholder, sess.escape)

	_ = rl.SetConfig(&readline.Config{
		Prompt:          "sqlbind> ",
		HistoryFile:     historyPath(),
		HistoryLimit:    500,
		AutoComplete:    &replCompleter{sess: sess},
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})

	if cfg.dsn != "" {
		fmt.Println("[Config] Connecting via DATABASE_URL...")
		if err := sess.Execute("connect " + cfg.dsn); err != nil {
			fmt.Fprintf(os.Stderr, "  Warning: DATABASE_URL connect failed: %v\n", err)
		}
	} else if answer := strings.ToLower(prompt(rl, "Connect to a database? (y/N)", "")); answer == "y" || answer == "yes" {
		if err := sess.Execute("connect"); err != nil {
			fmt.Fprintf(os.Stderr, "  Warning: connect failed: %v\n", err)
		}
	}

	fmt.Println()
	fmt.Println("sqlbind REPL: type 'help' for commands, 'exit' to quit")
	fmt.Println()

	rl.SetPrompt("sqlbind> ")
	loop(rl, sess)
	if sess.conn != nil {
		_ = sess.conn.close()
	}
	fmt.Println()
}

func loop(rl *readline.Instance, sess *Session) {
	for {
		line, err := rl.ReadLine()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) || err != nil {
			return
		}
		line = strings.TrimSpace(line)
		switch strings.ToLower(line) {
		case "":
			continue
		case "exit", "quit":
			return
		}
		if err := sess.Execute(line); err != nil {
			fmt.Fprintf(os.Stderr, "  Error: %v\n", err)
		}
	}
}

func askEngine(rl *readline.Instance) string {
	choice := strings.ToLower(prompt(rl, "Select engine ("+strings.Join(engineNames, ", ")+")", "postgres"))
	if !isValidEngine(choice) {
		fmt.Fprintf(os.Stderr, "Warning: unknown engine %q, defaulting to postgres\n", choice)
		return "postgres"
	}
	return choice
}

// prompt shows label with an optional default and returns the trimmed input,
// or the default when the input is blank or readline is unavailable.
func prompt(rl *readline.Instance, label, defaultVal string) string {
	if rl == nil {
		return defaultVal
	}
	if defaultVal != "" {
		rl.SetPrompt(fmt.Sprintf("[Config]   %s [%s]: ", label, defaultVal))
	} else {
		rl.SetPrompt(fmt.Sprintf("[Config]   %s: ", label))
	}
	defer rl.SetPrompt("sqlbind> ")
	line, err := rl.ReadLine()
	if err != nil {
		return defaultVal
	}
	if val := strings.TrimSpace(line); val != "" {
		return val
	}
	return defaultVal
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".sqlbind_history")
}
