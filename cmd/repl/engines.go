package main

import (
	"fmt"
	"io"
	"net/url"
	"os/user"

	"github.com/bawdo/sqlbind/internal/quoting"
	"github.com/ergochat/readline"
)

// engineProfile is everything the REPL varies by engine: the database/sql
// driver, schema introspection queries, literal and identifier quoting, and
// the fields of the connection wizard.
type engineProfile struct {
	driver     string
	tables     string // lists user tables, one name per row
	columns    string // lists one table's columns; takes the table name
	quoteIdent func(string) string
	escape     func(string) string
	fields     []dsnField
	dsn        func(dsnValues) string // "" means not enough to connect
}

type dsnField struct {
	key   string
	label string
	def   string
}

// dsnValues holds wizard answers keyed by dsnField.key.
type dsnValues map[string]string

var engines = map[string]engineProfile{
	"postgres": {
		driver:     "pgx",
		tables:     "SELECT table_name FROM information_schema.tables WHERE table_schema = 'public' ORDER BY table_name",
		columns:    "SELECT column_name FROM information_schema.columns WHERE table_schema = 'public' AND table_name = $1 ORDER BY ordinal_position",
		quoteIdent: quoting.DoubleQuote,
		escape:     quoting.EscapeQuotes,
		fields: []dsnField{
			{"user", "User", currentUser("postgres")},
			{"password", "Password", ""},
			{"host", "Host", "localhost"},
			{"port", "Port", "5432"},
			{"database", "Database (blank for the user name)", ""},
			{"sslmode", "SSL mode (disable/require/verify-full)", "disable"},
		},
		dsn: func(v dsnValues) string {
			db := v["database"]
			if db == "" {
				db = v["user"]
			}
			return v.url("postgres", "/"+db, url.Values{"sslmode": {v["sslmode"]}})
		},
	},
	"mysql": {
		driver:     "mysql",
		tables:     "SELECT table_name FROM information_schema.tables WHERE table_schema = DATABASE() ORDER BY table_name",
		columns:    "SELECT column_name FROM information_schema.columns WHERE table_schema = DATABASE() AND table_name = ? ORDER BY ordinal_position",
		quoteIdent: quoting.Backtick,
		escape:     quoting.EscapeString,
		fields: []dsnField{
			{"user", "User", "root"},
			{"password", "Password", ""},
			{"host", "Host", "localhost"},
			{"port", "Port", "3306"},
			{"database", "Database", ""},
		},
		dsn: func(v dsnValues) string {
			if v["database"] == "" {
				return ""
			}
			auth := v["user"]
			if pass := v["password"]; pass != "" {
				auth += ":" + pass
			}
			return fmt.Sprintf("%s@tcp(%s:%s)/%s", auth, v["host"], v["port"], v["database"])
		},
	},
	"sqlite": {
		driver:     "sqlite",
		tables:     "SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name",
		columns:    "SELECT name FROM pragma_table_info(?)",
		quoteIdent: quoting.DoubleQuote,
		escape:     quoting.EscapeQuotes,
		fields:     []dsnField{{"path", "Database path", ":memory:"}},
		dsn:        func(v dsnValues) string { return v["path"] },
	},
	"sqlserver": {
		driver:     "sqlserver",
		tables:     "SELECT table_name FROM information_schema.tables WHERE table_type = 'BASE TABLE' ORDER BY table_name",
		columns:    "SELECT column_name FROM information_schema.columns WHERE table_name = @p1 ORDER BY ordinal_position",
		quoteIdent: quoting.Bracket,
		escape:     quoting.EscapeQuotes,
		fields: []dsnField{
			{"user", "User", "sa"},
			{"password", "Password", ""},
			{"host", "Host", "localhost"},
			{"port", "Port", "1433"},
			{"database", "Database", "master"},
		},
		dsn: func(v dsnValues) string {
			return v.url("sqlserver", "", url.Values{"database": {v["database"]}})
		},
	},
}

// profileFor returns the profile of engine, or the postgres profile for an
// unknown engine.
func profileFor(engine string) engineProfile {
	if p, ok := engines[engine]; ok {
		return p
	}
	return engines["postgres"]
}

func isValidEngine(engine string) bool {
	_, ok := engines[engine]
	return ok
}

func (v dsnValues) url(scheme, path string, query url.Values) string {
	info := url.User(v["user"])
	if pass := v["password"]; pass != "" {
		info = url.UserPassword(v["user"], pass)
	}
	u := &url.URL{
		Scheme:   scheme,
		User:     info,
		Host:     v["host"] + ":" + v["port"],
		Path:     path,
		RawQuery: query.Encode(),
	}
	return u.String()
}

// runWizard asks for each connection field of engine and returns the DSN
// built from the answers. Without a readline instance every field takes its
// default.
func runWizard(rl *readline.Instance, w io.Writer, engine string) string {
	p := profileFor(engine)
	_, _ = fmt.Fprintf(w, "[Config] %s connection setup:\n", engine)
	answers := make(dsnValues, len(p.fields))
	for _, f := range p.fields {
		answers[f.key] = prompt(rl, f.label, f.def)
	}
	return p.dsn(answers)
}

func currentUser(fallback string) string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return fallback
}
