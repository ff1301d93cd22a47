package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bawdo/sqlbind/bindings"
	"github.com/bawdo/sqlbind/columns"
	"github.com/bawdo/sqlbind/internal/quoting"
	"github.com/bawdo/sqlbind/literals"
	"github.com/bawdo/sqlbind/placeholders"
	"github.com/ergochat/readline"
)

var errNoTemplate = errors.New("no template defined (use 'sql <template>' first)")

// Session holds the REPL state: the current template and bindings, the
// active engine and the materializer options.
type Session struct {
	template    string
	binds       []any
	engine      string
	placeholder string
	escape      bool
	m           *placeholders.Materializer
	expander    columns.Expander
	commands    []commandEntry // command registry (sorted by prefix length desc)
	conn        *dbConn        // nil when disconnected
	lastDSN     string         // remembers the previous DSN for reconnect
	rl          *readline.Instance
	out         io.Writer // destination for REPL output (default os.Stdout)
}

// NewSession creates a session for the given engine.
func NewSession(engine string, rl *readline.Instance) *Session {
	s := &Session{
		placeholder: placeholders.DefaultPlaceholder,
		expander:    columns.Default,
		rl:          rl,
		out:         os.Stdout,
	}
	s.setEngine(engine)
	s.initCommands()
	return s
}

func (s *Session) setEngine(engine string) {
	if !isValidEngine(engine) {
		engine = "postgres"
	}
	s.engine = engine
	s.rebuildMaterializer()
}

// rebuildMaterializer applies the placeholder and escape settings. Escaping
// follows the engine: MySQL also escapes backslashes.
func (s *Session) rebuildMaterializer() {
	opts := []placeholders.Option{placeholders.WithPlaceholder(s.placeholder)}
	if s.escape {
		opts = append(opts, placeholders.WithEscaper(s.escaper()))
	}
	s.m = placeholders.New(opts...)
}

func (s *Session) escaper() func(string) string {
	return profileFor(s.engine).escape
}

func (s *Session) identQuote() func(string) string {
	return profileFor(s.engine).quoteIdent
}

// GenerateSQL materializes the current template with the current bindings.
func (s *Session) GenerateSQL() (string, error) {
	if s.template == "" {
		return "", errNoTemplate
	}
	return s.m.Materialize(s.template, s.binds)
}

// Execute parses and runs a single REPL command.
func (s *Session) Execute(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	lower := strings.ToLower(line)

	for _, cmd := range s.commands {
		if strings.HasSuffix(cmd.prefix, " ") {
			if strings.HasPrefix(lower, cmd.prefix) {
				return cmd.handler(line[len(cmd.prefix):])
			}
		} else {
			if lower == cmd.prefix {
				return cmd.handler("")
			}
		}
	}

	word := strings.Fields(line)[0]
	return fmt.Errorf("unknown command: %s (type 'help' for commands)", word)
}

// --- Command handlers ---

func (s *Session) cmdTemplate(args string) error {
	tpl := strings.TrimSpace(args)
	if tpl == "" {
		return errors.New("usage: sql <template>")
	}
	s.template = tpl
	n := len(placeholders.Occurrences(tpl, s.placeholder))
	_, _ = fmt.Fprintf(s.out, "  Template set (%s)\n", counted(n, "placeholder"))
	return nil
}

func (s *Session) cmdBind(args string) error {
	v, err := parseValue(args)
	if err != nil {
		return err
	}
	s.binds = append(s.binds, v)
	_, _ = fmt.Fprintf(s.out, "  $%d = %s\n", len(s.binds), describe(v))
	return nil
}

func (s *Session) cmdBinds(args string) error {
	vals, err := parseValues(args)
	if err != nil {
		return err
	}
	s.binds = vals
	_, _ = fmt.Fprintf(s.out, "  %s set\n", counted(len(vals), "binding"))
	return nil
}

func (s *Session) cmdUnbind() error {
	if len(s.binds) == 0 {
		return errors.New("no bindings to remove")
	}
	last := s.binds[len(s.binds)-1]
	s.binds = s.binds[:len(s.binds)-1]
	_, _ = fmt.Fprintf(s.out, "  Removed %s\n", describe(last))
	return nil
}

func (s *Session) cmdBindings() error {
	if len(s.binds) == 0 {
		_, _ = fmt.Fprintln(s.out, "  No bindings")
		return nil
	}
	for i, v := range s.binds {
		kind := literals.KindOf(literals.Classify(v))
		if bindings.IsCollection(v) {
			kind = fmt.Sprintf("%s[%d]", kind, bindings.Count(v))
		}
		_, _ = fmt.Fprintf(s.out, "  $%d %-12s %s\n", i+1, kind, describe(v))
	}
	return nil
}

func (s *Session) cmdExpand() error {
	if s.template == "" {
		return errNoTemplate
	}
	expanded, err := s.m.Expand(s.template, s.binds)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(s.out, "  %s\n", expanded)
	return nil
}

func (s *Session) cmdFlatten() error {
	flat := bindings.Flatten(s.binds)
	if len(flat) == 0 {
		_, _ = fmt.Fprintln(s.out, "  No bindings")
		return nil
	}
	for i, v := range flat {
		_, _ = fmt.Fprintf(s.out, "  [%d] %s\n", i, describe(v))
	}
	return nil
}

func (s *Session) cmdSQL() error {
	sql, err := s.GenerateSQL()
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(s.out, "  %s;\n", sql)
	return nil
}

func (s *Session) cmdFormat(args string) error {
	v, err := parseValue(args)
	if err != nil {
		return err
	}
	f := literals.NewFormatter()
	if s.escape {
		f = literals.NewFormatter(literals.WithEscaper(s.escaper()))
	}
	lit := f.Format(v)
	_, _ = fmt.Fprintf(s.out, "  %s  (%s, quoted=%t)\n", lit.SQL(), literals.KindOf(literals.Classify(v)), lit.Quoted)
	return nil
}

func (s *Session) cmdColumns(args string) error {
	exprs := strings.Split(args, ";")
	var cols []string
	for _, e := range exprs {
		if e = strings.TrimSpace(e); e != "" {
			cols = append(cols, s.expander(e)...)
		}
	}
	if len(cols) == 0 {
		return errors.New("usage: columns <table.{col1, col2}>")
	}
	quote := s.identQuote()
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = quoting.Qualified(c, quote)
	}
	_, _ = fmt.Fprintf(s.out, "  %s\n", strings.Join(quoted, ", "))
	return nil
}

func (s *Session) cmdPlaceholder(args string) error {
	token := strings.TrimSpace(args)
	if token == "" {
		return errors.New("usage: placeholder <token>")
	}
	s.placeholder = token
	s.rebuildMaterializer()
	_, _ = fmt.Fprintf(s.out, "  Placeholder set to %s\n", token)
	return nil
}

func (s *Session) cmdEscape() error {
	s.escape = !s.escape
	s.rebuildMaterializer()
	state := "OFF"
	if s.escape {
		state = "ON"
	}
	_, _ = fmt.Fprintf(s.out, "  Quote escaping: %s\n", state)
	return nil
}

func (s *Session) cmdEngine(args string) error {
	name := strings.TrimSpace(strings.ToLower(args))
	if !isValidEngine(name) {
		return fmt.Errorf("unknown engine %q (choose: %s)", name, strings.Join(engineNames, ", "))
	}
	s.setEngine(name)
	_, _ = fmt.Fprintf(s.out, "  Engine set to %s\n", s.engine)
	return nil
}

func (s *Session) cmdConnect(args string) error {
	dsn := strings.TrimSpace(args)

	if s.conn != nil {
		return fmt.Errorf("already connected to %s (use 'disconnect' first)", redactDSN(s.conn.dsn))
	}

	// Direct DSN provided: connect immediately.
	if dsn != "" {
		return s.connectWithDSN(dsn)
	}

	// Interactive: offer reconnect if we have a previous DSN, otherwise wizard.
	if s.lastDSN != "" {
		choice := prompt(s.rl, fmt.Sprintf("Reconnect to %s? (y/n/setup)", redactDSN(s.lastDSN)), "y")
		switch strings.ToLower(choice) {
		case "y", "yes":
			return s.connectWithDSN(s.lastDSN)
		case "s", "setup":
			return s.connectViaWizard()
		default:
			_, _ = fmt.Fprintln(s.out, "  Connect cancelled")
			return nil
		}
	}

	return s.connectViaWizard()
}

func (s *Session) connectWithDSN(dsn string) error {
	conn, err := connect(s.engine, dsn)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	s.conn = conn
	s.lastDSN = dsn
	_, _ = fmt.Fprintf(s.out, "  Connected to %s (%s)\n", redactDSN(dsn), s.engine)
	return nil
}

func (s *Session) connectViaWizard() error {
	dsn := runWizard(s.rl, s.out, s.engine)
	if dsn == "" {
		_, _ = fmt.Fprintln(s.out, "  No connection configured")
		return nil
	}

	_, _ = fmt.Fprintf(s.out, "  DSN: %s\n", redactDSN(dsn))
	return s.connectWithDSN(dsn)
}

func (s *Session) cmdDisconnect() error {
	if s.conn == nil {
		return errors.New("not connected")
	}
	dsn := redactDSN(s.conn.dsn)
	if err := s.conn.close(); err != nil {
		return fmt.Errorf("disconnect: %w", err)
	}
	s.conn = nil
	_, _ = fmt.Fprintf(s.out, "  Disconnected from %s\n", dsn)
	return nil
}

// cmdExec materializes the template and runs the literal SQL on the
// connected database.
func (s *Session) cmdExec() error {
	if s.conn == nil {
		return errors.New("not connected (use 'connect <dsn>' first)")
	}

	if s.conn.engine != s.engine {
		_, _ = fmt.Fprintf(s.out, "  Warning: connected to %s but engine is set to %s\n", s.conn.engine, s.engine)
	}

	if s.template == "" {
		return errNoTemplate
	}
	ex, err := s.conn.run(s.m, s.template, s.binds)
	if err != nil {
		return err
	}
	ex.render(s.out)
	return nil
}

func (s *Session) cmdReset() error {
	s.template = ""
	s.binds = nil
	_, _ = fmt.Fprintln(s.out, "  Template and bindings cleared")
	return nil
}

func (s *Session) cmdStatus() error {
	tpl := s.template
	if tpl == "" {
		tpl = "(none)"
	}
	conn := "disconnected"
	if s.conn != nil {
		conn = redactDSN(s.conn.dsn)
	}
	_, _ = fmt.Fprintf(s.out, "  Engine:      %s\n", s.engine)
	_, _ = fmt.Fprintf(s.out, "  Placeholder: %s\n", s.placeholder)
	_, _ = fmt.Fprintf(s.out, "  Escaping:    %t\n", s.escape)
	_, _ = fmt.Fprintf(s.out, "  Template:    %s\n", tpl)
	_, _ = fmt.Fprintf(s.out, "  Bindings:    %d\n", len(s.binds))
	_, _ = fmt.Fprintf(s.out, "  Connection:  %s\n", conn)
	return nil
}

func (s *Session) cmdHelp() {
	_, _ = fmt.Fprintln(s.out, `
  Template:
    sql <template>            Set the SQL template (alias: template)
    placeholder <token>       Set the placeholder token (default ?)

  Bindings:
    bind <value>              Append one binding
    binds <v1>, <v2>, ...     Replace all bindings
    unbind                    Remove the last binding
    bindings                  List bindings with their kinds
    flatten                   Show bindings flattened one level

  Values:
    42, -1, 3.14              Numbers
    'text', 'it''s'           Text ('' for an embedded quote)
    null, true, false         Null and booleans
    date '2024-01-05'         Date
    timestamp '2024-01-05 13:45:00'
    numeric '12.50'           Fixed-point decimal
    uuid '...', ulid '...'    Identifiers
    [1, 2, [3, 4]]            Collections
    nullif(a, b)              NULLIF function

  Output:
    expand                    Show the template with collections expanded
    sql                       Show the materialized SQL (alias: materialize, show)
    format <value>            Show how one value is formatted
    columns <t.{a, b}>        Expand braced columns (separate several with ;)
    escape                    Toggle quote escaping of text literals
    status                    Show session settings

  Engine:
    engine <name>             postgres, mysql, sqlite, sqlserver

  Database:
    connect [dsn]             Connect to a database
    disconnect                Close the connection
    exec                      Run the materialized SQL (alias: run)

  Other:
    reset                     Clear template and bindings
    help                      Show this help
    exit, quit                Leave the REPL`)
}

// describe renders a binding the way it would appear in the final SQL, with
// collections shown in brackets.
func describe(v any) string {
	if !bindings.IsCollection(v) {
		return literals.NewFormatter().Format(v).SQL()
	}
	elems := bindings.Elements(v)
	parts := make([]string, len(elems))
	for i, e := range elems {
		parts[i] = describe(e)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

