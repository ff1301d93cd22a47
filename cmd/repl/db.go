package main

import (
	"database/sql"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/bawdo/sqlbind/literals"
	"github.com/bawdo/sqlbind/placeholders"
	"github.com/dustin/go-humanize"
	pluralizer "github.com/gertd/go-pluralize"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/microsoft/go-mssqldb"
	_ "modernc.org/sqlite"
)

const maxRows = 1000

var pluralizeClient = pluralizer.NewClient()

// counted renders n followed by word inflected to agree with it.
func counted(n int, word string) string {
	return humanize.Comma(int64(n)) + " " + pluralizeClient.Pluralize(word, n, false)
}

type dbConn struct {
	db      *sql.DB
	dsn     string
	engine  string
	tables  []string
	columns map[string][]string // table name -> column names, filled on first lookup
}

func connect(engine, dsn string) (*dbConn, error) {
	p, ok := engines[engine]
	if !ok {
		return nil, fmt.Errorf("no driver for engine %q", engine)
	}
	db, err := sql.Open(p.driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	if engine == "sqlite" {
		// Every connection to :memory: opens a separate database.
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	conn := &dbConn{db: db, dsn: dsn, engine: engine, columns: make(map[string][]string)}
	if err := conn.loadSchema(); err != nil {
		// Completion works without a schema.
		fmt.Fprintf(os.Stderr, "  Note: schema introspection failed: %v\n", err)
	}
	return conn, nil
}

func (c *dbConn) close() error {
	return c.db.Close()
}

// execution is one template materialized and run against the connection.
type execution struct {
	sql       string
	slots     int // placeholder occurrences in the template
	expanded  int // occurrences after collection expansion
	given     int // bindings as bound
	flattened int // bindings after flattening
	columns   []string
	rows      [][]literals.Literal
	truncated bool
}

// run materializes template with m and executes the literal SQL. Cells come
// back as SQL literals, escaped for the connection's engine, so any cell can
// be bound again as typed.
func (c *dbConn) run(m *placeholders.Materializer, template string, binds []any) (*execution, error) {
	res := m.Result(template, binds...)
	text, err := res.SQL()
	if err != nil {
		return nil, err
	}
	expanded, err := res.Expanded()
	if err != nil {
		return nil, err
	}
	ex := &execution{
		sql:       text,
		slots:     res.Slots(),
		expanded:  len(placeholders.Occurrences(expanded, m.Placeholder())),
		given:     len(binds),
		flattened: len(res.Flattened()),
	}

	rows, err := c.db.Query(text)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	f := literals.NewFormatter(literals.WithEscaper(profileFor(c.engine).escape))
	if err := ex.scan(rows, f); err != nil {
		return nil, err
	}
	return ex, nil
}

func (ex *execution) scan(rows *sql.Rows, f *literals.Formatter) error {
	cols, err := rows.Columns()
	if err != nil {
		return fmt.Errorf("columns: %w", err)
	}
	ex.columns = cols

	for rows.Next() {
		if len(ex.rows) == maxRows {
			ex.truncated = true
			break
		}
		cells := make([]any, len(cols))
		dest := make([]any, len(cols))
		for i := range cells {
			dest[i] = &cells[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return fmt.Errorf("scan: %w", err)
		}
		row := make([]literals.Literal, len(cells))
		for i, cell := range cells {
			row[i] = f.Format(cell)
		}
		ex.rows = append(ex.rows, row)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("rows: %w", err)
	}
	return nil
}

// render prints the executed SQL, how the bindings were spread over the
// placeholders, and the result grid.
func (ex *execution) render(w io.Writer) {
	_, _ = fmt.Fprintf(w, "  %s;\n", ex.sql)
	_, _ = fmt.Fprintf(w, "  -- %s expanded to %s, %s flattened to %s\n",
		counted(ex.slots, "placeholder"), counted(ex.expanded, "slot"),
		counted(ex.given, "binding"), counted(ex.flattened, "value"))

	if len(ex.columns) > 0 {
		grid := make([][]string, 0, len(ex.rows)+1)
		grid = append(grid, ex.columns)
		for _, row := range ex.rows {
			line := make([]string, len(row))
			for i, l := range row {
				line[i] = l.SQL()
			}
			grid = append(grid, line)
		}
		widths := gridWidths(grid)
		for i, line := range grid {
			writeGridLine(w, line, widths)
			if i == 0 {
				writeGridRule(w, widths)
			}
		}
	}

	_, _ = fmt.Fprintf(w, "(%s)\n", counted(len(ex.rows), "row"))
	if ex.truncated {
		_, _ = fmt.Fprintf(w, "(stopped after %s)\n", counted(maxRows, "row"))
	}
}

func gridWidths(grid [][]string) []int {
	widths := make([]int, len(grid[0]))
	for _, line := range grid {
		for i, cell := range line {
			widths[i] = max(widths[i], utf8.RuneCountInString(cell))
		}
	}
	return widths
}

func writeGridLine(w io.Writer, line []string, widths []int) {
	cells := make([]string, len(line))
	for i, cell := range line {
		cells[i] = " " + cell + strings.Repeat(" ", widths[i]-utf8.RuneCountInString(cell)) + " "
	}
	_, _ = fmt.Fprintln(w, strings.Join(cells, "|"))
}

func writeGridRule(w io.Writer, widths []int) {
	rules := make([]string, len(widths))
	for i, n := range widths {
		rules[i] = strings.Repeat("-", n+2)
	}
	_, _ = fmt.Fprintln(w, strings.Join(rules, "+"))
}

func (c *dbConn) loadSchema() error {
	tables, err := c.queryNames(profileFor(c.engine).tables)
	if err != nil {
		return err
	}
	c.tables = tables
	return nil
}

func (c *dbConn) schemaTables() []string {
	return c.tables
}

// schemaColumns returns the columns of table, querying once per table.
func (c *dbConn) schemaColumns(table string) []string {
	if cols, ok := c.columns[table]; ok {
		return cols
	}
	cols, err := c.queryNames(profileFor(c.engine).columns, table)
	if err != nil {
		return nil
	}
	c.columns[table] = cols
	return cols
}

func (c *dbConn) queryNames(query string, args ...any) ([]string, error) {
	rows, err := c.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// redactDSN masks the password in URL, ADO (key=value;...) and MySQL
// (user:pass@tcp(...)) style DSNs. Anything else is returned unchanged.
func redactDSN(dsn string) string {
	if u, err := url.Parse(dsn); err == nil && u.Scheme != "" && u.User != nil {
		if _, ok := u.User.Password(); !ok {
			return dsn
		}
		// Built by hand so the mask is not percent-encoded.
		masked := u.Scheme + "://" + u.User.Username() + ":****@" + u.Host + u.Path
		if u.RawQuery != "" {
			masked += "?" + u.RawQuery
		}
		return masked
	}

	if strings.Contains(dsn, ";") || strings.HasPrefix(strings.ToLower(dsn), "password=") {
		pairs := strings.Split(dsn, ";")
		for i, pair := range pairs {
			if key, _, ok := strings.Cut(pair, "="); ok && strings.EqualFold(strings.TrimSpace(key), "password") {
				pairs[i] = key + "=****"
			}
		}
		return strings.Join(pairs, ";")
	}

	if auth, rest, ok := strings.Cut(dsn, "@"); ok && auth != "" {
		if name, _, hasPass := strings.Cut(auth, ":"); hasPass {
			return name + ":****@" + rest
		}
	}
	return dsn
}
