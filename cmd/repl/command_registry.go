package main

import (
	"errors"
	"sort"
	"strings"
)

// commandEntry maps a REPL prefix to its handler and optional tab-completer.
type commandEntry struct {
	prefix    string
	handler   func(args string) error
	completer func(args string) (completionContext, string) // nil = no arg completion
	hidden    bool                                          // excluded from commandNames()
}

// initCommands builds the command registry and sorts by prefix length descending.
func (s *Session) initCommands() {
	s.commands = []commandEntry{
		// --- template ---
		{prefix: "sql ", handler: func(a string) error { return s.cmdTemplate(a) }, completer: completeTemplateArgs},
		{prefix: "template ", handler: func(a string) error { return s.cmdTemplate(a) }, completer: completeTemplateArgs},
		{prefix: "placeholder ", handler: func(a string) error { return s.cmdPlaceholder(a) }},
		{prefix: "placeholder", handler: func(_ string) error { return errors.New("usage: placeholder <token>") }},

		// --- bindings ---
		{prefix: "bind ", handler: func(a string) error { return s.cmdBind(a) }, completer: completeValueArgs},
		{prefix: "binds ", handler: func(a string) error { return s.cmdBinds(a) }, completer: completeValueArgs},
		{prefix: "binds", handler: func(_ string) error { return s.cmdBinds("") }, hidden: true},
		{prefix: "unbind", handler: func(_ string) error { return s.cmdUnbind() }},
		{prefix: "bindings", handler: func(_ string) error { return s.cmdBindings() }},
		{prefix: "flatten", handler: func(_ string) error { return s.cmdFlatten() }},

		// --- output ---
		{prefix: "sql", handler: func(_ string) error { return s.cmdSQL() }},
		{prefix: "materialize", handler: func(_ string) error { return s.cmdSQL() }},
		{prefix: "show", handler: func(_ string) error { return s.cmdSQL() }, hidden: true},
		{prefix: "expand", handler: func(_ string) error { return s.cmdExpand() }},
		{prefix: "format ", handler: func(a string) error { return s.cmdFormat(a) }, completer: completeValueArgs},
		{prefix: "columns ", handler: func(a string) error { return s.cmdColumns(a) }, completer: completeColumnArgs},
		{prefix: "escape", handler: func(_ string) error { return s.cmdEscape() }},
		{prefix: "status", handler: func(_ string) error { return s.cmdStatus() }},
		{prefix: "reset", handler: func(_ string) error { return s.cmdReset() }},
		{prefix: "help", handler: func(_ string) error { s.cmdHelp(); return nil }},

		// --- database connectivity ---
		{prefix: "connect ", handler: func(a string) error { return s.cmdConnect(a) }},
		{prefix: "connect", handler: func(_ string) error { return s.cmdConnect("") }},
		{prefix: "disconnect", handler: func(_ string) error { return s.cmdDisconnect() }},
		{prefix: "exec", handler: func(_ string) error { return s.cmdExec() }},
		{prefix: "run", handler: func(_ string) error { return s.cmdExec() }},

		// --- engine ---
		{prefix: "engine ", handler: func(a string) error { return s.cmdEngine(a) }, completer: completeEngineArgs},
	}

	// Sort by prefix length descending so longest prefixes match first.
	sort.Slice(s.commands, func(i, j int) bool {
		return len(s.commands[i].prefix) > len(s.commands[j].prefix)
	})
}

// commandNames derives the command name list from the registry for tab completion.
func (s *Session) commandNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, cmd := range s.commands {
		if cmd.hidden {
			continue
		}
		name := strings.TrimRight(cmd.prefix, " ")
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	// exit/quit are handled by the REPL loop, not Execute().
	for _, extra := range []string{"exit", "quit"} {
		if !seen[extra] {
			names = append(names, extra)
		}
	}
	sort.Strings(names)
	return names
}

// --- Shared completion helpers ---

// completeTemplateArgs completes table names after FROM/JOIN/INTO/UPDATE and
// column references elsewhere in a template.
func completeTemplateArgs(args string) (completionContext, string) {
	last := lastToken(args)
	if strings.HasSuffix(args, " ") {
		last = ""
	}
	fields := strings.Fields(strings.ToLower(args))
	if last != "" && len(fields) > 0 {
		fields = fields[:len(fields)-1]
	}
	prev := ""
	if len(fields) > 0 {
		prev = fields[len(fields)-1]
	}
	switch prev {
	case "from", "join", "into", "update", "table":
		return contextTableName, last
	}
	return contextColumnRef, last
}

// completeColumnArgs handles completion for the columns command.
func completeColumnArgs(args string) (completionContext, string) {
	if strings.HasSuffix(args, " ") {
		return contextColumnRef, ""
	}
	return contextColumnRef, lastToken(args)
}

// completeValueArgs completes the value keywords (null, date, nullif, ...).
func completeValueArgs(args string) (completionContext, string) {
	if strings.HasSuffix(args, " ") {
		return contextValue, ""
	}
	last := lastToken(args)
	if i := strings.LastIndexAny(last, "[("); i >= 0 {
		last = last[i+1:]
	}
	return contextValue, last
}

// completeEngineArgs handles completion for the engine command.
func completeEngineArgs(args string) (completionContext, string) {
	return contextEngine, strings.TrimSpace(args)
}
