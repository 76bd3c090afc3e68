package patterns

// Default signature catalogs. These are versioned configuration data passed
// into the detector, not implicit global state: callers may replace or
// extend them with catalogs loaded from files.

// DefaultPatternCatalog returns the built-in design-pattern signatures
func DefaultPatternCatalog() []Signature {
	return []Signature{
		{
			Name:     "Tower Service",
			Keywords: []string{"ServiceBuilder", "tower::"},
			Imports:  []string{"tower", "tower_http", "tower_service"},
			Traits:   []string{"Service<Request>", "tower::Service"},
		},
		{
			Name:     "Actor Model",
			Keywords: []string{"Addr<", "Handler<", "Recipient<"},
			Imports:  []string{"actix", "actix_web", "xactor", "ractor"},
		},
		{
			Name:     "ECS (Entity-Component-System)",
			Keywords: []string{"Query<", "Commands", "Res<", "ResMut<"},
			Imports:  []string{"bevy_ecs", "specs", "legion", "hecs"},
		},
		{
			Name: "Type-State",
			Patterns: []string{
				`struct\s+\w+<\w+>`,
				`impl\s+\w+<\w+>`,
				`fn\s+\w+\(self\)\s*->\s*\w+<\w+>`,
			},
		},
		{
			Name:     "Builder",
			Keywords: []string{"Builder", "build()", "with_", "set_"},
			Patterns: []string{
				`fn\s+builder\s*\(`,
				`fn\s+build\s*\(self\)`,
				`fn\s+with_\w+\s*\(self`,
			},
		},
		{
			Name:     "Error Handling (thiserror)",
			Imports:  []string{"thiserror"},
			Patterns: []string{`#\[derive\([^)]*Error[^)]*\)\]`},
		},
		{
			Name:     "Error Handling (anyhow)",
			Imports:  []string{"anyhow"},
			Keywords: []string{".context(", "anyhow!", "bail!"},
		},
		{
			Name:     "Async/Await Runtime",
			Imports:  []string{"tokio", "async_std", "smol"},
			Keywords: []string{"#[tokio::main]", "#[async_std::main]", "async fn", ".await"},
		},
		{
			Name:     "CRDT",
			Keywords: []string{"CRDT", "Replica", "Merge", "conflictfree"},
			Imports:  []string{"crdt", "yrs", "automerge"},
		},
	}
}

// DefaultStyleCatalog returns the built-in architecture-style signatures.
// Multi-Crate Workspace and Modular Monolith carry descriptions only; they
// are detected through workspace-shape heuristics, never the generic scorer.
func DefaultStyleCatalog() []Signature {
	return []Signature{
		{
			Name:        StyleModularMonolith,
			Description: "Single crate with well-organized internal modules by domain",
		},
		{
			Name:        StyleMultiCrateWorkspace,
			Description: "Multiple crates in a workspace, each with specific responsibility",
		},
		{
			Name:        "Plugin Architecture",
			Description: "Core system with extensible plugin-based functionality",
			Keywords:    []string{"plugin", "Plugin", "add_plugin", "PluginGroup"},
		},
		{
			Name:        "Hexagonal/Ports-Adapters",
			Description: "Domain logic separated from infrastructure through traits (pluggable storage)",
			Keywords:    []string{"port", "adapter", "domain", "infrastructure", "Storage", "Backend"},
		},
		{
			Name:        "Event-Driven",
			Description: "Components communicate through events and messages",
			Keywords:    []string{"Event", "EventReader", "EventWriter", "on_event", "emit"},
		},
		{
			Name:        "Actor Model",
			Description: "Concurrent computation using actors with message mailboxes",
			Keywords:    []string{"actix", "xactor", "ractor", "Addr<", "Handler<"},
		},
		{
			Name:        "Reactor/Proactor",
			Description: "Async I/O with event loop (Tokio, async-std style)",
			Keywords:    []string{"Future", "Poll::", "Waker", "async fn", ".await", "executor"},
		},
		{
			Name:        "Work-Stealing Scheduler",
			Description: "Load-balanced task scheduling across worker threads",
			Keywords:    []string{"work_steal", "multi_thread", "Runtime::new", "tokio::runtime"},
		},
		{
			Name:        "ECS (Entity-Component-System)",
			Description: "Data-oriented design with entities, components, and systems",
			Keywords:    []string{"bevy_ecs", "specs", "legion", "hecs", "World", "Query<"},
		},
	}
}
