package storage

// Observer is notified when a table it registered against transitions
// between empty and non-empty. Queries use this to schedule or skip tables.
// Callbacks are synchronous and must not mutate the table being activated.
type Observer interface {
	ActivateTable(t *Table, active bool)
}

// RemovalNotifier is invoked before entity state is discarded in bulk, for
// example when a table is deinitialized or merged into no destination. It
// covers count rows starting at row.
type RemovalNotifier func(t *Table, d *TableData, row int, count int)
