package tui

import "github.com/jask/bankconsole/internal/journal"

type (
	statusMsg         string
	journalMsg        []journal.Entry
	journalClearedMsg struct{}
	errMsg            struct{ error }
)
