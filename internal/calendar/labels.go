package calendar

import (
	"fmt"
	"time"
)

// monthNames holds the pt-BR month names used as ledger column labels.
var monthNames = [...]string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

// PeriodLabel maps a date to the ledger column label for its billing
// period. The canonical format is the bare pt-BR month name; the label the
// orchestrator writes must equal the label the ledger columns carry, or
// every lookup silently misses.
func PeriodLabel(d time.Time) string {
	return monthNames[d.Month()-1]
}

// PeriodLabelWithYear is the "Month/Year" variant of the label, kept for
// ledgers migrating to year-qualified columns. The jobs do not use it.
func PeriodLabelWithYear(d time.Time) string {
	return fmt.Sprintf("%s/%d", PeriodLabel(d), d.Year())
}
