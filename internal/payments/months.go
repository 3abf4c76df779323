package payments

import (
	"strings"
	"time"
)

// Status messages shown for a collaborator and month.
const (
	MessagePaid     = "Orgulho do Silvio"
	MessageOverdue  = "Qual a dificuldade?"
	MessageUpcoming = "Tá no orçamento?"
)

var monthNumbers = map[string]int{
	"janeiro":   1,
	"fevereiro": 2,
	"marco":     3,
	"março":     3,
	"abril":     4,
	"maio":      5,
	"junho":     6,
	"julho":     7,
	"agosto":    8,
	"setembro":  9,
	"outubro":   10,
	"novembro":  11,
	"dezembro":  12,
}

func monthKey(column string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(column)), "_pago")
}

// MonthNumber maps a column such as "agosto_pago" to its calendar month, or
// 0 when the column does not name a month.
func MonthNumber(column string) int {
	return monthNumbers[monthKey(column)]
}

// MonthLabel turns "agosto_pago" into "Agosto".
func MonthLabel(column string) string {
	key := monthKey(column)
	if key == "" {
		return ""
	}
	r := []rune(key)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}

// StatusMessage describes one payment cell. Unpaid months up to the current
// one are overdue; later months are still upcoming.
func StatusMessage(paid bool, column string, now time.Time) string {
	if paid {
		return MessagePaid
	}
	month := MonthNumber(column)
	if month == 0 || month <= int(now.Month()) {
		return MessageOverdue
	}
	return MessageUpcoming
}
