package payments

import "strings"

// Row is one collaborator of the payment roster. Paid is aligned with the
// month columns the source was configured with.
type Row struct {
	CollaboratorID string
	Name           string
	Paid           []bool
}

// PaidCount returns how many months the collaborator has paid.
func (r Row) PaidCount() int {
	n := 0
	for _, p := range r.Paid {
		if p {
			n++
		}
	}
	return n
}

// PaidAmount is the total paid by the collaborator at fee per month.
func (r Row) PaidAmount(fee Cents) Cents {
	return Cents(r.PaidCount()) * fee
}

// Financials aggregates the roster.
type Financials struct {
	Collaborators  int
	Months         int
	PaidMonths     int
	TotalDue       Cents
	TotalCollected Cents
	PercentPaid    float64
}

// Summarize computes the totals for rows tracked over months columns.
func Summarize(rows []Row, months int, fee Cents) Financials {
	f := Financials{Collaborators: len(rows), Months: months}
	if len(rows) == 0 || months <= 0 {
		return f
	}
	for _, r := range rows {
		f.PaidMonths += r.PaidCount()
	}
	slots := months * len(rows)
	f.TotalDue = Cents(slots) * fee
	f.TotalCollected = Cents(f.PaidMonths) * fee
	f.PercentPaid = float64(f.PaidMonths) / float64(slots) * 100
	return f
}

// StatusFilter narrows the roster by payment state.
type StatusFilter int

const (
	StatusAll StatusFilter = iota
	StatusWithPayment
	StatusWithoutPayment
)

// String returns the label shown in the UI.
func (f StatusFilter) String() string {
	switch f {
	case StatusWithPayment:
		return "Com pagamento"
	case StatusWithoutPayment:
		return "Sem pagamento"
	default:
		return "Todos"
	}
}

// ParseStatusFilter is the inverse of String. Unknown labels mean StatusAll.
func ParseStatusFilter(label string) StatusFilter {
	for _, f := range []StatusFilter{StatusWithPayment, StatusWithoutPayment} {
		if strings.EqualFold(strings.TrimSpace(label), f.String()) {
			return f
		}
	}
	return StatusAll
}

// Next cycles through the filters.
func (f StatusFilter) Next() StatusFilter {
	switch f {
	case StatusAll:
		return StatusWithPayment
	case StatusWithPayment:
		return StatusWithoutPayment
	default:
		return StatusAll
	}
}

// Filter keeps rows whose name contains query (case-insensitive) and that
// match status. The input slice is not modified.
func Filter(rows []Row, query string, status StatusFilter) []Row {
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if query != "" && !strings.Contains(strings.ToLower(r.Name), query) {
			continue
		}
		paid := r.PaidCount() > 0
		if status == StatusWithPayment && !paid {
			continue
		}
		if status == StatusWithoutPayment && paid {
			continue
		}
		out = append(out, r)
	}
	return out
}

// CloneRows deep-copies rows.
func CloneRows(rows []Row) []Row {
	if len(rows) == 0 {
		return nil
	}
	out := make([]Row, len(rows))
	for i, r := range rows {
		out[i] = r
		out[i].Paid = append([]bool(nil), r.Paid...)
	}
	return out
}
