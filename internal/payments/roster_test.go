package payments

import (
	"math"
	"testing"
	"time"
)

func sampleRows() []Row {
	return []Row{
		{CollaboratorID: "1", Name: "Ana Souza", Paid: []bool{true, true, false}},
		{CollaboratorID: "2", Name: "Bruno Lima", Paid: []bool{false, false, false}},
		{CollaboratorID: "3", Name: "Carla Ana", Paid: []bool{true, false, false}},
	}
}

func TestSummarize(t *testing.T) {
	f := Summarize(sampleRows(), 3, DefaultMonthlyFee)
	if f.Collaborators != 3 || f.PaidMonths != 3 {
		t.Fatalf("Summarize = %+v, want 3 collaborators and 3 paid months", f)
	}
	if f.TotalDue != 9*DefaultMonthlyFee {
		t.Fatalf("TotalDue = %d, want %d", f.TotalDue, 9*DefaultMonthlyFee)
	}
	if f.TotalCollected != 3*DefaultMonthlyFee {
		t.Fatalf("TotalCollected = %d, want %d", f.TotalCollected, 3*DefaultMonthlyFee)
	}
	if math.Abs(f.PercentPaid-100.0/3) > 1e-9 {
		t.Fatalf("PercentPaid = %v, want 33.33", f.PercentPaid)
	}
}

func TestSummarize_Empty(t *testing.T) {
	f := Summarize(nil, 5, DefaultMonthlyFee)
	if f.TotalDue != 0 || f.TotalCollected != 0 || f.PercentPaid != 0 || f.Collaborators != 0 {
		t.Fatalf("Summarize(nil) = %+v, want zero totals", f)
	}
}

func TestRowPaidAmount(t *testing.T) {
	r := sampleRows()[0]
	if got := r.PaidAmount(DefaultMonthlyFee); got != 2*DefaultMonthlyFee {
		t.Fatalf("PaidAmount = %d, want %d", got, 2*DefaultMonthlyFee)
	}
}

func TestFilter(t *testing.T) {
	rows := sampleRows()
	cases := []struct {
		name   string
		query  string
		status StatusFilter
		want   []string
	}{
		{"all", "", StatusAll, []string{"1", "2", "3"}},
		{"name is case-insensitive", "  ANA ", StatusAll, []string{"1", "3"}},
		{"with payment", "", StatusWithPayment, []string{"1", "3"}},
		{"without payment", "", StatusWithoutPayment, []string{"2"}},
		{"combined", "lima", StatusWithPayment, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Filter(rows, tc.query, tc.status)
			if len(got) != len(tc.want) {
				t.Fatalf("Filter = %d rows, want %d", len(got), len(tc.want))
			}
			for i, r := range got {
				if r.CollaboratorID != tc.want[i] {
					t.Fatalf("row %d = %s, want %s", i, r.CollaboratorID, tc.want[i])
				}
			}
		})
	}
}

func TestStatusFilterCycle(t *testing.T) {
	f := StatusAll
	seen := []string{f.String()}
	for i := 0; i < 3; i++ {
		f = f.Next()
		seen = append(seen, f.String())
	}
	want := []string{"Todos", "Com pagamento", "Sem pagamento", "Todos"}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("cycle = %v, want %v", seen, want)
		}
	}
}

func TestParseStatusFilter(t *testing.T) {
	for _, f := range []StatusFilter{StatusAll, StatusWithPayment, StatusWithoutPayment} {
		if got := ParseStatusFilter(f.String()); got != f {
			t.Errorf("ParseStatusFilter(%q) = %v, want %v", f.String(), got, f)
		}
	}
	if got := ParseStatusFilter(" sem PAGAMENTO "); got != StatusWithoutPayment {
		t.Errorf("case-insensitive parse = %v", got)
	}
	if got := ParseStatusFilter("whatever"); got != StatusAll {
		t.Errorf("unknown label = %v, want StatusAll", got)
	}
}

func TestCloneRows(t *testing.T) {
	rows := sampleRows()
	clone := CloneRows(rows)
	clone[0].Paid[0] = false
	if !rows[0].Paid[0] {
		t.Fatal("CloneRows shares Paid slices")
	}
	if CloneRows(nil) != nil {
		t.Fatal("CloneRows(nil) should be nil")
	}
}

func TestMonthHelpers(t *testing.T) {
	if got := MonthLabel("agosto_pago"); got != "Agosto" {
		t.Fatalf("MonthLabel = %q, want Agosto", got)
	}
	if got := MonthLabel("março_pago"); got != "Março" {
		t.Fatalf("MonthLabel = %q, want Março", got)
	}
	if got := MonthNumber("Dezembro_pago"); got != 12 {
		t.Fatalf("MonthNumber = %d, want 12", got)
	}
	if got := MonthNumber("bonus"); got != 0 {
		t.Fatalf("MonthNumber(bonus) = %d, want 0", got)
	}
}

func TestStatusMessage(t *testing.T) {
	october := time.Date(2025, time.October, 15, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		name   string
		paid   bool
		column string
		want   string
	}{
		{"paid", true, "dezembro_pago", MessagePaid},
		{"past month unpaid", false, "agosto_pago", MessageOverdue},
		{"current month unpaid", false, "outubro_pago", MessageOverdue},
		{"future month unpaid", false, "novembro_pago", MessageUpcoming},
		{"unknown column", false, "extra", MessageOverdue},
	}
	for _, tc := range cases {
		if got := StatusMessage(tc.paid, tc.column, october); got != tc.want {
			t.Errorf("%s: StatusMessage = %q, want %q", tc.name, got, tc.want)
		}
	}
}
