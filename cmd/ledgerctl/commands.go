package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/dafibh/fortuna/ledger-backend/internal/config"
	"github.com/dafibh/fortuna/ledger-backend/internal/domain"
	"github.com/dafibh/fortuna/ledger-backend/internal/repository"
	"github.com/dafibh/fortuna/ledger-backend/internal/service"
	"github.com/google/subcommands"
)

var commands = []subcommands.Command{
	&migrateCmd{},
	&monthCmd{},
	&summaryCmd{},
	&setStatusCmd{},
}

// openLedger opens the configured store and builds a ledger service on top of it
func openLedger(ctx context.Context) (*service.LedgerService, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	store, err := repository.Open(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	ledger := service.NewLedgerService(store.Templates, store.Statuses, store.Categories, service.SystemClock{})
	return ledger, store.Close, nil
}

// monthFlags is the -y/-m pair shared by month-scoped commands. Zero means current.
type monthFlags struct {
	year  int
	month int
}

func (m *monthFlags) register(f *flag.FlagSet) {
	f.IntVar(&m.year, "y", 0, "Year (defaults to the current year).")
	f.IntVar(&m.month, "m", 0, "Month 1-12 (defaults to the current month).")
}

func (m *monthFlags) resolve(now time.Time) (int, int) {
	year, month := m.year, m.month
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}
	return year, month
}

type migrateCmd struct{}

func (*migrateCmd) Name() string     { return "migrate" }
func (*migrateCmd) Synopsis() string { return "apply pending database migrations" }
func (*migrateCmd) Usage() string {
	return `ledgerctl migrate

  Applies every pending migration to the store named by STORE_BACKEND.
  Only the postgres and sqlite backends carry migrations.
`
}
func (*migrateCmd) SetFlags(*flag.FlagSet) {}

func (*migrateCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := repository.Migrate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error applying migrations: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("%s store is up to date\n", cfg.StoreBackend)
	return subcommands.ExitSuccess
}

type monthCmd struct {
	monthFlags
}

func (*monthCmd) Name() string     { return "month" }
func (*monthCmd) Synopsis() string { return "list the occurrences of a month" }
func (*monthCmd) Usage() string {
	return `ledgerctl month [-y <year>] [-m <month>]

  Lists every one-time and recurring occurrence of the month, most recent
  first, with its effective status.
`
}
func (c *monthCmd) SetFlags(f *flag.FlagSet) { c.register(f) }

func (c *monthCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, closeFn, err := openLedger(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer closeFn()

	year, month := c.resolve(time.Now())
	occurrences, err := ledger.OccurrencesForMonth(ctx, year, month)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	writeOccurrences(os.Stdout, occurrences)
	return subcommands.ExitSuccess
}

type summaryCmd struct {
	monthFlags
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "summarize the totals of a month" }
func (*summaryCmd) Usage() string {
	return `ledgerctl summary [-y <year>] [-m <month>]

  Prints income, expenses, the paid ratio and the expense breakdown by
  category for the month.
`
}
func (c *summaryCmd) SetFlags(f *flag.FlagSet) { c.register(f) }

func (c *summaryCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, closeFn, err := openLedger(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer closeFn()

	year, month := c.resolve(time.Now())
	summary, err := ledger.SummarizeMonth(ctx, year, month)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	writeSummary(os.Stdout, summary)
	return subcommands.ExitSuccess
}

type setStatusCmd struct {
	monthFlags
	id      int
	status  string
	cleared bool
}

func (*setStatusCmd) Name() string     { return "set-status" }
func (*setStatusCmd) Synopsis() string { return "record the status of a template for one month" }
func (*setStatusCmd) Usage() string {
	return `ledgerctl set-status -id <template> [-y <year>] [-m <month>] -status <pending|paid|cleared> [-cleared]

  Records a per-month status for the template. The template's own status
  and every other month are left untouched.
`
}

func (c *setStatusCmd) SetFlags(f *flag.FlagSet) {
	c.register(f)
	f.IntVar(&c.id, "id", 0, "Template id.")
	f.StringVar(&c.status, "status", string(domain.StatusPaid), "Status to record.")
	f.BoolVar(&c.cleared, "cleared", false, "Mark the month as cleared.")
}

func (c *setStatusCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id <= 0 {
		fmt.Fprintln(os.Stderr, "-id is required")
		return subcommands.ExitUsageError
	}

	ledger, closeFn, err := openLedger(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer closeFn()

	year, month := c.resolve(time.Now())
	override, err := ledger.SetMonthlyStatus(ctx, domain.SetMonthlyStatusInput{
		TemplateID: int32(c.id),
		Year:       year,
		Month:      month,
		Status:     domain.TransactionStatus(c.status),
		IsCleared:  c.cleared,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("template %d %04d-%02d: %s (cleared=%t)\n",
		override.TemplateID, override.Year, override.Month, override.Status, override.IsCleared)
	return subcommands.ExitSuccess
}

func writeOccurrences(w io.Writer, occurrences []*domain.Occurrence) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tID\tTYPE\tAMOUNT\tSTATUS\tCLEARED\tKIND\tDESCRIPTION")
	for _, o := range occurrences {
		kind := "literal"
		if o.Virtual {
			kind = string(o.Template.Recurrence)
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%t\t%s\t%s\n",
			o.OccurrenceDate.Format(time.DateOnly),
			o.Template.ID,
			o.Template.Type,
			o.Template.Amount.StringFixed(2),
			o.EffectiveStatus,
			o.EffectiveCleared,
			kind,
			o.Template.Description,
		)
	}
	tw.Flush()
}

func writeSummary(w io.Writer, s *domain.MonthlySummary) {
	fmt.Fprintf(w, "%04d-%02d\n", s.Year, s.Month)
	fmt.Fprintf(w, "  income:    %s\n", s.Income.StringFixed(2))
	fmt.Fprintf(w, "  expenses:  %s\n", s.Expenses.StringFixed(2))
	fmt.Fprintf(w, "  remaining: %s\n", s.Remaining.StringFixed(2))
	fmt.Fprintf(w, "  paid:      %d/%d (%d%%)\n", s.PaidTransactions, s.TotalTransactions, s.PercentPaid)

	if len(s.Categories) == 0 {
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "\nCATEGORY\tAMOUNT\tSHARE")
	for _, c := range s.Categories {
		fmt.Fprintf(tw, "%s\t%s\t%d%%\n", c.Name, c.Amount.StringFixed(2), c.Percentage)
	}
	tw.Flush()
}
