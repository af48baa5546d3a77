package application

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"presence/internal/domain/entities"
	"presence/internal/ports/input"
	"presence/internal/ports/output"
	"presence/pkg/csvq"
)

var _ input.ReportUseCase = (*ReportService)(nil)

// inFilterLimit is the document-store cap on "in" membership filters.
// Event ids are chunked into batches of this size and results merged.
const inFilterLimit = 10

var csvHeader = []string{
	"Event Name", "Attendee Name", "Email", "Date", "Time",
	"Latitude", "Longitude", "Accuracy (m)",
}

// ReportService joins the previous calendar month's events to their
// attendance records, renders the CSV and dispatches it by email. A run
// either completes fully or surfaces an error; partial CSV output never
// reaches the transport.
type ReportService struct {
	eventRepo      output.EventRepository
	attendanceRepo output.AttendanceRepository
	mailer         output.Mailer
	clock          output.Clock
	from           string
	recipient      string
	loc            *time.Location
	logger         *zap.SugaredLogger
}

func NewReportService(
	eventRepo output.EventRepository,
	attendanceRepo output.AttendanceRepository,
	mailer output.Mailer,
	clock output.Clock,
	from, recipient string,
	loc *time.Location,
	logger *zap.SugaredLogger,
) *ReportService {
	return &ReportService{
		eventRepo:      eventRepo,
		attendanceRepo: attendanceRepo,
		mailer:         mailer,
		clock:          clock,
		from:           from,
		recipient:      recipient,
		loc:            loc,
		logger:         logger,
	}
}

// RunNow generates and sends the report for the previous calendar
// month. Re-running the same window sends the report again; avoiding
// double delivery is the scheduler's job.
func (s *ReportService) RunNow(ctx context.Context) (*input.ReportOutcome, error) {
	from, to := previousMonthWindow(s.clock.Now().In(s.loc))
	return s.run(ctx, from, to)
}

func (s *ReportService) run(ctx context.Context, from, to time.Time) (*input.ReportOutcome, error) {
	events, err := s.eventRepo.FindCreatedBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("report: query events: %w", err)
	}
	outcome := &input.ReportOutcome{WindowStart: from, WindowEnd: to}
	if len(events) == 0 {
		s.logger.Infow("aucun événement dans la période du rapport",
			"from", from, "to", to)
		return outcome, nil
	}

	names := make(map[string]string, len(events))
	ids := make([]string, 0, len(events))
	for _, ev := range events {
		ids = append(ids, ev.ID)
		names[ev.ID] = ev.Name
	}

	records, err := s.collectAttendance(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("report: query attendance: %w", err)
	}

	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, csvHeader)
	for _, r := range records {
		rows = append(rows, s.row(names, r))
	}
	csv := csvq.Render(rows)

	monthName := from.Format("January 2006")
	filename := "attendance_report_" + strings.ReplaceAll(monthName, " ", "_") + ".csv"
	msg := output.Message{
		From:     s.from,
		To:       s.recipient,
		Subject:  "Monthly Attendance Report - " + monthName,
		BodyText: s.body(monthName, len(events), len(records), from, to),
		Attachments: []output.Attachment{{
			Filename:    filename,
			Content:     []byte(csv),
			ContentType: "text/csv",
		}},
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return nil, fmt.Errorf("report: send email: %w", err)
	}

	outcome.EventCount = len(events)
	outcome.RecordCount = len(records)
	outcome.Filename = filename
	outcome.Sent = true
	s.logger.Infow("📧 Rapport de présence envoyé",
		"events", len(events), "records", len(records), "to", s.recipient)
	return outcome, nil
}

// collectAttendance fetches records for all event ids, chunked to stay
// under the store's "in" filter limit.
func (s *ReportService) collectAttendance(ctx context.Context, ids []string) ([]entities.AttendanceRecord, error) {
	var out []entities.AttendanceRecord
	for start := 0; start < len(ids); start += inFilterLimit {
		end := start + inFilterLimit
		if end > len(ids) {
			end = len(ids)
		}
		batch, err := s.attendanceRepo.FindByEventIDs(ctx, ids[start:end])
		if err != nil {
			return nil, err
		}
		out = append(out, batch...)
	}
	return out, nil
}

func (s *ReportService) row(names map[string]string, r entities.AttendanceRecord) []string {
	name, ok := names[r.EventID]
	if !ok {
		name = r.EventID
	}
	at := r.CheckedInAt.In(s.loc)
	return []string{
		name,
		r.UserName,
		r.UserEmail,
		at.Format("02/01/2006"),
		at.Format("15:04"),
		formatFloat(r.Location.Lat),
		formatFloat(r.Location.Lng),
		formatFloat(r.Location.Accuracy),
	}
}

func (s *ReportService) body(monthName string, events, records int, from, to time.Time) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Please find attached the attendance report for %s.\n\n", monthName)
	sb.WriteString("Summary:\n")
	fmt.Fprintf(&sb, "- Total Events: %d\n", events)
	fmt.Fprintf(&sb, "- Total Attendance Records: %d\n", records)
	fmt.Fprintf(&sb, "- Report Period: %s to %s\n\n", from.Format("02/01/2006"), to.Format("02/01/2006"))
	fmt.Fprintf(&sb, "This is an automated report generated on %s.",
		s.clock.Now().In(s.loc).Format("02/01/2006 15:04"))
	return sb.String()
}

// previousMonthWindow returns the first and last instant (inclusive) of
// the calendar month before now, in now's location.
func previousMonthWindow(now time.Time) (time.Time, time.Time) {
	firstOfThis := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	from := firstOfThis.AddDate(0, -1, 0)
	to := firstOfThis.Add(-time.Nanosecond)
	return from, to
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
