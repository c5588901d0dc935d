package ledger

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/jonesrussell/lead-intake/internal/logger"
	"github.com/jonesrussell/lead-intake/internal/models"
)

// leadIDColumn is the index of lead_id in models.SheetColumns.
const leadIDColumn = 1

// SheetsLedger writes lead rows to a Google Sheet. Rows are append-only;
// this service never updates existing rows.
type SheetsLedger struct {
	svc     *sheets.Service
	sheetID string
	logger  logger.Logger
}

// NewSheetsLedger builds a ledger backed by the first worksheet of the
// spreadsheet at sheetID, authenticated with the given service account JSON.
func NewSheetsLedger(ctx context.Context, credentialsJSON []byte, sheetID string, log logger.Logger) (*SheetsLedger, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsJSON(credentialsJSON),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &SheetsLedger{
		svc:     svc,
		sheetID: sheetID,
		logger:  log,
	}, nil
}

// AppendLead appends exactly one row for the record, first ensuring the
// header row exists. Missing column keys render as empty cells.
func (l *SheetsLedger) AppendLead(ctx context.Context, record models.LeadRecord) error {
	if err := l.ensureHeader(ctx); err != nil {
		return fmt.Errorf("ensure header row: %w", err)
	}

	row := make([]any, len(models.SheetColumns))
	for i, col := range models.SheetColumns {
		row[i] = record[col]
	}

	_, err := l.svc.Spreadsheets.Values.
		Append(l.sheetID, "A1", &sheets.ValueRange{Values: [][]any{row}}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append lead row: %w", err)
	}

	return nil
}

// GetLeadByID scans the sheet for the row whose lead_id column matches.
// Failures are swallowed and reported as not-found.
func (l *SheetsLedger) GetLeadByID(ctx context.Context, leadID string) (models.LeadRecord, error) {
	resp, err := l.svc.Spreadsheets.Values.
		Get(l.sheetID, lookupRange()).
		Context(ctx).
		Do()
	if err != nil {
		l.logger.Debug("Lead lookup failed",
			logger.String("lead_id", leadID),
			logger.Error(err),
		)
		return nil, ErrNotFound
	}

	for _, row := range resp.Values {
		if len(row) > leadIDColumn && cellString(row[leadIDColumn]) == leadID {
			return recordFromRow(row), nil
		}
	}

	return nil, ErrNotFound
}

// ensureHeader inserts the fixed column list as row one if it is missing or
// does not match.
func (l *SheetsLedger) ensureHeader(ctx context.Context) error {
	resp, err := l.svc.Spreadsheets.Values.
		Get(l.sheetID, "1:1").
		Context(ctx).
		Do()
	if err == nil && headerMatches(resp.Values) {
		return nil
	}

	insertReq := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			InsertDimension: &sheets.InsertDimensionRequest{
				Range: &sheets.DimensionRange{
					Dimension:  "ROWS",
					StartIndex: 0,
					EndIndex:   1,
				},
			},
		}},
	}
	if _, err := l.svc.Spreadsheets.BatchUpdate(l.sheetID, insertReq).Context(ctx).Do(); err != nil {
		return fmt.Errorf("insert header row: %w", err)
	}

	header := make([]any, len(models.SheetColumns))
	for i, col := range models.SheetColumns {
		header[i] = col
	}

	_, err = l.svc.Spreadsheets.Values.
		Update(l.sheetID, "A1", &sheets.ValueRange{Values: [][]any{header}}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("write header row: %w", err)
	}

	return nil
}

func headerMatches(values [][]any) bool {
	if len(values) == 0 || len(values[0]) < len(models.SheetColumns) {
		return false
	}
	for i, col := range models.SheetColumns {
		if cellString(values[0][i]) != col {
			return false
		}
	}
	return true
}

func recordFromRow(row []any) models.LeadRecord {
	record := make(models.LeadRecord, len(models.SheetColumns))
	for i, col := range models.SheetColumns {
		if i < len(row) {
			record[col] = cellString(row[i])
		} else {
			record[col] = ""
		}
	}
	return record
}

func cellString(cell any) string {
	s, _ := cell.(string)
	return s
}

// lookupRange spans every ledger column, derived from the column list so the
// range tracks schema changes.
func lookupRange() string {
	return "A:" + columnLetter(len(models.SheetColumns))
}

// columnLetter converts a 1-based column number to its A1 letter form.
func columnLetter(n int) string {
	letters := ""
	for n > 0 {
		n--
		letters = string(rune('A'+n%26)) + letters
		n /= 26
	}
	return letters
}
