package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/keyhaven/lockbox-service/internal/dtos"
	"github.com/keyhaven/lockbox-service/internal/models"
	"github.com/keyhaven/lockbox-service/internal/repositories"
	"github.com/keyhaven/lockbox-service/internal/utils"
)

// Required CSV headers, lowercase. "notes" is the only optional column.
var requiredHeaders = []string{"propertyname", "unitnumber", "lockboxlocation", "lockboxcode"}

/*
MissingHeadersError rejects a structurally unusable CSV. Missing lists every
absent required header, not just the first.
*/
type MissingHeadersError struct {
	Missing []string
}

func (e *MissingHeadersError) Error() string {
	return fmt.Sprintf("csv missing required headers: %s", strings.Join(e.Missing, ", "))
}

/*
BatchValidationError rejects the whole import when any data row fails
validation. Rows carries every collected row error; no writes were performed.
*/
type BatchValidationError struct {
	Rows []dtos.RowErrorDTO
}

func (e *BatchValidationError) Error() string {
	return fmt.Sprintf("csv validation failed for %d row(s)", len(e.Rows))
}

// csvRow holds one data row mapped from the header's column positions.
// Row numbers in errors count data rows (1-based); the header is row 0.
type csvRow struct {
	PropertyName    string `validate:"required"`
	UnitNumber      string `validate:"required"`
	LockboxLocation string `validate:"required"`
	LockboxCode     string `validate:"required"`
	Notes           *string
}

// fieldLabels maps struct field names to the wire-level names surfaced in
// row errors.
var fieldLabels = map[string]string{
	"PropertyName":    "propertyName",
	"UnitNumber":      "unitNumber",
	"LockboxLocation": "lockboxLocation",
	"LockboxCode":     "lockboxCode",
}

/*
ImportService turns raw CSV text into upserted entries.

Parsing is deliberately naive — positional comma split, no quoted-field or
embedded-comma handling — matching the documented file format. The batch is
all-or-nothing at the validation stage: any bad row rejects the whole file
with the full error list. The write stage is sequential and non-atomic: one
lookup plus one write per row, so a crash mid-import leaves a partial set of
rows applied. The summary says so explicitly.
*/
type ImportService interface {
	Import(ctx context.Context, userID uuid.UUID, content string) (*dtos.ImportSummaryResponse, error)
}

type importService struct {
	repo     repositories.LockboxEntryRepository
	validate *validator.Validate
}

func NewImportService(repo repositories.LockboxEntryRepository) ImportService {
	return &importService{
		repo:     repo,
		validate: validator.New(),
	}
}

func (s *importService) Import(ctx context.Context, userID uuid.UUID, content string) (*dtos.ImportSummaryResponse, error) {
	rows, err := s.parse(content)
	if err != nil {
		return nil, err
	}

	inserted, updated := 0, 0
	for i := range rows {
		row := &rows[i]
		existing, err := s.repo.FindByPropertyAndUnit(ctx, userID, row.PropertyName, row.UnitNumber)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			upd := repositories.EntryUpdate{
				LockboxLocation: &row.LockboxLocation,
				LockboxCode:     &row.LockboxCode,
				Notes:           row.Notes,
			}
			if err := s.repo.Update(ctx, userID, existing.ID, upd); err != nil {
				return nil, err
			}
			updated++
		} else {
			e := &models.LockboxEntry{
				ID:              uuid.New(),
				UserID:          userID,
				PropertyName:    row.PropertyName,
				UnitNumber:      row.UnitNumber,
				LockboxLocation: row.LockboxLocation,
				LockboxCode:     row.LockboxCode,
				Notes:           row.Notes,
			}
			if err := s.repo.Create(ctx, e); err != nil {
				return nil, err
			}
			inserted++
		}
	}

	utils.Logger.Infof("CSV import for user %s: %d inserted, %d updated", userID, inserted, updated)

	return &dtos.ImportSummaryResponse{
		Inserted: inserted,
		Updated:  updated,
		Atomic:   false,
	}, nil
}

func (s *importService) parseRows(lines []string, idx map[string]int) ([]csvRow, []dtos.RowErrorDTO) {
	var (
		rows    []csvRow
		rowErrs []dtos.RowErrorDTO
	)

	pick := func(values []string, col int) string {
		if col < 0 || col >= len(values) {
			return ""
		}
		return strings.TrimSpace(values[col])
	}

	for i := 1; i < len(lines); i++ {
		values := strings.Split(lines[i], ",")
		row := csvRow{
			PropertyName:    pick(values, idx["propertyname"]),
			UnitNumber:      pick(values, idx["unitnumber"]),
			LockboxLocation: pick(values, idx["lockboxlocation"]),
			LockboxCode:     pick(values, idx["lockboxcode"]),
		}
		if notesCol, ok := idx["notes"]; ok {
			if notes := pick(values, notesCol); notes != "" {
				row.Notes = &notes
			}
		}

		if err := s.validate.Struct(row); err != nil {
			var fields []dtos.FieldErrorDTO
			for _, fe := range err.(validator.ValidationErrors) {
				fields = append(fields, dtos.FieldErrorDTO{
					Field:   fieldLabels[fe.Field()],
					Message: "is required",
				})
			}
			rowErrs = append(rowErrs, dtos.RowErrorDTO{Row: i, Fields: fields})
			continue
		}
		rows = append(rows, row)
	}
	return rows, rowErrs
}

// parse validates structure and every data row before anything is written.
// It returns the validated rows or one of ErrCSVEmpty, *MissingHeadersError,
// *BatchValidationError.
func (s *importService) parse(content string) ([]csvRow, error) {
	var lines []string
	for _, line := range strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) < 2 {
		return nil, utils.ErrCSVEmpty
	}

	headers := strings.Split(lines[0], ",")
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}

	var missing []string
	for _, h := range requiredHeaders {
		if _, ok := idx[h]; !ok {
			missing = append(missing, h)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingHeadersError{Missing: missing}
	}

	rows, rowErrs := s.parseRows(lines, idx)
	if len(rowErrs) > 0 {
		return nil, &BatchValidationError{Rows: rowErrs}
	}
	return rows, nil
}
