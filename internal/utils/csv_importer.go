package utils

import (
	"bufio"
	"context"
	"encoding/csv"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ArowuTest/voting-whitelist-loader/internal/models"
	"github.com/ArowuTest/voting-whitelist-loader/internal/repositories"
)

var (
	// ErrMissingColumn is returned when the header lacks the Aadhaar column.
	ErrMissingColumn = errors.New("required column not found in CSV header")
	// ErrEmptyFile is returned when the CSV has no header row.
	ErrEmptyFile = errors.New("CSV file is empty")
)

// ImportResult holds the counters of a whitelist import
type ImportResult struct {
	Rows       int
	Inserted   int
	Duplicates int
	Errors     int
	Failures   []RowFailure
}

// RowFailure describes a row counted as an error. Line is the 1-based
// line in the CSV file.
type RowFailure struct {
	Line   int
	Value  string
	Reason string
}

func (r *ImportResult) fail(line int, value, reason string) {
	r.Errors++
	r.Failures = append(r.Failures, RowFailure{Line: line, Value: value, Reason: reason})
}

// WhitelistImporter loads Aadhaar numbers from CSV into the whitelist
type WhitelistImporter struct {
	repo      repositories.WhitelistRepository
	column    string
	opTimeout time.Duration
	logger    *logrus.Logger
	now       func() time.Time
}

// NewWhitelistImporter creates a new WhitelistImporter. column is the
// header name holding the numbers; opTimeout bounds each upsert.
func NewWhitelistImporter(
	repo repositories.WhitelistRepository,
	column string,
	opTimeout time.Duration,
	logger *logrus.Logger,
) *WhitelistImporter {
	return &WhitelistImporter{
		repo:      repo,
		column:    column,
		opTimeout: opTimeout,
		logger:    logger,
		now:       time.Now,
	}
}

// ImportFile imports the whitelist from the CSV file at filePath
func (i *WhitelistImporter) ImportFile(ctx context.Context, filePath string) (*ImportResult, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open file")
	}
	defer file.Close()

	return i.Import(ctx, file)
}

// Import reads CSV records from r and upserts every valid Aadhaar number.
// Header problems abort before any row is processed; row problems are
// counted and skipped.
func (i *WhitelistImporter) Import(ctx context.Context, r io.Reader) (*ImportResult, error) {
	reader := csv.NewReader(stripUTF8BOM(bufio.NewReader(r)))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to read header")
	}

	idx := findColumnIndex(header, i.column)
	if idx == -1 {
		return nil, errors.Wrapf(ErrMissingColumn, "CSV file must have an '%s' column", i.column)
	}

	result := &ImportResult{}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if !errors.As(err, &parseErr) {
				return result, errors.Wrap(err, "failed to read CSV")
			}
			result.Rows++
			result.fail(parseErr.StartLine, "", parseErr.Err.Error())
			i.logger.WithField("line", parseErr.StartLine).Warnf("Skipping malformed row: %v", parseErr.Err)
			continue
		}
		result.Rows++
		line, _ := reader.FieldPos(0)

		if idx >= len(row) {
			result.fail(line, "", "missing value")
			i.logger.WithField("line", line).Warn("Skipping row without an Aadhaar number")
			continue
		}

		aadhaarNumber := strings.TrimSpace(row[idx])
		if !ValidateAadhaar(aadhaarNumber) {
			result.fail(line, aadhaarNumber, "invalid format")
			i.logger.WithField("line", line).Warnf("Skipping invalid Aadhaar number: %s", aadhaarNumber)
			continue
		}

		inserted, err := i.insert(ctx, aadhaarNumber)
		if err != nil {
			result.fail(line, aadhaarNumber, err.Error())
			i.logger.WithFields(logrus.Fields{
				"line":          line,
				"aadhaarNumber": aadhaarNumber,
			}).Errorf("Error inserting Aadhaar number %s: %v", aadhaarNumber, err)
			continue
		}
		if inserted {
			result.Inserted++
		} else {
			result.Duplicates++
			i.logger.WithField("line", line).Debugf("Aadhaar number %s already whitelisted", aadhaarNumber)
		}
	}

	i.logger.Infof("Upload complete: %d inserted, %d duplicates, %d errors",
		result.Inserted, result.Duplicates, result.Errors)
	return result, nil
}

func (i *WhitelistImporter) insert(ctx context.Context, aadhaarNumber string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, i.opTimeout)
	defer cancel()

	return i.repo.InsertIfAbsent(ctx, models.NewWhitelistEntry(aadhaarNumber, i.now()))
}

// findColumnIndex finds the index of a column by its exact name,
// ignoring surrounding whitespace in the header
func findColumnIndex(header []string, name string) int {
	for i, h := range header {
		if strings.TrimSpace(h) == name {
			return i
		}
	}
	return -1
}

func stripUTF8BOM(r *bufio.Reader) *bufio.Reader {
	b, err := r.Peek(3)
	if err == nil && len(b) == 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		_, _ = r.Discard(3)
	}
	return r
}
