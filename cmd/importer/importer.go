package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/roadto100k/internal/domain/profit"
	"github.com/riskibarqy/roadto100k/internal/platform/logging"
	"github.com/riskibarqy/roadto100k/internal/usecase"
	"github.com/shopspring/decimal"
)

type entryAdder interface {
	AddEntry(ctx context.Context, input usecase.AddEntryInput) (profit.Entry, error)
}

type importRow struct {
	Line  int
	Input usecase.AddEntryInput
}

type rowFailure struct {
	Line int
	Err  error
}

type importResult struct {
	Imported int
	Failed   int
	Failures []rowFailure
}

// readRows parses user_id,amount,date records. The header line is optional and date may be empty.
func readRows(r io.Reader) ([]importRow, []rowFailure, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var (
		rows     []importRow
		failures []rowFailure
		line     int
	)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, nil, fmt.Errorf("read csv line %d: %w", line, err)
		}
		if line == 1 && strings.EqualFold(strings.TrimSpace(record[0]), "user_id") {
			continue
		}
		if len(record) < 2 || len(record) > 3 {
			failures = append(failures, rowFailure{Line: line, Err: fmt.Errorf("%w: expected user_id,amount[,date]", usecase.ErrInvalidInput)})
			continue
		}

		amount, err := decimal.NewFromString(strings.TrimSpace(record[1]))
		if err != nil {
			failures = append(failures, rowFailure{Line: line, Err: fmt.Errorf("%w: amount %q", usecase.ErrInvalidInput, record[1])})
			continue
		}

		input := usecase.AddEntryInput{
			UserID: strings.TrimSpace(record[0]),
			Amount: amount,
		}
		if len(record) == 3 {
			input.Date = strings.TrimSpace(record[2])
		}
		rows = append(rows, importRow{Line: line, Input: input})
	}

	return rows, failures, nil
}

// importRows appends every row through the entry use case on a bounded pool.
// A failing row never stops the others.
func importRows(ctx context.Context, adder entryAdder, rows []importRow, workerCount int, logger *logging.Logger) (importResult, error) {
	if workerCount < 1 {
		workerCount = 1
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return importResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		imported atomic.Int32
		mu       sync.Mutex
		failures []rowFailure
		workers  sync.WaitGroup
	)

	for _, row := range rows {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			entry, err := adder.AddEntry(ctx, row.Input)
			if err != nil {
				mu.Lock()
				failures = append(failures, rowFailure{Line: row.Line, Err: err})
				mu.Unlock()
				return
			}
			imported.Add(1)
			logger.DebugContext(ctx, "row imported", "line", row.Line, "entry_id", entry.ID)
		}); err != nil {
			workers.Done()
			workers.Wait()
			return importResult{}, fmt.Errorf("submit row %d to worker pool: %w", row.Line, err)
		}
	}

	workers.Wait()

	sort.Slice(failures, func(i, j int) bool { return failures[i].Line < failures[j].Line })

	return importResult{
		Imported: int(imported.Load()),
		Failed:   len(failures),
		Failures: failures,
	}, nil
}
