package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/pacer/internal/db"
	"github.com/alexanderramin/pacer/internal/importer"
	"github.com/alexanderramin/pacer/internal/repository"
)

type importService struct {
	uow db.UnitOfWork
	settings
}

func NewImportService(uow db.UnitOfWork, opts ...Option) ImportService {
	return &importService{uow: uow, settings: newSettings(opts)}
}

func (s *importService) ImportFile(ctx context.Context, userID, path string) (*ImportResult, error) {
	schema, err := importer.LoadPlanSchema(path)
	if err != nil {
		return nil, invalid(err)
	}
	return s.ImportSchema(ctx, userID, schema)
}

// ImportSchema validates the schema, then writes every task and slot in a
// single transaction. A slot that collides with an existing booking rolls
// the whole import back.
func (s *importService) ImportSchema(ctx context.Context, userID string, schema *importer.PlanSchema) (result *ImportResult, err error) {
	startedAt := time.Now()
	fields := map[string]any{"user_id": userID}
	defer func() { observe(ctx, s.observer, "import-plan", startedAt, fields, err) }()

	if userID == "" {
		return nil, invalid(errors.New("user id is required"))
	}
	if errs := importer.ValidatePlanSchema(schema); len(errs) > 0 {
		return nil, invalid(formatValidationErrors(errs))
	}

	plan, err := importer.Convert(schema, userID, s.clock())
	if err != nil {
		return nil, fmt.Errorf("converting import schema: %w", err)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteTaskRepo(tx)
		txSlots := repository.NewSQLiteScheduleRepo(tx)

		for _, t := range plan.Tasks {
			if err := txTasks.Create(ctx, t); err != nil {
				return fmt.Errorf("creating task %q: %w", t.Title, err)
			}
		}
		for _, sl := range plan.Slots {
			if err := txSlots.Create(ctx, sl); err != nil {
				if errors.Is(err, repository.ErrConflict) {
					return fmt.Errorf("%w: %s %s", ErrSlotTaken, sl.Date, sl.StartTime)
				}
				return fmt.Errorf("creating slot %s %s: %w", sl.Date, sl.StartTime, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result = &ImportResult{TaskCount: len(plan.Tasks), SlotCount: len(plan.Slots)}
	fields["tasks"] = result.TaskCount
	fields["slots"] = result.SlotCount
	s.changes.Changed(ctx, userID)
	return result, nil
}

func formatValidationErrors(errs []error) error {
	var b strings.Builder
	fmt.Fprintf(&b, "import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		b.WriteString("\n  - " + e.Error())
	}
	return errors.New(b.String())
}
