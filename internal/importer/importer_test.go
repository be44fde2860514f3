package importer

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var importNow = time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)

func ptrInt(v int) *int           { return &v }
func ptrFloat(v float64) *float64 { return &v }

func validSchema() *PlanSchema {
	return &PlanSchema{
		Tasks: []TaskImport{
			{Ref: "thesis", Title: "Thesis", EstimatedHours: 20, Deadline: "2025-07-01", DeadlineTime: "17:00",
				Progress: ptrInt(25), TimeSpent: ptrFloat(6)},
			{Ref: "essay", Title: "Essay", EstimatedHours: 4, Deadline: "2025-06-20"},
		},
		Slots: []SlotImport{
			{TaskRef: "thesis", Date: "2025-06-16", Hour: 9},
			{TaskRef: "thesis", Date: "2025-06-16", Hour: 10, Recorded: true},
			{TaskRef: "essay", Date: "2025-06-17", Hour: 14},
		},
	}
}

func TestValidatePlanSchema_Valid(t *testing.T) {
	assert.Empty(t, ValidatePlanSchema(validSchema()))
}

func TestValidatePlanSchema_CollectsEveryError(t *testing.T) {
	schema := &PlanSchema{
		Tasks: []TaskImport{
			{Ref: "a", Title: "", EstimatedHours: 0, Deadline: "June"},
			{Ref: "a", Title: "Dup", EstimatedHours: 1, Deadline: "2025-06-20", DeadlineTime: "25:00", Progress: ptrInt(120)},
		},
		Slots: []SlotImport{
			{TaskRef: "missing", Date: "2025-06-16", Hour: 9},
			{TaskRef: "a", Date: "2025-06-16", Hour: 9},
			{TaskRef: "a", Date: "2025-06-16", Hour: 24},
		},
	}

	errs := ValidatePlanSchema(schema)
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Error())
	}

	assert.Contains(t, msgs, "tasks[0].title is required")
	assert.Contains(t, msgs, "tasks[0].estimated_hours must be positive")
	assert.Contains(t, msgs, `tasks[1].ref "a" is used twice`)
	assert.Contains(t, msgs, "tasks[1].progress must be 0-100, got 120")
	assert.Contains(t, msgs, `slots[0].task_ref "missing" does not name a task`)
	assert.Contains(t, msgs, "slots[1]: 2025-06-16 09:00 is booked twice")
	assert.Contains(t, msgs, "slots[2].hour must be 0-23, got 24")
	assert.Len(t, errs, 9)
}

func TestValidatePlanSchema_NoTasks(t *testing.T) {
	errs := ValidatePlanSchema(&PlanSchema{})
	require.Len(t, errs, 1)
}

func TestConvert(t *testing.T) {
	plan, err := Convert(validSchema(), "user-1", importNow)
	require.NoError(t, err)

	require.Len(t, plan.Tasks, 2)
	thesis := plan.Tasks[0]
	assert.NotEmpty(t, thesis.ID)
	assert.Equal(t, "user-1", thesis.UserID)
	assert.Equal(t, 25, thesis.Progress)
	assert.Equal(t, 6.0, thesis.TimeSpent)
	assert.False(t, thesis.Completed)
	assert.Equal(t, importNow, thesis.UpdatedAt)

	require.Len(t, plan.Slots, 3)
	assert.Equal(t, thesis.ID, plan.Slots[0].TaskID)
	assert.Equal(t, "09:00", plan.Slots[0].StartTime)
	assert.True(t, plan.Slots[1].Recorded)
	assert.Equal(t, plan.Tasks[1].ID, plan.Slots[2].TaskID)
}

func TestConvert_FullProgressCompletes(t *testing.T) {
	schema := &PlanSchema{Tasks: []TaskImport{
		{Ref: "x", Title: "Done already", EstimatedHours: 2, Deadline: "2025-06-20", Progress: ptrInt(100)},
	}}
	plan, err := Convert(schema, "user-1", importNow)
	require.NoError(t, err)
	assert.True(t, plan.Tasks[0].Completed)
}

func TestLoadPlanSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
  "tasks": [{"ref": "t1", "title": "Read", "estimated_hours": 3, "deadline": "2025-06-20"}],
  "slots": [{"task_ref": "t1", "date": "2025-06-16", "hour": 9}]
}`), 0o600))

	schema, err := LoadPlanSchema(path)
	require.NoError(t, err)
	require.Len(t, schema.Tasks, 1)
	assert.Equal(t, "Read", schema.Tasks[0].Title)
	require.Len(t, schema.Slots, 1)
	assert.Equal(t, 9, schema.Slots[0].Hour)
}

func TestParsePlanSchema_RejectsUnknownFields(t *testing.T) {
	_, err := ParsePlanSchema([]byte(`{"tasks": [], "projects": []}`))
	assert.Error(t, err)
}

func TestLoadPlanSchema_Missing(t *testing.T) {
	_, err := LoadPlanSchema(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
