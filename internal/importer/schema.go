package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

const maxImportFileSize = 4 << 20

// PlanSchema is the top-level JSON structure of a task plan import.
type PlanSchema struct {
	Tasks []TaskImport `json:"tasks"`
	Slots []SlotImport `json:"slots,omitempty"`
}

// TaskImport defines a task in the import file. Ref is only meaningful
// inside the file; stored tasks get fresh IDs.
type TaskImport struct {
	Ref            string   `json:"ref"`
	Title          string   `json:"title"`
	EstimatedHours float64  `json:"estimated_hours"`
	Deadline       string   `json:"deadline"`
	DeadlineTime   string   `json:"deadline_time,omitempty"`
	Progress       *int     `json:"progress,omitempty"`
	TimeSpent      *float64 `json:"time_spent,omitempty"`
	Photos         []string `json:"photos,omitempty"`
}

// SlotImport books one hour for the task named by TaskRef.
type SlotImport struct {
	TaskRef  string `json:"task_ref"`
	Date     string `json:"date"`
	Hour     int    `json:"hour"`
	Recorded bool   `json:"recorded,omitempty"`
}

// LoadPlanSchema reads and parses a JSON import file. Unknown fields are
// rejected so typos surface instead of being dropped.
func LoadPlanSchema(path string) (*PlanSchema, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading import file: %w", err)
	}
	if info.Size() > maxImportFileSize {
		return nil, fmt.Errorf("import file %s exceeds %d bytes", path, maxImportFileSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading import file: %w", err)
	}
	return ParsePlanSchema(data)
}

func ParsePlanSchema(data []byte) (*PlanSchema, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var schema PlanSchema
	if err := dec.Decode(&schema); err != nil {
		return nil, fmt.Errorf("parsing import JSON: %w", err)
	}
	return &schema, nil
}
