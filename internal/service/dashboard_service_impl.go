package service

import (
	"context"

	"github.com/alexanderramin/pacer/internal/domain"
	"github.com/alexanderramin/pacer/internal/forecast"
	"github.com/alexanderramin/pacer/internal/reminder"
	"github.com/alexanderramin/pacer/internal/repository"
)

type dashboardService struct {
	tasks repository.TaskRepo
	slots repository.ScheduleRepo
	settings
}

func NewDashboardService(tasks repository.TaskRepo, slots repository.ScheduleRepo, opts ...Option) DashboardService {
	return &dashboardService{tasks: tasks, slots: slots, settings: newSettings(opts)}
}

func (s *dashboardService) Today(ctx context.Context, userID string) (*TodayView, error) {
	snap, err := loadSnapshot(ctx, s.tasks, s.slots, userID)
	if err != nil {
		return nil, err
	}
	now := s.clock()
	view := &TodayView{Date: domain.DateOf(now)}
	for _, g := range reminder.GroupToday(snap, now) {
		task, ok := snap.Task(g.TaskID)
		if !ok {
			continue
		}
		entry := TodayEntry{
			Task:           task,
			Slots:          g.Slots,
			FirstStartTime: g.FirstStartTime,
			TargetDelta:    reminder.TargetDelta(snap, task.ID),
		}
		open := g.Unrecorded()
		entry.AllRecorded = len(open) == 0
		if !entry.AllRecorded {
			entry.NextSlotID = open[0].ID
		}
		view.Entries = append(view.Entries, entry)
	}
	return view, nil
}

// Status recomputes the forecast for every task. Tasks keep the repository
// order (earliest deadline first).
func (s *dashboardService) Status(ctx context.Context, userID string) (*StatusView, error) {
	snap, err := loadSnapshot(ctx, s.tasks, s.slots, userID)
	if err != nil {
		return nil, err
	}
	summary := forecast.Summarize(snap)
	view := &StatusView{Summary: summary, Tasks: make([]StatusTask, 0, len(snap.Tasks))}
	for _, t := range snap.Tasks {
		view.Tasks = append(view.Tasks, StatusTask{Task: t, Forecast: summary.Tasks[t.ID]})
	}
	return view, nil
}
