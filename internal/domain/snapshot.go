package domain

// Snapshot is one user's complete view of tasks, slots and reminder settings.
// Values are treated as immutable: the With* helpers return a new snapshot and
// leave the receiver untouched.
type Snapshot struct {
	UserID string
	Tasks  []Task
	Slots  []ScheduleSlot
	Config NotificationConfig
}

// Task looks up a task by ID.
func (s Snapshot) Task(id string) (Task, bool) {
	for _, t := range s.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

// Slot looks up a slot by ID.
func (s Snapshot) Slot(id string) (ScheduleSlot, bool) {
	for _, sl := range s.Slots {
		if sl.ID == id {
			return sl, true
		}
	}
	return ScheduleSlot{}, false
}

// SlotAt returns the slot occupying the (date, startTime) pair, if any.
func (s Snapshot) SlotAt(date, startTime string) (ScheduleSlot, bool) {
	for _, sl := range s.Slots {
		if sl.Date == date && sl.StartTime == startTime {
			return sl, true
		}
	}
	return ScheduleSlot{}, false
}

// WithTask replaces the task with the same ID, or appends it.
func (s Snapshot) WithTask(t Task) Snapshot {
	tasks := make([]Task, 0, len(s.Tasks)+1)
	replaced := false
	for _, cur := range s.Tasks {
		if cur.ID == t.ID {
			tasks = append(tasks, t)
			replaced = true
			continue
		}
		tasks = append(tasks, cur)
	}
	if !replaced {
		tasks = append(tasks, t)
	}
	s.Tasks = tasks
	return s
}

// WithSlot replaces the slot with the same ID, or appends it.
func (s Snapshot) WithSlot(sl ScheduleSlot) Snapshot {
	slots := make([]ScheduleSlot, 0, len(s.Slots)+1)
	replaced := false
	for _, cur := range s.Slots {
		if cur.ID == sl.ID {
			slots = append(slots, sl)
			replaced = true
			continue
		}
		slots = append(slots, cur)
	}
	if !replaced {
		slots = append(slots, sl)
	}
	s.Slots = slots
	return s
}

// WithoutTask removes the task and every slot that references it.
func (s Snapshot) WithoutTask(id string) Snapshot {
	tasks := make([]Task, 0, len(s.Tasks))
	for _, t := range s.Tasks {
		if t.ID != id {
			tasks = append(tasks, t)
		}
	}
	slots := make([]ScheduleSlot, 0, len(s.Slots))
	for _, sl := range s.Slots {
		if sl.TaskID != id {
			slots = append(slots, sl)
		}
	}
	s.Tasks = tasks
	s.Slots = slots
	return s
}

// WithoutSlot removes the slot with the given ID.
func (s Snapshot) WithoutSlot(id string) Snapshot {
	slots := make([]ScheduleSlot, 0, len(s.Slots))
	for _, sl := range s.Slots {
		if sl.ID != id {
			slots = append(slots, sl)
		}
	}
	s.Slots = slots
	return s
}
