package service

import (
	"errors"

	"github.com/alexanderramin/pacer/internal/planner"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrSlotTaken    = planner.ErrSlotTaken
	ErrNoOpenSlot   = errors.New("no open slot today")
)
