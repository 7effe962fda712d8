package model

import (
	"fmt"
	"strings"
	"time"
)

// Role is the access level stored on a user and carried in session tokens.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
	StatusCancelled  TaskStatus = "cancelled"
)

// Priority orders tasks within a due date.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// TaskType separates scheduled upkeep from repairs.
type TaskType string

const (
	TaskPreventive TaskType = "preventive"
	TaskReactive   TaskType = "reactive"
)

// AreaType classifies shared building spaces.
type AreaType string

const (
	AreaCommon  AreaType = "common"
	AreaService AreaType = "service"
)

// AssetLocation says whether an asset sits in an apartment or an area.
type AssetLocation string

const (
	LocationApartment AssetLocation = "apartment"
	LocationArea      AssetLocation = "area"
)

// Frequency is the recurrence of a preventive schedule.
type Frequency string

const (
	FrequencyDaily      Frequency = "daily"
	FrequencyWeekly     Frequency = "weekly"
	FrequencyMonthly    Frequency = "monthly"
	FrequencyQuarterly  Frequency = "quarterly"
	FrequencySemiannual Frequency = "semiannual"
	FrequencyAnnual     Frequency = "annual"
)

// InvalidValueError reports a value outside a closed set.
type InvalidValueError struct {
	Field string
	Value string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid %s: %q", e.Field, e.Value)
}

func parseEnum[T ~string](field, raw string, allowed ...T) (T, error) {
	v := T(strings.ToLower(strings.TrimSpace(raw)))
	for _, a := range allowed {
		if v == a {
			return v, nil
		}
	}
	return "", &InvalidValueError{Field: field, Value: raw}
}

func ParseRole(s string) (Role, error) {
	return parseEnum("role", s, RoleAdmin, RoleStaff)
}

func ParseTaskStatus(s string) (TaskStatus, error) {
	return parseEnum("status", s, StatusPending, StatusInProgress, StatusCompleted, StatusCancelled)
}

func ParsePriority(s string) (Priority, error) {
	return parseEnum("priority", s, PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent)
}

func ParseTaskType(s string) (TaskType, error) {
	return parseEnum("task_type", s, TaskPreventive, TaskReactive)
}

func ParseAreaType(s string) (AreaType, error) {
	return parseEnum("area_type", s, AreaCommon, AreaService)
}

func ParseAssetLocation(s string) (AssetLocation, error) {
	return parseEnum("area_type", s, LocationApartment, LocationArea)
}

func ParseFrequency(s string) (Frequency, error) {
	return parseEnum("frequency", s, FrequencyDaily, FrequencyWeekly, FrequencyMonthly,
		FrequencyQuarterly, FrequencySemiannual, FrequencyAnnual)
}

// DateLayout is the calendar date format used for every date column.
const DateLayout = "2006-01-02"

// ParseDate checks that s is a calendar date in DateLayout.
func ParseDate(field, s string) (string, error) {
	s = strings.TrimSpace(s)
	if _, err := time.Parse(DateLayout, s); err != nil {
		return "", &InvalidValueError{Field: field, Value: s}
	}
	return s, nil
}
