package model

import "time"

// EstablishDays is the completed-day count at which a habit counts as
// established and the one-time establishment bonus fires.
const EstablishDays = 66

type HabitDay struct {
	Date      time.Time `bson:"date" json:"date"`
	Completed bool      `bson:"completed" json:"completed"`
}

// HabitTask is the snapshot of the underlying task embedded in a habit,
// plus the per-day completion flag reset at every day boundary.
type HabitTask struct {
	Task        `bson:",inline"`
	Complete    bool      `bson:"complete" json:"complete"`
	CompletedAt time.Time `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
}

type Habit struct {
	HabitID        string     `bson:"_id" json:"id"`
	UserID         string     `bson:"user_id" json:"user_id"`
	Title          string     `bson:"title" json:"title" binding:"required"`
	Reason         string     `bson:"reason" json:"reason"`
	Task           HabitTask  `bson:"task" json:"task"`
	Streak         int        `bson:"streak" json:"streak"`
	LongestStreak  int        `bson:"longest_streak" json:"longest_streak"`
	CompletedToday bool       `bson:"completed_today" json:"completed_today"`
	CompletedDays  []HabitDay `bson:"completed_days" json:"completed_days"`
	EstablishedAt  time.Time  `bson:"established_at,omitempty" json:"established_at,omitempty"`
	CreatedAt      time.Time  `bson:"created_at" json:"created_at"`
}

// Established reports whether the one-time establishment bonus already fired.
func (h *Habit) Established() bool {
	return !h.EstablishedAt.IsZero()
}

// CompletedDayCount counts entries actually marked completed; missed-day
// resets clear forward progress but never this history.
func (h *Habit) CompletedDayCount() int {
	n := 0
	for _, d := range h.CompletedDays {
		if d.Completed {
			n++
		}
	}
	return n
}

// LastCompletedDay returns the most recent completed entry, if any.
func (h *Habit) LastCompletedDay() (time.Time, bool) {
	for i := len(h.CompletedDays) - 1; i >= 0; i-- {
		if h.CompletedDays[i].Completed {
			return h.CompletedDays[i].Date, true
		}
	}
	return time.Time{}, false
}
