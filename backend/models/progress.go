package models

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"
)

// Skill score awards for completion events.
const (
	LessonPoints = 10
	CoursePoints = 100
	QuizPoints   = 50
)

// Streak bonus applied to session minutes: 10% per streak day, capped at 50%.
const (
	StreakBonusStep = 0.1
	MaxStreakBonus  = 0.5
)

// UserProgress is the per-user progress record. It is created lazily on the
// first stats or session call and holds the time totals, streak counters,
// skill score and the active session marker (at most one per user).
type UserProgress struct {
	gorm.Model
	UserID         uint      `gorm:"uniqueIndex;not null" json:"userId"`
	TotalMinutes   int       `gorm:"default:0" json:"totalMinutes"`
	TodayMinutes   int       `gorm:"default:0" json:"todayMinutes"`
	LastActiveDate time.Time `json:"lastActiveDate"`
	CurrentStreak  int       `gorm:"default:0" json:"currentStreak"`
	LongestStreak  int       `gorm:"default:0" json:"longestStreak"`
	SkillScore     int       `gorm:"default:0" json:"skillScore"`

	SessionStartedAt *time.Time `json:"sessionStartedAt,omitempty"`
	SessionCourseID  *uint      `json:"sessionCourseId,omitempty"`
	SessionLessonID  string     `json:"sessionLessonId,omitempty"`
}

// CourseInProgress tracks one started-but-unfinished course for a user.
// CompletedLessons is stored as a JSON array of lesson IDs.
type CourseInProgress struct {
	gorm.Model
	UserID           uint      `gorm:"index:idx_in_progress_user_course,unique" json:"userId"`
	CourseID         uint      `gorm:"index:idx_in_progress_user_course,unique" json:"courseId"`
	StartedAt        time.Time `json:"startedAt"`
	LastAccessedAt   time.Time `json:"lastAccessedAt"`
	CompletedLessons string    `gorm:"default:'[]'" json:"-"`
	TimeSpent        int       `gorm:"default:0" json:"timeSpent"` // minutes
	Progress         int       `gorm:"default:0" json:"progress"`  // percentage 0-100
}

// CourseCompletion records a finished course. A course ID lives in at most one
// of CourseInProgress and CourseCompletion; promotion is a move, not a copy.
type CourseCompletion struct {
	gorm.Model
	UserID      uint      `gorm:"index:idx_completion_user_course,unique" json:"userId"`
	CourseID    uint      `gorm:"index:idx_completion_user_course,unique" json:"courseId"`
	CompletedAt time.Time `json:"completedAt"`
	TimeSpent   int       `gorm:"default:0" json:"timeSpent"`
}

// QuizCompletion keeps the best score for a passed quiz.
type QuizCompletion struct {
	gorm.Model
	UserID      uint      `gorm:"index:idx_quiz_user_quiz,unique" json:"userId"`
	QuizID      uint      `gorm:"index:idx_quiz_user_quiz,unique" json:"quizId"`
	Score       int       `json:"score"`
	CompletedAt time.Time `json:"completedAt"`
}

// LearningStats is the snapshot returned by the stats endpoint. HoursLearned
// is formatted as "H.D" where D is the minute remainder in tenths of an hour.
type LearningStats struct {
	HoursLearned      string `json:"hoursLearned"`
	TotalMinutes      int    `json:"totalMinutes"`
	TodayMinutes      int    `json:"todayMinutes"`
	CoursesCompleted  int    `json:"coursesCompleted"`
	CoursesInProgress int    `json:"coursesInProgress"`
	CurrentStreak     int    `json:"currentStreak"`
	LongestStreak     int    `json:"longestStreak"`
	SkillScore        int    `json:"skillScore"`
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// UpdateStreak reconciles the streak counters with the calendar. Same day is a
// no-op, exactly one day later extends the streak, anything else (including a
// LastActiveDate in the future) resets it to 1. Any day change also resets
// TodayMinutes. LastActiveDate is always moved to now.
func (p *UserProgress) UpdateStreak(now time.Time) {
	today := truncateToDay(now)
	lastActive := truncateToDay(p.LastActiveDate)
	diffDays := int(today.Sub(lastActive).Hours() / 24)

	switch {
	case diffDays == 0:
		// Same day, streak unchanged.
	case diffDays == 1:
		p.CurrentStreak++
		if p.CurrentStreak > p.LongestStreak {
			p.LongestStreak = p.CurrentStreak
		}
	default:
		p.CurrentStreak = 1
	}

	if diffDays != 0 {
		p.TodayMinutes = 0
	}

	p.LastActiveDate = now
}

// AddSessionTime credits a finished session. Duration is rounded to whole
// minutes and floored at zero. Returns the credited minutes and the skill
// score delta, which includes the streak bonus.
func (p *UserProgress) AddSessionTime(duration float64) (minutes int, delta int) {
	minutes = int(math.Round(duration))
	if minutes < 0 {
		minutes = 0
	}

	p.TotalMinutes += minutes
	p.TodayMinutes += minutes

	bonus := math.Min(float64(p.CurrentStreak)*StreakBonusStep, MaxStreakBonus)
	delta = int(math.Round(float64(minutes) * (1 + bonus)))
	p.SkillScore += delta

	return minutes, delta
}

// StartSession sets the active session marker, replacing any previous one.
func (p *UserProgress) StartSession(courseID uint, lessonID string, now time.Time) {
	startedAt := now
	p.SessionStartedAt = &startedAt
	p.SessionCourseID = &courseID
	p.SessionLessonID = lessonID
}

// ClearSession drops the active session marker.
func (p *UserProgress) ClearSession() {
	p.SessionStartedAt = nil
	p.SessionCourseID = nil
	p.SessionLessonID = ""
}

// CreditSession finishes a session: the duration is credited via
// AddSessionTime and the marker is cleared. The returned course ID is taken
// from the stored marker, never from the request, and is 0 when the session
// had no course. The marker is cleared even when its course no longer has an
// in-progress entry.
func (p *UserProgress) CreditSession(duration float64) (courseID uint, minutes int) {
	minutes, _ = p.AddSessionTime(duration)
	if p.SessionCourseID != nil {
		courseID = *p.SessionCourseID
	}
	p.ClearSession()
	return courseID, minutes
}

// Stats builds the snapshot for the given course counts.
func (p *UserProgress) Stats(inProgress, completed int) LearningStats {
	hours := p.TotalMinutes / 60
	minutes := p.TotalMinutes % 60

	return LearningStats{
		HoursLearned:      fmt.Sprintf("%d.%d", hours, minutes/6),
		TotalMinutes:      p.TotalMinutes,
		TodayMinutes:      p.TodayMinutes,
		CoursesCompleted:  completed,
		CoursesInProgress: inProgress,
		CurrentStreak:     p.CurrentStreak,
		LongestStreak:     p.LongestStreak,
		SkillScore:        p.SkillScore,
	}
}

// LessonIDs decodes the completed lesson set.
func (c *CourseInProgress) LessonIDs() []string {
	var ids []string
	if c.CompletedLessons == "" {
		return []string{}
	}
	if err := json.Unmarshal([]byte(c.CompletedLessons), &ids); err != nil {
		return []string{}
	}
	if ids == nil {
		ids = []string{}
	}
	return ids
}

// AddLesson records a completed lesson. Returns false when the lesson was
// already recorded, so repeated submissions stay silent no-ops.
func (c *CourseInProgress) AddLesson(lessonID string) bool {
	ids := c.LessonIDs()
	for _, id := range ids {
		if id == lessonID {
			return false
		}
	}

	ids = append(ids, lessonID)
	encoded, err := json.Marshal(ids)
	if err != nil {
		return false
	}
	c.CompletedLessons = string(encoded)
	return true
}

// Promote converts a finished entry into its completion record, carrying the
// accumulated time, and returns the course completion bonus. The caller must
// remove the entry in the same transaction; a course ID lives in at most one
// of the two tables.
func (c *CourseInProgress) Promote(now time.Time) (CourseCompletion, int) {
	return CourseCompletion{
		UserID:      c.UserID,
		CourseID:    c.CourseID,
		CompletedAt: now,
		TimeSpent:   c.TimeSpent,
	}, CoursePoints
}

// RecordScore applies best-score-wins: the stored score and timestamp move
// only when the new score is strictly greater.
func (q *QuizCompletion) RecordScore(score int, now time.Time) bool {
	if score <= q.Score {
		return false
	}
	q.Score = score
	q.CompletedAt = now
	return true
}

// ApplyQuizResult decides what a quiz submission does to the stored
// completions. A failed first attempt records nothing. A passed first attempt
// creates the completion and earns the quiz bonus. Retries against an
// existing completion follow best-score-wins and never earn points again.
// Returns the row to persist (nil when nothing changes) and the points earned.
func ApplyQuizResult(existing *QuizCompletion, userID, quizID uint, score int, passed bool, now time.Time) (*QuizCompletion, int) {
	if existing != nil {
		if existing.RecordScore(score, now) {
			return existing, 0
		}
		return nil, 0
	}
	if !passed {
		return nil, 0
	}
	return &QuizCompletion{
		UserID:      userID,
		QuizID:      quizID,
		Score:       score,
		CompletedAt: now,
	}, QuizPoints
}
