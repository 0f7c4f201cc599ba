package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUpdateStreakSameDay(t *testing.T) {
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	progress := UserProgress{
		LastActiveDate: base,
		CurrentStreak:  3,
		LongestStreak:  5,
		TodayMinutes:   42,
	}

	progress.UpdateStreak(base.Add(8 * time.Hour))

	assert.Equal(t, 3, progress.CurrentStreak)
	assert.Equal(t, 5, progress.LongestStreak)
	assert.Equal(t, 42, progress.TodayMinutes, "same day must keep today's minutes")
	assert.Equal(t, base.Add(8*time.Hour), progress.LastActiveDate)
}

func TestUpdateStreakConsecutiveDay(t *testing.T) {
	base := time.Date(2025, 3, 10, 23, 30, 0, 0, time.UTC)
	progress := UserProgress{
		LastActiveDate: base,
		CurrentStreak:  3,
		LongestStreak:  3,
		TodayMinutes:   42,
	}

	// 23:30 to 00:15 next day is still a one-day difference.
	progress.UpdateStreak(base.Add(45 * time.Minute))

	assert.Equal(t, 4, progress.CurrentStreak)
	assert.Equal(t, 4, progress.LongestStreak, "longest streak follows current when exceeded")
	assert.Equal(t, 0, progress.TodayMinutes, "day change resets today's minutes")
}

func TestUpdateStreakMonotonicOverDays(t *testing.T) {
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	progress := UserProgress{
		LastActiveDate: start,
		CurrentStreak:  1,
		LongestStreak:  1,
	}

	for day := 1; day <= 10; day++ {
		progress.UpdateStreak(start.AddDate(0, 0, day))
		assert.Equal(t, 1+day, progress.CurrentStreak)
		assert.GreaterOrEqual(t, progress.LongestStreak, progress.CurrentStreak)
	}
}

func TestUpdateStreakBrokenByGap(t *testing.T) {
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	progress := UserProgress{
		LastActiveDate: base,
		CurrentStreak:  17,
		LongestStreak:  17,
		TodayMinutes:   10,
	}

	progress.UpdateStreak(base.AddDate(0, 0, 2))

	assert.Equal(t, 1, progress.CurrentStreak, "a gap of two or more days resets the streak")
	assert.Equal(t, 17, progress.LongestStreak)
	assert.Equal(t, 0, progress.TodayMinutes)
}

func TestUpdateStreakFutureLastActive(t *testing.T) {
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	progress := UserProgress{
		LastActiveDate: base.AddDate(0, 0, 3),
		CurrentStreak:  7,
		LongestStreak:  9,
		TodayMinutes:   5,
	}

	progress.UpdateStreak(base)

	assert.Equal(t, 1, progress.CurrentStreak, "a clock moving backwards is treated as a broken streak")
	assert.Equal(t, 0, progress.TodayMinutes)
	assert.Equal(t, base, progress.LastActiveDate)
}

func TestAddSessionTimeDayOne(t *testing.T) {
	progress := UserProgress{CurrentStreak: 1}

	minutes, delta := progress.AddSessionTime(30)

	assert.Equal(t, 30, minutes)
	assert.Equal(t, 33, delta, "streak of 1 gives a 10% bonus: round(30 * 1.1)")
	assert.Equal(t, 30, progress.TotalMinutes)
	assert.Equal(t, 30, progress.TodayMinutes)
	assert.Equal(t, 33, progress.SkillScore)
}

func TestAddSessionTimeBonusCapped(t *testing.T) {
	progress := UserProgress{CurrentStreak: 100}

	_, delta := progress.AddSessionTime(10)

	assert.Equal(t, 15, delta, "streak bonus caps at 50%: round(10 * 1.5)")
}

func TestAddSessionTimeRoundsAndClamps(t *testing.T) {
	progress := UserProgress{}

	minutes, _ := progress.AddSessionTime(29.6)
	assert.Equal(t, 30, minutes)

	minutes, delta := progress.AddSessionTime(-5)
	assert.Equal(t, 0, minutes, "negative duration is clamped, not rejected")
	assert.Equal(t, 0, delta)
	assert.Equal(t, 30, progress.TotalMinutes)
}

func TestStatsHoursLearnedFormat(t *testing.T) {
	cases := []struct {
		totalMinutes int
		want         string
	}{
		{0, "0.0"},
		{30, "0.5"},
		{60, "1.0"},
		{90, "1.5"},
		{125, "2.0"},
		{174, "2.9"},
	}

	for _, tc := range cases {
		progress := UserProgress{TotalMinutes: tc.totalMinutes}
		stats := progress.Stats(0, 0)
		assert.Equal(t, tc.want, stats.HoursLearned, "totalMinutes=%d", tc.totalMinutes)
	}
}

func TestAddLessonIdempotent(t *testing.T) {
	entry := CourseInProgress{CompletedLessons: "[]"}

	assert.True(t, entry.AddLesson("lesson-1"))
	assert.False(t, entry.AddLesson("lesson-1"), "resubmitting the same lesson is a no-op")
	assert.True(t, entry.AddLesson("lesson-2"))

	assert.Equal(t, []string{"lesson-1", "lesson-2"}, entry.LessonIDs())
}

func TestLessonIDsEmptyAndMalformed(t *testing.T) {
	entry := CourseInProgress{}
	assert.Equal(t, []string{}, entry.LessonIDs())

	entry.CompletedLessons = "not json"
	assert.Equal(t, []string{}, entry.LessonIDs())
}

func TestQuizRecordScoreBestWins(t *testing.T) {
	first := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	later := first.Add(time.Hour)

	completion := QuizCompletion{Score: 90, CompletedAt: first}

	assert.False(t, completion.RecordScore(60, later), "a lower score never overwrites")
	assert.Equal(t, 90, completion.Score)
	assert.Equal(t, first, completion.CompletedAt)

	assert.False(t, completion.RecordScore(90, later), "an equal score does not refresh the timestamp")

	assert.True(t, completion.RecordScore(95, later))
	assert.Equal(t, 95, completion.Score)
	assert.Equal(t, later, completion.CompletedAt)
}

func TestPromoteMovesEntryToCompletion(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	entry := CourseInProgress{UserID: 7, CourseID: 3, TimeSpent: 85, Progress: 100}

	completion, points := entry.Promote(now)

	assert.Equal(t, uint(7), completion.UserID)
	assert.Equal(t, uint(3), completion.CourseID)
	assert.Equal(t, 85, completion.TimeSpent, "accumulated time moves with the course")
	assert.Equal(t, now, completion.CompletedAt)
	assert.Equal(t, CoursePoints, points)
}

func TestApplyQuizResultSequence(t *testing.T) {
	first := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	later := first.Add(time.Hour)

	// Failed first attempt records nothing and earns nothing.
	row, points := ApplyQuizResult(nil, 1, 2, 40, false, first)
	assert.Nil(t, row)
	assert.Zero(t, points)

	// Passed attempt creates the completion and earns the bonus.
	row, points = ApplyQuizResult(nil, 1, 2, 90, true, first)
	assert.NotNil(t, row)
	assert.Equal(t, 90, row.Score)
	assert.Equal(t, QuizPoints, points)

	// A lower retry changes nothing; no points twice for the same quiz.
	existing := *row
	row, points = ApplyQuizResult(&existing, 1, 2, 60, true, later)
	assert.Nil(t, row)
	assert.Zero(t, points)
	assert.Equal(t, 90, existing.Score)

	// A higher retry moves the score but still earns nothing.
	row, points = ApplyQuizResult(&existing, 1, 2, 95, true, later)
	assert.NotNil(t, row)
	assert.Equal(t, 95, row.Score)
	assert.Zero(t, points)
}

func TestCreditSessionFollowsMarker(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	progress := UserProgress{CurrentStreak: 1}
	progress.StartSession(7, "lesson-1", now)

	courseID, minutes := progress.CreditSession(30)

	assert.Equal(t, uint(7), courseID, "the credit target comes from the stored marker")
	assert.Equal(t, 30, minutes)
	assert.Equal(t, 33, progress.SkillScore)
	assert.Nil(t, progress.SessionCourseID, "the marker is cleared unconditionally")
	assert.Nil(t, progress.SessionStartedAt)
}

func TestCreditSessionWithoutCourse(t *testing.T) {
	progress := UserProgress{}

	courseID, minutes := progress.CreditSession(20)

	assert.Zero(t, courseID, "time without a session course counts for no course")
	assert.Equal(t, 20, minutes)
	assert.Equal(t, 20, progress.TotalMinutes)
}

func TestSessionMarkerLifecycle(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	progress := UserProgress{}

	progress.StartSession(7, "lesson-1", now)
	assert.NotNil(t, progress.SessionStartedAt)
	assert.Equal(t, uint(7), *progress.SessionCourseID)
	assert.Equal(t, "lesson-1", progress.SessionLessonID)

	progress.ClearSession()
	assert.Nil(t, progress.SessionStartedAt)
	assert.Nil(t, progress.SessionCourseID)
	assert.Empty(t, progress.SessionLessonID)
}
