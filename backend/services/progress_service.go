package services

import (
	"errors"
	"time"

	"learnhub/backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNoProgress is returned by operations that require an already-created
// progress record (end-session, update-progress, complete-quiz).
var ErrNoProgress = errors.New("no progress record found")

// ProgressService owns every mutation of the per-user progress record. Each
// operation runs in one transaction that takes a row lock on the UserProgress
// row first, so concurrent writes for the same user serialize instead of
// overwriting each other. Writes for different users never block each other.
type ProgressService struct {
	DB *gorm.DB
}

func NewProgressService(db *gorm.DB) *ProgressService {
	return &ProgressService{DB: db}
}

// ProgressSnapshot is the full progress record, returned by CompleteQuiz.
type ProgressSnapshot struct {
	Progress          models.UserProgress       `json:"progress"`
	CoursesInProgress []models.CourseInProgress `json:"coursesInProgress"`
	CoursesCompleted  []models.CourseCompletion `json:"coursesCompleted"`
	CompletedQuizzes  []models.QuizCompletion   `json:"completedQuizzes"`
}

// lockProgress loads the user's progress row under SELECT ... FOR UPDATE,
// creating it on first touch when create is true. A freshly created record
// starts with a streak of 1: the first-ever activity counts as day one.
func lockProgress(tx *gorm.DB, userID uint, create bool) (*models.UserProgress, error) {
	var progress models.UserProgress
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&progress).Error
	if err == nil {
		return &progress, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if !create {
		return nil, ErrNoProgress
	}

	progress = models.UserProgress{
		UserID:         userID,
		LastActiveDate: time.Now(),
		CurrentStreak:  1,
		LongestStreak:  1,
	}
	if err := tx.Create(&progress).Error; err != nil {
		// Lost a create race against a concurrent request; the row exists
		// now, take the lock on it instead.
		var existing models.UserProgress
		if lockErr := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).
			First(&existing).Error; lockErr == nil {
			return &existing, nil
		}
		return nil, err
	}
	return &progress, nil
}

func courseCounts(tx *gorm.DB, userID uint) (inProgress int64, completed int64, err error) {
	if err = tx.Model(&models.CourseInProgress{}).Where("user_id = ?", userID).Count(&inProgress).Error; err != nil {
		return 0, 0, err
	}
	if err = tx.Model(&models.CourseCompletion{}).Where("user_id = ?", userID).Count(&completed).Error; err != nil {
		return 0, 0, err
	}
	return inProgress, completed, nil
}

// Stats refreshes the streak and returns the stats snapshot, creating the
// progress record on first access.
func (s *ProgressService) Stats(userID uint) (models.LearningStats, error) {
	var stats models.LearningStats
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		progress, err := lockProgress(tx, userID, true)
		if err != nil {
			return err
		}

		progress.UpdateStreak(time.Now())
		if err := tx.Save(progress).Error; err != nil {
			return err
		}

		inProgress, completed, err := courseCounts(tx, userID)
		if err != nil {
			return err
		}

		stats = progress.Stats(int(inProgress), int(completed))
		return nil
	})
	return stats, err
}

// StartSession refreshes the streak, sets the active session marker and
// creates or touches the in-progress entry for the course.
func (s *ProgressService) StartSession(userID, courseID uint, lessonID string) (time.Time, error) {
	var startedAt time.Time
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		progress, err := lockProgress(tx, userID, true)
		if err != nil {
			return err
		}

		now := time.Now()
		progress.UpdateStreak(now)
		progress.StartSession(courseID, lessonID, now)
		startedAt = now

		if err := tx.Save(progress).Error; err != nil {
			return err
		}

		if courseID == 0 {
			return nil
		}

		var entry models.CourseInProgress
		err = tx.Where("user_id = ? AND course_id = ?", userID, courseID).First(&entry).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			entry = models.CourseInProgress{
				UserID:           userID,
				CourseID:         courseID,
				StartedAt:        now,
				LastAccessedAt:   now,
				CompletedLessons: "[]",
			}
			return tx.Create(&entry).Error
		}
		if err != nil {
			return err
		}

		entry.LastAccessedAt = now
		return tx.Save(&entry).Error
	})
	return startedAt, err
}

// EndSession credits the session minutes and the streak-boosted skill score,
// then clears the session marker. The course time credit follows the session
// marker, not the request; the marker is cleared even when it points at a
// course with no in-progress entry. Returns ErrNoProgress when the record was
// never created.
func (s *ProgressService) EndSession(userID uint, duration float64) (models.LearningStats, error) {
	var stats models.LearningStats
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		progress, err := lockProgress(tx, userID, false)
		if err != nil {
			return err
		}

		courseID, minutes := progress.CreditSession(duration)

		if courseID != 0 {
			var entry models.CourseInProgress
			err := tx.Where("user_id = ? AND course_id = ?", userID, courseID).
				First(&entry).Error
			if err == nil {
				entry.TimeSpent += minutes
				if err := tx.Save(&entry).Error; err != nil {
					return err
				}
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}

		if err := tx.Save(progress).Error; err != nil {
			return err
		}

		inProgress, completed, err := courseCounts(tx, userID)
		if err != nil {
			return err
		}

		stats = progress.Stats(int(inProgress), int(completed))
		return nil
	})
	return stats, err
}

// CompleteLesson records a lesson in the course's completed set and awards
// points on the first insertion only. Without an in-progress entry for the
// course nothing is recorded. Returns the current completed-lesson set.
func (s *ProgressService) CompleteLesson(userID, courseID uint, lessonID string) ([]string, error) {
	lessons := []string{}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		progress, err := lockProgress(tx, userID, true)
		if err != nil {
			return err
		}

		var entry models.CourseInProgress
		err = tx.Where("user_id = ? AND course_id = ?", userID, courseID).First(&entry).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Course was never started; nothing to record.
			return nil
		}
		if err != nil {
			return err
		}

		if entry.AddLesson(lessonID) {
			progress.SkillScore += models.LessonPoints
			if err := tx.Save(&entry).Error; err != nil {
				return err
			}
			if err := tx.Save(progress).Error; err != nil {
				return err
			}
		}

		lessons = entry.LessonIDs()
		return nil
	})
	return lessons, err
}

// UpdateCourseProgress sets the completion percentage. At 100% the entry is
// promoted from in-progress to completed with the accumulated time, and the
// course completion bonus is awarded. The promotion is one-way.
func (s *ProgressService) UpdateCourseProgress(userID, courseID uint, percent int) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		progress, err := lockProgress(tx, userID, false)
		if err != nil {
			return err
		}

		var entry models.CourseInProgress
		err = tx.Where("user_id = ? AND course_id = ?", userID, courseID).First(&entry).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Nothing to update.
			return nil
		}
		if err != nil {
			return err
		}

		entry.Progress = percent
		if percent < 100 {
			return tx.Save(&entry).Error
		}

		completion, points := entry.Promote(time.Now())
		if err := tx.Create(&completion).Error; err != nil {
			return err
		}

		progress.SkillScore += points
		if err := tx.Save(progress).Error; err != nil {
			return err
		}

		return tx.Unscoped().Delete(&entry).Error
	})
}

// CoursesInProgress returns the user's in-progress entries. An absent progress
// record is an empty list, not an error.
func (s *ProgressService) CoursesInProgress(userID uint) ([]models.CourseInProgress, error) {
	var entries []models.CourseInProgress
	if err := s.DB.Where("user_id = ?", userID).
		Order("last_accessed_at DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// CompleteQuiz persists a quiz outcome. Grading happens in the caller; this
// only applies best-score-wins on retries, and on a passed first attempt
// inserts the completion, awards points and refreshes the streak. A failed
// first attempt changes nothing.
func (s *ProgressService) CompleteQuiz(userID, quizID uint, score int, passed bool) (*ProgressSnapshot, error) {
	var snapshot ProgressSnapshot
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		progress, err := lockProgress(tx, userID, false)
		if err != nil {
			return err
		}

		now := time.Now()
		var existing *models.QuizCompletion
		var stored models.QuizCompletion
		err = tx.Where("user_id = ? AND quiz_id = ?", userID, quizID).First(&stored).Error
		switch {
		case err == nil:
			existing = &stored
		case errors.Is(err, gorm.ErrRecordNotFound):
		default:
			return err
		}

		row, points := models.ApplyQuizResult(existing, userID, quizID, score, passed, now)
		if row != nil {
			if err := tx.Save(row).Error; err != nil {
				return err
			}
		}
		if points > 0 {
			progress.SkillScore += points
			progress.UpdateStreak(now)
		}

		if err := tx.Save(progress).Error; err != nil {
			return err
		}

		return loadSnapshot(tx, userID, progress, &snapshot)
	})
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func loadSnapshot(tx *gorm.DB, userID uint, progress *models.UserProgress, snapshot *ProgressSnapshot) error {
	snapshot.Progress = *progress

	if err := tx.Where("user_id = ?", userID).Find(&snapshot.CoursesInProgress).Error; err != nil {
		return err
	}
	if err := tx.Where("user_id = ?", userID).Find(&snapshot.CoursesCompleted).Error; err != nil {
		return err
	}
	return tx.Where("user_id = ?", userID).Find(&snapshot.CompletedQuizzes).Error
}
