package services

import (
	"sort"

	"learnhub/backend/models"

	"gorm.io/gorm"
)

// PathService resolves learning paths for a user. Node statuses are derived
// from the completion records on every read and never persisted.
type PathService struct {
	DB *gorm.DB
}

func NewPathService(db *gorm.DB) *PathService {
	return &PathService{DB: db}
}

// NodeView is a path node annotated with its derived status and the resolved
// course or quiz it points at. A dangling reference keeps a nil entity.
type NodeView struct {
	ID        uint           `json:"id"`
	Title     string         `json:"title"`
	Kind      string         `json:"kind"`
	Order     int            `json:"order"`
	PositionX float64        `json:"positionX"`
	PositionY float64        `json:"positionY"`
	Status    string         `json:"status"`
	Course    *models.Course `json:"course,omitempty"`
	Quiz      *models.Quiz   `json:"quiz,omitempty"`

	completed  bool
	resolvable bool
}

// PathView is a learning path with resolved per-user node statuses.
type PathView struct {
	ID                uint                    `json:"id"`
	Title             string                  `json:"title"`
	Description       string                  `json:"description"`
	Thumbnail         string                  `json:"thumbnail"`
	Category          string                  `json:"category"`
	EstimatedDuration string                  `json:"estimatedDuration"`
	EnrolledCount     int                     `json:"enrolledCount"`
	Nodes             []NodeView              `json:"nodes"`
	Connections       []models.PathConnection `json:"connections"`
}

// PathSummary is the list-view aggregate: how many nodes the user completed
// out of the total, by the same completion rules as the full resolution.
type PathSummary struct {
	ID                 uint   `json:"id"`
	Title              string `json:"title"`
	Description        string `json:"description"`
	Thumbnail          string `json:"thumbnail"`
	Category           string `json:"category"`
	EstimatedDuration  string `json:"estimatedDuration"`
	EnrolledCount      int    `json:"enrolledCount"`
	CompletedNodeCount int    `json:"completedNodeCount"`
	TotalNodeCount     int    `json:"totalNodeCount"`
}

// annotateStatuses assigns the displayed status in one ascending-order pass:
// completed nodes stay completed wherever they sit, the first incomplete node
// becomes the single active frontier, every later incomplete node is locked.
// Nodes with a dangling reference are always locked and never take the
// frontier. With everything completed no node is active.
func annotateStatuses(nodes []NodeView) {
	frontierAssigned := false
	for i := range nodes {
		node := &nodes[i]
		switch {
		case !node.resolvable:
			node.Status = models.NodeLocked
		case node.completed:
			node.Status = models.NodeCompleted
		case !frontierAssigned:
			node.Status = models.NodeActive
			frontierAssigned = true
		default:
			node.Status = models.NodeLocked
		}
	}
}

func countCompleted(nodes []NodeView) int {
	count := 0
	for i := range nodes {
		if nodes[i].resolvable && nodes[i].completed {
			count++
		}
	}
	return count
}

// completionSets loads the user's completed course and quiz ID sets. A user
// without a progress record simply has empty sets.
func (ps *PathService) completionSets(userID uint) (map[uint]bool, map[uint]bool, error) {
	completedCourses := make(map[uint]bool)
	completedQuizzes := make(map[uint]bool)

	var courseIDs []uint
	if err := ps.DB.Model(&models.CourseCompletion{}).
		Where("user_id = ?", userID).
		Pluck("course_id", &courseIDs).Error; err != nil {
		return nil, nil, err
	}
	for _, id := range courseIDs {
		completedCourses[id] = true
	}

	var quizIDs []uint
	if err := ps.DB.Model(&models.QuizCompletion{}).
		Where("user_id = ?", userID).
		Pluck("quiz_id", &quizIDs).Error; err != nil {
		return nil, nil, err
	}
	for _, id := range quizIDs {
		completedQuizzes[id] = true
	}

	return completedCourses, completedQuizzes, nil
}

// buildNodeViews resolves entities and completion flags for a path's nodes
// and returns them sorted by traversal order.
func (ps *PathService) buildNodeViews(nodes []models.PathNode, completedCourses, completedQuizzes map[uint]bool) ([]NodeView, error) {
	courseIDs := make([]uint, 0, len(nodes))
	quizIDs := make([]uint, 0, len(nodes))
	for _, node := range nodes {
		if node.CourseID != nil {
			courseIDs = append(courseIDs, *node.CourseID)
		}
		if node.QuizID != nil {
			quizIDs = append(quizIDs, *node.QuizID)
		}
	}

	courses := make(map[uint]*models.Course)
	if len(courseIDs) > 0 {
		var found []models.Course
		if err := ps.DB.Find(&found, courseIDs).Error; err != nil {
			return nil, err
		}
		for i := range found {
			courses[found[i].ID] = &found[i]
		}
	}

	quizzes := make(map[uint]*models.Quiz)
	if len(quizIDs) > 0 {
		var found []models.Quiz
		if err := ps.DB.Preload("Questions").Find(&found, quizIDs).Error; err != nil {
			return nil, err
		}
		for i := range found {
			quizzes[found[i].ID] = &found[i]
		}
	}

	views := make([]NodeView, 0, len(nodes))
	for _, node := range nodes {
		view := NodeView{
			ID:        node.ID,
			Title:     node.Title,
			Kind:      node.Kind,
			Order:     node.SequenceOrder,
			PositionX: node.PositionX,
			PositionY: node.PositionY,
		}

		switch node.Kind {
		case models.NodeKindQuiz:
			if node.QuizID != nil {
				view.Quiz = quizzes[*node.QuizID]
				view.resolvable = view.Quiz != nil
				view.completed = completedQuizzes[*node.QuizID]
			}
		default:
			if node.CourseID != nil {
				view.Course = courses[*node.CourseID]
				view.resolvable = view.Course != nil
				view.completed = completedCourses[*node.CourseID]
			}
		}

		views = append(views, view)
	}

	sort.SliceStable(views, func(i, j int) bool {
		return views[i].Order < views[j].Order
	})

	return views, nil
}

// ResolvePath returns the path with every node annotated with its status for
// the given user. Returns gorm.ErrRecordNotFound for an unknown path ID.
func (ps *PathService) ResolvePath(userID, pathID uint) (*PathView, error) {
	var path models.LearningPath
	if err := ps.DB.Preload("Nodes").Preload("Connections").First(&path, pathID).Error; err != nil {
		return nil, err
	}

	completedCourses, completedQuizzes, err := ps.completionSets(userID)
	if err != nil {
		return nil, err
	}

	views, err := ps.buildNodeViews(path.Nodes, completedCourses, completedQuizzes)
	if err != nil {
		return nil, err
	}
	annotateStatuses(views)

	return &PathView{
		ID:                path.ID,
		Title:             path.Title,
		Description:       path.Description,
		Thumbnail:         path.Thumbnail,
		Category:          path.Category,
		EstimatedDuration: path.EstimatedDuration,
		EnrolledCount:     path.EnrolledCount,
		Nodes:             views,
		Connections:       path.Connections,
	}, nil
}

// ListPaths returns every path with the user's completed/total node counts.
func (ps *PathService) ListPaths(userID uint) ([]PathSummary, error) {
	var paths []models.LearningPath
	if err := ps.DB.Preload("Nodes").Find(&paths).Error; err != nil {
		return nil, err
	}

	completedCourses, completedQuizzes, err := ps.completionSets(userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]PathSummary, 0, len(paths))
	for _, path := range paths {
		views, err := ps.buildNodeViews(path.Nodes, completedCourses, completedQuizzes)
		if err != nil {
			return nil, err
		}

		summaries = append(summaries, PathSummary{
			ID:                 path.ID,
			Title:              path.Title,
			Description:        path.Description,
			Thumbnail:          path.Thumbnail,
			Category:           path.Category,
			EstimatedDuration:  path.EstimatedDuration,
			EnrolledCount:      path.EnrolledCount,
			CompletedNodeCount: countCompleted(views),
			TotalNodeCount:     len(views),
		})
	}

	return summaries, nil
}
