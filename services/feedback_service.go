package services

import (
	"math"
	"time"

	"team-feedback-server/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type FeedbackService struct {
	DB  *gorm.DB
	Log *zap.SugaredLogger
}

func NewFeedbackService(db *gorm.DB, log *zap.SugaredLogger) *FeedbackService {
	return &FeedbackService{DB: db, Log: log}
}

// FeedbackSummary is the anonymous projection: per-reviewee aggregates with
// comments detached from their reviewers.
type FeedbackSummary struct {
	RevieweeID    uint     `json:"reviewee_id"`
	AvgRating     float64  `json:"avg_rating"`
	FeedbackCount int64    `json:"feedback_count"`
	Comments      []string `json:"comments" gorm:"-"`
}

// FeedbackDetail is the admin projection with full attribution.
type FeedbackDetail struct {
	ID         uint      `json:"id"`
	ReviewerID uint      `json:"reviewer_id"`
	RevieweeID uint      `json:"reviewee_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
}

// Submit records feedback from reviewerID about revieweeID within teamID.
// Each party is checked for membership independently so the failure names the
// offending user. Reviewer and reviewee may be the same user. Rating bounds
// are the input boundary's concern, not enforced here.
func (s *FeedbackService) Submit(teamID, reviewerID, revieweeID uint, rating int, comment string) (*models.Feedback, error) {
	fb := models.Feedback{
		TeamID:     teamID,
		ReviewerID: reviewerID,
		RevieweeID: revieweeID,
		Rating:     rating,
		Comment:    comment,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		for _, uid := range []uint{reviewerID, revieweeID} {
			membership := tx.Where("team_id = ? AND user_id = ?", teamID, uid).
				Limit(1).Find(&models.TeamMember{})
			if membership.Error != nil {
				return membership.Error
			}
			if membership.RowsAffected == 0 {
				return &NotTeamMemberError{UserID: uid}
			}
		}
		return tx.Create(&fb).Error
	})
	if err != nil {
		return nil, err
	}

	s.Log.Infow("feedback submitted", "teamID", teamID, "feedbackID", fb.ID)
	return &fb, nil
}

// Summary aggregates all feedback for teamID grouped by reviewee. Averages
// are rounded to 2 decimal places; comments come back in storage order with
// no reviewer attribution. Any authenticated user may read this projection.
func (s *FeedbackService) Summary(teamID uint) ([]FeedbackSummary, error) {
	rows := []FeedbackSummary{}
	err := s.DB.Model(&models.Feedback{}).
		Select("reviewee_id, AVG(rating) AS avg_rating, COUNT(id) AS feedback_count").
		Where("team_id = ?", teamID).
		Group("reviewee_id").
		Order("reviewee_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	var entries []models.Feedback
	err = s.DB.Select("reviewee_id, comment").
		Where("team_id = ?", teamID).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	commentsByReviewee := make(map[uint][]string, len(rows))
	for _, e := range entries {
		commentsByReviewee[e.RevieweeID] = append(commentsByReviewee[e.RevieweeID], e.Comment)
	}

	for i := range rows {
		rows[i].AvgRating = math.Round(rows[i].AvgRating*100) / 100
		rows[i].Comments = commentsByReviewee[rows[i].RevieweeID]
		if rows[i].Comments == nil {
			rows[i].Comments = []string{}
		}
	}
	return rows, nil
}

// Detailed returns every feedback row for teamID with reviewer attribution.
// The route already gates on the admin role; the isAdmin assertion here is
// kept anyway so this projection never trusts an unchecked caller claim.
func (s *FeedbackService) Detailed(teamID uint, isAdmin bool) ([]FeedbackDetail, error) {
	if !isAdmin {
		return nil, ErrAdminRequired
	}

	var entries []models.Feedback
	if err := s.DB.Where("team_id = ?", teamID).Find(&entries).Error; err != nil {
		return nil, err
	}

	details := make([]FeedbackDetail, 0, len(entries))
	for _, e := range entries {
		details = append(details, FeedbackDetail{
			ID:         e.ID,
			ReviewerID: e.ReviewerID,
			RevieweeID: e.RevieweeID,
			Rating:     e.Rating,
			Comment:    e.Comment,
			CreatedAt:  e.CreatedAt,
		})
	}
	return details, nil
}
