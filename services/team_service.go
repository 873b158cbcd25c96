package services

import (
	"errors"

	"team-feedback-server/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type TeamService struct {
	DB  *gorm.DB
	Log *zap.SugaredLogger
}

func NewTeamService(db *gorm.DB, log *zap.SugaredLogger) *TeamService {
	return &TeamService{DB: db, Log: log}
}

// CreateTeam inserts a new team owned by creatorID. Team names are not
// unique. Authorization is the caller's responsibility.
func (s *TeamService) CreateTeam(name string, creatorID uint) (*models.Team, error) {
	team := models.Team{
		Name:      name,
		CreatedBy: creatorID,
	}
	if err := s.DB.Create(&team).Error; err != nil {
		return nil, err
	}

	s.Log.Infow("team created", "teamID", team.ID, "createdBy", creatorID)
	return &team, nil
}

// AddMember adds userID to teamID. Both must exist, and a user can hold at
// most one membership per team: the pre-check catches the common case and the
// composite unique index closes the race when two identical requests arrive
// at once.
func (s *TeamService) AddMember(teamID, userID uint) (*models.TeamMember, error) {
	member := models.TeamMember{
		TeamID: teamID,
		UserID: userID,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var team models.Team
		if err := tx.First(&team, teamID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTeamNotFound
			}
			return err
		}

		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		existing := tx.Where("team_id = ? AND user_id = ?", teamID, userID).
			Limit(1).Find(&models.TeamMember{})
		if existing.Error != nil {
			return existing.Error
		}
		if existing.RowsAffected > 0 {
			return ErrAlreadyMember
		}

		return tx.Create(&member).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyMember
		}
		return nil, err
	}

	s.Log.Infow("member added", "teamID", teamID, "userID", userID)
	return &member, nil
}

// ListMembers returns the members of teamID, failing if the team is absent.
func (s *TeamService) ListMembers(teamID uint) ([]models.TeamMember, error) {
	var team models.Team
	if err := s.DB.First(&team, teamID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	var members []models.TeamMember
	if err := s.DB.Where("team_id = ?", teamID).Order("id").Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}
