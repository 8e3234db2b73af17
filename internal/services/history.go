package services

import (
	"time"

	"github.com/MOSHEDORA/FinDora/internal/database"
	"github.com/MOSHEDORA/FinDora/internal/models"
	"github.com/google/uuid"
)

// maxHistoryPerUser caps stored searches per user; the oldest records are
// dropped on overflow.
const maxHistoryPerUser = 50

type HistoryService struct {
	db *database.DB
}

func NewHistoryService(db *database.DB) *HistoryService {
	return &HistoryService{db: db}
}

type AddHistoryRequest struct {
	Query    string         `json:"query"`
	Location string         `json:"location"`
	Radius   string         `json:"radius"`
	Filters  map[string]any `json:"filters"`
}

// List returns the user's search history, newest first.
func (s *HistoryService) List(userID string) ([]models.SearchHistory, error) {
	history := make([]models.SearchHistory, 0, maxHistoryPerUser)
	err := s.db.
		Where("user_id = ?", userID).
		Order("timestamp DESC").
		Limit(maxHistoryPerUser).
		Find(&history).Error
	if err != nil {
		return nil, err
	}
	return history, nil
}

// Add appends a search record and trims the user's history to the cap.
func (s *HistoryService) Add(userID string, req *AddHistoryRequest) (*models.SearchHistory, error) {
	record := models.SearchHistory{
		ID:        uuid.NewString(),
		UserID:    userID,
		Query:     req.Query,
		Location:  req.Location,
		Radius:    req.Radius,
		Filters:   req.Filters,
		Timestamp: time.Now(),
	}

	if err := s.db.Create(&record).Error; err != nil {
		return nil, err
	}

	if err := s.trim(userID); err != nil {
		return nil, err
	}

	return &record, nil
}

// trim deletes everything older than the newest maxHistoryPerUser records.
func (s *HistoryService) trim(userID string) error {
	var stale []models.SearchHistory
	err := s.db.
		Where("user_id = ?", userID).
		Order("timestamp DESC").
		Offset(maxHistoryPerUser).
		Find(&stale).Error
	if err != nil {
		return err
	}
	if len(stale) == 0 {
		return nil
	}

	ids := make([]string, len(stale))
	for i, h := range stale {
		ids[i] = h.ID
	}
	return s.db.Where("id IN ?", ids).Delete(&models.SearchHistory{}).Error
}

// Delete removes one record owned by the user. Deleting a record that does
// not exist is not an error.
func (s *HistoryService) Delete(userID, historyID string) error {
	return s.db.
		Where("user_id = ? AND id = ?", userID, historyID).
		Delete(&models.SearchHistory{}).Error
}
