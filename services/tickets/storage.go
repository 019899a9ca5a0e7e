package tickets

import (
	ticketModel "bus-buddy/models/ticket"
	"bus-buddy/types"

	"gorm.io/gorm"
)

// GormStore is the gorm-backed Store implementation.
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func (s *GormStore) CreateTicket(t *ticketModel.Ticket) error {
	if err := s.DB.Create(t).Error; err != nil {
		return types.NewStorageError("create ticket", err)
	}
	return nil
}

func (s *GormStore) TicketsForUser(userID uint) ([]ticketModel.Ticket, error) {
	var tickets []ticketModel.Ticket
	err := s.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&tickets).Error
	if err != nil {
		return nil, types.NewStorageError("query tickets", err)
	}
	return tickets, nil
}

func (s *GormStore) CountTicketsForUser(userID uint) (int64, error) {
	var count int64
	if err := s.DB.Model(&ticketModel.Ticket{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, types.NewStorageError("count tickets", err)
	}
	return count, nil
}
