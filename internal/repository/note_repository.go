package repository

import (
	"oriental_miniapp_backend/internal/model"

	"gorm.io/gorm"
)

type NoteRepository struct {
	DB *gorm.DB
}

func NewNoteRepository(db *gorm.DB) *NoteRepository {
	return &NoteRepository{DB: db}
}

func (r *NoteRepository) Create(note *model.Note) error {
	return r.DB.Create(note).Error
}

func (r *NoteRepository) FindByIDAndUser(noteID, userID uint) (*model.Note, error) {
	var note model.Note
	err := r.DB.Where("id = ? AND user_id = ?", noteID, userID).First(&note).Error
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *NoteRepository) ListByUserAndMaterial(userID, materialID uint) ([]model.Note, error) {
	var notes []model.Note
	err := r.DB.Where("user_id = ? AND material_id = ?", userID, materialID).
		Order("timestamp, id").
		Find(&notes).Error
	return notes, err
}

func (r *NoteRepository) ListByUser(userID uint) ([]model.Note, error) {
	var notes []model.Note
	err := r.DB.Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&notes).Error
	return notes, err
}

func (r *NoteRepository) Save(note *model.Note) error {
	return r.DB.Save(note).Error
}

func (r *NoteRepository) Delete(noteID, userID uint) error {
	return r.DB.Where("id = ? AND user_id = ?", noteID, userID).
		Delete(&model.Note{}).Error
}
