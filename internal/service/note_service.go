package service

import (
	"oriental_miniapp_backend/internal/model"
	"oriental_miniapp_backend/internal/repository"
	"oriental_miniapp_backend/internal/util"
)

// NoteService 素材笔记
type NoteService struct {
	NoteRepo     *repository.NoteRepository
	MaterialRepo *repository.MaterialRepository
}

func NewNoteService(noteRepo *repository.NoteRepository, materialRepo *repository.MaterialRepository) *NoteService {
	return &NoteService{NoteRepo: noteRepo, MaterialRepo: materialRepo}
}

type NoteCreate struct {
	MaterialID uint   `json:"materialId" binding:"required"`
	Content    string `json:"content" binding:"required"`
	Timestamp  int    `json:"timestamp"`
}

type NoteUpdate struct {
	Content   *string `json:"content"`
	Timestamp *int    `json:"timestamp"`
}

func (s *NoteService) Create(userID uint, req NoteCreate) (*model.Note, error) {
	if _, err := s.MaterialRepo.FindByID(req.MaterialID); err != nil {
		if repository.IsNotFound(err) {
			return nil, util.ErrMaterialNotFound
		}
		return nil, err
	}

	note := &model.Note{
		UserID:     userID,
		MaterialID: req.MaterialID,
		Content:    req.Content,
		Timestamp:  req.Timestamp,
	}
	if err := s.NoteRepo.Create(note); err != nil {
		return nil, err
	}
	return note, nil
}

// Update 只允许作者本人改自己的笔记
func (s *NoteService) Update(userID, noteID uint, req NoteUpdate) (*model.Note, error) {
	note, err := s.NoteRepo.FindByIDAndUser(noteID, userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, util.ErrNoteNotFound
		}
		return nil, err
	}

	if req.Content != nil {
		note.Content = *req.Content
	}
	if req.Timestamp != nil {
		note.Timestamp = *req.Timestamp
	}

	if err := s.NoteRepo.Save(note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *NoteService) Delete(userID, noteID uint) error {
	if _, err := s.NoteRepo.FindByIDAndUser(noteID, userID); err != nil {
		if repository.IsNotFound(err) {
			return util.ErrNoteNotFound
		}
		return err
	}
	return s.NoteRepo.Delete(noteID, userID)
}

func (s *NoteService) ListForMaterial(userID, materialID uint) ([]model.Note, error) {
	return s.NoteRepo.ListByUserAndMaterial(userID, materialID)
}

func (s *NoteService) ListAll(userID uint) ([]model.Note, error) {
	return s.NoteRepo.ListByUser(userID)
}
