package implementation

import (
	"context"

	"devonaut-be/internal/entity"
	"devonaut-be/internal/mapper"
	"devonaut-be/internal/model"
	"devonaut-be/internal/repository/contract"
	"devonaut-be/internal/repository/specification"

	"gorm.io/gorm"
)

type ChatHistoryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewChatHistoryRepository(db *gorm.DB) contract.ChatHistoryRepository {
	return &ChatHistoryRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

func (r *ChatHistoryRepositoryImpl) Create(ctx context.Context, message *entity.ChatMessage) error {
	modelMessage := r.mapper.ToModel(message)
	if err := r.db.WithContext(ctx).Create(modelMessage).Error; err != nil {
		return err
	}
	*message = *r.mapper.ToEntity(modelMessage)
	return nil
}

func (r *ChatHistoryRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	var modelMessages []*model.ChatMessage
	query := applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&modelMessages).Error; err != nil {
		return nil, err
	}

	return r.mapper.ToEntities(modelMessages), nil
}

type KeystrokeRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.KeystrokeMapper
}

func NewKeystrokeRepository(db *gorm.DB) contract.KeystrokeRepository {
	return &KeystrokeRepositoryImpl{
		db:     db,
		mapper: mapper.NewKeystrokeMapper(),
	}
}

func (r *KeystrokeRepositoryImpl) Create(ctx context.Context, keystroke *entity.Keystroke) error {
	modelKeystroke := r.mapper.ToModel(keystroke)
	if err := r.db.WithContext(ctx).Create(modelKeystroke).Error; err != nil {
		return err
	}
	*keystroke = *r.mapper.ToEntity(modelKeystroke)
	return nil
}

func (r *KeystrokeRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Keystroke, error) {
	var modelKeystrokes []*model.Keystroke
	query := applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&modelKeystrokes).Error; err != nil {
		return nil, err
	}

	return r.mapper.ToEntities(modelKeystrokes), nil
}
