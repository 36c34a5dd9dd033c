package mapper

import (
	"devonaut-be/internal/entity"
	"devonaut-be/internal/model"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

func (m *ChatMapper) ToEntity(c *model.ChatMessage) *entity.ChatMessage {
	if c == nil {
		return nil
	}
	return &entity.ChatMessage{
		Id:           c.Id,
		UserId:       c.UserId,
		AssignmentId: c.AssignmentId,
		Role:         entity.ChatRole(c.Role),
		Content:      c.Content,
		CreatedAt:    c.CreatedAt,
	}
}

func (m *ChatMapper) ToModel(c *entity.ChatMessage) *model.ChatMessage {
	if c == nil {
		return nil
	}
	return &model.ChatMessage{
		Id:           c.Id,
		UserId:       c.UserId,
		AssignmentId: c.AssignmentId,
		Role:         string(c.Role),
		Content:      c.Content,
		CreatedAt:    c.CreatedAt,
	}
}

func (m *ChatMapper) ToEntities(msgs []*model.ChatMessage) []*entity.ChatMessage {
	entities := make([]*entity.ChatMessage, len(msgs))
	for i, c := range msgs {
		entities[i] = m.ToEntity(c)
	}
	return entities
}

type KeystrokeMapper struct{}

func NewKeystrokeMapper() *KeystrokeMapper {
	return &KeystrokeMapper{}
}

func (m *KeystrokeMapper) ToEntity(k *model.Keystroke) *entity.Keystroke {
	if k == nil {
		return nil
	}
	return &entity.Keystroke{
		Id:           k.Id,
		UserId:       k.UserId,
		AssignmentId: k.AssignmentId,
		ProblemIndex: k.ProblemIndex,
		Code:         k.Code,
		Timestamp:    k.Timestamp,
	}
}

func (m *KeystrokeMapper) ToModel(k *entity.Keystroke) *model.Keystroke {
	if k == nil {
		return nil
	}
	return &model.Keystroke{
		Id:           k.Id,
		UserId:       k.UserId,
		AssignmentId: k.AssignmentId,
		ProblemIndex: k.ProblemIndex,
		Code:         k.Code,
		Timestamp:    k.Timestamp,
	}
}

func (m *KeystrokeMapper) ToEntities(ks []*model.Keystroke) []*entity.Keystroke {
	entities := make([]*entity.Keystroke, len(ks))
	for i, k := range ks {
		entities[i] = m.ToEntity(k)
	}
	return entities
}
