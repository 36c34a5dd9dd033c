package service

import (
	"context"
	"encoding/json"
	"time"

	"devonaut-be/internal/dto"
	"devonaut-be/internal/repository/specification"
	"devonaut-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

// KeystrokeTopic is the in-process bus topic for editor snapshots.
const KeystrokeTopic = "keystroke_snapshots"

type IKeystrokeService interface {
	// Record accepts a snapshot and hands it to the bus. The HTTP request
	// returns before the row is written; snapshots arrive every few seconds
	// per student and must not block the editor.
	Record(ctx context.Context, userId uuid.UUID, req *dto.KeystrokeRequest) error
	// ListByUser replays a student's snapshots in capture order, optionally
	// narrowed to one assignment. Snapshots accumulate fast, so the listing
	// is always windowed.
	ListByUser(ctx context.Context, userId uuid.UUID, assignmentId *uuid.UUID, limit, offset int) ([]dto.KeystrokeEntry, error)
}

type keystrokeService struct {
	publisher  message.Publisher
	uowFactory unitofwork.RepositoryFactory
}

func NewKeystrokeService(publisher message.Publisher, uowFactory unitofwork.RepositoryFactory) IKeystrokeService {
	return &keystrokeService{
		publisher:  publisher,
		uowFactory: uowFactory,
	}
}

func (s *keystrokeService) Record(ctx context.Context, userId uuid.UUID, req *dto.KeystrokeRequest) error {
	ts := time.Now()
	if req.Timestamp != nil {
		ts = *req.Timestamp
	}

	payload, err := json.Marshal(dto.PublishKeystrokeMessage{
		UserId:       userId.String(),
		AssignmentId: req.AssignmentId,
		ProblemIndex: req.ProblemIndex,
		Code:         req.Code,
		Timestamp:    ts,
	})
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	return s.publisher.Publish(KeystrokeTopic, msg)
}

func (s *keystrokeService) ListByUser(ctx context.Context, userId uuid.UUID, assignmentId *uuid.UUID, limit, offset int) ([]dto.KeystrokeEntry, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if limit <= 0 || limit > 500 {
		limit = 500
	}
	if offset < 0 {
		offset = 0
	}

	specs := []specification.Specification{
		specification.OwnedBy{UserID: userId},
		specification.OrderBy{Field: "timestamp"},
		specification.Pagination{Limit: limit, Offset: offset},
	}
	if assignmentId != nil {
		specs = append(specs, specification.ByAssignment{AssignmentID: *assignmentId})
	}

	keystrokes, err := uow.KeystrokeRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	entries := make([]dto.KeystrokeEntry, 0, len(keystrokes))
	for _, k := range keystrokes {
		entry := dto.KeystrokeEntry{
			Id:           k.Id.String(),
			ProblemIndex: k.ProblemIndex,
			Code:         k.Code,
			Timestamp:    k.Timestamp,
		}
		if k.AssignmentId != nil {
			entry.AssignmentId = k.AssignmentId.String()
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
