package service

import (
	"context"
	"errors"
	"testing"

	"devonaut-be/internal/entity"
	"devonaut-be/internal/repository/contract"
	"devonaut-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// memoryWorkspaceRepo keeps one document per user, like the real table.
type memoryWorkspaceRepo struct {
	byUser map[uuid.UUID]*entity.Workspace
}

func (r *memoryWorkspaceRepo) FindByUser(_ context.Context, userId uuid.UUID) (*entity.Workspace, error) {
	return r.byUser[userId], nil
}

func (r *memoryWorkspaceRepo) Upsert(_ context.Context, workspace *entity.Workspace) error {
	r.byUser[workspace.UserId] = workspace
	return nil
}

type fakeUnitOfWork struct {
	workspaces    *memoryWorkspaceRepo
	notifications contract.NotificationRepository
}

func (u *fakeUnitOfWork) Begin(context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error               { return nil }
func (u *fakeUnitOfWork) Rollback() error             { return nil }

func (u *fakeUnitOfWork) UserRepository() contract.UserRepository                 { return nil }
func (u *fakeUnitOfWork) AssignmentRepository() contract.AssignmentRepository     { return nil }
func (u *fakeUnitOfWork) ChatHistoryRepository() contract.ChatHistoryRepository   { return nil }
func (u *fakeUnitOfWork) KeystrokeRepository() contract.KeystrokeRepository       { return nil }
func (u *fakeUnitOfWork) NotificationRepository() contract.NotificationRepository {
	return u.notifications
}

func (u *fakeUnitOfWork) WorkspaceRepository() contract.WorkspaceRepository {
	return u.workspaces
}

type fakeUowFactory struct {
	uow *fakeUnitOfWork
}

func (f *fakeUowFactory) NewUnitOfWork(context.Context) unitofwork.UnitOfWork {
	return f.uow
}

func newWorkspaceServiceForTest() IWorkspaceService {
	return NewWorkspaceService(&fakeUowFactory{
		uow: &fakeUnitOfWork{
			workspaces: &memoryWorkspaceRepo{byUser: map[uuid.UUID]*entity.Workspace{}},
		},
	})
}

func TestWorkspaceImportRejectsInvalidDocuments(t *testing.T) {
	svc := newWorkspaceServiceForTest()
	userId := uuid.New()

	cases := []struct {
		name     string
		document []byte
	}{
		{"empty body", []byte{}},
		{"truncated json", []byte(`{"code": "print(`)},
		{"plain text", []byte("not a workspace")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.Import(context.Background(), userId, tc.document)
			if !errors.Is(err, ErrInvalidWorkspaceDoc) {
				t.Errorf("Import = %v, want ErrInvalidWorkspaceDoc", err)
			}
		})
	}
}

func TestWorkspaceRoundTripPreservesBytes(t *testing.T) {
	svc := newWorkspaceServiceForTest()
	userId := uuid.New()

	// Key order and whitespace must survive untouched.
	document := []byte(`{"zeta": 1, "alpha": {"code": "print('hi')"},  "tabs": [3, 1, 2]}`)

	if err := svc.Import(context.Background(), userId, document); err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	exported, err := svc.Export(context.Background(), userId)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if string(exported) != string(document) {
		t.Errorf("exported document mutated:\n got %s\nwant %s", exported, document)
	}
}

func TestWorkspaceImportReplacesPreviousDocument(t *testing.T) {
	svc := newWorkspaceServiceForTest()
	userId := uuid.New()

	if err := svc.Import(context.Background(), userId, []byte(`{"v": 1}`)); err != nil {
		t.Fatalf("first Import failed: %v", err)
	}
	if err := svc.Import(context.Background(), userId, []byte(`{"v": 2}`)); err != nil {
		t.Fatalf("second Import failed: %v", err)
	}

	exported, err := svc.Export(context.Background(), userId)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if string(exported) != `{"v": 2}` {
		t.Errorf("Export = %s, want latest document", exported)
	}
}

func TestWorkspaceExportWithoutImport(t *testing.T) {
	svc := newWorkspaceServiceForTest()

	_, err := svc.Export(context.Background(), uuid.New())
	if !errors.Is(err, ErrWorkspaceNotFound) {
		t.Errorf("Export = %v, want ErrWorkspaceNotFound", err)
	}
}
