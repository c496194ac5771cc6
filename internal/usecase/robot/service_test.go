package robot

import (
	"context"
	"errors"
	"testing"
	"time"

	domainRobot "github.com/Despicable-at/robot-delivery-backend/internal/domain/robot"
	appErrors "github.com/Despicable-at/robot-delivery-backend/pkg/errors"
)

type fakeRobotRepo struct {
	state domainRobot.State
}

func newFakeRobotRepo() *fakeRobotRepo {
	return &fakeRobotRepo{
		state: domainRobot.State{
			ID:        1,
			Status:    domainRobot.StatusAvailable,
			UpdatedAt: time.Now(),
		},
	}
}

func (r *fakeRobotRepo) Get(_ context.Context) (*domainRobot.State, error) {
	copied := r.state
	return &copied, nil
}

func (r *fakeRobotRepo) Update(_ context.Context, status domainRobot.Status, notes *string) error {
	r.state.Status = status
	r.state.Notes = notes
	r.state.UpdatedAt = time.Now()
	return nil
}

func TestGetStatus(t *testing.T) {
	service := NewService(newFakeRobotRepo())

	resp, err := service.GetStatus(context.Background())
	if err != nil {
		t.Fatalf("GetStatus returned error: %v", err)
	}
	if resp.Status != string(domainRobot.StatusAvailable) {
		t.Errorf("status = %q, want %q", resp.Status, domainRobot.StatusAvailable)
	}
}

func TestUpdateStatus(t *testing.T) {
	repo := newFakeRobotRepo()
	service := NewService(repo)
	ctx := context.Background()

	notes := "carrying a package to the east wing"
	err := service.UpdateStatus(ctx, &UpdateStatusRequest{Status: "busy", Notes: &notes})
	if err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}

	resp, err := service.GetStatus(ctx)
	if err != nil {
		t.Fatalf("GetStatus returned error: %v", err)
	}
	if resp.Status != "busy" {
		t.Errorf("status = %q, want %q", resp.Status, "busy")
	}
	if resp.Notes == nil || *resp.Notes != notes {
		t.Errorf("notes not stored: %v", resp.Notes)
	}
}

func TestUpdateStatusRejectsUnknownValue(t *testing.T) {
	repo := newFakeRobotRepo()
	service := NewService(repo)

	err := service.UpdateStatus(context.Background(), &UpdateStatusRequest{Status: "charging"})
	if err == nil {
		t.Fatal("unknown status accepted")
	}
	if repo.state.Status != domainRobot.StatusAvailable {
		t.Error("state changed on rejected update")
	}

	var appErr *appErrors.AppError
	if !errors.Is(err, appErrors.ErrInvalidRobotStatus) && !errors.As(err, &appErr) {
		t.Errorf("unexpected error type: %v", err)
	}
}
