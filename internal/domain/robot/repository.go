package robot

import "context"

type Repository interface {
	Get(ctx context.Context) (*State, error)
	Update(ctx context.Context, status Status, notes *string) error
}
