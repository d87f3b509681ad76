package leave

import "context"

type LeaveService interface {
	Submit(ctx context.Context, req SubmitRequest) (Request, error)
	Approve(ctx context.Context, req ReviewRequest) (Request, error)
	Reject(ctx context.Context, req ReviewRequest) (Request, error)
	List(ctx context.Context, req ListRequest) ([]Request, error)
	Balance(ctx context.Context, req BalanceRequest) (Balance, error)
}
