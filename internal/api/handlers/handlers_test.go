package handlers

import (
	"context"
	"io"
	"log/slog"

	"github.com/wingden/loyalty-gateway/internal/upstream/resend"
	"github.com/wingden/loyalty-gateway/internal/upstream/rivo"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeLoyalty substitutes the Rivo client. Unset methods fail loudly so a
// test never silently hits a path it did not stub.
type fakeLoyalty struct {
	listRewards      func(ctx context.Context) (rivo.RewardsResponse, error)
	listCustomers    func(ctx context.Context) (rivo.CustomersResponse, error)
	getCustomer      func(ctx context.Context, email string) (rivo.CustomerResponse, error)
	createRedemption func(ctx context.Context, form rivo.RedemptionForm) (rivo.RedemptionResponse, error)
	createPoints     func(ctx context.Context, event rivo.PointsEvent) (rivo.PointsEventResponse, error)
}

func (f *fakeLoyalty) ListRewards(ctx context.Context) (rivo.RewardsResponse, error) {
	if f.listRewards == nil {
		panic("unexpected ListRewards call")
	}
	return f.listRewards(ctx)
}

func (f *fakeLoyalty) ListCustomers(ctx context.Context) (rivo.CustomersResponse, error) {
	if f.listCustomers == nil {
		panic("unexpected ListCustomers call")
	}
	return f.listCustomers(ctx)
}

func (f *fakeLoyalty) GetCustomer(ctx context.Context, email string) (rivo.CustomerResponse, error) {
	if f.getCustomer == nil {
		panic("unexpected GetCustomer call")
	}
	return f.getCustomer(ctx, email)
}

func (f *fakeLoyalty) CreateRedemption(ctx context.Context, form rivo.RedemptionForm) (rivo.RedemptionResponse, error) {
	if f.createRedemption == nil {
		panic("unexpected CreateRedemption call")
	}
	return f.createRedemption(ctx, form)
}

func (f *fakeLoyalty) CreatePointsEvent(ctx context.Context, event rivo.PointsEvent) (rivo.PointsEventResponse, error) {
	if f.createPoints == nil {
		panic("unexpected CreatePointsEvent call")
	}
	return f.createPoints(ctx, event)
}

// fakeMailer records sent messages and answers with a canned id or error.
type fakeMailer struct {
	sent []resend.Message
	id   string
	err  error
}

func (f *fakeMailer) Send(_ context.Context, msg resend.Message) (string, error) {
	f.sent = append(f.sent, msg)
	if f.err != nil {
		return "", f.err
	}
	return f.id, nil
}
