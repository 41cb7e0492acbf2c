package commands_test

import (
	"context"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"

	"github.com/Rhymond/go-money"
	"github.com/stretchr/testify/mock"
)

// Mock implementations shared by the handler tests.
type MockCourierRepository struct {
	mock.Mock
}

func (m *MockCourierRepository) Add(ctx context.Context, courier *courier.Courier) error {
	args := m.Called(ctx, courier)
	return args.Error(0)
}

func (m *MockCourierRepository) Update(ctx context.Context, courier *courier.Courier) error {
	args := m.Called(ctx, courier)
	return args.Error(0)
}

func (m *MockCourierRepository) Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*courier.Courier), args.Error(1)
}

func (m *MockCourierRepository) GetAllOnShift(ctx context.Context) ([]*courier.Courier, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*courier.Courier), args.Error(1)
}

func (m *MockCourierRepository) GetByIDsOnShift(ctx context.Context, ids []kernel.UUID) ([]*courier.Courier, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]*courier.Courier), args.Error(1)
}

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByCourier(ctx context.Context, orderIDs []kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, orderIDs)
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllUncompleted(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetWithStaleRequests(ctx context.Context, cutoff time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockUoW struct {
	mock.Mock
}

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) CourierRepository() ports.CourierRepository {
	args := m.Called()
	return args.Get(0).(ports.CourierRepository)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockUoWFactory struct {
	mock.Mock
}

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockCourierUoWFactory struct {
	mock.Mock
}

func (m *MockCourierUoWFactory) Create() commands.CourierUoW {
	args := m.Called()
	return args.Get(0).(commands.CourierUoW)
}

type MockOrderUoWFactory struct {
	mock.Mock
}

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockLocationIndex struct {
	mock.Mock
}

func (m *MockLocationIndex) Report(courierID kernel.UUID, location kernel.GeoPoint, reportedAt time.Time) {
	m.Called(courierID, location, reportedAt)
}

func (m *MockLocationIndex) Get(courierID kernel.UUID) (ports.CourierLocation, bool) {
	args := m.Called(courierID)
	return args.Get(0).(ports.CourierLocation), args.Bool(1)
}

func (m *MockLocationIndex) Nearest(to kernel.GeoPoint, limit int, exclude []kernel.UUID) []ports.CourierLocation {
	args := m.Called(to, limit, exclude)
	return args.Get(0).([]ports.CourierLocation)
}

// MockScheduler records scheduled delays without ever firing the callbacks.
type MockScheduler struct {
	Delays []time.Duration
}

func (m *MockScheduler) AfterFunc(delay time.Duration, _ func()) {
	m.Delays = append(m.Delays, delay)
}

type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) Charge(ctx context.Context, userID string, paymentMethodID string, amount *money.Money) error {
	args := m.Called(ctx, userID, paymentMethodID, amount)
	return args.Error(0)
}

func (m *MockPaymentService) Refund(ctx context.Context, userID string, amount *money.Money) error {
	args := m.Called(ctx, userID, amount)
	return args.Error(0)
}
