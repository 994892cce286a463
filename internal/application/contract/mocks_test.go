package contract

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rentals/backend/internal/domain/contract"
	"github.com/rentals/backend/internal/domain/document"
	"github.com/rentals/backend/internal/domain/property"
	"github.com/rentals/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// MockContractRepository is a mock implementation of ContractRepository
type MockContractRepository struct {
	mock.Mock
}

func (m *MockContractRepository) FindByID(ctx context.Context, id uuid.UUID) (*contract.Contract, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contract.Contract), args.Error(1)
}

func (m *MockContractRepository) FindAll(ctx context.Context, filter contract.ContractFilter) ([]contract.Contract, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]contract.Contract), args.Get(1).(int64), args.Error(2)
}

func (m *MockContractRepository) Create(ctx context.Context, c *contract.Contract) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockContractRepository) SaveWithLock(ctx context.Context, c *contract.Contract) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockContractRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockContractRepository) FindActiveEndingBefore(ctx context.Context, date time.Time, limit int) ([]contract.Contract, error) {
	args := m.Called(ctx, date, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]contract.Contract), args.Error(1)
}

var _ contract.ContractRepository = (*MockContractRepository)(nil)

// MockDocumentRepository is a mock implementation of DocumentRepository
type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) FindByID(ctx context.Context, id uuid.UUID) (*document.ContractDocument, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*document.ContractDocument), args.Error(1)
}

func (m *MockDocumentRepository) FindByContract(ctx context.Context, contractID uuid.UUID) ([]document.ContractDocument, error) {
	args := m.Called(ctx, contractID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]document.ContractDocument), args.Error(1)
}

func (m *MockDocumentRepository) FindByCategory(ctx context.Context, contractID uuid.UUID, category string) (*document.ContractDocument, error) {
	args := m.Called(ctx, contractID, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*document.ContractDocument), args.Error(1)
}

func (m *MockDocumentRepository) Upsert(ctx context.Context, d *document.ContractDocument) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDocumentRepository) Save(ctx context.Context, d *document.ContractDocument) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var _ document.DocumentRepository = (*MockDocumentRepository)(nil)

// MockRenderer is a mock implementation of Renderer
type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) Render(ctx context.Context, data ContractPrintData) ([]byte, error) {
	args := m.Called(ctx, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

var _ Renderer = (*MockRenderer)(nil)

// MockPropertyRepository is a mock implementation of PropertyRepository
type MockPropertyRepository struct {
	mock.Mock
}

func (m *MockPropertyRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*property.Property), args.Error(1)
}

func (m *MockPropertyRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]property.Property, int64, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]property.Property), args.Get(1).(int64), args.Error(2)
}

func (m *MockPropertyRepository) Save(ctx context.Context, p *property.Property) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPropertyRepository) FindSchedule(ctx context.Context, propertyID uuid.UUID) (*property.Schedule, error) {
	args := m.Called(ctx, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*property.Schedule), args.Error(1)
}

func (m *MockPropertyRepository) ReplaceSlots(ctx context.Context, propertyID uuid.UUID, slots []property.AvailabilitySlot) error {
	args := m.Called(ctx, propertyID, slots)
	return args.Error(0)
}

func (m *MockPropertyRepository) SaveOverride(ctx context.Context, o *property.DateOverride) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockPropertyRepository) FindOverride(ctx context.Context, id uuid.UUID) (*property.DateOverride, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*property.DateOverride), args.Error(1)
}

func (m *MockPropertyRepository) DeleteOverride(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var _ property.PropertyRepository = (*MockPropertyRepository)(nil)

// MockEventPublisher records published events
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

var _ shared.EventPublisher = (*MockEventPublisher)(nil)
