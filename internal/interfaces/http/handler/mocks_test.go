package handler

import (
	"context"
	"time"

	"github.com/google/uuid"
	appbooking "github.com/rentals/backend/internal/application/booking"
	appcontract "github.com/rentals/backend/internal/application/contract"
	appdocument "github.com/rentals/backend/internal/application/document"
	appproperty "github.com/rentals/backend/internal/application/property"
	"github.com/rentals/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// MockPropertyService implements PropertyService for testing
type MockPropertyService struct {
	mock.Mock
}

func (m *MockPropertyService) Create(ctx context.Context, actor shared.Actor, req appproperty.CreatePropertyRequest) (*appproperty.PropertyResponse, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appproperty.PropertyResponse), args.Error(1)
}

func (m *MockPropertyService) GetByID(ctx context.Context, id uuid.UUID) (*appproperty.PropertyResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appproperty.PropertyResponse), args.Error(1)
}

func (m *MockPropertyService) Update(ctx context.Context, actor shared.Actor, id uuid.UUID, req appproperty.UpdatePropertyRequest) (*appproperty.PropertyResponse, error) {
	args := m.Called(ctx, actor, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appproperty.PropertyResponse), args.Error(1)
}

func (m *MockPropertyService) GetAvailability(ctx context.Context, id uuid.UUID) (*appproperty.AvailabilityResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appproperty.AvailabilityResponse), args.Error(1)
}

func (m *MockPropertyService) ReplaceAvailability(ctx context.Context, actor shared.Actor, id uuid.UUID, req appproperty.ReplaceAvailabilityRequest) (*appproperty.AvailabilityResponse, error) {
	args := m.Called(ctx, actor, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appproperty.AvailabilityResponse), args.Error(1)
}

func (m *MockPropertyService) AddOverride(ctx context.Context, actor shared.Actor, id uuid.UUID, req appproperty.CreateOverrideRequest) (*appproperty.DateOverrideResponse, error) {
	args := m.Called(ctx, actor, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appproperty.DateOverrideResponse), args.Error(1)
}

func (m *MockPropertyService) DeleteOverride(ctx context.Context, actor shared.Actor, id, overrideID uuid.UUID) error {
	return m.Called(ctx, actor, id, overrideID).Error(0)
}

func (m *MockPropertyService) GetAvailableSlots(ctx context.Context, id uuid.UUID, date time.Time) (*appproperty.AvailableSlotsResponse, error) {
	args := m.Called(ctx, id, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appproperty.AvailableSlotsResponse), args.Error(1)
}

// MockBookingService implements BookingService for testing
type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) booking(args mock.Arguments) (*appbooking.BookingResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appbooking.BookingResponse), args.Error(1)
}

func (m *MockBookingService) Create(ctx context.Context, actor shared.Actor, req appbooking.CreateBookingRequest) (*appbooking.BookingResponse, error) {
	return m.booking(m.Called(ctx, actor, req))
}

func (m *MockBookingService) GetByID(ctx context.Context, actor shared.Actor, id uuid.UUID) (*appbooking.BookingResponse, error) {
	return m.booking(m.Called(ctx, actor, id))
}

func (m *MockBookingService) Update(ctx context.Context, actor shared.Actor, id uuid.UUID, req appbooking.UpdateBookingRequest) (*appbooking.BookingResponse, error) {
	return m.booking(m.Called(ctx, actor, id, req))
}

func (m *MockBookingService) Cancel(ctx context.Context, actor shared.Actor, id uuid.UUID, req appbooking.CancelBookingRequest) (*appbooking.BookingResponse, error) {
	return m.booking(m.Called(ctx, actor, id, req))
}

func (m *MockBookingService) Confirm(ctx context.Context, actor shared.Actor, id uuid.UUID) (*appbooking.BookingResponse, error) {
	return m.booking(m.Called(ctx, actor, id))
}

func (m *MockBookingService) ListMine(ctx context.Context, actor shared.Actor, filter appbooking.BookingListFilter) (*appbooking.BookingListResponse, error) {
	args := m.Called(ctx, actor, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appbooking.BookingListResponse), args.Error(1)
}

func (m *MockBookingService) ListForProperty(ctx context.Context, actor shared.Actor, propertyID uuid.UUID, filter appbooking.BookingListFilter) (*appbooking.BookingListResponse, error) {
	args := m.Called(ctx, actor, propertyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appbooking.BookingListResponse), args.Error(1)
}

func (m *MockBookingService) ExportForProperty(ctx context.Context, actor shared.Actor, propertyID uuid.UUID) (*appproperty.PropertyResponse, []appbooking.BookingResponse, error) {
	args := m.Called(ctx, actor, propertyID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*appproperty.PropertyResponse), args.Get(1).([]appbooking.BookingResponse), args.Error(2)
}

// MockContractService implements ContractService for testing
type MockContractService struct {
	mock.Mock
}

func (m *MockContractService) contract(args mock.Arguments) (*appcontract.ContractResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appcontract.ContractResponse), args.Error(1)
}

func (m *MockContractService) Create(ctx context.Context, actor shared.Actor, req appcontract.CreateContractRequest) (*appcontract.ContractResponse, error) {
	return m.contract(m.Called(ctx, actor, req))
}

func (m *MockContractService) GetByID(ctx context.Context, actor shared.Actor, id uuid.UUID) (*appcontract.ContractResponse, error) {
	return m.contract(m.Called(ctx, actor, id))
}

func (m *MockContractService) List(ctx context.Context, actor shared.Actor, filter appcontract.ContractListFilter) (*appcontract.ContractListResponse, error) {
	args := m.Called(ctx, actor, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appcontract.ContractListResponse), args.Error(1)
}

func (m *MockContractService) Update(ctx context.Context, actor shared.Actor, id uuid.UUID, req appcontract.UpdateContractRequest) (*appcontract.ContractResponse, error) {
	return m.contract(m.Called(ctx, actor, id, req))
}

func (m *MockContractService) Delete(ctx context.Context, actor shared.Actor, id uuid.UUID) error {
	return m.Called(ctx, actor, id).Error(0)
}

func (m *MockContractService) Send(ctx context.Context, actor shared.Actor, id uuid.UUID) (*appcontract.ContractResponse, error) {
	return m.contract(m.Called(ctx, actor, id))
}

func (m *MockContractService) Sign(ctx context.Context, actor shared.Actor, id uuid.UUID, req appcontract.SignContractRequest) (*appcontract.ContractResponse, error) {
	return m.contract(m.Called(ctx, actor, id, req))
}

func (m *MockContractService) Activate(ctx context.Context, actor shared.Actor, id uuid.UUID) (*appcontract.ContractResponse, error) {
	return m.contract(m.Called(ctx, actor, id))
}

func (m *MockContractService) Terminate(ctx context.Context, actor shared.Actor, id uuid.UUID) (*appcontract.ContractResponse, error) {
	return m.contract(m.Called(ctx, actor, id))
}

func (m *MockContractService) Cancel(ctx context.Context, actor shared.Actor, id uuid.UUID, req appcontract.CancelContractRequest) (*appcontract.ContractResponse, error) {
	return m.contract(m.Called(ctx, actor, id, req))
}

func (m *MockContractService) RenderPDF(ctx context.Context, actor shared.Actor, id uuid.UUID) ([]byte, string, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}

// MockDocumentService implements DocumentService for testing
type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) document(args mock.Arguments) (*appdocument.DocumentResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appdocument.DocumentResponse), args.Error(1)
}

func (m *MockDocumentService) UploadDocument(ctx context.Context, actor shared.Actor, contractID uuid.UUID, req appdocument.UploadDocumentRequest) (*appdocument.DocumentResponse, error) {
	return m.document(m.Called(ctx, actor, contractID, req))
}

func (m *MockDocumentService) ValidateDocument(ctx context.Context, actor shared.Actor, contractID, documentID uuid.UUID) (*appdocument.DocumentResponse, error) {
	return m.document(m.Called(ctx, actor, contractID, documentID))
}

func (m *MockDocumentService) RejectDocument(ctx context.Context, actor shared.Actor, contractID, documentID uuid.UUID, req appdocument.RejectDocumentRequest) (*appdocument.DocumentResponse, error) {
	return m.document(m.Called(ctx, actor, contractID, documentID, req))
}

func (m *MockDocumentService) GetChecklistStatus(ctx context.Context, actor shared.Actor, contractID uuid.UUID) (*appdocument.ChecklistResponse, error) {
	args := m.Called(ctx, actor, contractID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appdocument.ChecklistResponse), args.Error(1)
}

func (m *MockDocumentService) ListDocuments(ctx context.Context, actor shared.Actor, contractID uuid.UUID) ([]appdocument.DocumentResponse, error) {
	args := m.Called(ctx, actor, contractID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]appdocument.DocumentResponse), args.Error(1)
}

func (m *MockDocumentService) DeleteDocument(ctx context.Context, actor shared.Actor, contractID, documentID uuid.UUID) error {
	return m.Called(ctx, actor, contractID, documentID).Error(0)
}

func (m *MockDocumentService) RequestUploadURL(ctx context.Context, actor shared.Actor, contractID uuid.UUID, req appdocument.UploadURLRequest) (*appdocument.UploadURLResponse, error) {
	args := m.Called(ctx, actor, contractID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appdocument.UploadURLResponse), args.Error(1)
}
