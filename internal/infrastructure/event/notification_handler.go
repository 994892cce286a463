package event

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/rentals/backend/internal/domain/booking"
	"github.com/rentals/backend/internal/domain/contract"
	"github.com/rentals/backend/internal/domain/document"
	"github.com/rentals/backend/internal/domain/property"
	"github.com/rentals/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Notification is a message addressed to marketplace users
type Notification struct {
	EventID     uuid.UUID
	EventType   string
	AggregateID uuid.UUID
	Recipients  []uuid.UUID
	Message     string
}

// Notifier delivers notifications. Email and push delivery live outside this
// service; LogNotifier is the only built-in sink.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// LogNotifier writes notifications to the log
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a LogNotifier
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(_ context.Context, note Notification) error {
	recipients := make([]string, len(note.Recipients))
	for i, r := range note.Recipients {
		recipients[i] = r.String()
	}
	n.logger.Info("Notification dispatched",
		zap.String("event_type", note.EventType),
		zap.String("event_id", note.EventID.String()),
		zap.Strings("recipients", recipients),
		zap.String("message", note.Message),
	)
	return nil
}

// Directory resolves the users attached to a property or contract
type Directory interface {
	PropertyOwner(ctx context.Context, propertyID uuid.UUID) (uuid.UUID, error)
	ContractParties(ctx context.Context, contractID uuid.UUID) (ownerID, tenantID uuid.UUID, err error)
}

// RepositoryDirectory implements Directory on the domain repositories
type RepositoryDirectory struct {
	Properties property.PropertyRepository
	Contracts  contract.ContractRepository
}

func (d RepositoryDirectory) PropertyOwner(ctx context.Context, propertyID uuid.UUID) (uuid.UUID, error) {
	p, err := d.Properties.FindByID(ctx, propertyID)
	if err != nil {
		return uuid.Nil, err
	}
	return p.OwnerID, nil
}

func (d RepositoryDirectory) ContractParties(ctx context.Context, contractID uuid.UUID) (uuid.UUID, uuid.UUID, error) {
	c, err := d.Contracts.FindByID(ctx, contractID)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return c.OwnerID, c.TenantID, nil
}

// NotificationHandler turns booking, contract and document events into
// notifications for the parties who did not cause them.
type NotificationHandler struct {
	notifier  Notifier
	directory Directory
	logger    *zap.Logger
}

var _ shared.EventHandler = (*NotificationHandler)(nil)

// NewNotificationHandler creates a NotificationHandler
func NewNotificationHandler(notifier Notifier, directory Directory, logger *zap.Logger) *NotificationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationHandler{notifier: notifier, directory: directory, logger: logger}
}

func (h *NotificationHandler) EventTypes() []string {
	return []string{
		booking.EventTypeBookingCreated,
		booking.EventTypeBookingConfirmed,
		booking.EventTypeBookingCancelled,
		booking.EventTypeBookingRescheduled,
		contract.EventTypeContractSent,
		contract.EventTypeContractPartySigned,
		contract.EventTypeContractSigned,
		contract.EventTypeContractActivated,
		contract.EventTypeContractTerminated,
		contract.EventTypeContractCancelled,
		contract.EventTypeContractExpired,
		document.EventTypeDocumentUploaded,
		document.EventTypeDocumentStatusChanged,
	}
}

func (h *NotificationHandler) Handle(ctx context.Context, e shared.DomainEvent) error {
	recipients, message, err := h.compose(ctx, e)
	if err != nil {
		return fmt.Errorf("compose %s notification: %w", e.EventType(), err)
	}
	recipients = slices.DeleteFunc(recipients, func(id uuid.UUID) bool {
		return id == uuid.Nil || id == e.ActorID()
	})
	slices.SortFunc(recipients, func(a, b uuid.UUID) int { return slices.Compare(a[:], b[:]) })
	recipients = slices.Compact(recipients)
	if len(recipients) == 0 {
		return nil
	}

	return h.notifier.Notify(ctx, Notification{
		EventID:     e.EventID(),
		EventType:   e.EventType(),
		AggregateID: e.AggregateID(),
		Recipients:  recipients,
		Message:     message,
	})
}

func (h *NotificationHandler) compose(ctx context.Context, e shared.DomainEvent) ([]uuid.UUID, string, error) {
	switch ev := e.(type) {
	case *booking.BookingCreatedEvent:
		owner, err := h.directory.PropertyOwner(ctx, ev.PropertyID)
		if err != nil {
			return nil, "", err
		}
		return []uuid.UUID{owner}, fmt.Sprintf("New visit request for %s at %s", ev.VisitDate, ev.VisitTime), nil
	case *booking.BookingConfirmedEvent:
		return []uuid.UUID{ev.TenantID}, fmt.Sprintf("Your visit on %s at %s is confirmed", ev.VisitDate, ev.VisitTime), nil
	case *booking.BookingCancelledEvent:
		return h.bookingParties(ctx, ev.BookingSlot, fmt.Sprintf("The visit on %s at %s was cancelled", ev.VisitDate, ev.VisitTime))
	case *booking.BookingRescheduledEvent:
		return h.bookingParties(ctx, ev.BookingSlot, fmt.Sprintf("The visit moved to %s at %s", ev.VisitDate, ev.VisitTime))
	case *contract.ContractSentEvent:
		return []uuid.UUID{ev.TenantID}, "A rental contract is waiting for your signature", nil
	case *contract.ContractPartySignedEvent:
		if ev.Party == contract.PartyOwner {
			return []uuid.UUID{ev.TenantID}, "The owner signed the contract", nil
		}
		return []uuid.UUID{ev.OwnerID}, "The tenant signed the contract", nil
	case *contract.ContractFullySignedEvent:
		return contractParties(ev.ContractParties), "The contract is signed by both parties", nil
	case *contract.ContractActivatedEvent:
		return contractParties(ev.ContractParties), "The lease is now active", nil
	case *contract.ContractTerminatedEvent:
		return contractParties(ev.ContractParties), "The lease was terminated", nil
	case *contract.ContractCancelledEvent:
		return contractParties(ev.ContractParties), "The contract was cancelled", nil
	case *contract.ContractExpiredEvent:
		return contractParties(ev.ContractParties), "The lease has ended", nil
	case *document.DocumentUploadedEvent:
		owner, _, err := h.directory.ContractParties(ctx, ev.ContractID)
		if err != nil {
			return nil, "", err
		}
		return []uuid.UUID{owner}, fmt.Sprintf("A %s document was uploaded", ev.Category), nil
	case *document.DocumentStatusChangedEvent:
		return []uuid.UUID{ev.UploadedByID}, fmt.Sprintf("Your %s document is %s", ev.Category, ev.NewStatus), nil
	default:
		h.logger.Debug("No notification for event", zap.String("event_type", e.EventType()))
		return nil, "", nil
	}
}

func (h *NotificationHandler) bookingParties(ctx context.Context, slot booking.BookingSlot, message string) ([]uuid.UUID, string, error) {
	owner, err := h.directory.PropertyOwner(ctx, slot.PropertyID)
	if err != nil {
		return nil, "", err
	}
	return []uuid.UUID{owner, slot.TenantID}, message, nil
}

func contractParties(p contract.ContractParties) []uuid.UUID {
	return []uuid.UUID{p.OwnerID, p.TenantID}
}
