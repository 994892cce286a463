//go:build integration

package integration

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	appbooking "github.com/rentals/backend/internal/application/booking"
	"github.com/rentals/backend/internal/domain/booking"
	"github.com/rentals/backend/internal/domain/contract"
	"github.com/rentals/backend/internal/domain/document"
	"github.com/rentals/backend/internal/domain/property"
	"github.com/rentals/backend/internal/domain/shared"
	"github.com/rentals/backend/internal/infrastructure/persistence"
	"github.com/rentals/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type bookingSetup struct {
	DB           *TestDB
	PropertyRepo *persistence.GormPropertyRepository
	BookingRepo  *persistence.GormBookingRepository
	Service      *appbooking.BookingService
	Property     *property.Property
	VisitDate    string
}

func newBookingSetup(t *testing.T) *bookingSetup {
	t.Helper()

	testDB := NewTestDB(t)
	propertyRepo := persistence.NewGormPropertyRepository(testDB.DB)
	bookingRepo := persistence.NewGormBookingRepository(testDB.DB)

	p, err := property.NewProperty(uuid.New(), "Loft Canal", "12 rue Oberkampf", 30)
	require.NoError(t, err)
	require.NoError(t, propertyRepo.Save(context.Background(), p))

	service := appbooking.NewBookingService(bookingRepo, propertyRepo,
		persistence.NewGormTransactionScope(testDB.DB), zaptest.NewLogger(t))

	return &bookingSetup{
		DB:           testDB,
		PropertyRepo: propertyRepo,
		BookingRepo:  bookingRepo,
		Service:      service,
		Property:     p,
		VisitDate:    time.Now().AddDate(0, 0, 7).Format(property.DateLayout),
	}
}

func (s *bookingSetup) request(visitTime string) appbooking.CreateBookingRequest {
	return appbooking.CreateBookingRequest{
		PropertyID: s.Property.ID,
		VisitDate:  s.VisitDate,
		VisitTime:  visitTime,
	}
}

func TestCreateBooking_ParallelRequestsForSameSlot(t *testing.T) {
	s := newBookingSetup(t)
	ctx := context.Background()

	const n = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
		others    []error
	)
	start := make(chan struct{})
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			tenant := shared.NewActor(uuid.New(), shared.RoleTenant)
			_, err := s.Service.Create(ctx, tenant, s.request("10:00"))

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, shared.ErrConflict):
				conflicts++
			default:
				others = append(others, err)
			}
		}()
	}
	close(start)
	wg.Wait()

	require.Empty(t, others)
	assert.Equal(t, 1, successes)
	assert.Equal(t, n-1, conflicts)

	var active int64
	require.NoError(t, s.DB.DB.Model(&models.BookingModel{}).
		Where("property_id = ? AND status IN ?", s.Property.ID, []string{"PENDING", "CONFIRMED"}).
		Count(&active).Error)
	assert.Equal(t, int64(1), active)
}

func TestCreateBooking_CancelledSlotCanBeRebooked(t *testing.T) {
	s := newBookingSetup(t)
	ctx := context.Background()

	first := shared.NewActor(uuid.New(), shared.RoleTenant)
	created, err := s.Service.Create(ctx, first, s.request("11:00"))
	require.NoError(t, err)

	second := shared.NewActor(uuid.New(), shared.RoleTenant)
	_, err = s.Service.Create(ctx, second, s.request("11:00"))
	require.ErrorIs(t, err, shared.ErrConflict)

	_, err = s.Service.Cancel(ctx, first, created.ID, appbooking.CancelBookingRequest{})
	require.NoError(t, err)

	rebooked, err := s.Service.Create(ctx, second, s.request("11:00"))
	require.NoError(t, err)
	assert.Equal(t, string(booking.BookingStatusPending), rebooked.Status)
}

func TestBookingRepository_UniqueIndexRejectsSecondActiveSlot(t *testing.T) {
	s := newBookingSetup(t)
	ctx := context.Background()
	date := time.Now().AddDate(0, 0, 3)

	a, err := booking.NewBooking(s.Property.ID, uuid.New(), date, "14:00", 30, nil)
	require.NoError(t, err)
	require.NoError(t, s.BookingRepo.Create(ctx, a))

	// Skip the service-level check to hit the index directly
	b, err := booking.NewBooking(s.Property.ID, uuid.New(), date, "14:00", 30, nil)
	require.NoError(t, err)
	assert.ErrorIs(t, s.BookingRepo.Create(ctx, b), shared.ErrConflict)
}

func TestDocumentUpsert_ParallelUploadsKeepOneRow(t *testing.T) {
	testDB := NewTestDB(t)
	ctx := context.Background()

	p, err := property.NewProperty(uuid.New(), "Studio", "", 30)
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormPropertyRepository(testDB.DB).Save(ctx, p))

	tenantID := uuid.New()
	c, err := contract.NewContract(p.ID, p.OwnerID, tenantID, contract.LeaseTerms{
		StartDate:   time.Now().AddDate(0, 1, 0),
		EndDate:     time.Now().AddDate(1, 1, 0),
		MonthlyRent: decimal.NewFromInt(950),
	})
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormContractRepository(testDB.DB).Create(ctx, c))

	docs := persistence.NewGormDocumentRepository(testDB.DB)

	const n = 6
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			d, err := document.NewContractDocument(c.ID, tenantID, document.FileInfo{
				Category: document.CategoryIDCard,
				FileName: fmt.Sprintf("id-%d.pdf", i),
				FileURL:  fmt.Sprintf("https://files.example.com/id-%d.pdf", i),
				FileSize: 1024,
				MimeType: "application/pdf",
			})
			if err != nil {
				errs[i] = err
				return
			}
			errs[i] = docs.Upsert(ctx, d)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	all, err := docs.FindByContract(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, document.DocumentStatusUploaded, all[0].Status)
}
