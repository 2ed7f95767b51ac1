package services

import (
	"testing"
	"time"

	"salonease-backend/models"
	"salonease-backend/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBooking(t *testing.T) {
	svc, db := newTestService(t)
	owner := makeUser(t, db, models.RoleSalonOwner)
	customer := makeUser(t, db, models.RoleCustomer)
	salon := makeSalon(t, db, owner)
	catalogSvc := makeCatalogService(t, db, salon)

	t.Run("creates pending booking", func(t *testing.T) {
		booking := &models.Booking{
			SalonID:         salon.ID,
			ServiceID:       catalogSvc.ID,
			AppointmentDate: time.Now().AddDate(0, 0, 1),
			StartTime:       "10:00",
			EndTime:         "10:30",
			Duration:        30,
			TotalAmount:     30,
		}
		require.NoError(t, svc.Create(actorOf(customer), booking))
		assert.Equal(t, models.StatusPending, booking.Status)
		assert.Equal(t, customer.ID, booking.CustomerID)

		var loaded models.Booking
		require.NoError(t, db.First(&loaded, "id = ?", booking.ID).Error)
		assert.Equal(t, models.StatusPending, loaded.Status)
		assert.Equal(t, "10:00", loaded.StartTime)
		assert.Equal(t, "10:30", loaded.EndTime)
	})

	t.Run("unknown salon", func(t *testing.T) {
		booking := &models.Booking{
			SalonID:         uuid.New(),
			ServiceID:       catalogSvc.ID,
			AppointmentDate: time.Now().AddDate(0, 0, 1),
			StartTime:       "10:00",
			EndTime:         "10:30",
		}
		assert.ErrorIs(t, svc.Create(actorOf(customer), booking), ErrSalonNotFound)
	})

	t.Run("unknown service", func(t *testing.T) {
		booking := &models.Booking{
			SalonID:         salon.ID,
			ServiceID:       uuid.New(),
			AppointmentDate: time.Now().AddDate(0, 0, 1),
			StartTime:       "10:00",
			EndTime:         "10:30",
		}
		assert.ErrorIs(t, svc.Create(actorOf(customer), booking), ErrServiceNotFound)
	})

	t.Run("start after end", func(t *testing.T) {
		booking := &models.Booking{
			SalonID:         salon.ID,
			ServiceID:       catalogSvc.ID,
			AppointmentDate: time.Now().AddDate(0, 0, 1),
			StartTime:       "11:00",
			EndTime:         "10:00",
		}
		assert.ErrorIs(t, svc.Create(actorOf(customer), booking), models.ErrTimeOrder)
	})

	t.Run("past date", func(t *testing.T) {
		booking := &models.Booking{
			SalonID:         salon.ID,
			ServiceID:       catalogSvc.ID,
			AppointmentDate: time.Now().AddDate(0, 0, -1),
			StartTime:       "10:00",
			EndTime:         "10:30",
		}
		assert.ErrorIs(t, svc.Create(actorOf(customer), booking), models.ErrPastDate)
	})
}

func TestBookingAccess(t *testing.T) {
	svc, db := newTestService(t)
	owner := makeUser(t, db, models.RoleSalonOwner)
	customer := makeUser(t, db, models.RoleCustomer)
	other := makeUser(t, db, models.RoleCustomer)
	admin := makeUser(t, db, models.RoleAdmin)
	salon := makeSalon(t, db, owner)
	catalogSvc := makeCatalogService(t, db, salon)
	booking := makeBooking(t, db, customer, salon, catalogSvc, models.StatusPending)

	for _, actor := range []utils.Actor{actorOf(customer), actorOf(owner), actorOf(admin)} {
		got, err := svc.GetByID(actor, booking.ID)
		require.NoError(t, err, actor.Role)
		assert.Equal(t, booking.ID, got.ID)
	}

	_, err := svc.GetByID(actorOf(other), booking.ID)
	assert.ErrorIs(t, err, ErrBookingForbidden)

	_, err = svc.GetByID(actorOf(customer), uuid.New())
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestUpdateBooking(t *testing.T) {
	svc, db := newTestService(t)
	owner := makeUser(t, db, models.RoleSalonOwner)
	customer := makeUser(t, db, models.RoleCustomer)
	salon := makeSalon(t, db, owner)
	catalogSvc := makeCatalogService(t, db, salon)
	booking := makeBooking(t, db, customer, salon, catalogSvc, models.StatusPending)

	newStart := "14:00"
	newEnd := "14:45"
	notes := "please be gentle"
	updated, err := svc.Update(actorOf(customer), booking.ID, BookingPatch{
		StartTime:     &newStart,
		EndTime:       &newEnd,
		CustomerNotes: &notes,
	})
	require.NoError(t, err)
	assert.Equal(t, "14:00", updated.StartTime)
	assert.Equal(t, "please be gentle", updated.CustomerNotes)

	// patched times are re-validated
	badEnd := "13:00"
	_, err = svc.Update(actorOf(customer), booking.ID, BookingPatch{EndTime: &badEnd})
	assert.ErrorIs(t, err, models.ErrTimeOrder)

	other := makeUser(t, db, models.RoleCustomer)
	_, err = svc.Update(actorOf(other), booking.ID, BookingPatch{CustomerNotes: &notes})
	assert.ErrorIs(t, err, ErrBookingForbidden)
}

func TestUpdateStatus(t *testing.T) {
	svc, db := newTestService(t)
	owner := makeUser(t, db, models.RoleSalonOwner)
	customer := makeUser(t, db, models.RoleCustomer)
	salon := makeSalon(t, db, owner)
	catalogSvc := makeCatalogService(t, db, salon)

	t.Run("owner confirms pending", func(t *testing.T) {
		booking := makeBooking(t, db, customer, salon, catalogSvc, models.StatusPending)
		updated, err := svc.UpdateStatus(actorOf(owner), booking.ID, models.StatusConfirmed)
		require.NoError(t, err)
		assert.Equal(t, models.StatusConfirmed, updated.Status)
	})

	t.Run("customer may not transition", func(t *testing.T) {
		booking := makeBooking(t, db, customer, salon, catalogSvc, models.StatusPending)
		_, err := svc.UpdateStatus(actorOf(customer), booking.ID, models.StatusConfirmed)
		assert.ErrorIs(t, err, ErrBookingForbidden)
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		booking := makeBooking(t, db, customer, salon, catalogSvc, models.StatusPending)
		_, err := svc.UpdateStatus(actorOf(owner), booking.ID, "sideways")
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("illegal transition rejected", func(t *testing.T) {
		booking := makeBooking(t, db, customer, salon, catalogSvc, models.StatusPending)
		_, err := svc.UpdateStatus(actorOf(owner), booking.ID, models.StatusCompleted)
		assert.ErrorIs(t, err, ErrInvalidTransition)

		done := makeBooking(t, db, customer, salon, catalogSvc, models.StatusCompleted)
		_, err = svc.UpdateStatus(actorOf(owner), done.ID, models.StatusPending)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("completion stamps check-out", func(t *testing.T) {
		booking := makeBooking(t, db, customer, salon, catalogSvc, models.StatusConfirmed)
		_, err := svc.UpdateStatus(actorOf(owner), booking.ID, models.StatusCompleted)
		require.NoError(t, err)

		var loaded models.Booking
		require.NoError(t, db.First(&loaded, "id = ?", booking.ID).Error)
		assert.Equal(t, models.StatusCompleted, loaded.Status)
		assert.NotNil(t, loaded.CheckOutTime)
	})
}

func TestCancelBooking(t *testing.T) {
	svc, db := newTestService(t)
	owner := makeUser(t, db, models.RoleSalonOwner)
	customer := makeUser(t, db, models.RoleCustomer)
	salon := makeSalon(t, db, owner)
	catalogSvc := makeCatalogService(t, db, salon)
	booking := makeBooking(t, db, customer, salon, catalogSvc, models.StatusPending)

	require.NoError(t, svc.Cancel(actorOf(customer), booking.ID, "changed my mind"))

	var loaded models.Booking
	require.NoError(t, db.First(&loaded, "id = ?", booking.ID).Error)
	assert.Equal(t, models.StatusCancelled, loaded.Status)
	assert.Equal(t, "changed my mind", loaded.CancellationReason)
	assert.Equal(t, models.RoleCustomer, loaded.CancelledBy)
	assert.NotNil(t, loaded.CancellationDate)

	other := makeUser(t, db, models.RoleCustomer)
	another := makeBooking(t, db, customer, salon, catalogSvc, models.StatusPending)
	assert.ErrorIs(t, svc.Cancel(actorOf(other), another.ID, ""), ErrBookingForbidden)
}

func TestReviewLifecycle(t *testing.T) {
	svc, db := newTestService(t)
	owner := makeUser(t, db, models.RoleSalonOwner)
	customer := makeUser(t, db, models.RoleCustomer)
	salon := makeSalon(t, db, owner)
	catalogSvc := makeCatalogService(t, db, salon)

	t.Run("only completed bookings are reviewable", func(t *testing.T) {
		booking := makeBooking(t, db, customer, salon, catalogSvc, models.StatusPending)
		err := svc.AddReview(actorOf(customer), booking.ID, 5, "great")
		assert.ErrorIs(t, err, ErrNotCompleted)
	})

	t.Run("first review wins and aggregates update", func(t *testing.T) {
		booking := makeBooking(t, db, customer, salon, catalogSvc, models.StatusCompleted)
		require.NoError(t, svc.AddReview(actorOf(customer), booking.ID, 5, "great"))

		err := svc.AddReview(actorOf(customer), booking.ID, 4, "again")
		assert.ErrorIs(t, err, ErrReviewExists)

		var loadedSalon models.Salon
		require.NoError(t, db.First(&loadedSalon, "id = ?", salon.ID).Error)
		assert.Equal(t, 1, loadedSalon.Rating.Count)
		assert.InDelta(t, 5.0, loadedSalon.Rating.Average, 0.001)

		var loadedService models.Service
		require.NoError(t, db.First(&loadedService, "id = ?", catalogSvc.ID).Error)
		assert.Equal(t, 1, loadedService.Rating.Count)
		assert.InDelta(t, 5.0, loadedService.Rating.Average, 0.001)
	})

	t.Run("second review folds into weighted average", func(t *testing.T) {
		booking := makeBooking(t, db, customer, salon, catalogSvc, models.StatusCompleted)
		require.NoError(t, svc.AddReview(actorOf(customer), booking.ID, 3, "fine"))

		var loadedSalon models.Salon
		require.NoError(t, db.First(&loadedSalon, "id = ?", salon.ID).Error)
		assert.Equal(t, 2, loadedSalon.Rating.Count)
		assert.InDelta(t, 4.0, loadedSalon.Rating.Average, 0.001)
	})

	t.Run("only the customer may review", func(t *testing.T) {
		other := makeUser(t, db, models.RoleCustomer)
		booking := makeBooking(t, db, customer, salon, catalogSvc, models.StatusCompleted)
		err := svc.AddReview(actorOf(other), booking.ID, 5, "not mine")
		assert.ErrorIs(t, err, ErrBookingForbidden)
	})

	t.Run("update replaces the rating contribution", func(t *testing.T) {
		booking := makeBooking(t, db, customer, salon, catalogSvc, models.StatusCompleted)
		require.NoError(t, svc.AddReview(actorOf(customer), booking.ID, 1, "bad"))

		var before models.Salon
		require.NoError(t, db.First(&before, "id = ?", salon.ID).Error)

		require.NoError(t, svc.UpdateReview(actorOf(customer), booking.ID, 5, "actually great"))

		var after models.Salon
		require.NoError(t, db.First(&after, "id = ?", salon.ID).Error)
		assert.Equal(t, before.Rating.Count, after.Rating.Count)
		assert.Greater(t, after.Rating.Average, before.Rating.Average)

		var loaded models.Booking
		require.NoError(t, db.First(&loaded, "id = ?", booking.ID).Error)
		require.NotNil(t, loaded.Rating)
		assert.Equal(t, 5, *loaded.Rating)
	})

	t.Run("delete clears the review and the contribution", func(t *testing.T) {
		booking := makeBooking(t, db, customer, salon, catalogSvc, models.StatusCompleted)
		require.NoError(t, svc.AddReview(actorOf(customer), booking.ID, 2, "meh"))

		var before models.Salon
		require.NoError(t, db.First(&before, "id = ?", salon.ID).Error)

		require.NoError(t, svc.DeleteReview(actorOf(customer), booking.ID))

		var loaded models.Booking
		require.NoError(t, db.First(&loaded, "id = ?", booking.ID).Error)
		assert.False(t, loaded.HasReview())
		assert.Nil(t, loaded.Rating)

		var after models.Salon
		require.NoError(t, db.First(&after, "id = ?", salon.ID).Error)
		assert.Equal(t, before.Rating.Count-1, after.Rating.Count)

		assert.ErrorIs(t, svc.DeleteReview(actorOf(customer), booking.ID), ErrReviewMissing)
	})

	t.Run("public listings carry only the review projection", func(t *testing.T) {
		reviews, err := svc.ReviewsForSalon(salon.ID)
		require.NoError(t, err)
		require.NotEmpty(t, reviews)
		for _, r := range reviews {
			assert.GreaterOrEqual(t, r.Rating, 1)
			assert.NotEmpty(t, r.Review)
			assert.False(t, r.ReviewDate.IsZero())
			assert.Equal(t, customer.Name, r.Customer.Name)
		}

		reviews, err = svc.ReviewsForService(catalogSvc.ID)
		require.NoError(t, err)
		assert.NotEmpty(t, reviews)
	})
}

func TestListBookings(t *testing.T) {
	svc, db := newTestService(t)
	owner := makeUser(t, db, models.RoleSalonOwner)
	customer := makeUser(t, db, models.RoleCustomer)
	admin := makeUser(t, db, models.RoleAdmin)
	salon := makeSalon(t, db, owner)
	catalogSvc := makeCatalogService(t, db, salon)
	makeBooking(t, db, customer, salon, catalogSvc, models.StatusPending)
	makeBooking(t, db, customer, salon, catalogSvc, models.StatusConfirmed)

	mine, err := svc.ListForCustomer(actorOf(customer))
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	forSalon, err := svc.ListForSalon(actorOf(owner), salon.ID)
	require.NoError(t, err)
	assert.Len(t, forSalon, 2)

	forSalon, err = svc.ListForSalon(actorOf(admin), salon.ID)
	require.NoError(t, err)
	assert.Len(t, forSalon, 2)

	_, err = svc.ListForSalon(actorOf(customer), salon.ID)
	assert.ErrorIs(t, err, ErrBookingForbidden)

	owned, err := svc.ListForOwner(actorOf(owner))
	require.NoError(t, err)
	assert.Len(t, owned, 2)

	_, err = svc.ListForOwner(actorOf(customer))
	assert.ErrorIs(t, err, ErrSalonNotFound)
}
