package service_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/service"
)

var _ = Describe("ScheduleService", func() {
	var (
		ctx       context.Context
		bookings  *mockBookingRepository
		schedule  *service.ScheduleService
		requester *domain.User
		manager   *domain.User
		scheduler *domain.User
	)

	input := func(room, date, start, end string) service.BookingInput {
		return service.BookingInput{
			Title:     "Sprint planning",
			Subject:   "Q2 roadmap",
			Date:      date,
			Start:     start,
			End:       end,
			VideoLink: "https://meet.example.com/abc",
			Room:      room,
		}
	}

	BeforeEach(func() {
		ctx = context.Background()
		bookings = newMockBookingRepository()
		schedule = service.NewScheduleService(service.ScheduleDependencies{BookingRepo: bookings})
		requester = &domain.User{ID: "user-1", Role: domain.RoleRequester, Section: "ops"}
		manager = &domain.User{ID: "user-2", Role: domain.RoleManager, Section: "ops"}
		scheduler = &domain.User{ID: "user-3", Role: domain.RoleScheduler}
	})

	Describe("CreateBooking", func() {
		It("persists a valid booking with the caller as organizer", func() {
			booking, err := schedule.CreateBooking(ctx, requester, input("room-1", "2026-03-10", "09:00", "10:00"))
			Expect(err).NotTo(HaveOccurred())
			Expect(booking.ID).NotTo(BeEmpty())
			Expect(booking.OrganizerID).To(Equal(requester.ID))
			Expect(booking.Start.String()).To(Equal("09:00"))
			Expect(booking.End.String()).To(Equal("10:00"))
		})

		It("rejects an overlapping booking in the same room and day", func() {
			_, err := schedule.CreateBooking(ctx, requester, input("room-1", "2026-03-10", "09:00", "10:00"))
			Expect(err).NotTo(HaveOccurred())

			_, err = schedule.CreateBooking(ctx, manager, input("room-1", "2026-03-10", "09:30", "10:30"))
			expectDomainCode(err, "CONFLICT")

			all, listErr := bookings.ListAll(ctx)
			Expect(listErr).NotTo(HaveOccurred())
			Expect(all).To(HaveLen(1))
		})

		It("allows the same window in the other room", func() {
			_, err := schedule.CreateBooking(ctx, requester, input("room-1", "2026-03-10", "09:00", "10:00"))
			Expect(err).NotTo(HaveOccurred())
			_, err = schedule.CreateBooking(ctx, manager, input("room-2", "2026-03-10", "09:00", "10:00"))
			Expect(err).NotTo(HaveOccurred())
		})

		It("allows the same window on another day", func() {
			_, err := schedule.CreateBooking(ctx, requester, input("room-1", "2026-03-10", "09:00", "10:00"))
			Expect(err).NotTo(HaveOccurred())
			_, err = schedule.CreateBooking(ctx, requester, input("room-1", "2026-03-11", "09:00", "10:00"))
			Expect(err).NotTo(HaveOccurred())
		})

		It("allows back-to-back bookings", func() {
			_, err := schedule.CreateBooking(ctx, requester, input("room-1", "2026-03-10", "09:00", "10:00"))
			Expect(err).NotTo(HaveOccurred())
			_, err = schedule.CreateBooking(ctx, manager, input("room-1", "2026-03-10", "10:00", "11:00"))
			Expect(err).NotTo(HaveOccurred())
		})

		It("rejects an end time at or before the start time", func() {
			_, err := schedule.CreateBooking(ctx, requester, input("room-1", "2026-03-10", "10:00", "10:00"))
			expectDomainCode(err, "VALIDATION_FAILED")

			_, err = schedule.CreateBooking(ctx, requester, input("room-1", "2026-03-10", "10:00", "09:00"))
			expectDomainCode(err, "VALIDATION_FAILED")
		})

		It("rejects missing fields", func() {
			bad := input("room-1", "2026-03-10", "09:00", "10:00")
			bad.Title = "  "
			_, err := schedule.CreateBooking(ctx, requester, bad)
			expectDomainCode(err, "VALIDATION_FAILED")
		})

		It("rejects an unknown room", func() {
			_, err := schedule.CreateBooking(ctx, requester, input("room-9", "2026-03-10", "09:00", "10:00"))
			expectDomainCode(err, "VALIDATION_FAILED")
		})

		It("rejects malformed dates and times", func() {
			_, err := schedule.CreateBooking(ctx, requester, input("room-1", "10/03/2026", "09:00", "10:00"))
			expectDomainCode(err, "VALIDATION_FAILED")

			_, err = schedule.CreateBooking(ctx, requester, input("room-1", "2026-03-10", "9am", "10:00"))
			expectDomainCode(err, "VALIDATION_FAILED")
		})

		It("requires authentication", func() {
			_, err := schedule.CreateBooking(ctx, nil, input("room-1", "2026-03-10", "09:00", "10:00"))
			expectDomainCode(err, "UNAUTHORIZED")
		})
	})

	Describe("UpdateBooking", func() {
		var existing *domain.Booking

		BeforeEach(func() {
			var err error
			existing, err = schedule.CreateBooking(ctx, requester, input("room-1", "2026-03-10", "09:00", "10:00"))
			Expect(err).NotTo(HaveOccurred())
		})

		It("moves a booking to a free window", func() {
			updated, err := schedule.UpdateBooking(ctx, requester, existing.ID, input("room-1", "2026-03-10", "11:00", "12:00"))
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Start.String()).To(Equal("11:00"))
			Expect(updated.OrganizerID).To(Equal(requester.ID))
		})

		It("does not conflict with the booking's own window", func() {
			_, err := schedule.UpdateBooking(ctx, requester, existing.ID, input("room-1", "2026-03-10", "09:30", "10:30"))
			Expect(err).NotTo(HaveOccurred())
		})

		It("rejects moving onto another booking", func() {
			_, err := schedule.CreateBooking(ctx, manager, input("room-1", "2026-03-10", "11:00", "12:00"))
			Expect(err).NotTo(HaveOccurred())

			_, err = schedule.UpdateBooking(ctx, requester, existing.ID, input("room-1", "2026-03-10", "11:30", "12:30"))
			expectDomainCode(err, "CONFLICT")
		})

		It("forbids a non-organizer without elevated role", func() {
			other := &domain.User{ID: "user-9", Role: domain.RoleRequester}
			_, err := schedule.UpdateBooking(ctx, other, existing.ID, input("room-1", "2026-03-10", "11:00", "12:00"))
			expectDomainCode(err, "FORBIDDEN")
		})

		It("lets a scheduler update any booking", func() {
			_, err := schedule.UpdateBooking(ctx, scheduler, existing.ID, input("room-1", "2026-03-10", "11:00", "12:00"))
			Expect(err).NotTo(HaveOccurred())
		})

		It("returns not found for an unknown booking", func() {
			_, err := schedule.UpdateBooking(ctx, manager, "booking-404", input("room-1", "2026-03-10", "11:00", "12:00"))
			expectDomainCode(err, "NOT_FOUND")
		})
	})

	Describe("DeleteBooking", func() {
		var existing *domain.Booking

		BeforeEach(func() {
			var err error
			existing, err = schedule.CreateBooking(ctx, requester, input("room-2", "2026-03-10", "09:00", "10:00"))
			Expect(err).NotTo(HaveOccurred())
		})

		It("lets the organizer cancel", func() {
			Expect(schedule.DeleteBooking(ctx, requester, existing.ID)).To(Succeed())
			all, err := bookings.ListAll(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(all).To(BeEmpty())
		})

		It("frees the slot for new bookings", func() {
			Expect(schedule.DeleteBooking(ctx, requester, existing.ID)).To(Succeed())
			_, err := schedule.CreateBooking(ctx, manager, input("room-2", "2026-03-10", "09:00", "10:00"))
			Expect(err).NotTo(HaveOccurred())
		})

		It("forbids a non-organizer without elevated role", func() {
			other := &domain.User{ID: "user-9", Role: domain.RoleTechnician}
			expectDomainCode(schedule.DeleteBooking(ctx, other, existing.ID), "FORBIDDEN")
		})

		It("lets a manager cancel any booking", func() {
			Expect(schedule.DeleteBooking(ctx, manager, existing.ID)).To(Succeed())
		})
	})

	Describe("ListBookings", func() {
		BeforeEach(func() {
			_, err := schedule.CreateBooking(ctx, requester, input("room-1", "2026-03-10", "09:00", "10:00"))
			Expect(err).NotTo(HaveOccurred())
			_, err = schedule.CreateBooking(ctx, scheduler, input("room-1", "2026-03-10", "10:00", "11:00"))
			Expect(err).NotTo(HaveOccurred())
		})

		It("shows a requester only bookings they organized", func() {
			visible, err := schedule.ListBookings(ctx, requester)
			Expect(err).NotTo(HaveOccurred())
			Expect(visible).To(HaveLen(1))
			Expect(visible[0].OrganizerID).To(Equal(requester.ID))
		})

		It("shows managers and schedulers everything", func() {
			for _, actor := range []*domain.User{manager, scheduler} {
				visible, err := schedule.ListBookings(ctx, actor)
				Expect(err).NotTo(HaveOccurred())
				Expect(visible).To(HaveLen(2))
			}
		})

		It("orders by date then start time", func() {
			_, err := schedule.CreateBooking(ctx, scheduler, input("room-2", "2026-03-09", "15:00", "16:00"))
			Expect(err).NotTo(HaveOccurred())

			visible, err := schedule.ListBookings(ctx, manager)
			Expect(err).NotTo(HaveOccurred())
			Expect(visible).To(HaveLen(3))
			Expect(visible[0].Date.Day()).To(Equal(9))
			Expect(visible[1].Start < visible[2].Start).To(BeTrue())
		})
	})
})
