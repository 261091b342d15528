package domain_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

var _ = Describe("TimeOfDay", func() {
	Describe("ParseTimeOfDay", func() {
		It("parses HH:MM into minutes since midnight", func() {
			t, err := domain.ParseTimeOfDay("09:30")
			Expect(err).NotTo(HaveOccurred())
			Expect(int(t)).To(Equal(9*60 + 30))
		})

		It("parses midnight", func() {
			t, err := domain.ParseTimeOfDay("00:00")
			Expect(err).NotTo(HaveOccurred())
			Expect(int(t)).To(Equal(0))
		})

		It("rejects out-of-range hours", func() {
			_, err := domain.ParseTimeOfDay("25:00")
			Expect(err).To(HaveOccurred())
		})

		It("rejects non-time input", func() {
			_, err := domain.ParseTimeOfDay("lunch")
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("String", func() {
		It("renders back to zero-padded HH:MM", func() {
			t, err := domain.ParseTimeOfDay("08:05")
			Expect(err).NotTo(HaveOccurred())
			Expect(t.String()).To(Equal("08:05"))
		})
	})
})

var _ = Describe("Overlaps", func() {
	mustParse := func(v string) domain.TimeOfDay {
		t, err := domain.ParseTimeOfDay(v)
		Expect(err).NotTo(HaveOccurred())
		return t
	}

	It("detects a partial overlap", func() {
		Expect(domain.Overlaps(
			mustParse("09:00"), mustParse("10:00"),
			mustParse("09:30"), mustParse("10:30"),
		)).To(BeTrue())
	})

	It("detects a window fully contained in another", func() {
		Expect(domain.Overlaps(
			mustParse("09:00"), mustParse("12:00"),
			mustParse("10:00"), mustParse("11:00"),
		)).To(BeTrue())
	})

	It("detects identical windows", func() {
		Expect(domain.Overlaps(
			mustParse("09:00"), mustParse("10:00"),
			mustParse("09:00"), mustParse("10:00"),
		)).To(BeTrue())
	})

	It("treats back-to-back windows as non-overlapping", func() {
		Expect(domain.Overlaps(
			mustParse("09:00"), mustParse("10:00"),
			mustParse("10:00"), mustParse("11:00"),
		)).To(BeFalse())
		Expect(domain.Overlaps(
			mustParse("10:00"), mustParse("11:00"),
			mustParse("09:00"), mustParse("10:00"),
		)).To(BeFalse())
	})

	It("treats disjoint windows as non-overlapping", func() {
		Expect(domain.Overlaps(
			mustParse("08:00"), mustParse("09:00"),
			mustParse("14:00"), mustParse("15:00"),
		)).To(BeFalse())
	})

	It("is symmetric", func() {
		a1, a2 := mustParse("09:15"), mustParse("10:45")
		b1, b2 := mustParse("10:00"), mustParse("11:00")
		Expect(domain.Overlaps(a1, a2, b1, b2)).To(Equal(domain.Overlaps(b1, b2, a1, a2)))
	})
})

var _ = Describe("Booking.ConflictsWith", func() {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	booking := func(room domain.MeetingRoom, date time.Time, start, end string) *domain.Booking {
		s, err := domain.ParseTimeOfDay(start)
		Expect(err).NotTo(HaveOccurred())
		e, err := domain.ParseTimeOfDay(end)
		Expect(err).NotTo(HaveOccurred())
		return &domain.Booking{Room: room, Date: date, Start: s, End: e}
	}

	It("conflicts on the same room, same day, overlapping window", func() {
		a := booking(domain.MeetingRoom1, day, "09:00", "10:00")
		b := booking(domain.MeetingRoom1, day, "09:30", "10:30")
		Expect(a.ConflictsWith(b)).To(BeTrue())
	})

	It("does not conflict across rooms", func() {
		a := booking(domain.MeetingRoom1, day, "09:00", "10:00")
		b := booking(domain.MeetingRoom2, day, "09:00", "10:00")
		Expect(a.ConflictsWith(b)).To(BeFalse())
	})

	It("does not conflict across days", func() {
		a := booking(domain.MeetingRoom1, day, "09:00", "10:00")
		b := booking(domain.MeetingRoom1, day.AddDate(0, 0, 1), "09:00", "10:00")
		Expect(a.ConflictsWith(b)).To(BeFalse())
	})

	It("compares days by calendar date, not instant", func() {
		a := booking(domain.MeetingRoom1, day, "09:00", "10:00")
		b := booking(domain.MeetingRoom1, day.Add(6*time.Hour), "09:30", "10:30")
		Expect(a.ConflictsWith(b)).To(BeTrue())
	})

	It("does not conflict when windows touch at the boundary", func() {
		a := booking(domain.MeetingRoom2, day, "13:00", "14:00")
		b := booking(domain.MeetingRoom2, day, "14:00", "15:00")
		Expect(a.ConflictsWith(b)).To(BeFalse())
	})
})

var _ = Describe("MeetingRoom", func() {
	It("accepts the known rooms", func() {
		Expect(domain.MeetingRoom1.Valid()).To(BeTrue())
		Expect(domain.MeetingRoom2.Valid()).To(BeTrue())
	})

	It("rejects unknown rooms", func() {
		Expect(domain.MeetingRoom("broom-closet").Valid()).To(BeFalse())
	})
})
