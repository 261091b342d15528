package service_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/service"
)

var _ = Describe("TicketService", func() {
	var (
		ctx        context.Context
		users      *mockUserRepository
		tickets    *mockTicketRepository
		svc        *service.TicketService
		requester  *domain.User
		manager    *domain.User
		technician *domain.User
	)

	newTicket := func(actor *domain.User) *domain.Ticket {
		ticket, err := svc.CreateTicket(ctx, actor, service.TicketCreateInput{
			Title:       "Laptop will not boot",
			Description: "Black screen after the morning update.",
			Priority:    domain.TicketPriorityHigh,
			Category:    domain.TicketCategoryHardware,
		})
		Expect(err).NotTo(HaveOccurred())
		return ticket
	}

	BeforeEach(func() {
		ctx = context.Background()
		users = newMockUserRepository()
		tickets = newMockTicketRepository(users)
		svc = service.NewTicketService(service.TicketDependencies{
			TicketRepo:        tickets,
			UserRepo:          users,
			EnforceAssignRole: true,
		})
		requester = users.add(&domain.User{Name: "Rey", Role: domain.RoleRequester, Section: "ops"})
		manager = users.add(&domain.User{Name: "Mara", Role: domain.RoleManager, Section: "ops"})
		technician = users.add(&domain.User{Name: "Theo", Role: domain.RoleTechnician, Section: "it"})
	})

	Describe("CreateTicket", func() {
		It("opens a ticket for the caller", func() {
			ticket := newTicket(requester)
			Expect(ticket.ID).NotTo(BeEmpty())
			Expect(ticket.Status).To(Equal(domain.TicketStatusOpen))
			Expect(ticket.RequesterID).To(Equal(requester.ID))
			Expect(ticket.TechnicianID).To(BeNil())
		})

		It("rejects blank title or description", func() {
			_, err := svc.CreateTicket(ctx, requester, service.TicketCreateInput{
				Title:    "   ",
				Priority: domain.TicketPriorityLow,
				Category: domain.TicketCategoryOther,
			})
			expectDomainCode(err, "VALIDATION_FAILED")
		})

		It("rejects unknown priority and category", func() {
			_, err := svc.CreateTicket(ctx, requester, service.TicketCreateInput{
				Title:       "t",
				Description: "d",
				Priority:    "urgent-ish",
				Category:    domain.TicketCategoryOther,
			})
			expectDomainCode(err, "VALIDATION_FAILED")

			_, err = svc.CreateTicket(ctx, requester, service.TicketCreateInput{
				Title:       "t",
				Description: "d",
				Priority:    domain.TicketPriorityLow,
				Category:    "gardening",
			})
			expectDomainCode(err, "VALIDATION_FAILED")
		})
	})

	Describe("AssignTechnician", func() {
		It("lets a manager assign a technician without touching status", func() {
			ticket := newTicket(requester)
			assigned, err := svc.AssignTechnician(ctx, manager, ticket.ID, technician.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(assigned.TechnicianID).NotTo(BeNil())
			Expect(*assigned.TechnicianID).To(Equal(technician.ID))
			Expect(assigned.Status).To(Equal(domain.TicketStatusOpen))
		})

		It("forbids non-managers", func() {
			ticket := newTicket(requester)
			_, err := svc.AssignTechnician(ctx, requester, ticket.ID, technician.ID)
			expectDomainCode(err, "FORBIDDEN")
		})

		It("treats a non-technician assignee as not found and leaves the ticket unchanged", func() {
			ticket := newTicket(requester)
			_, err := svc.AssignTechnician(ctx, manager, ticket.ID, requester.ID)
			expectDomainCode(err, "NOT_FOUND")

			stored, err := tickets.GetByID(ctx, ticket.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.TechnicianID).To(BeNil())
		})

		It("treats an unknown assignee as not found", func() {
			ticket := newTicket(requester)
			_, err := svc.AssignTechnician(ctx, manager, ticket.ID, "user-404")
			expectDomainCode(err, "NOT_FOUND")
		})

		It("supports reassignment", func() {
			other := users.add(&domain.User{Name: "Tara", Role: domain.RoleTechnician})
			ticket := newTicket(requester)
			_, err := svc.AssignTechnician(ctx, manager, ticket.ID, technician.ID)
			Expect(err).NotTo(HaveOccurred())
			assigned, err := svc.AssignTechnician(ctx, manager, ticket.ID, other.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(*assigned.TechnicianID).To(Equal(other.ID))
		})
	})

	Describe("ChangeStatus", func() {
		var ticket *domain.Ticket

		BeforeEach(func() {
			ticket = newTicket(requester)
			_, err := svc.AssignTechnician(ctx, manager, ticket.ID, technician.ID)
			Expect(err).NotTo(HaveOccurred())
		})

		It("lets the assigned technician move the ticket forward", func() {
			updated, err := svc.ChangeStatus(ctx, technician, ticket.ID, domain.TicketStatusInProgress, "")
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Status).To(Equal(domain.TicketStatusInProgress))
		})

		It("forbids a technician who is not assigned", func() {
			other := users.add(&domain.User{Name: "Tara", Role: domain.RoleTechnician})
			_, err := svc.ChangeStatus(ctx, other, ticket.ID, domain.TicketStatusInProgress, "")
			expectDomainCode(err, "FORBIDDEN")
		})

		It("forbids requesters", func() {
			_, err := svc.ChangeStatus(ctx, requester, ticket.ID, domain.TicketStatusInProgress, "")
			expectDomainCode(err, "FORBIDDEN")
		})

		It("requires a resolution to close", func() {
			_, err := svc.ChangeStatus(ctx, manager, ticket.ID, domain.TicketStatusClosed, "   ")
			expectDomainCode(err, "VALIDATION_FAILED")
		})

		It("stamps resolution and close time on close", func() {
			closed, err := svc.ChangeStatus(ctx, manager, ticket.ID, domain.TicketStatusClosed, "Replaced the SSD.")
			Expect(err).NotTo(HaveOccurred())
			Expect(closed.Status).To(Equal(domain.TicketStatusClosed))
			Expect(closed.Resolution).NotTo(BeNil())
			Expect(*closed.Resolution).To(Equal("Replaced the SSD."))
			Expect(closed.ClosedAt).NotTo(BeNil())
		})

		It("reserves reopening a closed ticket to managers", func() {
			_, err := svc.ChangeStatus(ctx, manager, ticket.ID, domain.TicketStatusClosed, "done")
			Expect(err).NotTo(HaveOccurred())

			_, err = svc.ChangeStatus(ctx, technician, ticket.ID, domain.TicketStatusOpen, "")
			expectDomainCode(err, "FORBIDDEN")

			reopened, err := svc.ChangeStatus(ctx, manager, ticket.ID, domain.TicketStatusOpen, "")
			Expect(err).NotTo(HaveOccurred())
			Expect(reopened.Status).To(Equal(domain.TicketStatusOpen))
			Expect(reopened.Resolution).NotTo(BeNil())
			Expect(reopened.ClosedAt).NotTo(BeNil())
		})

		It("rejects unknown statuses", func() {
			_, err := svc.ChangeStatus(ctx, manager, ticket.ID, "parked", "")
			expectDomainCode(err, "VALIDATION_FAILED")
		})
	})

	Describe("ListTickets", func() {
		It("scopes by role", func() {
			mine := newTicket(requester)
			outsider := users.add(&domain.User{Name: "Oz", Role: domain.RoleRequester, Section: "finance"})
			theirs := newTicket(outsider)
			_, err := svc.AssignTechnician(ctx, manager, theirs.ID, technician.ID)
			Expect(err).NotTo(HaveOccurred())

			visible, err := svc.ListTickets(ctx, requester)
			Expect(err).NotTo(HaveOccurred())
			Expect(visible).To(HaveLen(1))
			Expect(visible[0].ID).To(Equal(mine.ID))

			visible, err = svc.ListTickets(ctx, technician)
			Expect(err).NotTo(HaveOccurred())
			Expect(visible).To(HaveLen(1))
			Expect(visible[0].ID).To(Equal(theirs.ID))

			visible, err = svc.ListTickets(ctx, manager)
			Expect(err).NotTo(HaveOccurred())
			Expect(visible).To(HaveLen(1))
			Expect(visible[0].ID).To(Equal(mine.ID))
		})
	})

	Describe("GetTicket", func() {
		It("hides tickets from managers outside the requester's section", func() {
			otherManager := users.add(&domain.User{Name: "Max", Role: domain.RoleManager, Section: "finance"})
			ticket := newTicket(requester)

			_, err := svc.GetTicket(ctx, otherManager, ticket.ID)
			expectDomainCode(err, "FORBIDDEN")

			got, err := svc.GetTicket(ctx, manager, ticket.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.ID).To(Equal(ticket.ID))
		})

		It("returns not found for unknown tickets", func() {
			_, err := svc.GetTicket(ctx, manager, "ticket-404")
			expectDomainCode(err, "NOT_FOUND")
		})
	})

	Describe("Stats", func() {
		It("aggregates counts by status", func() {
			first := newTicket(requester)
			newTicket(requester)
			_, err := svc.AssignTechnician(ctx, manager, first.ID, technician.ID)
			Expect(err).NotTo(HaveOccurred())
			_, err = svc.ChangeStatus(ctx, technician, first.ID, domain.TicketStatusInProgress, "")
			Expect(err).NotTo(HaveOccurred())

			stats, err := svc.Stats(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(stats.TotalTickets).To(Equal(2))
			Expect(stats.OpenTickets).To(Equal(1))
			Expect(stats.InProgressTickets).To(Equal(1))
			Expect(stats.ClosedTickets).To(BeZero())
			Expect(stats.TotalUsers).To(Equal(3))
		})
	})
})
