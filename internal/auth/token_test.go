package auth_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/domain"
)

var _ = Describe("TokenManager", func() {
	var manager *auth.TokenManager

	BeforeEach(func() {
		manager = auth.NewTokenManager("test-secret", 60)
	})

	It("round-trips subject and role through a signed token", func() {
		token, expiresAt, err := manager.GenerateToken("user-42", domain.RoleTechnician)
		Expect(err).NotTo(HaveOccurred())
		Expect(token).NotTo(BeEmpty())
		Expect(expiresAt).To(BeTemporally(">", time.Now()))

		claims, err := manager.ParseToken(token)
		Expect(err).NotTo(HaveOccurred())
		Expect(claims.SubjectID).To(Equal("user-42"))
		Expect(claims.Role).To(Equal(domain.RoleTechnician))
	})

	It("rejects tokens signed with another secret", func() {
		other := auth.NewTokenManager("different-secret", 60)
		token, _, err := other.GenerateToken("user-42", domain.RoleManager)
		Expect(err).NotTo(HaveOccurred())

		_, err = manager.ParseToken(token)
		Expect(err).To(HaveOccurred())
	})

	It("rejects garbage", func() {
		_, err := manager.ParseToken("not.a.token")
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Password hashing", func() {
	It("verifies the original password and nothing else", func() {
		hash, err := auth.HashPassword("hunter2-but-longer", 4)
		Expect(err).NotTo(HaveOccurred())
		Expect(auth.ComparePassword(hash, "hunter2-but-longer")).To(Succeed())
		Expect(auth.ComparePassword(hash, "wrong")).NotTo(Succeed())
	})
})
