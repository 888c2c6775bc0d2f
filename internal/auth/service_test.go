package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/tranyenminhbd/docuflow/internal"
	"github.com/tranyenminhbd/docuflow/internal/core/events"
	"github.com/tranyenminhbd/docuflow/internal/permission"
)

func TestAuth(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Auth Module Suite")
}

// Mock user repository keyed by email and id
type mockUserRepository struct {
	usersByEmail map[string]*User
	usersByID    map[string]*User
}

func newMockUserRepository() *mockUserRepository {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("correct_password"), bcrypt.MinCost)

	active := &User{
		ID:           "user-1",
		Name:         "Alice Nguyen",
		Email:        "alice@example.com",
		PasswordHash: string(hashedPassword),
		DepartmentID: "dept-hr",
		RoleID:       "role-staff",
		Status:       UserStatusActive,
	}
	suspended := &User{
		ID:           "user-2",
		Name:         "Bob Tran",
		Email:        "bob@example.com",
		PasswordHash: string(hashedPassword),
		DepartmentID: "dept-sales",
		RoleID:       "role-staff",
		Status:       UserStatusSuspended,
	}

	m := &mockUserRepository{
		usersByEmail: map[string]*User{},
		usersByID:    map[string]*User{},
	}
	for _, u := range []*User{active, suspended} {
		m.usersByEmail[u.Email] = u
		m.usersByID[u.ID] = u
	}
	return m
}

func (m *mockUserRepository) GetByEmail(email string) (*User, error) {
	if u, ok := m.usersByEmail[email]; ok {
		return u, nil
	}
	return nil, ErrUserNotFound
}

func (m *mockUserRepository) GetByID(id string) (*User, error) {
	if u, ok := m.usersByID[id]; ok {
		return u, nil
	}
	return nil, ErrUserNotFound
}

func (m *mockUserRepository) UpdateLastLogin(id string, at time.Time) error {
	if u, ok := m.usersByID[id]; ok {
		u.LastLogin = at
	}
	return nil
}

func (m *mockUserRepository) remove(id string) {
	if u, ok := m.usersByID[id]; ok {
		delete(m.usersByEmail, u.Email)
		delete(m.usersByID, id)
	}
}

type mockRoleResolver struct {
	roles map[string]*permission.Role
}

func (m *mockRoleResolver) GetByID(id string) (*permission.Role, error) {
	return m.roles[id], nil
}

var _ = ginkgo.Describe("AuthService", func() {
	var (
		service    *Service
		mockRepo   *mockUserRepository
		roles      *mockRoleResolver
		activities []events.ActivityRecordedEvent
	)

	ginkgo.BeforeEach(func() {
		mockRepo = newMockUserRepository()
		roles = &mockRoleResolver{roles: map[string]*permission.Role{
			"role-staff": {ID: "role-staff", Name: "Staff"},
		}}

		activities = nil
		bus := events.NewEventBus(slog.New(slog.NewTextHandler(io.Discard, nil)))
		bus.Subscribe(events.EventTypeActivityRecorded, func(ctx context.Context, event events.Event) error {
			if e, ok := event.(*events.ActivityRecordedEvent); ok {
				activities = append(activities, *e)
			}
			return nil
		})

		tokenGen := NewJWTTokenGenerator("test-access-secret", "test-refresh-secret", 15*time.Minute, 24*time.Hour)
		service = NewService(mockRepo, roles, tokenGen, bus, bcrypt.MinCost)
	})

	ginkgo.Describe("Authenticate", func() {
		ginkgo.Context("when credentials are valid", func() {
			ginkgo.It("should return the user with access and refresh tokens", func() {
				result, err := service.Authenticate(LoginDTO{
					Email:    "alice@example.com",
					Password: "correct_password",
				})

				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(result.User.ID).To(gomega.Equal("user-1"))
				gomega.Expect(result.Tokens.AccessToken).ToNot(gomega.BeEmpty())
				gomega.Expect(result.Tokens.RefreshToken).ToNot(gomega.BeEmpty())
				gomega.Expect(result.Tokens.AccessToken).ToNot(gomega.Equal(result.Tokens.RefreshToken))
			})

			ginkgo.It("should stamp last login", func() {
				before := time.Now()
				result, err := service.Authenticate(LoginDTO{
					Email:    "alice@example.com",
					Password: "correct_password",
				})

				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(result.User.LastLogin).To(gomega.BeTemporally(">=", before))
			})

			ginkgo.It("should record exactly one activity entry", func() {
				_, err := service.Authenticate(LoginDTO{
					Email:    "alice@example.com",
					Password: "correct_password",
				})

				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(activities).To(gomega.HaveLen(1))
				gomega.Expect(activities[0].UserName).To(gomega.Equal("Alice Nguyen"))
				gomega.Expect(activities[0].Action).To(gomega.Equal("Logged in"))
			})

			ginkgo.It("should generate tokens that validate back to the same user", func() {
				result, err := service.Authenticate(LoginDTO{
					Email:    "alice@example.com",
					Password: "correct_password",
				})
				gomega.Expect(err).ToNot(gomega.HaveOccurred())

				claims, err := service.ValidateAccessToken(result.Tokens.AccessToken)
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(claims.UserID).To(gomega.Equal("user-1"))
				gomega.Expect(claims.Email).To(gomega.Equal("alice@example.com"))
			})
		})

		ginkgo.Context("when credentials are invalid", func() {
			ginkgo.It("should return the same error for an unknown email", func() {
				_, err := service.Authenticate(LoginDTO{
					Email:    "nobody@example.com",
					Password: "any_password",
				})

				gomega.Expect(err).To(gomega.Equal(internal.ErrInvalidCredentials))
			})

			ginkgo.It("should return the same error for a wrong password", func() {
				_, err := service.Authenticate(LoginDTO{
					Email:    "alice@example.com",
					Password: "wrong_password",
				})

				gomega.Expect(err).To(gomega.Equal(internal.ErrInvalidCredentials))
			})

			ginkgo.It("should not record any activity", func() {
				_, _ = service.Authenticate(LoginDTO{
					Email:    "alice@example.com",
					Password: "wrong_password",
				})

				gomega.Expect(activities).To(gomega.BeEmpty())
			})
		})

		ginkgo.Context("when the account is suspended", func() {
			ginkgo.It("should return a distinct suspension error even with the right password", func() {
				_, err := service.Authenticate(LoginDTO{
					Email:    "bob@example.com",
					Password: "correct_password",
				})

				gomega.Expect(err).To(gomega.Equal(internal.ErrAccountSuspended))
				gomega.Expect(activities).To(gomega.BeEmpty())
			})
		})

		ginkgo.Context("when the input is malformed", func() {
			ginkgo.It("should fail validation before touching the repository", func() {
				_, err := service.Authenticate(LoginDTO{Email: "", Password: ""})

				gomega.Expect(err).To(gomega.HaveOccurred())
				appErr, ok := internal.IsAppError(err)
				gomega.Expect(ok).To(gomega.BeTrue())
				gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodeValidationFailed))
			})
		})
	})

	ginkgo.Describe("RestoreSession", func() {
		ginkgo.It("should rebuild the session with the resolved role", func() {
			session, err := service.RestoreSession("user-1")

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(session).ToNot(gomega.BeNil())
			gomega.Expect(session.User.Email).To(gomega.Equal("alice@example.com"))
			gomega.Expect(session.Role.ID).To(gomega.Equal("role-staff"))
		})

		ginkgo.It("should return no session for an unknown user id", func() {
			session, err := service.RestoreSession("user-gone")

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(session).To(gomega.BeNil())
		})

		ginkgo.It("should return no session for a suspended user", func() {
			session, err := service.RestoreSession("user-2")

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(session).To(gomega.BeNil())
		})

		ginkgo.It("should drop a session whose user was deleted after login", func() {
			result, err := service.Authenticate(LoginDTO{
				Email:    "alice@example.com",
				Password: "correct_password",
			})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			mockRepo.remove("user-1")

			claims, err := service.ValidateAccessToken(result.Tokens.AccessToken)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			session, err := service.RestoreSession(claims.UserID)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(session).To(gomega.BeNil())
		})

		ginkgo.It("should drop a session whose user was suspended after login", func() {
			_, err := service.Authenticate(LoginDTO{
				Email:    "alice@example.com",
				Password: "correct_password",
			})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			mockRepo.usersByID["user-1"].Status = UserStatusSuspended

			session, err := service.RestoreSession("user-1")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(session).To(gomega.BeNil())
		})

		ginkgo.It("should keep the session but leave the role nil when the role id dangles", func() {
			mockRepo.usersByID["user-1"].RoleID = "role-gone"

			session, err := service.RestoreSession("user-1")

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(session).ToNot(gomega.BeNil())
			gomega.Expect(session.Role).To(gomega.BeNil())
		})
	})

	ginkgo.Describe("RefreshTokens", func() {
		ginkgo.It("should issue a new token pair for a valid refresh token", func() {
			result, err := service.Authenticate(LoginDTO{
				Email:    "alice@example.com",
				Password: "correct_password",
			})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			tokens, err := service.RefreshTokens(result.Tokens.RefreshToken)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(tokens.AccessToken).ToNot(gomega.BeEmpty())
			gomega.Expect(tokens.RefreshToken).ToNot(gomega.BeEmpty())
		})

		ginkgo.It("should reject garbage tokens", func() {
			_, err := service.RefreshTokens("not-a-token")
			gomega.Expect(err).To(gomega.Equal(internal.ErrInvalidToken))
		})

		ginkgo.It("should refuse a refresh for a user suspended since issuance", func() {
			result, err := service.Authenticate(LoginDTO{
				Email:    "alice@example.com",
				Password: "correct_password",
			})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			mockRepo.usersByID["user-1"].Status = UserStatusSuspended

			_, err = service.RefreshTokens(result.Tokens.RefreshToken)
			gomega.Expect(err).To(gomega.Equal(internal.ErrAccountSuspended))
		})
	})

	ginkgo.Describe("Logout", func() {
		ginkgo.It("should record a logout entry for the session user", func() {
			service.Logout(&Session{User: mockRepo.usersByID["user-1"]})

			gomega.Expect(activities).To(gomega.HaveLen(1))
			gomega.Expect(activities[0].Action).To(gomega.Equal("Logged out"))
		})

		ginkgo.It("should ignore a nil session", func() {
			service.Logout(nil)
			gomega.Expect(activities).To(gomega.BeEmpty())
		})
	})
})
