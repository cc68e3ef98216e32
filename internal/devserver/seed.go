package devserver

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"launchpad/internal/models"
)

// SeedPassword is the password every seeded demo account accepts.
const SeedPassword = "password123"

// Seed fills the store with n demo accounts so the client has something to
// log into out of the box. Every account uses SeedPassword.
func (s *Server) Seed(n int) error {
	if n <= 0 {
		return nil
	}
	gofakeit.Seed(time.Now().UnixNano())

	hash, err := bcrypt.GenerateFromPassword([]byte(SeedPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	for i := 0; i < n; i++ {
		username := gofakeit.Username()
		user := models.User{
			ID:       uuid.NewString(),
			Username: username,
			Email:    gofakeit.Email(),
			FullName: gofakeit.Name(),
			Role:     "creator",
			Avatar:   fmt.Sprintf("https://picsum.photos/seed/%s/200/200", uuid.NewString()),
			Bio:      gofakeit.Sentence(8),
			Location: gofakeit.City(),
			Website:  gofakeit.URL(),
			SocialLinks: &models.SocialLinks{
				YouTube:   "https://youtube.com/@" + username,
				Instagram: "https://instagram.com/" + username,
			},
			CreatedAt: time.Now().UTC().Add(-time.Duration(gofakeit.Number(1, 365)) * 24 * time.Hour),
		}
		if !s.store.CreateUser(user, hash) {
			// Faker collisions are possible on large n; skip and move on.
			continue
		}
		s.logger.Info("seeded user",
			slog.String("email", user.Email),
			slog.String("username", user.Username))
	}
	return nil
}
