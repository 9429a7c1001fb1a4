// Package seed populates a development database with fake users,
// messages, follows and likes.
package seed

import (
	"fmt"
	"math/rand"

	"chirper/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultPassword is the login password for every seeded user.
const DefaultPassword = "password123"

type Seeder struct {
	db *gorm.DB
}

func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// ClearAll wipes seeded data, children before parents.
func (s *Seeder) ClearAll() error {
	for _, table := range []string{"likes", "follows", "messages", "users"} {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	return nil
}

// SeedUsers creates n users with realistic profiles. All share
// DefaultPassword so any seeded account can be logged into.
func (s *Seeder) SeedUsers(n int) ([]models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		username := fmt.Sprintf("%s%d", gofakeit.Username(), i)
		user := models.User{
			Username: username,
			Email:    fmt.Sprintf("%s@%s", username, gofakeit.DomainName()),
			Password: string(hash),
			ImageURL: models.DefaultImageURL,
			Bio:      gofakeit.Sentence(8),
			Location: fmt.Sprintf("%s, %s", gofakeit.City(), gofakeit.StateAbr()),
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("creating user %q: %w", username, err)
		}
		users = append(users, user)
	}
	return users, nil
}

// SeedMessages posts n messages attributed to random seeded users.
func (s *Seeder) SeedMessages(users []models.User, n int) ([]models.Message, error) {
	if len(users) == 0 {
		return nil, fmt.Errorf("no users to attribute messages to")
	}

	messages := make([]models.Message, 0, n)
	for i := 0; i < n; i++ {
		text := gofakeit.Sentence(rand.Intn(12) + 3)
		if len(text) > models.MaxMessageLength {
			text = text[:models.MaxMessageLength]
		}
		msg := models.Message{
			Text:   text,
			UserID: users[rand.Intn(len(users))].ID,
		}
		if err := s.db.Create(&msg).Error; err != nil {
			return nil, fmt.Errorf("creating message: %w", err)
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

// SeedSocialGraph wires random follows between users and random likes
// on messages. Conflicting pairs are skipped rather than erroring so
// the random draws stay simple.
func (s *Seeder) SeedSocialGraph(users []models.User, messages []models.Message) error {
	for _, u := range users {
		for i := 0; i < rand.Intn(6); i++ {
			target := users[rand.Intn(len(users))]
			if target.ID == u.ID {
				continue
			}
			follow := models.Follow{FollowerID: u.ID, FolloweeID: target.ID}
			if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&follow).Error; err != nil {
				return fmt.Errorf("creating follow: %w", err)
			}
		}
	}

	if len(messages) == 0 {
		return nil
	}
	for _, u := range users {
		for i := 0; i < rand.Intn(8); i++ {
			msg := messages[rand.Intn(len(messages))]
			if msg.UserID == u.ID {
				continue
			}
			like := models.Like{UserID: u.ID, MessageID: msg.ID}
			if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error; err != nil {
				return fmt.Errorf("creating like: %w", err)
			}
		}
	}
	return nil
}
