package seed

import (
	"fmt"
	"log"

	"vyaparify/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configures a seeding run.
type Options struct {
	NumUsers int
	NumAds   int
}

// Seeder populates the database with demo marketplace data.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder bound to the given database.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db)}
}

// ClearAll removes all seeded data. Messages go first to respect FK order.
func (s *Seeder) ClearAll() error {
	for _, model := range []any{&models.Message{}, &models.Ad{}, &models.User{}} {
		if err := s.db.Unscoped().Where("1 = 1").Delete(model).Error; err != nil {
			return fmt.Errorf("clearing %T: %w", model, err)
		}
	}
	return nil
}

// Seed creates users, listings spread across categories, and buyer/seller
// conversations on roughly a third of the listings. It also guarantees one
// well-known admin account (admin@vyaparify.local).
func (s *Seeder) Seed(opts Options) error {
	if opts.NumUsers <= 0 {
		opts.NumUsers = 25
	}
	if opts.NumAds <= 0 {
		opts.NumAds = 100
	}

	if err := s.ensureAdmin(); err != nil {
		return err
	}

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return fmt.Errorf("creating user: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("seeded %d users", len(users))

	ads := make([]*models.Ad, 0, opts.NumAds)
	for i := 0; i < opts.NumAds; i++ {
		owner := users[s.factory.rand.Intn(len(users))]
		ads = append(ads, s.factory.BuildAd(owner))
	}
	if err := s.factory.CreateAdsBatch(ads); err != nil {
		return fmt.Errorf("creating ads: %w", err)
	}
	log.Printf("seeded %d ads", len(ads))

	conversations := 0
	for _, ad := range ads {
		if s.factory.rand.Intn(3) != 0 {
			continue
		}
		buyer := users[s.factory.rand.Intn(len(users))]
		if buyer.ID == ad.UserID {
			continue
		}
		if _, err := s.factory.CreateConversation(buyer, ad); err != nil {
			return fmt.Errorf("creating conversation: %w", err)
		}
		conversations++
	}
	log.Printf("seeded %d conversations", conversations)

	return nil
}

func (s *Seeder) ensureAdmin() error {
	var count int64
	if err := s.db.Model(&models.User{}).
		Where("email = ?", "admin@vyaparify.local").
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultSeedPassword), bcrypt.MinCost)
	if err != nil {
		return err
	}
	return s.db.Create(&models.User{
		Name:     "Marketplace Admin",
		Email:    "admin@vyaparify.local",
		Password: string(hash),
		IsAdmin:  true,
	}).Error
}
