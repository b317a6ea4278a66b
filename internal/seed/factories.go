// Package seed provides helpers to create demo and test data for the
// marketplace database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"vyaparify/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultSeedPassword is the password assigned to every generated account so
// seeded users can be logged in during development.
const DefaultSeedPassword = "Password123!abc"

var (
	categories = []string{
		"electronics", "furniture", "vehicles", "clothing", "books",
		"sports", "appliances", "musical-instruments", "toys", "garden",
	}

	conditions = []models.AdCondition{
		models.ConditionNew, models.ConditionLikeNew, models.ConditionGood,
		models.ConditionFair, models.ConditionPoor,
	}

	locations = []string{
		"Mumbai", "Pune", "Bengaluru", "Delhi", "Hyderabad",
		"Chennai", "Kolkata", "Ahmedabad", "Jaipur", "Kochi",
	}

	// price bands per category keep generated listings plausible
	priceBands = map[string][2]float64{
		"electronics":         {500, 80000},
		"furniture":           {300, 40000},
		"vehicles":            {5000, 500000},
		"clothing":            {100, 5000},
		"books":               {50, 2000},
		"sports":              {200, 25000},
		"appliances":          {500, 60000},
		"musical-instruments": {1000, 90000},
		"toys":                {50, 3000},
		"garden":              {100, 15000},
	}

	openers = []string{
		"Is this still available?",
		"Would you take %d for it?",
		"Can I come see it this weekend?",
		"Does it come with the original packaging?",
		"How old is it exactly?",
		"Any scratches or damage I should know about?",
	}

	replies = []string{
		"Yes, still available.",
		"Sorry, the price is firm.",
		"Sure, weekend works. I'm free Saturday morning.",
		"It's in the condition described in the listing.",
		"I can share more photos if you like.",
	}
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	rand *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser constructs and persists a sample user. Optional override
// functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultSeedPassword), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     gofakeit.Name(),
		Email:    fmt.Sprintf("%s%d@%s", strings.ToLower(gofakeit.Username()), f.rand.Intn(10000), gofakeit.DomainName()),
		Password: string(hash),
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildAd constructs an ad owned by the user without persisting it.
func (f *Factory) BuildAd(user *models.User, overrides ...func(*models.Ad)) *models.Ad {
	category := categories[f.rand.Intn(len(categories))]
	band := priceBands[category]
	price := band[0] + f.rand.Float64()*(band[1]-band[0])

	ad := &models.Ad{
		Title:       gofakeit.ProductName(),
		Description: gofakeit.Paragraph(1, 3, 8, "\n"),
		Price:       float64(int(price*100)) / 100,
		Category:    category,
		Condition:   conditions[f.rand.Intn(len(conditions))],
		Location:    locations[f.rand.Intn(len(locations))],
		Images: pq.StringArray{
			fmt.Sprintf("/media/ads/%s.webp", gofakeit.UUID()),
		},
		UserID: user.ID,
	}

	// spread listings over the last 60 days
	ad.CreatedAt = time.Now().
		Add(-time.Duration(f.rand.Intn(60*24)) * time.Hour).
		Add(-time.Duration(f.rand.Intn(60)) * time.Minute)

	for _, override := range overrides {
		override(ad)
	}
	return ad
}

// CreateAdsBatch persists multiple ads in a single DB call.
func (f *Factory) CreateAdsBatch(ads []*models.Ad) error {
	if len(ads) == 0 {
		return nil
	}
	return f.db.Create(&ads).Error
}

// CreateConversation persists a short buyer/seller exchange about the ad.
// Roughly half of the delivered messages are marked read.
func (f *Factory) CreateConversation(buyer *models.User, ad *models.Ad) ([]*models.Message, error) {
	opener := openers[f.rand.Intn(len(openers))]
	if strings.Contains(opener, "%d") {
		opener = fmt.Sprintf(opener, int(ad.Price*0.8))
	}

	msgs := []*models.Message{{
		SenderID:   buyer.ID,
		ReceiverID: ad.UserID,
		AdID:       ad.ID,
		Content:    opener,
		CreatedAt:  ad.CreatedAt.Add(time.Duration(1+f.rand.Intn(72)) * time.Hour),
	}}

	// seller replies most of the time
	if f.rand.Intn(4) != 0 {
		msgs = append(msgs, &models.Message{
			SenderID:   ad.UserID,
			ReceiverID: buyer.ID,
			AdID:       ad.ID,
			Content:    replies[f.rand.Intn(len(replies))],
			CreatedAt:  msgs[0].CreatedAt.Add(time.Duration(1+f.rand.Intn(24)) * time.Hour),
		})
	}

	for _, msg := range msgs {
		if f.rand.Intn(2) == 0 {
			readAt := msg.CreatedAt.Add(time.Duration(1+f.rand.Intn(12)) * time.Hour)
			msg.IsRead = true
			msg.ReadAt = &readAt
		}
		if err := f.db.Create(msg).Error; err != nil {
			return nil, err
		}
	}
	return msgs, nil
}
