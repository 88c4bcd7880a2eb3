package main

import (
	"log"
	"os"
	"time"

	"guest-concierge-be/internal/constant"
	"guest-concierge-be/internal/model"
	"guest-concierge-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

// Seeds a demo host with one property so the webhook can be exercised
// locally against the log dispatcher.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("demo-password"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Error: Failed to hash password:", err)
	}

	now := time.Now()
	account := &model.Account{
		Id:           uuid.New(),
		Email:        "demo-host@example.com",
		PasswordHash: string(hash),
		FullName:     "Demo Host",
		Plan:         constant.PlanFree,
		MessageCount: 0,
		MessageLimit: constant.PlanMessageLimits[constant.PlanFree],
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := db.Create(account).Error; err != nil {
		color.Yellow("Warn: account seed skipped: %v", err)
	} else {
		color.Green("Seeded account %s", account.Email)
	}

	property := &model.Property{
		Id:             uuid.New(),
		AccountId:      account.Id,
		Name:           "Seaview Loft",
		ChannelAddress: "+15550100100",
		Active:         true,
		CheckInTime:    "15:00",
		CheckOutTime:   "11:00",
		AccessCode:     "4821#",
		WifiName:       "SeaviewLoft",
		WifiPassword:   "bluewater",
		Location:       "12 Harbour Street, third floor",
		HouseRules:     "No parties. Quiet hours after 22:00.",
		FAQs:           datatypes.JSON([]byte(`[{"question":"Is parking available?","answer":"Street parking is free after 18:00."}]`)),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := db.Create(property).Error; err != nil {
		color.Yellow("Warn: property seed skipped: %v", err)
	} else {
		color.Green("Seeded property %s (%s)", property.Name, property.ChannelAddress)
	}

	color.Cyan("Done. Run the indexer by updating the property through the API.")
}
