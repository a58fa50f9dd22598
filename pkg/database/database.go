package database

import (
	"fmt"
	"log"

	"oriental_miniapp_backend/internal/config"
	"oriental_miniapp_backend/internal/model"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.Driver {
	case "sqlite":
		path := cfg.Path
		if path == "" {
			path = "oriental_miniapp.db"
		}
		dialector = sqlite.Open(path)
	default:
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
			cfg.User,
			cfg.Password,
			cfg.Host,
			cfg.Port,
			cfg.DBName,
			cfg.Charset,
			cfg.ParseTime,
		)
		dialector = mysql.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	if err := SeedAchievements(db); err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Direction{},
		&model.Course{},
		&model.Material{},
		&model.Progress{},
		&model.Favorite{},
		&model.Achievement{},
		&model.UserAchievement{},
		&model.DailyChallenge{},
		&model.UserChallenge{},
		&model.Note{},
		&model.AnalyticsEvent{},
	)
}

// SeedAchievements 初始化成就目录，只在空表时插入
func SeedAchievements(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Achievement{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	starter := []model.Achievement{
		{Name: "Birinchi qadam", Description: "Birinchi darsni yakunlang", IconURL: "🎯", XPReward: 50, ConditionType: model.ConditionCompleteFirst, ConditionValue: 1},
		{Name: "O'quvchi", Description: "10 ta darsni yakunlang", IconURL: "📚", XPReward: 100, ConditionType: model.ConditionCompleteLessons, ConditionValue: 10},
		{Name: "Qat'iyatli", Description: "7 kun ketma-ket faollik", IconURL: "🔥", XPReward: 200, ConditionType: model.ConditionStreak, ConditionValue: 7},
		{Name: "Ustoz", Description: "50 ta darsni yakunlang", IconURL: "🎓", XPReward: 500, ConditionType: model.ConditionCompleteLessons, ConditionValue: 50},
		{Name: "Yulduz", Description: "100 ta darsni yakunlang", IconURL: "⭐", XPReward: 1000, ConditionType: model.ConditionCompleteLessons, ConditionValue: 100},
	}

	for i := range starter {
		if err := db.Create(&starter[i]).Error; err != nil {
			return err
		}
	}

	log.Println("Achievement catalogue seeded")
	return nil
}
