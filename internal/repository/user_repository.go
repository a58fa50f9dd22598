package repository

import (
	"errors"
	"time"

	"oriental_miniapp_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByTelegramID(telegramID int64) (*model.User, error) {
	var user model.User
	err := r.DB.Where("telegram_id = ?", telegramID).First(&user).Error
	return &user, err
}

// GetOrCreate 按 telegram_id 取用户，不存在则创建。并发下靠唯一索引兜底。
func (r *UserRepository) GetOrCreate(telegramID int64, username, fullName string) (*model.User, error) {
	user := model.User{
		TelegramID: telegramID,
		Username:   username,
		FullName:   fullName,
		Level:      1,
		LastActive: time.Now(),
	}

	err := r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "telegram_id"}},
		DoNothing: true,
	}).Create(&user).Error
	if err != nil {
		return nil, err
	}

	return r.FindByTelegramID(telegramID)
}

func (r *UserRepository) Update(user *model.User) error {
	return r.DB.Save(user).Error
}

func (r *UserRepository) UpdateDirection(userID uint, directionID uint) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"direction_id": directionID,
			"last_active":  time.Now(),
		}).Error
}

// AddXP 原子累加经验并重算等级。经验累加用存储层表达式，
// 避免应用层读-改-写丢失并发更新。tx 为 nil 时在独立事务中执行，
// 否则加入调用方的事务，与触发它的写操作同生共死。
func (r *UserRepository) AddXP(tx *gorm.DB, userID uint, points int) (*model.User, error) {
	if tx == nil {
		var user *model.User
		err := r.DB.Transaction(func(inner *gorm.DB) error {
			var innerErr error
			user, innerErr = r.addXP(inner, userID, points)
			return innerErr
		})
		return user, err
	}
	return r.addXP(tx, userID, points)
}

func (r *UserRepository) addXP(tx *gorm.DB, userID uint, points int) (*model.User, error) {
	res := tx.Model(&model.User{}).
		Where("id = ?", userID).
		Update("xp", gorm.Expr("xp + ?", points))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var user model.User
	if err := tx.First(&user, userID).Error; err != nil {
		return nil, err
	}

	user.Level = model.LevelForXP(user.XP)
	err := tx.Model(&model.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"level":       user.Level,
			"last_active": time.Now(),
		}).Error
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *UserRepository) SetStreak(userID uint, days int, activeAt time.Time) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"streak_days": days,
			"last_active": activeAt,
		}).Error
}

func (r *UserRepository) TouchLastActive(userID uint) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("last_active", time.Now()).Error
}

// FindTopByXP 排行榜：经验为零的用户不参与排名，同分按 id 稳定排序
func (r *UserRepository) FindTopByXP(limit int) ([]model.User, error) {
	var users []model.User
	err := r.DB.Where("xp > 0").
		Order("xp DESC, id ASC").
		Limit(limit).
		Find(&users).Error
	return users, err
}

func (r *UserRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.User{}).Count(&count).Error
	return count, err
}

func (r *UserRepository) CountActiveSince(since time.Time) (int64, error) {
	var count int64
	err := r.DB.Model(&model.User{}).
		Where("last_active >= ?", since).
		Count(&count).Error
	return count, err
}

func (r *UserRepository) Exists(userID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.User{}).Where("id = ?", userID).Count(&count).Error
	return count > 0, err
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
