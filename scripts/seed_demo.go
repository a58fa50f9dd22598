// 手动灌演示内容的脚本
//
// 首次部署或本地联调时跑一次，生成方向/课程/素材的示例数据。
// 已有数据时直接退出，不会重复插入。
//
// 用法: go run scripts/seed_demo.go

package main

import (
	"log"

	"oriental_miniapp_backend/internal/config"
	"oriental_miniapp_backend/internal/model"
	"oriental_miniapp_backend/pkg/database"
	"oriental_miniapp_backend/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	var count int64
	if err := db.Model(&model.Direction{}).Count(&count).Error; err != nil {
		log.Fatalf("查询失败: %v", err)
	}
	if count > 0 {
		log.Println("已有内容数据，跳过演示数据")
		return
	}

	directions := []struct {
		direction model.Direction
		courses   []struct {
			course    model.Course
			materials []model.Material
		}
	}{
		{
			direction: model.Direction{Name: "Arab tili", Description: "Arab tilini noldan o'rganing", IconURL: "🕌", OrderIndex: 1, IsActive: true},
			courses: []struct {
				course    model.Course
				materials []model.Material
			}{
				{
					course: model.Course{Title: "Boshlang'ich kurs", Language: "ar", Level: "beginner", DurationHours: 20, OrderIndex: 1, IsActive: true},
					materials: []model.Material{
						{Title: "Alifbo bilan tanishuv", Type: model.MaterialVideo, Duration: 600, OrderIndex: 1, IsFree: true, XPReward: 10},
						{Title: "Harflarni yozish", Type: model.MaterialVideo, Duration: 720, OrderIndex: 2, IsFree: true, XPReward: 10},
						{Title: "Mashqlar to'plami", Type: model.MaterialDocument, OrderIndex: 3, IsFree: true, XPReward: 15},
					},
				},
			},
		},
		{
			direction: model.Direction{Name: "Koreys tili", Description: "Koreys tili va hanguls", IconURL: "🇰🇷", OrderIndex: 2, IsActive: true},
			courses: []struct {
				course    model.Course
				materials []model.Material
			}{
				{
					course: model.Course{Title: "Hangul asoslari", Language: "ko", Level: "beginner", DurationHours: 15, OrderIndex: 1, IsActive: true},
					materials: []model.Material{
						{Title: "Hangul tarixi", Type: model.MaterialVideo, Duration: 540, OrderIndex: 1, IsFree: true, XPReward: 10},
						{Title: "Unlilar", Type: model.MaterialVideo, Duration: 660, OrderIndex: 2, IsFree: true, XPReward: 10},
					},
				},
			},
		},
	}

	for _, d := range directions {
		direction := d.direction
		if err := db.Create(&direction).Error; err != nil {
			log.Fatalf("方向写入失败: %v", err)
		}
		for _, c := range d.courses {
			course := c.course
			course.DirectionID = direction.ID
			if err := db.Create(&course).Error; err != nil {
				log.Fatalf("课程写入失败: %v", err)
			}
			for _, m := range c.materials {
				material := m
				material.CourseID = course.ID
				if err := db.Create(&material).Error; err != nil {
					log.Fatalf("素材写入失败: %v", err)
				}
			}
		}
	}

	log.Println("演示数据灌入完成")
}
