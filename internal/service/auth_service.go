package service

import (
	"oriental_miniapp_backend/internal/config"
	"oriental_miniapp_backend/internal/model"
	"oriental_miniapp_backend/internal/repository"
	"oriental_miniapp_backend/internal/util"
)

type AuthService struct {
	UserRepo *repository.UserRepository
	UserSvc  *UserService
	Config   *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, userSvc *UserService, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		UserSvc:  userSvc,
		Config:   cfg,
	}
}

type LoginResult struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// Login 校验 Mini App initData 签名，按 telegram_id 取或建用户并签发 JWT。
// 创建是幂等的：并发首次登录只会产生一个用户记录。
func (s *AuthService) Login(initData string) (*LoginResult, error) {
	tgUser, err := util.VerifyInitData(initData, s.Config.Telegram.BotToken)
	if err != nil {
		return nil, err
	}

	user, err := s.UserRepo.GetOrCreate(tgUser.ID, tgUser.Username, tgUser.FullName())
	if err != nil {
		return nil, err
	}

	// 登录也算一次活跃
	if _, err := s.UserSvc.TouchStreak(user.ID); err != nil {
		return nil, err
	}

	user, err = s.UserRepo.FindByID(user.ID)
	if err != nil {
		return nil, err
	}

	token, err := util.GenerateJWT(user, s.Config.JWT.Secret, s.Config.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}

	return &LoginResult{Token: token, User: user}, nil
}
