package app

import (
	"gorm.io/gorm"

	contentrepo "github.com/guidedtopic/guidedtopic-backend/internal/data/repos/content"
	userrepo "github.com/guidedtopic/guidedtopic-backend/internal/data/repos/user"
	"github.com/guidedtopic/guidedtopic-backend/internal/platform/logger"
)

type Repos struct {
	User     userrepo.UserRepo
	Video    contentrepo.VideoRepo
	Question contentrepo.QuestionRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:     userrepo.NewUserRepo(db, log),
		Video:    contentrepo.NewVideoRepo(db, log),
		Question: contentrepo.NewQuestionRepo(db, log),
	}
}
