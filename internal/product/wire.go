package product

import (
	"database/sql"

	"go.uber.org/zap"

	"retailorders/internal/product/controller"
	"retailorders/internal/product/repository"
	"retailorders/internal/product/service"
	"retailorders/internal/product/usecase"
)

func NewModule(db *sql.DB, logger *zap.Logger) *controller.Controller {
	repo := repository.NewMySQLRepository(db)
	svc := service.NewService(repo)
	uc := usecase.NewListUseCase(svc)
	return controller.NewController(uc, logger)
}
