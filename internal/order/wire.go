package order

import (
	"database/sql"

	"go.uber.org/zap"

	"retailorders/internal/config"
	"retailorders/internal/order/controller"
	orderrepo "retailorders/internal/order/repository"
	"retailorders/internal/order/service"
	"retailorders/internal/order/usecase"
	productrepo "retailorders/internal/product/repository"
)

type Module struct {
	Orders *controller.OrderController
	Staff  *controller.StaffController
}

func NewModule(
	db *sql.DB,
	cfg *config.Config,
	estimator usecase.Estimator,
	uploader usecase.Uploader,
	publisher service.EventPublisher,
	dynamo orderrepo.DynamoDBClient,
	logger *zap.Logger,
) *Module {
	orderRepo := orderrepo.NewMySQLOrderRepository(db)
	productRepo := productrepo.NewMySQLRepository(db)
	historyRepo := orderrepo.NewDynamoStatusHistoryRepository(dynamo, cfg.History.Table)

	notifier := service.NewNotificationService(publisher, historyRepo, logger)

	orderUC := usecase.NewOrderUseCase(
		orderRepo,
		productRepo,
		uploader,
		estimator,
		notifier,
		logger,
		cfg.Delivery.MaxOrderIDAttempts,
	)
	statusUC := usecase.NewStatusUseCase(
		orderRepo,
		historyRepo,
		estimator,
		notifier,
		logger,
		cfg.Delivery.MaxRetryAttempts,
	)

	return &Module{
		Orders: controller.NewOrderController(orderUC, logger),
		Staff:  controller.NewStaffController(statusUC, logger),
	}
}
