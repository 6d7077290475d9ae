package jobs

import (
	"github.com/robfig/cron/v3"

	"github.com/manuflow/manuflow-api/internal/domain/repository"
	"github.com/manuflow/manuflow-api/pkg/logger"
)

// LowStockJob revisa periódicamente los productos con stock igual o debajo
// del mínimo y los reporta al log. El cron expr viene de configuración
// (JOBS_LOW_STOCK_CRON, default cada 15 minutos).
type LowStockJob struct {
	productRepo repository.ProductRepository
	cron        *cron.Cron
	spec        string
	log         *logger.Logger
}

// NewLowStockJob construye el job.
func NewLowStockJob(productRepo repository.ProductRepository, spec string, log *logger.Logger) *LowStockJob {
	return &LowStockJob{
		productRepo: productRepo,
		cron:        cron.New(),
		spec:        spec,
		log:         log,
	}
}

// Start programa y arranca el job.
func (j *LowStockJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, j.run)
	if err != nil {
		return err
	}
	j.cron.Start()
	j.log.Info().Str("cron", j.spec).Msg("low stock job iniciado")
	return nil
}

// Stop detiene el scheduler; los runs en curso terminan.
func (j *LowStockJob) Stop() {
	j.cron.Stop()
	j.log.Info().Msg("low stock job detenido")
}

func (j *LowStockJob) run() {
	products, err := j.productRepo.ListBelowMinStock()
	if err != nil {
		j.log.Error().Err(err).Msg("low stock job: consulta fallida")
		return
	}
	if len(products) == 0 {
		j.log.Debug().Msg("low stock job: sin alertas")
		return
	}
	for _, p := range products {
		j.log.Warn().
			Str("product_id", p.ID).
			Str("name", p.Name).
			Str("current_stock", p.CurrentStock.String()).
			Str("min_stock", p.MinStock.String()).
			Msg("producto con stock bajo")
	}
}
