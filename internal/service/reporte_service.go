package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/luisjoselares/Pegasus-v1/internal/apierror"
	"github.com/luisjoselares/Pegasus-v1/internal/dto"
	"github.com/luisjoselares/Pegasus-v1/internal/model"
	"github.com/luisjoselares/Pegasus-v1/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ReporteService assembles the fiscal session reports. An X report reads the
// session as it stands; a Z report is emitted once against a closed session
// and consumes the next number of the Z series.
type ReporteService interface {
	ReporteX(ctx context.Context, sesionID uuid.UUID) (*dto.ReporteSesionResponse, error)
	EmitirZ(ctx context.Context, sesionID uuid.UUID) (*dto.ReporteSesionResponse, error)
}

type reporteService struct {
	docRepo    repository.DocumentoRepository
	cajaRepo   repository.CajaRepository
	configRepo repository.ConfiguracionRepository
}

func NewReporteService(
	docRepo repository.DocumentoRepository,
	cajaRepo repository.CajaRepository,
	configRepo repository.ConfiguracionRepository,
) ReporteService {
	return &reporteService{docRepo: docRepo, cajaRepo: cajaRepo, configRepo: configRepo}
}

func (s *reporteService) ReporteX(ctx context.Context, sesionID uuid.UUID) (*dto.ReporteSesionResponse, error) {
	sesion, err := s.cajaRepo.FindSesionByID(ctx, sesionID)
	if err != nil {
		return nil, errors.New("sesion de caja no encontrada")
	}
	reporte, err := s.construirReporte(ctx, sesion)
	if err != nil {
		return nil, err
	}
	reporte.Tipo = "X"
	return reporte, nil
}

// EmitirZ seals a closed session's fiscal summary under the next Z number.
// The counter is consumed in the same transaction that reads it, so two
// terminals can never print the same Z.
func (s *reporteService) EmitirZ(ctx context.Context, sesionID uuid.UUID) (*dto.ReporteSesionResponse, error) {
	sesion, err := s.cajaRepo.FindSesionByID(ctx, sesionID)
	if err != nil {
		return nil, errors.New("sesion de caja no encontrada")
	}
	if sesion.Estado != model.SesionCerrada {
		return nil, apierror.NewReglaNegocio(apierror.CodigoDocumentoInvalido,
			"el reporte Z solo se emite sobre una sesion cerrada")
	}

	reporte, err := s.construirReporte(ctx, sesion)
	if err != nil {
		return nil, err
	}

	var numeroZ string
	err = conReintentos(func() error {
		return runTx(ctx, s.configRepo.DB(), func(tx *gorm.DB) error {
			cfg, err := s.configRepo.ObtenerBloqueadoTx(tx)
			if err != nil {
				return traducirConflicto(err)
			}
			numeroZ = fmt.Sprintf("%08d", cfg.ProximoNroZ)
			return s.configRepo.IncrementarCorrelativosTx(tx, repository.ColNroZ)
		})
	})
	if err != nil {
		return nil, err
	}

	reporte.Tipo = "Z"
	reporte.NumeroZ = &numeroZ
	return reporte, nil
}

func (s *reporteService) construirReporte(ctx context.Context, sesion *model.SesionCaja) (*dto.ReporteSesionResponse, error) {
	cfg, err := s.configRepo.Obtener(ctx)
	if err != nil {
		return nil, err
	}

	hasta := time.Now()
	if sesion.FechaCierre != nil {
		hasta = *sesion.FechaCierre
	}
	fiscal, err := s.docRepo.ResumenFiscal(ctx, sesion.FechaApertura, hasta)
	if err != nil {
		return nil, err
	}

	// The documents store subtotal and IVA; base imponible is recovered from
	// the IVA at the standard rate and the exempt remainder by difference.
	base := fiscal.IvaBs.Div(tasaIva).Round(2)
	exento := fiscal.SubtotalBs.Sub(base)
	if exento.IsNegative() {
		// rounding residue only
		exento = decimal.Zero
	}

	return &dto.ReporteSesionResponse{
		Empresa: *empresaToResponse(cfg),
		Sesion:  *sesionToResponse(sesion),
		Fiscal: dto.ReporteFiscalResponse{
			CantidadFacturas: fiscal.CantidadFacturas,
			DocInicial:       fiscal.DocInicial,
			DocFinal:         fiscal.DocFinal,
			VentasExentasBs:  exento,
			BaseImponibleBs:  base,
			IvaBs:            fiscal.IvaBs,
			TotalBs:          fiscal.TotalBs,
		},
	}, nil
}
