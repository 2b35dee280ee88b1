package service

import (
	"context"
	"errors"

	"github.com/luisjoselares/Pegasus-v1/internal/dto"
	"github.com/luisjoselares/Pegasus-v1/internal/model"
	"github.com/luisjoselares/Pegasus-v1/internal/repository"
	"github.com/luisjoselares/Pegasus-v1/internal/worker"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ConfiguracionService manages the company fiscal identity and the exchange
// rates. Rate changes are forward-only: every historical document keeps the
// rate captured at its creation.
type ConfiguracionService interface {
	ObtenerTasas(ctx context.Context) (*dto.TasasResponse, error)
	ActualizarTasas(ctx context.Context, usuarioID uuid.UUID, req dto.ActualizarTasasRequest) (*dto.TasasResponse, error)
	ListarHistorialTasas(ctx context.Context, limit int) ([]dto.HistorialTasaResponse, error)

	ObtenerEmpresa(ctx context.Context) (*dto.EmpresaResponse, error)
	GuardarEmpresa(ctx context.Context, req dto.EmpresaRequest) (*dto.EmpresaResponse, error)
}

type configuracionService struct {
	repo        repository.ConfiguracionRepository
	notificador worker.Notificador
}

func NewConfiguracionService(repo repository.ConfiguracionRepository, notificador worker.Notificador) ConfiguracionService {
	return &configuracionService{repo: repo, notificador: notificador}
}

func (s *configuracionService) ObtenerTasas(ctx context.Context) (*dto.TasasResponse, error) {
	cfg, err := s.repo.Obtener(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.TasasResponse{TasaBcv: cfg.TasaBcv, TasaCop: cfg.TasaCop}, nil
}

// ActualizarTasas replaces the current rates and appends one history row per
// currency whose value actually changed. Both rates must be positive; there
// is no upper bound nor maximum-variation guard, the operator is trusted.
func (s *configuracionService) ActualizarTasas(ctx context.Context, usuarioID uuid.UUID, req dto.ActualizarTasasRequest) (*dto.TasasResponse, error) {
	if !req.TasaBcv.IsPositive() || !req.TasaCop.IsPositive() {
		return nil, errors.New("las tasas de cambio deben ser mayores que cero")
	}

	cfg, err := s.repo.Obtener(ctx)
	if err != nil {
		return nil, err
	}

	anteriorBcv := cfg.TasaBcv
	anteriorCop := cfg.TasaCop

	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if !req.TasaBcv.Equal(anteriorBcv) {
			h := &model.HistorialTasa{
				Moneda:       "BCV",
				TasaAnterior: anteriorBcv,
				TasaNueva:    req.TasaBcv,
				UsuarioID:    usuarioID,
			}
			if err := s.repo.CrearHistorialTasa(ctx, tx, h); err != nil {
				return err
			}
		}
		if !req.TasaCop.Equal(anteriorCop) {
			h := &model.HistorialTasa{
				Moneda:       "COP",
				TasaAnterior: anteriorCop,
				TasaNueva:    req.TasaCop,
				UsuarioID:    usuarioID,
			}
			if err := s.repo.CrearHistorialTasa(ctx, tx, h); err != nil {
				return err
			}
		}
		cfg.TasaBcv = req.TasaBcv
		cfg.TasaCop = req.TasaCop
		if tx != nil {
			return tx.Save(cfg).Error
		}
		return s.repo.Guardar(ctx, cfg)
	})
	if err != nil {
		return nil, err
	}

	if s.notificador != nil {
		s.notificador.Publicar(ctx, worker.CanalTasas, dto.TasasResponse{
			TasaBcv: req.TasaBcv,
			TasaCop: req.TasaCop,
		})
	}
	return &dto.TasasResponse{TasaBcv: cfg.TasaBcv, TasaCop: cfg.TasaCop}, nil
}

func (s *configuracionService) ListarHistorialTasas(ctx context.Context, limit int) ([]dto.HistorialTasaResponse, error) {
	if limit < 1 {
		limit = 50
	}
	hist, err := s.repo.ListarHistorialTasas(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.HistorialTasaResponse, 0, len(hist))
	for _, h := range hist {
		out = append(out, dto.HistorialTasaResponse{
			Moneda:       h.Moneda,
			TasaAnterior: h.TasaAnterior,
			TasaNueva:    h.TasaNueva,
			Fecha:        h.CreatedAt.Format("2006-01-02T15:04:05Z"),
		})
	}
	return out, nil
}

func (s *configuracionService) ObtenerEmpresa(ctx context.Context) (*dto.EmpresaResponse, error) {
	cfg, err := s.repo.Obtener(ctx)
	if err != nil {
		return nil, err
	}
	return empresaToResponse(cfg), nil
}

func (s *configuracionService) GuardarEmpresa(ctx context.Context, req dto.EmpresaRequest) (*dto.EmpresaResponse, error) {
	if req.PorcentajeIgtf.IsNegative() {
		return nil, errors.New("el porcentaje de IGTF no puede ser negativo")
	}
	cfg, err := s.repo.Obtener(ctx)
	if err != nil {
		return nil, err
	}
	cfg.Rif = &req.Rif
	cfg.RazonSocial = &req.RazonSocial
	cfg.DireccionFiscal = &req.DireccionFiscal
	cfg.EsContribuyenteEspecial = req.EsContribuyenteEspecial
	if !req.PorcentajeIgtf.IsZero() {
		cfg.PorcentajeIgtf = req.PorcentajeIgtf
	}
	if err := s.repo.Guardar(ctx, cfg); err != nil {
		return nil, err
	}
	return empresaToResponse(cfg), nil
}

func empresaToResponse(cfg *model.Configuracion) *dto.EmpresaResponse {
	resp := &dto.EmpresaResponse{
		EsContribuyenteEspecial: cfg.EsContribuyenteEspecial,
		PorcentajeIgtf:          cfg.PorcentajeIgtf,
	}
	if cfg.Rif != nil {
		resp.Rif = *cfg.Rif
	}
	if cfg.RazonSocial != nil {
		resp.RazonSocial = *cfg.RazonSocial
	}
	if cfg.DireccionFiscal != nil {
		resp.DireccionFiscal = *cfg.DireccionFiscal
	}
	return resp
}
