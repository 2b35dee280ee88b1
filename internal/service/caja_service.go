package service

import (
	"context"
	"errors"
	"time"

	"github.com/luisjoselares/Pegasus-v1/internal/apierror"
	"github.com/luisjoselares/Pegasus-v1/internal/dto"
	"github.com/luisjoselares/Pegasus-v1/internal/model"
	"github.com/luisjoselares/Pegasus-v1/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MovimientoCaja describes one cash-kardex posting. VerificarFondos makes
// the posting fail when any resulting balance would go negative: refunds set
// it, manual EGRESOs do not (the cashier may legitimately empty the drawer
// below what the system expects and reconcile at close).
type MovimientoCaja struct {
	SesionID        uuid.UUID
	Operacion       string
	Entrada         dto.MontosPorMoneda
	Salida          dto.MontosPorMoneda
	Descripcion     string
	ReferenciaDoc   string
	UsuarioID       uuid.UUID
	VerificarFondos bool
}

// CajaService owns cash sessions and the multi-currency cash kardex.
// Balances are chained per currency: the balance before a session's first
// entry is zero and the opening float enters as the APERTURA inflow.
type CajaService interface {
	Abrir(ctx context.Context, usuarioID uuid.UUID, req dto.AbrirCajaRequest) (*dto.SesionCajaResponse, error)
	Cerrar(ctx context.Context, usuarioID uuid.UUID, req dto.CerrarCajaRequest) (*dto.SesionCajaResponse, error)
	RegistrarMovimiento(ctx context.Context, usuarioID uuid.UUID, req dto.MovimientoManualRequest) (*dto.SaldosCajaResponse, error)

	// SesionAbierta returns the caller's open session or a SIN_CAJA_ABIERTA
	// business error. Sales and cash refunds require one.
	SesionAbierta(ctx context.Context, usuarioID uuid.UUID) (*model.SesionCaja, error)

	// RegistrarKardexTx appends one chained kardex entry inside the caller's
	// transaction. The latest entry is read FOR UPDATE so concurrent postings
	// to the same session serialize.
	RegistrarKardexTx(tx *gorm.DB, mov MovimientoCaja) (*model.CajaKardex, error)

	Saldos(ctx context.Context, sesionID uuid.UUID) (*dto.SaldosCajaResponse, error)
	Resumen(ctx context.Context, sesionID uuid.UUID) (*dto.ResumenCajaResponse, error)
	Kardex(ctx context.Context, sesionID uuid.UUID) ([]dto.KardexCajaResponse, error)
	ListSesiones(ctx context.Context, limit int) ([]dto.SesionCajaResponse, error)
}

type cajaService struct {
	repo repository.CajaRepository
}

func NewCajaService(repo repository.CajaRepository) CajaService {
	return &cajaService{repo: repo}
}

// ── Abrir ─────────────────────────────────────────────────────────────────────

func (s *cajaService) Abrir(ctx context.Context, usuarioID uuid.UUID, req dto.AbrirCajaRequest) (*dto.SesionCajaResponse, error) {
	if existing, err := s.repo.FindSesionAbiertaPorUsuario(ctx, usuarioID); err == nil && existing != nil {
		return nil, apierror.NewReglaNegocio(apierror.CodigoCajaYaAbierta,
			"ya existe una caja abierta para este usuario")
	}

	sesion := &model.SesionCaja{
		UsuarioID:       usuarioID,
		FechaApertura:   time.Now(),
		MontoInicialUsd: req.InicialUsd,
		MontoInicialBs:  req.InicialBs,
		MontoInicialCop: req.InicialCop,
		Estado:          model.SesionAbierta,
	}

	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateSesionTx(tx, sesion); err != nil {
			// The partial unique index on open sessions catches the race
			// where two concurrent opens both pass the check above.
			if esDuplicadoDB(err) {
				return apierror.NewReglaNegocio(apierror.CodigoCajaYaAbierta,
					"ya existe una caja abierta para este usuario")
			}
			return err
		}
		_, err := s.RegistrarKardexTx(tx, MovimientoCaja{
			SesionID:    sesion.ID,
			Operacion:   model.OpApertura,
			Entrada:     dto.MontosPorMoneda{Usd: req.InicialUsd, Bs: req.InicialBs, Cop: req.InicialCop},
			Descripcion: "Apertura de caja",
			UsuarioID:   usuarioID,
		})
		return err
	})
	if err != nil {
		return nil, traducirConflicto(err)
	}
	return sesionToResponse(sesion), nil
}

// ── RegistrarKardexTx ─────────────────────────────────────────────────────────

func (s *cajaService) RegistrarKardexTx(tx *gorm.DB, mov MovimientoCaja) (*model.CajaKardex, error) {
	ultimo, err := s.repo.UltimoKardexTx(tx, mov.SesionID)
	if err != nil {
		return nil, err
	}

	saldoUsd, saldoBs, saldoCop := decimal.Zero, decimal.Zero, decimal.Zero
	if ultimo != nil {
		saldoUsd, saldoBs, saldoCop = ultimo.SaldoUsd, ultimo.SaldoBs, ultimo.SaldoCop
	}

	saldoUsd = saldoUsd.Add(mov.Entrada.Usd).Sub(mov.Salida.Usd)
	saldoBs = saldoBs.Add(mov.Entrada.Bs).Sub(mov.Salida.Bs)
	saldoCop = saldoCop.Add(mov.Entrada.Cop).Sub(mov.Salida.Cop)

	if mov.VerificarFondos && (saldoUsd.IsNegative() || saldoBs.IsNegative() || saldoCop.IsNegative()) {
		return nil, apierror.NewReglaNegocio(apierror.CodigoFondosInsuficientes,
			"fondos insuficientes en caja para la operacion %s", mov.Operacion)
	}

	entrada := &model.CajaKardex{
		SesionID:      mov.SesionID,
		Operacion:     mov.Operacion,
		EntradaUsd:    mov.Entrada.Usd,
		SalidaUsd:     mov.Salida.Usd,
		SaldoUsd:      saldoUsd,
		EntradaBs:     mov.Entrada.Bs,
		SalidaBs:      mov.Salida.Bs,
		SaldoBs:       saldoBs,
		EntradaCop:    mov.Entrada.Cop,
		SalidaCop:     mov.Salida.Cop,
		SaldoCop:      saldoCop,
		Descripcion:   mov.Descripcion,
		ReferenciaDoc: mov.ReferenciaDoc,
		UsuarioID:     mov.UsuarioID,
	}
	if err := s.repo.CreateKardexTx(tx, entrada); err != nil {
		return nil, err
	}
	return entrada, nil
}

// ── RegistrarMovimiento ───────────────────────────────────────────────────────
// Manual ingreso / egreso. An EGRESO deliberately skips the funds check.

func (s *cajaService) RegistrarMovimiento(ctx context.Context, usuarioID uuid.UUID, req dto.MovimientoManualRequest) (*dto.SaldosCajaResponse, error) {
	sesionID, err := uuid.Parse(req.SesionID)
	if err != nil {
		return nil, errors.New("sesion_id invalido")
	}
	sesion, err := s.repo.FindSesionByID(ctx, sesionID)
	if err != nil {
		return nil, errors.New("sesion de caja no encontrada")
	}
	if sesion.Estado != model.SesionAbierta {
		return nil, apierror.NewReglaNegocio(apierror.CodigoSinCajaAbierta,
			"la sesion de caja ya esta cerrada")
	}
	if req.MontoUsd.IsZero() && req.MontoBs.IsZero() && req.MontoCop.IsZero() {
		return nil, errors.New("el movimiento no tiene monto")
	}

	montos := dto.MontosPorMoneda{Usd: req.MontoUsd, Bs: req.MontoBs, Cop: req.MontoCop}
	mov := MovimientoCaja{
		SesionID:    sesionID,
		Operacion:   req.Tipo,
		Descripcion: req.Motivo,
		UsuarioID:   usuarioID,
	}
	if req.Tipo == model.OpIngreso {
		mov.Entrada = montos
	} else {
		mov.Salida = montos
	}

	var ultimo *model.CajaKardex
	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateMovimientoTx(tx, &model.CajaMovimiento{
			SesionID:  sesionID,
			Tipo:      req.Tipo,
			MontoUsd:  req.MontoUsd,
			MontoBs:   req.MontoBs,
			MontoCop:  req.MontoCop,
			Motivo:    req.Motivo,
			UsuarioID: usuarioID,
		}); err != nil {
			return err
		}
		var txErr error
		ultimo, txErr = s.RegistrarKardexTx(tx, mov)
		return txErr
	})
	if err != nil {
		return nil, traducirConflicto(err)
	}

	return &dto.SaldosCajaResponse{
		SesionID: sesionID.String(),
		Saldos:   dto.MontosPorMoneda{Usd: ultimo.SaldoUsd, Bs: ultimo.SaldoBs, Cop: ultimo.SaldoCop},
	}, nil
}

// ── Cerrar ────────────────────────────────────────────────────────────────────
// Records the physical count, the system balances and the variance, then
// appends the zero-movement CIERRE marker that seals the chain.

func (s *cajaService) Cerrar(ctx context.Context, usuarioID uuid.UUID, req dto.CerrarCajaRequest) (*dto.SesionCajaResponse, error) {
	sesionID, err := uuid.Parse(req.SesionID)
	if err != nil {
		return nil, errors.New("sesion_id invalido")
	}
	sesion, err := s.repo.FindSesionByID(ctx, sesionID)
	if err != nil {
		return nil, errors.New("sesion de caja no encontrada")
	}
	if sesion.Estado != model.SesionAbierta {
		return nil, apierror.NewReglaNegocio(apierror.CodigoSinCajaAbierta,
			"la sesion de caja ya esta cerrada")
	}

	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		ultimo, err := s.repo.UltimoKardexTx(tx, sesionID)
		if err != nil {
			return err
		}
		sistemaUsd, sistemaBs, sistemaCop := decimal.Zero, decimal.Zero, decimal.Zero
		if ultimo != nil {
			sistemaUsd, sistemaBs, sistemaCop = ultimo.SaldoUsd, ultimo.SaldoBs, ultimo.SaldoCop
		}

		ahora := time.Now()
		sesion.FechaCierre = &ahora
		sesion.MontoFinalUsd = req.ContadoUsd
		sesion.MontoFinalBs = req.ContadoBs
		sesion.MontoFinalCop = req.ContadoCop
		sesion.MontoSistemaUsd = sistemaUsd
		sesion.MontoSistemaBs = sistemaBs
		sesion.MontoSistemaCop = sistemaCop
		sesion.DiferenciaUsd = req.ContadoUsd.Sub(sistemaUsd)
		sesion.DiferenciaBs = req.ContadoBs.Sub(sistemaBs)
		sesion.DiferenciaCop = req.ContadoCop.Sub(sistemaCop)
		sesion.Estado = model.SesionCerrada
		sesion.Observaciones = req.Observaciones

		if err := s.repo.UpdateSesionTx(tx, sesion); err != nil {
			return err
		}
		_, err = s.RegistrarKardexTx(tx, MovimientoCaja{
			SesionID:    sesionID,
			Operacion:   model.OpCierre,
			Descripcion: "Cierre de caja",
			UsuarioID:   usuarioID,
		})
		return err
	})
	if err != nil {
		return nil, traducirConflicto(err)
	}
	return sesionToResponse(sesion), nil
}

// ── Consultas ─────────────────────────────────────────────────────────────────

func (s *cajaService) SesionAbierta(ctx context.Context, usuarioID uuid.UUID) (*model.SesionCaja, error) {
	sesion, err := s.repo.FindSesionAbiertaPorUsuario(ctx, usuarioID)
	if err != nil || sesion == nil {
		return nil, apierror.NewReglaNegocio(apierror.CodigoSinCajaAbierta,
			"debe abrir una caja antes de registrar operaciones")
	}
	return sesion, nil
}

func (s *cajaService) Saldos(ctx context.Context, sesionID uuid.UUID) (*dto.SaldosCajaResponse, error) {
	ultimo, err := s.repo.UltimoKardex(ctx, sesionID)
	if err != nil {
		return nil, err
	}
	saldos := dto.MontosPorMoneda{Usd: decimal.Zero, Bs: decimal.Zero, Cop: decimal.Zero}
	if ultimo != nil {
		saldos = dto.MontosPorMoneda{Usd: ultimo.SaldoUsd, Bs: ultimo.SaldoBs, Cop: ultimo.SaldoCop}
	}
	return &dto.SaldosCajaResponse{SesionID: sesionID.String(), Saldos: saldos}, nil
}

func (s *cajaService) Resumen(ctx context.Context, sesionID uuid.UUID) (*dto.ResumenCajaResponse, error) {
	sesion, err := s.repo.FindSesionByID(ctx, sesionID)
	if err != nil {
		return nil, errors.New("sesion de caja no encontrada")
	}
	ventas, err := s.repo.SumarVentasKardex(ctx, sesionID)
	if err != nil {
		return nil, err
	}
	ultimo, err := s.repo.UltimoKardex(ctx, sesionID)
	if err != nil {
		return nil, err
	}

	resp := &dto.ResumenCajaResponse{
		SesionID: sesionID.String(),
		Estado:   sesion.Estado,
		Inicial: dto.MontosPorMoneda{
			Usd: sesion.MontoInicialUsd,
			Bs:  sesion.MontoInicialBs,
			Cop: sesion.MontoInicialCop,
		},
	}
	if ventas != nil {
		if ventas.Usd.Valid {
			resp.Ventas.Usd = ventas.Usd.Decimal
		}
		if ventas.Bs.Valid {
			resp.Ventas.Bs = ventas.Bs.Decimal
		}
		if ventas.Cop.Valid {
			resp.Ventas.Cop = ventas.Cop.Decimal
		}
	}
	if ultimo != nil {
		resp.Sistema = dto.MontosPorMoneda{Usd: ultimo.SaldoUsd, Bs: ultimo.SaldoBs, Cop: ultimo.SaldoCop}
	}
	return resp, nil
}

func (s *cajaService) Kardex(ctx context.Context, sesionID uuid.UUID) ([]dto.KardexCajaResponse, error) {
	entradas, err := s.repo.ListKardex(ctx, sesionID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.KardexCajaResponse, 0, len(entradas))
	for _, k := range entradas {
		out = append(out, dto.KardexCajaResponse{
			Operacion:   k.Operacion,
			Entrada:     dto.MontosPorMoneda{Usd: k.EntradaUsd, Bs: k.EntradaBs, Cop: k.EntradaCop},
			Salida:      dto.MontosPorMoneda{Usd: k.SalidaUsd, Bs: k.SalidaBs, Cop: k.SalidaCop},
			Saldo:       dto.MontosPorMoneda{Usd: k.SaldoUsd, Bs: k.SaldoBs, Cop: k.SaldoCop},
			Descripcion: k.Descripcion,
			Referencia:  k.ReferenciaDoc,
			Fecha:       k.CreatedAt.Format("2006-01-02T15:04:05Z"),
		})
	}
	return out, nil
}

func (s *cajaService) ListSesiones(ctx context.Context, limit int) ([]dto.SesionCajaResponse, error) {
	if limit < 1 {
		limit = 30
	}
	sesiones, err := s.repo.ListSesiones(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SesionCajaResponse, 0, len(sesiones))
	for _, ses := range sesiones {
		out = append(out, *sesionToResponse(&ses))
	}
	return out, nil
}

func sesionToResponse(s *model.SesionCaja) *dto.SesionCajaResponse {
	resp := &dto.SesionCajaResponse{
		ID:            s.ID.String(),
		UsuarioID:     s.UsuarioID.String(),
		Estado:        s.Estado,
		FechaApertura: s.FechaApertura.Format("2006-01-02T15:04:05Z"),
		MontoInicial:  dto.MontosPorMoneda{Usd: s.MontoInicialUsd, Bs: s.MontoInicialBs, Cop: s.MontoInicialCop},
		MontoFinal:    dto.MontosPorMoneda{Usd: s.MontoFinalUsd, Bs: s.MontoFinalBs, Cop: s.MontoFinalCop},
		MontoSistema:  dto.MontosPorMoneda{Usd: s.MontoSistemaUsd, Bs: s.MontoSistemaBs, Cop: s.MontoSistemaCop},
		Diferencia:    dto.MontosPorMoneda{Usd: s.DiferenciaUsd, Bs: s.DiferenciaBs, Cop: s.DiferenciaCop},
		Observaciones: s.Observaciones,
	}
	if s.FechaCierre != nil {
		fc := s.FechaCierre.Format("2006-01-02T15:04:05Z")
		resp.FechaCierre = &fc
	}
	return resp
}
