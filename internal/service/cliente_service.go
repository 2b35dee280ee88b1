package service

import (
	"context"
	"errors"
	"strings"

	"github.com/luisjoselares/Pegasus-v1/internal/dto"
	"github.com/luisjoselares/Pegasus-v1/internal/model"
	"github.com/luisjoselares/Pegasus-v1/internal/repository"

	"github.com/google/uuid"
)

// ClienteService manages customer accounts. Guardar is an upsert keyed on the
// normalized cedula/RIF, so the same person scanned twice never creates a
// duplicate account.
type ClienteService interface {
	Guardar(ctx context.Context, req dto.GuardarClienteRequest) (*dto.ClienteResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error)
	BuscarPorCedula(ctx context.Context, cedulaRif string) (*dto.ClienteResponse, error)
	List(ctx context.Context) ([]dto.ClienteResponse, error)
}

type clienteService struct {
	repo repository.ClienteRepository
}

func NewClienteService(repo repository.ClienteRepository) ClienteService {
	return &clienteService{repo: repo}
}

// normalizarCedula removes dots, dashes and spaces and uppercases, so
// "v-12.345.678" and "V12345678" resolve to the same account.
func normalizarCedula(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.NewReplacer(".", "", "-", "", " ", "").Replace(s)
	return s
}

func (s *clienteService) Guardar(ctx context.Context, req dto.GuardarClienteRequest) (*dto.ClienteResponse, error) {
	cedula := normalizarCedula(req.CedulaRif)
	if cedula == "" {
		return nil, errors.New("cedula_rif requerida")
	}

	if existing, err := s.repo.FindByCedula(ctx, cedula); err == nil && existing != nil && existing.ID != uuid.Nil {
		existing.Nombre = strings.TrimSpace(req.Nombre)
		existing.Direccion = req.Direccion
		existing.Telefono = req.Telefono
		if err := s.repo.Update(ctx, existing); err != nil {
			return nil, err
		}
		return clienteToResponse(existing), nil
	}

	c := &model.Cliente{
		CedulaRif: cedula,
		Nombre:    strings.TrimSpace(req.Nombre),
		Direccion: req.Direccion,
		Telefono:  req.Telefono,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return clienteToResponse(c), nil
}

func (s *clienteService) Obtener(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("cliente no encontrado")
	}
	return clienteToResponse(c), nil
}

func (s *clienteService) BuscarPorCedula(ctx context.Context, cedulaRif string) (*dto.ClienteResponse, error) {
	c, err := s.repo.FindByCedula(ctx, normalizarCedula(cedulaRif))
	if err != nil {
		return nil, errors.New("cliente no encontrado")
	}
	return clienteToResponse(c), nil
}

func (s *clienteService) List(ctx context.Context) ([]dto.ClienteResponse, error) {
	clientes, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClienteResponse, 0, len(clientes))
	for i := range clientes {
		out = append(out, *clienteToResponse(&clientes[i]))
	}
	return out, nil
}

func clienteToResponse(c *model.Cliente) *dto.ClienteResponse {
	return &dto.ClienteResponse{
		ID:         c.ID.String(),
		CedulaRif:  c.CedulaRif,
		Nombre:     c.Nombre,
		Direccion:  c.Direccion,
		Telefono:   c.Telefono,
		SaldoFavor: c.SaldoFavor,
	}
}
