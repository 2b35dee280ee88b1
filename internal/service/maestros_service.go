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

type ProveedorService interface {
	Guardar(ctx context.Context, req dto.GuardarProveedorRequest) (*dto.ProveedorResponse, error)
	List(ctx context.Context) ([]dto.ProveedorResponse, error)
}

type proveedorService struct {
	repo repository.ProveedorRepository
}

func NewProveedorService(repo repository.ProveedorRepository) ProveedorService {
	return &proveedorService{repo: repo}
}

// Guardar upserts on the normalized RIF.
func (s *proveedorService) Guardar(ctx context.Context, req dto.GuardarProveedorRequest) (*dto.ProveedorResponse, error) {
	rif := normalizarCedula(req.Rif)
	if rif == "" {
		return nil, errors.New("rif requerido")
	}

	if existing, err := s.repo.FindByRif(ctx, rif); err == nil && existing != nil && existing.ID != uuid.Nil {
		existing.RazonSocial = strings.TrimSpace(req.RazonSocial)
		existing.Contacto = req.Contacto
		existing.Activo = true
		if err := s.repo.Update(ctx, existing); err != nil {
			return nil, err
		}
		return proveedorToResponse(existing), nil
	}

	p := &model.Proveedor{
		Rif:         rif,
		RazonSocial: strings.TrimSpace(req.RazonSocial),
		Contacto:    req.Contacto,
		Activo:      true,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return proveedorToResponse(p), nil
}

func (s *proveedorService) List(ctx context.Context) ([]dto.ProveedorResponse, error) {
	proveedores, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProveedorResponse, 0, len(proveedores))
	for i := range proveedores {
		out = append(out, *proveedorToResponse(&proveedores[i]))
	}
	return out, nil
}

func proveedorToResponse(p *model.Proveedor) *dto.ProveedorResponse {
	return &dto.ProveedorResponse{
		ID:          p.ID.String(),
		Rif:         p.Rif,
		RazonSocial: p.RazonSocial,
		Contacto:    p.Contacto,
		Activo:      p.Activo,
	}
}

type CategoriaService interface {
	Crear(ctx context.Context, req dto.CrearCategoriaRequest) (*dto.CategoriaResponse, error)
	List(ctx context.Context) ([]dto.CategoriaResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type categoriaService struct {
	repo repository.CategoriaRepository
}

func NewCategoriaService(repo repository.CategoriaRepository) CategoriaService {
	return &categoriaService{repo: repo}
}

func (s *categoriaService) Crear(ctx context.Context, req dto.CrearCategoriaRequest) (*dto.CategoriaResponse, error) {
	c := &model.Categoria{Nombre: strings.TrimSpace(req.Nombre)}
	if c.Nombre == "" {
		return nil, errors.New("nombre requerido")
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return &dto.CategoriaResponse{ID: c.ID.String(), Nombre: c.Nombre}, nil
}

func (s *categoriaService) List(ctx context.Context) ([]dto.CategoriaResponse, error) {
	categorias, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoriaResponse, 0, len(categorias))
	for _, c := range categorias {
		out = append(out, dto.CategoriaResponse{ID: c.ID.String(), Nombre: c.Nombre})
	}
	return out, nil
}

func (s *categoriaService) Eliminar(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
