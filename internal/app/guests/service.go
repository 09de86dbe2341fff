package guests

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"frontdesk/internal/app/uow"
	domainguest "frontdesk/internal/domain/guest"
)

type Service struct {
	UoW    uow.Factory
	Logger *slog.Logger
	Clock  func() time.Time
}

func NewService(factory uow.Factory, logger *slog.Logger) *Service {
	return &Service{UoW: factory, Logger: logger}
}

func (s *Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock().UTC()
	}
	return time.Now().UTC()
}

type CreateParams struct {
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	IDType      string
	IDNumber    string
	Nationality string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*domainguest.Guest, error) {
	unit, err := s.UoW.Begin(ctx, uow.TxOptions{})
	if err != nil {
		return nil, err
	}
	ctx = uow.Context(ctx, unit)
	committed := false
	defer func() {
		if !committed {
			_ = unit.Rollback(ctx)
		}
	}()

	if _, err := unit.Guests().ByEmail(ctx, params.Email); err == nil {
		return nil, domainguest.ErrEmailTaken
	} else if !errors.Is(err, domainguest.ErrNotFound) {
		return nil, err
	}
	if _, err := unit.Guests().ByIDNumber(ctx, params.IDNumber); err == nil {
		return nil, domainguest.ErrIDNumberTaken
	} else if !errors.Is(err, domainguest.ErrNotFound) {
		return nil, err
	}

	gst, err := domainguest.New(domainguest.CreateParams{
		ID:          domainguest.ID(uuid.NewString()),
		FirstName:   params.FirstName,
		LastName:    params.LastName,
		Email:       params.Email,
		Phone:       params.Phone,
		IDType:      params.IDType,
		IDNumber:    params.IDNumber,
		Nationality: params.Nationality,
		Now:         s.now(),
	})
	if err != nil {
		return nil, err
	}
	if err := unit.Guests().Save(ctx, gst); err != nil {
		return nil, err
	}
	if err := unit.Commit(ctx); err != nil {
		return nil, err
	}
	committed = true
	return gst, nil
}

type UpdateParams struct {
	FirstName   *string
	LastName    *string
	Phone       *string
	IDType      *string
	IDNumber    *string
	Nationality *string
	VIP         *bool
}

func (s *Service) Update(ctx context.Context, id domainguest.ID, params UpdateParams) (*domainguest.Guest, error) {
	unit, err := s.UoW.Begin(ctx, uow.TxOptions{})
	if err != nil {
		return nil, err
	}
	ctx = uow.Context(ctx, unit)
	committed := false
	defer func() {
		if !committed {
			_ = unit.Rollback(ctx)
		}
	}()

	gst, err := unit.Guests().ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if params.FirstName != nil {
		gst.FirstName = *params.FirstName
	}
	if params.LastName != nil {
		gst.LastName = *params.LastName
	}
	if params.Phone != nil {
		gst.Phone = *params.Phone
	}
	if params.IDType != nil {
		gst.IDType = *params.IDType
	}
	if params.IDNumber != nil && *params.IDNumber != gst.IDNumber {
		if other, err := unit.Guests().ByIDNumber(ctx, *params.IDNumber); err == nil && other.ID != gst.ID {
			return nil, domainguest.ErrIDNumberTaken
		} else if err != nil && !errors.Is(err, domainguest.ErrNotFound) {
			return nil, err
		}
		gst.IDNumber = *params.IDNumber
	}
	if params.Nationality != nil {
		gst.Nationality = *params.Nationality
	}
	if params.VIP != nil {
		gst.VIP = *params.VIP
	}
	if gst.FirstName == "" || gst.LastName == "" {
		return nil, domainguest.ErrNameRequired
	}
	gst.UpdatedAt = s.now()

	if err := unit.Guests().Save(ctx, gst); err != nil {
		return nil, err
	}
	if err := unit.Commit(ctx); err != nil {
		return nil, err
	}
	committed = true
	return gst, nil
}

func (s *Service) Deactivate(ctx context.Context, id domainguest.ID) error {
	unit, err := s.UoW.Begin(ctx, uow.TxOptions{})
	if err != nil {
		return err
	}
	ctx = uow.Context(ctx, unit)
	committed := false
	defer func() {
		if !committed {
			_ = unit.Rollback(ctx)
		}
	}()

	gst, err := unit.Guests().ByID(ctx, id)
	if err != nil {
		return err
	}
	gst.Deactivate(s.now())
	if err := unit.Guests().Save(ctx, gst); err != nil {
		return err
	}
	if err := unit.Commit(ctx); err != nil {
		return err
	}
	committed = true
	return nil
}

func (s *Service) Get(ctx context.Context, id domainguest.ID) (*domainguest.Guest, error) {
	unit, err := s.UoW.Begin(ctx, uow.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, err
	}
	ctx = uow.Context(ctx, unit)
	defer unit.Rollback(ctx)
	return unit.Guests().ByID(ctx, id)
}

func (s *Service) List(ctx context.Context, params domainguest.ListParams) ([]*domainguest.Guest, int, error) {
	unit, err := s.UoW.Begin(ctx, uow.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, 0, err
	}
	ctx = uow.Context(ctx, unit)
	defer unit.Rollback(ctx)
	return unit.Guests().List(ctx, params)
}
