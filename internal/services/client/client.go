// Package client содержит бизнес-логику работы с клиентами столовой:
// проверку входных данных и перевод ошибок хранилища в ошибки сервиса.
package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator"

	"github.com/saranzafar/hotel-book/internal/lib/sl"
	"github.com/saranzafar/hotel-book/internal/lib/validate"
	"github.com/saranzafar/hotel-book/internal/models"
	"github.com/saranzafar/hotel-book/internal/storage"
)

var (
	// ErrNotFound — клиента с таким ID нет.
	ErrNotFound = errors.New("client not found")
	// ErrDuplicatePhone — телефон уже принадлежит другому клиенту.
	ErrDuplicatePhone = errors.New("client with this phone already exists")
	// ErrHasSubscriptions — у клиента есть абонементы, удалить его нельзя.
	ErrHasSubscriptions = errors.New("client has subscriptions")
)

// Repository определяет методы хранилища клиентов.
type Repository interface {
	// Create добавляет клиента и возвращает его ID.
	Create(ctx context.Context, client models.Client) (int, error)
	// List возвращает всех клиентов по имени.
	List(ctx context.Context) ([]*models.Client, error)
	// Search ищет клиентов по подстроке имени или телефона.
	Search(ctx context.Context, term string) ([]*models.Client, error)
	// Read возвращает клиента по ID или nil.
	Read(ctx context.Context, id int) (*models.Client, error)
	// Update перезаписывает клиента и возвращает количество изменённых строк.
	Update(ctx context.Context, id int, client models.Client) (int, error)
	// Remove удаляет клиента и возвращает количество удалённых строк.
	Remove(ctx context.Context, id int) (int, error)
}

// Service реализует операции над клиентами.
type Service struct {
	repo     Repository
	validate *validator.Validate
	log      *slog.Logger
}

// New создаёт сервис клиентов.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		validate: validate.New(),
		log:      log,
	}
}

// Create проверяет данные и сохраняет нового клиента.
func (s *Service) Create(ctx context.Context, req models.DummyClient) (int, error) {
	const op = "services.client.Create"

	client := normalize(req)
	if err := validate.Struct(s.validate, client); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	id, err := s.repo.Create(ctx, toClient(client))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, translate(err))
	}

	s.log.Info("client created", sl.Op(op), slog.Int("id", id))
	return id, nil
}

// List возвращает всех клиентов.
func (s *Service) List(ctx context.Context) ([]*models.Client, error) {
	const op = "services.client.List"

	clients, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return clients, nil
}

// Search ищет клиентов по имени или телефону. Пустая строка поиска
// возвращает полный список.
func (s *Service) Search(ctx context.Context, term string) ([]*models.Client, error) {
	const op = "services.client.Search"

	term = strings.TrimSpace(term)
	if term == "" {
		return s.List(ctx)
	}
	clients, err := s.repo.Search(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return clients, nil
}

// Read возвращает клиента по ID или ErrNotFound.
func (s *Service) Read(ctx context.Context, id int) (*models.Client, error) {
	const op = "services.client.Read"

	client, err := s.repo.Read(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if client == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return client, nil
}

// Update проверяет данные и перезаписывает клиента.
func (s *Service) Update(ctx context.Context, id int, req models.DummyClient) error {
	const op = "services.client.Update"

	client := normalize(req)
	if err := validate.Struct(s.validate, client); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	n, err := s.repo.Update(ctx, id, toClient(client))
	if err != nil {
		return fmt.Errorf("%s: %w", op, translate(err))
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	s.log.Info("client updated", sl.Op(op), slog.Int("id", id))
	return nil
}

// Remove удаляет клиента. Клиента с абонементами удалить нельзя.
func (s *Service) Remove(ctx context.Context, id int) error {
	const op = "services.client.Remove"

	n, err := s.repo.Remove(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, translate(err))
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	s.log.Info("client removed", sl.Op(op), slog.Int("id", id))
	return nil
}

func normalize(req models.DummyClient) models.DummyClient {
	return models.DummyClient{
		Name:    strings.TrimSpace(req.Name),
		Phone:   strings.TrimSpace(req.Phone),
		Email:   strings.TrimSpace(req.Email),
		Address: strings.TrimSpace(req.Address),
		Notes:   strings.TrimSpace(req.Notes),
	}
}

func toClient(req models.DummyClient) models.Client {
	return models.Client{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
		Notes:   req.Notes,
	}
}

func translate(err error) error {
	switch {
	case storage.IsConstraint(err, storage.ConstraintUnique):
		return ErrDuplicatePhone
	case storage.IsConstraint(err, storage.ConstraintForeignKey):
		return ErrHasSubscriptions
	}
	return err
}
