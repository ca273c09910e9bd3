package client

import (
	"context"
	"time"

	"queuedesk/database/repository"
	"queuedesk/models"
	"queuedesk/services/events"
	"queuedesk/utils"

	"github.com/google/uuid"
)

// ClientInput carries the contact data used to create or merge a client.
// Empty fields never overwrite stored values.
type ClientInput struct {
	ClientID     string
	BusinessID   string
	CommerceID   string
	Name         string
	LastName     string
	Phone        string
	Email        string
	IDNumber     string
	PersonalInfo models.PersonalInfo
}

type Service interface {
	// SaveClient merges input into the matching client (by id, else by
	// email or id number) or creates a new one. Returning visitors have
	// their counter bumped and are flagged as frequent customers.
	SaveClient(ctx context.Context, in ClientInput) (*models.Client, error)
	GetClientByID(ctx context.Context, id string) (*models.Client, error)
}

type UserService interface {
	// CreateUser stores a visit contact and links it to its client.
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	UpdateUser(ctx context.Context, actor string, user *models.User) error
}

type DefaultClientService struct {
	Repo   repository.ClientRepository
	Events events.Publisher
}

func (s *DefaultClientService) GetClientByID(ctx context.Context, id string) (*models.Client, error) {
	c, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, utils.Wrap(utils.KindInternal, err, "failed to load client %s", id)
	}
	if c == nil {
		return nil, utils.NotFound("client %s not found", id)
	}
	return c, nil
}

func (s *DefaultClientService) SaveClient(ctx context.Context, in ClientInput) (*models.Client, error) {
	var (
		existing *models.Client
		err      error
	)
	if in.ClientID != "" {
		existing, err = s.Repo.GetByID(ctx, in.ClientID)
	} else {
		existing, err = s.Repo.FindByContact(ctx, in.CommerceID, in.Email, in.IDNumber)
	}
	if err != nil {
		return nil, utils.Wrap(utils.KindInternal, err, "failed to look up client")
	}

	client := existing
	if client == nil {
		client = &models.Client{
			ID:         uuid.New().String(),
			BusinessID: in.BusinessID,
			CreatedAt:  time.Now(),
		}
	}
	mergeClient(client, in)
	client.UpdatedAt = time.Now()

	if existing == nil {
		client.Counter = 0
		client.FrequentCustomer = false
		if err := s.Repo.Create(ctx, client); err != nil {
			return nil, utils.Wrap(utils.KindInternal, err, "failed to create client")
		}
		events.Emit(ctx, s.Events, models.EventClientCreated, "ett", client)
		return client, nil
	}

	client.Counter++
	client.FrequentCustomer = true
	if err := s.Repo.Update(ctx, client); err != nil {
		return nil, utils.Wrap(utils.KindInternal, err, "failed to update client %s", client.ID)
	}
	events.Emit(ctx, s.Events, models.EventClientUpdated, "ett", client)
	return client, nil
}

func mergeClient(c *models.Client, in ClientInput) {
	if in.CommerceID != "" {
		c.CommerceID = in.CommerceID
	}
	if in.IDNumber != "" {
		c.IDNumber = in.IDNumber
	}
	if in.Name != "" {
		c.Name = in.Name
	}
	if in.LastName != "" {
		c.LastName = in.LastName
	}
	if in.Phone != "" {
		c.Phone = in.Phone
	}
	if in.Email != "" {
		c.Email = in.Email
	}
	if len(in.PersonalInfo) > 0 {
		merged := models.PersonalInfo{}
		for k, v := range c.PersonalInfo {
			merged[k] = v
		}
		for k, v := range in.PersonalInfo {
			merged[k] = v
		}
		c.PersonalInfo = merged
	}
}

type DefaultUserService struct {
	Repo    repository.UserRepository
	Clients Service
	Events  events.Publisher
}

func (s *DefaultUserService) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	user.ID = uuid.New().String()
	if user.Type == "" {
		user.Type = models.UserTypeStandard
	}
	user.CreatedAt = time.Now()

	client, err := s.Clients.SaveClient(ctx, ClientInput{
		ClientID:     user.ClientID,
		BusinessID:   user.BusinessID,
		CommerceID:   user.CommerceID,
		Name:         user.Name,
		LastName:     user.LastName,
		Phone:        user.Phone,
		Email:        user.Email,
		IDNumber:     user.IDNumber,
		PersonalInfo: user.PersonalInfo,
	})
	if err != nil {
		return nil, err
	}
	user.ClientID = client.ID
	user.FrequentCustomer = client.FrequentCustomer

	if err := s.Repo.Create(ctx, &user); err != nil {
		return nil, utils.Wrap(utils.KindInternal, err, "failed to create user")
	}
	events.Emit(ctx, s.Events, models.EventUserCreated, "ett", user)
	return &user, nil
}

func (s *DefaultUserService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, utils.Wrap(utils.KindInternal, err, "failed to load user %s", id)
	}
	if u == nil {
		return nil, utils.NotFound("user %s not found", id)
	}
	return u, nil
}

func (s *DefaultUserService) UpdateUser(ctx context.Context, actor string, user *models.User) error {
	if err := s.Repo.Update(ctx, user); err != nil {
		return utils.Wrap(utils.KindInternal, err, "failed to update user %s", user.ID)
	}
	return nil
}
