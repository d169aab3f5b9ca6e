package services

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"

	"rastaka_backend/internal/logger"
	"rastaka_backend/internal/mediaurl"
	"rastaka_backend/internal/models"
	"rastaka_backend/internal/repositories"
	"rastaka_backend/internal/services/dto"
	"rastaka_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ClientService interface {
	List(ctx context.Context, db *gorm.DB, clientType models.ClientType) ([]*dto.ClientResponse, error)
	GetBySlug(ctx context.Context, db *gorm.DB, slug string) (*dto.ClientResponse, error)
	GetByID(ctx context.Context, db *gorm.DB, id int64) (*dto.ClientResponse, error)
	Create(ctx context.Context, db *gorm.DB, req *dto.CreateClientRequest, logo *multipart.FileHeader) (*dto.ClientResponse, error)
	Update(ctx context.Context, db *gorm.DB, id int64, req *dto.UpdateClientRequest, logo *multipart.FileHeader) (*dto.ClientResponse, error)
	Delete(ctx context.Context, db *gorm.DB, id int64) error
}

type clientService struct {
	clientRepo repositories.ClientRepository
	uploads    UploadService
	slugs      *SlugWriter
	urls       *mediaurl.Transformer
}

func NewClientService(
	clientRepo repositories.ClientRepository,
	uploads UploadService,
	slugs *SlugWriter,
	urls *mediaurl.Transformer,
) ClientService {
	return &clientService{
		clientRepo: clientRepo,
		uploads:    uploads,
		slugs:      slugs,
		urls:       urls,
	}
}

func (s *clientService) List(ctx context.Context, db *gorm.DB, clientType models.ClientType) ([]*dto.ClientResponse, error) {
	clients, err := s.clientRepo.List(db, clientType)
	if err != nil {
		return nil, handleClientError(err)
	}
	out := make([]*dto.ClientResponse, 0, len(clients))
	for i := range clients {
		out = append(out, s.urls.Client(&clients[i]))
	}
	return out, nil
}

func (s *clientService) GetBySlug(ctx context.Context, db *gorm.DB, slug string) (*dto.ClientResponse, error) {
	client, err := s.clientRepo.FindBySlug(db, slug)
	if err != nil {
		return nil, handleClientError(err)
	}
	resp := s.urls.Client(client)
	resp.Works = s.urls.Works(client.Works)
	return resp, nil
}

func (s *clientService) GetByID(ctx context.Context, db *gorm.DB, id int64) (*dto.ClientResponse, error) {
	client, err := s.clientRepo.FindByID(db, id)
	if err != nil {
		return nil, handleClientError(err)
	}
	return s.urls.Client(client), nil
}

func (s *clientService) Create(ctx context.Context, db *gorm.DB, req *dto.CreateClientRequest, logo *multipart.FileHeader) (*dto.ClientResponse, error) {
	client := &models.Client{
		Name:        strings.TrimSpace(req.Name),
		Type:        req.Type,
		Description: req.Description,
		WebsiteURL:  req.WebsiteURL,
	}

	var stored *dto.StoredFile
	if logo != nil {
		var err error
		stored, err = s.uploads.Store(ctx, db, logo, UploadOptions{Kind: KindImage})
		if err != nil {
			return nil, err
		}
		client.LogoURL = stored.PublicPath
	}

	if err := s.create(ctx, db, client); err != nil {
		if stored != nil {
			s.uploads.DeleteQuietly(ctx, db, stored.PublicPath)
		}
		return nil, handleClientError(err)
	}

	logger.CtxInfo(ctx, "Client created", "client_id", client.ID, "slug", client.Slug)
	return s.urls.Client(client), nil
}

func (s *clientService) create(ctx context.Context, db *gorm.DB, client *models.Client) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer tx.Rollback()

	err := s.slugs.write(ctx, tx, "client", client.Name, 0, s.clientRepo.SlugExists,
		func(slug string) { client.Slug = slug },
		func(tx *gorm.DB) error { return s.clientRepo.Create(tx, client) },
	)
	if err != nil {
		return err
	}
	return tx.Commit().Error
}

func (s *clientService) Update(ctx context.Context, db *gorm.DB, id int64, req *dto.UpdateClientRequest, logo *multipart.FileHeader) (*dto.ClientResponse, error) {
	if req.IsEmpty() && logo == nil {
		return nil, apperrors.ErrNoFieldsToUpdate("client")
	}

	client, err := s.clientRepo.FindByID(db, id)
	if err != nil {
		return nil, handleClientError(err)
	}

	oldLogo := client.LogoURL
	var stored *dto.StoredFile
	if logo != nil {
		stored, err = s.uploads.Store(ctx, db, logo, UploadOptions{Kind: KindImage})
		if err != nil {
			return nil, err
		}
		client.LogoURL = stored.PublicPath
	}

	nameChanged := false
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		nameChanged = name != client.Name
		client.Name = name
	}
	if req.Type != nil {
		client.Type = *req.Type
	}
	if req.Description != nil {
		client.Description = *req.Description
	}
	if req.WebsiteURL != nil {
		client.WebsiteURL = *req.WebsiteURL
	}

	if err := s.save(ctx, db, client, nameChanged); err != nil {
		if stored != nil {
			s.uploads.DeleteQuietly(ctx, db, stored.PublicPath)
		}
		return nil, handleClientError(err)
	}

	if stored != nil && oldLogo != "" {
		s.uploads.DeleteQuietly(ctx, db, oldLogo)
	}

	return s.urls.Client(client), nil
}

func (s *clientService) save(ctx context.Context, db *gorm.DB, client *models.Client, regenerateSlug bool) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer tx.Rollback()

	persist := func(tx *gorm.DB) error { return s.clientRepo.Update(tx, client) }
	if regenerateSlug {
		err := s.slugs.write(ctx, tx, "client", client.Name, client.ID, s.clientRepo.SlugExists,
			func(slug string) { client.Slug = slug }, persist)
		if err != nil {
			return err
		}
	} else if err := persist(tx); err != nil {
		return err
	}
	return tx.Commit().Error
}

func (s *clientService) Delete(ctx context.Context, db *gorm.DB, id int64) error {
	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	client, err := s.clientRepo.FindByID(tx, id)
	if err != nil {
		return handleClientError(err)
	}

	works, err := s.clientRepo.CountWorks(tx, id)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if works > 0 {
		return apperrors.ErrHasDependents("client", "Client has works; delete or reassign them first").
			WithDetails(map[string]interface{}{"works": works})
	}

	if err := s.clientRepo.Delete(tx, id); err != nil {
		return handleClientError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return apperrors.InternalError(err)
	}

	s.uploads.DeleteQuietly(ctx, db, client.LogoURL)
	logger.CtxInfo(ctx, "Client deleted", "client_id", id)
	return nil
}

func handleClientError(err error) error {
	if _, ok := apperrors.AsAppError(err); ok {
		return err
	}
	if errors.Is(err, repositories.ErrClientNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound(err, "client", "Client not found")
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.ErrConflict(err, "client", "Client with this slug already exists")
	}
	return apperrors.InternalError(err)
}
