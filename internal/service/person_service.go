package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"horizon/horizon-app/internal/domain"
	"horizon/horizon-app/internal/insight"
	"horizon/horizon-app/internal/repository"
	"horizon/horizon-app/internal/storage"
)

// PersonWithAvatar is a person enriched with a short-lived download URL
// for their photo, when one has been uploaded.
type PersonWithAvatar struct {
	domain.Person
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// PersonService manages the user's people and their photos.
type PersonService interface {
	CreatePerson(ctx context.Context, person *domain.Person) (*domain.Person, error)
	GetPeople(ctx context.Context, userID primitive.ObjectID) ([]PersonWithAvatar, error)
	GetPerson(ctx context.Context, personID, userID primitive.ObjectID) (*PersonWithAvatar, error)
	UpdatePerson(ctx context.Context, person *domain.Person) (*domain.Person, error)

	// DeletePerson removes the person and every important date attached
	// to them.
	DeletePerson(ctx context.Context, personID, userID primitive.ObjectID) error

	// RequestAvatarUpload returns a presigned PUT URL and the object key
	// the client must confirm once the upload finishes.
	RequestAvatarUpload(ctx context.Context, personID, userID primitive.ObjectID, contentType string) (uploadURL, objectKey string, err error)
	ConfirmAvatarUpload(ctx context.Context, personID, userID primitive.ObjectID, objectKey string) error
}

type personService struct {
	personRepo  repository.PersonRepository
	dateRepo    repository.ImportantDateRepository
	fileStorage storage.FileStorage
	clock       insight.Clock
}

// NewPersonService creates a new instance of personService.
func NewPersonService(personRepo repository.PersonRepository, dateRepo repository.ImportantDateRepository, fileStorage storage.FileStorage, clock insight.Clock) PersonService {
	return &personService{
		personRepo:  personRepo,
		dateRepo:    dateRepo,
		fileStorage: fileStorage,
		clock:       clock,
	}
}

func (s *personService) CreatePerson(ctx context.Context, person *domain.Person) (*domain.Person, error) {
	if person.Name == "" {
		return nil, errors.New("person name cannot be empty")
	}
	if person.Relationship == "" {
		person.Relationship = domain.RelationshipOther
	}

	id, err := s.personRepo.Create(ctx, person)
	if err != nil {
		return nil, err
	}
	person.ID = id
	return person, nil
}

func (s *personService) GetPeople(ctx context.Context, userID primitive.ObjectID) ([]PersonWithAvatar, error) {
	people, err := s.personRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]PersonWithAvatar, 0, len(people))
	for _, p := range people {
		result = append(result, s.withAvatarURL(ctx, p))
	}
	return result, nil
}

func (s *personService) GetPerson(ctx context.Context, personID, userID primitive.ObjectID) (*PersonWithAvatar, error) {
	person, err := s.personRepo.GetByID(ctx, personID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPersonNotFound
		}
		return nil, err
	}
	enriched := s.withAvatarURL(ctx, *person)
	return &enriched, nil
}

func (s *personService) UpdatePerson(ctx context.Context, person *domain.Person) (*domain.Person, error) {
	existing, err := s.personRepo.GetByID(ctx, person.ID, person.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPersonNotFound
		}
		return nil, err
	}

	// The avatar key and quality-time stamp have their own write paths.
	person.AvatarObjectKey = existing.AvatarObjectKey
	person.LastQualityTime = existing.LastQualityTime
	person.CreatedAt = existing.CreatedAt

	if err := s.personRepo.Update(ctx, person); err != nil {
		return nil, err
	}
	return person, nil
}

func (s *personService) DeletePerson(ctx context.Context, personID, userID primitive.ObjectID) error {
	if err := s.dateRepo.DeleteByPersonID(ctx, personID, userID); err != nil {
		return err
	}

	err := s.personRepo.Delete(ctx, personID, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrPersonNotFound
	}
	return err
}

func (s *personService) RequestAvatarUpload(ctx context.Context, personID, userID primitive.ObjectID, contentType string) (string, string, error) {
	if _, err := s.personRepo.GetByID(ctx, personID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", "", ErrPersonNotFound
		}
		return "", "", err
	}

	objectKey := fmt.Sprintf("avatars/%s/%s/%s", userID.Hex(), personID.Hex(), uuid.NewString())
	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, 15*time.Minute)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate upload URL: %w", err)
	}
	return uploadURL, objectKey, nil
}

func (s *personService) ConfirmAvatarUpload(ctx context.Context, personID, userID primitive.ObjectID, objectKey string) error {
	if objectKey == "" {
		return errors.New("object key cannot be empty")
	}

	person, err := s.personRepo.GetByID(ctx, personID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPersonNotFound
		}
		return err
	}

	// Replace the old photo rather than orphaning it.
	if person.AvatarObjectKey != "" && person.AvatarObjectKey != objectKey {
		if err := s.fileStorage.DeleteObject(ctx, person.AvatarObjectKey); err != nil {
			// Not fatal; the new key still gets recorded.
			log.Printf("WARN: failed to delete old avatar %s: %v", person.AvatarObjectKey, err)
		}
	}

	return s.personRepo.SetAvatarKey(ctx, personID, userID, objectKey)
}

func (s *personService) withAvatarURL(ctx context.Context, p domain.Person) PersonWithAvatar {
	enriched := PersonWithAvatar{Person: p}
	if p.AvatarObjectKey == "" {
		return enriched
	}
	url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, p.AvatarObjectKey, storage.DefaultPresignedURLExpiry)
	if err == nil {
		enriched.AvatarURL = url
	}
	return enriched
}
