package services

import (
	"fmt"
	"mime/multipart"

	"github.com/pixelmage/pixelmage-cards-api/utils"
)

// DesignService handles card template design art: upload, retrieval and deletion
type DesignService interface {
	// UploadDesign validates and uploads a design file, returns the storage key
	UploadDesign(fileHeader *multipart.FileHeader) (string, error)

	// GetDesignURL generates a URL for accessing an uploaded design
	GetDesignURL(designKey string) (string, error)

	// DeleteDesign removes a design from storage
	DeleteDesign(designKey string) error
}

// S3DesignService implements DesignService using AWS S3 for storage
type S3DesignService struct {
	s3Service S3Interface
}

var designServiceInstance DesignService

// InitDesignService initializes the design service with S3 backend
func InitDesignService(s3Service S3Interface) DesignService {
	designServiceInstance = &S3DesignService{
		s3Service: s3Service,
	}
	return designServiceInstance
}

// GetDesignService returns the initialized design service instance
func GetDesignService() DesignService {
	return designServiceInstance
}

// SetDesignService sets the design service instance (primarily for testing)
func SetDesignService(service DesignService) {
	designServiceInstance = service
}

// UploadDesign validates and uploads a design file to S3
func (s *S3DesignService) UploadDesign(fileHeader *multipart.FileHeader) (string, error) {
	if err := utils.ValidateImageFile(fileHeader); err != nil {
		return "", err
	}

	s3Key, err := s.s3Service.UploadFile(fileHeader)
	if err != nil {
		return "", fmt.Errorf("failed to upload design: %w", err)
	}

	return s3Key, nil
}

// GetDesignURL generates a presigned URL for accessing a design
func (s *S3DesignService) GetDesignURL(designKey string) (string, error) {
	if designKey == "" {
		return "", nil
	}

	url, err := s.s3Service.GetPresignedURL(designKey)
	if err != nil {
		return "", fmt.Errorf("failed to generate design URL: %w", err)
	}

	return url, nil
}

// DeleteDesign deletes a design from S3
func (s *S3DesignService) DeleteDesign(designKey string) error {
	if designKey == "" {
		return nil
	}

	if err := s.s3Service.DeleteFile(designKey); err != nil {
		return fmt.Errorf("failed to delete design: %w", err)
	}

	return nil
}
