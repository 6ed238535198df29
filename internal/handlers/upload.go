package handlers

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hirestack/recruit-api/internal/apperr"
	"hirestack/recruit-api/internal/models"
	"hirestack/recruit-api/internal/repositories"
	"hirestack/recruit-api/internal/services"
)

type UploadHandler struct {
	docRepo        repositories.DocumentRepository
	applicantRepo  repositories.ApplicantRepository
	storageService services.StorageService
	parser         services.ResumeParser
	screening      services.ScreeningService
	maxFileSize    int64
}

func NewUploadHandler(
	docRepo repositories.DocumentRepository,
	applicantRepo repositories.ApplicantRepository,
	storageService services.StorageService,
	parser services.ResumeParser,
	screening services.ScreeningService,
	maxFileSize int64,
) *UploadHandler {
	return &UploadHandler{
		docRepo:        docRepo,
		applicantRepo:  applicantRepo,
		storageService: storageService,
		parser:         parser,
		screening:      screening,
		maxFileSize:    maxFileSize,
	}
}

// HandleUpload accepts a multipart "resume" PDF, optionally tagged with
// the applicant it belongs to, stores it, extracts its text, and indexes
// the text for later ranking retrieval.
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return apperr.Wrap(apperr.ErrInvalidArgument, "failed to parse multipart form")
	}

	files, exists := form.File["resume"]
	if !exists || len(files) == 0 {
		return apperr.Wrap(apperr.ErrInvalidArgument, "no resume file uploaded")
	}
	file := files[0]
	if file.Size > h.maxFileSize {
		return apperr.Wrap(apperr.ErrInvalidArgument, "resume too large, max %d bytes", h.maxFileSize)
	}

	var applicantID *uuid.UUID
	if raw := c.FormValue("applicant_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return apperr.Wrap(apperr.ErrInvalidArgument, "invalid applicant_id")
		}
		if _, err := h.applicantRepo.FindByID(id); err != nil {
			return err
		}
		applicantID = &id
	}

	filename, filePath, err := h.storageService.SaveFile(file, "resume")
	if err != nil {
		return err
	}

	extractedText, err := h.parser.ExtractText(filePath)
	if err != nil {
		// A scanned or image-only PDF still gets stored; it just cannot
		// feed the ranking prompt until re-uploaded as text.
		log.Printf("resume %s stored without extracted text: %v", filename, err)
		extractedText = ""
	}

	doc := models.Document{
		ID:               uuid.New(),
		Filename:         filename,
		OriginalFileName: file.Filename,
		FileType:         "resume",
		FilePath:         filePath,
		ExtractedText:    extractedText,
		ApplicantID:      applicantID,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}
	if err := h.docRepo.Create(&doc); err != nil {
		if delErr := h.storageService.DeleteFile(filename); delErr != nil {
			log.Printf("failed to clean up %s after DB error: %v", filename, delErr)
		}
		return fmt.Errorf("failed to save resume record: %w", err)
	}

	if err := h.screening.IndexDocument(c.Context(), &doc); err != nil {
		log.Printf("resume %s stored but indexing failed: %v", doc.ID, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.UploadResponse{
		ID:           doc.ID.String(),
		Filename:     doc.Filename,
		OriginalName: doc.OriginalFileName,
		FileType:     doc.FileType,
	})
}
