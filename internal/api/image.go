package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/recipe-share/backend/internal/middleware"
	"github.com/pageza/recipe-share/backend/internal/service"
)

// ImageHandler handles recipe image uploads
type ImageHandler struct {
	imageService service.IImageService
	authService  service.IAuthService
	logger       *zap.Logger
}

// NewImageHandler creates a new image handler
func NewImageHandler(imageService service.IImageService, authService service.IAuthService, logger *zap.Logger) *ImageHandler {
	return &ImageHandler{
		imageService: imageService,
		authService:  authService,
		logger:       logger,
	}
}

func (h *ImageHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/images", middleware.AuthMiddleware(h.authService), h.UploadImage)
}

// UploadImage stores the multipart "image" field and returns its public URL
func (h *ImageHandler) UploadImage(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	// Leave room for the multipart envelope around the file.
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, service.MaxImageSize+1<<20)

	file, err := c.FormFile("image")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read image"})
		return
	}
	defer f.Close()

	url, err := h.imageService.UploadRecipeImage(
		c.Request.Context(), userID, file.Filename, file.Header.Get("Content-Type"), file.Size, f,
	)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnsupportedImageType):
			c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": "unsupported image type"})
		case errors.Is(err, service.ErrImageTooLarge):
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image too large"})
		default:
			h.logger.Error("failed to upload image", zap.Error(err), zap.String("user_id", userID.String()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"image_url": url})
}
