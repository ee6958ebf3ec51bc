package api

import (
	"io"
	"net/http"
	"strings"

	resdto "voucher-campaign/internal/handler/dto/response"
	"voucher-campaign/internal/handler/middleware"
	"voucher-campaign/internal/pkg/errs"
	"voucher-campaign/internal/usecase"

	"github.com/gin-gonic/gin"
)

// photos larger than this are rejected before buffering
const maxPhotoBytes = 10 << 20

type CampaignHandler struct {
	campaignUseCase usecase.CampaignUseCase
}

func NewCampaignHandler(campaignUseCase usecase.CampaignUseCase) *CampaignHandler {
	return &CampaignHandler{
		campaignUseCase: campaignUseCase,
	}
}

// @Summary Check voucher eligibility
// @Description Evaluate the campaign rules for the authenticated customer and reserve a voucher when eligible
// @Tags campaign
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.EligibilityResponse
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /check-eligibility [get]
func (h *CampaignHandler) CheckEligibility(c *gin.Context) {
	customerID, ok := middleware.GetCustomerID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	result, err := h.campaignUseCase.CheckEligibility(c.Request.Context(), customerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromEligibilityResult(result))
}

// @Summary Validate photo submission
// @Description Run the uploaded photo through image recognition and finalize the customer's voucher reservation
// @Tags campaign
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param photo formData file true "photo to upload"
// @Success 200 {object} resdto.ValidationResponse
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string][]string
// @Router /validate-photo [post]
func (h *CampaignHandler) ValidatePhoto(c *gin.Context) {
	customerID, ok := middleware.GetCustomerID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	image, errMsg := h.readPhoto(c)
	if errMsg != "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"photo": []string{errMsg},
		})
		return
	}

	result, err := h.campaignUseCase.ValidatePhoto(c.Request.Context(), customerID, image)
	if err != nil {
		switch {
		case errs.Is(err, usecase.ErrNoActiveReservation):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "No voucher locked for customer",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromValidationResult(result))
}

// readPhoto extracts and sniffs the uploaded photo. All rejection happens
// here, before any campaign state is touched.
func (h *CampaignHandler) readPhoto(c *gin.Context) ([]byte, string) {
	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return nil, "The photo field is required."
	}
	if fileHeader.Size > maxPhotoBytes {
		return nil, "The photo may not be greater than 10 megabytes."
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, "The photo field is required."
	}
	defer file.Close()

	image, err := io.ReadAll(io.LimitReader(file, maxPhotoBytes))
	if err != nil || len(image) == 0 {
		return nil, "The photo field is required."
	}

	if !strings.HasPrefix(http.DetectContentType(image), "image/") {
		return nil, "The photo must be an image."
	}

	return image, ""
}
