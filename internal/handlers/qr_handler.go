package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/menuvi/menuvi/internal/config"
	"github.com/menuvi/menuvi/internal/httperr"
	"github.com/menuvi/menuvi/internal/middleware"
)

const qrSize = 512

type QRHandler struct {
	config *config.Config
}

func NewQRHandler(cfg *config.Config) *QRHandler {
	return &QRHandler{config: cfg}
}

func (h *QRHandler) publicURL(slug string) string {
	return fmt.Sprintf("%s/%s/", h.config.PublicBaseURL, slug)
}

// Show returns the URL the QR code encodes, for the console's preview.
func (h *QRHandler) Show(c *gin.Context) {
	restaurant := middleware.Tenant(c)
	c.JSON(http.StatusOK, gin.H{
		"url":          h.publicURL(restaurant.Slug),
		"download_url": fmt.Sprintf("/api/admin/%s/qr.png", restaurant.Slug),
	})
}

// Download streams a PNG of the QR code pointing at the tenant's public
// landing page.
func (h *QRHandler) Download(c *gin.Context) {
	restaurant := middleware.Tenant(c)

	png, err := qrcode.Encode(h.publicURL(restaurant.Slug), qrcode.Medium, qrSize)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_qr", "Could not generate the QR code.")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s-menu-qr.png"`, restaurant.Slug))
	c.Data(http.StatusOK, "image/png", png)
}
