package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type BarbershopHandler struct {
	db *gorm.DB
}

func NewBarbershopHandler(db *gorm.DB) *BarbershopHandler {
	return &BarbershopHandler{db: db}
}

type CreateBarbershopRequest struct {
	Name    string `json:"name" binding:"required,max=100"`
	Slug    string `json:"slug" binding:"required,max=100"`
	Phone   string `json:"phone" binding:"max=20"`
	Address string `json:"address" binding:"max=255"`
}

func (h *BarbershopHandler) List(c *gin.Context) {
	var shops []models.Barbershop
	if err := h.db.WithContext(c.Request.Context()).Order("name ASC").Find(&shops).Error; err != nil {
		httperr.Internal(c, "failed_to_list_barbershops", "Erro ao listar barbearias.")
		return
	}

	httpresp.List(c, shops)
}

func (h *BarbershopHandler) Create(c *gin.Context) {
	var req CreateBarbershopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	slug := strings.ToLower(strings.TrimSpace(req.Slug))

	var count int64
	h.db.Model(&models.Barbershop{}).Where("slug = ?", slug).Count(&count)
	if count > 0 {
		httperr.Conflict(c, "slug_already_exists", "Já existe uma barbearia com este endereço.")
		return
	}

	shop := models.Barbershop{
		Name:    req.Name,
		Slug:    slug,
		Phone:   req.Phone,
		Address: req.Address,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&shop).Error; err != nil {
		httperr.Internal(c, "failed_to_create_barbershop", "Erro ao criar barbearia.")
		return
	}

	c.JSON(http.StatusCreated, shop)
}
